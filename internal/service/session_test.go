package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docverify/internal/history"
	"docverify/internal/repository"
	"docverify/internal/repository/memory"
	repoMocks "docverify/internal/repository/mocks"
)

const metamaskAddr = "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb1"

func newSessionFixture() (SessionService, *history.Log, *memory.StateMemory) {
	repo := memory.NewStateMemory()
	hist := history.New(repo, nil)
	return NewSessionService(repo, hist, NewLocalWalletProvider(), nil), hist, repo
}

func TestSessionService_SignIn(t *testing.T) {
	ctx := context.Background()
	svc, hist, _ := newSessionFixture()

	sess, err := svc.SignIn(ctx, " doctor@example.com ")
	require.NoError(t, err)
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, "doctor@example.com", sess.UserEmail)
	assert.Equal(t, AuthTraditional, sess.AuthMethod)

	entries := hist.All(ctx)
	require.Len(t, entries, 1)
	assert.Equal(t, history.CategorySignIn, entries[0].Type)
	assert.Equal(t, "User Signed In", entries[0].Action)
	assert.Equal(t, "Signed in with email: doctor@example.com", entries[0].Details)
	assert.Nil(t, entries[0].BlockchainHash)

	_, err = svc.SignIn(ctx, "  ")
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestSessionService_SignUp(t *testing.T) {
	ctx := context.Background()
	svc, hist, repo := newSessionFixture()

	_, err := svc.SignUp(ctx, "Ana", "ana@example.com", "secret", "other")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Empty(t, hist.All(ctx))

	sess, err := svc.SignUp(ctx, "Ana", "ana@example.com", "secret", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Ana", sess.UserName)
	assert.True(t, sess.IsAuthenticated)

	for _, key := range sessionKeys {
		snap, err := repo.Load(ctx, key)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		require.NoError(t, err)
		assert.NotContains(t, string(snap.Data), "secret")
	}
}

func TestSessionService_SignInWeb3(t *testing.T) {
	ctx := context.Background()

	t.Run("real address", func(t *testing.T) {
		svc, hist, _ := newSessionFixture()
		sess, err := svc.SignInWeb3(ctx, metamaskAddr)
		require.NoError(t, err)
		assert.Equal(t, AuthWeb3, sess.AuthMethod)
		assert.Equal(t, metamaskAddr, sess.WalletAddress)
		assert.Equal(t, "Signed in with Web3 wallet: Web3 user", hist.All(ctx)[0].Details)
	})

	t.Run("simulated address keeps known email", func(t *testing.T) {
		svc, hist, _ := newSessionFixture()
		_, err := svc.SignIn(ctx, "a@b.c")
		require.NoError(t, err)

		sess, err := svc.SignInWeb3(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, AuthWeb3Simulated, sess.AuthMethod)
		assert.True(t, IsAddress(sess.WalletAddress))

		entries := hist.All(ctx)
		require.Len(t, entries, 2)
		assert.Equal(t, "Signed in with Web3 wallet: a@b.c", entries[1].Details)
	})
}

func TestSessionService_ConnectWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("metamask", func(t *testing.T) {
		svc, hist, _ := newSessionFixture()
		sess, err := svc.ConnectWallet(ctx, metamaskAddr)
		require.NoError(t, err)
		assert.Equal(t, WalletMetaMask, sess.WalletType)
		assert.Empty(t, sess.GuestWalletAddress)
		assert.Equal(t, "Connected MetaMask wallet: 0x742d35Cc...7595f0bEb1", hist.All(ctx)[0].Details)
	})

	t.Run("guest", func(t *testing.T) {
		svc, hist, _ := newSessionFixture()
		sess, err := svc.ConnectWallet(ctx, "not-an-address")
		require.NoError(t, err)
		assert.Equal(t, WalletGuest, sess.WalletType)
		assert.True(t, IsAddress(sess.WalletAddress))
		assert.Equal(t, sess.WalletAddress, sess.GuestWalletAddress)

		details := hist.All(ctx)[0].Details
		assert.True(t, strings.HasPrefix(details, "Connected Guest wallet: "+sess.WalletAddress[:10]+"..."))
		assert.True(t, strings.HasSuffix(details, sess.WalletAddress[32:]))
	})
}

func TestSessionService_SignOut(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionFixture()

	_, err := svc.SignIn(ctx, "a@b.c")
	require.NoError(t, err)
	_, err = svc.ConnectWallet(ctx, "")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx))
	sess, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.False(t, sess.IsAuthenticated)
	assert.Empty(t, sess.UserEmail)
	assert.Empty(t, sess.GuestWalletAddress)
}

func TestSessionService_SaveFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockStateRepository)
	repo.On("Save", ctx, KeyIsAuthenticated, mock.Anything, repository.AnyVersion).Return(int64(0), errors.New("read-only"))

	svc := NewSessionService(repo, history.New(memory.NewStateMemory(), nil), NewLocalWalletProvider(), nil)
	_, err := svc.SignIn(ctx, "a@b.c")

	assert.ErrorContains(t, err, "save isAuthenticated")
}

func TestLocalWalletProvider(t *testing.T) {
	p := NewLocalWalletProvider()

	w, err := p.Connect(context.Background(), metamaskAddr)
	require.NoError(t, err)
	assert.Equal(t, Wallet{Address: metamaskAddr, Type: WalletMetaMask}, w)

	a, err := p.Connect(context.Background(), "0x123")
	require.NoError(t, err)
	b, err := p.Connect(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, WalletGuest, a.Type)
	assert.True(t, IsAddress(a.Address))
	assert.NotEqual(t, a.Address, b.Address)
}
