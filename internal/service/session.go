package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"docverify/internal/history"
	"docverify/internal/model"
	"docverify/internal/repository"
)

// Session state keys. Each flag is stored under its own key.
const (
	KeyIsAuthenticated    = "isAuthenticated"
	KeyUserEmail          = "userEmail"
	KeyUserName           = "userName"
	KeyAuthMethod         = "authMethod"
	KeyWalletAddress      = "walletAddress"
	KeyWalletType         = "walletType"
	KeyGuestWalletAddress = "guestWalletAddress"
)

var sessionKeys = []string{
	KeyIsAuthenticated,
	KeyUserEmail,
	KeyUserName,
	KeyAuthMethod,
	KeyWalletAddress,
	KeyWalletType,
	KeyGuestWalletAddress,
}

const (
	AuthTraditional   = "traditional"
	AuthWeb3          = "web3"
	AuthWeb3Simulated = "web3-simulated"
)

// SessionService manages the single demo session. Passwords are accepted
// for form parity and never stored.
type SessionService interface {
	SignIn(ctx context.Context, email string) (*model.Session, error)
	SignUp(ctx context.Context, name, email, password, confirm string) (*model.Session, error)
	// SignInWeb3 signs in with address, or with a simulated address when address is not well formed.
	SignInWeb3(ctx context.Context, address string) (*model.Session, error)
	ConnectWallet(ctx context.Context, requestedAddress string) (*model.Session, error)
	Current(ctx context.Context) (*model.Session, error)
	SignOut(ctx context.Context) error
}

type sessionService struct {
	repo    repository.StateRepository
	history *history.Log
	wallets WalletProvider
	rand    io.Reader
	logger  *zap.Logger
}

// NewSessionService constructs a SessionService storing flags in repo.
func NewSessionService(repo repository.StateRepository, hist *history.Log, wallets WalletProvider, logger *zap.Logger) SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sessionService{
		repo:    repo,
		history: hist,
		wallets: wallets,
		rand:    rand.Reader,
		logger:  logger.With(zap.String("component", "session_service")),
	}
}

func (s *sessionService) SignIn(ctx context.Context, email string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if err := s.save(ctx, map[string]any{
		KeyIsAuthenticated: true,
		KeyUserEmail:       email,
		KeyAuthMethod:      AuthTraditional,
	}); err != nil {
		return nil, err
	}
	s.history.Record(ctx, history.CategorySignIn, "User Signed In", "Signed in with email: "+email, "")
	return s.Current(ctx)
}

func (s *sessionService) SignUp(ctx context.Context, name, email, password, confirm string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if err := s.save(ctx, map[string]any{
		KeyIsAuthenticated: true,
		KeyUserName:        strings.TrimSpace(name),
		KeyUserEmail:       email,
		KeyAuthMethod:      AuthTraditional,
	}); err != nil {
		return nil, err
	}
	s.history.Record(ctx, history.CategorySignIn, "User Signed In", "Signed in with email: "+email, "")
	return s.Current(ctx)
}

func (s *sessionService) SignInWeb3(ctx context.Context, address string) (*model.Session, error) {
	method := AuthWeb3
	if !IsAddress(address) {
		addr, err := randomAddress(s.rand)
		if err != nil {
			return nil, err
		}
		address, method = addr, AuthWeb3Simulated
	}
	if err := s.save(ctx, map[string]any{
		KeyIsAuthenticated: true,
		KeyWalletAddress:   address,
		KeyAuthMethod:      method,
	}); err != nil {
		return nil, err
	}

	cur, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	who := cur.UserEmail
	if who == "" {
		who = "Web3 user"
	}
	s.history.Record(ctx, history.CategorySignIn, "User Signed In", "Signed in with Web3 wallet: "+who, "")
	return cur, nil
}

func (s *sessionService) ConnectWallet(ctx context.Context, requestedAddress string) (*model.Session, error) {
	w, err := s.wallets.Connect(ctx, requestedAddress)
	if err != nil {
		return nil, fmt.Errorf("connect wallet: %w", err)
	}

	values := map[string]any{
		KeyWalletAddress: w.Address,
		KeyWalletType:    w.Type,
	}
	label := "MetaMask"
	if w.Type == WalletGuest {
		values[KeyGuestWalletAddress] = w.Address
		label = "Guest"
	}
	if err := s.save(ctx, values); err != nil {
		return nil, err
	}

	s.history.Record(ctx, history.CategoryWallet, "Wallet Connected",
		fmt.Sprintf("Connected %s wallet: %s", label, shortAddress(w.Address)), "")
	return s.Current(ctx)
}

// Current reads the stored flags. Missing or unreadable flags are left empty.
func (s *sessionService) Current(ctx context.Context) (*model.Session, error) {
	var out model.Session
	targets := map[string]any{
		KeyIsAuthenticated:    &out.IsAuthenticated,
		KeyUserEmail:          &out.UserEmail,
		KeyUserName:           &out.UserName,
		KeyAuthMethod:         &out.AuthMethod,
		KeyWalletAddress:      &out.WalletAddress,
		KeyWalletType:         &out.WalletType,
		KeyGuestWalletAddress: &out.GuestWalletAddress,
	}
	for _, key := range sessionKeys {
		snap, err := s.repo.Load(ctx, key)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
		if err := json.Unmarshal(snap.Data, targets[key]); err != nil {
			s.logger.Warn("session_flag_unreadable", zap.String("key", key), zap.Error(err))
		}
	}
	return &out, nil
}

func (s *sessionService) SignOut(ctx context.Context) error {
	for _, key := range sessionKeys {
		if err := s.repo.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

func (s *sessionService) save(ctx context.Context, values map[string]any) error {
	for _, key := range sessionKeys {
		v, ok := values[key]
		if !ok {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		if _, err := s.repo.Save(ctx, key, raw, repository.AnyVersion); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

func shortAddress(addr string) string {
	if len(addr) <= 32 {
		return addr
	}
	return addr[:10] + "..." + addr[32:]
}
