package service

import (
	"context"
	"crypto/rand"
	"io"
	"regexp"

	"docverify/internal/sim"
)

const (
	WalletMetaMask = "metamask"
	WalletGuest    = "guest"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsAddress reports whether s is a 0x-prefixed 20-byte hex address.
func IsAddress(s string) bool { return addressPattern.MatchString(s) }

// Wallet is a connected account.
type Wallet struct {
	Address string `json:"address"`
	Type    string `json:"type"`
}

// WalletProvider resolves the wallet a user connects with.
type WalletProvider interface {
	Connect(ctx context.Context, requestedAddress string) (Wallet, error)
}

// LocalWalletProvider accepts a well-formed address as a browser wallet and
// otherwise creates a random guest wallet. No signatures are checked.
type LocalWalletProvider struct {
	rand io.Reader
}

func NewLocalWalletProvider() *LocalWalletProvider {
	return &LocalWalletProvider{rand: rand.Reader}
}

func (p *LocalWalletProvider) Connect(ctx context.Context, requestedAddress string) (Wallet, error) {
	if err := ctx.Err(); err != nil {
		return Wallet{}, err
	}
	if IsAddress(requestedAddress) {
		return Wallet{Address: requestedAddress, Type: WalletMetaMask}, nil
	}
	addr, err := randomAddress(p.rand)
	if err != nil {
		return Wallet{}, err
	}
	return Wallet{Address: addr, Type: WalletGuest}, nil
}

func randomAddress(r io.Reader) (string, error) {
	h, err := sim.Hex(r, 40)
	if err != nil {
		return "", err
	}
	return "0x" + h, nil
}
