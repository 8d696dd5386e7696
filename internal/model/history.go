package model

import "time"

// HistoryEntry is one line of the action history audit log.
type HistoryEntry struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Action         string    `json:"action"`
	Details        string    `json:"details"`
	BlockchainHash *string   `json:"blockchainHash"`
	Timestamp      time.Time `json:"timestamp"`
}

// Session mirrors the authentication flags other parts of the product read.
type Session struct {
	IsAuthenticated    bool   `json:"isAuthenticated"`
	UserEmail          string `json:"userEmail,omitempty"`
	UserName           string `json:"userName,omitempty"`
	AuthMethod         string `json:"authMethod,omitempty"`
	WalletAddress      string `json:"walletAddress,omitempty"`
	WalletType         string `json:"walletType,omitempty"`
	GuestWalletAddress string `json:"guestWalletAddress,omitempty"`
}
