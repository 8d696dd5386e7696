// Package assistant answers help questions with canned topic responses.
package assistant

import (
	"context"
	"strings"
)

// Greeting is the first message shown when a conversation opens.
const Greeting = "Hello! I'm the DocVerify Assistant. How can I help you today?"

// Topic is a help subject the assistant can answer.
type Topic struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Reply is the assistant's answer. Topic is empty for the default response.
type Reply struct {
	Topic string `json:"topic,omitempty"`
	Text  string `json:"reply"`
}

// Responder answers a free-text message.
type Responder interface {
	Reply(ctx context.Context, message string) (Reply, error)
	Topics() []Topic
}

var topics = []Topic{
	{ID: "upload", Label: "How to Upload"},
	{ID: "blockchain", Label: "Blockchain Security"},
	{ID: "privacy", Label: "Data Privacy"},
	{ID: "security", Label: "Security Commitments"},
}

var responses = map[string]string{
	"upload":     "To upload a document, use the 'Upload Document' action. You can drag and drop files or select them from your device. JPG, PDF and text files are supported.",
	"blockchain": "Your documents are secured with a cryptographic hash of the file that is anchored on a ledger. This lets anyone check that the document has not been tampered with.",
	"privacy":    "Your files are stored off-chain. Only the verification hash is public, and you control who can access your data.",
	"security":   "Documents are protected by cryptographic hashing and ledger anchoring: once a verification record is created it cannot be altered.",
}

const defaultResponse = "I can help you understand DocVerify's features. Ask me about 'uploading', 'blockchain', 'privacy', or 'security'."

// Canned matches the message against topic keywords.
type Canned struct{}

// NewCanned returns the keyword responder.
func NewCanned() *Canned { return &Canned{} }

var _ Responder = (*Canned)(nil)

// Reply returns the first topic whose id appears in message, or the default help text.
// "uploading" and similar inflections match their topic.
func (c *Canned) Reply(ctx context.Context, message string) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	msg := strings.ToLower(message)
	for _, t := range topics {
		if strings.Contains(msg, t.ID) || strings.Contains(msg, strings.ToLower(t.Label)) {
			return Reply{Topic: t.ID, Text: responses[t.ID]}, nil
		}
	}
	return Reply{Text: defaultResponse}, nil
}

// Topics lists the quick options offered alongside the greeting.
func (c *Canned) Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}
