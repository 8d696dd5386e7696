// Package sim holds the small helpers the simulated external services share:
// cancellable artificial latency and random identifier generation.
package sim

import (
	"context"
	"fmt"
	"io"
	"time"
)

const (
	base36 = "0123456789abcdefghijklmnopqrstuvwxyz"
	hex    = "0123456789abcdef"
)

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Base36 returns n random characters from [0-9a-z] read from r.
func Base36(r io.Reader, n int) (string, error) {
	return pick(r, base36, n)
}

// Hex returns n random lowercase hex characters read from r.
func Hex(r io.Reader, n int) (string, error) {
	return pick(r, hex, n)
}

func pick(r io.Reader, alphabet string, n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
