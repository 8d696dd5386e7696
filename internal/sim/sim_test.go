package sim

import (
	"bytes"
	"context"
	"crypto/rand"
	"regexp"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSleep(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), 0))
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
	assert.ErrorIs(t, Sleep(ctx, 0), context.Canceled)
}

func TestRandomStrings(t *testing.T) {
	s, err := Base36(rand.Reader, 46)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-z]{46}$`), s)

	h, err := Hex(rand.Reader, 40)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{40}$`), h)

	fixed, err := Hex(bytes.NewReader([]byte{0, 1, 15, 16}), 4)
	require.NoError(t, err)
	assert.Equal(t, "01f0", fixed)

	_, err = Base36(iotest.ErrReader(assert.AnError), 3)
	assert.Error(t, err)

	empty, err := Base36(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
