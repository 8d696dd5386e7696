package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docverify/internal/config"
	"docverify/internal/resilience"
	"docverify/internal/storage"
	"docverify/internal/storage/mocks"
)

func newExecutor() *resilience.Executor {
	return resilience.NewExecutor(config.ResilienceConfig{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     time.Millisecond,
		BreakerEnabled:      true,
		BreakerOpenTimeout:  time.Second,
	}, nil)
}

func TestResilient_PutRetriesRewindableReader(t *testing.T) {
	ctx := context.Background()
	next := new(mocks.MockStorage)
	var seen []string

	read := func(args mock.Arguments) {
		b, _ := io.ReadAll(args.Get(2).(io.Reader))
		seen = append(seen, string(b))
	}
	next.On("Put", mock.Anything, "k", mock.Anything, mock.Anything).Run(read).Return(storage.ObjectInfo{}, errors.New("503")).Once()
	next.On("Put", mock.Anything, "k", mock.Anything, mock.Anything).Run(read).Return(storage.ObjectInfo{Key: "k", Size: 5}, nil).Once()

	info, err := storage.NewResilient(next, newExecutor()).Put(ctx, "k", strings.NewReader("hello"), storage.PutObjectOptions{Size: 5})

	require.NoError(t, err)
	assert.Equal(t, "k", info.Key)
	assert.Equal(t, []string{"hello", "hello"}, seen)
	next.AssertExpectations(t)
}

func TestResilient_PutDoesNotRetryStream(t *testing.T) {
	ctx := context.Background()
	next := new(mocks.MockStorage)
	next.On("Put", mock.Anything, "k", mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, errors.New("503")).Once()

	r := io.MultiReader(strings.NewReader("hello"))
	_, err := storage.NewResilient(next, newExecutor()).Put(ctx, "k", r, storage.PutObjectOptions{Size: -1})

	assert.Error(t, err)
	next.AssertExpectations(t)
}

func TestResilient_DeleteAndPassThrough(t *testing.T) {
	ctx := context.Background()
	next := new(mocks.MockStorage)
	next.On("Delete", mock.Anything, "gone").Return(storage.ErrNotFound).Once()
	next.On("PresignGet", ctx, "k", time.Minute).Return("https://example/k", nil)

	s := storage.NewResilient(next, newExecutor())

	assert.ErrorIs(t, s.Delete(ctx, "gone"), storage.ErrNotFound)
	url, err := s.PresignGet(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://example/k", url)
	next.AssertExpectations(t)
}
