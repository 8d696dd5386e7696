package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docverify/internal/repository/memory"
	"docverify/internal/storage"
	storeMocks "docverify/internal/storage/mocks"
)

func TestDocumentService_ContentFromIPFS(t *testing.T) {
	ctx := context.Background()
	f := newFixture(memory.NewStateMemory(), storage.NewSimulatedIPFS(0, nil))

	recs, err := f.svc.Submit(ctx, []UploadFile{fileOf("deed.pdf", "application/pdf", []byte("%PDF-1.7 deed"))}, "", "")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	rec := recs[0]
	require.NotEmpty(t, rec.ContentRef)

	t.Run("link points at the gateway", func(t *testing.T) {
		before := time.Now().UTC()
		link, err := f.svc.ContentURL(ctx, rec.ID)

		require.NoError(t, err)
		assert.Equal(t, rec.ID, link.ID)
		assert.Equal(t, rec.ContentRef, link.ContentRef)
		assert.Equal(t, storage.IPFSGateway+rec.ContentRef, link.URL)
		assert.False(t, link.ExpiresAt.Before(before.Add(ContentLinkTTL)))
	})

	t.Run("content round-trips", func(t *testing.T) {
		content, err := f.svc.OpenContent(ctx, rec.ID)
		require.NoError(t, err)
		defer content.Body.Close()

		data, err := io.ReadAll(content.Body)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.7 deed", string(data))
		assert.Equal(t, "application/pdf", content.ContentType())
		assert.Equal(t, "deed.pdf", content.Record.FileName)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.svc.ContentURL(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = f.svc.OpenContent(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_ContentNotStored(t *testing.T) {
	ctx := context.Background()

	t.Run("content storage disabled", func(t *testing.T) {
		f := newFixture(memory.NewStateMemory(), nil)
		recs, err := f.svc.Submit(ctx, []UploadFile{fileOf("a.txt", "text/plain", []byte("a"))}, "", "")
		require.NoError(t, err)

		_, err = f.svc.ContentURL(ctx, recs[0].ID)
		assert.ErrorIs(t, err, ErrNoContent)

		_, err = f.svc.OpenContent(ctx, recs[0].ID)
		assert.ErrorIs(t, err, ErrNoContent)
	})

	t.Run("object gone from the store", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "QmGone"}, nil).Once()
		mStore.On("Get", mock.Anything, "QmGone").
			Return(nil, storage.ObjectInfo{}, storage.ErrNotFound).Once()
		f := newFixture(memory.NewStateMemory(), mStore)
		recs, err := f.svc.Submit(ctx, []UploadFile{fileOf("a.txt", "text/plain", []byte("a"))}, "", "")
		require.NoError(t, err)

		_, err = f.svc.OpenContent(ctx, recs[0].ID)

		assert.ErrorIs(t, err, ErrNoContent)
		mStore.AssertExpectations(t)
	})

	t.Run("store failure is not a missing object", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "QmOne"}, nil).Once()
		mStore.On("PresignGet", mock.Anything, "QmOne", ContentLinkTTL).
			Return("", errors.New("signing key unavailable")).Once()
		f := newFixture(memory.NewStateMemory(), mStore)
		recs, err := f.svc.Submit(ctx, []UploadFile{fileOf("a.txt", "text/plain", []byte("a"))}, "", "")
		require.NoError(t, err)

		_, err = f.svc.ContentURL(ctx, recs[0].ID)

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoContent)
		mStore.AssertExpectations(t)
	})
}

func TestStoredContent_ContentType(t *testing.T) {
	c := &StoredContent{}
	assert.Equal(t, "application/octet-stream", c.ContentType())

	c.Record.ContentType = "text/plain"
	assert.Equal(t, "text/plain", c.ContentType())

	c.Info.ContentType = "application/pdf"
	assert.Equal(t, "application/pdf", c.ContentType())
}
