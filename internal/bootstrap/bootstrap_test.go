package bootstrap

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/config"
	"docverify/internal/events"
	handlers "docverify/internal/http/handler"
	"docverify/internal/service"
	"docverify/internal/storage"
)

func testConfig(t *testing.T) *config.AppConfig {
	cfg := config.Load()
	cfg.State.Backend = "memory"
	cfg.Simulation.AnchorMode = "hashchain"
	cfg.Simulation.ContentBackend = "simulated"
	cfg.Simulation.UploadDelay = 0
	cfg.Simulation.IPFSDelay = 0
	cfg.Simulation.ChainDelay = 0
	cfg.NATS.URL = ""
	return cfg
}

func TestBuild_EndToEnd(t *testing.T) {
	app, err := Build(context.Background(), testConfig(t), nil)
	require.NoError(t, err)
	defer app.Close()

	ctx := context.Background()
	recs, err := app.Routes.Documents.Submit(ctx, []service.UploadFile{{
		Name:        "notes.txt",
		Size:        5,
		ContentType: "text/plain",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader([]byte("hello"))), nil
		},
	}}, "", "")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "notes", recs[0].Name)
	assert.NotEmpty(t, recs[0].ContentRef)

	res, err := app.Routes.Documents.Verify(ctx, recs[0].ID)
	require.NoError(t, err)
	assert.True(t, res.Verification.Verified)
	assert.False(t, res.Verification.Simulated)

	hist := app.Routes.History.All(ctx)
	require.Len(t, hist, 1)
	assert.Equal(t, "Upload", hist[0].Type)

	families, err := app.Registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["docverify_upload_documents_total"])
}

func TestBuild_ServesRoutes(t *testing.T) {
	app, err := Build(context.Background(), testConfig(t), nil)
	require.NoError(t, err)
	defer app.Close()

	f := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler()})
	f.Use(app.HTTPMetrics.Handler())
	handlers.RegisterRoutes(f, app.Routes)

	resp, err := f.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = f.Test(httptest.NewRequest(http.MethodGet, "/documents", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBuild_ServesStoredContent(t *testing.T) {
	app, err := Build(context.Background(), testConfig(t), nil)
	require.NoError(t, err)
	defer app.Close()

	recs, err := app.Routes.Documents.Submit(context.Background(), []service.UploadFile{{
		Name:        "notes.txt",
		ContentType: "text/plain",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader([]byte("hello"))), nil
		},
	}}, "", "")
	require.NoError(t, err)
	rec := recs[0]

	f := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler()})
	handlers.RegisterRoutes(f, app.Routes)

	resp, err := f.Test(httptest.NewRequest(http.MethodGet, "/documents/"+rec.ID+"/content", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello", string(body))

	resp, err = f.Test(httptest.NewRequest(http.MethodGet, "/documents/"+rec.ID+"/link", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), storage.IPFSGateway+rec.ContentRef)
}

func TestBuild_NoContentBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Simulation.ContentBackend = "none"
	cfg.Simulation.AnchorMode = "simulated"

	app, err := Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer app.Close()

	recs, err := app.Routes.Documents.Submit(context.Background(), []service.UploadFile{{
		Name: "a.pdf",
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader([]byte("%PDF"))), nil },
	}}, "", "")
	require.NoError(t, err)
	assert.Empty(t, recs[0].ContentRef)
}

func TestBuild_RejectsUnknownBackends(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.AppConfig)
		want   string
	}{
		{"state", func(c *config.AppConfig) { c.State.Backend = "tape" }, `unknown state backend "tape"`},
		{"content", func(c *config.AppConfig) { c.Simulation.ContentBackend = "floppy" }, `unknown content backend "floppy"`},
		{"anchor", func(c *config.AppConfig) { c.Simulation.AnchorMode = "bitcoin" }, `unknown anchor mode "bitcoin"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)

			app, err := Build(context.Background(), cfg, nil)

			assert.Nil(t, app)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestBuild_FileBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.State.Backend = "file"
	cfg.State.FileDir = t.TempDir()

	app, err := Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer app.Close()
	assert.NoError(t, app.Routes.Health.Ping(context.Background()))
}

func TestPublisher_NoopWithoutURL(t *testing.T) {
	p, err := publisher(config.NATSConfig{}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, events.Noop{}, p)
}
