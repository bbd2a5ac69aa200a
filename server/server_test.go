package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spravochnik/converter"
	"spravochnik/database"
	"spravochnik/formats"
	"spravochnik/internal/config"
	"spravochnik/internal/logging"
	"spravochnik/sample"
	"spravochnik/server/handlers"
	"spravochnik/server/middleware"
)

type testEnv struct {
	router  http.Handler
	journal *database.Journal
	dir     string
	reg     *formats.Registry
}

func newTestEnv(t *testing.T, mutate func(*config.Config)) *testEnv {
	t.Helper()
	t.Setenv("GIN_MODE", gin.TestMode)
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &config.Config{
		Port:            "0",
		ShutdownTimeout: time.Second,
		JournalPath:     ":memory:",
		MaxUploadMB:     5,
		ScratchDir:      dir,
		RateLimitRPS:    100,
		RateLimitBurst:  100,
	}
	if mutate != nil {
		mutate(cfg)
	}

	logger := logging.Discard()
	reg, err := formats.Default()
	require.NoError(t, err)
	journal, err := database.OpenJournal(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { journal.Close() })

	conv := converter.New(reg,
		converter.WithLogger(logger),
		converter.WithScratchRoot(dir),
		converter.WithJournal(journal),
	)
	srv := NewServer(cfg, conv, journal, logger)
	return &testEnv{router: srv.Router(), journal: journal, dir: dir, reg: reg}
}

func (e *testEnv) sampleFile(t *testing.T, format, name string, rows int) string {
	t.Helper()
	f, err := e.reg.Lookup(format)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, sample.WriteXLSX(path, f, sample.Options{Rows: rows, Seed: 3}))
	return path
}

func multipartRequest(t *testing.T, url, path, format string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if format != "" {
		require.NoError(t, w.WriteField("format", format))
	}
	if path != "" {
		part, err := w.CreateFormFile("file", filepath.Base(path))
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestConvertEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	src := env.sampleFile(t, "ВЗК", "взк.xlsx", 5)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, multipartRequest(t, "/api/convert", src, "ВЗК"))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/vcard; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotEmpty(t, w.Header().Get("X-Conversion-ID"))
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCARD\r\n"))
	assert.Contains(t, body, "VERSION:3.0\r\n")

	entries, err := env.journal.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, w.Header().Get("X-Conversion-ID"), entries[0].ID)
	assert.Equal(t, "взк.xlsx", entries[0].Source)
	assert.Empty(t, entries[0].Error)
}

func TestConvertEndpointErrors(t *testing.T) {
	env := newTestEnv(t, nil)
	src := env.sampleFile(t, "ВЗК", "взк.xlsx", 3)

	txt := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o644))

	tests := []struct {
		name   string
		path   string
		format string
		code   int
	}{
		{"missing file", "", "ВЗК", http.StatusBadRequest},
		{"missing format", src, "", http.StatusBadRequest},
		{"unknown format", src, "XYZ", http.StatusBadRequest},
		{"unsupported file type", txt, "ВЗК", http.StatusBadRequest},
		{"no valid sheet", src, "ВПК", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			env.router.ServeHTTP(w, multipartRequest(t, "/api/convert", tt.path, tt.format))
			assert.Equal(t, tt.code, w.Code, w.Body.String())

			var resp middleware.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestConvertEndpointUploadLimit(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) { c.MaxUploadMB = 1 })

	big := filepath.Join(t.TempDir(), "big.csv")
	require.NoError(t, os.WriteFile(big, bytes.Repeat([]byte("a;b;c\n"), 400_000), 0o644))

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, multipartRequest(t, "/api/convert", big, "ВЗК"))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
}

func TestValidateEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	src := env.sampleFile(t, "ЗЗГТ", "ззгт.xlsx", 4)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, multipartRequest(t, "/api/validate", src, "zzgt"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp handlers.ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Report)
	assert.Equal(t, "ЗЗГТ", resp.Report.Format)
	assert.Equal(t, "ззгт.xlsx", resp.Report.Source)
	assert.NotEmpty(t, resp.Contacts)
}

func TestFormatsAndHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/formats", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list []handlers.FormatInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	names := make([]string, 0, len(list))
	for _, f := range list {
		names = append(names, f.Name)
		assert.NotEmpty(t, f.Signature)
	}
	assert.ElementsMatch(t, []string{"ВПК", "ВЗК", "ВИЦ", "ЗЗГТ"}, names)

	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var health handlers.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.True(t, health.Journal)
}

func TestConversionsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	src := env.sampleFile(t, "ВИЦ", "виц.xlsx", 2)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, multipartRequest(t, "/api/convert", src, "ВИЦ"))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/conversions?limit=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var resp handlers.ConversionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Conversions, 1)

	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/conversions/"+resp.Conversions[0].ID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var entry database.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	require.NotNil(t, entry.Report)
	assert.Equal(t, "ВИЦ", entry.Report.Format)

	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/conversions/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/conversions?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRateLimit(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) {
		c.RateLimitRPS = 0.001
		c.RateLimitBurst = 1
	})

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, multipartRequest(t, "/api/validate", "", "ВЗК"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, multipartRequest(t, "/api/validate", "", "ВЗК"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/formats", nil))
	assert.Equal(t, http.StatusOK, w.Code, "read endpoints are not limited")
}

func TestServeAndShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("GIN_MODE", gin.TestMode)

	reg, err := formats.Default()
	require.NoError(t, err)
	cfg := &config.Config{Port: "0", MaxUploadMB: 1, RateLimitRPS: 1, RateLimitBurst: 1, ShutdownTimeout: time.Second}
	srv := NewServer(cfg, converter.New(reg, converter.WithLogger(logging.Discard())), nil, logging.Discard())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, <-done)
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Setenv("GIN_MODE", gin.TestMode)

	reg, err := formats.Default()
	require.NoError(t, err)
	cfg := &config.Config{Port: "0", MaxUploadMB: 1, RateLimitRPS: 1, RateLimitBurst: 1, ShutdownTimeout: time.Second}
	srv := NewServer(cfg, converter.New(reg, converter.WithLogger(logging.Discard())), nil, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
