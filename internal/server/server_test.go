package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bookshelf"
	"github.com/agentstation/bookshelf/internal/cmd/application"
	"github.com/agentstation/bookshelf/pkg/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type envelope struct {
	Data  map[string]any `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	client, err := bookshelf.New(context.Background(),
		bookshelf.WithStoreURL("memory://"),
		bookshelf.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	app := &application.Mock{
		ClientFunc: func() (bookshelf.Client, error) { return client, nil },
		LoggerFunc: func() *zerolog.Logger { return logging.NewNopLogger() },
	}

	srv, err := New(app, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestNewRequiresClient(t *testing.T) {
	app := &application.Mock{}
	_, err := New(app, DefaultConfig())
	assert.Error(t, err)
}

func TestConfigAddr(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "localhost:8080", cfg.Addr())

	cfg.Host = "::1"
	cfg.Port = 9000
	assert.Equal(t, "[::1]:9000", cfg.Addr())
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestServer(t, DefaultConfig()).Handler()

	rec, env := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", env.Data["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, env = do(t, h, http.MethodGet, "/api/v1/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), env.Data["books"])

	rec, _ = do(t, h, http.MethodGet, "/favicon.ico", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestBookLifecycle(t *testing.T) {
	h := newTestServer(t, DefaultConfig()).Handler()

	rec, env := do(t, h, http.MethodPost, "/api/v1/books",
		`{"title":"1984","author":"George Orwell","isbn":" 1234567891 "}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "1234567891", env.Data["isbn"])
	assert.Equal(t, true, env.Data["isAvailable"])

	rec, env = do(t, h, http.MethodPost, "/api/v1/books", `{"title":"Dup","isbn":"1234567891"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/books", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, h, http.MethodGet, "/api/v1/books/1234567891", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1984", env.Data["title"])

	rec, env = do(t, h, http.MethodGet, "/api/v1/books?q=orwell", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), env.Data["count"])

	rec, env = do(t, h, http.MethodGet, "/api/v1/books/1234567891/availability", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "available", env.Data["availability"])

	rec, env = do(t, h, http.MethodGet, "/api/v1/books/nope/availability", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unknown", env.Data["availability"])

	rec, _ = do(t, h, http.MethodDelete, "/api/v1/books/1234567891", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, h, http.MethodGet, "/api/v1/books/1234567891", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestListCacheIsFlushedOnChange(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())
	h := srv.Handler()

	_, env := do(t, h, http.MethodGet, "/api/v1/users", "")
	assert.Equal(t, float64(0), env.Data["count"])
	assert.Equal(t, 1, srv.Cache().ItemCount())

	rec, env := do(t, h, http.MethodPost, "/api/v1/users", `{"name":"Alice","id":"001"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "001", env.Data["id"])
	assert.Equal(t, 0, srv.Cache().ItemCount())

	_, env = do(t, h, http.MethodGet, "/api/v1/users", "")
	assert.Equal(t, float64(1), env.Data["count"])
}

func TestCreateUserGeneratesID(t *testing.T) {
	h := newTestServer(t, DefaultConfig()).Handler()

	rec, env := do(t, h, http.MethodPost, "/api/v1/users", `{"name":"Bob"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := env.Data["id"].(string)
	assert.Len(t, id, 36)
}

func TestLendingEndpoints(t *testing.T) {
	h := newTestServer(t, DefaultConfig()).Handler()

	do(t, h, http.MethodPost, "/api/v1/books", `{"title":"The Great Gatsby","author":"F. Scott Fitzgerald","isbn":"1234567890"}`)
	do(t, h, http.MethodPost, "/api/v1/users", `{"name":"Alice","id":"001"}`)
	do(t, h, http.MethodPost, "/api/v1/users", `{"name":"Bob","id":"002"}`)

	rec, env := do(t, h, http.MethodPost, "/api/v1/users/001/borrow/1234567890", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "borrowed", env.Data["reason"])

	rec, env = do(t, h, http.MethodPost, "/api/v1/users/002/borrow/1234567890", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/users/999/borrow/1234567890", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/users/001/borrow/0000000000", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = do(t, h, http.MethodGet, "/api/v1/users/001/books", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), env.Data["count"])

	rec, env = do(t, h, http.MethodGet, "/api/v1/books/1234567890/availability", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unavailable", env.Data["availability"])

	rec, _ = do(t, h, http.MethodPost, "/api/v1/users/002/return/1234567890", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = do(t, h, http.MethodPost, "/api/v1/users/001/return/1234567890", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "returned", env.Data["reason"])
}

func TestUnknownRoutes(t *testing.T) {
	h := newTestServer(t, DefaultConfig()).Handler()

	rec, env := do(t, h, http.MethodGet, "/api/v1/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)

	rec, _ = do(t, h, http.MethodPut, "/api/v1/books", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodPut, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORS(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CORSEnabled = true
	cfg.CORSOrigins = []string{"https://example.com"}
	h := newTestServer(t, cfg).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/books", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWebSocketReceivesLibraryEvents(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())
	srv.Start()

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/updates/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var connected map[string]any
	require.NoError(t, conn.ReadJSON(&connected))
	assert.Equal(t, "client.connected", connected["type"])

	res, err := http.Post(ts.URL+"/api/v1/books", "application/json",
		strings.NewReader(`{"title":"1984","author":"George Orwell","isbn":"1234567891"}`))
	require.NoError(t, err)
	res.Body.Close()

	var added map[string]any
	require.NoError(t, conn.ReadJSON(&added))
	assert.Equal(t, "book.added", added["type"])
}

func TestServeStopsOnContextCancel(t *testing.T) {
	srv := newTestServer(t, DefaultConfig())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		res, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		res.Body.Close()
		return res.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
