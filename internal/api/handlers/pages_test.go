package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TanmoyTheBoT/fmdb-api/internal/config"
)

func TestConfigJS(t *testing.T) {
	cfg := &config.Config{SocketServerURL: "https://sockets.fmdb.example.com"}
	h := NewPagesHandler(cfg)

	rec := httptest.NewRecorder()
	h.ConfigJS(rec, httptest.NewRequest(http.MethodGet, "/config.js", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/javascript" {
		t.Errorf("Content-Type = %q, want application/javascript", ct)
	}
	want := "window.APP_CONFIG = {\n  SOCKET_SERVER_URL: 'https://sockets.fmdb.example.com'\n};\n"
	if rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["Response"] != "False" || body["Error"] != "Not Found" {
		t.Errorf("body = %v, want Response False / Error Not Found", body)
	}
}
