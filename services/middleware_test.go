package services

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})
}

func TestCORSMiddlewareHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	CORSMiddleware(okHandler("hi")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/options-data", nil))

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q", got)
	}
	if rec.Body.String() != "hi" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	CORSMiddleware(okHandler("hi")).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/options-data", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Error("preflight must not reach the handler")
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if zerolog.Ctx(r.Context()) == nil {
			t.Error("request logger missing from context")
		}
		seen = w.Header().Get("X-Request-ID")
	})

	rec := httptest.NewRecorder()
	RequestIDMiddleware(zerolog.Nop(), next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/options-data", nil))

	if seen == "" {
		t.Error("request ID header not set before handler ran")
	}
}

func TestZstdMiddlewareCompresses(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/options-data", nil)
	req.Header.Set("Accept-Encoding", "zstd")

	rec := httptest.NewRecorder()
	ZstdMiddleware(okHandler(`{"data":[]}`)).ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "zstd" {
		t.Fatalf("content-encoding = %q", got)
	}

	dec, err := zstd.NewReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()

	plain, err := io.ReadAll(dec)
	if err != nil {
		t.Fatal(err)
	}
	if string(plain) != `{"data":[]}` {
		t.Errorf("decompressed = %q", plain)
	}
}

func TestZstdMiddlewarePassThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	ZstdMiddleware(okHandler(`{"data":[]}`)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/options-data", nil))

	if rec.Header().Get("Content-Encoding") != "" {
		t.Error("must not compress without zstd in Accept-Encoding")
	}
	if rec.Body.String() != `{"data":[]}` {
		t.Errorf("body = %q", rec.Body.String())
	}
}
