package lcu

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
)

func discoveryFor(t *testing.T, srv *httptest.Server) *CredentialDiscovery {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parse server port: %v", err)
	}
	cmdline := fmt.Sprintf("LeagueClientUx.exe --app-port=%d --remoting-auth-token=TOK --riotclient-app-port=1 --riotclient-auth-token=AUX", port)
	lister := &fixtureLister{fn: func(call int) []ProcessInfo {
		return []ProcessInfo{{PID: 1, Name: "LeagueClientUx.exe", CmdLine: cmdline}}
	}}
	return NewCredentialDiscovery(lister)
}

func TestTransportCallDecodesJSON(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "riot" || pass != "TOK" {
			t.Errorf("expected riot/TOK basic auth, got %q/%q ok=%v", user, pass, ok)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"value":42}`)
	}))
	defer srv.Close()

	tr := NewTransport(discoveryFor(t, srv))
	tr.control = srv.Client()

	var out struct {
		Value int `json:"value"`
	}
	if err := tr.Call(context.Background(), http.MethodGet, "/whatever", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Value != 42 {
		t.Fatalf("expected 42, got %d", out.Value)
	}
}

func TestTransportRetriesOnceAfter401(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if n == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"value":7}`)
	}))
	defer srv.Close()

	tr := NewTransport(discoveryFor(t, srv))
	tr.control = srv.Client()

	var out struct {
		Value int `json:"value"`
	}
	if err := tr.Call(context.Background(), http.MethodGet, "/x", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Value != 7 {
		t.Fatalf("expected 7, got %d", out.Value)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected exactly 2 attempts, got %d", calls.Load())
	}
}

func TestTransportSurfacesPersistentUnauthorized(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tr := NewTransport(discoveryFor(t, srv))
	tr.control = srv.Client()

	err := tr.Call(context.Background(), http.MethodGet, "/x", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if kind, ok := KindOf(err); !ok || kind != KindUnauthorized {
		t.Fatalf("expected KindUnauthorized, got %v", err)
	}
}

func TestTransportSurfacesHTTPStatus(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	tr := NewTransport(discoveryFor(t, srv))
	tr.control = srv.Client()

	err := tr.Call(context.Background(), http.MethodGet, "/x", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var lcuErr *Error
	if kind, ok := KindOf(err); !ok || kind != KindHTTPStatus {
		t.Fatalf("expected KindHTTPStatus, got %v", err)
	}
	_ = lcuErr
}

func TestTransportNoContentYieldsNoError(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tr := NewTransport(discoveryFor(t, srv))
	tr.control = srv.Client()

	var out struct {
		Value int `json:"value"`
	}
	if err := tr.Call(context.Background(), http.MethodGet, "/x", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Value != 0 {
		t.Fatalf("expected zero value left untouched, got %d", out.Value)
	}
}
