package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "deskup/") {
			t.Errorf("unexpected user agent: %s", ua)
		}
		if got := r.Header.Get("X-Probe"); got != "1" {
			t.Errorf("option header missing, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"setup":"a","punchline":"b"}`))
	}))
	defer server.Close()

	var out struct {
		Setup     string `json:"setup"`
		Punchline string `json:"punchline"`
	}
	c := NewClientWith(server.Client())
	if err := c.GetJSON(context.Background(), server.URL, &out, WithHeader("X-Probe", "1")); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if out.Setup != "a" || out.Punchline != "b" {
		t.Errorf("unexpected decode: %+v", out)
	}
}

func TestDoSendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content-type: %s", ct)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok" {
			t.Errorf("unexpected authorization: %s", auth)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if body["k"] != "v" {
			t.Errorf("unexpected body: %v", body)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClientWith(server.Client())
	err := c.Do(context.Background(), http.MethodPatch, server.URL, map[string]string{"k": "v"}, nil, WithBearer("tok"))
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
}

func TestStatusErrorRedactsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClientWith(server.Client())
	err := c.GetJSON(context.Background(), server.URL+"/weather?appid=SECRET", &struct{}{})

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusUnauthorized {
		t.Errorf("Code = %d, want 401", se.Code)
	}
	if strings.Contains(err.Error(), "SECRET") {
		t.Errorf("error leaks query string: %v", err)
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("error should carry body snippet: %v", err)
	}
}

func TestDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	c := NewClientWith(server.Client())
	var out []int
	err := c.GetJSON(context.Background(), server.URL, &out)
	if err == nil || !strings.Contains(err.Error(), "decoding") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestTransportErrorHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewClientWith(server.Client())
	err := c.GetJSON(ctx, server.URL+"?appid=SECRET", &struct{}{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if err != nil && strings.Contains(err.Error(), "SECRET") {
		t.Errorf("error leaks query string: %v", err)
	}
}
