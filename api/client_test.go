package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token() string { return s.token }

func TestGet_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tokens := &staticTokens{token: "tok-123"}
	client := NewClient(srv.URL, 2*time.Second, tokens)

	var out map[string]bool
	if err := client.Get(context.Background(), "/ping", nil, &out); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestGet_NoTokenMeansNoHeader(t *testing.T) {
	var gotAuth string
	var hadHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hadHeader = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, &staticTokens{})
	if err := client.Get(context.Background(), "/ping", nil, nil); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if hadHeader {
		t.Fatalf("request should be unauthenticated, got Authorization=%q", gotAuth)
	}
}

func TestGet_TokenChangeVisibleOnNextRequest(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tokens := &staticTokens{}
	client := NewClient(srv.URL, 2*time.Second, tokens)

	client.Get(context.Background(), "/a", nil, nil)
	tokens.token = "fresh"
	client.Get(context.Background(), "/b", nil, nil)

	if seen[0] != "" || seen[1] != "Bearer fresh" {
		t.Fatalf("token change not visible: %v", seen)
	}
}

func TestGet_QueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nil)
	err := client.Get(context.Background(), "/properties", map[string]string{
		"page":   "2",
		"sortBy": "price_asc",
	}, nil)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if gotQuery != "page=2&sortBy=price_asc" {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
}

func TestDo_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"bad token"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nil)
	err := client.Get(context.Background(), "/users/get-logged-user", nil, nil)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %T: %v", err, err)
	}
	if httpErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", httpErr.Status)
	}
	if string(httpErr.Body) != `{"message":"bad token"}` {
		t.Fatalf("body not carried: %s", httpErr.Body)
	}
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	client := NewClient(srv.URL, time.Second, nil)
	err := client.Get(context.Background(), "/ping", nil, nil)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
}

func TestPost_SendsJSONBody(t *testing.T) {
	var gotBody string
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		gotType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"token":"t"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nil)
	var out struct {
		Token string `json:"token"`
	}
	err := client.Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.c"}, &out)
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	if gotBody != `{"email":"a@b.c"}` {
		t.Fatalf("unexpected body: %s", gotBody)
	}
	if gotType != "application/json" {
		t.Fatalf("unexpected content type: %s", gotType)
	}
	if out.Token != "t" {
		t.Fatalf("response not decoded: %+v", out)
	}
}
