package flow

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestGateway_ErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   Kind
		wantDetail string
	}{
		{
			name:       "401 is unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"detail":"token expired"}`,
			wantKind:   KindUnauthorized,
			wantDetail: "token expired",
		},
		{
			name:       "422 is validation",
			status:     http.StatusUnprocessableEntity,
			body:       `{"detail":"prompt must not be empty"}`,
			wantKind:   KindValidation,
			wantDetail: "prompt must not be empty",
		},
		{
			name:       "502 is upstream with detail verbatim",
			status:     http.StatusBadGateway,
			body:       `{"detail":"Gemini API error: 503"}`,
			wantKind:   KindUpstream,
			wantDetail: "Gemini API error: 503",
		},
		{
			name:     "unparseable body degrades to unknown",
			status:   http.StatusBadGateway,
			body:     `<html>gateway timeout</html>`,
			wantKind: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			gw := NewGateway(srv.URL, NewSession())
			err := gw.Do(context.Background(), http.MethodGet, "/me", nil, nil, nil)

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if apiErr.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", apiErr.Kind, tt.wantKind)
			}
			if tt.wantDetail != "" && apiErr.Detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", apiErr.Detail, tt.wantDetail)
			}
		})
	}
}

func TestGateway_NetworkError(t *testing.T) {
	gw := NewGateway("http://127.0.0.1:1", NewSession())
	err := gw.Do(context.Background(), http.MethodGet, "/me", nil, nil, nil)

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Kind != KindNetwork {
		t.Errorf("kind = %q, want %q", apiErr.Kind, KindNetwork)
	}
}

func TestGateway_AttachesBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	session := NewSession()
	session.SetCredential("token-123", nil)
	gw := NewGateway(srv.URL, session)

	if err := gw.Do(context.Background(), http.MethodGet, "/me", nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer token-123" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestGateway_RefreshRetriesExactlyOnce(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Header.Get("Authorization") == "Bearer fresh" {
			_, _ = w.Write([]byte(`{"ok":true}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"token expired"}`))
	}))
	defer srv.Close()

	var refreshes atomic.Int32
	session := NewSession()
	session.SetCredential("stale", func(ctx context.Context) (string, error) {
		refreshes.Add(1)
		return "fresh", nil
	})
	gw := NewGateway(srv.URL, session)

	if err := gw.Do(context.Background(), http.MethodGet, "/me", nil, nil, nil); err != nil {
		t.Fatalf("expected success after refresh, got %v", err)
	}
	if refreshes.Load() != 1 {
		t.Errorf("refreshes = %d, want 1", refreshes.Load())
	}
	if requests.Load() != 2 {
		t.Errorf("requests = %d, want 2", requests.Load())
	}
}

func TestGateway_RefreshFailureSurfacesOriginalError(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"token expired"}`))
	}))
	defer srv.Close()

	session := NewSession()
	session.SetCredential("stale", func(ctx context.Context) (string, error) {
		return "", errors.New("refresh rejected")
	})
	gw := NewGateway(srv.URL, session)

	err := gw.Do(context.Background(), http.MethodGet, "/me", nil, nil, nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if requests.Load() != 1 {
		t.Errorf("requests = %d, want 1 (no retry after failed refresh)", requests.Load())
	}
}

func TestGateway_NoRefreshMaterialSurfacesDirectly(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"missing bearer token"}`))
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, NewSession())
	err := gw.Do(context.Background(), http.MethodGet, "/me", nil, nil, nil)

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if requests.Load() != 1 {
		t.Errorf("requests = %d, want 1", requests.Load())
	}
}

func TestGateway_UnexpectedShapeIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, NewSession())
	var out struct{}
	err := gw.Do(context.Background(), http.MethodGet, "/me", nil, nil, &out)

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindUpstream {
		t.Fatalf("expected upstream error for bad shape, got %v", err)
	}
}

func TestSession_Logout(t *testing.T) {
	s := NewSession()
	s.SetCredential("token", func(ctx context.Context) (string, error) { return "x", nil })

	if !s.LoggedIn() || !s.CanRefresh() {
		t.Fatal("expected a logged-in session with refresh material")
	}

	s.Logout()

	if s.LoggedIn() {
		t.Error("expected logged out")
	}
	if s.CanRefresh() {
		t.Error("expected refresh material cleared")
	}
}
