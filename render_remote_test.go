package leadmagnet

// Notes:
// - Every case runs against an httptest server; the handler records the
//   decoded request so the wire format is asserted field by field.

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRemoteRenderer_Success(t *testing.T) {
	t.Parallel()

	var got remoteRequest
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-remote"))
	}))
	defer srv.Close()

	r := NewRemoteRenderer(srv.URL, time.Second, WithPlatform("ios"))
	doc, err := r.RenderDocument(context.Background(), "<html>x</html>", "Guide")
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if string(doc) != "%PDF-remote" {
		t.Errorf("doc = %q", doc)
	}
	if got.HTML != "<html>x</html>" || got.Title != "Guide" || got.Platform != "ios" {
		t.Errorf("request = %+v", got)
	}
	if contentType != "application/json" {
		t.Errorf("Content-Type = %q", contentType)
	}
}

func TestRemoteRenderer_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
		wantErr error
	}{
		{
			name:    "server message surfaced",
			status:  http.StatusInternalServerError,
			body:    `{"error":"Chromium crashed"}`,
			wantMsg: "Chromium crashed",
			wantErr: ErrRemoteRender,
		},
		{
			name:    "non json error body",
			status:  http.StatusBadGateway,
			body:    "<html>bad gateway</html>",
			wantMsg: "Unknown error",
			wantErr: ErrRemoteRender,
		},
		{
			name:    "json without message",
			status:  http.StatusBadRequest,
			body:    `{}`,
			wantMsg: "PDF generation failed: 400",
			wantErr: ErrRemoteRender,
		},
		{
			name:    "empty success body",
			status:  http.StatusOK,
			body:    "",
			wantErr: ErrEmptyDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewRemoteRenderer(srv.URL, time.Second).RenderDocument(context.Background(), "<html></html>", "T")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg == "" {
				return
			}
			var remote *RemoteError
			if !errors.As(err, &remote) {
				t.Fatalf("error %T is not *RemoteError", err)
			}
			if remote.Message != tt.wantMsg || remote.StatusCode != tt.status {
				t.Errorf("RemoteError = %+v, want message %q status %d", remote, tt.wantMsg, tt.status)
			}
		})
	}
}

func TestRemoteRenderer_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := NewRemoteRenderer(srv.URL, 50*time.Millisecond).RenderDocument(context.Background(), "<html></html>", "T")
	if !errors.Is(err, ErrRemoteRender) {
		t.Errorf("error = %v, want ErrRemoteRender", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("request not bounded by timeout: %v", elapsed)
	}
}

func TestRemoteRenderer_CanceledContext(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRemoteRenderer(srv.URL, time.Second).RenderDocument(ctx, "<html></html>", "T")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("server called %d times", calls)
	}
}

func TestNewRemoteRenderer_TimeoutNeverUnbounded(t *testing.T) {
	t.Parallel()

	r := NewRemoteRenderer("http://localhost", 0, WithHTTPClient(&http.Client{}))
	if r.client.Timeout != DefaultRemoteTimeout {
		t.Errorf("client timeout = %v, want %v", r.client.Timeout, DefaultRemoteTimeout)
	}
	if r.platform != DefaultPlatform {
		t.Errorf("platform = %q, want %q", r.platform, DefaultPlatform)
	}

	custom := NewRemoteRenderer("http://localhost", time.Second, WithHTTPClient(&http.Client{Timeout: 3 * time.Second}))
	if custom.client.Timeout != 3*time.Second {
		t.Errorf("custom client timeout = %v", custom.client.Timeout)
	}
}
