package fetcher

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type mockTransport struct {
	body       string
	statusCode int
	err        error
	lastReq    *http.Request
}

func (m *mockTransport) Do(req *http.Request) (*http.Response, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &http.Response{
		StatusCode: m.statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(m.body)),
	}, nil
}

func TestDownload(t *testing.T) {
	tests := []struct {
		name      string
		transport *mockTransport
		maxBytes  int64
		want      string
		wantErr   error
		anyErr    bool
	}{
		{
			name:      "successful download",
			transport: &mockTransport{body: "\x89PNG data", statusCode: 200},
			maxBytes:  1024,
			want:      "\x89PNG data",
		},
		{
			name:      "exactly at the limit",
			transport: &mockTransport{body: "12345", statusCode: 200},
			maxBytes:  5,
			want:      "12345",
		},
		{
			name:      "over the limit",
			transport: &mockTransport{body: "123456", statusCode: 200},
			maxBytes:  5,
			wantErr:   ErrTooLarge,
			anyErr:    true,
		},
		{
			name:      "http error status",
			transport: &mockTransport{body: "not found", statusCode: 404},
			maxBytes:  1024,
			anyErr:    true,
		},
		{
			name:      "network error",
			transport: &mockTransport{err: io.ErrUnexpectedEOF},
			maxBytes:  1024,
			wantErr:   io.ErrUnexpectedEOF,
			anyErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.transport, tt.maxBytes)
			got, err := f.Download(context.Background(), "https://api.telegram.org/file/botTOKEN/photos/file_0.jpg")
			if tt.anyErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("error %v does not wrap %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDownloadSetsRequest(t *testing.T) {
	tr := &mockTransport{body: "x", statusCode: 200}
	if _, err := New(tr, 10).Download(context.Background(), "https://example.com/a.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(http.MethodGet, tr.lastReq.Method); diff != "" {
		t.Errorf("method (-want +got):\n%s", diff)
	}
	if ua := tr.lastReq.Header.Get("User-Agent"); !strings.HasPrefix(ua, "TGArchiverBot/") {
		t.Errorf("unexpected User-Agent %q", ua)
	}
}

func TestDownloadBadURL(t *testing.T) {
	_, err := New(&mockTransport{statusCode: 200}, 10).Download(context.Background(), "://bad")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
