package corpus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestBuiltinCorpusIsWiderThanViewport(t *testing.T) {
	src := Builtin()
	if src.Len() <= 800 {
		t.Fatalf("builtin corpus too short: %d code points", src.Len())
	}
	if strings.Contains(src.Text(), "\n\n") {
		t.Fatal("builtin documents should be joined with single spaces")
	}
}

func TestLoaderJoinsLocalAndRemoteDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/text2.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Second document.\n"))
	}))
	defer server.Close()

	dir := t.TempDir()
	first := writeFile(t, dir, "text1.txt", []byte("  First document.\n\n"))

	src, err := Loader{Client: server.Client()}.Load(context.Background(), []string{first, server.URL + "/text2.txt"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := src.Text(); got != "First document. Second document." {
		t.Fatalf("unexpected corpus: %q", got)
	}
}

func TestLoaderReportsHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	_, err := Loader{Client: server.Client()}.Load(context.Background(), []string{server.URL + "/missing.txt"})
	if err == nil || !strings.Contains(err.Error(), "410") {
		t.Fatalf("expected HTTP status in error, got %v", err)
	}
}

func TestLoaderWithoutLocationsUsesBuiltin(t *testing.T) {
	src, err := Loader{}.Load(context.Background(), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if src.Text() != Builtin().Text() {
		t.Fatal("expected builtin corpus")
	}
}

func TestReadUploadAcceptsText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", append([]byte{0xEF, 0xBB, 0xBF}, []byte("안녕하세요. Hello there!")...))
	src, err := ReadUpload(path, 0)
	if err != nil {
		t.Fatalf("ReadUpload() error = %v", err)
	}
	if src.Text() != "안녕하세요. Hello there!" {
		t.Fatalf("unexpected upload text: %q", src.Text())
	}
	if src.Origin() != "notes.txt" {
		t.Fatalf("unexpected origin: %q", src.Origin())
	}
}

func TestReadUploadRejections(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name  string
		path  string
		limit int64
		want  error
	}{
		{name: "wrong extension", path: writeFile(t, dir, "image.png", []byte("\x89PNG\r\n\x1a\n")), want: ErrUnsupportedUpload},
		{name: "binary with txt extension", path: writeFile(t, dir, "fake.txt", []byte("%PDF-1.7\x00\x01\x02")), want: ErrUnsupportedUpload},
		{name: "invalid utf8", path: writeFile(t, dir, "latin1.txt", []byte("caf\xe9 au lait")), want: ErrUnsupportedUpload},
		{name: "too large", path: writeFile(t, dir, "big.txt", []byte(strings.Repeat("a", 64))), limit: 16, want: ErrUploadTooLarge},
		{name: "blank path", path: "  ", want: ErrEmptyLocation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src, err := ReadUpload(tc.path, tc.limit)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if src != nil {
				t.Fatalf("rejected upload must not return text, got %q", src.Text())
			}
		})
	}
}
