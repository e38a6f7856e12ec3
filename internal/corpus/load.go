package corpus

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	// ErrUnsupportedUpload rejects anything that is not a UTF-8 .txt file.
	ErrUnsupportedUpload = errors.New("only plain-text .txt files can be uploaded")
	// ErrUploadTooLarge rejects files above the configured size cap.
	ErrUploadTooLarge = errors.New("upload exceeds the size limit")
	// ErrEmptyLocation is returned for blank document locations.
	ErrEmptyLocation = errors.New("document location is empty")
	// ErrInvalidEncoding is returned for documents that are not UTF-8.
	ErrInvalidEncoding = errors.New("text is not valid UTF-8")
)

// DefaultUploadLimit caps uploads at 8 MiB.
const DefaultUploadLimit int64 = 8 << 20

const defaultFetchTimeout = 15 * time.Second

//go:embed texts/*.txt
var builtin embed.FS

// Builtin returns the bundled default corpus.
func Builtin() *Source {
	names, err := fs.Glob(builtin, "texts/*.txt")
	if err != nil {
		return New("", "builtin")
	}
	sort.Strings(names)
	docs := make([]string, 0, len(names))
	for _, name := range names {
		data, err := builtin.ReadFile(name)
		if err != nil {
			continue
		}
		docs = append(docs, string(data))
	}
	return Join("builtin", docs...)
}

// Loader reads the default documents from local paths or http(s) URLs.
type Loader struct {
	Client *http.Client
}

// Load reads every location in order and joins them with a single space.
// Without locations it falls back to the bundled corpus.
func (l Loader) Load(ctx context.Context, locations []string) (*Source, error) {
	if len(locations) == 0 {
		return Builtin(), nil
	}
	docs := make([]string, 0, len(locations))
	for _, location := range locations {
		text, err := l.read(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", location, err)
		}
		docs = append(docs, text)
	}
	src := Join(strings.Join(locations, ","), docs...)
	log.Printf("[corpus] loaded %d documents (%d code points)", len(docs), src.Len())
	return src, nil
}

func (l Loader) read(ctx context.Context, location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", ErrEmptyLocation
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return l.fetch(ctx, location)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return "", err
	}
	return decodeText(data)
}

func (l Loader) fetch(ctx context.Context, url string) (string, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("fetch error: %s (%s)", resp.Status, string(body))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return decodeText(data)
}

// ReadUpload validates and decodes a user-supplied document. Rejections wrap
// ErrUnsupportedUpload or ErrUploadTooLarge and never yield partial text.
func ReadUpload(path string, limit int64) (*Source, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrEmptyLocation
	}
	if !strings.EqualFold(filepath.Ext(path), ".txt") {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedUpload)
	}
	if limit <= 0 {
		limit = DefaultUploadLimit
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", filepath.Base(path), ErrUnsupportedUpload)
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%s is %d bytes (limit %d): %w", filepath.Base(path), info.Size(), limit, ErrUploadTooLarge)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !isText(data) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedUpload)
	}
	text, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedUpload)
	}
	return New(text, filepath.Base(path)), nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}

func isText(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	return strings.HasPrefix(http.DetectContentType(data), "text/")
}
