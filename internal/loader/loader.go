// Package loader acquires timetable documents and normalizes them into
// the generic sheet representation the parser consumes.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Fybex/naukma-schedule-parser/internal/logger"
	"github.com/Fybex/naukma-schedule-parser/internal/sheet"
)

// ErrUnsupportedFormat marks a document whose structural type cannot be
// normalized into a sheet. Legacy .doc files fall under it: converting
// them needs an external office suite.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// The university's file server rejects requests without a browser UA.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Loader downloads timetable documents, caching them on disk, and turns
// them into sheets.
type Loader struct {
	client       *http.Client
	downloadsDir string
	log          *logger.Logger
}

func New(downloadsDir string, log *logger.Logger) *Loader {
	return &Loader{
		client:       &http.Client{Timeout: 60 * time.Second},
		downloadsDir: downloadsDir,
		log:          log,
	}
}

// FetchSheet downloads url, reusing a cached copy when one exists, and
// normalizes the document into a sheet.
func (l *Loader) FetchSheet(ctx context.Context, url string) (*sheet.Sheet, error) {
	local, err := l.download(ctx, url)
	if err != nil {
		return nil, err
	}
	return LoadFile(local)
}

// LoadFile normalizes a local document into a sheet based on its
// extension.
func LoadFile(filePath string) (*sheet.Sheet, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".xlsx":
		return loadXLSX(data)
	case ".xls":
		return loadXLS(data)
	case ".docx":
		return loadDOCX(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Invalidate drops the cached copy of url so the next fetch downloads it
// again. Used by the polling loop after a Last-Modified change.
func (l *Loader) Invalidate(url string) {
	parsed, err := neturl.Parse(url)
	if err != nil {
		return
	}
	local := filepath.Join(l.downloadsDir, path.Base(parsed.Path))
	if err := os.Remove(local); err == nil {
		l.log.Debug("cached document invalidated", "path", local)
	}
}

func (l *Loader) download(ctx context.Context, url string) (string, error) {
	parsed, err := neturl.Parse(url)
	if err != nil {
		return "", fmt.Errorf("parse url %s: %w", url, err)
	}
	local := filepath.Join(l.downloadsDir, path.Base(parsed.Path))

	if _, err := os.Stat(local); err == nil {
		l.log.Debug("using cached document", "path", local)
		return local, nil
	}
	if err := os.MkdirAll(l.downloadsDir, 0o755); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: bad status code %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(local, data, 0o644); err != nil {
		return "", err
	}
	l.log.Info("document downloaded", "url", url, "path", local, "bytes", len(data))
	return local, nil
}

// CheckModified probes url with a HEAD request and reports whether its
// Last-Modified header differs from the previously seen value. Transport
// failures keep the old value and report no change; the next poll retries.
func (l *Loader) CheckModified(ctx context.Context, url, lastModified string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return lastModified, false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		l.log.Warn("head request failed", "url", url, "error", err)
		return lastModified, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.log.Warn("head request rejected", "url", url, "status", resp.StatusCode)
		return lastModified, false
	}

	current := resp.Header.Get("Last-Modified")
	if lastModified == "" {
		l.log.Info("initial fetch required", "url", url)
		return current, true
	}
	if current == lastModified {
		l.log.Debug("document unchanged", "url", url, "last_modified", current)
		return lastModified, false
	}
	l.log.Info("document changed", "url", url, "old", lastModified, "new", current)
	return current, true
}
