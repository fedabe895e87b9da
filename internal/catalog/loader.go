package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/paper-downloader/internal/model"
)

// DefaultSource is the catalog document looked up when none is configured.
const DefaultSource = "papers.json"

// DefaultHTTPTimeout bounds a single catalog or paper request.
const DefaultHTTPTimeout = 30 * time.Second

// Origin tells where the active catalog came from.
type Origin string

const (
	OriginSource   Origin = "source"
	OriginFallback Origin = "fallback"
)

// Format is the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	// ErrEmptyCatalog is returned when a document decodes to nothing.
	ErrEmptyCatalog = errors.New("catalog document is empty")
	// ErrEmptyReference is returned when resolving an empty reference.
	ErrEmptyReference = errors.New("empty resource reference")
)

// StatusError reports a non-OK HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Loader reads the catalog and the resources it references.
type Loader struct {
	source string
	client *http.Client
	logger *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the HTTP client used for remote sources.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client != nil {
			l.client = client
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader for source, which is either an http(s) URL or
// a filesystem path. An empty source means DefaultSource.
func NewLoader(source string, opts ...Option) *Loader {
	source = strings.TrimSpace(source)
	if source == "" {
		source = DefaultSource
	}
	l := &Loader{
		source: source,
		client: &http.Client{Timeout: DefaultHTTPTimeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.Named("catalog")
	return l
}

// Source returns the configured catalog location.
func (l *Loader) Source() string {
	return l.source
}

// Load reads and decodes the catalog. Any failure is logged and the built-in
// fallback catalog is returned instead, so Load never fails.
func (l *Loader) Load(ctx context.Context) (model.Catalog, Origin) {
	c, err := l.load(ctx)
	if err != nil {
		l.logger.Warn("could not load catalog, using fallback data",
			zap.String("source", l.source),
			zap.Error(err))
		return Fallback(), OriginFallback
	}

	l.logger.Info("catalog loaded",
		zap.String("source", l.source),
		zap.Int("classes", len(c)),
		zap.Int("papers", c.Count()))
	return c, OriginSource
}

func (l *Loader) load(ctx context.Context) (model.Catalog, error) {
	rc, _, err := l.open(ctx, l.source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, skipped, err := Decode(data, DetectFormat(l.source))
	if err != nil {
		return nil, err
	}
	for _, s := range skipped {
		l.logger.Warn("skipping malformed catalog entry",
			zap.Strings("path", s.Path),
			zap.String("reason", s.Reason))
	}
	return c, nil
}

// DetectFormat picks the document format from the source's extension.
// Anything that is not .yaml or .yml is treated as JSON.
func DetectFormat(source string) Format {
	p := source
	if u, err := url.Parse(source); err == nil && isRemoteURL(u) {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Resolve turns a reference from the catalog into an absolute URL or path.
// Relative references are resolved against the catalog's own location.
func (l *Loader) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrEmptyReference
	}

	if u, err := url.Parse(ref); err == nil && isRemoteURL(u) {
		return u.String(), nil
	}

	if base, err := url.Parse(l.source); err == nil && isRemoteURL(base) {
		rel, err := url.Parse(ref)
		if err != nil {
			return "", fmt.Errorf("parse reference %q: %w", ref, err)
		}
		return base.ResolveReference(rel).String(), nil
	}

	local := filepath.FromSlash(ref)
	if filepath.IsAbs(local) {
		return local, nil
	}
	return filepath.Join(filepath.Dir(l.source), local), nil
}

// Open resolves ref and opens it for reading. The returned size is -1 when
// unknown.
func (l *Loader) Open(ctx context.Context, ref string) (io.ReadCloser, int64, error) {
	target, err := l.Resolve(ref)
	if err != nil {
		return nil, -1, err
	}
	return l.open(ctx, target)
}

func (l *Loader) open(ctx context.Context, target string) (io.ReadCloser, int64, error) {
	if u, err := url.Parse(target); err == nil && isRemoteURL(u) {
		return l.openRemote(ctx, u.String())
	}
	return openLocal(target)
}

func (l *Loader) openRemote(ctx context.Context, target string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, -1, fmt.Errorf("build request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, -1, fmt.Errorf("GET %s: %w", target, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, -1, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	l.logger.Debug("opened remote resource",
		zap.String("url", target),
		zap.Int64("content_length", resp.ContentLength))
	return resp.Body, resp.ContentLength, nil
}

func openLocal(p string) (io.ReadCloser, int64, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, -1, fmt.Errorf("open %s: %w", p, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, -1, fmt.Errorf("stat %s: %w", p, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, -1, fmt.Errorf("open %s: is a directory", p)
	}
	return f, info.Size(), nil
}

func isRemoteURL(u *url.URL) bool {
	return u.Scheme == "http" || u.Scheme == "https"
}
