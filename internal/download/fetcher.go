package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/paper-downloader/internal/model"
	"github.com/ytget/paper-downloader/internal/platform"
)

// ErrPaperUnavailable is returned for papers whose URL is the "#" sentinel.
var ErrPaperUnavailable = errors.New("paper URL not available")

// ProgressInterval throttles progress callbacks during a transfer.
const ProgressInterval = 250 * time.Millisecond

// Progress describes a transfer in flight.
type Progress struct {
	Done    int64
	Total   int64 // -1 when unknown
	Started time.Time
}

// ProgressFunc receives throttled progress updates.
type ProgressFunc func(Progress)

// IsUnavailable reports whether ref marks a paper that cannot be downloaded.
func IsUnavailable(ref string) bool {
	ref = strings.TrimSpace(ref)
	return ref == "" || ref == model.UnavailableURL
}

// Fetcher saves catalog references to disk.
type Fetcher struct {
	opener Opener
	logger *zap.Logger
}

// NewFetcher creates a fetcher reading through opener.
func NewFetcher(opener Opener, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{opener: opener, logger: logger.Named("fetch")}
}

// Fetch saves ref into dir under a sanitized fileName and returns the path of
// the written file. An existing file is never overwritten; a numbered name is
// used instead. Partial files are removed on failure.
func (f *Fetcher) Fetch(ctx context.Context, ref, dir, fileName string, progress ProgressFunc) (string, error) {
	if IsUnavailable(ref) {
		return "", ErrPaperUnavailable
	}

	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	src, size, err := f.opener.Open(ctx, ref)
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp(dir, ".paper-*.part")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	w := &progressWriter{
		w:        tmp,
		progress: progress,
		state:    Progress{Total: size, Started: time.Now()},
	}
	if _, err := io.Copy(w, contextReader{ctx: ctx, r: src}); err != nil {
		return "", fmt.Errorf("copy %s: %w", ref, err)
	}
	w.flush()

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	// The claimed placeholder is replaced by the rename below.
	dest, err := platform.ClaimUniqueFile(dir, platform.SanitizeFileName(fileName))
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("move into place: %w", err)
	}
	committed = true

	f.logger.Debug("paper saved",
		zap.String("ref", ref),
		zap.String("path", dest),
		zap.Int64("bytes", w.state.Done))
	return dest, nil
}

// contextReader stops a copy as soon as ctx is cancelled.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

type progressWriter struct {
	w        io.Writer
	progress ProgressFunc
	state    Progress
	last     time.Time
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.w.Write(p)
	pw.state.Done += int64(n)
	if pw.progress != nil && time.Since(pw.last) >= ProgressInterval {
		pw.last = time.Now()
		pw.progress(pw.state)
	}
	return n, err
}

func (pw *progressWriter) flush() {
	if pw.progress != nil {
		pw.progress(pw.state)
	}
}
