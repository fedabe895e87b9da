package model

import (
	"fmt"
	"strings"
	"time"
)

// DownloadTask represents a single paper download
type DownloadTask struct {
	ID         string
	URL        string // source reference as listed in the catalog
	FileName   string // suggested file name
	Status     TaskStatus
	Progress   float64   // 0.0 to 1.0
	Percent    int       // 0 to 100
	Speed      string    // human readable speed (e.g., "1.2MB/s")
	ETASec     int       // ETA in seconds, -1 if unknown
	BytesDone  int64     // bytes written so far
	BytesTotal int64     // expected size, 0 if unknown
	LastError  string    // last error message if any
	OutputPath string    // path to saved file
	StartedAt  time.Time // when download started
	FinishedAt time.Time // when download finished
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (dt *DownloadTask) GetETAString() string {
	if dt.ETASec <= 0 {
		return "—"
	}

	hours := dt.ETASec / 3600
	minutes := (dt.ETASec % 3600) / 60
	seconds := dt.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns file name, saved file name, or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.FileName != "" {
		return dt.FileName
	}

	if dt.OutputPath != "" {
		// support both / and \ separators
		parts := strings.FieldsFunc(dt.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}

	return dt.URL
}

// Snapshot returns a copy safe to hand to another goroutine.
func (dt *DownloadTask) Snapshot() *DownloadTask {
	cp := *dt
	return &cp
}
