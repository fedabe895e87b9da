package config

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/ytget/paper-downloader/internal/catalog"
	"github.com/ytget/paper-downloader/internal/model"
	"github.com/ytget/paper-downloader/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyMaxParallel        = "max_parallel_downloads"
	KeyCatalogSource      = "catalog_source"
	KeyDefaultMedium      = "default_medium"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultMaxParallel        = 2
	DefaultCatalogSource      = catalog.DefaultSource
	DefaultMedium             = model.DefaultMedium
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
	FallbackDownloadDir       = "/tmp/downloads"
)

// Bounds for parallel downloads
const (
	MinParallel = 1
	MaxParallel = 10
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// DefaultDownloadDirectory returns the user's Downloads directory, or a
// temporary location when it cannot be determined.
func DefaultDownloadDirectory() string {
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return FallbackDownloadDir
	}
	return dir
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		dir = DefaultDownloadDirectory()
		s.SetDownloadDirectory(dir)
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMaxParallelDownloads returns the maximum number of parallel downloads
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	s.app.Preferences().SetInt(KeyMaxParallel, ClampParallel(count))
}

// ClampParallel bounds count to [MinParallel, MaxParallel].
func ClampParallel(count int) int {
	if count < MinParallel {
		return MinParallel
	}
	if count > MaxParallel {
		return MaxParallel
	}
	return count
}

// GetCatalogSource returns the catalog URL or path
func (s *Settings) GetCatalogSource() string {
	return s.app.Preferences().StringWithFallback(KeyCatalogSource, DefaultCatalogSource)
}

// SetCatalogSource sets the catalog URL or path; empty resets to the default
func (s *Settings) SetCatalogSource(source string) {
	source = strings.TrimSpace(source)
	if source == "" {
		source = DefaultCatalogSource
	}
	s.app.Preferences().SetString(KeyCatalogSource, source)
}

// GetDefaultMedium returns the medium selected when the window opens
func (s *Settings) GetDefaultMedium() string {
	medium := s.app.Preferences().String(KeyDefaultMedium)
	if !model.IsKnownMedium(medium) {
		return DefaultMedium
	}
	return medium
}

// SetDefaultMedium sets the startup medium; unknown values are ignored
func (s *Settings) SetDefaultMedium(medium string) {
	if model.IsKnownMedium(medium) {
		s.app.Preferences().SetString(KeyDefaultMedium, medium)
	}
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal saved papers in the file manager
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal saved papers in the file manager
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"hi":     "हिन्दी",
	}
}
