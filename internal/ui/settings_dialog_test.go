package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/paper-downloader/internal/config"
	"github.com/ytget/paper-downloader/internal/model"
)

func TestSettingsDialog_LoadAndApply(t *testing.T) {
	app := test.NewApp()
	w := test.NewWindow(nil)
	defer w.Close()

	settings := config.NewSettings(app)
	settings.SetMaxParallelDownloads(3)
	sd := NewSettingsDialog(settings, NewLocalization(), w)
	sd.loadCurrentSettings()

	assert.Equal(t, "3", sd.maxParallelEntry.Text)
	assert.Equal(t, "English", sd.mediumSelect.Selected)
	assert.Equal(t, config.DefaultCatalogSource, sd.catalogSourceEntry.Text)

	dir := t.TempDir()
	sd.downloadDirEntry.SetText(dir)
	sd.maxParallelEntry.SetText("42")
	sd.mediumSelect.SetSelected("Hindi")
	sd.languageSelect.SetSelected("हिन्दी")
	sd.autoRevealCheck.SetChecked(true)

	assert.False(t, sd.apply(), "catalog source unchanged")
	assert.Equal(t, dir, settings.GetDownloadDirectory())
	assert.Equal(t, config.MaxParallel, settings.GetMaxParallelDownloads())
	assert.Equal(t, model.MediumHindi, settings.GetDefaultMedium())
	assert.Equal(t, "hi", settings.GetLanguage())
	assert.True(t, settings.GetAutoRevealOnComplete())

	sd.catalogSourceEntry.SetText("https://example.com/papers.yaml")
	assert.True(t, sd.apply())
	assert.Equal(t, "https://example.com/papers.yaml", settings.GetCatalogSource())
}
