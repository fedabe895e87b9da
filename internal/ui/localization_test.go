package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalization_Defaults(t *testing.T) {
	l := NewLocalization()
	assert.Equal(t, "en", l.GetCurrentLanguage())
	assert.Equal(t, "Paper URL not available. Please check back later.", l.GetText(KeyPaperUnavailable))
	assert.Equal(t, "Note: This is a preview. Download the full PDF for complete paper.", l.GetText(KeyPreviewNote))
}

func TestLocalization_SetLanguage(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage("hi")
	assert.Equal(t, "hi", l.GetCurrentLanguage())
	assert.Equal(t, "कक्षा", l.GetText(KeyClass))

	l.SetLanguage("fr")
	assert.Equal(t, "hi", l.GetCurrentLanguage(), "unknown languages are ignored")

	l.SetLanguage("system")
	assert.Equal(t, "en", l.GetCurrentLanguage())
}

func TestLocalization_Fallbacks(t *testing.T) {
	l := NewLocalization()
	l.texts["hi"] = map[string]string{}
	l.SetLanguage("hi")

	assert.Equal(t, "Download Paper", l.GetText(KeyDownloadPaper), "missing key falls back to English")
	assert.Equal(t, "no_such_key", l.GetText("no_such_key"))
}

func TestLocalization_AllKeysTranslated(t *testing.T) {
	l := NewLocalization()
	for key := range l.texts["en"] {
		_, ok := l.texts["hi"][key]
		assert.True(t, ok, "missing hindi text for %s", key)
	}
}
