package ui

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openPreview(t *testing.T) (fyne.Window, *PreviewOverlay, *int) {
	t.Helper()
	test.NewApp()
	w := test.NewWindow(widget.NewLabel("papers"))
	w.Resize(fyne.NewSize(800, 600))
	t.Cleanup(w.Close)

	dismissed := 0
	p := NewPreviewOverlay(w.Canvas(), NewLocalization(), func() { dismissed++ })
	p.Open()
	require.Equal(t, fyne.CanvasObject(p), w.Canvas().Overlays().Top())
	return w, p, &dismissed
}

func TestPreviewOverlay_BackdropTapDismisses(t *testing.T) {
	w, p, dismissed := openPreview(t)

	test.Tap(p)

	assert.Nil(t, w.Canvas().Overlays().Top())
	assert.False(t, p.IsOpen())
	assert.Equal(t, 1, *dismissed)
}

func TestPreviewOverlay_ContentTapKeepsOverlay(t *testing.T) {
	w, p, dismissed := openPreview(t)

	test.Tap(p.content)

	assert.Equal(t, fyne.CanvasObject(p), w.Canvas().Overlays().Top())
	assert.True(t, p.IsOpen())
	assert.Zero(t, *dismissed)
}

func TestPreviewOverlay_CloseButton(t *testing.T) {
	w, p, dismissed := openPreview(t)

	test.Tap(p.closeBtn)
	p.Dismiss()

	assert.Nil(t, w.Canvas().Overlays().Top())
	assert.Equal(t, 1, *dismissed, "dismiss callback runs once")
}

func TestPreviewOverlay_ImageAndError(t *testing.T) {
	_, p, _ := openPreview(t)

	p.SetError(errors.New("boom"))
	assert.False(t, p.status.Hidden)
	assert.Contains(t, p.status.Text, "boom")

	p.SetImage("preview.jpg", []byte("jpeg"))
	assert.True(t, p.status.Hidden)
	require.NotNil(t, p.image.Resource)
	assert.Equal(t, "preview.jpg", p.image.Resource.Name())

	p.Dismiss()
	assert.Nil(t, p.image.Resource)
}
