package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// PreviewOverlay is a full-canvas pop-up showing a paper preview image.
// Tapping the backdrop or the close button dismisses it; taps on the content
// are swallowed. A dismissed overlay is not reused.
type PreviewOverlay struct {
	widget.BaseWidget

	canvas       fyne.Canvas
	localization *Localization

	image    *canvas.Image
	status   *widget.Label
	closeBtn *widget.Button
	content  *tapSink

	onDismiss func()
	shown     bool
}

// NewPreviewOverlay creates an overlay for canvas c. onDismiss runs once,
// after the overlay has been removed.
func NewPreviewOverlay(c fyne.Canvas, localization *Localization, onDismiss func()) *PreviewOverlay {
	p := &PreviewOverlay{
		canvas:       c,
		localization: localization,
		onDismiss:    onDismiss,
	}
	p.ExtendBaseWidget(p)
	p.createUI()
	return p
}

func (p *PreviewOverlay) createUI() {
	header := widget.NewLabel(p.localization.GetText(KeyPreviewTitle))
	header.TextStyle = fyne.TextStyle{Bold: true}

	p.closeBtn = widget.NewButton(IconClose, p.Dismiss)
	p.closeBtn.Importance = widget.LowImportance

	p.image = canvas.NewImageFromResource(nil)
	p.image.FillMode = canvas.ImageFillContain
	p.image.SetMinSize(fyne.NewSize(PreviewImageWidth, PreviewImageHeight))

	p.status = widget.NewLabel(IconPending)
	p.status.Alignment = fyne.TextAlignCenter

	note := widget.NewLabel(p.localization.GetText(KeyPreviewNote))
	note.Wrapping = fyne.TextWrapWord
	note.Importance = widget.LowImportance

	bg := canvas.NewRectangle(theme.Color(theme.ColorNameBackground))
	body := container.NewBorder(
		container.NewBorder(nil, nil, nil, p.closeBtn, header),
		note,
		nil, nil,
		container.NewStack(p.image, p.status),
	)
	p.content = newTapSink(container.NewStack(bg, container.NewPadded(body)))
}

// Open adds the overlay to the canvas, covering it entirely
func (p *PreviewOverlay) Open() {
	if p.shown || p.canvas == nil {
		return
	}
	p.shown = true
	p.Resize(p.canvas.Size())
	p.canvas.Overlays().Add(p)
}

// SetImage displays the decoded preview
func (p *PreviewOverlay) SetImage(name string, data []byte) {
	p.image.Resource = fyne.NewStaticResource(name, data)
	p.image.Refresh()
	p.status.Hide()
}

// SetError replaces the image area with a failure message
func (p *PreviewOverlay) SetError(err error) {
	text := IconError + " " + p.localization.GetText(KeyPreviewFailed)
	if err != nil {
		text += ": " + err.Error()
	}
	p.status.SetText(text)
	p.status.Show()
}

// IsOpen reports whether the overlay is currently on its canvas
func (p *PreviewOverlay) IsOpen() bool {
	return p.shown
}

// Dismiss removes the overlay. Further calls are no-ops.
func (p *PreviewOverlay) Dismiss() {
	if !p.shown {
		return
	}
	p.shown = false
	p.canvas.Overlays().Remove(p)
	p.image.Resource = nil

	if p.onDismiss != nil {
		fn := p.onDismiss
		p.onDismiss = nil
		fn()
	}
}

// Tapped dismisses the overlay when the backdrop is tapped
func (p *PreviewOverlay) Tapped(*fyne.PointEvent) {
	p.Dismiss()
}

// CreateRenderer creates the widget renderer
func (p *PreviewOverlay) CreateRenderer() fyne.WidgetRenderer {
	scrim := canvas.NewRectangle(theme.Color(ColorNameScrim))
	return widget.NewSimpleRenderer(container.NewStack(scrim, container.NewCenter(p.content)))
}

// tapSink swallows taps so they do not reach the backdrop below it
type tapSink struct {
	widget.BaseWidget
	content fyne.CanvasObject
}

func newTapSink(content fyne.CanvasObject) *tapSink {
	s := &tapSink{content: content}
	s.ExtendBaseWidget(s)
	return s
}

func (s *tapSink) Tapped(*fyne.PointEvent) {}

func (s *tapSink) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.content)
}
