package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/paper-downloader/internal/model"
)

// PaperCard shows one year's paper with its download and preview actions
type PaperCard struct {
	widget.BaseWidget

	card         model.Card
	localization *Localization

	titleLabel   *widget.Label
	detailsLabel *widget.Label
	metaLabel    *widget.Label
	qualityText  *canvas.Text
	downloadBtn  *widget.Button
	previewBtn   *widget.Button

	onDownload func(model.Card)
	onPreview  func(model.Card)
}

// NewPaperCard creates a card widget for c
func NewPaperCard(c model.Card, localization *Localization) *PaperCard {
	pc := &PaperCard{
		card:         c,
		localization: localization,
	}
	pc.ExtendBaseWidget(pc)
	pc.createUI()
	return pc
}

// SetCallbacks sets the action callbacks
func (pc *PaperCard) SetCallbacks(onDownload, onPreview func(model.Card)) {
	pc.onDownload = onDownload
	pc.onPreview = onPreview
}

// Card returns the descriptor the widget was built from
func (pc *PaperCard) Card() model.Card {
	return pc.card
}

func (pc *PaperCard) createUI() {
	c := pc.card

	pc.titleLabel = widget.NewLabel(c.Class + " " + c.Subject + MiddleDotSeparator + c.MediumLabel)
	pc.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	pc.titleLabel.Truncation = fyne.TextTruncateEllipsis

	pc.metaLabel = widget.NewLabel(strings.Join(c.MetaLines, "\n"))
	pc.metaLabel.Importance = widget.LowImportance

	details := []string{IconFile + " " + c.FileSize, c.Pages + " " + pc.localization.GetText(KeyPages)}
	pc.detailsLabel = widget.NewLabel(strings.Join(details, MiddleDotSeparator))

	pc.qualityText = canvas.NewText(c.Quality, theme.Color(theme.ColorNameSuccess))
	pc.qualityText.TextStyle = fyne.TextStyle{Bold: true}
	pc.qualityText.TextSize = theme.CaptionTextSize()

	pc.downloadBtn = widget.NewButtonWithIcon(pc.localization.GetText(KeyDownloadPaper), theme.DownloadIcon(), func() {
		if pc.onDownload != nil {
			pc.onDownload(pc.card)
		}
	})
	pc.downloadBtn.Importance = widget.HighImportance

	pc.previewBtn = widget.NewButtonWithIcon(pc.localization.GetText(KeyPreview), theme.VisibilityIcon(), func() {
		if pc.onPreview != nil {
			pc.onPreview(pc.card)
		}
	})
	if !c.HasPreview() {
		pc.previewBtn.Hide()
	}
}

// CreateRenderer creates the widget renderer
func (pc *PaperCard) CreateRenderer() fyne.WidgetRenderer {
	body := container.NewVBox(
		pc.titleLabel,
		pc.metaLabel,
		container.NewHBox(pc.detailsLabel, pc.qualityText),
	)
	actions := container.NewGridWithColumns(2, pc.downloadBtn, pc.previewBtn)
	if pc.previewBtn.Hidden {
		actions = container.NewGridWithColumns(1, pc.downloadBtn)
	}

	card := widget.NewCard(pc.card.Year, "", container.NewBorder(nil, actions, nil, nil, body))
	return widget.NewSimpleRenderer(card)
}
