package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/paper-downloader/internal/model"
)

func sampleCard() model.Card {
	return model.Card{
		Year:        "2022",
		Class:       "10th",
		Subject:     "Hindi",
		MediumLabel: "English Medium",
		URL:         "papers/10th/english/hindi_2022.pdf",
		FileName:    "10th_Hindi_2022.pdf",
		FileSize:    "2.5 MB",
		Pages:       "12",
		Quality:     "Excellent",
		Preview:     "previews/10th_hindi_2022.jpg",
		MetaLines:   []string{"MP Board Question Paper", "Official Previous Year Paper"},
	}
}

func TestPaperCard_Actions(t *testing.T) {
	test.NewApp()
	c := sampleCard()

	pc := NewPaperCard(c, NewLocalization())
	var downloaded, previewed []model.Card
	pc.SetCallbacks(
		func(got model.Card) { downloaded = append(downloaded, got) },
		func(got model.Card) { previewed = append(previewed, got) },
	)
	w := test.NewWindow(pc)
	defer w.Close()

	test.Tap(pc.downloadBtn)
	test.Tap(pc.previewBtn)

	require.Len(t, downloaded, 1)
	require.Len(t, previewed, 1)
	assert.Equal(t, "10th_Hindi_2022.pdf", downloaded[0].FileName)
	assert.Equal(t, c.Preview, previewed[0].Preview)
}

func TestPaperCard_Texts(t *testing.T) {
	test.NewApp()
	pc := NewPaperCard(sampleCard(), NewLocalization())

	assert.Equal(t, "10th Hindi · English Medium", pc.titleLabel.Text)
	assert.Equal(t, "MP Board Question Paper\nOfficial Previous Year Paper", pc.metaLabel.Text)
	assert.Contains(t, pc.detailsLabel.Text, "2.5 MB")
	assert.Contains(t, pc.detailsLabel.Text, "12 pages")
	assert.Equal(t, "Excellent", pc.qualityText.Text)
}

func TestPaperCard_NoPreview(t *testing.T) {
	test.NewApp()
	c := sampleCard()
	c.Preview = ""

	pc := NewPaperCard(c, NewLocalization())
	w := test.NewWindow(pc)
	defer w.Close()

	assert.True(t, pc.previewBtn.Hidden)
	assert.False(t, pc.downloadBtn.Hidden)
}
