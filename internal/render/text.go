package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ytget/paper-downloader/internal/model"
)

// WriteText prints a view as plain text, one block per card.
func WriteText(w io.Writer, view model.View) error {
	var b strings.Builder

	b.WriteString(view.Caption)
	b.WriteString("\n\n")

	if view.IsPlaceholder() {
		fmt.Fprintf(&b, "%s\n%s\n", view.Placeholder.Title, view.Placeholder.Hint)
		_, err := io.WriteString(w, b.String())
		return err
	}

	for i, card := range view.Cards {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s [%s]\n", card.Year, card.Subject, card.Quality)
		fmt.Fprintf(&b, "  Class: %s  Medium: %s  Year: %s\n", card.Class, card.MediumLabel, card.Year)
		fmt.Fprintf(&b, "  %s, %s pages\n", card.FileSize, card.Pages)
		if card.Available() {
			fmt.Fprintf(&b, "  %s -> %s\n", card.URL, card.FileName)
		} else {
			fmt.Fprintf(&b, "  %s (not available yet)\n", card.FileName)
		}
		if card.HasPreview() {
			fmt.Fprintf(&b, "  preview: %s\n", card.Preview)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
