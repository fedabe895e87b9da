// Package render turns a selection and a catalog into a data-only view:
// a caption plus either paper cards or a placeholder.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ytget/paper-downloader/internal/model"
)

// Text shown on every card and in placeholders.
const (
	BoardLine    = "MP Board Question Paper"
	OfficialLine = "Official Previous Year Paper"

	PromptTitle    = "Select a subject to view question papers"
	PromptHint     = "Choose from the available subjects above"
	NoResultsTitle = "No papers available for this selection"
	NoResultsHint  = "Please try a different subject or medium"

	captionSeparator = " | "
)

// MediumLabel returns the display label for a medium, e.g. "English".
func MediumLabel(medium string) string {
	// Casers keep state, so one per call.
	return cases.Title(language.English).String(medium)
}

// Caption returns the selection summary, e.g. "10th | English Medium | Science".
func Caption(sel model.Selection) string {
	parts := []string{sel.Class, MediumLabel(sel.Medium) + " Medium"}
	if sel.HasSubject() {
		parts = append(parts, sel.Subject)
	}
	return strings.Join(parts, captionSeparator)
}

// Render builds the view for sel. It never fails: a missing subject or
// missing data yields a placeholder.
func Render(c model.Catalog, sel model.Selection) model.View {
	view := model.View{Caption: Caption(sel)}

	if !sel.HasSubject() {
		view.Placeholder = model.Placeholder{
			Kind:  model.PlaceholderPrompt,
			Title: PromptTitle,
			Hint:  PromptHint,
		}
		return view
	}

	papers := c.Papers(sel.Class, sel.Medium, sel.Subject)
	if len(papers) == 0 {
		view.Placeholder = model.Placeholder{
			Kind:  model.PlaceholderNoResults,
			Title: NoResultsTitle,
			Hint:  NoResultsHint,
		}
		return view
	}

	years := SortYears(papers)
	view.Cards = make([]model.Card, 0, len(years))
	for _, year := range years {
		view.Cards = append(view.Cards, NewCard(sel, year, papers[year]))
	}
	return view
}

// NewCard combines a paper record with its selection context, applying the
// documented defaults for missing fields.
func NewCard(sel model.Selection, year string, rec model.PaperRecord) model.Card {
	return model.Card{
		Year:        year,
		Class:       sel.Class,
		Subject:     sel.Subject,
		MediumLabel: MediumLabel(sel.Medium),
		URL:         orDefault(rec.URL, model.UnavailableURL),
		FileName:    orDefault(rec.FileName, DefaultFileName(sel.Class, sel.Subject, year)),
		FileSize:    orDefault(rec.FileSize, model.DefaultFileSize),
		Pages:       orDefault(rec.Pages, model.DefaultPages),
		Quality:     orDefault(rec.Quality, model.DefaultQuality),
		Preview:     strings.TrimSpace(rec.Preview.String()),
		MetaLines:   []string{BoardLine, OfficialLine},
	}
}

// DefaultFileName is the suggested name for a paper without one.
func DefaultFileName(class, subject, year string) string {
	return fmt.Sprintf("%s_%s_%s.pdf", class, subject, year)
}

// SortYears returns the keys of papers newest first. Numeric years come
// before anything else; non-numeric keys sort lexicographically.
func SortYears(papers model.YearIndex) []string {
	years := make([]string, 0, len(papers))
	for y := range papers {
		years = append(years, y)
	}

	sort.Slice(years, func(i, j int) bool {
		yi, errI := strconv.Atoi(years[i])
		yj, errJ := strconv.Atoi(years[j])
		switch {
		case errI == nil && errJ == nil:
			if yi != yj {
				return yi > yj
			}
			return years[i] < years[j]
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return years[i] < years[j]
		}
	})
	return years
}

func orDefault(v model.Scalar, def string) string {
	if s := strings.TrimSpace(v.String()); s != "" {
		return s
	}
	return def
}
