package model

// PlaceholderKind identifies a non-card display state.
type PlaceholderKind string

const (
	// PlaceholderNone means the view carries cards.
	PlaceholderNone PlaceholderKind = ""
	// PlaceholderPrompt asks the user to pick a subject.
	PlaceholderPrompt PlaceholderKind = "prompt"
	// PlaceholderNoResults means the selection has no papers.
	PlaceholderNoResults PlaceholderKind = "no-results"
)

// Placeholder is shown instead of cards.
type Placeholder struct {
	Kind  PlaceholderKind
	Title string
	Hint  string
}

// Card describes one paper for display. It carries no markup.
type Card struct {
	Year        string
	Class       string
	Subject     string
	MediumLabel string
	URL         string
	FileName    string
	FileSize    string
	Pages       string
	Quality     string
	Preview     string
	MetaLines   []string
}

// Available reports whether the card has a downloadable file.
func (c Card) Available() bool {
	return c.URL != "" && c.URL != UnavailableURL
}

// HasPreview reports whether a preview image is offered.
func (c Card) HasPreview() bool {
	return c.Preview != ""
}

// View is everything a front end needs to draw the papers area.
type View struct {
	Caption     string
	Placeholder Placeholder
	Cards       []Card
}

// IsPlaceholder reports whether the view shows a placeholder instead of cards.
func (v View) IsPlaceholder() bool {
	return v.Placeholder.Kind != PlaceholderNone
}
