package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ytget/paper-downloader/internal/model"
)

// ErrNotAnObject is returned when the document root is not a mapping.
var ErrNotAnObject = errors.New("catalog document is not an object")

// ShapeError describes an entry that was dropped because it does not fit
// the class -> medium -> subject -> year -> record layout.
type ShapeError struct {
	Path   []string
	Reason string
}

func (e ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", strings.Join(e.Path, "/"), e.Reason)
}

// Decode parses a catalog document. Entries that do not fit the catalog
// layout are dropped and reported as ShapeErrors; everything else is kept.
// An error is returned only when the bytes are empty, unparseable, null, or
// not an object at the root.
func Decode(data []byte, format Format) (model.Catalog, []ShapeError, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, ErrEmptyCatalog
	}

	root, err := parseTree(data, format)
	if err != nil {
		return nil, nil, err
	}
	if root == nil {
		return nil, nil, ErrEmptyCatalog
	}
	classes, ok := entries(root)
	if !ok {
		return nil, nil, fmt.Errorf("%w: got %s", ErrNotAnObject, kindOf(root))
	}

	var w shapeWalker
	c := w.catalog(classes)
	sort.Slice(w.skipped, func(i, j int) bool {
		return strings.Join(w.skipped[i].Path, "/") < strings.Join(w.skipped[j].Path, "/")
	})
	return c, w.skipped, nil
}

func parseTree(data []byte, format Format) (any, error) {
	var root any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&root); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, errors.New("decode json catalog: trailing data after document")
		}
	}
	return root, nil
}

type shapeWalker struct {
	skipped []ShapeError
}

func (w *shapeWalker) skip(reason string, path ...string) {
	w.skipped = append(w.skipped, ShapeError{Path: path, Reason: reason})
}

// object returns v as a mapping, recording a skip at path when it is not one.
func (w *shapeWalker) object(v any, path ...string) (map[string]any, bool) {
	m, ok := entries(v)
	if !ok {
		w.skip("expected an object, got "+kindOf(v), path...)
	}
	return m, ok
}

func (w *shapeWalker) catalog(classes map[string]any) model.Catalog {
	c := make(model.Catalog, len(classes))
	for class, v := range classes {
		media, ok := w.object(v, class)
		if !ok {
			continue
		}
		mi := make(model.MediumIndex, len(media))
		for medium, v := range media {
			subjects, ok := w.object(v, class, medium)
			if !ok {
				continue
			}
			si := make(model.SubjectIndex, len(subjects))
			for subject, v := range subjects {
				years, ok := w.object(v, class, medium, subject)
				if !ok {
					continue
				}
				yi := make(model.YearIndex, len(years))
				for year, v := range years {
					if rec, ok := w.record(v, class, medium, subject, year); ok {
						yi[year] = rec
					}
				}
				si[subject] = yi
			}
			mi[medium] = si
		}
		c[class] = mi
	}
	return c
}

// record decodes one paper. A field with a non-scalar value is dropped on its
// own and the rest of the record is kept. Unknown fields are ignored.
func (w *shapeWalker) record(v any, path ...string) (model.PaperRecord, bool) {
	fields, ok := w.object(v, path...)
	if !ok {
		return model.PaperRecord{}, false
	}

	var rec model.PaperRecord
	targets := []struct {
		key string
		dst *model.Scalar
	}{
		{"url", &rec.URL},
		{"fileName", &rec.FileName},
		{"fileSize", &rec.FileSize},
		{"pages", &rec.Pages},
		{"quality", &rec.Quality},
		{"preview", &rec.Preview},
	}
	for _, t := range targets {
		raw, present := fields[t.key]
		if !present {
			continue
		}
		s, ok := model.ScalarOf(raw)
		if !ok {
			w.skip("expected a scalar, got "+kindOf(raw), append(append([]string(nil), path...), t.key)...)
			continue
		}
		*t.dst = s
	}
	return rec, true
}

// entries normalizes the two mapping types produced by the JSON and YAML
// decoders. YAML keys such as 2023 arrive as ints.
func entries(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, int, int64, uint64, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any, map[any]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
