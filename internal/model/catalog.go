package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// UnavailableURL marks a paper whose file has not been published yet.
const UnavailableURL = "#"

// Defaults applied to paper records that omit optional fields.
const (
	DefaultFileSize = "N/A"
	DefaultPages    = "N/A"
	DefaultQuality  = "Good"
)

// Scalar is a string field that may come from a JSON or YAML number or
// boolean, so hand-edited catalogs with "pages": 12 decode cleanly.
type Scalar string

// ScalarOf converts a decoded document value to a Scalar. Null, false and
// zero numbers count as absent and give "". ok is false for arrays, objects
// and other non-scalar values.
func ScalarOf(v any) (s Scalar, ok bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return Scalar(x), true
	case bool:
		if !x {
			return "", true
		}
		return Scalar(strconv.FormatBool(x)), true
	case json.Number:
		if f, err := x.Float64(); err == nil && f == 0 {
			return "", true
		}
		return Scalar(x.String()), true
	case int:
		return numberScalar(float64(x), strconv.Itoa(x)), true
	case int64:
		return numberScalar(float64(x), strconv.FormatInt(x, 10)), true
	case uint64:
		return numberScalar(float64(x), strconv.FormatUint(x, 10)), true
	case float64:
		return numberScalar(x, strconv.FormatFloat(x, 'f', -1, 64)), true
	case fmt.Stringer:
		return Scalar(x.String()), true
	}
	return "", false
}

func numberScalar(f float64, text string) Scalar {
	if f == 0 {
		return ""
	}
	return Scalar(text)
}

// String returns the underlying string.
func (s Scalar) String() string {
	return string(s)
}

// PaperRecord is the metadata for a single question paper. Every field is
// optional in the source document; an empty value means "absent".
type PaperRecord struct {
	URL      Scalar
	FileName Scalar
	FileSize Scalar
	Pages    Scalar
	Quality  Scalar
	Preview  Scalar
}

// YearIndex maps a year to the paper published that year.
type YearIndex map[string]PaperRecord

// SubjectIndex maps a subject name to its papers.
type SubjectIndex map[string]YearIndex

// MediumIndex maps a medium identifier to its subjects.
type MediumIndex map[string]SubjectIndex

// Catalog is the full lookup table: class -> medium -> subject -> year.
// It is read-only once loaded.
type Catalog map[string]MediumIndex

// Papers returns the year mapping for the given selection, or nil when any
// level is missing.
func (c Catalog) Papers(class, medium, subject string) YearIndex {
	media, ok := c[class]
	if !ok {
		return nil
	}
	subjects, ok := media[medium]
	if !ok {
		return nil
	}
	return subjects[subject]
}

// Count returns the total number of paper records in the catalog.
func (c Catalog) Count() int {
	n := 0
	for _, media := range c {
		for _, subjects := range media {
			for _, years := range subjects {
				n += len(years)
			}
		}
	}
	return n
}
