package model

// Class identifiers.
const (
	Class10th = "10th"
	Class12th = "12th"
)

// Medium identifiers.
const (
	MediumEnglish = "english"
	MediumHindi   = "hindi"
)

// Initial selection values.
const (
	DefaultClass  = Class10th
	DefaultMedium = MediumEnglish
)

// subjectTable lists the subjects offered for each class, in display order.
var subjectTable = map[string][]string{
	Class10th: {"Hindi", "English", "Science", "Math", "Sanskrit"},
	Class12th: {"Hindi", "English", "Physics", "Chemistry", "Math", "Biology"},
}

// Classes returns the known class identifiers in display order.
func Classes() []string {
	return []string{Class10th, Class12th}
}

// Media returns the known medium identifiers in display order.
func Media() []string {
	return []string{MediumEnglish, MediumHindi}
}

// AvailableSubjects returns a copy of the subject list for class, or nil when
// the class is unknown.
func AvailableSubjects(class string) []string {
	subjects, ok := subjectTable[class]
	if !ok {
		return nil
	}
	out := make([]string, len(subjects))
	copy(out, subjects)
	return out
}

// IsKnownClass reports whether class is one of Classes().
func IsKnownClass(class string) bool {
	_, ok := subjectTable[class]
	return ok
}

// IsKnownMedium reports whether medium is one of Media().
func IsKnownMedium(medium string) bool {
	return medium == MediumEnglish || medium == MediumHindi
}

// HasSubject reports whether subject is offered for class.
func HasSubject(class, subject string) bool {
	for _, s := range subjectTable[class] {
		if s == subject {
			return true
		}
	}
	return false
}

// Selection is the user's current filter. Subject is empty until chosen.
type Selection struct {
	Class   string
	Medium  string
	Subject string
}

// NewSelection returns the initial selection.
func NewSelection() Selection {
	return Selection{Class: DefaultClass, Medium: DefaultMedium}
}

// HasSubject reports whether a subject has been chosen.
func (s Selection) HasSubject() bool {
	return s.Subject != ""
}
