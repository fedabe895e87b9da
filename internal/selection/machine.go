// Package selection holds the class/medium/subject state machine. Front ends
// translate user events into messages and dispatch them; every accepted
// message re-renders the view synchronously.
package selection

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ytget/paper-downloader/internal/model"
	"github.com/ytget/paper-downloader/internal/render"
)

var (
	ErrUnknownClass       = errors.New("unknown class")
	ErrUnknownMedium      = errors.New("unknown medium")
	ErrSubjectUnavailable = errors.New("subject not offered for class")
	ErrUnknownMessage     = errors.New("unknown selection message")
)

// Message is a selection transition request.
type Message interface {
	isMessage()
}

// ChooseClass switches the class and clears the subject.
type ChooseClass struct{ Class string }

// ChooseMedium switches the medium; the subject is kept.
type ChooseMedium struct{ Medium string }

// ChooseSubject picks a subject from the current class's list.
type ChooseSubject struct{ Subject string }

func (ChooseClass) isMessage()   {}
func (ChooseMedium) isMessage()  {}
func (ChooseSubject) isMessage() {}

// Observer is notified after every accepted transition.
type Observer func(sel model.Selection, view model.View)

// Machine owns the selection and the catalog it is resolved against.
// It is not safe for concurrent use; the owning front end drives it from a
// single goroutine.
type Machine struct {
	catalog  model.Catalog
	sel      model.Selection
	subjects []string
	observer Observer
	logger   *zap.Logger
}

// NewMachine creates a machine in the initial state (10th, english, no subject).
func NewMachine(c model.Catalog, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	sel := model.NewSelection()
	return &Machine{
		catalog:  c,
		sel:      sel,
		subjects: model.AvailableSubjects(sel.Class),
		logger:   logger.Named("selection"),
	}
}

// SetObserver registers fn to run after each accepted transition.
func (m *Machine) SetObserver(fn Observer) {
	m.observer = fn
}

// Selection returns the current selection.
func (m *Machine) Selection() model.Selection {
	return m.sel
}

// Subjects returns the subjects offered for the current class.
func (m *Machine) Subjects() []string {
	out := make([]string, len(m.subjects))
	copy(out, m.subjects)
	return out
}

// View renders the current state.
func (m *Machine) View() model.View {
	return render.Render(m.catalog, m.sel)
}

// Dispatch applies msg and returns the new view. A rejected message leaves
// the state untouched and returns the current view with the error.
func (m *Machine) Dispatch(msg Message) (model.View, error) {
	if err := m.apply(msg); err != nil {
		m.logger.Debug("selection rejected", zap.Any("message", msg), zap.Error(err))
		return m.View(), err
	}

	view := m.View()
	m.logger.Debug("selection changed",
		zap.String("class", m.sel.Class),
		zap.String("medium", m.sel.Medium),
		zap.String("subject", m.sel.Subject),
		zap.Int("cards", len(view.Cards)))

	if m.observer != nil {
		m.observer(m.sel, view)
	}
	return view, nil
}

func (m *Machine) apply(msg Message) error {
	switch msg := msg.(type) {
	case ChooseClass:
		if !model.IsKnownClass(msg.Class) {
			return fmt.Errorf("%w: %q", ErrUnknownClass, msg.Class)
		}
		m.sel.Class = msg.Class
		m.sel.Subject = ""
		m.subjects = model.AvailableSubjects(msg.Class)
	case ChooseMedium:
		if !model.IsKnownMedium(msg.Medium) {
			return fmt.Errorf("%w: %q", ErrUnknownMedium, msg.Medium)
		}
		m.sel.Medium = msg.Medium
	case ChooseSubject:
		if !model.HasSubject(m.sel.Class, msg.Subject) {
			return fmt.Errorf("%w: %q (class %s)", ErrSubjectUnavailable, msg.Subject, m.sel.Class)
		}
		m.sel.Subject = msg.Subject
	default:
		return fmt.Errorf("%w: %T", ErrUnknownMessage, msg)
	}
	return nil
}

// Apply replays a full selection through the machine, in class, medium,
// subject order. An empty subject leaves it unset.
func (m *Machine) Apply(sel model.Selection) (model.View, error) {
	msgs := []Message{ChooseClass{Class: sel.Class}, ChooseMedium{Medium: sel.Medium}}
	if sel.Subject != "" {
		msgs = append(msgs, ChooseSubject{Subject: sel.Subject})
	}

	var view model.View
	for _, msg := range msgs {
		var err error
		if view, err = m.Dispatch(msg); err != nil {
			return view, err
		}
	}
	return view, nil
}
