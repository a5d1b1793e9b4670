package goal

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned when building or parsing goals.
var (
	ErrInvalidConfiguration = errors.New("invalid goal configuration")
	ErrCorruptData          = errors.New("corrupt goal data")
)

// Kind identifies the behavior of a goal.
type Kind string

const (
	KindSimple    Kind = "Simple"
	KindEternal   Kind = "Eternal"
	KindChecklist Kind = "Checklist"
)

// ParseKind accepts the persisted tag or its lowercase form.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "simple":
		return KindSimple, nil
	case "eternal":
		return KindEternal, nil
	case "checklist":
		return KindChecklist, nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidConfiguration, s)
	}
}

// Goal is a single trackable goal. Fields that do not apply to Kind are zero.
type Goal struct {
	Kind        Kind
	Title       string
	Description string
	Points      int // awarded per recorded event

	// Simple
	Complete bool

	// Checklist
	Required int
	Done     int
	Bonus    int
}

// Options carries the checklist-only parameters for New.
type Options struct {
	Required int
	Bonus    int
}

// New builds a goal of the given kind.
func New(kind Kind, title, description string, points int, opts Options) (*Goal, error) {
	switch kind {
	case KindSimple:
		return NewSimple(title, description, points)
	case KindEternal:
		return NewEternal(title, description, points)
	case KindChecklist:
		return NewChecklist(title, description, points, opts.Required, opts.Bonus)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidConfiguration, kind)
	}
}

// NewSimple creates a goal that completes after one event.
func NewSimple(title, description string, points int) (*Goal, error) {
	g := &Goal{Kind: KindSimple, Title: title, Description: description, Points: points}
	return g, g.validate()
}

// NewEternal creates a goal that never completes.
func NewEternal(title, description string, points int) (*Goal, error) {
	g := &Goal{Kind: KindEternal, Title: title, Description: description, Points: points}
	return g, g.validate()
}

// NewChecklist creates a goal that completes after required events and pays bonus on the last one.
func NewChecklist(title, description string, points, required, bonus int) (*Goal, error) {
	g := &Goal{
		Kind:        KindChecklist,
		Title:       title,
		Description: description,
		Points:      points,
		Required:    required,
		Bonus:       bonus,
	}
	return g, g.validate()
}

func (g *Goal) validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidConfiguration)
	}
	// Title and description are stored verbatim in a '|' separated line.
	for _, s := range []string{g.Title, g.Description} {
		if strings.ContainsAny(s, fieldSeparator+"\r\n") {
			return fmt.Errorf("%w: %q contains '|' or a line break", ErrInvalidConfiguration, s)
		}
	}
	// Awards only ever raise the score.
	if g.Points < 0 {
		return fmt.Errorf("%w: points cannot be negative, got %d", ErrInvalidConfiguration, g.Points)
	}
	if g.Kind == KindChecklist {
		if g.Bonus < 0 {
			return fmt.Errorf("%w: bonus cannot be negative, got %d", ErrInvalidConfiguration, g.Bonus)
		}
		if g.Required <= 0 {
			return fmt.Errorf("%w: times required must be positive, got %d", ErrInvalidConfiguration, g.Required)
		}
		if g.Done < 0 {
			return fmt.Errorf("%w: times completed cannot be negative, got %d", ErrInvalidConfiguration, g.Done)
		}
	}
	return nil
}

// IsComplete reports whether further events are no-ops. Eternal goals are never complete.
func (g *Goal) IsComplete() bool {
	switch g.Kind {
	case KindSimple:
		return g.Complete
	case KindChecklist:
		return g.Done >= g.Required
	default:
		return false
	}
}

// RecordEvent applies one progress event and returns the points it earned.
// Completed goals return 0 and are left unchanged.
func (g *Goal) RecordEvent() int {
	switch g.Kind {
	case KindSimple:
		if g.Complete {
			return 0
		}
		g.Complete = true
		return g.Points

	case KindEternal:
		return g.Points

	case KindChecklist:
		if g.IsComplete() {
			return 0
		}
		g.Done++
		award := g.Points
		if g.Done >= g.Required {
			award += g.Bonus
		}
		return award
	}
	return 0
}

// Status describes the progress of a goal.
type Status struct {
	Kind     Kind
	Complete bool
	Done     int // checklist only
	Required int // checklist only
}

// Status returns the current progress of g.
func (g *Goal) Status() Status {
	s := Status{Kind: g.Kind, Complete: g.IsComplete()}
	if g.Kind == KindChecklist {
		s.Done = g.Done
		s.Required = g.Required
	}
	return s
}

// Mark renders the status the way goal listings show it.
func (s Status) Mark() string {
	switch s.Kind {
	case KindEternal:
		return "[∞]"
	case KindChecklist:
		box := "[ ]"
		if s.Complete {
			box = "[X]"
		}
		return fmt.Sprintf("%s Completed %d/%d", box, s.Done, s.Required)
	default:
		if s.Complete {
			return "[X]"
		}
		return "[ ]"
	}
}

// Clone returns an independent copy of g.
func (g *Goal) Clone() *Goal {
	c := *g
	return &c
}
