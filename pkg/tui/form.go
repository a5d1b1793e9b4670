package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/stefanpenner/quest/pkg/goal"
)

type formStep int

const (
	stepKind formStep = iota
	stepTitle
	stepDescription
	stepPoints
	stepRequired
	stepBonus
	stepDone
)

// addForm walks through the fields of a new goal one prompt at a time.
type addForm struct {
	step  formStep
	input textinput.Model

	kind        goal.Kind
	title       string
	description string
	points      int
	opts        goal.Options
}

func newAddForm() addForm {
	ti := textinput.New()
	ti.CharLimit = 120
	ti.Focus()
	f := addForm{input: ti}
	f.resetInput()
	return f
}

func (f *addForm) prompt() string {
	switch f.step {
	case stepKind:
		return "Kind (s)imple, (e)ternal, (c)hecklist"
	case stepTitle:
		return "Title"
	case stepDescription:
		return "Description"
	case stepPoints:
		return "Points per event"
	case stepRequired:
		return "Times required"
	case stepBonus:
		return "Completion bonus"
	}
	return ""
}

func (f *addForm) resetInput() {
	f.input.SetValue("")
	switch f.step {
	case stepKind:
		f.input.Placeholder = "simple"
	case stepTitle:
		f.input.Placeholder = "Run a marathon"
	case stepDescription:
		f.input.Placeholder = "markdown welcome"
	default:
		f.input.Placeholder = "0"
	}
}

// advance consumes the current input. On error the step is unchanged.
func (f *addForm) advance() error {
	value := strings.TrimSpace(f.input.Value())

	switch f.step {
	case stepKind:
		kind, err := parseKindShort(value)
		if err != nil {
			return err
		}
		f.kind = kind
		f.step = stepTitle

	case stepTitle:
		if value == "" {
			return fmt.Errorf("title is required")
		}
		f.title = value
		f.step = stepDescription

	case stepDescription:
		f.description = value
		f.step = stepPoints

	case stepPoints:
		n, err := parseNumber(value)
		if err != nil {
			return err
		}
		f.points = n
		if f.kind == goal.KindChecklist {
			f.step = stepRequired
		} else {
			f.step = stepDone
		}

	case stepRequired:
		n, err := parseNumber(value)
		if err != nil {
			return err
		}
		if n <= 0 {
			return fmt.Errorf("times required must be positive")
		}
		f.opts.Required = n
		f.step = stepBonus

	case stepBonus:
		n, err := parseNumber(value)
		if err != nil {
			return err
		}
		f.opts.Bonus = n
		f.step = stepDone
	}

	f.resetInput()
	return nil
}

func (f *addForm) done() bool {
	return f.step == stepDone
}

func parseKindShort(s string) (goal.Kind, error) {
	switch strings.ToLower(s) {
	case "", "s":
		return goal.KindSimple, nil
	case "e":
		return goal.KindEternal, nil
	case "c":
		return goal.KindChecklist, nil
	}
	return goal.ParseKind(s)
}

func parseNumber(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return n, nil
}
