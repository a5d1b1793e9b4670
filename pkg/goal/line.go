package goal

import (
	"fmt"
	"strconv"
	"strings"
)

const fieldSeparator = "|"

// Boolean literals used in persisted lines.
const (
	literalTrue  = "True"
	literalFalse = "False"
)

// Field counts per kind, including the tag.
const (
	simpleFields    = 5
	eternalFields   = 4
	checklistFields = 7
)

// Line renders g in its canonical persisted form:
//
//	Simple|<title>|<description>|<points>|<True|False>
//	Eternal|<title>|<description>|<points>
//	Checklist|<title>|<description>|<points>|<required>|<done>|<bonus>
func (g *Goal) Line() string {
	fields := []string{string(g.Kind), g.Title, g.Description, strconv.Itoa(g.Points)}
	switch g.Kind {
	case KindSimple:
		fields = append(fields, formatBool(g.Complete))
	case KindChecklist:
		fields = append(fields,
			strconv.Itoa(g.Required),
			strconv.Itoa(g.Done),
			strconv.Itoa(g.Bonus),
		)
	}
	return strings.Join(fields, fieldSeparator)
}

// ParseLine rebuilds a goal from a line produced by Line.
func ParseLine(line string) (*Goal, error) {
	parts := strings.Split(line, fieldSeparator)
	kind := Kind(parts[0])

	var want int
	switch kind {
	case KindSimple:
		want = simpleFields
	case KindEternal:
		want = eternalFields
	case KindChecklist:
		want = checklistFields
	default:
		return nil, fmt.Errorf("%w: unknown goal type %q", ErrCorruptData, parts[0])
	}
	if len(parts) != want {
		return nil, fmt.Errorf("%w: %s line has %d fields, want %d", ErrCorruptData, kind, len(parts), want)
	}

	points, err := parseInt("points", parts[3])
	if err != nil {
		return nil, err
	}

	g := &Goal{Kind: kind, Title: parts[1], Description: parts[2], Points: points}
	switch kind {
	case KindSimple:
		if g.Complete, err = parseBool(parts[4]); err != nil {
			return nil, err
		}
	case KindChecklist:
		if g.Required, err = parseInt("times required", parts[4]); err != nil {
			return nil, err
		}
		if g.Done, err = parseInt("times completed", parts[5]); err != nil {
			return nil, err
		}
		if g.Bonus, err = parseInt("bonus", parts[6]); err != nil {
			return nil, err
		}
	}

	if err := g.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	// Recording stops at Required, so a larger count was never written by Line.
	if kind == KindChecklist && g.Done > g.Required {
		return nil, fmt.Errorf("%w: times completed %d exceeds times required %d", ErrCorruptData, g.Done, g.Required)
	}
	return g, nil
}

func parseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrCorruptData, field, s)
	}
	return n, nil
}

func formatBool(b bool) string {
	if b {
		return literalTrue
	}
	return literalFalse
}

func parseBool(s string) (bool, error) {
	switch s {
	case literalTrue:
		return true, nil
	case literalFalse:
		return false, nil
	default:
		return false, fmt.Errorf("%w: completion flag %q is not %s or %s", ErrCorruptData, s, literalTrue, literalFalse)
	}
}
