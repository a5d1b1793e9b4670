// Package codec converts engine state to and from the line-oriented save format:
//
//	<score>
//	<one goal line per goal, see goal.Line>
//	BADGE|<label>
package codec

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stefanpenner/quest/pkg/engine"
	"github.com/stefanpenner/quest/pkg/goal"
)

const badgePrefix = "BADGE|"

// Serialize renders s in the save format. Every line, including the last, ends in a newline.
func Serialize(s engine.State) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.Score))
	b.WriteString("\n")
	for _, g := range s.Goals {
		b.WriteString(g.Line())
		b.WriteString("\n")
	}
	for _, badge := range s.Badges {
		b.WriteString(badgePrefix)
		b.WriteString(badge)
		b.WriteString("\n")
	}
	return b.String()
}

// Encode writes the serialized form of s to w.
func Encode(w io.Writer, s engine.State) error {
	_, err := io.WriteString(w, Serialize(s))
	return err
}

// Deserialize parses text produced by Serialize. Empty text yields an empty state.
// Any malformed line fails the whole parse with goal.ErrCorruptData.
func Deserialize(text string) (engine.State, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	// Drop the empty element after the final newline.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var s engine.State
	if len(lines) == 0 {
		return s, nil
	}

	score, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return engine.State{}, fmt.Errorf("%w: line 1: score %q is not an integer", goal.ErrCorruptData, lines[0])
	}
	s.Score = score

	for i, line := range lines[1:] {
		if label, ok := strings.CutPrefix(line, badgePrefix); ok {
			s.Badges = append(s.Badges, label)
			continue
		}
		g, err := goal.ParseLine(line)
		if err != nil {
			return engine.State{}, fmt.Errorf("line %d: %w", i+2, err)
		}
		s.Goals = append(s.Goals, g)
	}
	return s, nil
}

// Decode reads all of r and parses it with Deserialize.
func Decode(r io.Reader) (engine.State, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return engine.State{}, fmt.Errorf("reading save data: %w", err)
	}
	return Deserialize(string(data))
}

// Load parses text and swaps it into e. On error e is left unchanged.
func Load(e *engine.Engine, text string) error {
	s, err := Deserialize(text)
	if err != nil {
		return err
	}
	e.Restore(s)
	return nil
}
