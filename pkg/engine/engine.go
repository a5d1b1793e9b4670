// Package engine owns a set of goals and the score and badges they earn.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/stefanpenner/quest/pkg/goal"
)

// ErrIndexOutOfRange is returned when an event targets a goal that does not exist.
var ErrIndexOutOfRange = errors.New("goal index out of range")

// PointsPerLevel is the score needed for each level.
const PointsPerLevel = 1000

const checklistBadgePrefix = "Checklist Master: "

// State is a full copy of the engine contents. It is what gets persisted.
type State struct {
	Score  int
	Goals  []*goal.Goal
	Badges []string
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := State{Score: s.Score, Badges: slices.Clone(s.Badges)}
	if s.Goals != nil {
		c.Goals = make([]*goal.Goal, len(s.Goals))
		for i, g := range s.Goals {
			c.Goals[i] = g.Clone()
		}
	}
	return c
}

// Entry is a read-only view of one goal for listings.
type Entry struct {
	Index       int
	Kind        goal.Kind
	Status      goal.Status
	Title       string
	Description string
	Points      int
}

// Result describes the effect of a single RecordEvent call.
type Result struct {
	Title   string
	Kind    goal.Kind
	Awarded int
	Score   int
	Level   int
	LevelUp bool
	Badge   string // set when this call earned a new badge
}

// Engine tracks goals, score and badges. Mutators take the write lock; readers share the read lock.
type Engine struct {
	mu     sync.RWMutex
	goals  []*goal.Goal
	score  int
	badges []string
	log    *slog.Logger
}

// New returns an empty engine. A nil logger discards output.
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{log: logger}
}

// LevelFor derives the level for a score.
func LevelFor(score int) int {
	return score / PointsPerLevel
}

// AddGoal validates and appends a goal, returning its index.
func (e *Engine) AddGoal(kind goal.Kind, title, description string, points int, opts goal.Options) (int, error) {
	g, err := goal.New(kind, title, description, points, opts)
	if err != nil {
		return -1, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.goals = append(e.goals, g)
	idx := len(e.goals) - 1
	e.log.Info("goal added", "index", idx, "kind", string(kind), "title", title, "points", points)
	return idx, nil
}

// Seed adds a few example goals.
func (e *Engine) Seed() {
	seeds := []struct {
		kind   goal.Kind
		title  string
		desc   string
		points int
		opts   goal.Options
	}{
		{goal.KindSimple, "Run Marathon", "Finish a marathon", 1000, goal.Options{}},
		{goal.KindEternal, "Read Scriptures", "Daily scripture study", 100, goal.Options{}},
		{goal.KindChecklist, "Attend Temple", "Go to the temple multiple times", 50, goal.Options{Required: 3, Bonus: 200}},
	}
	for _, s := range seeds {
		if _, err := e.AddGoal(s.kind, s.title, s.desc, s.points, s.opts); err != nil {
			panic(fmt.Sprintf("invalid seed goal %q: %v", s.title, err))
		}
	}
}

// Goals lists goals in insertion order.
func (e *Engine) Goals() []Entry {
	e.mu.RLock()
	defer e.mu.RUnlock()

	entries := make([]Entry, len(e.goals))
	for i, g := range e.goals {
		entries[i] = Entry{
			Index:       i,
			Kind:        g.Kind,
			Status:      g.Status(),
			Title:       g.Title,
			Description: g.Description,
			Points:      g.Points,
		}
	}
	return entries
}

// Len returns the number of goals.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.goals)
}

// RecordEvent records progress on the goal at index and applies the award.
// Recording a completed goal is not an error; it yields a zero award.
func (e *Engine) RecordEvent(index int) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.goals) {
		return Result{}, fmt.Errorf("%w: %d (have %d goals)", ErrIndexOutOfRange, index, len(e.goals))
	}

	g := e.goals[index]
	wasComplete := g.IsComplete()
	awarded := g.RecordEvent()

	before := LevelFor(e.score)
	e.score += awarded
	res := Result{Title: g.Title, Kind: g.Kind, Awarded: awarded, Score: e.score, Level: LevelFor(e.score)}
	if awarded <= 0 {
		e.log.Debug("event recorded without award", "index", index, "title", g.Title)
		return res, nil
	}

	if g.Kind == goal.KindChecklist && !wasComplete && g.IsComplete() {
		label := checklistBadgePrefix + g.Title
		if !slices.Contains(e.badges, label) {
			e.badges = append(e.badges, label)
			res.Badge = label
			e.log.Info("badge earned", "badge", label)
		}
	}
	res.LevelUp = res.Level > before

	e.log.Info("event recorded", "index", index, "title", g.Title, "awarded", awarded, "score", e.score, "level", res.Level)
	return res, nil
}

// Score returns the accumulated score.
func (e *Engine) Score() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.score
}

// Level returns the level derived from the current score.
func (e *Engine) Level() int {
	return LevelFor(e.Score())
}

// Badges returns earned badges in the order they were earned.
func (e *Engine) Badges() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.badges)
}

// Reset clears goals, badges and score.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.goals = nil
	e.badges = nil
	e.score = 0
	e.log.Info("engine reset")
}

// Snapshot returns a deep copy of the engine state.
func (e *Engine) Snapshot() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return State{Score: e.score, Goals: e.goals, Badges: e.badges}.Clone()
}

// Restore replaces the engine state with a copy of s in one step.
func (e *Engine) Restore(s State) {
	c := s.Clone()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.goals = c.Goals
	e.badges = c.Badges
	e.score = c.Score
	e.log.Info("engine restored", "goals", len(c.Goals), "badges", len(c.Badges), "score", c.Score)
}
