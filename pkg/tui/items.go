package tui

import (
	"fmt"
	"strings"

	"github.com/stefanpenner/quest/pkg/engine"
	"github.com/stefanpenner/quest/pkg/goal"
)

// GoalItem is one row of the goal list.
type GoalItem struct {
	Index    int // engine index
	Name     string
	Icon     string
	Progress string // "2/3" for checklist goals
	Points   int
	Entry    engine.Entry
}

// BuildItems converts engine entries to list rows in engine order.
func BuildItems(entries []engine.Entry) []GoalItem {
	items := make([]GoalItem, 0, len(entries))
	for _, e := range entries {
		item := GoalItem{
			Index:  e.Index,
			Name:   e.Title,
			Icon:   statusIcon(e.Status),
			Points: e.Points,
			Entry:  e,
		}
		if e.Kind == goal.KindChecklist {
			item.Progress = fmt.Sprintf("%d/%d", e.Status.Done, e.Status.Required)
		}
		items = append(items, item)
	}
	return items
}

func statusIcon(s goal.Status) string {
	switch {
	case s.Kind == goal.KindEternal:
		return IconEternal
	case s.Complete:
		return IconComplete
	case s.Kind == goal.KindChecklist && s.Done > 0:
		return IconInProgress
	default:
		return IconIncomplete
	}
}

// FilterItems keeps items whose title or description contains query, ignoring case.
func FilterItems(items []GoalItem, query string) []GoalItem {
	if query == "" {
		return items
	}
	query = strings.ToLower(query)
	var result []GoalItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), query) ||
			strings.Contains(strings.ToLower(item.Entry.Description), query) {
			result = append(result, item)
		}
	}
	return result
}
