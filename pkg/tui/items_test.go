package tui

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"

	"github.com/stefanpenner/quest/pkg/engine"
	"github.com/stefanpenner/quest/pkg/goal"
)

func sampleEntries() []engine.Entry {
	return []engine.Entry{
		{Index: 0, Kind: goal.KindSimple, Title: "Run Marathon", Description: "Finish a marathon", Points: 1000,
			Status: goal.Status{Kind: goal.KindSimple, Complete: true}},
		{Index: 1, Kind: goal.KindEternal, Title: "Read Scriptures", Description: "Daily study", Points: 100,
			Status: goal.Status{Kind: goal.KindEternal}},
		{Index: 2, Kind: goal.KindChecklist, Title: "Attend Temple", Description: "Weekly", Points: 50,
			Status: goal.Status{Kind: goal.KindChecklist, Done: 1, Required: 3}},
		{Index: 3, Kind: goal.KindSimple, Title: "Learn Go", Points: 10,
			Status: goal.Status{Kind: goal.KindSimple}},
	}
}

func TestBuildItems(t *testing.T) {
	items := BuildItems(sampleEntries())

	assert.Len(t, items, 4)
	assert.Equal(t, IconComplete, items[0].Icon)
	assert.Equal(t, IconEternal, items[1].Icon)
	assert.Equal(t, IconInProgress, items[2].Icon)
	assert.Equal(t, "1/3", items[2].Progress)
	assert.Equal(t, IconIncomplete, items[3].Icon)
	assert.Empty(t, items[3].Progress)
}

func TestFilterItems(t *testing.T) {
	items := BuildItems(sampleEntries())

	tests := []struct {
		query string
		want  []int
	}{
		{"", []int{0, 1, 2, 3}},
		{"MARATHON", []int{0}},
		{"daily", []int{1}},
		{"a", []int{0, 1, 2, 3}},
		{"zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got []int
			for _, item := range FilterItems(items, tt.query) {
				got = append(got, item.Index)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsSaveEvent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "goals.txt")

	assert.True(t, isSaveEvent(fsnotify.Event{Name: target, Op: fsnotify.Write}, target))
	assert.True(t, isSaveEvent(fsnotify.Event{Name: target, Op: fsnotify.Create}, target))
	assert.False(t, isSaveEvent(fsnotify.Event{Name: target, Op: fsnotify.Chmod}, target))
	assert.False(t, isSaveEvent(fsnotify.Event{Name: filepath.Join(dir, ".save-123"), Op: fsnotify.Write}, target))
}
