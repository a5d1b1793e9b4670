package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestAppendAssignsID(t *testing.T) {
	j := setupTestJournal(t)

	ev := &Event{SaveName: "goals", Goal: "Read Scriptures", Kind: "Eternal", Awarded: 100, Score: 100}
	require.NoError(t, j.Append(ev))
	assert.NotEqual(t, uuid.Nil, ev.ID)
	assert.False(t, ev.CreatedAt.IsZero())
}

func TestRecent(t *testing.T) {
	j := setupTestJournal(t)
	base := time.Date(2026, 2, 8, 10, 0, 0, 0, time.UTC)

	events := []*Event{
		{SaveName: "goals", Goal: "Attend Temple", Kind: "Checklist", Awarded: 50, Score: 50, CreatedAt: base},
		{SaveName: "goals", Goal: "Attend Temple", Kind: "Checklist", Awarded: 50, Score: 100, CreatedAt: base.Add(time.Minute)},
		{SaveName: "other", Goal: "Run", Kind: "Simple", Awarded: 10, Score: 10, CreatedAt: base.Add(2 * time.Minute)},
		{SaveName: "goals", Goal: "Attend Temple", Kind: "Checklist", Awarded: 250, Score: 350,
			Badge: "Checklist Master: Attend Temple", CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, ev := range events {
		require.NoError(t, j.Append(ev))
	}

	got, err := j.Recent("goals", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 350, got[0].Score)
	assert.Equal(t, "Checklist Master: Attend Temple", got[0].Badge)
	assert.Equal(t, 100, got[1].Score)

	all, err := j.Recent("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "other", all[1].SaveName)
}
