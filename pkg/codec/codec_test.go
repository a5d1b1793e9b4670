package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/quest/pkg/engine"
	"github.com/stefanpenner/quest/pkg/goal"
)

func playedEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e := engine.New(nil)
	e.Seed()
	_, err := e.AddGoal(goal.KindChecklist, "Journal", "Write daily", 5, goal.Options{Required: 7, Bonus: 70})
	require.NoError(t, err)

	for _, idx := range []int{0, 1, 1, 2, 2, 2, 3, 0} {
		_, err := e.RecordEvent(idx)
		require.NoError(t, err)
	}
	return e
}

func TestSerialize(t *testing.T) {
	e := playedEngine(t)

	want := strings.Join([]string{
		"1555",
		"Simple|Run Marathon|Finish a marathon|1000|True",
		"Eternal|Read Scriptures|Daily scripture study|100",
		"Checklist|Attend Temple|Go to the temple multiple times|50|3|3|200",
		"Checklist|Journal|Write daily|5|7|1|70",
		"BADGE|Checklist Master: Attend Temple",
	}, "\n") + "\n"
	assert.Equal(t, want, Serialize(e.Snapshot()))
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) *engine.Engine
	}{
		{"empty", func(t *testing.T) *engine.Engine { return engine.New(nil) }},
		{"seeded", func(t *testing.T) *engine.Engine {
			e := engine.New(nil)
			e.Seed()
			return e
		}},
		{"played", playedEngine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := tt.build(t)
			text := Serialize(src.Snapshot())

			dst := engine.New(nil)
			require.NoError(t, Load(dst, text))
			assert.Equal(t, src.Snapshot(), dst.Snapshot())
			assert.Equal(t, text, Serialize(dst.Snapshot()))
		})
	}
}

func TestRoundTripKeepsBehavior(t *testing.T) {
	src := engine.New(nil)
	src.Seed()
	_, err := src.RecordEvent(2)
	require.NoError(t, err)

	dst := engine.New(nil)
	require.NoError(t, Load(dst, Serialize(src.Snapshot())))

	res, err := dst.RecordEvent(2)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Awarded)
	res, err = dst.RecordEvent(2)
	require.NoError(t, err)
	assert.Equal(t, 250, res.Awarded)
	assert.Equal(t, "Checklist Master: Attend Temple", res.Badge)
}

func TestDeserializeEmpty(t *testing.T) {
	for _, text := range []string{"", "\n"} {
		s, err := Deserialize(text)
		require.NoError(t, err)
		assert.Equal(t, 0, s.Score)
		assert.Empty(t, s.Goals)
		assert.Empty(t, s.Badges)
	}
}

func TestDeserializeCRLF(t *testing.T) {
	s, err := Deserialize("120\r\nEternal|Read|Study|100\r\nBADGE|Early Bird\r\n")
	require.NoError(t, err)
	assert.Equal(t, 120, s.Score)
	require.Len(t, s.Goals, 1)
	assert.Equal(t, "Study", s.Goals[0].Description)
	assert.Equal(t, []string{"Early Bird"}, s.Badges)
}

func TestDeserializeCorrupt(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"non-numeric score", "lots\n"},
		{"missing score", "Eternal|Read|Study|100\n"},
		{"non-numeric times required", "10\nChecklist|T|D|10|abc|0|5\n"},
		{"unknown tag", "10\nWeekly|T|D|10\n"},
		{"wrong field count", "10\nSimple|T|D|10\n"},
		{"blank line in the middle", "10\n\nEternal|T|D|10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize(tt.text)
			assert.ErrorIs(t, err, goal.ErrCorruptData)
		})
	}
}

func TestLoadCorruptLeavesEngineUntouched(t *testing.T) {
	e := playedEngine(t)
	before := e.Snapshot()

	err := Load(e, "500\nEternal|Read|Study|100\nChecklist|T|D|10|abc|0|5\n")
	assert.ErrorIs(t, err, goal.ErrCorruptData)
	assert.Equal(t, before, e.Snapshot())
}

func TestEncodeDecode(t *testing.T) {
	e := playedEngine(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, e.Snapshot()))

	s, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, e.Snapshot(), s)
}

func TestDecodeLongLines(t *testing.T) {
	long := strings.Repeat("x", 2*1024*1024)

	s, err := Decode(strings.NewReader("10\nEternal|Read|" + long + "|5\n"))
	require.NoError(t, err)
	require.Len(t, s.Goals, 1)
	assert.Len(t, s.Goals[0].Description, len(long))

	_, err = Decode(strings.NewReader("10\n" + long + "\n"))
	assert.ErrorIs(t, err, goal.ErrCorruptData)
}
