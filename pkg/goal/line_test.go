package goal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	simple, _ := NewSimple("Run Marathon", "Finish a marathon", 1000)
	eternal, _ := NewEternal("Read Scriptures", "Daily scripture study", 100)
	check, _ := NewChecklist("Attend Temple", "Go to the temple", 50, 3, 200)
	check.RecordEvent()

	assert.Equal(t, "Simple|Run Marathon|Finish a marathon|1000|False", simple.Line())
	assert.Equal(t, "Eternal|Read Scriptures|Daily scripture study|100", eternal.Line())
	assert.Equal(t, "Checklist|Attend Temple|Go to the temple|50|3|1|200", check.Line())

	simple.RecordEvent()
	assert.Equal(t, "Simple|Run Marathon|Finish a marathon|1000|True", simple.Line())
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, g *Goal)
	}{
		{
			name:  "completed simple",
			input: "Simple|Run Marathon|Finish a marathon|1000|True",
			check: func(t *testing.T, g *Goal) {
				assert.Equal(t, KindSimple, g.Kind)
				assert.Equal(t, "Run Marathon", g.Title)
				assert.Equal(t, 1000, g.Points)
				assert.True(t, g.IsComplete())
			},
		},
		{
			name:  "eternal",
			input: "Eternal|Read|Study|100",
			check: func(t *testing.T, g *Goal) {
				assert.Equal(t, KindEternal, g.Kind)
				assert.Equal(t, "Study", g.Description)
			},
		},
		{
			name:  "checklist in progress",
			input: "Checklist|Attend Temple|Go|50|3|2|200",
			check: func(t *testing.T, g *Goal) {
				assert.Equal(t, 3, g.Required)
				assert.Equal(t, 2, g.Done)
				assert.Equal(t, 200, g.Bonus)
				assert.False(t, g.IsComplete())
			},
		},
		{
			name:  "empty description",
			input: "Eternal|Read||100",
			check: func(t *testing.T, g *Goal) {
				assert.Equal(t, "", g.Description)
			},
		},
		{name: "non-numeric required", input: "Checklist|T|D|10|abc|0|5", wantErr: true},
		{name: "unknown tag", input: "Weekly|T|D|10", wantErr: true},
		{name: "lowercase tag", input: "simple|T|D|10|False", wantErr: true},
		{name: "too few fields", input: "Simple|T|D|10", wantErr: true},
		{name: "too many fields", input: "Eternal|T|D|10|x", wantErr: true},
		{name: "bad points", input: "Eternal|T|D|ten", wantErr: true},
		{name: "lowercase bool", input: "Simple|T|D|10|true", wantErr: true},
		{name: "zero required", input: "Checklist|T|D|10|0|0|5", wantErr: true},
		{name: "negative done", input: "Checklist|T|D|10|3|-1|5", wantErr: true},
		{name: "done beyond required", input: "Checklist|T|D|10|3|5|5", wantErr: true},
		{name: "negative points", input: "Eternal|T|D|-50", wantErr: true},
		{
			name:  "checklist exactly complete",
			input: "Checklist|T|D|10|3|3|5",
			check: func(t *testing.T, g *Goal) {
				assert.True(t, g.IsComplete())
			},
		},
		{name: "empty title", input: "Eternal||D|10", wantErr: true},
		{name: "empty line", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseLine(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCorruptData)
				return
			}
			require.NoError(t, err)
			tt.check(t, g)
			assert.Equal(t, tt.input, g.Line())
		})
	}
}
