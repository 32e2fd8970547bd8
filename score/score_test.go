package score_test

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/plus3/bricks/event"
	"github.com/plus3/bricks/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		rows int
		want int
	}{
		{1, 10},
		{2, 25},
		{3, 40},
		{4, 55},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d rows", tt.rows), func(t *testing.T) {
			assert.Equal(t, tt.want, score.Points(tt.rows))
		})
	}
}

func clearRows(bus *event.Bus, n int) {
	bus.Emit(event.RowsClearedType, event.RowsCleared{Count: n})
}

func TestPolicyFromRowsCleared(t *testing.T) {
	bus := event.NewBus()
	policy := score.NewPolicy(bus)

	var changes []event.ScoreChanged
	bus.Subscribe(event.ScoreChangedType, func(e *event.Event) {
		sc, _ := event.PayloadOf[event.ScoreChanged](e)
		changes = append(changes, sc)
	})

	clearRows(bus, 1)
	assert.Equal(t, 10, policy.Score())

	clearRows(bus, 2)
	clearRows(bus, 4)
	assert.Equal(t, 90, policy.Score())
	assert.Equal(t, []int{10, 25, 55}, policy.History())

	require.Len(t, changes, 3)
	assert.Equal(t, event.ScoreChanged{Score: 90, History: []int{10, 25, 55}}, changes[2])
	assert.Equal(t, []int{10}, changes[0].History, "published history is a snapshot")
}

func TestPolicyIgnoresEmptyClears(t *testing.T) {
	bus := event.NewBus()
	policy := score.NewPolicy(bus)

	clearRows(bus, 0)
	bus.Emit(event.RowsClearedType, "not a payload")
	assert.Zero(t, policy.Score())
	assert.Empty(t, policy.History())
}

func TestPolicyResetAndClose(t *testing.T) {
	bus := event.NewBus()
	policy := score.NewPolicy(bus)

	clearRows(bus, 2)
	policy.Reset()
	assert.Zero(t, policy.Score())
	assert.Empty(t, policy.History())

	policy.Close()
	clearRows(bus, 1)
	assert.Zero(t, policy.Score())
}

func TestHistoryIsCopied(t *testing.T) {
	policy := score.NewPolicy(event.NewBus())
	policy.Add(1)
	h := policy.History()
	h[0] = 999
	assert.Equal(t, []int{10}, policy.History())
}

func TestDefaultTable(t *testing.T) {
	table := score.DefaultTable()
	require.NoError(t, table.Validate())
	assert.Len(t, table, 9)

	tests := []struct {
		score int
		speed time.Duration
		level int
	}{
		{0, time.Second, 1},
		{499, time.Second, 1},
		{500, 800 * time.Millisecond, 2},
		{1999, 600 * time.Millisecond, 3},
		{2000, 400 * time.Millisecond, 4},
		{5999, 300 * time.Millisecond, 5},
		{6000, 200 * time.Millisecond, 6},
		{8500, 150 * time.Millisecond, 7},
		{9999, 100 * time.Millisecond, 8},
		{10000, 20 * time.Millisecond, 9},
		{math.MaxInt, 20 * time.Millisecond, 9},
	}

	for _, tt := range tests {
		tier := table.Lookup(tt.score)
		assert.Equal(t, tt.speed, tier.Speed, "score %d", tt.score)
		assert.Equal(t, tt.level, tier.Level, "score %d", tt.score)
	}
}

func TestTableValidate(t *testing.T) {
	tests := map[string]score.Table{
		"empty":       {},
		"late start":  {{From: 5, To: 10, Speed: time.Second, Level: 1}},
		"inverted":    {{From: 0, To: -1, Speed: time.Second, Level: 1}},
		"zero speed":  {{From: 0, To: 10, Level: 1}},
		"gap":         {{From: 0, To: 10, Speed: time.Second, Level: 1}, {From: 12, To: 20, Speed: time.Second, Level: 2}},
		"overlapping": {{From: 0, To: 10, Speed: time.Second, Level: 1}, {From: 10, To: 20, Speed: time.Second, Level: 2}},
	}

	for name, table := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, table.Validate(), score.ErrInvalidTable)
		})
	}

	_, err := score.NewSpeedPolicy(event.NewBus(), score.Table{})
	assert.ErrorIs(t, err, score.ErrInvalidTable)
}

func TestSpeedPolicyOnlyAnnouncesLevelChanges(t *testing.T) {
	bus := event.NewBus()
	score.NewPolicy(bus)
	speed, err := score.NewSpeedPolicy(bus, score.Table{
		{From: 0, To: 24, Speed: time.Second, Level: 1},
		{From: 25, To: math.MaxInt, Speed: 500 * time.Millisecond, Level: 2},
	})
	require.NoError(t, err)

	var levels []event.LevelUpdated
	var speeds []event.SpeedChanged
	bus.Subscribe(event.LevelUpdatedType, func(e *event.Event) {
		p, _ := event.PayloadOf[event.LevelUpdated](e)
		levels = append(levels, p)
	})
	bus.Subscribe(event.SpeedChangedType, func(e *event.Event) {
		p, _ := event.PayloadOf[event.SpeedChanged](e)
		speeds = append(speeds, p)
	})

	clearRows(bus, 1) // 10
	clearRows(bus, 1) // 20
	assert.Len(t, levels, 2)
	assert.Empty(t, speeds)
	assert.Equal(t, 1, speed.Level())

	clearRows(bus, 1) // 30
	clearRows(bus, 1) // 40
	assert.Len(t, levels, 4)
	require.Len(t, speeds, 1)
	assert.Equal(t, event.SpeedChanged{Speed: 500 * time.Millisecond, Level: 2, Score: 30}, speeds[0])
	assert.Equal(t, 500*time.Millisecond, speed.Speed())

	speed.Reset()
	assert.Equal(t, 1, speed.Level())
	assert.Equal(t, time.Second, speed.Speed())

	speed.Close()
	clearRows(bus, 1)
	assert.Len(t, levels, 4)
}

func ExamplePoints() {
	for n := 1; n <= 4; n++ {
		fmt.Println(n, score.Points(n))
	}
	// Output:
	// 1 10
	// 2 25
	// 3 40
	// 4 55
}
