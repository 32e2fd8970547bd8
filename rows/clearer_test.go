package rows_test

import (
	"fmt"
	"testing"

	"github.com/plus3/bricks/event"
	"github.com/plus3/bricks/grid"
	"github.com/plus3/bricks/rows"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want []int
	}{
		{"empty", []string{"...", "..."}, nil},
		{"bottom", []string{"#..", "###"}, []int{1}},
		{"gap", []string{"###", "#.#", "###"}, []int{0, 2}},
		{"all", []string{"####", "####", "####", "####"}, []int{0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rows.Detect(grid.MustParse(tt.rows...)))
		})
	}
}

func TestUpdateAllFull(t *testing.T) {
	g := grid.MustParse("####", "####", "####", "####")
	require.Equal(t, []int{0, 1, 2, 3}, rows.Detect(g))

	n := rows.NewClearer(nil).Update(g)
	assert.Equal(t, 4, n)
	assert.Equal(t, 0, g.Count())
}

func TestUpdateShiftsRowsAbove(t *testing.T) {
	g := grid.MustParse(
		"#...",
		".#..",
		"####",
		"..#.",
		"####",
	)

	n := rows.NewClearer(nil).Update(g)
	assert.Equal(t, 2, n)
	assert.Equal(t, ""+
		"....\n"+
		"....\n"+
		"#...\n"+
		".#..\n"+
		"..#.", g.String())
}

func TestUpdateNothingFull(t *testing.T) {
	bus := event.NewBus()
	published := 0
	bus.Subscribe(event.RowsClearedType, func(*event.Event) { published++ })

	g := grid.MustParse("#..", "##.")
	assert.Equal(t, 0, rows.NewClearer(bus).Update(g))
	assert.Equal(t, "#..\n##.", g.String())
	assert.Zero(t, published)
}

func TestUpdateMovesTags(t *testing.T) {
	g := grid.MustParse("#.", "##")
	g.SetTag(0, 0, grid.Tag{"shape": "t_shape"})
	g.SetTag(0, 1, grid.Tag{"shape": "long_line"})

	rows.NewClearer(nil).Update(g)
	assert.Equal(t, "..\n#.", g.String())
	assert.Equal(t, "t_shape", g.Tag(0, 1)["shape"])
	assert.Empty(t, g.Tag(0, 0))
}

func TestUpdatePublishes(t *testing.T) {
	bus := event.NewBus()
	var got event.RowsCleared
	bus.Subscribe(event.RowsClearedType, func(e *event.Event) {
		got, _ = event.PayloadOf[event.RowsCleared](e)
	})

	g := grid.MustParse("...", "###", "#.#", "###")
	rows.NewClearer(bus).Update(g)
	assert.Equal(t, event.RowsCleared{Count: 2, Rows: []int{1, 3}}, got)
	assert.Equal(t, "...\n...\n...\n#.#", g.String())
}

func ExampleClearer_Update() {
	stage := grid.MustParse(
		".#..",
		"####",
		"#.##",
	)
	n := rows.NewClearer(nil).Update(stage)
	fmt.Println(n)
	fmt.Println(stage)
	// Output:
	// 1
	// ....
	// .#..
	// #.##
}
