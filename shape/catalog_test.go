package shape_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/plus3/bricks/grid"
	"github.com/plus3/bricks/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestDefaultCatalog(t *testing.T) {
	c := shape.Default(seeded(1))
	assert.Equal(t, 7, c.Len())
	assert.Equal(t, []string{
		shape.LongLine,
		shape.LShapeLeft,
		shape.LShapeRight,
		shape.ZigZagZ,
		shape.ZigZagS,
		shape.FourByFour,
		shape.TShape,
	}, c.Names())

	for _, name := range c.Names() {
		g, err := c.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, 4, g.Count(), "%s is a tetromino", name)
	}
}

func TestCanonicalFootprints(t *testing.T) {
	c := shape.Default(nil)

	tests := map[string]string{
		shape.LongLine:    "#\n#\n#\n#",
		shape.LShapeLeft:  "###\n..#",
		shape.LShapeRight: "###\n#..",
		shape.ZigZagZ:     "##.\n.##",
		shape.ZigZagS:     ".##\n##.",
		shape.FourByFour:  "##\n##",
		shape.TShape:      "###\n.#.",
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			g, err := c.Get(name)
			require.NoError(t, err)
			assert.Equal(t, want, g.String())
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	c := shape.NewCatalog(seeded(2))
	require.NoError(t, c.Register(shape.Static{ID: "dot", Columns: [][]bool{{true}}}))

	err := c.Register(shape.Static{ID: "dot", Columns: [][]bool{{true, true}}})
	assert.ErrorIs(t, err, shape.ErrDuplicateShape)
	assert.Contains(t, err.Error(), `"dot"`)
	assert.Equal(t, 1, c.Len())

	assert.Panics(t, func() {
		c.MustRegister(shape.Static{ID: "dot", Columns: [][]bool{{true}}})
	})
}

func TestRegisterMalformed(t *testing.T) {
	c := shape.NewCatalog(nil)
	err := c.Register(shape.Static{ID: "ragged", Columns: [][]bool{{true}, {true, true}}})
	assert.ErrorIs(t, err, grid.ErrMalformedShape)
	assert.Equal(t, 0, c.Len())
}

func TestGetUnknown(t *testing.T) {
	c := shape.Default(nil)
	_, err := c.Get("pentomino")
	assert.ErrorIs(t, err, shape.ErrUnknownShape)
}

func TestGetTagsCells(t *testing.T) {
	c := shape.Default(nil)
	g, err := c.Get(shape.TShape)
	require.NoError(t, err)

	assert.Equal(t, shape.TShape, g.Tag(1, 1)[shape.TagKey])
	assert.Empty(t, g.Tag(0, 1), "empty cells carry no tag")
}

func TestGetReturnsFreshGrids(t *testing.T) {
	c := shape.Default(nil)
	a, err := c.Get(shape.FourByFour)
	require.NoError(t, err)
	a.Clear()

	b, err := c.Get(shape.FourByFour)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Count())
}

func TestStaticMatrixIsCopied(t *testing.T) {
	s := shape.Static{ID: "dot", Columns: [][]bool{{true}}}
	m := s.Matrix()
	m[0][0] = false
	assert.True(t, s.Columns[0][0])
}

func TestRandom(t *testing.T) {
	_, _, err := shape.NewCatalog(nil).Random()
	assert.ErrorIs(t, err, shape.ErrEmptyCatalog)

	c := shape.Default(seeded(3))
	seen := make(map[string]int)
	for i := 0; i < 700; i++ {
		name, g, err := c.Random()
		require.NoError(t, err)
		require.NotNil(t, g)
		seen[name]++
	}
	assert.Len(t, seen, 7, "every shape is eventually drawn")

	// Same seed, same sequence.
	a := shape.Default(seeded(42))
	b := shape.Default(seeded(42))
	for i := 0; i < 20; i++ {
		na, _, _ := a.Next()
		nb, _, _ := b.Next()
		assert.Equal(t, na, nb)
	}
}

func ExampleCatalog_Get() {
	c := shape.Default(nil)
	g, _ := c.Get(shape.TShape)
	fmt.Println(g)
	// Output:
	// ###
	// .#.
}
