// Package shape holds the named brick footprints and the catalog that draws
// them at random.
package shape

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/plus3/bricks/grid"
)

var (
	// ErrDuplicateShape is returned when a name is registered twice.
	ErrDuplicateShape = errors.New("shape: duplicate shape")

	// ErrUnknownShape is returned for names that were never registered.
	ErrUnknownShape = errors.New("shape: unknown shape")

	// ErrEmptyCatalog is returned when drawing from a catalog with no shapes.
	ErrEmptyCatalog = errors.New("shape: empty catalog")
)

// TagKey is the cell tag under which Get records the shape name.
const TagKey = "shape"

// Provider describes one brick. Matrix is column-major with the origin in the
// top-left corner.
type Provider interface {
	Name() string
	Matrix() [][]bool
}

// Catalog maps unique names to providers. Registration order is kept so that
// a seeded random source always yields the same sequence.
type Catalog struct {
	providers map[string]Provider
	names     []string
	rng       *rand.Rand
}

// NewCatalog creates an empty catalog drawing from rng. A nil rng uses a
// randomly seeded PCG source.
func NewCatalog(rng *rand.Rand) *Catalog {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Catalog{
		providers: make(map[string]Provider),
		rng:       rng,
	}
}

// Register adds a provider. The provider's matrix is validated up front so a
// malformed shape fails at wiring time rather than on first draw.
func (c *Catalog) Register(p Provider) error {
	name := p.Name()
	if _, exists := c.providers[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateShape, name)
	}
	if _, err := grid.FromMatrix(p.Matrix()); err != nil {
		return fmt.Errorf("shape %q: %w", name, err)
	}

	c.providers[name] = p
	c.names = append(c.names, name)
	return nil
}

// MustRegister is Register for static wiring; it panics on error.
func (c *Catalog) MustRegister(providers ...Provider) *Catalog {
	for _, p := range providers {
		if err := c.Register(p); err != nil {
			panic(err)
		}
	}
	return c
}

// Len returns the number of registered shapes.
func (c *Catalog) Len() int { return len(c.names) }

// Names returns the registered names in registration order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Get builds a fresh grid for the named shape. Occupied cells are tagged with
// the shape name.
func (c *Catalog) Get(name string) (*grid.Grid, error) {
	p, ok := c.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}

	g, err := grid.FromMatrix(p.Matrix())
	if err != nil {
		return nil, fmt.Errorf("shape %q: %w", name, err)
	}

	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			if g.Get(x, y) {
				g.SetTag(x, y, grid.Tag{TagKey: name})
			}
		}
	}
	return g, nil
}

// Random draws a shape uniformly over all registered names.
func (c *Catalog) Random() (string, *grid.Grid, error) {
	if len(c.names) == 0 {
		return "", nil, ErrEmptyCatalog
	}

	name := c.names[c.rng.IntN(len(c.names))]
	g, err := c.Get(name)
	if err != nil {
		return "", nil, err
	}
	return name, g, nil
}

// Next draws the next brick; it lets a Catalog act as the game's brick source.
func (c *Catalog) Next() (string, *grid.Grid, error) {
	return c.Random()
}
