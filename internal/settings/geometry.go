package settings

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultWidth  = 560
	DefaultHeight = 380
)

// Position is a screen position. Coordinates may be negative on
// multi-monitor setups.
type Position struct {
	X int
	Y int
}

// Geometry is the window size and optional position restored across runs.
type Geometry struct {
	W   int `validate:"gt=0"`
	H   int `validate:"gt=0"`
	Pos *Position
}

// DefaultGeometry returns 560x380 with no position.
func DefaultGeometry() Geometry {
	return Geometry{W: DefaultWidth, H: DefaultHeight}
}

// At returns a copy of g placed at x, y.
func (g Geometry) At(x, y int) Geometry {
	g.Pos = &Position{X: x, Y: y}
	return g
}

// Equal reports whether both geometries describe the same window.
func (g Geometry) Equal(o Geometry) bool {
	if g.W != o.W || g.H != o.H {
		return false
	}
	if g.Pos == nil || o.Pos == nil {
		return g.Pos == nil && o.Pos == nil
	}
	return *g.Pos == *o.Pos
}

func (g Geometry) String() string {
	if g.Pos == nil {
		return fmt.Sprintf("%dx%d", g.W, g.H)
	}
	return fmt.Sprintf("%dx%d%+d%+d", g.W, g.H, g.Pos.X, g.Pos.Y)
}

var validate = validator.New()

// Validate checks that width and height are positive.
func (g Geometry) Validate() error {
	if err := validate.Struct(g); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid geometry: %s must be positive, got %v", verrs[0].Field(), verrs[0].Value())
		}
		return fmt.Errorf("invalid geometry: %w", err)
	}
	return nil
}

// windowRecord is the on-disk shape. Position fields are written as null
// when absent.
type windowRecord struct {
	W *int `json:"w"`
	H *int `json:"h"`
	X *int `json:"x"`
	Y *int `json:"y"`
}

type fileRecord struct {
	Window *windowRecord `json:"window"`
}

func toRecord(g Geometry) fileRecord {
	w, h := g.W, g.H
	rec := windowRecord{W: &w, H: &h}
	if g.Pos != nil {
		x, y := g.Pos.X, g.Pos.Y
		rec.X, rec.Y = &x, &y
	}
	return fileRecord{Window: &rec}
}

// fromRecord converts a decoded file. A position with only one coordinate is
// dropped; a missing or non-positive size makes the record unusable.
func fromRecord(rec fileRecord) (Geometry, error) {
	if rec.Window == nil {
		return Geometry{}, errors.New(`missing "window" object`)
	}
	win := rec.Window
	if win.W == nil || win.H == nil {
		return Geometry{}, errors.New("missing window size")
	}
	g := Geometry{W: *win.W, H: *win.H}
	if win.X != nil && win.Y != nil {
		g.Pos = &Position{X: *win.X, Y: *win.Y}
	}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}
