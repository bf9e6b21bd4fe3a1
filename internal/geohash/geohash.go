// Package geohash layers the set operations geoq needs (children, covering,
// roots, long-form conversion) over the base32 cell math.
package geohash

import (
	"errors"
	"fmt"

	mgeohash "github.com/mmcloughlin/geohash"
	"github.com/paulmach/orb"

	"github.com/geoq-cli/geoq/internal/spatial"
)

// Base32Alphabet is the geohash character set: digits and lowercase letters
// minus a, i, l, o.
const Base32Alphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// MaxLevel is the deepest supported character precision.
const MaxLevel = 12

// ErrCoveringTooLarge aborts coverings that would exceed the configured cap.
var ErrCoveringTooLarge = errors.New("covering exceeds cell limit")

// Roots returns the 32 top-level geohash cells.
func Roots() []string {
	roots := make([]string, 0, len(Base32Alphabet))
	for _, c := range Base32Alphabet {
		roots = append(roots, string(c))
	}
	return roots
}

// Children returns the 32 direct children of a hash, in alphabet order.
func Children(hash string) []string {
	children := make([]string, 0, len(Base32Alphabet))
	for _, c := range Base32Alphabet {
		children = append(children, hash+string(c))
	}
	return children
}

// Neighbors returns the 3x3 grid around a hash: the hash itself first, then
// its eight neighbors clockwise from north. With includeSelf false the hash
// itself is omitted.
func Neighbors(hash string, includeSelf bool) []string {
	neighbors := mgeohash.Neighbors(hash)
	if !includeSelf {
		return neighbors
	}
	out := make([]string, 0, len(neighbors)+1)
	out = append(out, hash)
	return append(out, neighbors...)
}

// Encode returns the base32 hash of a point at the given character precision.
func Encode(lat, lng float64, chars int) string {
	return mgeohash.EncodeWithPrecision(lat, lng, uint(chars))
}

// EncodeLong converts a full 64-bit integer geohash to its 12-character
// base32 form. The low 4 bits carry no character and are dropped.
func EncodeLong(v uint64) string {
	var b [12]byte
	for i := 0; i < 12; i++ {
		shift := uint(64 - 5*(i+1))
		b[i] = Base32Alphabet[(v>>shift)&0x1f]
	}
	return string(b[:])
}

// CellBound returns the lon/lat bounding box of a hash.
func CellBound(hash string) orb.Bound {
	box := mgeohash.BoundingBox(hash)
	return orb.Bound{
		Min: orb.Point{box.MinLng, box.MinLat},
		Max: orb.Point{box.MaxLng, box.MaxLat},
	}
}

// CellPolygon returns the bounding box of a hash as a closed polygon.
func CellPolygon(hash string) orb.Polygon {
	b := CellBound(hash)
	return orb.Polygon{orb.Ring{
		{b.Min.X(), b.Min.Y()},
		{b.Max.X(), b.Min.Y()},
		{b.Max.X(), b.Max.Y()},
		{b.Min.X(), b.Max.Y()},
		{b.Min.X(), b.Min.Y()},
	}}
}

// Covering returns every level-length hash whose cell intersects g, walking
// down from the 32 roots and pruning subtrees whose cells miss the geometry.
// maxCells caps the result; crossing it returns ErrCoveringTooLarge.
func Covering(g orb.Geometry, level int, maxCells int) ([]string, error) {
	if level < 1 || level > MaxLevel {
		return nil, fmt.Errorf("geohash level must be 1..%d, got %d", MaxLevel, level)
	}

	var out []string
	var walk func(hash string) error
	walk = func(hash string) error {
		if !spatial.Intersects(CellPolygon(hash), g) {
			return nil
		}
		if len(hash) == level {
			if maxCells > 0 && len(out) >= maxCells {
				return fmt.Errorf("%w: more than %d cells at level %d", ErrCoveringTooLarge, maxCells, level)
			}
			out = append(out, hash)
			return nil
		}
		for _, c := range Base32Alphabet {
			if err := walk(hash + string(c)); err != nil {
				return err
			}
		}
		return nil
	}

	for _, c := range Base32Alphabet {
		if err := walk(string(c)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
