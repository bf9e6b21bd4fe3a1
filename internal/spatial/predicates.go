// Package spatial implements the intersects/contains predicates the filter
// and covering commands need. orb supplies the geometry model but no
// geometry-to-geometry predicates, so the classic planar tests live here:
// bound quick-reject, segment intersection, and even-odd point-in-ring.
// All coordinates are treated as planar lon/lat, matching the original tool.
package spatial

import (
	"github.com/paulmach/orb"
)

type segment [2]orb.Point

// parts is a geometry decomposed into probe-friendly pieces.
type parts struct {
	points   []orb.Point
	segments []segment
	polygons orb.MultiPolygon
}

// Intersects reports whether a and b share at least one point.
func Intersects(a, b orb.Geometry) bool {
	if a == nil || b == nil {
		return false
	}
	if !boundsOverlap(a.Bound(), b.Bound()) {
		return false
	}

	pa := decompose(a)
	pb := decompose(b)

	for _, s := range pa.segments {
		for _, t := range pb.segments {
			if segmentsIntersect(s[0], s[1], t[0], t[1]) {
				return true
			}
		}
	}
	for _, p := range pa.points {
		if pointTouches(p, pb) {
			return true
		}
	}
	for _, p := range pb.points {
		if pointTouches(p, pa) {
			return true
		}
	}
	return false
}

// Contains reports whether every point of g lies within the container, which
// must be a Polygon or MultiPolygon. Boundary points count as within.
func Contains(container, g orb.Geometry) bool {
	if container == nil || g == nil {
		return false
	}

	var mp orb.MultiPolygon
	switch c := container.(type) {
	case orb.Polygon:
		mp = orb.MultiPolygon{c}
	case orb.MultiPolygon:
		mp = c
	default:
		return false
	}

	if !boundsOverlap(container.Bound(), g.Bound()) {
		return false
	}

	pg := decompose(g)
	if len(pg.points) == 0 {
		return false
	}
	for _, p := range pg.points {
		if !multiPolygonContains(mp, p) {
			return false
		}
	}

	// no edge of g may properly cross the container boundary
	pc := decompose(container)
	for _, s := range pg.segments {
		for _, t := range pc.segments {
			if segmentsProperlyCross(s[0], s[1], t[0], t[1]) {
				return false
			}
		}
	}

	// g must not span a hole (or the whole container): no boundary vertex of
	// the container may sit strictly inside g
	for _, p := range pc.points {
		for _, poly := range pg.polygons {
			if polygonInteriorContains(poly, p) {
				return false
			}
		}
	}
	return true
}

func pointTouches(p orb.Point, other parts) bool {
	for _, q := range other.points {
		if p == q {
			return true
		}
	}
	for _, s := range other.segments {
		if onSegment(s[0], s[1], p) {
			return true
		}
	}
	for _, poly := range other.polygons {
		if polygonContains(poly, p) {
			return true
		}
	}
	return false
}

func decompose(g orb.Geometry) parts {
	var out parts
	appendGeometry(&out, g)
	return out
}

func appendGeometry(out *parts, g orb.Geometry) {
	switch v := g.(type) {
	case orb.Point:
		out.points = append(out.points, v)
	case orb.MultiPoint:
		out.points = append(out.points, v...)
	case orb.LineString:
		appendLine(out, v)
	case orb.MultiLineString:
		for _, ls := range v {
			appendLine(out, ls)
		}
	case orb.Ring:
		appendGeometry(out, orb.Polygon{v})
	case orb.Polygon:
		for _, r := range v {
			appendLine(out, orb.LineString(r))
		}
		out.polygons = append(out.polygons, v)
	case orb.MultiPolygon:
		for _, poly := range v {
			appendGeometry(out, poly)
		}
	case orb.Collection:
		for _, member := range v {
			appendGeometry(out, member)
		}
	case orb.Bound:
		appendGeometry(out, boundPolygon(v))
	}
}

func appendLine(out *parts, ls orb.LineString) {
	out.points = append(out.points, ls...)
	for i := 0; i+1 < len(ls); i++ {
		out.segments = append(out.segments, segment{ls[i], ls[i+1]})
	}
}

func boundPolygon(b orb.Bound) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{b.Min.X(), b.Min.Y()},
		{b.Max.X(), b.Min.Y()},
		{b.Max.X(), b.Max.Y()},
		{b.Min.X(), b.Max.Y()},
		{b.Min.X(), b.Min.Y()},
	}}
}

func boundsOverlap(a, b orb.Bound) bool {
	return a.Min.X() <= b.Max.X() && a.Max.X() >= b.Min.X() &&
		a.Min.Y() <= b.Max.Y() && a.Max.Y() >= b.Min.Y()
}

// orient returns the cross product sign of (b-a) x (c-a).
func orient(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// onSegment reports whether p lies on segment ab (inclusive of endpoints).
func onSegment(a, b, p orb.Point) bool {
	if orient(a, b, p) != 0 {
		return false
	}
	return min(a[0], b[0]) <= p[0] && p[0] <= max(a[0], b[0]) &&
		min(a[1], b[1]) <= p[1] && p[1] <= max(a[1], b[1])
}

func segmentsIntersect(p1, p2, q1, q2 orb.Point) bool {
	if segmentsProperlyCross(p1, p2, q1, q2) {
		return true
	}
	return onSegment(q1, q2, p1) || onSegment(q1, q2, p2) ||
		onSegment(p1, p2, q1) || onSegment(p1, p2, q2)
}

// segmentsProperlyCross reports a strict interior crossing: no shared
// endpoints, no collinear touching.
func segmentsProperlyCross(p1, p2, q1, q2 orb.Point) bool {
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// onRingBoundary reports whether p lies on an edge of the ring. The ring may
// arrive closed or open; the wrap edge is handled either way.
func onRingBoundary(r orb.Ring, p orb.Point) bool {
	for i := range r {
		j := (i + 1) % len(r)
		if r[i] == r[j] {
			continue
		}
		if onSegment(r[i], r[j], p) {
			return true
		}
	}
	return false
}

// ringCrossings runs the even-odd ray cast, ignoring boundary cases.
func ringCrossings(r orb.Ring, p orb.Point) bool {
	in := false
	for i := range r {
		j := (i + 1) % len(r)
		a, b := r[i], r[j]
		if (a[1] > p[1]) != (b[1] > p[1]) {
			x := a[0] + (p[1]-a[1])*(b[0]-a[0])/(b[1]-a[1])
			if p[0] < x {
				in = !in
			}
		}
	}
	return in
}

func ringContains(r orb.Ring, p orb.Point) bool {
	if len(r) < 3 {
		return false
	}
	return onRingBoundary(r, p) || ringCrossings(r, p)
}

// polygonContains treats the boundary (outer ring and hole edges) as inside.
func polygonContains(poly orb.Polygon, p orb.Point) bool {
	if len(poly) == 0 {
		return false
	}
	if onRingBoundary(poly[0], p) {
		return true
	}
	if !ringCrossings(poly[0], p) {
		return false
	}
	for _, hole := range poly[1:] {
		if onRingBoundary(hole, p) {
			return true
		}
		if ringCrossings(hole, p) {
			return false
		}
	}
	return true
}

// polygonInteriorContains is the strict variant: boundary points are out.
func polygonInteriorContains(poly orb.Polygon, p orb.Point) bool {
	if len(poly) == 0 || onRingBoundary(poly[0], p) {
		return false
	}
	if !ringCrossings(poly[0], p) {
		return false
	}
	for _, hole := range poly[1:] {
		if onRingBoundary(hole, p) || ringCrossings(hole, p) {
			return false
		}
	}
	return true
}

func multiPolygonContains(mp orb.MultiPolygon, p orb.Point) bool {
	for _, poly := range mp {
		if polygonContains(poly, p) {
			return true
		}
	}
	return false
}
