/*
Copyright © 2026 the RiverHabitat authors.
This file is part of RiverHabitat.

RiverHabitat is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

RiverHabitat is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with RiverHabitat.  If not, see <http://www.gnu.org/licenses/>.
*/

package habitat

import (
	"math"

	"github.com/ctessum/geom"
)

// interpolate returns the point at arc-length distance d from the start
// of l. ok is false when d is outside [0, length(l)]; callers must clamp.
// Accumulated floating-point error can leave a clamped distance a hair
// beyond the summed length of the vertices, which resolves to the final
// vertex.
func interpolate(l geom.LineString, d float64) (geom.Point, bool) {
	if len(l) < 2 || d < 0 {
		return geom.Point{}, false
	}
	if d == 0 {
		return l[0], true
	}
	var cum float64
	for i := 0; i < len(l)-1; i++ {
		seg := math.Hypot(l[i+1].X-l[i].X, l[i+1].Y-l[i].Y)
		if seg > 0 && cum+seg >= d {
			t := (d - cum) / seg
			return geom.Point{
				X: l[i].X + t*(l[i+1].X-l[i].X),
				Y: l[i].Y + t*(l[i+1].Y-l[i].Y),
			}, true
		}
		cum += seg
	}
	if d-cum <= 1e-9*math.Max(1, d) {
		return l[len(l)-1], true
	}
	return geom.Point{}, false
}

// bufferPolygon expands p outward by margin: the union of p itself, one
// quad per ring edge offset by ±margin, and one disc per ring vertex with
// 4×arcSegments straight segments per full circle. The quads extend half
// a margin past each vertex and the discs are inflated a hair beyond
// margin so neighboring pieces overlap in area; pieces that merely abut
// along shared boundary points make the polygon clipper misbehave.
func bufferPolygon(p geom.Polygon, margin float64, arcSegments int) geom.Polygonal {
	if margin == 0 {
		return p
	}
	var out geom.Polygonal = p
	segments := 4 * arcSegments
	if segments < 4 {
		segments = 4
	}
	r := margin * 1.001
	for _, ring := range p {
		n := len(ring)
		for i := 0; i < n; i++ {
			a := ring[i]
			b := ring[(i+1)%n]
			if q, ok := edgeQuad(a, b, margin); ok {
				out = out.Union(q)
			}
			out = out.Union(a.Buffer(r, segments))
		}
	}
	return out
}

// edgeQuad returns the rectangle covering the edge a-b offset by ±margin
// perpendicular to the edge, stretched by margin/2 past both endpoints so
// it overlaps the vertex discs instead of touching their boundaries.
// ok is false for a zero-length edge.
func edgeQuad(a, b geom.Point, margin float64) (geom.Polygon, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return nil, false
	}
	ux, uy := dx/d*margin/2, dy/d*margin/2
	nx, ny := -dy/d*margin, dx/d*margin
	a = geom.Point{X: a.X - ux, Y: a.Y - uy}
	b = geom.Point{X: b.X + ux, Y: b.Y + uy}
	return geom.Polygon{{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}}, true
}

// dissolve computes the geometric union of all members of polys, merging
// overlapping and adjacent shapes. The result is nil when polys is empty.
func dissolve(polys []geom.Polygonal) geom.Polygonal {
	var out geom.Polygonal
	for _, p := range polys {
		if p == nil {
			continue
		}
		if out == nil {
			out = p
			continue
		}
		out = out.Union(p)
	}
	return out
}

// lineParts decomposes a possibly multi-part linear geometry into its
// constituent single parts, each independently measurable. Parts with
// fewer than 2 points carry no length and are dropped.
func lineParts(g geom.Geom) []geom.LineString {
	switch t := g.(type) {
	case geom.LineString:
		if len(t) < 2 {
			return nil
		}
		return []geom.LineString{t}
	case geom.MultiLineString:
		out := make([]geom.LineString, 0, len(t))
		for _, l := range t {
			if len(l) >= 2 {
				out = append(out, l)
			}
		}
		return out
	}
	return nil
}
