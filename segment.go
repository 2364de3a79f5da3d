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
	"iter"

	"github.com/ctessum/geom"
)

// Window is one sliding-window sample along a polyline: a contiguous
// sub-polyline spanning the arc-length interval [StartM, EndM] of its
// parent line.
type Window struct {
	Line   geom.LineString
	StartM float64
	EndM   float64
}

// checkPolyline rejects line parts the generator cannot parameterize:
// fewer than 2 points, or zero length (repeated coincident points).
func checkPolyline(l geom.LineString, featureID, part int) error {
	if len(l) < 2 {
		return &DegenerateLineError{FeatureID: featureID, Part: part,
			Reason: "line has fewer than 2 points"}
	}
	if l.Length() == 0 {
		return &DegenerateLineError{FeatureID: featureID, Part: part,
			Reason: "line has zero length"}
	}
	return nil
}

// Windows returns a lazy, finite, restartable sequence of fixed-length
// windows along line. Window starts advance by interval; consecutive
// windows overlap by length−interval. A line shorter than length yields
// an empty sequence. Trailing stretches shorter than length produce no
// window.
func Windows(line geom.LineString, length, interval float64) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		total := line.Length()
		for start := 0.0; start+length <= total; start += interval {
			w, ok := sampleWindow(line, start, length, interval)
			if !ok {
				continue
			}
			if !yield(w) {
				return
			}
		}
	}
}

// sampleWindow builds the window polyline from points sampled at every
// interval distance units from start, with the final sample clamped to
// exactly start+length so the window is never truncated or overrun.
// ok is false when fewer than 2 points could be sampled.
func sampleWindow(line geom.LineString, start, length, interval float64) (Window, bool) {
	end := start + length
	var pts geom.LineString
	for d := start; ; d += interval {
		if d > end {
			d = end
		}
		if pt, ok := interpolate(line, d); ok {
			pts = append(pts, pt)
		}
		if d >= end {
			break
		}
	}
	if len(pts) < 2 {
		return Window{}, false
	}
	return Window{Line: pts, StartM: start, EndM: end}, true
}
