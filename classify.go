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
	"gonum.org/v1/gonum/floats"
)

// Classification is the result of testing one window against the
// coverage region.
type Classification struct {
	// ForestM is the total overlap length between the window line and
	// the coverage region, in source distance units.
	ForestM float64
	// Suitable reports whether ForestM meets the minimum-coverage
	// threshold.
	Suitable bool
}

// classify computes the total overlap length between the window line and
// region and applies the threshold predicate. Coverage is frequently
// fragmented along a line; when the overlap is multi-part, the lengths of
// every individual part are summed. Pure function of its inputs.
func classify(w Window, region *CoverageRegion, minCoverage float64) Classification {
	if !region.MayIntersect(w.Line.Bounds()) {
		return Classification{Suitable: 0 >= minCoverage}
	}
	parts := lineParts(w.Line.Clip(region.Geometry()))
	lengths := make([]float64, len(parts))
	for i, p := range parts {
		lengths[i] = p.Length()
	}
	forest := floats.Sum(lengths)
	return Classification{ForestM: forest, Suitable: forest >= minCoverage}
}
