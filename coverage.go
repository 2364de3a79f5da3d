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
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// CoverageRegion is the unified, buffered areal geometry against which
// segments are tested. It is built once per run and never modified
// afterward; every classification shares it read-only.
type CoverageRegion struct {
	region geom.Polygonal
	index  *rtree.Rtree
}

// BuildCoverageRegion buffers every input polygon by margin and dissolves
// the buffered set into one region, indexing the region's rings for fast
// intersection prechecks. It returns ErrEmptyInput when polys is empty.
func BuildCoverageRegion(polys []geom.Polygonal, margin float64, arcSegments int) (*CoverageRegion, error) {
	if len(polys) == 0 {
		return nil, ErrEmptyInput
	}
	buffered := make([]geom.Polygonal, 0, len(polys))
	for _, p := range polys {
		if p == nil {
			continue
		}
		for _, pp := range p.Polygons() {
			buffered = append(buffered, bufferPolygon(pp, margin, arcSegments))
		}
	}
	region := dissolve(buffered)
	if region == nil {
		return nil, ErrEmptyInput
	}
	index := rtree.NewTree(25, 50)
	for _, poly := range region.Polygons() {
		for _, ring := range poly {
			index.Insert(geom.Polygon{ring})
		}
	}
	return &CoverageRegion{region: region, index: index}, nil
}

// Geometry returns the dissolved region. Callers must not modify it.
func (cr *CoverageRegion) Geometry() geom.Polygonal { return cr.region }

// MayIntersect reports whether any ring of the region has a bounding box
// intersecting b. A false result guarantees zero overlap.
func (cr *CoverageRegion) MayIntersect(b *geom.Bounds) bool {
	return len(cr.index.SearchIntersect(b)) > 0
}
