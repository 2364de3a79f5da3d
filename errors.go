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
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when no coverage polygons are supplied.
// There is no valid interpretation of suitability without a coverage
// region, so the run aborts before any segment is produced.
var ErrEmptyInput = errors.New("habitat: no coverage polygons supplied")

// InvalidConfigurationError reports an analysis parameter that fails
// validation. It is fatal at startup, before any geometry work begins.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("habitat: invalid configuration: %s %s", e.Field, e.Reason)
}

// DegenerateLineError reports a line part with fewer than 2 coordinate
// points or zero length. The offending part is skipped and the run
// continues.
type DegenerateLineError struct {
	FeatureID int
	Part      int
	Reason    string
}

func (e *DegenerateLineError) Error() string {
	return fmt.Sprintf("habitat: feature %d part %d: %s", e.FeatureID, e.Part, e.Reason)
}

// GeometryError reports a feature whose geometry is unusable for the
// analysis, tagged with the identity of the offending feature. The
// pipeline skips that feature and continues.
type GeometryError struct {
	FeatureID int
	Err       error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("habitat: feature %d: %v", e.FeatureID, e.Err)
}

func (e *GeometryError) Unwrap() error { return e.Err }
