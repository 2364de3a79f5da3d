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

// Package habitat classifies fixed-length sliding-window segments of river
// centerlines by the total length of their overlap with a buffered,
// dissolved forest coverage region. A segment is suitable when its overlap
// length meets a minimum-coverage threshold.
//
// All distances are expressed in the linear unit of the input coordinate
// system; the package performs no coordinate transformation.
package habitat

// Version gives the version number of this version of RiverHabitat.
const Version = "1.0.0"

// Config holds the analysis parameters. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	// SegmentLength is the arc length of each candidate segment.
	SegmentLength float64

	// SampleInterval is the distance between consecutive window start
	// points, and also the spacing of the vertices sampled along each
	// segment. It must be greater than zero and no larger than
	// SegmentLength.
	SampleInterval float64

	// BufferMargin is the distance by which each coverage polygon is
	// expanded before the coverage region is dissolved. It must not be
	// negative.
	BufferMargin float64

	// MinCoverageLength is the minimum total overlap length between a
	// segment and the coverage region for the segment to be classified
	// as suitable.
	MinCoverageLength float64

	// BufferArcSegments is the number of straight segments used to
	// approximate a quarter circle when buffering around polygon
	// corners.
	BufferArcSegments int
}

// DefaultConfig returns the standard analysis parameters: 4 km segments
// generated every 50 distance units, a 20-unit buffer on coverage polygons,
// and a 1.9 km minimum-coverage requirement.
func DefaultConfig() Config {
	return Config{
		SegmentLength:     4000,
		SampleInterval:    50,
		BufferMargin:      20,
		MinCoverageLength: 1900,
		BufferArcSegments: 5,
	}
}

// Valid checks the configuration before any geometry work begins.
func (c Config) Valid() error {
	if c.SegmentLength <= 0 {
		return &InvalidConfigurationError{Field: "SegmentLength",
			Reason: "must be greater than zero"}
	}
	if c.SampleInterval <= 0 {
		return &InvalidConfigurationError{Field: "SampleInterval",
			Reason: "must be greater than zero"}
	}
	if c.SampleInterval > c.SegmentLength {
		return &InvalidConfigurationError{Field: "SampleInterval",
			Reason: "must not be larger than SegmentLength"}
	}
	if c.BufferMargin < 0 {
		return &InvalidConfigurationError{Field: "BufferMargin",
			Reason: "must not be negative"}
	}
	if c.MinCoverageLength < 0 {
		return &InvalidConfigurationError{Field: "MinCoverageLength",
			Reason: "must not be negative"}
	}
	if c.BufferArcSegments < 1 {
		return &InvalidConfigurationError{Field: "BufferArcSegments",
			Reason: "must be at least 1"}
	}
	return nil
}
