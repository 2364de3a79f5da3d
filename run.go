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
	"io"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
)

// LineFeature is one input line feature. Geom may be a geom.LineString or
// a geom.MultiLineString; each part of a multi-part feature is processed
// independently as its own polyline.
type LineFeature struct {
	ID   int
	Geom geom.Geom
}

// LineSource supplies line features in a deterministic order. ReadLine
// returns io.EOF after the last feature.
type LineSource interface {
	ReadLine() (*LineFeature, error)
}

// PolygonSource supplies coverage candidate polygons. ReadPolygon returns
// io.EOF after the last feature.
type PolygonSource interface {
	ReadPolygon() (geom.Polygonal, error)
}

// SegmentRecord is an emitted, classified segment. Records are immutable
// once written.
type SegmentRecord struct {
	Geom     geom.LineString
	SegID    int
	StartM   float64
	EndM     float64
	LengthM  float64
	ForestM  float64
	Suitable bool
}

// ForestKM gives the overlap length divided by 1000, e.g. kilometers for
// meter-unit coordinate systems.
func (r *SegmentRecord) ForestKM() float64 { return r.ForestM / 1000 }

// SegmentWriter accepts classified segment records.
type SegmentWriter interface {
	WriteSegment(*SegmentRecord) error
}

// RunSummary accumulates statistics over a run. Counts only ever
// increase.
type RunSummary struct {
	TotalSegments    int
	SuitableSegments int

	// SkippedFeatures counts input features abandoned because of
	// degenerate line geometry or non-polygonal coverage geometry.
	SkippedFeatures int

	// Overlap holds descriptive statistics of the per-segment overlap
	// lengths.
	Overlap stats.Stats
}

// SuccessRate is the fraction of segments classified suitable. It is 0
// when no segments were produced.
func (s *RunSummary) SuccessRate() float64 {
	if s.TotalSegments == 0 {
		return 0
	}
	return float64(s.SuitableSegments) / float64(s.TotalSegments)
}

// Run executes the analysis: it builds the coverage region from polys,
// generates and classifies sliding-window segments along every line
// feature from lines, writes each record to all and suitable ones
// additionally to suitable (which may be nil), and returns the run
// statistics.
//
// Segment identifiers are dense (1..N, no gaps) and strictly increasing
// across the whole run; output preserves input-feature order and, within a
// feature, increasing start-distance order. Degenerate line parts and
// non-polygonal coverage features are skipped with a warning and the run
// continues; a failed segment is never emitted.
func Run(cfg Config, lines LineSource, polys PolygonSource, all, suitable SegmentWriter, log logrus.FieldLogger) (*RunSummary, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := cfg.Valid(); err != nil {
		return nil, err
	}

	summary := new(RunSummary)
	coverage, skipped, err := readPolygons(polys, log)
	if err != nil {
		return nil, err
	}
	summary.SkippedFeatures += skipped
	region, err := BuildCoverageRegion(coverage, cfg.BufferMargin, cfg.BufferArcSegments)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"polygons": len(coverage),
		"margin":   cfg.BufferMargin,
	}).Info("built coverage region")

	segID := 0
	for {
		feat, err := lines.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		parts := lineParts(feat.Geom)
		if len(parts) == 0 {
			log.WithFields(logrus.Fields{"feature": feat.ID}).Warn(
				(&DegenerateLineError{FeatureID: feat.ID,
					Reason: "feature has no line parts"}).Error())
			summary.SkippedFeatures++
			continue
		}
		for pi, part := range parts {
			if err := checkPolyline(part, feat.ID, pi); err != nil {
				log.WithFields(logrus.Fields{"feature": feat.ID, "part": pi}).Warn(err.Error())
				summary.SkippedFeatures++
				continue
			}
			for w := range Windows(part, cfg.SegmentLength, cfg.SampleInterval) {
				cls := classify(w, region, cfg.MinCoverageLength)
				segID++
				rec := &SegmentRecord{
					Geom:     w.Line,
					SegID:    segID,
					StartM:   w.StartM,
					EndM:     w.EndM,
					LengthM:  w.Line.Length(),
					ForestM:  cls.ForestM,
					Suitable: cls.Suitable,
				}
				if err := all.WriteSegment(rec); err != nil {
					return nil, err
				}
				if cls.Suitable && suitable != nil {
					if err := suitable.WriteSegment(rec); err != nil {
						return nil, err
					}
				}
				summary.TotalSegments++
				if cls.Suitable {
					summary.SuitableSegments++
				}
				summary.Overlap.Update(cls.ForestM)
				if summary.TotalSegments%25 == 0 {
					log.WithFields(logrus.Fields{
						"segments": summary.TotalSegments,
						"suitable": summary.SuitableSegments,
					}).Info("processing segments")
				}
			}
		}
	}
	log.WithFields(logrus.Fields{
		"segments": summary.TotalSegments,
		"suitable": summary.SuitableSegments,
		"skipped":  summary.SkippedFeatures,
	}).Info("analysis complete")
	return summary, nil
}

// readPolygons drains a polygon source. Features whose geometry is
// unusable arrive as GeometryError and are skipped with a warning; the
// count of skipped features is returned alongside the usable ones.
func readPolygons(polys PolygonSource, log logrus.FieldLogger) ([]geom.Polygonal, int, error) {
	var out []geom.Polygonal
	var skipped int
	for {
		p, err := polys.ReadPolygon()
		if err == io.EOF {
			return out, skipped, nil
		}
		var gerr *GeometryError
		if errors.As(err, &gerr) {
			log.Warn(err.Error())
			skipped++
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
}
