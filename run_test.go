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
	"math"
	"reflect"
	"testing"

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
)

type sliceLineSource struct {
	feats []*LineFeature
	i     int
}

func (s *sliceLineSource) ReadLine() (*LineFeature, error) {
	if s.i >= len(s.feats) {
		return nil, io.EOF
	}
	s.i++
	return s.feats[s.i-1], nil
}

type slicePolySource struct {
	polys []geom.Polygonal
	i     int
}

func (s *slicePolySource) ReadPolygon() (geom.Polygonal, error) {
	if s.i >= len(s.polys) {
		return nil, io.EOF
	}
	s.i++
	return s.polys[s.i-1], nil
}

// badRowPolySource yields a GeometryError for its first row, then the
// polygons, like a shapefile with a stray non-polygonal feature.
type badRowPolySource struct {
	slicePolySource
	bad bool
}

func (s *badRowPolySource) ReadPolygon() (geom.Polygonal, error) {
	if !s.bad {
		s.bad = true
		return nil, &GeometryError{FeatureID: 1, Err: errors.New("feature is geom.Point, not polygonal")}
	}
	return s.slicePolySource.ReadPolygon()
}

type captureWriter struct {
	recs []*SegmentRecord
}

func (w *captureWriter) WriteSegment(rec *SegmentRecord) error {
	w.recs = append(w.recs, rec)
	return nil
}

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func straightRiver(x0, x1 float64) *LineFeature {
	return &LineFeature{ID: 1, Geom: geom.LineString{{X: x0, Y: 0}, {X: x1, Y: 0}}}
}

func TestRunFullCoverage(t *testing.T) {
	cfg := DefaultConfig()
	all := new(captureWriter)
	suitable := new(captureWriter)
	summary, err := Run(cfg,
		&sliceLineSource{feats: []*LineFeature{straightRiver(0, 12000)}},
		&slicePolySource{polys: []geom.Polygonal{rect(0, -30, 12000, 30)}},
		all, suitable, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	// A 12000-unit line with 4000-unit windows every 50 units yields
	// (12000-4000)/50 + 1 segments.
	if summary.TotalSegments != 161 {
		t.Errorf("have %d segments, want 161", summary.TotalSegments)
	}
	if summary.SuitableSegments != 161 {
		t.Errorf("have %d suitable segments, want 161", summary.SuitableSegments)
	}
	if summary.SuccessRate() != 1 {
		t.Errorf("have success rate %g, want 1", summary.SuccessRate())
	}
	if len(all.recs) != 161 || len(suitable.recs) != 161 {
		t.Errorf("have %d/%d written records, want 161/161", len(all.recs), len(suitable.recs))
	}
	if math.Abs(summary.Overlap.Mean()-4000) > 1e-6 {
		t.Errorf("have mean overlap %g, want 4000", summary.Overlap.Mean())
	}
}

func TestRunIdentifiersDense(t *testing.T) {
	cfg := DefaultConfig()
	all := new(captureWriter)
	_, err := Run(cfg,
		&sliceLineSource{feats: []*LineFeature{
			{ID: 1, Geom: geom.LineString{{X: 0, Y: 0}, {X: 5000, Y: 0}}},
			{ID: 2, Geom: geom.LineString{{X: 0, Y: 100}, {X: 0, Y: 100}}}, // zero length, skipped
			{ID: 3, Geom: geom.LineString{{X: 0, Y: 200}, {X: 4500, Y: 200}}},
		}},
		&slicePolySource{polys: []geom.Polygonal{rect(0, -1000, 5000, 1000)}},
		all, nil, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	for i, rec := range all.recs {
		if rec.SegID != i+1 {
			t.Fatalf("record %d: have seg_id %d, want %d", i, rec.SegID, i+1)
		}
	}
	// Feature 1 yields 21 windows, feature 3 yields 11; the skipped
	// feature must not leave a gap.
	if len(all.recs) != 32 {
		t.Errorf("have %d records, want 32", len(all.recs))
	}
}

func TestRunDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	run := func() ([]*SegmentRecord, *RunSummary) {
		all := new(captureWriter)
		summary, err := Run(cfg,
			&sliceLineSource{feats: []*LineFeature{straightRiver(0, 9000)}},
			&slicePolySource{polys: []geom.Polygonal{
				rect(1000, -50, 3000, 50),
				rect(2500, -50, 7000, 50),
			}},
			all, nil, testLogger())
		if err != nil {
			t.Fatal(err)
		}
		return all.recs, summary
	}
	recs1, sum1 := run()
	recs2, sum2 := run()
	if !reflect.DeepEqual(recs1, recs2) {
		t.Error("records differ between identical runs")
	}
	if !reflect.DeepEqual(sum1, sum2) {
		t.Error("summaries differ between identical runs")
	}
}

func TestRunSuitableFilter(t *testing.T) {
	cfg := DefaultConfig()
	all := new(captureWriter)
	suitable := new(captureWriter)
	// Coverage over the first 6 km only: early windows are fully
	// covered, late ones not at all.
	summary, err := Run(cfg,
		&sliceLineSource{feats: []*LineFeature{straightRiver(0, 12000)}},
		&slicePolySource{polys: []geom.Polygonal{rect(0, -30, 6000, 30)}},
		all, suitable, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if summary.SuitableSegments == 0 || summary.SuitableSegments == summary.TotalSegments {
		t.Fatalf("want a strict subset of suitable segments, have %d of %d",
			summary.SuitableSegments, summary.TotalSegments)
	}
	if len(suitable.recs) != summary.SuitableSegments {
		t.Errorf("have %d records in the suitable sink, want %d",
			len(suitable.recs), summary.SuitableSegments)
	}
	for _, rec := range suitable.recs {
		if !rec.Suitable {
			t.Errorf("segment %d written to the suitable sink but not suitable", rec.SegID)
		}
	}
	for _, rec := range all.recs {
		if rec.Suitable != (rec.ForestM >= cfg.MinCoverageLength) {
			t.Errorf("segment %d: suitable=%v with overlap %g", rec.SegID, rec.Suitable, rec.ForestM)
		}
	}
}

func TestRunEmptyCoverage(t *testing.T) {
	all := new(captureWriter)
	_, err := Run(DefaultConfig(),
		&sliceLineSource{feats: []*LineFeature{straightRiver(0, 12000)}},
		&slicePolySource{},
		all, nil, testLogger())
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("have error %v, want ErrEmptyInput", err)
	}
	if len(all.recs) != 0 {
		t.Errorf("%d records written before the failure", len(all.recs))
	}
}

func TestRunSkipsDegenerateFeatures(t *testing.T) {
	cfg := DefaultConfig()
	all := new(captureWriter)
	summary, err := Run(cfg,
		&sliceLineSource{feats: []*LineFeature{
			{ID: 1, Geom: geom.LineString{{X: 0, Y: 0}}},                  // single point
			{ID: 2, Geom: geom.LineString{{X: 5, Y: 5}, {X: 5, Y: 5}}},   // zero length
			{ID: 3, Geom: geom.LineString{{X: 0, Y: 0}, {X: 4000, Y: 0}}},
		}},
		&slicePolySource{polys: []geom.Polygonal{rect(0, -30, 4000, 30)}},
		all, nil, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if summary.SkippedFeatures != 2 {
		t.Errorf("have %d skipped features, want 2", summary.SkippedFeatures)
	}
	if summary.TotalSegments != 1 {
		t.Errorf("have %d segments, want 1", summary.TotalSegments)
	}
	if len(all.recs) != 1 || all.recs[0].SegID != 1 {
		t.Error("the surviving feature must still be processed with seg_id 1")
	}
}

func TestRunSkipsNonPolygonalCoverage(t *testing.T) {
	cfg := DefaultConfig()
	all := new(captureWriter)
	summary, err := Run(cfg,
		&sliceLineSource{feats: []*LineFeature{straightRiver(0, 4000)}},
		&badRowPolySource{slicePolySource: slicePolySource{
			polys: []geom.Polygonal{rect(0, -30, 4000, 30)},
		}},
		all, nil, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if summary.SkippedFeatures != 1 {
		t.Errorf("have %d skipped features, want 1", summary.SkippedFeatures)
	}
	if summary.TotalSegments != 1 || !all.recs[0].Suitable {
		t.Error("the remaining coverage polygon must still classify the segment")
	}
}

func TestRunMultiLineString(t *testing.T) {
	cfg := DefaultConfig()
	all := new(captureWriter)
	summary, err := Run(cfg,
		&sliceLineSource{feats: []*LineFeature{{
			ID: 1,
			Geom: geom.MultiLineString{
				{{X: 0, Y: 0}, {X: 4000, Y: 0}},
				{{X: 0, Y: 500}, {X: 4200, Y: 500}},
			},
		}}},
		&slicePolySource{polys: []geom.Polygonal{rect(0, -1000, 5000, 1000)}},
		all, nil, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	// Part 1 yields one window, part 2 yields five.
	if summary.TotalSegments != 6 {
		t.Errorf("have %d segments, want 6", summary.TotalSegments)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleInterval = -1
	_, err := Run(cfg, &sliceLineSource{}, &slicePolySource{}, new(captureWriter), nil, testLogger())
	var cerr *InvalidConfigurationError
	if !errors.As(err, &cerr) {
		t.Errorf("have error %v, want InvalidConfigurationError", err)
	}
}

func TestSuccessRateEmpty(t *testing.T) {
	s := new(RunSummary)
	if got := s.SuccessRate(); got != 0 {
		t.Errorf("have %g, want 0", got)
	}
}
