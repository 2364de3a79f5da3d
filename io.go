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
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	goshp "github.com/jonas-p/go-shp"
	"gonum.org/v1/gonum/floats"
)

// LineShapefile reads line features from an ESRI shapefile.
type LineShapefile struct {
	d   *shp.Decoder
	prj string
	row int
}

// OpenLineShapefile opens the shapefile at filename for reading line
// features.
func OpenLineShapefile(filename string) (*LineShapefile, error) {
	d, err := shp.NewDecoder(filename)
	if err != nil {
		return nil, fmt.Errorf("habitat: there was a problem reading the line shapefile '%s'. "+
			"The error message was %v.", filename, err)
	}
	return &LineShapefile{d: d, prj: readPrj(filename)}, nil
}

// Projection returns the raw contents of the layer's .prj file, or "" if
// there is none. The text is opaque to the analysis and passed through
// unchanged to output layers.
func (s *LineShapefile) Projection() string { return s.prj }

// SR returns the parsed spatial reference of the layer.
func (s *LineShapefile) SR() (*proj.SR, error) { return s.d.SR() }

// ReadLine implements LineSource. Feature identifiers are the 1-based row
// numbers of the shapefile.
func (s *LineShapefile) ReadLine() (*LineFeature, error) {
	g, _, more := s.d.DecodeRowFields()
	if err := s.d.Error(); err != nil {
		return nil, fmt.Errorf("habitat: there was a problem reading row %d of the line "+
			"shapefile. The error message was %v.", s.row+1, err)
	}
	if !more {
		return nil, io.EOF
	}
	s.row++
	return &LineFeature{ID: s.row, Geom: g}, nil
}

// Close closes the underlying shapefile.
func (s *LineShapefile) Close() { s.d.Close() }

// PolygonShapefile reads areal features from an ESRI shapefile.
type PolygonShapefile struct {
	d   *shp.Decoder
	prj string
	row int
}

// OpenPolygonShapefile opens the shapefile at filename for reading
// polygon features.
func OpenPolygonShapefile(filename string) (*PolygonShapefile, error) {
	d, err := shp.NewDecoder(filename)
	if err != nil {
		return nil, fmt.Errorf("habitat: there was a problem reading the polygon shapefile '%s'. "+
			"The error message was %v.", filename, err)
	}
	return &PolygonShapefile{d: d, prj: readPrj(filename)}, nil
}

// Projection returns the raw contents of the layer's .prj file, or "" if
// there is none.
func (s *PolygonShapefile) Projection() string { return s.prj }

// SR returns the parsed spatial reference of the layer.
func (s *PolygonShapefile) SR() (*proj.SR, error) { return s.d.SR() }

// ReadPolygon implements PolygonSource.
func (s *PolygonShapefile) ReadPolygon() (geom.Polygonal, error) {
	g, _, more := s.d.DecodeRowFields()
	if err := s.d.Error(); err != nil {
		return nil, fmt.Errorf("habitat: there was a problem reading row %d of the polygon "+
			"shapefile. The error message was %v.", s.row+1, err)
	}
	if !more {
		return nil, io.EOF
	}
	s.row++
	p, ok := g.(geom.Polygonal)
	if !ok {
		return nil, &GeometryError{FeatureID: s.row,
			Err: fmt.Errorf("feature is %T, not polygonal", g)}
	}
	return p, nil
}

// Close closes the underlying shapefile.
func (s *PolygonShapefile) Close() { s.d.Close() }

func readPrj(filename string) string {
	base := strings.TrimSuffix(filename, ".shp")
	b, err := os.ReadFile(base + ".prj")
	if err != nil {
		return ""
	}
	return string(b)
}

// OutputVariable is one output column: a name and an expression over the
// segment variables seg_id, start_m, end_m, length_m, forest_m, forest_km,
// and suitable. Expressions may use the functions round, abs, min, max,
// and sum.
type OutputVariable struct {
	Name string
	Expr string
}

// DefaultOutputVariables returns the standard output schema. Distances
// are rounded to 0.1 units and forest_km to 3 decimals; suitable is
// encoded "YES" or "NO".
func DefaultOutputVariables() []OutputVariable {
	return []OutputVariable{
		{Name: "start_m", Expr: "round(start_m, 1)"},
		{Name: "end_m", Expr: "round(end_m, 1)"},
		{Name: "length_m", Expr: "round(length_m, 1)"},
		{Name: "forest_m", Expr: "round(forest_m, 1)"},
		{Name: "forest_km", Expr: "round(forest_m / 1000, 3)"},
		{Name: "suitable", Expr: "suitable"},
	}
}

// segmentVariables are the parameter names available to output
// expressions.
var segmentVariables = map[string]bool{
	"seg_id":    true,
	"start_m":   true,
	"end_m":     true,
	"length_m":  true,
	"forest_m":  true,
	"forest_km": true,
	"suitable":  true,
}

func defaultOutputFuncs() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"round": func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("habitat: got %d arguments for function 'round', but needs 2", len(args))
			}
			pow := math.Pow(10, args[1].(float64))
			return math.Round(args[0].(float64)*pow) / pow, nil
		},
		"abs": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("habitat: got %d arguments for function 'abs', but needs 1", len(args))
			}
			return math.Abs(args[0].(float64)), nil
		},
		"min": func(args ...interface{}) (interface{}, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("habitat: function 'min' needs at least 1 argument")
			}
			out := args[0].(float64)
			for _, a := range args[1:] {
				out = math.Min(out, a.(float64))
			}
			return out, nil
		},
		"max": func(args ...interface{}) (interface{}, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("habitat: function 'max' needs at least 1 argument")
			}
			out := args[0].(float64)
			for _, a := range args[1:] {
				out = math.Max(out, a.(float64))
			}
			return out, nil
		},
		"sum": func(args ...interface{}) (interface{}, error) {
			xs := make([]float64, len(args))
			for i, a := range args {
				x, ok := a.(float64)
				if !ok {
					return nil, fmt.Errorf("habitat: function 'sum' needs numeric arguments")
				}
				xs[i] = x
			}
			return floats.Sum(xs), nil
		},
	}
}

// SegmentShapefileWriter writes classified segment records to an ESRI
// shapefile. The first column is always the integer seg_id; the remaining
// columns are computed from output variable expressions, so callers can
// add derived columns without code changes.
type SegmentShapefileWriter struct {
	e        *shp.Encoder
	filename string
	prj      string
	vars     []OutputVariable
	exprs    []*govaluate.EvaluableExpression
}

// NewSegmentShapefileWriter creates a polyline shapefile at filename.
// projection, if non-empty, is written alongside as a .prj file when the
// writer is closed. vars defaults to DefaultOutputVariables when nil.
// Field types are determined by evaluating each expression against a zero-valued
// record, so every expression must evaluate cleanly on zero values.
func NewSegmentShapefileWriter(filename, projection string, vars []OutputVariable) (*SegmentShapefileWriter, error) {
	if vars == nil {
		vars = DefaultOutputVariables()
	}
	funcs := defaultOutputFuncs()
	exprs := make([]*govaluate.EvaluableExpression, len(vars))
	zero := outputParams(&SegmentRecord{})
	fields := make([]goshp.Field, len(vars)+1)
	fields[0] = goshp.NumberField("seg_id", 12)
	for i, v := range vars {
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(v.Expr, funcs)
		if err != nil {
			return nil, fmt.Errorf("habitat: output variable %s: %v", v.Name, err)
		}
		for _, name := range expr.Vars() {
			if !segmentVariables[name] {
				return nil, fmt.Errorf("habitat: output variable %s: unknown segment variable %q", v.Name, name)
			}
		}
		out, err := expr.Evaluate(zero)
		if err != nil {
			return nil, fmt.Errorf("habitat: output variable %s: %v", v.Name, err)
		}
		switch out.(type) {
		case float64:
			fields[i+1] = goshp.FloatField(v.Name, 14, 8)
		case string, bool:
			fields[i+1] = goshp.StringField(v.Name, 10)
		default:
			return nil, fmt.Errorf("habitat: output variable %s: unsupported result type %T", v.Name, out)
		}
		exprs[i] = expr
	}
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	e, err := shp.NewEncoderFromFields(base+".shp", goshp.POLYLINE, fields...)
	if err != nil {
		return nil, fmt.Errorf("habitat: error creating output shapefile: %v", err)
	}
	return &SegmentShapefileWriter{
		e:        e,
		filename: base + ".shp",
		prj:      projection,
		vars:     vars,
		exprs:    exprs,
	}, nil
}

func outputParams(rec *SegmentRecord) map[string]interface{} {
	suitable := "NO"
	if rec.Suitable {
		suitable = "YES"
	}
	return map[string]interface{}{
		"seg_id":    float64(rec.SegID),
		"start_m":   rec.StartM,
		"end_m":     rec.EndM,
		"length_m":  rec.LengthM,
		"forest_m":  rec.ForestM,
		"forest_km": rec.ForestKM(),
		"suitable":  suitable,
	}
}

// WriteSegment implements SegmentWriter.
func (w *SegmentShapefileWriter) WriteSegment(rec *SegmentRecord) error {
	params := outputParams(rec)
	vals := make([]interface{}, len(w.vars)+1)
	vals[0] = rec.SegID
	for i, expr := range w.exprs {
		out, err := expr.Evaluate(params)
		if err != nil {
			return fmt.Errorf("habitat: output variable %s: %v", w.vars[i].Name, err)
		}
		if b, ok := out.(bool); ok {
			if b {
				out = "YES"
			} else {
				out = "NO"
			}
		}
		vals[i+1] = out
	}
	if err := w.e.EncodeFields(rec.Geom, vals...); err != nil {
		return fmt.Errorf("habitat: error writing output shapefile: %v", err)
	}
	return nil
}

// Close closes the shapefile and writes the passthrough .prj file.
func (w *SegmentShapefileWriter) Close() error {
	w.e.Close()
	if w.prj == "" {
		return nil
	}
	base := strings.TrimSuffix(w.filename, ".shp")
	f, err := os.Create(base + ".prj")
	if err != nil {
		return fmt.Errorf("habitat: error creating output prj file: %v", err)
	}
	fmt.Fprint(f, w.prj)
	return f.Close()
}
