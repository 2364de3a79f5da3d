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

package habitatutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	habitat "github.com/jalaluddingohar752-ui/River-Habitat-Suitability-Analysis"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// GetStringMapString returns the value of varName from cfg as a string
// map, handling the case where the value arrived as a JSON string from a
// command-line flag.
func GetStringMapString(varName string, cfg *viper.Viper) map[string]string {
	switch t := cfg.Get(varName).(type) {
	case string:
		out := make(map[string]string)
		if err := json.Unmarshal([]byte(t), &out); err != nil {
			return nil
		}
		return out
	case map[string]string:
		return t
	case map[string]interface{}:
		return cast.ToStringMapString(t)
	}
	return nil
}

// outputVariables merges configured output columns into the default
// schema: a configured name matching a default column replaces its
// expression, and new names are appended in sorted order.
func outputVariables(configured map[string]string) []habitat.OutputVariable {
	vars := habitat.DefaultOutputVariables()
	var extra []string
	for name, expr := range configured {
		replaced := false
		for i := range vars {
			if vars[i].Name == name {
				vars[i].Expr = expr
				replaced = true
				break
			}
		}
		if !replaced {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		vars = append(vars, habitat.OutputVariable{Name: name, Expr: configured[name]})
	}
	return vars
}

// checkSpatialRefs warns when the river and forest layers disagree about
// their spatial reference. The analysis performs no reprojection, so
// mismatched layers produce meaningless overlaps.
func checkSpatialRefs(rivers *habitat.LineShapefile, forests *habitat.PolygonShapefile, log logrus.FieldLogger) {
	riverSR, err := rivers.SR()
	if err != nil {
		log.WithFields(logrus.Fields{"layer": "rivers"}).Warn("could not read spatial reference")
		return
	}
	forestSR, err := forests.SR()
	if err != nil {
		log.WithFields(logrus.Fields{"layer": "forests"}).Warn("could not read spatial reference")
		return
	}
	if !riverSR.Equal(forestSR, 10) {
		log.Warn("river and forest layers have different spatial references; " +
			"overlap lengths will be meaningless")
	}
}

// Run performs the habitat suitability analysis using the settings in
// cfg.
func Run(cfg *viper.Viper) error {
	log := logrus.StandardLogger()
	if logFile := cfg.GetString("LogFile"); logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return fmt.Errorf("habitat: problem creating log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	conf := habitat.Config{
		SegmentLength:     cfg.GetFloat64("SegmentLength"),
		SampleInterval:    cfg.GetFloat64("SampleInterval"),
		BufferMargin:      cfg.GetFloat64("BufferMargin"),
		MinCoverageLength: cfg.GetFloat64("MinCoverageLength"),
		BufferArcSegments: cfg.GetInt("BufferArcSegments"),
	}
	if err := conf.Valid(); err != nil {
		return err
	}

	rivers, err := habitat.OpenLineShapefile(os.ExpandEnv(cfg.GetString("RiverShapefile")))
	if err != nil {
		return err
	}
	defer rivers.Close()
	forests, err := habitat.OpenPolygonShapefile(os.ExpandEnv(cfg.GetString("ForestShapefile")))
	if err != nil {
		return err
	}
	defer forests.Close()
	checkSpatialRefs(rivers, forests, log)

	vars := outputVariables(GetStringMapString("OutputVariables", cfg))
	all, err := habitat.NewSegmentShapefileWriter(
		os.ExpandEnv(cfg.GetString("OutputFile")), rivers.Projection(), vars)
	if err != nil {
		return err
	}
	var suitable *habitat.SegmentShapefileWriter
	var suitableSink habitat.SegmentWriter
	if name := cfg.GetString("SuitableFile"); name != "" {
		suitable, err = habitat.NewSegmentShapefileWriter(
			os.ExpandEnv(name), rivers.Projection(), vars)
		if err != nil {
			return err
		}
		suitableSink = suitable
	}

	summary, runErr := habitat.Run(conf, rivers, forests, all, suitableSink, log)
	if err := all.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if suitable != nil {
		if err := suitable.Close(); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		return runErr
	}

	log.WithFields(logrus.Fields{
		"total":       summary.TotalSegments,
		"suitable":    summary.SuitableSegments,
		"skipped":     summary.SkippedFeatures,
		"successRate": fmt.Sprintf("%.1f%%", summary.SuccessRate()*100),
	}).Info("run summary")

	if report := cfg.GetString("ReportFile"); report != "" {
		if err := WriteReport(os.ExpandEnv(report), summary); err != nil {
			return err
		}
	}
	return nil
}
