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

// Package habitatutil provides commands and configuration for running the
// river habitat suitability analysis.
package habitatutil

import (
	"encoding/json"
	"fmt"

	habitat "github.com/jalaluddingohar752-ui/River-Habitat-Suitability-Analysis"
	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	Cfg = viper.New()
	Cfg.SetEnvPrefix("HABITAT")
	Cfg.AutomaticEnv()

	// Options are the configuration options available to RiverHabitat.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "RiverShapefile",
			usage: `
              RiverShapefile is the path to the shapefile holding the river
              centerlines to analyze. Multi-part line features are processed
              part by part. Can include environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "ForestShapefile",
			usage: `
              ForestShapefile is the path to the shapefile holding the forest
              polygons used to build the coverage region. Can include
              environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where the complete segment inventory is
              written as a polyline shapefile.`,
			defaultVal: "river_segments_4km_all.shp",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "SuitableFile",
			usage: `
              SuitableFile is the path where the suitable-only segment layer
              is written. If empty, no suitable-only layer is produced.`,
			defaultVal: "suitable_segments.shp",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "ReportFile",
			usage: `
              ReportFile is the path where a run summary workbook (.xlsx) is
              written. If empty, no report is produced.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path where the log is written in addition to
              standard output. If empty, logging goes to standard output
              only.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "SegmentLength",
			usage: `
              SegmentLength is the arc length of each candidate segment, in
              the linear unit of the input coordinate system.`,
			defaultVal: 4000.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "SampleInterval",
			usage: `
              SampleInterval is the distance between consecutive window start
              points and the vertex sampling distance along each segment. It
              must be greater than zero and no larger than SegmentLength.`,
			defaultVal: 50.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "BufferMargin",
			usage: `
              BufferMargin is the distance by which each forest polygon is
              expanded before the coverage region is dissolved.`,
			defaultVal: 20.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "MinCoverageLength",
			usage: `
              MinCoverageLength is the minimum total forest overlap length for
              a segment to be classified as suitable.`,
			defaultVal: 1900.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "BufferArcSegments",
			usage: `
              BufferArcSegments is the number of straight segments used to
              approximate a quarter circle when buffering around polygon
              corners.`,
			defaultVal: 5,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables overrides or extends the output columns written
              for each segment. Keys are column names and values are
              expressions over the segment variables (seg_id, start_m, end_m,
              length_m, forest_m, forest_km, suitable).`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	for _, option := range options {
		for _, set := range option.flagsets {
			switch v := option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, v, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, v, option.usage)
				}
			case float64:
				set.Float64(option.name, v, option.usage)
			case int:
				set.Int(option.name, v, option.usage)
			case bool:
				set.Bool(option.name, v, option.usage)
			case map[string]string:
				b, err := json.Marshal(v)
				if err != nil {
					panic(err)
				}
				set.String(option.name, string(b), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}

	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("habitat: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "habitat",
	Short: "A river habitat suitability analyzer.",
	Long: `RiverHabitat classifies fixed-length sliding-window segments of river
centerlines by how much of their length overlaps a buffered, dissolved
forest coverage region.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format 'HABITAT_var'
where 'var' is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration
information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of RiverHabitat.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("RiverHabitat v%s\n", habitat.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the analysis.",
	Long: `run generates candidate segments along every river line, classifies
each against the buffered forest coverage region, and writes the complete
and suitable-only segment layers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(Cfg)
	},
	DisableAutoGenTag: true,
}
