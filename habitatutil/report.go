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
	"fmt"

	habitat "github.com/jalaluddingohar752-ui/River-Habitat-Suitability-Analysis"
	"github.com/tealeg/xlsx"
)

// WriteReport writes a run summary workbook to filename.
func WriteReport(filename string, s *habitat.RunSummary) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Summary")
	if err != nil {
		return fmt.Errorf("habitat: problem creating report: %v", err)
	}

	addInt := func(label string, v int) {
		r := sheet.AddRow()
		r.AddCell().SetString(label)
		r.AddCell().SetInt(v)
	}
	addFloat := func(label string, v float64) {
		r := sheet.AddRow()
		r.AddCell().SetString(label)
		r.AddCell().SetFloat(v)
	}

	addInt("Total segments", s.TotalSegments)
	addInt("Suitable segments", s.SuitableSegments)
	addInt("Skipped features", s.SkippedFeatures)
	addFloat("Success rate", s.SuccessRate())
	if s.TotalSegments > 0 {
		addFloat("Mean overlap length", s.Overlap.Mean())
		addFloat("Min overlap length", s.Overlap.Min())
		addFloat("Max overlap length", s.Overlap.Max())
		if s.TotalSegments > 1 {
			addFloat("Overlap std dev", s.Overlap.SampleStandardDeviation())
		}
	}

	if err := f.Save(filename); err != nil {
		return fmt.Errorf("habitat: problem saving report: %v", err)
	}
	return nil
}
