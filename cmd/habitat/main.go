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

// Command habitat is a command-line interface for the river habitat
// suitability analysis.
package main

import (
	"fmt"
	"os"

	"github.com/jalaluddingohar752-ui/River-Habitat-Suitability-Analysis/habitatutil"
)

func main() {
	if err := habitatutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
