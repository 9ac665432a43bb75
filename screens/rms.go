// This file is part of Smokescreen.
//
// Smokescreen is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Smokescreen is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Smokescreen.  If not, see <https://www.gnu.org/licenses/>.

package screens

import (
	"image"
	"math"
)

// rms returns the root mean square difference of the RGB channels of the two
// images, normalised to the range 0.0 to 1.0. The images must be of equal
// dimensions. The alpha channel takes no part in the comparison.
func rms(truth *image.RGBA, cand *image.RGBA) float64 {
	if len(truth.Pix) == 0 {
		return 0
	}

	var sum float64

	for i := 0; i < len(truth.Pix); i += 4 {
		// small cap improves performance, see https://golang.org/issue/27857
		a := truth.Pix[i : i+3 : i+3]
		b := cand.Pix[i : i+3 : i+3]

		for j := 0; j < 3; j++ {
			d := (float64(a[j]) - float64(b[j])) / 255.0
			sum += d * d
		}
	}

	// three samples per pixel
	n := float64(len(truth.Pix) / 4 * 3)

	return math.Sqrt(sum / n)
}
