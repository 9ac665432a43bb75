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
	"image/draw"
	"image/png"
	"os"

	"github.com/ferrovia/smokescreen/curated"
)

// savePNG encodes the image and writes it to the named file, replacing any
// existing file.
func savePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf("screens: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return curated.Errorf("screens: %v", err)
	}

	return nil
}

// loadPNG reads the named file and decodes it into an RGBA image.
func loadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf("screens: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		return nil, curated.Errorf("screens: %v", err)
	}

	// the PNG decoder does not guarantee an RGBA image
	img, ok := decoded.(*image.RGBA)
	if !ok {
		img = image.NewRGBA(decoded.Bounds())
		draw.Draw(img, img.Bounds(), decoded, decoded.Bounds().Min, draw.Src)
	}

	return img, nil
}
