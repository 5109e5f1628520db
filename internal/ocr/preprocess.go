package ocr

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

const binarizeThreshold = 180

// Preprocess prepares a rendered page for OCR: grayscale, autocontrast, a light
// sharpen, then binarization (> 180 becomes white, everything else black).
func Preprocess(img image.Image) *image.NRGBA {
	gray := autocontrast(imaging.Grayscale(img))
	gray = imaging.Sharpen(gray, 1)
	return imaging.AdjustFunc(gray, func(c color.NRGBA) color.NRGBA {
		var v uint8
		if c.R > binarizeThreshold {
			v = 255
		}
		return color.NRGBA{R: v, G: v, B: v, A: 255}
	})
}

// autocontrast stretches the gray levels of img to the full 0..255 range.
func autocontrast(img *image.NRGBA) *image.NRGBA {
	lo, hi := uint8(255), uint8(0)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		v := img.Pix[i]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		return img
	}
	scale := 255 / float64(hi-lo)
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		v := uint8(math.Round(float64(c.R-lo) * scale))
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	})
}
