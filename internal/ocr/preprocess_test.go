package ocr

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

func TestPreprocessBinarizes(t *testing.T) {
	// left half dark gray, right half mid gray: after autocontrast the halves
	// land on 0 and 255, so the threshold splits them cleanly
	img := imaging.New(40, 20, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	for y := 0; y < 20; y++ {
		for x := 20; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 150, G: 150, B: 150, A: 255})
		}
	}

	out := Preprocess(img)
	assert.Equal(t, image.Rect(0, 0, 40, 20), out.Bounds())
	assert.Equal(t, uint8(0), out.NRGBAAt(2, 10).R)
	assert.Equal(t, uint8(255), out.NRGBAAt(37, 10).R)

	for i := 0; i < len(out.Pix); i += 4 {
		v := out.Pix[i]
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d not binarized: %d", i/4, v)
		}
	}
}

func TestPreprocessUniformImage(t *testing.T) {
	light := Preprocess(imaging.New(5, 5, color.NRGBA{R: 200, G: 200, B: 200, A: 255}))
	dark := Preprocess(imaging.New(5, 5, color.NRGBA{R: 120, G: 120, B: 120, A: 255}))
	assert.Equal(t, uint8(255), light.NRGBAAt(2, 2).R)
	assert.Equal(t, uint8(0), dark.NRGBAAt(2, 2).R)
}

func TestAutocontrast(t *testing.T) {
	img := imaging.New(2, 1, color.Black)
	img.SetNRGBA(0, 0, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 100, G: 100, B: 100, A: 255})

	out := autocontrast(img)
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(255), out.NRGBAAt(1, 0).R)
}
