package pipeline

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/joseph-ayodele/manifest-reader/internal/ocr"
)

type fakeNative struct {
	pages []string
	err   error
}

func (f fakeNative) PageTexts(context.Context, []byte) ([]string, error) {
	return f.pages, f.err
}

// fakeRasterizer renders page i as an image i pixels wide so the fake engine
// can tell pages apart after preprocessing.
type fakeRasterizer struct {
	pages int
	err   error
	calls int
	dpi   int
}

func (f *fakeRasterizer) Rasterize(_ context.Context, _ []byte, dpi int) ([]image.Image, error) {
	f.calls++
	f.dpi = dpi
	if f.err != nil {
		return nil, f.err
	}
	out := make([]image.Image, 0, f.pages)
	for i := 1; i <= f.pages; i++ {
		out = append(out, imaging.New(i, 4, color.White))
	}
	return out, nil
}

type ocrCall struct {
	page int
	mode ocr.SegMode
}

type fakeEngine struct {
	mu    sync.Mutex
	texts map[int]map[ocr.SegMode]string
	errs  map[int]error
	block bool
	panic bool
	calls []ocrCall
}

func (f *fakeEngine) Recognize(ctx context.Context, img image.Image, mode ocr.SegMode) (string, error) {
	page := img.Bounds().Dx()
	f.mu.Lock()
	f.calls = append(f.calls, ocrCall{page: page, mode: mode})
	f.mu.Unlock()

	if f.panic {
		panic("engine exploded")
	}
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err := f.errs[page]; err != nil {
		return "", err
	}
	return f.texts[page][mode], nil
}

// uniform returns engine output that is the same for every segmentation mode.
func uniform(text string) map[ocr.SegMode]string {
	return map[ocr.SegMode]string{ocr.SegUniformBlock: text, ocr.SegAuto: text}
}
