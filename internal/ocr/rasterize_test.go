package ocr

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePdftoppm writes n PNGs of increasing width next to the output prefix.
func fakePdftoppm(n int) func(string, []string) ([]byte, []byte, error) {
	return func(_ string, args []string) ([]byte, []byte, error) {
		prefix := args[len(args)-1]
		for i := 1; i <= n; i++ {
			if err := imaging.Save(imaging.New(10*i, 5, color.White), fmt.Sprintf("%s-%d.png", prefix, i)); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	}
}

// fakePdftoppmRange honours -f and -l over a document of total pages.
func fakePdftoppmRange(total int) func(string, []string) ([]byte, []byte, error) {
	return func(_ string, args []string) ([]byte, []byte, error) {
		first, last := 1, total
		if i := slices.Index(args, "-f"); i >= 0 {
			first, _ = strconv.Atoi(args[i+1])
		}
		if i := slices.Index(args, "-l"); i >= 0 {
			last, _ = strconv.Atoi(args[i+1])
		}
		prefix := args[len(args)-1]
		for p := first; p <= last; p++ {
			if err := imaging.Save(imaging.New(10*p, 5, color.White), fmt.Sprintf("%s-%d.png", prefix, p)); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	}
}

func TestRasterizerPageCount(t *testing.T) {
	r := NewRasterizer(Config{}, nil)

	n, err := r.PageCount(buildPDF([]string{"A"}, []string{"B"}, []string{"C"}))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = r.PageCount([]byte("not a pdf"))
	assert.Error(t, err)
}

func TestRasterizerRasterize(t *testing.T) {
	runner := &stubRunner{run: fakePdftoppm(2)}
	r := NewRasterizer(Config{TempDir: t.TempDir()}, nil)
	r.runner = runner

	pages, err := r.Rasterize(context.Background(), buildPDF([]string{"A"}, []string{"B"}), 500)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 10, pages[0].Bounds().Dx())
	assert.Equal(t, 20, pages[1].Bounds().Dx())

	require.Len(t, runner.calls, 1)
	call := runner.calls[0]
	assert.Equal(t, "pdftoppm", call[0])
	assert.Equal(t, []string{"-r", "500", "-png"}, call[1:4])
}

func TestRasterizerMaxPages(t *testing.T) {
	doc := buildPDF([]string{"A"}, []string{"B"}, []string{"C"}, []string{"D"})
	cases := []struct {
		name     string
		maxPages int
		widths   []int
		calls    [][]string
	}{
		{"no cap", 0, []int{10, 20, 30, 40}, [][]string{{"-r", "300", "-png"}}},
		{"cap above page count", 5, []int{10, 20, 30, 40}, [][]string{{"-r", "300", "-png"}}},
		{"cap keeps last page", 3, []int{10, 20, 40}, [][]string{
			{"-r", "300", "-png", "-l", "2"},
			{"-r", "300", "-png", "-f", "4"},
		}},
		{"cap of one still renders first and last", 1, []int{10, 40}, [][]string{
			{"-r", "300", "-png", "-l", "1"},
			{"-r", "300", "-png", "-f", "4"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			runner := &stubRunner{run: fakePdftoppmRange(4)}
			r := NewRasterizer(Config{MaxPages: tc.maxPages, TempDir: t.TempDir()}, nil)
			r.runner = runner

			pages, err := r.Rasterize(context.Background(), doc, 300)
			require.NoError(t, err)
			widths := make([]int, len(pages))
			for i, p := range pages {
				widths[i] = p.Bounds().Dx()
			}
			assert.Equal(t, tc.widths, widths)

			require.Len(t, runner.calls, len(tc.calls))
			for i, want := range tc.calls {
				assert.Equal(t, want, runner.calls[i][1:len(want)+1])
			}
		})
	}
}

func TestRasterizerErrors(t *testing.T) {
	r := NewRasterizer(Config{TempDir: t.TempDir()}, nil)
	r.runner = &stubRunner{run: func(string, []string) ([]byte, []byte, error) {
		return nil, []byte("Syntax Error"), errors.New("exit status 1")
	}}
	_, err := r.Rasterize(context.Background(), buildPDF([]string{"A"}), 500)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Syntax Error")

	r.runner = &stubRunner{}
	_, err = r.Rasterize(context.Background(), buildPDF([]string{"A"}), 500)
	assert.ErrorContains(t, err, "no images")

	_, err = r.Rasterize(context.Background(), []byte("garbage"), 500)
	assert.Error(t, err)
}
