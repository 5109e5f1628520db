package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/manifest-reader/constants"
	"github.com/joseph-ayodele/manifest-reader/internal/common"
	"github.com/joseph-ayodele/manifest-reader/internal/pipeline"
)

func TestNewProcessor(t *testing.T) {
	cfg := common.LoadConfig()
	cfg.Pipeline.RouteTablePath = ""

	p, err := NewProcessor(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, len(constants.DefaultRouteCodes()), p.Routes())
	assert.NotNil(t, p.Native())
	assert.NotNil(t, p.Rasterizer())
	assert.NotNil(t, p.Engine())
}

func TestNewProcessorRouteTableOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"S10": "CO A", "S11": "CO B"}`), 0o644))

	cfg := common.LoadConfig()
	cfg.Pipeline.RouteTablePath = path
	p, err := NewProcessor(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Routes())

	cfg.Pipeline.RouteTablePath = filepath.Join(t.TempDir(), "missing.json")
	_, err = NewProcessor(cfg, nil)
	require.Error(t, err)
}

func TestNewProcessorInvalidConfig(t *testing.T) {
	cfg := common.LoadConfig()
	cfg.Batch.Workers = 0
	_, err := NewProcessor(cfg, nil)
	require.Error(t, err)
}

func TestProcessUnreadableDocument(t *testing.T) {
	cfg := common.LoadConfig()
	cfg.Pipeline.RouteTablePath = ""
	cfg.OCR.Pdftoppm = filepath.Join(t.TempDir(), "no-such-pdftoppm")
	p, err := NewProcessor(cfg, nil)
	require.NoError(t, err)

	res := p.Process(context.Background(), pipeline.NewDocument("junk.pdf", []byte("this is not a pdf")))
	require.Error(t, res.Err)
	assert.True(t, common.IsSourceUnavailable(res.Err))
	assert.Equal(t, constants.RecordStatusFailed, res.Status)
}
