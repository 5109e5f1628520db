package common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"OCR_DPI", "OCR_MIN_TEXT_LEN", "TESSERACT_LANG", "BATCH_WORKERS", "VOLUME_MAX_PLAUSIBLE"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, 500, cfg.Pipeline.DPI)
	assert.Equal(t, 10, cfg.Pipeline.MinOCRTextLen)
	assert.Equal(t, "por+eng", cfg.OCR.TesseractLang)
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.Equal(t, 1000, cfg.Pipeline.VolumeMaxPlausible)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("OCR_DPI", "300")
	t.Setenv("OCR_PAGE_TIMEOUT", "45s")
	t.Setenv("OCR_CAPTURE_DEBUG", "true")
	t.Setenv("BATCH_WORKERS", "not-a-number")

	cfg := LoadConfig()
	assert.Equal(t, 300, cfg.Pipeline.DPI)
	assert.Equal(t, 45*time.Second, cfg.Pipeline.PageOCRTimeout)
	assert.True(t, cfg.Pipeline.CaptureDebug)
	assert.Equal(t, 2, cfg.Batch.Workers, "unparseable values fall back to the default")
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := LoadConfig()
	cfg.Pipeline.DPI = 0
	cfg.Batch.Workers = -1

	err := cfg.Validate()
	require.Error(t, err)

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, CodeConfig, appErr.Code)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "OCR_DPI")
	assert.Contains(t, err.Error(), "BATCH_WORKERS")
}
