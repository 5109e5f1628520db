package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	OCR      OCRConfig
	Pipeline PipelineConfig
	Batch    BatchConfig
	Export   ExportConfig
	LogLevel string
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Pdftoppm      string
	Tesseract     string
	TesseractLang string
	TessdataDir   string
	OEM           int
	MaxPages      int
}

// PipelineConfig holds the extraction thresholds.
type PipelineConfig struct {
	DPI                int
	MinOCRTextLen      int
	PageOCRTimeout     time.Duration
	VolumeMaxPlausible int
	RouteTablePath     string
	CaptureDebug       bool
}

// BatchConfig holds batch scheduling configuration
type BatchConfig struct {
	Workers         int
	DocumentTimeout time.Duration
}

// ExportConfig holds spreadsheet export configuration
type ExportConfig struct {
	OutputDir   string
	Responsible string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "por+eng"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
			OEM:           getEnvAsInt("TESSERACT_OEM", 3),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
		},
		Pipeline: PipelineConfig{
			DPI:                getEnvAsInt("OCR_DPI", 500),
			MinOCRTextLen:      getEnvAsInt("OCR_MIN_TEXT_LEN", 10),
			PageOCRTimeout:     getEnvAsDuration("OCR_PAGE_TIMEOUT", 0),
			VolumeMaxPlausible: getEnvAsInt("VOLUME_MAX_PLAUSIBLE", 1000),
			RouteTablePath:     getEnv("ROUTE_TABLE_PATH", ""),
			CaptureDebug:       getEnvAsBool("OCR_CAPTURE_DEBUG", false),
		},
		Batch: BatchConfig{
			Workers:         getEnvAsInt("BATCH_WORKERS", 2),
			DocumentTimeout: getEnvAsDuration("DOCUMENT_TIMEOUT", 0),
		},
		Export: ExportConfig{
			OutputDir:   getEnv("OUTPUT_DIR", "."),
			Responsible: getEnv("RESPONSIBLE", ""),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("PDFTOPPM_BIN", c.OCR.Pdftoppm, Required).
		Field("TESSERACT_BIN", c.OCR.Tesseract, Required).
		Field("TESSERACT_LANG", c.OCR.TesseractLang, Required).
		Field("OCR_MAX_PAGES", c.OCR.MaxPages, NonNegative).
		Field("OCR_DPI", c.Pipeline.DPI, Positive).
		Field("OCR_MIN_TEXT_LEN", c.Pipeline.MinOCRTextLen, NonNegative).
		Field("VOLUME_MAX_PLAUSIBLE", c.Pipeline.VolumeMaxPlausible, Positive).
		Field("BATCH_WORKERS", c.Batch.Workers, Positive)
	if v.HasErrors() {
		return NewAppError(CodeConfig, v.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}
