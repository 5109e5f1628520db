package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/manifest-reader/internal/numparse"
	"github.com/joseph-ayodele/manifest-reader/internal/pipeline"
)

const (
	ManifestSheet = "MANIFESTOS"
	StatusSheet   = "STATUS"
)

// ManifestHeaders are the operator spreadsheet columns, in order.
var ManifestHeaders = []string{
	"MANIFESTO",
	"DATA",
	"DESTINO",
	"REFERÊNCIA",
	"RESPONSÁVEL",
	"VALOR TOTAL (R$)",
	"VOLUMES",
}

var statusHeaders = []string{"ARQUIVO", "STATUS", "CAMPOS AUSENTES", "ERRO"}

// Service renders batch results as an XLSX workbook.
type Service struct {
	responsible string
	logger      *slog.Logger
}

// NewService takes the operator-entered responsible party, written upper-cased on every row.
func NewService(responsible string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{responsible: strings.ToUpper(strings.TrimSpace(responsible)), logger: logger}
}

// DefaultFileName is the workbook name for a batch run on day now.
func DefaultFileName(now time.Time) string {
	return fmt.Sprintf("OPERACIONAL_%s.xlsx", now.Format("2006-01-02"))
}

// Row renders one result in ManifestHeaders order. Failed documents keep
// whatever was resolved before the failure, usually nothing.
func (s *Service) Row(res pipeline.Result) []string {
	rec := res.Record
	value := ""
	if rec.TotalValue.Valid {
		value = numparse.FormatBR(rec.TotalValue.Decimal)
	}
	volumes := ""
	if rec.VolumeCount > 0 {
		volumes = fmt.Sprint(rec.VolumeCount)
	}
	return []string{
		rec.Identifier,
		rec.IssueDate,
		rec.Destination,
		"", // reference is filled in by the operator
		s.responsible,
		value,
		volumes,
	}
}

// ExportManifestsXLSX returns an XLSX workbook (as bytes) with one row per result.
func (s *Service) ExportManifestsXLSX(ctx context.Context, results []pipeline.Result) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("export.xlsx.close", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", ManifestSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	if _, err := f.NewSheet(StatusSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	activeIndex, _ := f.GetSheetIndex(ManifestSheet)
	f.SetActiveSheet(activeIndex)

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx style: %w", err)
	}

	if err := writeRow(f, ManifestSheet, 1, ManifestHeaders); err != nil {
		return nil, err
	}
	if err := writeRow(f, StatusSheet, 1, statusHeaders); err != nil {
		return nil, err
	}
	_ = f.SetRowStyle(ManifestSheet, 1, 1, header)
	_ = f.SetRowStyle(StatusSheet, 1, 1, header)

	for i, res := range results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := i + 2
		if err := writeRow(f, ManifestSheet, row, s.Row(res)); err != nil {
			return nil, err
		}
		errText := ""
		if res.Err != nil {
			errText = res.Err.Error()
		}
		status := []string{res.Name, string(res.Status), strings.Join(res.Record.MissingFields(), ", "), errText}
		if err := writeRow(f, StatusSheet, row, status); err != nil {
			return nil, err
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(ManifestSheet, "A", "A", 18) // identifier
	_ = f.SetColWidth(ManifestSheet, "B", "B", 12) // date
	_ = f.SetColWidth(ManifestSheet, "C", "C", 32) // destination
	_ = f.SetColWidth(ManifestSheet, "D", "E", 16)
	_ = f.SetColWidth(ManifestSheet, "F", "G", 16)
	_ = f.SetColWidth(StatusSheet, "A", "A", 40)
	_ = f.SetColWidth(StatusSheet, "B", "B", 12)
	_ = f.SetColWidth(StatusSheet, "C", "D", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(results),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WriteFile exports results to dir/name and returns the written path.
func (s *Service) WriteFile(ctx context.Context, dir, name string, results []pipeline.Result) (string, error) {
	data, err := s.ExportManifestsXLSX(ctx, results)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx row %d: %w", row, err)
	}
	return nil
}
