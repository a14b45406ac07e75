package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arborline/production-board/internal/config"
	"github.com/arborline/production-board/internal/domain"
	"github.com/arborline/production-board/internal/mapper"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Exporter writes spreadsheet reports of the current in-memory state to the
// configured export directory. Filenames carry the current date.
type Exporter struct {
	dir    string
	logger *zap.Logger
}

// NewExporter creates a new Exporter instance
func NewExporter(cfg *config.ExportConfig, logger *zap.Logger) *Exporter {
	return &Exporter{dir: cfg.Dir, logger: logger}
}

var delayRecordHeaders = []string{
	"Project Name",
	"Product Code",
	"Original Deadline",
	"Actual Completion",
	"Delay Duration (Days)",
	"Responsible Team",
	"Reason for Delay",
	"Impact Assessment",
	"Stage",
	"Recorded Date",
}

var delayRecordColWidths = []float64{20, 15, 15, 15, 12, 15, 40, 40, 12, 15}

// WriteDelayRecords writes the delay-records workbook and returns its path
func (e *Exporter) WriteDelayRecords(records []domain.DelayRecord, now time.Time) (string, error) {
	const sheet = "Delay Records"

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeHeaderRow(f, sheet, delayRecordHeaders, delayRecordColWidths); err != nil {
		return "", err
	}

	for i := range records {
		dto := mapper.ToDelayRecordDTO(&records[i])
		row := []interface{}{
			dto.ProjectName,
			dto.ProductCode,
			dto.OriginalDeadline,
			dto.ActualCompletionDate,
			dto.DelayDuration,
			dto.ResponsibleTeam,
			dto.ReasonForDelay,
			dto.ImpactAssessment,
			dto.Stage,
			dto.CreatedAt,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return "", err
		}
	}

	path := filepath.Join(e.dir, fmt.Sprintf("delay_records_%s.xlsx", now.Format("2006-01-02")))
	if err := e.save(f, path); err != nil {
		return "", err
	}

	e.logger.Info("delay records exported",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)
	return path, nil
}

var missedDeadlineHeaders = []string{
	"Product Code",
	"Product Name",
	"Quantity",
	"Priority",
	"Deadline",
	"Days Overdue",
	"Delayed Days",
	"Progress %",
	"Status",
	"Month",
}

var missedDeadlineColWidths = []float64{15, 25, 10, 10, 10, 12, 12, 12, 15, 15}

// WriteMissedDeadlines writes the missed-deadlines workbook and returns its path
func (e *Exporter) WriteMissedDeadlines(rows []domain.MissedDeadlineRow, now time.Time) (string, error) {
	const sheet = "Missed Deadlines"

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeHeaderRow(f, sheet, missedDeadlineHeaders, missedDeadlineColWidths); err != nil {
		return "", err
	}

	month := now.Format("January 2006")
	for i, r := range rows {
		row := []interface{}{
			r.ProductCode,
			r.ProductName,
			r.Quantity,
			string(r.Priority),
			fmt.Sprintf("Day %d", r.Deadline),
			r.DaysOverdue,
			r.DelayedDays,
			r.ProgressPercent,
			r.Status,
			month,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return "", err
		}
	}

	path := filepath.Join(e.dir, fmt.Sprintf("missed_deadlines_%s.xlsx", now.Format("2006-01-02")))
	if err := e.save(f, path); err != nil {
		return "", err
	}

	e.logger.Info("missed deadlines exported",
		zap.String("path", path),
		zap.Int("rows", len(rows)),
	)
	return path, nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string, widths []float64) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to build column name: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell: %w", err)
		}
	}
	return nil
}

func (e *Exporter) save(f *excelize.File, path string) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
