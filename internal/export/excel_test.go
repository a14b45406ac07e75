package export_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/arborline/production-board/internal/config"
	"github.com/arborline/production-board/internal/domain"
	"github.com/arborline/production-board/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var exportTestNow = time.Date(2024, time.September, 25, 10, 0, 0, 0, time.UTC)

func newExporter(t *testing.T) *export.Exporter {
	t.Helper()
	cfg := config.ExportConfig{Dir: t.TempDir()}
	return export.NewExporter(&cfg, zap.NewNop())
}

func TestExporter_WriteDelayRecords(t *testing.T) {
	exporter := newExporter(t)

	records := []domain.DelayRecord{
		{
			ID:                   "1",
			ProjectName:          "SALTED CASHEW",
			ProductCode:          "SP031",
			OriginalDeadline:     time.Date(2024, time.September, 20, 0, 0, 0, 0, time.UTC),
			ActualCompletionDate: time.Date(2024, time.September, 23, 0, 0, 0, 0, time.UTC),
			ReasonForDelay:       "Packaging film shipment arrived late",
			ImpactAssessment:     "Dispatch pushed past the committed window",
			ResponsibleTeam:      "logistics",
			DelayDuration:        3,
			Stage:                domain.StagePackaging,
			CreatedAt:            exportTestNow,
		},
	}

	path, err := exporter.WriteDelayRecords(records, exportTestNow)
	require.NoError(t, err)
	assert.Equal(t, "delay_records_2024-09-25.xlsx", filepath.Base(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	const sheet = "Delay Records"
	assert.Contains(t, f.GetSheetList(), sheet)

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Project Name", header)

	project, _ := f.GetCellValue(sheet, "A2")
	assert.Equal(t, "SALTED CASHEW", project)
	deadline, _ := f.GetCellValue(sheet, "C2")
	assert.Equal(t, "2024-09-20", deadline)
	duration, _ := f.GetCellValue(sheet, "E2")
	assert.Equal(t, "3", duration)
	team, _ := f.GetCellValue(sheet, "F2")
	assert.Equal(t, "logistics", team)
	stage, _ := f.GetCellValue(sheet, "I2")
	assert.Equal(t, "packaging", stage)
}

func TestExporter_WriteMissedDeadlines(t *testing.T) {
	exporter := newExporter(t)

	rows := []domain.MissedDeadlineRow{
		{
			ProductCode:     "CENV32",
			ProductName:     "Smoked Almonds",
			Quantity:        10000,
			Priority:        domain.PriorityHigh,
			Deadline:        20,
			DaysOverdue:     5,
			DelayedDays:     1,
			ProgressPercent: 62,
			Status:          "In Progress",
		},
	}

	path, err := exporter.WriteMissedDeadlines(rows, exportTestNow)
	require.NoError(t, err)
	assert.Equal(t, "missed_deadlines_2024-09-25.xlsx", filepath.Base(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	const sheet = "Missed Deadlines"
	assert.Contains(t, f.GetSheetList(), sheet)

	header, err := f.GetCellValue(sheet, "J1")
	require.NoError(t, err)
	assert.Equal(t, "Month", header)

	code, _ := f.GetCellValue(sheet, "A2")
	assert.Equal(t, "CENV32", code)
	deadline, _ := f.GetCellValue(sheet, "E2")
	assert.Equal(t, "Day 20", deadline)
	overdue, _ := f.GetCellValue(sheet, "F2")
	assert.Equal(t, "5", overdue)
	status, _ := f.GetCellValue(sheet, "I2")
	assert.Equal(t, "In Progress", status)
	month, _ := f.GetCellValue(sheet, "J2")
	assert.Equal(t, "September 2024", month)
}

func TestExporter_EmptyDataStillWritesHeaders(t *testing.T) {
	exporter := newExporter(t)

	path, err := exporter.WriteDelayRecords(nil, exportTestNow)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	header, err := f.GetCellValue("Delay Records", "J1")
	require.NoError(t, err)
	assert.Equal(t, "Recorded Date", header)
}
