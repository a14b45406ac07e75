package mapper

import (
	"math"

	"github.com/arborline/production-board/internal/domain"
)

// ToDelayRecordDTO converts DelayRecord to DelayRecordDTO with dates
// formatted for display and export
func ToDelayRecordDTO(record *domain.DelayRecord) domain.DelayRecordDTO {
	return domain.DelayRecordDTO{
		ID:                   record.ID,
		ProjectName:          record.ProjectName,
		ProductCode:          record.ProductCode,
		OriginalDeadline:     record.OriginalDeadline.Format("2006-01-02"),
		ActualCompletionDate: record.ActualCompletionDate.Format("2006-01-02"),
		DelayDuration:        record.DelayDuration,
		ResponsibleTeam:      record.ResponsibleTeam,
		ReasonForDelay:       record.ReasonForDelay,
		ImpactAssessment:     record.ImpactAssessment,
		ImpactSeverity:       record.ImpactSeverity(),
		Stage:                string(record.Stage),
		CreatedAt:            record.CreatedAt.Format("2006-01-02"),
	}
}

// ToUpcomingDeadlineDTO converts a production item to an upcoming-deadline row
func ToUpcomingDeadlineDTO(item *domain.ProductionItem, today int) domain.UpcomingDeadlineDTO {
	return domain.UpcomingDeadlineDTO{
		ItemID:      item.ID,
		ProductCode: item.ProductCode,
		ProductName: item.PrimarySKUName(),
		Priority:    item.Priority,
		Deadline:    item.Deadline,
		DaysUntil:   item.Deadline - today,
	}
}

// ToMissedDeadlineRow converts an overdue production item to a report row
func ToMissedDeadlineRow(item *domain.ProductionItem, today int) domain.MissedDeadlineRow {
	status := "In Progress"
	if item.ProgressPercent() == 100 {
		status = "Completed Late"
	}
	return domain.MissedDeadlineRow{
		ProductCode:     item.ProductCode,
		ProductName:     item.PrimarySKUName(),
		Quantity:        item.TotalQuantity(),
		Priority:        item.Priority,
		Deadline:        item.Deadline,
		DaysOverdue:     item.DaysOverdue(today),
		DelayedDays:     item.DelayedDayCount(),
		ProgressPercent: int(math.Round(item.ProgressPercent())),
		Status:          status,
	}
}
