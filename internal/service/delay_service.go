package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/arborline/production-board/internal/domain"
	"github.com/arborline/production-board/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DelayService records and queries delay documentation. Submission is the
// only way a DelayRecord is created; cancelling the documentation dialog
// simply never calls Submit, and the triggering ledger write stands.
type DelayService struct {
	records  *repository.DelayRecordRepository
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewDelayService creates a new DelayService instance
func NewDelayService(records *repository.DelayRecordRepository, logger *zap.Logger) *DelayService {
	return NewDelayServiceWithClock(records, logger, time.Now)
}

// NewDelayServiceWithClock creates a DelayService with an injected clock
func NewDelayServiceWithClock(records *repository.DelayRecordRepository, logger *zap.Logger, now func() time.Time) *DelayService {
	return &DelayService{
		records:  records,
		validate: validator.New(),
		logger:   logger,
		now:      now,
	}
}

// Submit validates the delay-documentation form and appends an immutable
// record for the item that raised the alert. The original deadline date is
// built from the current year/month and the item's deadline day-of-month;
// the delay duration is the day count from that date to the actual
// completion date, rounded up.
func (s *DelayService) Submit(item domain.ProductionItem, req domain.DelayRecordRequest) (domain.DelayRecord, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.DelayRecord{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now()
	originalDeadline := time.Date(now.Year(), now.Month(), item.Deadline, 0, 0, 0, 0, now.Location())
	delayDuration := int(math.Ceil(req.ActualCompletionDate.Sub(originalDeadline).Hours() / 24))

	record := domain.DelayRecord{
		ID:                   uuid.New().String(),
		ProjectName:          item.PrimarySKUName(),
		ProductCode:          item.ProductCode,
		OriginalDeadline:     originalDeadline,
		ActualCompletionDate: req.ActualCompletionDate,
		ReasonForDelay:       req.ReasonForDelay,
		ImpactAssessment:     req.ImpactAssessment,
		ResponsibleTeam:      req.ResponsibleTeam,
		DelayDuration:        delayDuration,
		Stage:                domain.StagePackaging,
		CreatedAt:            now,
	}
	s.records.Append(record)

	s.logger.Info("delay record created",
		zap.String("recordID", record.ID),
		zap.String("productCode", record.ProductCode),
		zap.Int("delayDuration", record.DelayDuration),
		zap.String("responsibleTeam", record.ResponsibleTeam),
	)
	return record, nil
}

// List returns all delay records in creation order
func (s *DelayService) List() []domain.DelayRecord {
	return s.records.List()
}

// Filter narrows the record listing by free-text query, responsible team
// and creation window, all combined with AND.
func (s *DelayService) Filter(f domain.DelayRecordFilter) []domain.DelayRecord {
	q := strings.ToLower(f.Query)
	var cutoff time.Time
	if f.SinceDays > 0 {
		cutoff = s.now().AddDate(0, 0, -f.SinceDays)
	}

	out := make([]domain.DelayRecord, 0)
	for _, record := range s.records.List() {
		if q != "" &&
			!strings.Contains(strings.ToLower(record.ProjectName), q) &&
			!strings.Contains(strings.ToLower(record.ProductCode), q) &&
			!strings.Contains(strings.ToLower(record.ReasonForDelay), q) {
			continue
		}
		if f.Team != "" && f.Team != "all" && record.ResponsibleTeam != f.Team {
			continue
		}
		if f.SinceDays > 0 && record.CreatedAt.Before(cutoff) {
			continue
		}
		out = append(out, record)
	}
	return out
}

// Stats summarizes a set of records: count, rounded mean duration and the
// most frequent responsible team.
func (s *DelayService) Stats(records []domain.DelayRecord) domain.DelayStats {
	stats := domain.DelayStats{TotalDelays: len(records)}
	if len(records) == 0 {
		return stats
	}

	sum := 0
	teamCounts := make(map[string]int)
	for _, record := range records {
		sum += record.DelayDuration
		teamCounts[record.ResponsibleTeam]++
	}
	stats.AvgDelayDuration = int(math.Round(float64(sum) / float64(len(records))))

	for team, count := range teamCounts {
		if count > stats.TopTeamCount || (count == stats.TopTeamCount && team < stats.TopTeam) {
			stats.TopTeam = team
			stats.TopTeamCount = count
		}
	}
	return stats
}
