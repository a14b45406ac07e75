package service

import (
	"fmt"
	"time"

	"github.com/arborline/production-board/internal/domain"
	"github.com/arborline/production-board/internal/logger"
	"github.com/arborline/production-board/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlannerService is the collection manager for production items: add,
// partial update, search, daily-status writes and bulk status updates.
// It also raises delay alerts on writes to the packaging stage's final day.
type PlannerService struct {
	items    *repository.ProductionRepository
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewPlannerService creates a new PlannerService instance
func NewPlannerService(items *repository.ProductionRepository, logger *zap.Logger) *PlannerService {
	return &PlannerService{
		items:    items,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Create validates the add form, assigns a fresh id and stores the item.
// Stage fields that fail numeric parsing fall back to the form defaults.
func (s *PlannerService) Create(req domain.CreateProductionItemRequest) (domain.ProductionItem, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.ProductionItem{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	skus := make([]domain.SKU, len(req.SKUs))
	for i, in := range req.SKUs {
		skus[i] = domain.SKU{Name: in.Name, Quantity: in.Quantity}
	}

	item := domain.ProductionItem{
		ID:          uuid.New().String(),
		ProductCode: req.ProductCode,
		SKUs:        skus,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		Stages:      req.ParseStages(),
		DailyStatus: map[int]domain.DayStatus{},
	}
	s.items.Add(item)

	s.logger.Info("production item created",
		zap.String("itemID", item.ID),
		zap.String("productCode", item.ProductCode),
		zap.Int("skus", len(item.SKUs)),
	)
	return item, nil
}

// Update shallow-merges the patch into the stored item. Non-nil patch
// fields replace the existing value wholesale. An unknown id is a silent
// no-op, not an error.
func (s *PlannerService) Update(id string, patch domain.ProductionItemPatch) {
	item, ok := s.items.GetByID(id)
	if !ok {
		s.logger.Debug("update ignored for unknown item", zap.String("itemID", id))
		return
	}

	if patch.ProductCode != nil {
		item.ProductCode = *patch.ProductCode
	}
	if patch.SKUs != nil {
		item.SKUs = append([]domain.SKU(nil), (*patch.SKUs)...)
	}
	if patch.StartDate != nil {
		item.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		item.EndDate = *patch.EndDate
	}
	if patch.Priority != nil {
		item.Priority = *patch.Priority
	}
	if patch.Deadline != nil {
		item.Deadline = *patch.Deadline
	}
	if patch.Stages != nil {
		item.Stages = *patch.Stages
	}
	if patch.DailyStatus != nil {
		replaced := make(map[int]domain.DayStatus, len(*patch.DailyStatus))
		for day, ds := range *patch.DailyStatus {
			replaced[day] = ds
		}
		item.DailyStatus = replaced
	}

	s.items.Replace(item)
}

// Get returns the item with the given id
func (s *PlannerService) Get(id string) (domain.ProductionItem, bool) {
	return s.items.GetByID(id)
}

// List returns all items in insertion order
func (s *PlannerService) List() []domain.ProductionItem {
	return s.items.List()
}

// Search filters items by product code or SKU name, case-insensitively
func (s *PlannerService) Search(query string) []domain.ProductionItem {
	return s.items.Search(query)
}

// SetDayStatus writes one day's status mark to the item's ledger. An empty
// status removes the day's entry entirely. The day is never validated
// against the stage windows; out-of-window marks are legal.
//
// When the write marks the packaging stage's final day Incomplete, a
// DelayAlert carrying a snapshot of the item is returned so the caller can
// open the delay-documentation workflow. The write itself always proceeds.
func (s *PlannerService) SetDayStatus(itemID string, day int, status domain.Status, stage domain.StageName) (*domain.DelayAlert, error) {
	item, ok := s.items.GetByID(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	if status == "" {
		delete(item.DailyStatus, day)
	} else {
		item.DailyStatus[day] = domain.DayStatus{Status: status, Stage: stage}
	}
	s.items.Replace(item)

	if status == domain.StatusIncomplete && day == item.Stages.Packaging.LastDay() {
		logger.WithItem(s.logger, item.ID, item.ProductCode).Warn(
			"packaging delay detected", zap.Int("day", day))
		return &domain.DelayAlert{Item: item, Day: day, DetectedAt: s.now()}, nil
	}
	return nil, nil
}

// CycleDayStatus advances the day's mark through the click cycle
// Complete -> Incomplete -> Delayed -> cleared -> Complete, recording the
// stage the day currently falls under (none when outside all windows).
func (s *PlannerService) CycleDayStatus(itemID string, day int) (*domain.DelayAlert, error) {
	item, ok := s.items.GetByID(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	next, clear := domain.NextCycleStatus(item.DailyStatus[day].Status)
	stageName, _, _ := item.Stages.ForDay(day)
	if clear {
		return s.SetDayStatus(itemID, day, "", "")
	}
	return s.SetDayStatus(itemID, day, next, stageName)
}

// BulkUpdateStatus sets one status on an explicit set of items and days,
// overwriting any existing entry for those days unconditionally. Items not
// in the selection are untouched. The pass is synchronous and cannot
// partially fail; unknown ids are skipped.
func (s *PlannerService) BulkUpdateStatus(req domain.BulkStatusUpdateRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated := 0
	for _, id := range req.ItemIDs {
		item, ok := s.items.GetByID(id)
		if !ok {
			continue
		}
		for _, day := range req.Days {
			item.DailyStatus[day] = domain.DayStatus{Status: req.Status, Stage: req.Stage}
		}
		s.items.Replace(item)
		updated++
	}

	s.logger.Info("bulk status update applied",
		zap.Int("items", updated),
		zap.Int("days", len(req.Days)),
		zap.String("status", string(req.Status)),
		zap.String("stage", string(req.Stage)),
	)
	return nil
}

// StageDays lists the calendar days of one stage's window for an item,
// used to pre-populate the bulk-update form's day picker.
func (s *PlannerService) StageDays(itemID string, stage domain.StageName) ([]int, error) {
	item, ok := s.items.GetByID(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	window, ok := item.Stages.Get(stage)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStage, stage)
	}
	return window.Days(), nil
}
