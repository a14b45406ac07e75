package domain

import (
	"strconv"
	"time"
)

// Default stage windows used when a form field fails numeric parsing.
// These mirror the add-production form's fallback values.
var (
	DefaultRaisedStage        = Stage{Start: 1, Duration: 2}
	DefaultPreProductionStage = Stage{Start: 3, Duration: 3}
	DefaultProductionStage    = Stage{Start: 6, Duration: 5}
	DefaultPackagingStage     = Stage{Start: 11, Duration: 3}
)

// SKUInput is one stock-keeping unit line on the add/edit form
type SKUInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// StageInput carries the raw text of one stage's start/duration fields.
// Values that fail to parse fall back to the stage's documented default
// rather than rejecting the operation.
type StageInput struct {
	Start    string `json:"start"`
	Duration string `json:"duration"`
}

// ParseOr resolves the raw fields against fallback, field by field
func (si StageInput) ParseOr(fallback Stage) Stage {
	out := fallback
	if v, err := strconv.Atoi(si.Start); err == nil {
		out.Start = v
	}
	if v, err := strconv.Atoi(si.Duration); err == nil {
		out.Duration = v
	}
	return out
}

// CreateProductionItemRequest is the add-production form payload
type CreateProductionItemRequest struct {
	ProductCode   string     `json:"productCode" validate:"required,max=50"`
	SKUs          []SKUInput `json:"skus" validate:"min=1,dive"`
	StartDate     time.Time  `json:"startDate" validate:"required"`
	EndDate       time.Time  `json:"endDate" validate:"required"`
	Priority      Priority   `json:"priority" validate:"required,oneof=low medium high"`
	Deadline      int        `json:"deadline" validate:"gte=1,lte=31"`
	Raised        StageInput `json:"raised"`
	PreProduction StageInput `json:"preProduction"`
	Production    StageInput `json:"production"`
	Packaging     StageInput `json:"packaging"`
}

// ParseStages resolves the four stage inputs against the form defaults
func (r CreateProductionItemRequest) ParseStages() StageSet {
	return StageSet{
		Raised:        r.Raised.ParseOr(DefaultRaisedStage),
		PreProduction: r.PreProduction.ParseOr(DefaultPreProductionStage),
		Production:    r.Production.ParseOr(DefaultProductionStage),
		Packaging:     r.Packaging.ParseOr(DefaultPackagingStage),
	}
}

// ProductionItemPatch is a partial update: nil fields are left unchanged,
// non-nil fields replace the existing value wholesale (supplying Stages
// replaces all four windows, supplying DailyStatus replaces the whole ledger).
type ProductionItemPatch struct {
	ProductCode *string            `json:"productCode,omitempty"`
	SKUs        *[]SKU             `json:"skus,omitempty"`
	StartDate   *time.Time         `json:"startDate,omitempty"`
	EndDate     *time.Time         `json:"endDate,omitempty"`
	Priority    *Priority          `json:"priority,omitempty"`
	Deadline    *int               `json:"deadline,omitempty"`
	Stages      *StageSet          `json:"stages,omitempty"`
	DailyStatus *map[int]DayStatus `json:"dailyStatus,omitempty"`
}

// BulkStatusUpdateRequest is the bulk-update form payload: one status and
// one stage applied to an explicit set of items and days.
type BulkStatusUpdateRequest struct {
	ItemIDs []string  `json:"itemIds" validate:"min=1"`
	Status  Status    `json:"status" validate:"required,oneof=Y N D"`
	Stage   StageName `json:"stage" validate:"required,oneof=raised preProduction production packaging"`
	Days    []int     `json:"days" validate:"min=1,dive,gte=1,lte=31"`
}

// DelayRecordRequest is the delay-documentation form payload
type DelayRecordRequest struct {
	ActualCompletionDate time.Time `json:"actualCompletionDate" validate:"required"`
	ReasonForDelay       string    `json:"reasonForDelay" validate:"required,max=2000"`
	ImpactAssessment     string    `json:"impactAssessment" validate:"required,max=2000"`
	ResponsibleTeam      string    `json:"responsibleTeam" validate:"required,oneof=production packaging quality logistics management external"`
}

// DelayRecordFilter narrows the delay-record listing. Query matches project
// name, product code or delay reason case-insensitively; Team filters by
// responsible team ("all" or empty disables it); SinceDays keeps records
// created within the window (0 disables it).
type DelayRecordFilter struct {
	Query     string
	Team      string
	SinceDays int
}

// OverallStats summarizes item completion across the whole collection
type OverallStats struct {
	TotalItems      int `json:"totalItems"`
	CompletedItems  int `json:"completedItems"`
	InProgressItems int `json:"inProgressItems"`
	NotStartedItems int `json:"notStartedItems"`
	OverallProgress int `json:"overallProgress"` // percent, in-progress items weighted 0.5
}

// StageStats is one stage's completed/total day counts across all items
type StageStats struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// ProgressPercent is the stage's completion percentage, 0 when no days are required
func (s StageStats) ProgressPercent() int {
	if s.Total == 0 {
		return 0
	}
	return int(float64(s.Completed)/float64(s.Total)*100 + 0.5)
}

// UpcomingDeadlineDTO is one row of the next-seven-days deadline list
type UpcomingDeadlineDTO struct {
	ItemID      string   `json:"itemId"`
	ProductCode string   `json:"productCode"`
	ProductName string   `json:"productName"`
	Priority    Priority `json:"priority"`
	Deadline    int      `json:"deadline"`
	DaysUntil   int      `json:"daysUntil"`
}

// DelayTrendStats summarizes delay records for the dashboard
type DelayTrendStats struct {
	RecentDelays     int `json:"recentDelays"`     // within the trend window
	AvgDelayDuration int `json:"avgDelayDuration"` // rounded mean of recent delays, days
	TotalDelays      int `json:"totalDelays"`      // all time
}

// DashboardSnapshot is the full dashboard payload, recomputed on every read
type DashboardSnapshot struct {
	Overall           OverallStats             `json:"overall"`
	StageProgress     map[StageName]StageStats `json:"stageProgress"`
	UpcomingDeadlines []UpcomingDeadlineDTO    `json:"upcomingDeadlines"`
	DelayTrends       DelayTrendStats          `json:"delayTrends"`
}

// DelayStats summarizes a filtered set of delay records
type DelayStats struct {
	TotalDelays      int    `json:"totalDelays"`
	AvgDelayDuration int    `json:"avgDelayDuration"` // rounded mean, days
	TopTeam          string `json:"topTeam"`
	TopTeamCount     int    `json:"topTeamCount"`
}

// DelayRecordDTO is a delay record with dates formatted for display and export
type DelayRecordDTO struct {
	ID                   string `json:"id"`
	ProjectName          string `json:"projectName"`
	ProductCode          string `json:"productCode"`
	OriginalDeadline     string `json:"originalDeadline"`     // ISO date
	ActualCompletionDate string `json:"actualCompletionDate"` // ISO date
	DelayDuration        int    `json:"delayDuration"`
	ResponsibleTeam      string `json:"responsibleTeam"`
	ReasonForDelay       string `json:"reasonForDelay"`
	ImpactAssessment     string `json:"impactAssessment"`
	ImpactSeverity       string `json:"impactSeverity"`
	Stage                string `json:"stage"`
	CreatedAt            string `json:"createdAt"` // ISO date
}

// MissedDeadlineRow is one row of the missed-deadlines report
type MissedDeadlineRow struct {
	ProductCode     string   `json:"productCode"`
	ProductName     string   `json:"productName"`
	Quantity        int      `json:"quantity"`
	Priority        Priority `json:"priority"`
	Deadline        int      `json:"deadline"`
	DaysOverdue     int      `json:"daysOverdue"`
	DelayedDays     int      `json:"delayedDays"`
	ProgressPercent int      `json:"progressPercent"`
	Status          string   `json:"status"` // "Completed Late" or "In Progress"
}
