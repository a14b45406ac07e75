package domain

import (
	"strings"
	"time"
)

// Status represents the completion mark on a single calendar day.
// The values are the single-letter marks shown in the planner grid.
type Status string

const (
	StatusComplete   Status = "Y"
	StatusIncomplete Status = "N"
	StatusDelayed    Status = "D"
)

// IsValid checks if the Status is a valid enum value
func (s Status) IsValid() bool {
	switch s {
	case StatusComplete, StatusIncomplete, StatusDelayed:
		return true
	}
	return false
}

// ParseStatusKey maps a grid key press to a status mark.
// Y/N/D set a mark, Delete and Backspace clear the day (empty status, ok).
// Any other key is not a ledger operation.
func ParseStatusKey(key string) (Status, bool) {
	switch strings.ToUpper(key) {
	case "Y":
		return StatusComplete, true
	case "N":
		return StatusIncomplete, true
	case "D":
		return StatusDelayed, true
	case "DELETE", "BACKSPACE":
		return "", true
	}
	return "", false
}

// NextCycleStatus returns the status following current in the click cycle:
// Complete -> Incomplete -> Delayed -> cleared -> Complete.
// clear reports that the day's entry should be removed instead of set.
func NextCycleStatus(current Status) (next Status, clear bool) {
	switch current {
	case StatusComplete:
		return StatusIncomplete, false
	case StatusIncomplete:
		return StatusDelayed, false
	case StatusDelayed:
		return "", true
	default:
		return StatusComplete, false
	}
}

// Priority represents the urgency of a production item
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid checks if the Priority is a valid enum value
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// StageName identifies one of the four fixed manufacturing stages
type StageName string

const (
	StageRaised        StageName = "raised"
	StagePreProduction StageName = "preProduction"
	StageProduction    StageName = "production"
	StagePackaging     StageName = "packaging"
)

// StageOrder is the fixed declaration order of the four stages. Day-to-stage
// lookup walks this order, so when windows overlap the earlier stage wins.
var StageOrder = [4]StageName{StageRaised, StagePreProduction, StageProduction, StagePackaging}

// IsValid checks if the StageName is a valid enum value
func (n StageName) IsValid() bool {
	switch n {
	case StageRaised, StagePreProduction, StageProduction, StagePackaging:
		return true
	}
	return false
}

// Label returns the display label for a stage
func (n StageName) Label() string {
	switch n {
	case StageRaised:
		return "Raised"
	case StagePreProduction:
		return "Pre Production"
	case StageProduction:
		return "Production"
	case StagePackaging:
		return "Packaging"
	}
	return string(n)
}

// Stage is one manufacturing phase: a window of calendar days starting at
// Start (day-of-month) and spanning Duration days.
type Stage struct {
	Start    int `json:"start"`
	Duration int `json:"duration"`
}

// Contains reports whether day falls inside this stage's window
func (s Stage) Contains(day int) bool {
	return day >= s.Start && day < s.Start+s.Duration
}

// LastDay returns the final day of the stage window
func (s Stage) LastDay() int {
	return s.Start + s.Duration - 1
}

// Days lists every calendar day in the stage window
func (s Stage) Days() []int {
	days := make([]int, 0, s.Duration)
	for d := s.Start; d < s.Start+s.Duration; d++ {
		days = append(days, d)
	}
	return days
}

// StageSet holds the four named stage windows of a production item.
// It is a plain struct (not a map) so iteration order is deterministic.
type StageSet struct {
	Raised        Stage `json:"raised"`
	PreProduction Stage `json:"preProduction"`
	Production    Stage `json:"production"`
	Packaging     Stage `json:"packaging"`
}

// Get returns the stage window for name
func (ss StageSet) Get(name StageName) (Stage, bool) {
	switch name {
	case StageRaised:
		return ss.Raised, true
	case StagePreProduction:
		return ss.PreProduction, true
	case StageProduction:
		return ss.Production, true
	case StagePackaging:
		return ss.Packaging, true
	}
	return Stage{}, false
}

// ForDay returns the first-declared stage whose window contains day.
// Overlapping windows are legal; the earlier stage in StageOrder shadows
// later ones for this lookup.
func (ss StageSet) ForDay(day int) (StageName, Stage, bool) {
	for _, name := range StageOrder {
		stage, _ := ss.Get(name)
		if stage.Contains(day) {
			return name, stage, true
		}
	}
	return "", Stage{}, false
}

// TotalDuration sums the durations of all four stages
func (ss StageSet) TotalDuration() int {
	return ss.Raised.Duration + ss.PreProduction.Duration + ss.Production.Duration + ss.Packaging.Duration
}

// SKU is one stock-keeping unit carried by a production item
type SKU struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DayStatus is the ledger entry for one calendar day: the status mark and
// the stage the day was marked under. Status may be empty for a day that
// carries a stage assignment but no mark yet.
type DayStatus struct {
	Status Status    `json:"status"`
	Stage  StageName `json:"stage"`
}

// ProductionItem is the aggregate root: identity, SKUs, date range,
// priority, deadline, the four stage windows and the daily status ledger.
type ProductionItem struct {
	ID          string            `json:"id"`
	ProductCode string            `json:"productCode"`
	SKUs        []SKU             `json:"skus"`
	StartDate   time.Time         `json:"startDate"`
	EndDate     time.Time         `json:"endDate"`
	Priority    Priority          `json:"priority"`
	Deadline    int               `json:"deadline"`
	Stages      StageSet          `json:"stages"`
	DailyStatus map[int]DayStatus `json:"dailyStatus"`
}

// Clone returns a deep copy; the daily ledger and SKU slice are never shared
func (p ProductionItem) Clone() ProductionItem {
	out := p
	out.SKUs = make([]SKU, len(p.SKUs))
	copy(out.SKUs, p.SKUs)
	out.DailyStatus = make(map[int]DayStatus, len(p.DailyStatus))
	for day, ds := range p.DailyStatus {
		out.DailyStatus[day] = ds
	}
	return out
}

// PrimarySKUName returns the first SKU's name, used as the item's display name
func (p ProductionItem) PrimarySKUName() string {
	if len(p.SKUs) == 0 {
		return ""
	}
	return p.SKUs[0].Name
}

// TotalQuantity sums the quantities of all SKUs
func (p ProductionItem) TotalQuantity() int {
	total := 0
	for _, sku := range p.SKUs {
		total += sku.Quantity
	}
	return total
}

// TotalRequiredDays is the number of stage-days the item must complete
func (p ProductionItem) TotalRequiredDays() int {
	return p.Stages.TotalDuration()
}

// CompletedDayCount counts ledger days marked Complete
func (p ProductionItem) CompletedDayCount() int {
	count := 0
	for _, ds := range p.DailyStatus {
		if ds.Status == StatusComplete {
			count++
		}
	}
	return count
}

// DelayedDayCount counts ledger days marked Delayed
func (p ProductionItem) DelayedDayCount() int {
	count := 0
	for _, ds := range p.DailyStatus {
		if ds.Status == StatusDelayed {
			count++
		}
	}
	return count
}

// ProgressPercent is 100 * completed days / total required stage-days.
// Marks are counted wherever they sit on the calendar, so progress is driven
// by the count of Complete marks, not by coverage of the stage windows.
func (p ProductionItem) ProgressPercent() float64 {
	total := p.TotalRequiredDays()
	if total == 0 {
		return 0
	}
	return float64(p.CompletedDayCount()) / float64(total) * 100
}

// IsComplete reports whether every required stage-day is marked Complete
func (p ProductionItem) IsComplete() bool {
	total := p.TotalRequiredDays()
	return total > 0 && p.CompletedDayCount() == total
}

// IsOverdue reports whether the deadline day has passed without the item
// reaching 100% progress. today is a day-of-month; the comparison is only
// meaningful within a single calendar month.
func (p ProductionItem) IsOverdue(today int) bool {
	return p.Deadline < today && p.ProgressPercent() < 100
}

// DaysOverdue is how many days past the deadline today is, floored at zero
func (p ProductionItem) DaysOverdue(today int) int {
	if today <= p.Deadline {
		return 0
	}
	return today - p.Deadline
}

// DelayRecord documents a packaging-stage delay. Records are immutable once
// created and only ever appended.
type DelayRecord struct {
	ID                   string    `json:"id"`
	ProjectName          string    `json:"projectName"`
	ProductCode          string    `json:"productCode"`
	OriginalDeadline     time.Time `json:"originalDeadline"`
	ActualCompletionDate time.Time `json:"actualCompletionDate"`
	ReasonForDelay       string    `json:"reasonForDelay"`
	ImpactAssessment     string    `json:"impactAssessment"`
	ResponsibleTeam      string    `json:"responsibleTeam"`
	DelayDuration        int       `json:"delayDuration"` // in days
	Stage                StageName `json:"stage"`
	CreatedAt            time.Time `json:"createdAt"`
}

// ImpactSeverity bands the delay duration: up to 2 days low, up to 5 medium,
// anything longer high.
func (r DelayRecord) ImpactSeverity() string {
	switch {
	case r.DelayDuration <= 2:
		return "low"
	case r.DelayDuration <= 5:
		return "medium"
	default:
		return "high"
	}
}

// DelayAlert is the delay-documentation request raised when the packaging
// stage's final day is marked Incomplete. It carries a snapshot of the
// triggering item; the ledger write it observed is never blocked or reverted.
type DelayAlert struct {
	Item       ProductionItem
	Day        int
	DetectedAt time.Time
}
