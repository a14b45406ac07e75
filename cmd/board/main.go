package main

import (
	"fmt"
	"os"
	"time"

	"github.com/arborline/production-board/internal/config"
	"github.com/arborline/production-board/internal/domain"
	"github.com/arborline/production-board/internal/export"
	"github.com/arborline/production-board/internal/logger"
	"github.com/arborline/production-board/internal/repository"
	"github.com/arborline/production-board/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
	)

	itemRepo := repository.NewProductionRepository()
	delayRepo := repository.NewDelayRecordRepository()

	planner := service.NewPlannerService(itemRepo, log)
	delays := service.NewDelayService(delayRepo, log)
	dashboard := service.NewDashboardService(
		itemRepo,
		delayRepo,
		cfg.Dashboard.DeadlineWindowDays,
		cfg.Dashboard.DelayTrendDays,
		log,
	)
	exporter := export.NewExporter(&cfg.Export, log)

	seedItems(itemRepo)
	log.Info("seed data loaded", zap.Int("items", itemRepo.Count()))

	now := time.Now()

	// A new order arrives through the add-production form.
	created, err := planner.Create(domain.CreateProductionItemRequest{
		ProductCode: "GFT12",
		SKUs: []domain.SKUInput{
			{Name: "Trail Mix Gift Box", Quantity: 1200},
			{Name: "Roasted Pistachios", Quantity: 800},
		},
		StartDate:     now,
		EndDate:       now.AddDate(0, 0, 14),
		Priority:      domain.PriorityLow,
		Deadline:      clampDay(now.Day() + 5),
		Raised:        domain.StageInput{Start: "1", Duration: "2"},
		PreProduction: domain.StageInput{Start: "3", Duration: "3"},
		Production:    domain.StageInput{Start: "6", Duration: "5"},
		Packaging:     domain.StageInput{Start: "11", Duration: "3"},
	})
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	// Clicking a day cell advances its mark through the status cycle.
	if _, err := planner.CycleDayStatus(created.ID, 1); err != nil {
		return fmt.Errorf("failed to cycle day status: %w", err)
	}

	// Marking the last packaging day incomplete raises a delay alert, which
	// feeds the delay-documentation workflow.
	var sp031 domain.ProductionItem
	for _, item := range planner.Search("sp031") {
		sp031 = item
	}
	alert, err := planner.SetDayStatus(sp031.ID, sp031.Stages.Packaging.LastDay(), domain.StatusIncomplete, domain.StagePackaging)
	if err != nil {
		return fmt.Errorf("failed to set day status: %w", err)
	}
	if alert != nil {
		record, err := delays.Submit(alert.Item, domain.DelayRecordRequest{
			ActualCompletionDate: now.AddDate(0, 0, 2),
			ReasonForDelay:       "Packaging film shipment arrived two days late",
			ImpactAssessment:     "Dispatch pushed past the committed window; customer notified",
			ResponsibleTeam:      "logistics",
		})
		if err != nil {
			return fmt.Errorf("failed to submit delay record: %w", err)
		}
		log.Info("delay documented",
			zap.String("recordID", record.ID),
			zap.Int("delayDuration", record.DelayDuration),
		)
	}

	snapshot := dashboard.Snapshot(now)
	log.Info("dashboard snapshot",
		zap.Int("totalItems", snapshot.Overall.TotalItems),
		zap.Int("completedItems", snapshot.Overall.CompletedItems),
		zap.Int("inProgressItems", snapshot.Overall.InProgressItems),
		zap.Int("overallProgress", snapshot.Overall.OverallProgress),
		zap.Int("upcomingDeadlines", len(snapshot.UpcomingDeadlines)),
		zap.Int("recentDelays", snapshot.DelayTrends.RecentDelays),
	)
	for name, stats := range snapshot.StageProgress {
		log.Info("stage progress",
			zap.String("stage", string(name)),
			zap.Int("completed", stats.Completed),
			zap.Int("total", stats.Total),
			zap.Int("percent", stats.ProgressPercent()),
		)
	}

	if _, err := exporter.WriteDelayRecords(delays.List(), now); err != nil {
		return fmt.Errorf("failed to export delay records: %w", err)
	}
	if _, err := exporter.WriteMissedDeadlines(dashboard.MissedDeadlines(now), now); err != nil {
		return fmt.Errorf("failed to export missed deadlines: %w", err)
	}

	log.Info("done")
	return nil
}

func clampDay(d int) int {
	if d > 31 {
		return d - 31
	}
	return d
}

// seedItems loads a small August production board so the dashboard and
// exports have something to chew on.
func seedItems(repo *repository.ProductionRepository) {
	seeds := []domain.ProductionItem{
		{
			ID:          uuid.New().String(),
			ProductCode: "CENV32",
			SKUs:        []domain.SKU{{Name: "Smoked Almonds", Quantity: 10000}},
			StartDate:   time.Date(2024, time.August, 19, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
			Priority:    domain.PriorityHigh,
			Deadline:    27,
			Stages: domain.StageSet{
				Raised:        domain.Stage{Start: 19, Duration: 1},
				PreProduction: domain.Stage{Start: 20, Duration: 2},
				Production:    domain.Stage{Start: 22, Duration: 4},
				Packaging:     domain.Stage{Start: 26, Duration: 2},
			},
			DailyStatus: map[int]domain.DayStatus{
				19: {Status: domain.StatusComplete, Stage: domain.StageRaised},
				20: {Stage: domain.StagePreProduction},
				21: {Stage: domain.StagePreProduction},
				22: {Status: domain.StatusComplete, Stage: domain.StageProduction},
				23: {Stage: domain.StageProduction},
				24: {Status: domain.StatusComplete, Stage: domain.StageProduction},
				25: {Status: domain.StatusComplete, Stage: domain.StageProduction},
			},
		},
		{
			ID:          uuid.New().String(),
			ProductCode: "SP031",
			SKUs: []domain.SKU{
				{Name: "SALTED CASHEW", Quantity: 10000},
				{Name: "PAAN DATE", Quantity: 2500},
			},
			StartDate: time.Date(2024, time.August, 20, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC),
			Priority:  domain.PriorityMedium,
			Deadline:  30,
			Stages: domain.StageSet{
				Raised:        domain.Stage{Start: 20, Duration: 1},
				PreProduction: domain.Stage{Start: 21, Duration: 1},
				Production:    domain.Stage{Start: 22, Duration: 6},
				Packaging:     domain.Stage{Start: 28, Duration: 3},
			},
			DailyStatus: map[int]domain.DayStatus{
				20: {Status: domain.StatusComplete, Stage: domain.StageRaised},
				21: {Status: domain.StatusComplete, Stage: domain.StagePreProduction},
				22: {Stage: domain.StageProduction},
				23: {Status: domain.StatusComplete, Stage: domain.StageProduction},
				24: {Stage: domain.StageProduction},
				25: {Status: domain.StatusComplete, Stage: domain.StageProduction},
				28: {Status: domain.StatusIncomplete, Stage: domain.StagePackaging},
				29: {Status: domain.StatusComplete, Stage: domain.StagePackaging},
			},
		},
		{
			ID:          uuid.New().String(),
			ProductCode: "DIW37",
			SKUs: []domain.SKU{
				{Name: "Dry Fruit Mix", Quantity: 30},
				{Name: "Kurmura Cream & Onion", Quantity: 40},
				{Name: "Hazelnut Date Laddoo", Quantity: 30},
				{Name: "Cashews", Quantity: 30},
				{Name: "Almonds", Quantity: 30},
			},
			StartDate: time.Date(2024, time.August, 23, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, time.September, 5, 0, 0, 0, 0, time.UTC),
			Priority:  domain.PriorityMedium,
			Deadline:  2,
			Stages: domain.StageSet{
				Raised:        domain.Stage{Start: 23, Duration: 1},
				PreProduction: domain.Stage{Start: 24, Duration: 2},
				Production:    domain.Stage{Start: 26, Duration: 6},
				Packaging:     domain.Stage{Start: 1, Duration: 2},
			},
			DailyStatus: map[int]domain.DayStatus{
				23: {Status: domain.StatusComplete, Stage: domain.StageRaised},
				24: {Stage: domain.StagePreProduction},
				25: {Stage: domain.StagePreProduction},
				26: {Status: domain.StatusComplete, Stage: domain.StageProduction},
				27: {Stage: domain.StageProduction},
				28: {Stage: domain.StageProduction},
				29: {Stage: domain.StageProduction},
				30: {Stage: domain.StageProduction},
				31: {Stage: domain.StageProduction},
				1:  {Stage: domain.StagePackaging},
			},
		},
		{
			ID:          uuid.New().String(),
			ProductCode: "FBA36",
			SKUs: []domain.SKU{
				{Name: "Dried Cranberries", Quantity: 2900},
				{Name: "Hazelnut Protein Balls", Quantity: 1100},
				{Name: "Coconut Orange Protein Balls", Quantity: 800},
				{Name: "Peanut Butter Protein Balls", Quantity: 700},
				{Name: "Hazelnut Date Laddoo", Quantity: 1050},
				{Name: "Coconut Orange Date Laddoo", Quantity: 600},
				{Name: "Coffee Cinnamon Date Laddoo", Quantity: 600},
			},
			StartDate: time.Date(2024, time.August, 22, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, time.September, 3, 0, 0, 0, 0, time.UTC),
			Priority:  domain.PriorityHigh,
			Deadline:  31,
			Stages: domain.StageSet{
				Raised:        domain.Stage{Start: 22, Duration: 1},
				PreProduction: domain.Stage{Start: 23, Duration: 2},
				Production:    domain.Stage{Start: 25, Duration: 5},
				Packaging:     domain.Stage{Start: 30, Duration: 3},
			},
			DailyStatus: map[int]domain.DayStatus{
				22: {Status: domain.StatusComplete, Stage: domain.StageRaised},
				23: {Status: domain.StatusComplete, Stage: domain.StagePreProduction},
				24: {Stage: domain.StagePreProduction},
				25: {Status: domain.StatusComplete, Stage: domain.StageProduction},
				26: {Stage: domain.StageProduction},
				27: {Stage: domain.StageProduction},
				28: {Stage: domain.StageProduction},
				29: {Stage: domain.StageProduction},
				30: {Status: domain.StatusComplete, Stage: domain.StagePackaging},
				31: {Status: domain.StatusIncomplete, Stage: domain.StagePackaging},
				1:  {Stage: domain.StagePackaging},
			},
		},
	}
	for _, item := range seeds {
		repo.Add(item)
	}
}
