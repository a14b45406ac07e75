package service

import (
	"math"
	"sort"
	"time"

	"github.com/arborline/production-board/internal/domain"
	"github.com/arborline/production-board/internal/mapper"
	"github.com/arborline/production-board/internal/repository"
	"go.uber.org/zap"
)

// DashboardService computes the aggregate dashboard from current store
// state. Everything is recomputed on every read; nothing is cached or
// maintained incrementally.
type DashboardService struct {
	items              *repository.ProductionRepository
	delays             *repository.DelayRecordRepository
	deadlineWindowDays int
	delayTrendDays     int
	logger             *zap.Logger
}

// NewDashboardService creates a new DashboardService instance. The windows
// control the upcoming-deadline horizon and the delay-trend lookback.
func NewDashboardService(
	items *repository.ProductionRepository,
	delays *repository.DelayRecordRepository,
	deadlineWindowDays int,
	delayTrendDays int,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		items:              items,
		delays:             delays,
		deadlineWindowDays: deadlineWindowDays,
		delayTrendDays:     delayTrendDays,
		logger:             logger,
	}
}

// Snapshot computes the full dashboard for the given instant
func (s *DashboardService) Snapshot(now time.Time) domain.DashboardSnapshot {
	items := s.items.List()
	return domain.DashboardSnapshot{
		Overall:           s.overallStats(items),
		StageProgress:     s.stageProgress(items),
		UpcomingDeadlines: s.upcomingDeadlines(items, now.Day()),
		DelayTrends:       s.delayTrends(now),
	}
}

// overallStats buckets items into completed, in-progress and not-started.
// Overall progress weights in-progress items at one half.
func (s *DashboardService) overallStats(items []domain.ProductionItem) domain.OverallStats {
	stats := domain.OverallStats{TotalItems: len(items)}
	for _, item := range items {
		completed := item.CompletedDayCount()
		switch {
		case item.TotalRequiredDays() > 0 && completed == item.TotalRequiredDays():
			stats.CompletedItems++
		case completed > 0:
			stats.InProgressItems++
		}
	}
	stats.NotStartedItems = stats.TotalItems - stats.CompletedItems - stats.InProgressItems
	if stats.TotalItems > 0 {
		weighted := float64(stats.CompletedItems) + 0.5*float64(stats.InProgressItems)
		stats.OverallProgress = int(math.Round(weighted / float64(stats.TotalItems) * 100))
	}
	return stats
}

// stageProgress sums, per stage, the required days across all items and the
// Complete marks falling inside each item's window for that stage.
func (s *DashboardService) stageProgress(items []domain.ProductionItem) map[domain.StageName]domain.StageStats {
	progress := make(map[domain.StageName]domain.StageStats, len(domain.StageOrder))
	for _, name := range domain.StageOrder {
		progress[name] = domain.StageStats{}
	}

	for _, item := range items {
		for _, name := range domain.StageOrder {
			window, _ := item.Stages.Get(name)
			stats := progress[name]
			stats.Total += window.Duration
			for _, day := range window.Days() {
				if item.DailyStatus[day].Status == domain.StatusComplete {
					stats.Completed++
				}
			}
			progress[name] = stats
		}
	}
	return progress
}

// upcomingDeadlines lists items whose deadline falls within the window
// after today, soonest first.
func (s *DashboardService) upcomingDeadlines(items []domain.ProductionItem, today int) []domain.UpcomingDeadlineDTO {
	upcoming := make([]domain.UpcomingDeadlineDTO, 0)
	for i := range items {
		daysUntil := items[i].Deadline - today
		if daysUntil > 0 && daysUntil <= s.deadlineWindowDays {
			upcoming = append(upcoming, mapper.ToUpcomingDeadlineDTO(&items[i], today))
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Deadline < upcoming[j].Deadline
	})
	return upcoming
}

// delayTrends counts and averages records created within the trend window
func (s *DashboardService) delayTrends(now time.Time) domain.DelayTrendStats {
	cutoff := now.AddDate(0, 0, -s.delayTrendDays)
	recent := s.delays.ListCreatedSince(cutoff)

	trends := domain.DelayTrendStats{
		RecentDelays: len(recent),
		TotalDelays:  s.delays.Count(),
	}
	if len(recent) > 0 {
		sum := 0
		for _, record := range recent {
			sum += record.DelayDuration
		}
		trends.AvgDelayDuration = int(math.Round(float64(sum) / float64(len(recent))))
	}
	return trends
}

// MissedDeadlines lists overdue items as report rows: past their deadline
// day, either still short of 100% progress or completed late.
func (s *DashboardService) MissedDeadlines(now time.Time) []domain.MissedDeadlineRow {
	today := now.Day()
	items := s.items.List()
	rows := make([]domain.MissedDeadlineRow, 0)
	for i := range items {
		if items[i].DaysOverdue(today) == 0 {
			continue
		}
		rows = append(rows, mapper.ToMissedDeadlineRow(&items[i], today))
	}
	return rows
}
