package domain_test

import (
	"testing"

	"github.com/arborline/production-board/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusKey(t *testing.T) {
	t.Run("letter keys map to marks", func(t *testing.T) {
		for key, want := range map[string]domain.Status{
			"Y": domain.StatusComplete,
			"y": domain.StatusComplete,
			"N": domain.StatusIncomplete,
			"n": domain.StatusIncomplete,
			"D": domain.StatusDelayed,
			"d": domain.StatusDelayed,
		} {
			got, ok := domain.ParseStatusKey(key)
			assert.True(t, ok, "key %q", key)
			assert.Equal(t, want, got, "key %q", key)
		}
	})

	t.Run("delete and backspace clear the day", func(t *testing.T) {
		for _, key := range []string{"Delete", "Backspace", "DELETE", "backspace"} {
			got, ok := domain.ParseStatusKey(key)
			assert.True(t, ok, "key %q", key)
			assert.Equal(t, domain.Status(""), got, "key %q", key)
		}
	})

	t.Run("other keys are ignored", func(t *testing.T) {
		for _, key := range []string{"X", "Enter", "1", ""} {
			_, ok := domain.ParseStatusKey(key)
			assert.False(t, ok, "key %q", key)
		}
	})
}

func TestNextCycleStatus(t *testing.T) {
	next, clear := domain.NextCycleStatus("")
	assert.Equal(t, domain.StatusComplete, next)
	assert.False(t, clear)

	next, clear = domain.NextCycleStatus(domain.StatusComplete)
	assert.Equal(t, domain.StatusIncomplete, next)
	assert.False(t, clear)

	next, clear = domain.NextCycleStatus(domain.StatusIncomplete)
	assert.Equal(t, domain.StatusDelayed, next)
	assert.False(t, clear)

	_, clear = domain.NextCycleStatus(domain.StatusDelayed)
	assert.True(t, clear)
}

func TestStage_Window(t *testing.T) {
	stage := domain.Stage{Start: 11, Duration: 3}

	assert.False(t, stage.Contains(10))
	assert.True(t, stage.Contains(11))
	assert.True(t, stage.Contains(13))
	assert.False(t, stage.Contains(14))
	assert.Equal(t, 13, stage.LastDay())
	assert.Equal(t, []int{11, 12, 13}, stage.Days())
}

func TestStageSet_ForDay(t *testing.T) {
	stages := domain.StageSet{
		Raised:        domain.Stage{Start: 1, Duration: 2},
		PreProduction: domain.Stage{Start: 2, Duration: 3},
		Production:    domain.Stage{Start: 5, Duration: 4},
		Packaging:     domain.Stage{Start: 9, Duration: 2},
	}

	t.Run("earlier stage wins when windows overlap", func(t *testing.T) {
		name, stage, ok := stages.ForDay(2)
		require.True(t, ok)
		assert.Equal(t, domain.StageRaised, name)
		assert.Equal(t, domain.Stage{Start: 1, Duration: 2}, stage)
	})

	t.Run("day inside a single window", func(t *testing.T) {
		name, _, ok := stages.ForDay(6)
		require.True(t, ok)
		assert.Equal(t, domain.StageProduction, name)
	})

	t.Run("day outside every window", func(t *testing.T) {
		_, _, ok := stages.ForDay(15)
		assert.False(t, ok)
	})
}

func TestProductionItem_Progress(t *testing.T) {
	item := domain.ProductionItem{
		Stages: domain.StageSet{
			Raised:        domain.Stage{Start: 1, Duration: 2},
			PreProduction: domain.Stage{Start: 3, Duration: 3},
			Production:    domain.Stage{Start: 6, Duration: 5},
			Packaging:     domain.Stage{Start: 11, Duration: 3},
		},
		DailyStatus: map[int]domain.DayStatus{},
	}
	require.Equal(t, 13, item.TotalRequiredDays())

	t.Run("no marks means zero progress", func(t *testing.T) {
		assert.Equal(t, float64(0), item.ProgressPercent())
		assert.False(t, item.IsComplete())
	})

	t.Run("progress counts complete marks against required days", func(t *testing.T) {
		item.DailyStatus = map[int]domain.DayStatus{
			1: {Status: domain.StatusComplete, Stage: domain.StageRaised},
			2: {Status: domain.StatusComplete, Stage: domain.StageRaised},
			3: {Status: domain.StatusIncomplete, Stage: domain.StagePreProduction},
			4: {Stage: domain.StagePreProduction},
		}
		assert.InDelta(t, 100.0*2/13, item.ProgressPercent(), 0.001)
	})

	t.Run("marks outside every stage window still count", func(t *testing.T) {
		item.DailyStatus = map[int]domain.DayStatus{
			20: {Status: domain.StatusComplete},
			21: {Status: domain.StatusComplete},
		}
		assert.InDelta(t, 100.0*2/13, item.ProgressPercent(), 0.001)
	})

	t.Run("complete when marks equal required days", func(t *testing.T) {
		full := map[int]domain.DayStatus{}
		for day := 1; day <= 13; day++ {
			full[day] = domain.DayStatus{Status: domain.StatusComplete}
		}
		item.DailyStatus = full
		assert.Equal(t, float64(100), item.ProgressPercent())
		assert.True(t, item.IsComplete())
	})

	t.Run("zero required days never completes", func(t *testing.T) {
		empty := domain.ProductionItem{DailyStatus: map[int]domain.DayStatus{}}
		assert.Equal(t, float64(0), empty.ProgressPercent())
		assert.False(t, empty.IsComplete())
	})
}

func TestProductionItem_Overdue(t *testing.T) {
	item := domain.ProductionItem{
		Deadline: 20,
		Stages: domain.StageSet{
			Raised: domain.Stage{Start: 1, Duration: 1},
		},
		DailyStatus: map[int]domain.DayStatus{},
	}

	assert.False(t, item.IsOverdue(19))
	assert.False(t, item.IsOverdue(20))
	assert.True(t, item.IsOverdue(21))

	assert.Equal(t, 0, item.DaysOverdue(20))
	assert.Equal(t, 3, item.DaysOverdue(23))

	t.Run("fully complete item is never overdue", func(t *testing.T) {
		item.DailyStatus = map[int]domain.DayStatus{
			1: {Status: domain.StatusComplete, Stage: domain.StageRaised},
		}
		assert.False(t, item.IsOverdue(25))
		assert.Equal(t, 5, item.DaysOverdue(25))
	})
}

func TestProductionItem_Clone(t *testing.T) {
	item := domain.ProductionItem{
		ID:          "a",
		SKUs:        []domain.SKU{{Name: "Smoked Almonds", Quantity: 10000}},
		DailyStatus: map[int]domain.DayStatus{1: {Status: domain.StatusComplete}},
	}

	clone := item.Clone()
	clone.SKUs[0].Name = "changed"
	clone.DailyStatus[1] = domain.DayStatus{Status: domain.StatusDelayed}
	clone.DailyStatus[2] = domain.DayStatus{Status: domain.StatusComplete}

	assert.Equal(t, "Smoked Almonds", item.SKUs[0].Name)
	assert.Equal(t, domain.StatusComplete, item.DailyStatus[1].Status)
	assert.Len(t, item.DailyStatus, 1)
}

func TestDelayRecord_ImpactSeverity(t *testing.T) {
	assert.Equal(t, "low", domain.DelayRecord{DelayDuration: 0}.ImpactSeverity())
	assert.Equal(t, "low", domain.DelayRecord{DelayDuration: 2}.ImpactSeverity())
	assert.Equal(t, "medium", domain.DelayRecord{DelayDuration: 3}.ImpactSeverity())
	assert.Equal(t, "medium", domain.DelayRecord{DelayDuration: 5}.ImpactSeverity())
	assert.Equal(t, "high", domain.DelayRecord{DelayDuration: 6}.ImpactSeverity())
}

func TestStageInput_ParseOr(t *testing.T) {
	t.Run("numeric fields override the fallback", func(t *testing.T) {
		got := domain.StageInput{Start: "7", Duration: "4"}.ParseOr(domain.DefaultProductionStage)
		assert.Equal(t, domain.Stage{Start: 7, Duration: 4}, got)
	})

	t.Run("unparsable fields fall back per field", func(t *testing.T) {
		got := domain.StageInput{Start: "abc", Duration: "4"}.ParseOr(domain.DefaultProductionStage)
		assert.Equal(t, domain.Stage{Start: 6, Duration: 4}, got)

		got = domain.StageInput{}.ParseOr(domain.DefaultPackagingStage)
		assert.Equal(t, domain.Stage{Start: 11, Duration: 3}, got)
	})
}
