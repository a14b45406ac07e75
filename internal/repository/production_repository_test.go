package repository_test

import (
	"testing"

	"github.com/arborline/production-board/internal/domain"
	"github.com/arborline/production-board/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(id, code string, skus ...domain.SKU) domain.ProductionItem {
	return domain.ProductionItem{
		ID:          id,
		ProductCode: code,
		SKUs:        skus,
		Priority:    domain.PriorityMedium,
		DailyStatus: map[int]domain.DayStatus{},
	}
}

func TestProductionRepository_AddAndGet(t *testing.T) {
	repo := repository.NewProductionRepository()
	repo.Add(newTestItem("1", "CENV32", domain.SKU{Name: "Smoked Almonds", Quantity: 10000}))

	got, ok := repo.GetByID("1")
	require.True(t, ok)
	assert.Equal(t, "CENV32", got.ProductCode)
	assert.Equal(t, 1, repo.Count())

	_, ok = repo.GetByID("missing")
	assert.False(t, ok)
}

func TestProductionRepository_ReadsNeverAliasStoreState(t *testing.T) {
	repo := repository.NewProductionRepository()
	repo.Add(newTestItem("1", "CENV32", domain.SKU{Name: "Smoked Almonds", Quantity: 10000}))

	got, ok := repo.GetByID("1")
	require.True(t, ok)
	got.SKUs[0].Name = "mutated"
	got.DailyStatus[5] = domain.DayStatus{Status: domain.StatusComplete}

	fresh, ok := repo.GetByID("1")
	require.True(t, ok)
	assert.Equal(t, "Smoked Almonds", fresh.SKUs[0].Name)
	assert.Empty(t, fresh.DailyStatus)

	listed := repo.List()
	require.Len(t, listed, 1)
	listed[0].ProductCode = "changed"
	fresh, _ = repo.GetByID("1")
	assert.Equal(t, "CENV32", fresh.ProductCode)
}

func TestProductionRepository_ListSnapshotSurvivesMutation(t *testing.T) {
	repo := repository.NewProductionRepository()
	repo.Add(newTestItem("1", "CENV32"))

	before := repo.List()
	repo.Add(newTestItem("2", "SP031"))

	assert.Len(t, before, 1)
	assert.Len(t, repo.List(), 2)
}

func TestProductionRepository_Replace(t *testing.T) {
	repo := repository.NewProductionRepository()
	repo.Add(newTestItem("1", "CENV32"))

	updated := newTestItem("1", "CENV33")
	assert.True(t, repo.Replace(updated))

	got, _ := repo.GetByID("1")
	assert.Equal(t, "CENV33", got.ProductCode)

	assert.False(t, repo.Replace(newTestItem("missing", "X")))
	assert.Equal(t, 1, repo.Count())
}

func TestProductionRepository_Search(t *testing.T) {
	repo := repository.NewProductionRepository()
	repo.Add(newTestItem("1", "CENV32", domain.SKU{Name: "Smoked Almonds"}))
	repo.Add(newTestItem("2", "SP031",
		domain.SKU{Name: "SALTED CASHEW"},
		domain.SKU{Name: "PAAN DATE"},
	))

	t.Run("matches product code case-insensitively", func(t *testing.T) {
		got := repo.Search("cenv")
		require.Len(t, got, 1)
		assert.Equal(t, "CENV32", got[0].ProductCode)
	})

	t.Run("matches any sku name case-insensitively", func(t *testing.T) {
		got := repo.Search("cashew")
		require.Len(t, got, 1)
		assert.Equal(t, "SP031", got[0].ProductCode)
	})

	t.Run("empty query matches everything", func(t *testing.T) {
		assert.Len(t, repo.Search(""), 2)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		assert.Empty(t, repo.Search("walnut"))
	})
}
