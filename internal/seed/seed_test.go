package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/risk-engine/internal/engine"
	"github.com/Dan9191/risk-engine/internal/models"
	"github.com/Dan9191/risk-engine/internal/repository"
	"github.com/Dan9191/risk-engine/internal/seed"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func generate(t *testing.T, s int64) *seed.Dataset {
	t.Helper()
	ds, err := seed.NewGenerator(s, now).Generate(seed.Personas)
	require.NoError(t, err)
	return ds
}

func TestGenerate_Deterministic(t *testing.T) {
	a := generate(t, 42)
	b := generate(t, 42)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.Transactions, generate(t, 7).Transactions)
}

func TestGenerate_OneUserAndAccountPerPersona(t *testing.T) {
	ds := generate(t, 42)

	require.Len(t, ds.Users, len(seed.Personas))
	require.Len(t, ds.Accounts, len(seed.Personas))
	assert.Equal(t, "U-2026-001", ds.Users[0].ID)
	assert.Equal(t, "ACC-U-2026-001", ds.Accounts[0].ID)
	for _, a := range ds.Accounts {
		assert.GreaterOrEqual(t, a.Balance, 1000.0)
	}
}

func TestGenerate_StatusMatchesScore(t *testing.T) {
	for _, u := range generate(t, 42).Users {
		result, err := engine.Score(u)
		require.NoError(t, err, u.Name)
		assert.Equal(t, result.Score, u.RiskScore, u.Name)
		assert.Equal(t, engine.Tier(u.RiskScore), u.Status, u.Name)
	}
}

func TestGenerate_Transactions(t *testing.T) {
	ds := generate(t, 42)

	salaries := map[string]int{}
	for _, tx := range ds.Transactions {
		assert.Greater(t, tx.Amount, 0.0)
		assert.NotEmpty(t, tx.ID)
		assert.False(t, tx.Timestamp.After(now))
		if tx.Direction == models.DirectionCredit {
			assert.Equal(t, "Salary", tx.Category)
			salaries[tx.UserID]++
		} else {
			assert.NotEqual(t, "Salary", tx.Category)
		}
	}

	for i, p := range seed.Personas {
		want := 0
		if p.Income > 0 {
			want = 1
		}
		assert.Equal(t, want, salaries[ds.Users[i].ID], p.Name)
	}
}

func TestGenerate_SpendTracksBand(t *testing.T) {
	ds := generate(t, 42)

	byUser := map[string][]models.Transaction{}
	for _, tx := range ds.Transactions {
		byUser[tx.UserID] = append(byUser[tx.UserID], *tx)
	}

	for i, p := range seed.Personas {
		if p.Income < 30000 {
			continue
		}
		spend := engine.TotalSpend(byUser[ds.Users[i].ID])
		ratio := spend / p.Income
		switch p.Band {
		case models.StatusClean:
			assert.Less(t, ratio, 0.85, p.Name)
		case models.StatusCritical, models.StatusEmergency:
			assert.Greater(t, ratio, 1.1, p.Name)
		}
	}
}

func TestGenerate_Loans(t *testing.T) {
	ds := generate(t, 42)

	for _, l := range ds.Loans {
		require.NoError(t, l.Validate())
		assert.LessOrEqual(t, l.RemainingTenureMonths, l.TenureMonths)
		assert.GreaterOrEqual(t, l.PrincipalAmount, 10000.0)
		assert.Equal(t, engine.EMI(l.PrincipalAmount, l.InterestRate, l.TenureMonths) > 0, l.MonthlyEMI > 0)
		assert.True(t, l.StartDate.Before(now) || l.StartDate.Equal(now))
	}

	counts := map[string]int{}
	for _, l := range ds.Loans {
		counts[l.UserID]++
	}
	for i, p := range seed.Personas {
		n := counts[ds.Users[i].ID]
		switch p.Band {
		case models.StatusClean:
			assert.LessOrEqual(t, n, 2, p.Name)
		case models.StatusWarning:
			assert.True(t, n >= 2 && n <= 3, p.Name)
		case models.StatusCritical, models.StatusEmergency:
			assert.True(t, n >= 3 && n <= 5, p.Name)
		}
	}
	assert.Greater(t, ds.Exposure(), 0.0)
}

func TestGenerate_InvalidPersona(t *testing.T) {
	_, err := seed.NewGenerator(1, now).Generate([]seed.Persona{{Name: "Broken", Income: -1, Band: models.StatusClean}})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	db, err := repository.Open(ctx, repository.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := repository.NewRepository(db, repository.DriverSQLite)
	require.NoError(t, repo.Migrate(ctx))

	ds := generate(t, 42)
	require.NoError(t, seed.Load(ctx, repo, ds))
	// a second load replaces rather than duplicates
	require.NoError(t, seed.Load(ctx, repo, generate(t, 42)))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, len(ds.Users))

	first := ds.Users[0]
	txs, err := repo.ListTransactions(ctx, first.ID)
	require.NoError(t, err)
	var want int
	for _, tx := range ds.Transactions {
		if tx.UserID == first.ID {
			want++
		}
	}
	assert.Len(t, txs, want)

	loans, err := repo.ListLoans(ctx, first.ID)
	require.NoError(t, err)
	for _, l := range loans {
		assert.LessOrEqual(t, l.RemainingTenureMonths, l.TenureMonths)
	}
}
