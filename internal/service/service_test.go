package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/risk-engine/internal/engine"
	"github.com/Dan9191/risk-engine/internal/models"
	"github.com/Dan9191/risk-engine/internal/repository"
	"github.com/Dan9191/risk-engine/internal/service"
)

type recordingNotifier struct {
	notices []models.Intervention
	err     error
}

func (n *recordingNotifier) SendInterventionNotice(_ *models.Snapshot, iv models.Intervention) error {
	n.notices = append(n.notices, iv)
	return n.err
}

type fixture struct {
	svc      *service.Service
	repo     *repository.Repository
	notifier *recordingNotifier
	hook     *logtest.Hook
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	db, err := repository.Open(ctx, repository.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewRepository(db, repository.DriverSQLite)
	require.NoError(t, repo.Migrate(ctx))

	classifier, err := engine.NewClassifier(engine.DefaultPolicy())
	require.NoError(t, err)

	logger, hook := logtest.NewNullLogger()
	notifier := &recordingNotifier{}
	return fixture{
		svc:      service.NewService(repo, classifier, notifier, logger),
		repo:     repo,
		notifier: notifier,
		hook:     hook,
	}
}

func healthyUser(id string) *models.Snapshot {
	return &models.Snapshot{
		ID:                   id,
		Name:                 "Rahul Verma",
		Occupation:           "Software Engineer",
		MonthlyIncome:        50000,
		EmployerContribution: 2000,
		RiskScore:            12,
		Status:               models.StatusClean,
	}
}

func TestService_ListUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	category := "Salary Delay (Liquidity)"
	stressed := healthyUser("U-2")
	stressed.DistressCategory = &category
	require.NoError(t, f.repo.CreateUser(ctx, healthyUser("U-1")))
	require.NoError(t, f.repo.CreateUser(ctx, stressed))

	users, err := f.svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Medium", users[0].Volatility)
	assert.Equal(t, 50000.0, users[0].Income)
	assert.Equal(t, 12, users[0].Score)
	assert.Equal(t, category, users[1].Volatility)
}

func TestService_ListUsersEmpty(t *testing.T) {
	f := newFixture(t)

	users, err := f.svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestService_GetProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repo.CreateUser(ctx, healthyUser("U-1")))

	acc := &models.Account{UserID: "U-1", Type: "Savings", BankName: "SBI"}
	require.NoError(t, f.repo.CreateAccount(ctx, acc))
	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	for _, tx := range []models.Transaction{
		{Category: "Rent", Amount: 20000, Direction: models.DirectionDebit},
		{Category: "Food", Amount: 5000, Direction: models.DirectionDebit},
		{Category: "Salary", Amount: 50000, Direction: models.DirectionCredit},
	} {
		tx.UserID, tx.AccountID, tx.Timestamp = "U-1", acc.ID, at
		require.NoError(t, f.repo.CreateTransaction(ctx, &tx))
	}
	require.NoError(t, f.repo.CreateLoan(ctx, &models.Loan{
		UserID: "U-1", Type: models.LoanHome, PrincipalAmount: 1000000, OutstandingAmount: 900000,
		MonthlyEMI: 10000, InterestRate: 8.5, TenureMonths: 240, RemainingTenureMonths: 220, StartDate: at,
	}))

	profile, err := f.svc.GetProfile(ctx, "U-1")
	require.NoError(t, err)
	assert.Equal(t, "U-1", profile.Snapshot.ID)
	assert.Equal(t, []models.ExpenditureCategory{{Name: "Rent", Value: 20000}, {Name: "Food", Value: 5000}}, profile.ExpenditureBreakdown)
	assert.Equal(t, 25000.0, profile.TotalSpend)
	assert.Equal(t, 10000.0, profile.TotalEMI)
	assert.Equal(t, 15000.0, profile.DisposableIncome)
	assert.True(t, profile.CanRepay)
	require.Len(t, profile.Loans, 1)
	assert.Equal(t, []models.Reason{{Feature: "General Risk", Impact: 5, Description: "Standard usage patterns"}}, profile.Explanation)
}

func TestService_GetProfileUnknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, models.ErrUnknownIndividual)
}

func TestService_ReportDistress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repo.CreateUser(ctx, healthyUser("U-1")))

	out, err := f.svc.ReportDistress(ctx, "U-1", "job_loss")
	require.NoError(t, err)
	assert.Equal(t, 95, out.User.RiskScore)
	assert.Equal(t, models.StatusEmergency, out.User.Status)
	assert.Equal(t, "Emergency Protocol", out.Intervention.Action)
	assert.Equal(t, "structural", out.Intervention.Category)

	stored, err := f.repo.Get(ctx, "U-1")
	require.NoError(t, err)
	assert.Equal(t, 95, stored.RiskScore)
	assert.Equal(t, models.StatusEmergency, stored.Status)
	assert.Equal(t, "Job Loss (Structural)", stored.Category())
	assert.Equal(t, models.TriggerJobLoss, stored.DistressTrigger)

	require.Len(t, f.notifier.notices, 1)
	assert.Equal(t, "Emergency Protocol", f.notifier.notices[0].Action)
}

func TestService_ReportDistressUnknownTrigger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repo.CreateUser(ctx, healthyUser("U-1")))

	out, err := f.svc.ReportDistress(ctx, "U-1", "alien invasion")
	require.NoError(t, err)
	assert.Equal(t, "Hold", out.Intervention.Action)
	assert.Empty(t, out.Intervention.Category)
	assert.Equal(t, 12, out.User.RiskScore)
	assert.Equal(t, "Other", out.User.Category())
	assert.Equal(t, models.TriggerOther, out.User.DistressTrigger)

	var warned bool
	for _, e := range f.hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["reason"] == "alien invasion" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestService_ReportDistressErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ReportDistress(ctx, "", "job_loss")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = f.svc.ReportDistress(ctx, "ghost", "job_loss")
	assert.ErrorIs(t, err, models.ErrUnknownIndividual)
	assert.Empty(t, f.notifier.notices)
}

func TestService_ReportDistressNotifierFailureIsLogged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repo.CreateUser(ctx, healthyUser("U-1")))
	f.notifier.err = errors.New("smtp down")

	out, err := f.svc.ReportDistress(ctx, "U-1", "salary")
	require.NoError(t, err)
	assert.Equal(t, "Grace Period", out.Intervention.Action)

	entry := f.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Contains(t, entry.Message, "smtp down")
}

func TestService_ReportDistressWithoutNotifier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repo.CreateUser(ctx, healthyUser("U-1")))

	classifier, err := engine.NewClassifier(engine.DefaultPolicy())
	require.NoError(t, err)
	logger, _ := logtest.NewNullLogger()
	svc := service.NewService(f.repo, classifier, nil, logger)

	out, err := svc.ReportDistress(ctx, "U-1", "medical")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCritical, out.User.Status)
}

func TestService_RescoreAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// stale stored score, indicators say Clean
	stale := healthyUser("U-1")
	stale.RiskScore = 80
	stale.Status = models.StatusCritical
	require.NoError(t, f.repo.CreateUser(ctx, stale))

	// reported job loss must keep its floor
	require.NoError(t, f.repo.CreateUser(ctx, healthyUser("U-2")))
	_, err := f.svc.ReportDistress(ctx, "U-2", "job_loss")
	require.NoError(t, err)

	// invalid indicators are skipped
	broken := healthyUser("U-3")
	broken.JobSearchActivityIndex = 1.5
	broken.RiskScore = 40
	broken.Status = models.StatusSafe
	require.NoError(t, f.repo.CreateUser(ctx, broken))

	report, err := f.svc.RescoreAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.RescoreReport{Rescored: 2, Skipped: 1}, report)

	u1, err := f.repo.Get(ctx, "U-1")
	require.NoError(t, err)
	want, err := engine.Score(healthyUser("U-1"))
	require.NoError(t, err)
	assert.Equal(t, want.Score, u1.RiskScore)
	assert.Equal(t, engine.Tier(u1.RiskScore), u1.Status)

	u2, err := f.repo.Get(ctx, "U-2")
	require.NoError(t, err)
	assert.Equal(t, 95, u2.RiskScore)
	assert.Equal(t, models.StatusEmergency, u2.Status)

	u3, err := f.repo.Get(ctx, "U-3")
	require.NoError(t, err)
	assert.Equal(t, 40, u3.RiskScore)
}

func TestService_RescoreAllCancelled(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.repo.CreateUser(context.Background(), healthyUser("U-1")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.RescoreAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// reportingStore files a distress report right after the rescore has listed the users
type reportingStore struct {
	*repository.Repository
	report func(ctx context.Context)
}

func (s *reportingStore) List(ctx context.Context) ([]*models.Snapshot, error) {
	users, err := s.Repository.List(ctx)
	if err == nil && s.report != nil {
		s.report(ctx)
	}
	return users, err
}

func TestService_RescoreAllKeepsConcurrentReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repo.CreateUser(ctx, healthyUser("U-1")))

	classifier, err := engine.NewClassifier(engine.DefaultPolicy())
	require.NoError(t, err)
	logger, _ := logtest.NewNullLogger()
	store := &reportingStore{Repository: f.repo}
	svc := service.NewService(store, classifier, nil, logger)
	store.report = func(ctx context.Context) {
		store.report = nil
		_, err := svc.ReportDistress(ctx, "U-1", "job_loss")
		require.NoError(t, err)
	}

	report, err := svc.RescoreAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.RescoreReport{Rescored: 1}, report)

	got, err := f.repo.Get(ctx, "U-1")
	require.NoError(t, err)
	assert.Equal(t, 95, got.RiskScore)
	assert.Equal(t, models.StatusEmergency, got.Status)
	assert.Equal(t, models.TriggerJobLoss, got.DistressTrigger)
	assert.Equal(t, "Job Loss (Structural)", got.Category())
}
