package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/risk-engine/internal/engine"
	"github.com/Dan9191/risk-engine/internal/models"
	"github.com/sirupsen/logrus"
)

// defaultVolatility is shown in the user list for individuals without a distress category
const defaultVolatility = "Medium"

// Store is the persistence the service depends on
type Store interface {
	engine.Lookup
	List(ctx context.Context) ([]*models.Snapshot, error)
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	ListLoans(ctx context.Context, userID string) ([]models.Loan, error)
	// Modify applies fn to the current snapshot of id and stores the result atomically
	Modify(ctx context.Context, id string, fn func(*models.Snapshot) (*models.Snapshot, error)) (*models.Snapshot, error)
}

// Notifier delivers intervention notices to the case team
type Notifier interface {
	SendInterventionNotice(s *models.Snapshot, iv models.Intervention) error
}

// Service handles business logic
type Service struct {
	store      Store
	classifier *engine.Classifier
	notifier   Notifier
	log        *logrus.Logger
}

// NewService initializes a new service. notifier may be nil to disable notices.
func NewService(store Store, classifier *engine.Classifier, notifier Notifier, log *logrus.Logger) *Service {
	return &Service{store: store, classifier: classifier, notifier: notifier, log: log}
}

// ListUsers returns the list view of every individual
func (s *Service) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		volatility := u.Category()
		if volatility == "" {
			volatility = defaultVolatility
		}
		summaries = append(summaries, models.UserSummary{
			ID:                   u.ID,
			Name:                 u.Name,
			Occupation:           u.Occupation,
			Income:               u.MonthlyIncome,
			EmployerContribution: u.EmployerContribution,
			Score:                u.RiskScore,
			Status:               u.Status,
			Volatility:           volatility,
		})
	}
	return summaries, nil
}

// GetProfile returns the snapshot of id with its financial summary and explanation
func (s *Service) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	user, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	txs, err := s.store.ListTransactions(ctx, id)
	if err != nil {
		return nil, err
	}
	loans, err := s.store.ListLoans(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.Profile{
		Snapshot:         user,
		FinancialSummary: engine.Summarize(user.MonthlyIncome, txs, loans),
		Explanation:      engine.Explain(user),
	}, nil
}

// ReportDistress applies a reported distress trigger to an individual, persists the
// result and recommends an intervention. Unrecognized codes take the fallback rule.
func (s *Service) ReportDistress(ctx context.Context, id, code string) (*models.DistressOutcome, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: user id is required", models.ErrInvalidInput)
	}

	trigger, ok := models.ParseTrigger(code)
	if !ok {
		s.log.WithFields(logrus.Fields{"user_id": id, "reason": code}).Warn("Unrecognized distress trigger, applying fallback rule")
		trigger = models.TriggerOther
	}

	updated, err := s.store.Modify(ctx, id, func(current *models.Snapshot) (*models.Snapshot, error) {
		return s.classifier.Apply(current, trigger), nil
	})
	if err != nil {
		return nil, err
	}

	iv := engine.Recommend(trigger)
	s.log.WithFields(logrus.Fields{
		"user_id": id,
		"trigger": trigger,
		"score":   updated.RiskScore,
		"status":  updated.Status,
		"action":  iv.Action,
	}).Info("Distress report applied")

	if s.notifier != nil {
		if err := s.notifier.SendInterventionNotice(updated, iv); err != nil {
			s.log.Errorf("Failed to send intervention notice for user %s: %v", id, err)
		}
	}

	return &models.DistressOutcome{User: updated, Intervention: iv}, nil
}

// RescoreReport counts the outcome of a rescoring run
type RescoreReport struct {
	Rescored int `json:"rescored"`
	Skipped  int `json:"skipped"`
}

// RescoreAll recomputes every stored score from the indicators. A previously reported
// trigger is re-applied so its floor keeps holding. Each snapshot is re-read and written
// in one step, so a distress report landing during the run is never overwritten.
// Snapshots that fail validation are skipped and logged.
func (s *Service) RescoreAll(ctx context.Context) (RescoreReport, error) {
	var report RescoreReport

	users, err := s.store.List(ctx)
	if err != nil {
		return report, err
	}

	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		_, err := s.store.Modify(ctx, u.ID, s.rescore)
		switch {
		case err == nil:
			report.Rescored++
		case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrUnknownIndividual):
			s.log.WithField("user_id", u.ID).Warnf("Skipping rescore: %v", err)
			report.Skipped++
		default:
			return report, fmt.Errorf("failed to rescore user %s: %w", u.ID, err)
		}
	}

	s.log.Infof("Rescored %d users, skipped %d", report.Rescored, report.Skipped)
	return report, nil
}

func (s *Service) rescore(current *models.Snapshot) (*models.Snapshot, error) {
	result, err := engine.Score(current)
	if err != nil {
		return nil, err
	}
	rescored := current.Clone()
	rescored.RiskScore = result.Score
	rescored.Status = result.Status
	if rescored.DistressTrigger != "" {
		rescored = s.classifier.Apply(rescored, rescored.DistressTrigger)
	}
	return rescored, nil
}
