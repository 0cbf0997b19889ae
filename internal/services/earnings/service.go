package earnings

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmaraujo/treinos/internal/dependencies/clock"
	"github.com/dmaraujo/treinos/internal/model"
	"github.com/dmaraujo/treinos/internal/services/trainingday"
	"github.com/dmaraujo/treinos/internal/storage"
)

// Service computes reporter earnings and the late-payer ranking as a
// fold over report and payment history, and keeps the payout ledger
// that reconciles those earnings against what admins actually paid.
type Service struct {
	storage storage.Storage
	days    *trainingday.Service
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new earnings service
func New(storage storage.Storage, days *trainingday.Service, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		days:    days,
		clock:   clock,
		logger:  logger,
	}
}

// Summary totals a reporter's earnings. A report earns the penalty
// once its outcome is certain: the target paid late, or the deadline
// passed without payment. Recorded payouts count against the total;
// the balance is what the community still owes the reporter.
func (s *Service) Summary(ctx context.Context, userID model.UserID) (*model.UserEarnings, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, user, s.clock.Now())
}

func (s *Service) summarize(ctx context.Context, user *model.User, now time.Time) (*model.UserEarnings, error) {
	reports, err := s.storage.GetReportsByReporter(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	summary := &model.UserEarnings{
		UserID:        user.ID,
		CharacterName: user.CharacterName,
		ReportsFiled:  len(reports),
	}
	for _, report := range reports {
		outcome, _, err := s.outcome(ctx, report, now)
		if err != nil {
			return nil, err
		}
		switch outcome {
		case model.OutcomeLate:
			summary.LateCount++
		case model.OutcomePending:
			summary.PendingCount++
		}
	}
	summary.TotalEarnings = summary.LateCount * model.PenaltyAmount

	payouts, err := s.storage.GetPayoutsForReporter(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, payout := range payouts {
		summary.TotalPaid += payout.Amount
	}
	summary.Balance = summary.TotalEarnings - summary.TotalPaid
	return summary, nil
}

// RecordPayout registers that the community handed a reporter part of
// what they are owed. Amounts are free-form so partial payouts work.
// Admin only.
func (s *Service) RecordPayout(ctx context.Context, adminID model.UserID, characterName string, amount int) (*model.ReporterPayout, error) {
	admin, err := s.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, model.ErrInvalidPayoutAmount
	}

	reporter, err := s.storage.GetUserByName(ctx, strings.TrimSpace(characterName))
	if err != nil {
		return nil, err
	}

	payout := &model.ReporterPayout{
		ID:         model.PayoutID(uuid.NewString()),
		ReporterID: reporter.ID,
		Amount:     amount,
		PaidBy:     adminID,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.storage.SavePayout(ctx, payout); err != nil {
		return nil, err
	}

	s.logger.Info("payout recorded",
		slog.String("reporter", reporter.CharacterName),
		slog.String("admin", admin.CharacterName),
		slog.Int("amount", amount),
	)
	return payout, nil
}

// Ledger returns the payout reconciliation for every reporter with
// activity: anyone who filed a report or received a payout. Admin only.
func (s *Service) Ledger(ctx context.Context, adminID model.UserID) ([]*model.UserEarnings, error) {
	if _, err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var entries []*model.UserEarnings
	for _, user := range users {
		summary, err := s.summarize(ctx, user, now)
		if err != nil {
			return nil, err
		}
		if summary.ReportsFiled == 0 && summary.TotalPaid == 0 {
			continue
		}
		entries = append(entries, summary)
	}
	return entries, nil
}

// Details returns a reporter's filed reports with resolved outcomes,
// newest first
func (s *Service) Details(ctx context.Context, userID model.UserID) ([]*model.ReportDetail, error) {
	reports, err := s.storage.GetReportsByReporter(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	details := make([]*model.ReportDetail, 0, len(reports))
	for i := len(reports) - 1; i >= 0; i-- {
		report := reports[i]

		player, err := s.storage.GetPlayer(ctx, report.PlayerID)
		if err != nil {
			return nil, err
		}

		outcome, _, err := s.outcome(ctx, report, now)
		if err != nil {
			return nil, err
		}

		detail := &model.ReportDetail{
			Report:  *report,
			Player:  *player,
			Outcome: outcome,
		}
		if outcome == model.OutcomeLate {
			detail.Earnings = model.PenaltyAmount
		}
		details = append(details, detail)
	}
	return details, nil
}

// Ranking orders players by how often they have been caught paying
// late, worst first. Hidden players are included; history is history.
func (s *Service) Ranking(ctx context.Context) ([]*model.CaloteiroRank, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var ranks []*model.CaloteiroRank
	for _, player := range players {
		reports, err := s.storage.GetReportsForPlayer(ctx, player.ID)
		if err != nil {
			return nil, err
		}

		rank := &model.CaloteiroRank{Player: *player}
		for _, report := range reports {
			outcome, lateAt, err := s.outcome(ctx, report, now)
			if err != nil {
				return nil, err
			}
			if outcome != model.OutcomeLate {
				continue
			}
			rank.LateCount++
			if rank.LastLate == nil || lateAt.After(*rank.LastLate) {
				t := lateAt
				rank.LastLate = &t
			}
		}
		if rank.LateCount > 0 {
			ranks = append(ranks, rank)
		}
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].LateCount != ranks[j].LateCount {
			return ranks[i].LateCount > ranks[j].LateCount
		}
		li, lj := ranks[i].LastLate, ranks[j].LastLate
		if li != nil && lj != nil && !li.Equal(*lj) {
			return li.After(*lj)
		}
		return ranks[i].Player.CharacterName < ranks[j].Player.CharacterName
	})
	return ranks, nil
}

func (s *Service) requireAdmin(ctx context.Context, userID model.UserID) (*model.User, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, model.ErrNotAdmin
	}
	return user, nil
}

// outcome resolves what became of one report. For late outcomes the
// returned time is when the lateness became fact: the late payment,
// or the missed deadline.
func (s *Service) outcome(ctx context.Context, report *model.Report, now time.Time) (model.ReportOutcome, time.Time, error) {
	trainingDate := s.days.TrainingDate(report.CreatedAt)
	deadline := report.Deadline()

	payment, err := s.storage.GetPaymentForPlayerOnDate(ctx, report.PlayerID, trainingDate)
	if err != nil {
		if !errors.Is(err, model.ErrPaymentNotFound) {
			return "", time.Time{}, err
		}
		if now.After(deadline) {
			return model.OutcomeLate, deadline, nil
		}
		return model.OutcomePending, time.Time{}, nil
	}

	if payment.Override {
		// Admin mark-paid settles the day on time regardless of when
		// it was filed, so the report earns nothing.
		return model.OutcomePaidOnTime, time.Time{}, nil
	}
	if payment.CreatedAt.After(deadline) {
		return model.OutcomeLate, payment.CreatedAt, nil
	}
	return model.OutcomePaidOnTime, time.Time{}, nil
}
