package tracker

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmaraujo/treinos/internal/dependencies/clock"
	"github.com/dmaraujo/treinos/internal/model"
	"github.com/dmaraujo/treinos/internal/services/proof"
	"github.com/dmaraujo/treinos/internal/services/trainingday"
	"github.com/dmaraujo/treinos/internal/storage"
)

// Controller manages the report/payment state machine for training days
type Controller struct {
	storage storage.Storage
	days    *trainingday.Service
	clock   clock.Clock
	logger  *slog.Logger
}

// NewController creates a new tracker controller
func NewController(
	storage storage.Storage,
	days *trainingday.Service,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		days:    days,
		clock:   clock,
		logger:  logger,
	}
}

// Report files a report against a player who entered training without
// paying. It starts the 10-minute grace window and records who gets
// the penalty if the player pays late.
func (c *Controller) Report(ctx context.Context, reporterID model.UserID, characterName string) (*model.PlayerStanding, error) {
	name := strings.TrimSpace(characterName)
	if name == "" {
		return nil, model.ErrEmptyCharacterName
	}

	reporter, err := c.storage.GetUser(ctx, reporterID)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(name, reporter.CharacterName) {
		return nil, model.ErrSelfReport
	}

	now := c.clock.Now()
	window := c.days.DayWindow(0, now)
	trainingDate := c.days.TrainingDate(now)

	player, err := c.findOrCreatePlayer(ctx, name, now)
	if err != nil {
		return nil, err
	}

	_, err = c.storage.GetPaymentForPlayerOnDate(ctx, player.ID, trainingDate)
	if err == nil {
		return nil, model.ErrAlreadyPaid
	}
	if !errors.Is(err, model.ErrPaymentNotFound) {
		return nil, err
	}

	if player.ReportedWithin(window.Start, window.End) {
		return nil, model.ErrAlreadyReported
	}

	report := &model.Report{
		ID:         model.ReportID(uuid.NewString()),
		PlayerID:   player.ID,
		ReporterID: reporterID,
		CreatedAt:  now,
	}
	if err := c.storage.SaveReport(ctx, report); err != nil {
		return nil, err
	}

	player.ReportedAt = &now
	player.ReportedBy = &reporterID
	if err := c.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	c.logger.Info("player reported",
		slog.String("player", player.CharacterName),
		slog.String("reporter", reporter.CharacterName),
		slog.Time("deadline", report.Deadline()),
	)

	return c.classify(ctx, player, report, nil, now)
}

// RecordPayment files a training payment. An empty character name
// means the actor is paying for their own character. A player may pay
// any number of times on the same day; the first payment settles the
// day and the rest are kept in the history. The returned record
// carries the derived amount and state.
func (c *Controller) RecordPayment(ctx context.Context, actorID model.UserID, characterName, proofText string) (*model.PaymentRecord, error) {
	proofText = strings.TrimSpace(proofText)
	if proofText == "" {
		return nil, model.ErrEmptyProof
	}

	actor, err := c.storage.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(characterName)
	if name == "" {
		name = actor.CharacterName
	}

	now := c.clock.Now()
	window := c.days.DayWindow(0, now)
	trainingDate := c.days.TrainingDate(now)

	player, err := c.findOrCreatePlayer(ctx, name, now)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		ID:           model.PaymentID(uuid.NewString()),
		PlayerID:     player.ID,
		PaidBy:       actorID,
		TrainingDate: trainingDate,
		ProofText:    proofText,
		CreatedAt:    now,
	}
	if err := c.storage.SavePayment(ctx, payment); err != nil {
		return nil, err
	}

	report := reportFromMarker(player, window)
	amount, state := c.derivePayment(payment, report)

	c.logger.Info("payment recorded",
		slog.String("player", player.CharacterName),
		slog.String("paid_by", actor.CharacterName),
		slog.String("training_date", trainingDate),
		slog.Int("amount", amount),
		slog.String("state", string(state)),
	)

	return &model.PaymentRecord{Payment: *payment, Amount: amount, State: state}, nil
}

// ListStandings classifies players for the training day offsetDays
// away from today. Offset 0 covers every visible player; historical
// days cover only players who paid inside that window.
func (c *Controller) ListStandings(ctx context.Context, offsetDays int) ([]*model.PlayerStanding, error) {
	now := c.clock.Now()
	window := c.days.DayWindow(offsetDays, now)

	if offsetDays == 0 {
		return c.currentStandings(ctx, window, now)
	}
	return c.historicalStandings(ctx, window, now)
}

func (c *Controller) currentStandings(ctx context.Context, window trainingday.Window, now time.Time) ([]*model.PlayerStanding, error) {
	players, err := c.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	trainingDate := c.days.TrainingDate(now)

	standings := make([]*model.PlayerStanding, 0, len(players))
	for _, player := range players {
		if player.Hidden {
			continue
		}

		payment, err := c.storage.GetPaymentForPlayerOnDate(ctx, player.ID, trainingDate)
		if err != nil && !errors.Is(err, model.ErrPaymentNotFound) {
			return nil, err
		}

		standing, err := c.classify(ctx, player, reportFromMarker(player, window), payment, now)
		if err != nil {
			return nil, err
		}
		standings = append(standings, standing)
	}
	return standings, nil
}

func (c *Controller) historicalStandings(ctx context.Context, window trainingday.Window, now time.Time) ([]*model.PlayerStanding, error) {
	trainingDate := c.days.TrainingDate(window.Start)
	payments, err := c.storage.GetPaymentsForDate(ctx, trainingDate)
	if err != nil {
		return nil, err
	}

	standings := make([]*model.PlayerStanding, 0, len(payments))
	seen := make(map[model.PlayerID]bool)
	for _, payment := range payments {
		// Extra payments on the same day do not add rows; the first
		// payment is the one that settled the day
		if seen[payment.PlayerID] {
			continue
		}
		seen[payment.PlayerID] = true

		player, err := c.storage.GetPlayer(ctx, payment.PlayerID)
		if err != nil {
			return nil, err
		}

		reports, err := c.storage.GetReportsForPlayer(ctx, player.ID)
		if err != nil {
			return nil, err
		}

		standing, err := c.classify(ctx, player, reportInWindow(reports, window), payment, now)
		if err != nil {
			return nil, err
		}
		standings = append(standings, standing)
	}
	return standings, nil
}

// PlayerPayments returns a player's payment history, newest first,
// with derived amounts
func (c *Controller) PlayerPayments(ctx context.Context, characterName string) ([]*model.PaymentRecord, error) {
	player, err := c.storage.GetPlayerByName(ctx, strings.TrimSpace(characterName))
	if err != nil {
		return nil, err
	}

	payments, err := c.storage.GetPaymentsForPlayer(ctx, player.ID)
	if err != nil {
		return nil, err
	}
	reports, err := c.storage.GetReportsForPlayer(ctx, player.ID)
	if err != nil {
		return nil, err
	}

	return c.paymentRecords(payments, func(*model.Payment) []*model.Report { return reports }), nil
}

// UserPayments returns the payments a user has filed (for any
// character), newest first, with derived amounts
func (c *Controller) UserPayments(ctx context.Context, userID model.UserID) ([]*model.PaymentRecord, error) {
	payments, err := c.storage.GetPaymentsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	reportsByPlayer := make(map[model.PlayerID][]*model.Report)
	for _, payment := range payments {
		if _, ok := reportsByPlayer[payment.PlayerID]; ok {
			continue
		}
		reports, err := c.storage.GetReportsForPlayer(ctx, payment.PlayerID)
		if err != nil {
			return nil, err
		}
		reportsByPlayer[payment.PlayerID] = reports
	}

	return c.paymentRecords(payments, func(p *model.Payment) []*model.Report {
		return reportsByPlayer[p.PlayerID]
	}), nil
}

// DailySummary compares today's revenue against the dummy cost
func (c *Controller) DailySummary(ctx context.Context) (*model.DailySummary, error) {
	trainingDate := c.days.TrainingDate(c.clock.Now())
	payments, err := c.storage.GetPaymentsForDate(ctx, trainingDate)
	if err != nil {
		return nil, err
	}

	revenue := len(payments) * model.BaseAmount
	return &model.DailySummary{
		TrainingDate: trainingDate,
		PaymentCount: len(payments),
		Revenue:      revenue,
		DummyCost:    model.DummyCost,
		Balance:      revenue - model.DummyCost,
	}, nil
}

// Admin overrides

// MarkPaid files a synthetic payment on behalf of a player without
// proof. The override always lands as an on-time payment, even when
// the player was already past a report deadline, so it never earns
// the reporter a penalty. Admin only.
func (c *Controller) MarkPaid(ctx context.Context, adminID model.UserID, characterName string) (*model.PaymentRecord, error) {
	admin, err := c.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(characterName)
	if name == "" {
		return nil, model.ErrEmptyCharacterName
	}

	now := c.clock.Now()
	player, err := c.findOrCreatePlayer(ctx, name, now)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		ID:           model.PaymentID(uuid.NewString()),
		PlayerID:     player.ID,
		PaidBy:       adminID,
		TrainingDate: c.days.TrainingDate(now),
		ProofText:    "[admin] marked as paid",
		Override:     true,
		CreatedAt:    now,
	}
	if err := c.storage.SavePayment(ctx, payment); err != nil {
		return nil, err
	}

	c.logger.Info("admin marked player as paid",
		slog.String("player", player.CharacterName),
		slog.String("admin", admin.CharacterName),
	)

	return &model.PaymentRecord{
		Payment: *payment,
		Amount:  model.BaseAmount,
		State:   model.StatePaidOnTime,
	}, nil
}

// RemoveTodayPayments deletes all of a player's payments for the
// current training day, returning them to their reported or
// not-reported state. Admin only.
func (c *Controller) RemoveTodayPayments(ctx context.Context, adminID model.UserID, characterName string) error {
	admin, err := c.requireAdmin(ctx, adminID)
	if err != nil {
		return err
	}

	player, err := c.storage.GetPlayerByName(ctx, strings.TrimSpace(characterName))
	if err != nil {
		return err
	}

	trainingDate := c.days.TrainingDate(c.clock.Now())
	payments, err := c.storage.GetPaymentsForPlayer(ctx, player.ID)
	if err != nil {
		return err
	}

	removed := 0
	for _, payment := range payments {
		if payment.TrainingDate != trainingDate {
			continue
		}
		if err := c.storage.DeletePayment(ctx, payment.ID); err != nil {
			return err
		}
		removed++
	}
	if removed == 0 {
		return model.ErrPaymentNotFound
	}

	c.logger.Info("admin removed payments",
		slog.String("player", player.CharacterName),
		slog.String("admin", admin.CharacterName),
		slog.String("training_date", trainingDate),
		slog.Int("removed", removed),
	)
	return nil
}

// SetHidden toggles whether a player appears in standings. History is
// retained either way. Admin only.
func (c *Controller) SetHidden(ctx context.Context, adminID model.UserID, characterName string, hidden bool) error {
	admin, err := c.requireAdmin(ctx, adminID)
	if err != nil {
		return err
	}

	player, err := c.storage.GetPlayerByName(ctx, strings.TrimSpace(characterName))
	if err != nil {
		return err
	}

	player.Hidden = hidden
	if err := c.storage.SavePlayer(ctx, player); err != nil {
		return err
	}

	c.logger.Info("admin changed player visibility",
		slog.String("player", player.CharacterName),
		slog.String("admin", admin.CharacterName),
		slog.Bool("hidden", hidden),
	)
	return nil
}

// Internals

func (c *Controller) requireAdmin(ctx context.Context, userID model.UserID) (*model.User, error) {
	user, err := c.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, model.ErrNotAdmin
	}
	return user, nil
}

// findOrCreatePlayer looks a player up by character name, creating
// the record on first sight. A lost creation race is recovered by
// re-reading.
func (c *Controller) findOrCreatePlayer(ctx context.Context, characterName string, now time.Time) (*model.Player, error) {
	player, err := c.storage.GetPlayerByName(ctx, characterName)
	if err == nil {
		return player, nil
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	player = &model.Player{
		ID:            model.PlayerID(uuid.NewString()),
		CharacterName: characterName,
		CreatedAt:     now,
	}
	if err := c.storage.CreatePlayer(ctx, player); err != nil {
		if errors.Is(err, model.ErrPlayerExists) {
			return c.storage.GetPlayerByName(ctx, characterName)
		}
		return nil, err
	}
	return player, nil
}

// derivePayment computes the amount and state for a payment given the
// report (if any) for the same training day. Admin overrides are
// always on time. The proof amount wins over the timing-derived
// amount; a mismatch is logged.
func (c *Controller) derivePayment(payment *model.Payment, report *model.Report) (int, model.PaymentState) {
	if payment.Override {
		return model.BaseAmount, model.StatePaidOnTime
	}

	amount := model.BaseAmount
	state := model.StatePaidOnTime
	if report != nil && payment.CreatedAt.After(report.Deadline()) {
		amount = model.LateAmount
		state = model.StatePaidLate
	}

	if proofAmount, ok := proof.ExtractAmount(payment.ProofText); ok {
		if proofAmount != amount {
			c.logger.Warn("proof amount disagrees with report timing",
				slog.String("payment_id", string(payment.ID)),
				slog.Int("proof_amount", proofAmount),
				slog.Int("derived_amount", amount),
			)
		}
		amount = proofAmount
	}
	return amount, state
}

// classify builds the standing for one player given the report and
// payment (either may be nil) for the day under consideration
func (c *Controller) classify(ctx context.Context, player *model.Player, report *model.Report, payment *model.Payment, now time.Time) (*model.PlayerStanding, error) {
	history, err := c.storage.GetPaymentsForPlayer(ctx, player.ID)
	if err != nil {
		return nil, err
	}

	standing := &model.PlayerStanding{
		Player:       *player,
		PaymentCount: len(history),
	}
	if report != nil {
		deadline := report.Deadline()
		standing.Deadline = &deadline
		standing.ReportedBy = &report.ReporterID
	}

	switch {
	case payment != nil:
		amount, state := c.derivePayment(payment, report)
		standing.State = state
		standing.AmountOwed = amount
		standing.Payment = payment
	case report == nil:
		standing.State = model.StateNotReported
		standing.AmountOwed = model.BaseAmount
	case now.After(report.Deadline()):
		standing.State = model.StateReportedPastDeadline
		standing.AmountOwed = model.LateAmount
	default:
		standing.State = model.StateReportedWithinGrace
		standing.AmountOwed = model.BaseAmount
	}
	return standing, nil
}

func (c *Controller) paymentRecords(payments []*model.Payment, reportsFor func(*model.Payment) []*model.Report) []*model.PaymentRecord {
	records := make([]*model.PaymentRecord, 0, len(payments))
	// Newest first
	for i := len(payments) - 1; i >= 0; i-- {
		payment := payments[i]
		window, err := c.days.WindowForDate(payment.TrainingDate, payment.CreatedAt.Location())
		if err != nil {
			// Unparseable training date; fall back to the window
			// containing the payment itself
			window = c.days.DayWindow(0, payment.CreatedAt)
		}
		amount, state := c.derivePayment(payment, reportInWindow(reportsFor(payment), window))
		records = append(records, &model.PaymentRecord{Payment: *payment, Amount: amount, State: state})
	}
	return records
}

// reportFromMarker lifts a player's report marker into a Report when
// it is active for the given window
func reportFromMarker(player *model.Player, window trainingday.Window) *model.Report {
	if !player.ReportedWithin(window.Start, window.End) || player.ReportedBy == nil {
		return nil
	}
	return &model.Report{
		PlayerID:   player.ID,
		ReporterID: *player.ReportedBy,
		CreatedAt:  *player.ReportedAt,
	}
}

// reportInWindow returns the latest report that falls inside the window
func reportInWindow(reports []*model.Report, window trainingday.Window) *model.Report {
	var latest *model.Report
	for _, r := range reports {
		if window.Contains(r.CreatedAt) {
			latest = r
		}
	}
	return latest
}

// Interface for dependency injection
type ControllerInterface interface {
	Report(ctx context.Context, reporterID model.UserID, characterName string) (*model.PlayerStanding, error)
	RecordPayment(ctx context.Context, actorID model.UserID, characterName, proofText string) (*model.PaymentRecord, error)
	ListStandings(ctx context.Context, offsetDays int) ([]*model.PlayerStanding, error)
	PlayerPayments(ctx context.Context, characterName string) ([]*model.PaymentRecord, error)
	UserPayments(ctx context.Context, userID model.UserID) ([]*model.PaymentRecord, error)
	DailySummary(ctx context.Context) (*model.DailySummary, error)
	MarkPaid(ctx context.Context, adminID model.UserID, characterName string) (*model.PaymentRecord, error)
	RemoveTodayPayments(ctx context.Context, adminID model.UserID, characterName string) error
	SetHidden(ctx context.Context, adminID model.UserID, characterName string, hidden bool) error
}

var _ ControllerInterface = (*Controller)(nil)
