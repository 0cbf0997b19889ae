package earnings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dmaraujo/treinos/internal/dependencies/mocks"
	"github.com/dmaraujo/treinos/internal/model"
	"github.com/dmaraujo/treinos/internal/services/tracker"
	"github.com/dmaraujo/treinos/internal/services/trainingday"
	"github.com/dmaraujo/treinos/internal/storage/memory"
	"github.com/dmaraujo/treinos/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	days    *trainingday.Service
	clock   *mocks.MockClock
	tracker *tracker.Controller
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.days = trainingday.New(trainingday.DefaultResetHour)
	s.clock = mocks.NewMockClock(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	s.tracker = tracker.NewController(s.storage, s.days, s.clock, testutil.NopLogger())
	s.service = New(s.storage, s.days, s.clock, testutil.NopLogger())
	s.ctx = context.Background()

	for _, u := range []struct {
		id    model.UserID
		name  string
		admin bool
	}{
		{"user-reporter", "Cagueta", false},
		{"user-other", "Vigia", false},
		{"user-payer", "Payer", false},
		{"user-admin", "Boss", true},
	} {
		err := s.storage.CreateUser(s.ctx, &model.User{
			ID:            u.id,
			CharacterName: u.name,
			Vocation:      model.VocationRP,
			IsAdmin:       u.admin,
			CreatedAt:     s.clock.Now(),
		})
		s.Require().NoError(err)
	}
}

func (s *ServiceSuite) report(reporter model.UserID, name string) {
	_, err := s.tracker.Report(s.ctx, reporter, name)
	s.Require().NoError(err)
}

func (s *ServiceSuite) pay(name, proof string) {
	_, err := s.tracker.RecordPayment(s.ctx, "user-payer", name, proof)
	s.Require().NoError(err)
}

// Summary tests

func (s *ServiceSuite) TestSummaryEmpty() {
	summary, err := s.service.Summary(s.ctx, "user-reporter")
	s.Require().NoError(err)

	s.Equal(0, summary.ReportsFiled)
	s.Equal(0, summary.TotalEarnings)
}

func (s *ServiceSuite) TestSummaryPendingInsideGrace() {
	s.report("user-reporter", "Bubble")

	summary, err := s.service.Summary(s.ctx, "user-reporter")
	s.Require().NoError(err)

	s.Equal(1, summary.ReportsFiled)
	s.Equal(1, summary.PendingCount)
	s.Equal(0, summary.LateCount)
	s.Equal(0, summary.TotalEarnings)
}

func (s *ServiceSuite) TestSummaryOnTimePaymentEarnsNothing() {
	s.report("user-reporter", "Bubble")
	s.clock.Advance(5 * time.Minute)
	s.pay("Bubble", "12:05 Player Bubble deposited 10000 gold coins.")

	summary, err := s.service.Summary(s.ctx, "user-reporter")
	s.Require().NoError(err)

	s.Equal(1, summary.ReportsFiled)
	s.Equal(0, summary.LateCount)
	s.Equal(0, summary.PendingCount)
	s.Equal(0, summary.TotalEarnings)
}

func (s *ServiceSuite) TestSummaryLatePaymentEarnsPenalty() {
	s.report("user-reporter", "Bubble")
	s.clock.Advance(model.GracePeriod + time.Minute)
	s.pay("Bubble", "12:11 Player Bubble deposited 12000 gold coins.")

	summary, err := s.service.Summary(s.ctx, "user-reporter")
	s.Require().NoError(err)

	s.Equal(1, summary.LateCount)
	s.Equal(model.PenaltyAmount, summary.TotalEarnings)
}

func (s *ServiceSuite) TestSummaryMissedDeadlineRealizesWithoutPayment() {
	s.report("user-reporter", "Bubble")

	// Inside grace: still pending
	summary, err := s.service.Summary(s.ctx, "user-reporter")
	s.Require().NoError(err)
	s.Equal(0, summary.TotalEarnings)

	// Past the deadline with no payment: realized
	s.clock.Advance(model.GracePeriod + time.Second)
	summary, err = s.service.Summary(s.ctx, "user-reporter")
	s.Require().NoError(err)
	s.Equal(1, summary.LateCount)
	s.Equal(model.PenaltyAmount, summary.TotalEarnings)
}

func (s *ServiceSuite) TestSummaryAccumulatesAcrossDays() {
	s.report("user-reporter", "Bubble")
	s.clock.Advance(model.GracePeriod + time.Minute)
	s.pay("Bubble", "late day one")

	s.clock.Advance(24 * time.Hour)
	s.report("user-reporter", "Bubble")
	s.clock.Advance(model.GracePeriod + time.Minute)
	s.pay("Bubble", "late day two")

	summary, err := s.service.Summary(s.ctx, "user-reporter")
	s.Require().NoError(err)

	s.Equal(2, summary.ReportsFiled)
	s.Equal(2, summary.LateCount)
	s.Equal(2*model.PenaltyAmount, summary.TotalEarnings)
}

func (s *ServiceSuite) TestSummaryAdminMarkPaidEarnsNothing() {
	s.report("user-reporter", "Bubble")
	s.clock.Advance(model.GracePeriod + time.Hour)

	_, err := s.tracker.MarkPaid(s.ctx, "user-admin", "Bubble")
	s.Require().NoError(err)

	summary, err := s.service.Summary(s.ctx, "user-reporter")
	s.Require().NoError(err)

	s.Equal(1, summary.ReportsFiled)
	s.Equal(0, summary.LateCount)
	s.Equal(0, summary.PendingCount)
	s.Equal(0, summary.TotalEarnings)
}

// Payout tests

func (s *ServiceSuite) TestRecordPayoutUpdatesBalance() {
	s.report("user-reporter", "Bubble")
	s.clock.Advance(model.GracePeriod + time.Minute)
	s.pay("Bubble", "late")

	s.clock.Advance(24 * time.Hour)
	s.report("user-reporter", "Bubble")
	s.clock.Advance(model.GracePeriod + time.Minute)
	s.pay("Bubble", "late again")

	payout, err := s.service.RecordPayout(s.ctx, "user-admin", "Cagueta", model.PenaltyAmount)
	s.Require().NoError(err)
	s.Equal(model.UserID("user-reporter"), payout.ReporterID)
	s.Equal(model.UserID("user-admin"), payout.PaidBy)

	summary, err := s.service.Summary(s.ctx, "user-reporter")
	s.Require().NoError(err)
	s.Equal("Cagueta", summary.CharacterName)
	s.Equal(2*model.PenaltyAmount, summary.TotalEarnings)
	s.Equal(model.PenaltyAmount, summary.TotalPaid)
	s.Equal(model.PenaltyAmount, summary.Balance)
}

func (s *ServiceSuite) TestRecordPayoutRejectsNonAdmin() {
	_, err := s.service.RecordPayout(s.ctx, "user-other", "Cagueta", 2000)
	s.ErrorIs(err, model.ErrNotAdmin)
}

func (s *ServiceSuite) TestRecordPayoutRejectsNonPositiveAmount() {
	_, err := s.service.RecordPayout(s.ctx, "user-admin", "Cagueta", 0)
	s.ErrorIs(err, model.ErrInvalidPayoutAmount)

	_, err = s.service.RecordPayout(s.ctx, "user-admin", "Cagueta", -100)
	s.ErrorIs(err, model.ErrInvalidPayoutAmount)
}

func (s *ServiceSuite) TestRecordPayoutUnknownReporter() {
	_, err := s.service.RecordPayout(s.ctx, "user-admin", "Nobody", 2000)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestLedgerListsReportersWithActivity() {
	s.report("user-reporter", "Bubble")
	s.clock.Advance(model.GracePeriod + time.Minute)
	s.pay("Bubble", "late")

	// A payout with no reports still shows up
	_, err := s.service.RecordPayout(s.ctx, "user-admin", "Vigia", 1000)
	s.Require().NoError(err)

	ledger, err := s.service.Ledger(s.ctx, "user-admin")
	s.Require().NoError(err)
	s.Require().Len(ledger, 2)

	byName := make(map[string]*model.UserEarnings)
	for _, entry := range ledger {
		byName[entry.CharacterName] = entry
	}
	s.Equal(model.PenaltyAmount, byName["Cagueta"].Balance)
	s.Equal(-1000, byName["Vigia"].Balance)
}

func (s *ServiceSuite) TestLedgerRejectsNonAdmin() {
	_, err := s.service.Ledger(s.ctx, "user-reporter")
	s.ErrorIs(err, model.ErrNotAdmin)
}

// Details tests

func (s *ServiceSuite) TestDetailsNewestFirstWithOutcomes() {
	s.report("user-reporter", "Bubble")
	s.clock.Advance(model.GracePeriod + time.Minute)
	s.pay("Bubble", "late payment")

	s.clock.Advance(24 * time.Hour)
	s.report("user-reporter", "Tadeu")

	details, err := s.service.Details(s.ctx, "user-reporter")
	s.Require().NoError(err)

	s.Require().Len(details, 2)
	s.Equal("Tadeu", details[0].Player.CharacterName)
	s.Equal(model.OutcomePending, details[0].Outcome)
	s.Equal(0, details[0].Earnings)
	s.Equal("Bubble", details[1].Player.CharacterName)
	s.Equal(model.OutcomeLate, details[1].Outcome)
	s.Equal(model.PenaltyAmount, details[1].Earnings)
}

func (s *ServiceSuite) TestDetailsOnlyOwnReports() {
	s.report("user-reporter", "Bubble")
	s.report("user-other", "Tadeu")

	details, err := s.service.Details(s.ctx, "user-reporter")
	s.Require().NoError(err)
	s.Require().Len(details, 1)
	s.Equal("Bubble", details[0].Player.CharacterName)
}

// Ranking tests

func (s *ServiceSuite) TestRankingWorstFirst() {
	// Bubble late twice, Tadeu late once
	s.report("user-reporter", "Bubble")
	s.clock.Advance(model.GracePeriod + time.Minute)
	s.pay("Bubble", "late")

	s.clock.Advance(24 * time.Hour)
	s.report("user-reporter", "Bubble")
	s.report("user-other", "Tadeu")
	s.clock.Advance(model.GracePeriod + time.Minute)
	s.pay("Bubble", "late")
	s.pay("Tadeu", "late")

	ranks, err := s.service.Ranking(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(ranks, 2)
	s.Equal("Bubble", ranks[0].Player.CharacterName)
	s.Equal(2, ranks[0].LateCount)
	s.Equal("Tadeu", ranks[1].Player.CharacterName)
	s.Equal(1, ranks[1].LateCount)
}

func (s *ServiceSuite) TestRankingExcludesCleanPlayers() {
	s.pay("Saint", "12:00 Player Saint deposited 10000 gold coins.")
	s.report("user-reporter", "Bubble")
	s.clock.Advance(model.GracePeriod + time.Minute)

	ranks, err := s.service.Ranking(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(ranks, 1)
	s.Equal("Bubble", ranks[0].Player.CharacterName)
	s.Require().NotNil(ranks[0].LastLate)
}

func (s *ServiceSuite) TestRankingTieBrokenByMostRecentLate() {
	s.report("user-reporter", "Early")
	s.clock.Advance(model.GracePeriod + time.Minute)
	s.pay("Early", "late")

	s.clock.Advance(time.Hour)
	s.report("user-reporter", "Recent")
	s.clock.Advance(model.GracePeriod + time.Minute)
	s.pay("Recent", "late")

	ranks, err := s.service.Ranking(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(ranks, 2)
	s.Equal("Recent", ranks[0].Player.CharacterName)
	s.Equal("Early", ranks[1].Player.CharacterName)
}
