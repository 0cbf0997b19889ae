package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/dmaraujo/treinos/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	user := &model.User{
		ID:            "user-1",
		CharacterName: "Kharsek",
		PasswordHash:  "hash123",
		Vocation:      model.VocationEK,
		CreatedAt:     time.Now().Truncate(time.Millisecond),
	}

	err := s.storage.CreateUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(user.CharacterName, retrieved.CharacterName)
	s.Equal(user.Vocation, retrieved.Vocation)

	byName, err := s.storage.GetUserByName(s.ctx, "Kharsek")
	s.Require().NoError(err)
	s.Equal(user.ID, byName.ID)
}

func (s *StorageSuite) TestCreateUserDuplicateName() {
	s.Require().NoError(s.storage.CreateUser(s.ctx, &model.User{ID: "user-1", CharacterName: "Kharsek"}))

	err := s.storage.CreateUser(s.ctx, &model.User{ID: "user-2", CharacterName: "Kharsek"})
	s.ErrorIs(err, model.ErrUserExists)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.storage.GetUserByName(s.ctx, "Nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestListUsersOrderedByCreation() {
	base := time.Now()
	s.Require().NoError(s.storage.CreateUser(s.ctx, &model.User{ID: "u2", CharacterName: "Younger", CreatedAt: base.Add(time.Hour)}))
	s.Require().NoError(s.storage.CreateUser(s.ctx, &model.User{ID: "u1", CharacterName: "Older", CreatedAt: base}))

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal("Older", users[0].CharacterName)
	s.Equal("Younger", users[1].CharacterName)
}

// Player tests

func (s *StorageSuite) TestCreateAndGetPlayer() {
	player := &model.Player{ID: "player-1", CharacterName: "Bubble", CreatedAt: time.Now()}
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, player))

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Bubble", retrieved.CharacterName)

	byName, err := s.storage.GetPlayerByName(s.ctx, "Bubble")
	s.Require().NoError(err)
	s.Equal(player.ID, byName.ID)
}

func (s *StorageSuite) TestCreatePlayerDuplicateName() {
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "player-1", CharacterName: "Bubble"}))

	err := s.storage.CreatePlayer(s.ctx, &model.Player{ID: "player-2", CharacterName: "Bubble"})
	s.ErrorIs(err, model.ErrPlayerExists)
}

func (s *StorageSuite) TestSavePlayerRoundTripsReportMarker() {
	player := &model.Player{ID: "player-1", CharacterName: "Bubble", CreatedAt: time.Now()}
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, player))

	reportedAt := time.Now().Truncate(time.Millisecond)
	reporter := model.UserID("user-1")
	player.ReportedAt = &reportedAt
	player.ReportedBy = &reporter
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Require().NotNil(retrieved.ReportedAt)
	s.True(retrieved.ReportedAt.Equal(reportedAt))
	s.Equal(reporter, *retrieved.ReportedBy)
}

func (s *StorageSuite) TestListPlayersOrderedByCreation() {
	base := time.Now()
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p2", CharacterName: "Younger", CreatedAt: base.Add(time.Hour)}))
	s.Require().NoError(s.storage.CreatePlayer(s.ctx, &model.Player{ID: "p1", CharacterName: "Older", CreatedAt: base}))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("Older", players[0].CharacterName)
	s.Equal("Younger", players[1].CharacterName)
}

// Report tests

func (s *StorageSuite) TestReportIndexes() {
	now := time.Now()
	reports := []*model.Report{
		{ID: "r1", PlayerID: "p1", ReporterID: "u1", CreatedAt: now},
		{ID: "r2", PlayerID: "p1", ReporterID: "u2", CreatedAt: now.Add(time.Minute)},
		{ID: "r3", PlayerID: "p2", ReporterID: "u1", CreatedAt: now.Add(2 * time.Minute)},
	}
	for _, r := range reports {
		s.Require().NoError(s.storage.SaveReport(s.ctx, r))
	}

	forPlayer, err := s.storage.GetReportsForPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().Len(forPlayer, 2)
	s.Equal(model.ReportID("r1"), forPlayer[0].ID)

	byReporter, err := s.storage.GetReportsByReporter(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(byReporter, 2)
	s.Equal(model.ReportID("r3"), byReporter[1].ID)
}

// Payment tests

func (s *StorageSuite) TestSavePaymentAllowsMultiplePerDay() {
	base := time.Now()
	payment := &model.Payment{ID: "pay-1", PlayerID: "p1", PaidBy: "u1", TrainingDate: "2024-03-15", CreatedAt: base}
	s.Require().NoError(s.storage.SavePayment(s.ctx, payment))

	second := &model.Payment{ID: "pay-2", PlayerID: "p1", PaidBy: "u2", TrainingDate: "2024-03-15", CreatedAt: base.Add(time.Minute)}
	s.Require().NoError(s.storage.SavePayment(s.ctx, second))

	forDate, err := s.storage.GetPaymentsForDate(s.ctx, "2024-03-15")
	s.Require().NoError(err)
	s.Len(forDate, 2)

	// The day lookup stays on the first payment
	first, err := s.storage.GetPaymentForPlayerOnDate(s.ctx, "p1", "2024-03-15")
	s.Require().NoError(err)
	s.Equal(model.PaymentID("pay-1"), first.ID)
}

func (s *StorageSuite) TestSavePaymentIdempotentForSameID() {
	payment := &model.Payment{ID: "pay-1", PlayerID: "p1", TrainingDate: "2024-03-15", CreatedAt: time.Now()}
	s.Require().NoError(s.storage.SavePayment(s.ctx, payment))
	s.NoError(s.storage.SavePayment(s.ctx, payment))
}

func (s *StorageSuite) TestGetPaymentForPlayerOnDate() {
	payment := &model.Payment{ID: "pay-1", PlayerID: "p1", TrainingDate: "2024-03-15", ProofText: "10:05 Player Bubble deposited 10000 gold coins.", CreatedAt: time.Now()}
	s.Require().NoError(s.storage.SavePayment(s.ctx, payment))

	retrieved, err := s.storage.GetPaymentForPlayerOnDate(s.ctx, "p1", "2024-03-15")
	s.Require().NoError(err)
	s.Equal(payment.ProofText, retrieved.ProofText)

	_, err = s.storage.GetPaymentForPlayerOnDate(s.ctx, "p1", "2024-03-16")
	s.ErrorIs(err, model.ErrPaymentNotFound)
}

func (s *StorageSuite) TestDeletePaymentCleansIndexes() {
	payment := &model.Payment{ID: "pay-1", PlayerID: "p1", PaidBy: "u1", TrainingDate: "2024-03-15", CreatedAt: time.Now()}
	s.Require().NoError(s.storage.SavePayment(s.ctx, payment))

	s.Require().NoError(s.storage.DeletePayment(s.ctx, "pay-1"))

	_, err := s.storage.GetPaymentForPlayerOnDate(s.ctx, "p1", "2024-03-15")
	s.ErrorIs(err, model.ErrPaymentNotFound)

	forDate, err := s.storage.GetPaymentsForDate(s.ctx, "2024-03-15")
	s.Require().NoError(err)
	s.Empty(forDate)
}

func (s *StorageSuite) TestDeleteFirstPaymentPromotesNext() {
	base := time.Now()
	s.Require().NoError(s.storage.SavePayment(s.ctx, &model.Payment{ID: "pay-1", PlayerID: "p1", TrainingDate: "2024-03-15", CreatedAt: base}))
	s.Require().NoError(s.storage.SavePayment(s.ctx, &model.Payment{ID: "pay-2", PlayerID: "p1", TrainingDate: "2024-03-15", CreatedAt: base.Add(time.Minute)}))

	s.Require().NoError(s.storage.DeletePayment(s.ctx, "pay-1"))

	remaining, err := s.storage.GetPaymentForPlayerOnDate(s.ctx, "p1", "2024-03-15")
	s.Require().NoError(err)
	s.Equal(model.PaymentID("pay-2"), remaining.ID)
}

func (s *StorageSuite) TestDeletePaymentNotFound() {
	s.ErrorIs(s.storage.DeletePayment(s.ctx, "nonexistent"), model.ErrPaymentNotFound)
}

func (s *StorageSuite) TestPaymentQueriesOrderedByTime() {
	base := time.Now()
	payments := []*model.Payment{
		{ID: "pay-2", PlayerID: "p1", PaidBy: "u1", TrainingDate: "2024-03-16", CreatedAt: base.Add(time.Hour)},
		{ID: "pay-1", PlayerID: "p1", PaidBy: "u1", TrainingDate: "2024-03-15", CreatedAt: base},
		{ID: "pay-3", PlayerID: "p2", PaidBy: "u1", TrainingDate: "2024-03-15", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, p := range payments {
		s.Require().NoError(s.storage.SavePayment(s.ctx, p))
	}

	forPlayer, err := s.storage.GetPaymentsForPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().Len(forPlayer, 2)
	s.Equal(model.PaymentID("pay-1"), forPlayer[0].ID)

	byUser, err := s.storage.GetPaymentsByUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(byUser, 3)
	s.Equal(model.PaymentID("pay-1"), byUser[0].ID)
	s.Equal(model.PaymentID("pay-3"), byUser[2].ID)
}

// Check-in tests

func (s *StorageSuite) TestSaveCheckInOncePerReporterPerDay() {
	s.Require().NoError(s.storage.SaveCheckIn(s.ctx, &model.CheckIn{ID: "c1", PlayerID: "p1", ReporterID: "u1", TrainingDate: "2024-03-15", CreatedAt: time.Now()}))

	dup := &model.CheckIn{ID: "c2", PlayerID: "p1", ReporterID: "u1", TrainingDate: "2024-03-15", CreatedAt: time.Now()}
	s.ErrorIs(s.storage.SaveCheckIn(s.ctx, dup), model.ErrAlreadyCheckedIn)

	// Another reporter or another day is fine
	s.NoError(s.storage.SaveCheckIn(s.ctx, &model.CheckIn{ID: "c3", PlayerID: "p1", ReporterID: "u2", TrainingDate: "2024-03-15", CreatedAt: time.Now()}))
	s.NoError(s.storage.SaveCheckIn(s.ctx, &model.CheckIn{ID: "c4", PlayerID: "p1", ReporterID: "u1", TrainingDate: "2024-03-16", CreatedAt: time.Now()}))
}

func (s *StorageSuite) TestCheckInQueries() {
	now := time.Now()
	checkIns := []*model.CheckIn{
		{ID: "c1", PlayerID: "p1", ReporterID: "u1", TrainingDate: "2024-03-15", CreatedAt: now},
		{ID: "c2", PlayerID: "p2", ReporterID: "u1", TrainingDate: "2024-03-15", CreatedAt: now.Add(time.Minute)},
		{ID: "c3", PlayerID: "p1", ReporterID: "u2", TrainingDate: "2024-03-16", CreatedAt: now.Add(time.Hour)},
	}
	for _, c := range checkIns {
		s.Require().NoError(s.storage.SaveCheckIn(s.ctx, c))
	}

	forPlayer, err := s.storage.GetCheckInsForPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().Len(forPlayer, 2)
	s.Equal(model.CheckInID("c1"), forPlayer[0].ID)

	forDate, err := s.storage.GetCheckInsForDate(s.ctx, "2024-03-15")
	s.Require().NoError(err)
	s.Len(forDate, 2)
}

// Payout tests

func (s *StorageSuite) TestPayoutsByReporter() {
	now := time.Now()
	payouts := []*model.ReporterPayout{
		{ID: "po1", ReporterID: "u1", Amount: 4000, PaidBy: "admin", CreatedAt: now},
		{ID: "po2", ReporterID: "u1", Amount: 2000, PaidBy: "admin", CreatedAt: now.Add(time.Hour)},
		{ID: "po3", ReporterID: "u2", Amount: 6000, PaidBy: "admin", CreatedAt: now},
	}
	for _, p := range payouts {
		s.Require().NoError(s.storage.SavePayout(s.ctx, p))
	}

	forReporter, err := s.storage.GetPayoutsForReporter(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(forReporter, 2)
	s.Equal(6000, forReporter[0].Amount+forReporter[1].Amount)

	none, err := s.storage.GetPayoutsForReporter(s.ctx, "u3")
	s.Require().NoError(err)
	s.Empty(none)
}

// Skill snapshot tests

func (s *StorageSuite) TestSkillSnapshotsOrderedByRecordingTime() {
	base := time.Now()
	s.Require().NoError(s.storage.SaveSkillSnapshot(s.ctx, &model.SkillSnapshot{
		ID: "snap-2", UserID: "u1", Magic: &model.SkillValue{Level: 91, Percent: 10}, RecordedAt: base.Add(time.Hour),
	}))
	s.Require().NoError(s.storage.SaveSkillSnapshot(s.ctx, &model.SkillSnapshot{
		ID: "snap-1", UserID: "u1", Magic: &model.SkillValue{Level: 90, Percent: 55}, RecordedAt: base,
	}))

	snapshots, err := s.storage.GetSkillSnapshots(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(snapshots, 2)
	s.Equal(model.SnapshotID("snap-1"), snapshots[0].ID)
	s.Equal(91, snapshots[1].Magic.Level)
}
