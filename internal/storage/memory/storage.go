package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dmaraujo/treinos/internal/model"
	"github.com/dmaraujo/treinos/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users           map[model.UserID]*model.User
	userNameIndex   map[string]model.UserID
	players         map[model.PlayerID]*model.Player
	playerNameIndex map[string]model.PlayerID
	reports         []*model.Report
	payments        map[model.PaymentID]*model.Payment
	paymentDayIndex map[paymentDayKey]model.PaymentID
	checkIns        []*model.CheckIn
	checkInDayIndex map[checkInDayKey]struct{}
	payouts         []*model.ReporterPayout
	snapshots       map[model.UserID][]*model.SkillSnapshot
}

// paymentDayKey points at the earliest payment for a (player, day)
// pair; later payments on the same day do not move it
type paymentDayKey struct {
	playerID     model.PlayerID
	trainingDate string
}

type checkInDayKey struct {
	reporterID   model.UserID
	playerID     model.PlayerID
	trainingDate string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:           make(map[model.UserID]*model.User),
		userNameIndex:   make(map[string]model.UserID),
		players:         make(map[model.PlayerID]*model.Player),
		playerNameIndex: make(map[string]model.PlayerID),
		payments:        make(map[model.PaymentID]*model.Payment),
		paymentDayIndex: make(map[paymentDayKey]model.PaymentID),
		checkInDayIndex: make(map[checkInDayKey]struct{}),
		snapshots:       make(map[model.UserID][]*model.SkillSnapshot),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.userNameIndex[user.CharacterName]; taken {
		return model.ErrUserExists
	}
	s.users[user.ID] = user
	s.userNameIndex[user.CharacterName] = user.ID
	return nil
}

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.userNameIndex[user.CharacterName] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CharacterName < users[j].CharacterName
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (s *Storage) GetUserByName(ctx context.Context, characterName string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.userNameIndex[characterName]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.playerNameIndex[player.CharacterName]; taken {
		return model.ErrPlayerExists
	}
	s.players[player.ID] = player
	s.playerNameIndex[player.CharacterName] = player.ID
	return nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	s.playerNameIndex[player.CharacterName] = player.ID
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, characterName string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.playerNameIndex[characterName]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].CreatedAt.Equal(players[j].CreatedAt) {
			return players[i].CharacterName < players[j].CharacterName
		}
		return players[i].CreatedAt.Before(players[j].CreatedAt)
	})
	return players, nil
}

// Report operations

func (s *Storage) SaveReport(ctx context.Context, report *model.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
	return nil
}

func (s *Storage) GetReportsForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var reports []*model.Report
	for _, r := range s.reports {
		if r.PlayerID == playerID {
			reports = append(reports, r)
		}
	}
	return reports, nil
}

func (s *Storage) GetReportsByReporter(ctx context.Context, reporterID model.UserID) ([]*model.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var reports []*model.Report
	for _, r := range s.reports {
		if r.ReporterID == reporterID {
			reports = append(reports, r)
		}
	}
	return reports, nil
}

// Payment operations

func (s *Storage) SavePayment(ctx context.Context, payment *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[payment.ID] = payment
	dayKey := paymentDayKey{playerID: payment.PlayerID, trainingDate: payment.TrainingDate}
	if _, taken := s.paymentDayIndex[dayKey]; !taken {
		s.paymentDayIndex[dayKey] = payment.ID
	}
	return nil
}

func (s *Storage) DeletePayment(ctx context.Context, id model.PaymentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payment, ok := s.payments[id]
	if !ok {
		return model.ErrPaymentNotFound
	}
	delete(s.payments, id)

	dayKey := paymentDayKey{playerID: payment.PlayerID, trainingDate: payment.TrainingDate}
	if s.paymentDayIndex[dayKey] == id {
		delete(s.paymentDayIndex, dayKey)
		if next := s.earliestPaymentLocked(payment.PlayerID, payment.TrainingDate); next != nil {
			s.paymentDayIndex[dayKey] = next.ID
		}
	}
	return nil
}

func (s *Storage) earliestPaymentLocked(playerID model.PlayerID, trainingDate string) *model.Payment {
	var earliest *model.Payment
	for _, p := range s.payments {
		if p.PlayerID != playerID || p.TrainingDate != trainingDate {
			continue
		}
		if earliest == nil || p.CreatedAt.Before(earliest.CreatedAt) {
			earliest = p
		}
	}
	return earliest
}

func (s *Storage) GetPaymentForPlayerOnDate(ctx context.Context, playerID model.PlayerID, trainingDate string) (*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.paymentDayIndex[paymentDayKey{playerID: playerID, trainingDate: trainingDate}]
	if !ok {
		return nil, model.ErrPaymentNotFound
	}
	payment, ok := s.payments[id]
	if !ok {
		return nil, model.ErrPaymentNotFound
	}
	return payment, nil
}

func (s *Storage) GetPaymentsForDate(ctx context.Context, trainingDate string) ([]*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var payments []*model.Payment
	for _, p := range s.payments {
		if p.TrainingDate == trainingDate {
			payments = append(payments, p)
		}
	}
	sortPayments(payments)
	return payments, nil
}

func (s *Storage) GetPaymentsForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var payments []*model.Payment
	for _, p := range s.payments {
		if p.PlayerID == playerID {
			payments = append(payments, p)
		}
	}
	sortPayments(payments)
	return payments, nil
}

func (s *Storage) GetPaymentsByUser(ctx context.Context, userID model.UserID) ([]*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var payments []*model.Payment
	for _, p := range s.payments {
		if p.PaidBy == userID {
			payments = append(payments, p)
		}
	}
	sortPayments(payments)
	return payments, nil
}

func sortPayments(payments []*model.Payment) {
	sort.Slice(payments, func(i, j int) bool {
		if payments[i].CreatedAt.Equal(payments[j].CreatedAt) {
			return payments[i].ID < payments[j].ID
		}
		return payments[i].CreatedAt.Before(payments[j].CreatedAt)
	})
}

// Check-in operations

func (s *Storage) SaveCheckIn(ctx context.Context, checkIn *model.CheckIn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dayKey := checkInDayKey{
		reporterID:   checkIn.ReporterID,
		playerID:     checkIn.PlayerID,
		trainingDate: checkIn.TrainingDate,
	}
	if _, taken := s.checkInDayIndex[dayKey]; taken {
		return model.ErrAlreadyCheckedIn
	}
	s.checkIns = append(s.checkIns, checkIn)
	s.checkInDayIndex[dayKey] = struct{}{}
	return nil
}

func (s *Storage) GetCheckInsForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.CheckIn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var checkIns []*model.CheckIn
	for _, c := range s.checkIns {
		if c.PlayerID == playerID {
			checkIns = append(checkIns, c)
		}
	}
	return checkIns, nil
}

func (s *Storage) GetCheckInsForDate(ctx context.Context, trainingDate string) ([]*model.CheckIn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var checkIns []*model.CheckIn
	for _, c := range s.checkIns {
		if c.TrainingDate == trainingDate {
			checkIns = append(checkIns, c)
		}
	}
	return checkIns, nil
}

// Reporter payout operations

func (s *Storage) SavePayout(ctx context.Context, payout *model.ReporterPayout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payouts = append(s.payouts, payout)
	return nil
}

func (s *Storage) GetPayoutsForReporter(ctx context.Context, reporterID model.UserID) ([]*model.ReporterPayout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var payouts []*model.ReporterPayout
	for _, p := range s.payouts {
		if p.ReporterID == reporterID {
			payouts = append(payouts, p)
		}
	}
	return payouts, nil
}

// Skill snapshot operations

func (s *Storage) SaveSkillSnapshot(ctx context.Context, snapshot *model.SkillSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.UserID] = append(s.snapshots[snapshot.UserID], snapshot)
	return nil
}

func (s *Storage) GetSkillSnapshots(ctx context.Context, userID model.UserID) ([]*model.SkillSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshots := make([]*model.SkillSnapshot, len(s.snapshots[userID]))
	copy(snapshots, s.snapshots[userID])
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].RecordedAt.Before(snapshots[j].RecordedAt)
	})
	return snapshots, nil
}
