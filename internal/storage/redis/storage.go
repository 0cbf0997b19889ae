package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmaraujo/treinos/internal/model"
	"github.com/dmaraujo/treinos/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Entities are stored as JSON values; secondary lookups go through
// name-index keys and ZSETs scored by creation time, so ranged reads
// come back in chronological order.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func timeScore(t time.Time) float64 {
	return float64(t.UnixMilli())
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// The name index doubles as the uniqueness guard
	ok, err := s.client.SetNX(ctx, userNameIndexKey(user.CharacterName), string(user.ID), 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrUserExists
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.ZAdd(ctx, usersIndexKey(), redis.Z{Score: timeScore(user.CreatedAt), Member: string(user.ID)})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, userNameIndexKey(user.CharacterName), string(user.ID), 0)
	pipe.ZAdd(ctx, usersIndexKey(), redis.Z{Score: timeScore(user.CreatedAt), Member: string(user.ID)})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	ids, err := s.client.ZRange(ctx, usersIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.GetUser(ctx, model.UserID(id))
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByName(ctx context.Context, characterName string) (*model.User, error) {
	id, err := s.client.Get(ctx, userNameIndexKey(characterName)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, model.UserID(id))
}

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, playerNameIndexKey(player.CharacterName), string(player.ID), 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrPlayerExists
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.ZAdd(ctx, playersIndexKey(), redis.Z{Score: timeScore(player.CreatedAt), Member: string(player.ID)})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.Set(ctx, playerNameIndexKey(player.CharacterName), string(player.ID), 0)
	pipe.ZAdd(ctx, playersIndexKey(), redis.Z{Score: timeScore(player.CreatedAt), Member: string(player.ID)})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, characterName string) (*model.Player, error) {
	id, err := s.client.Get(ctx, playerNameIndexKey(characterName)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return s.GetPlayer(ctx, model.PlayerID(id))
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	ids, err := s.client.ZRange(ctx, playersIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(ids))
	for _, id := range ids {
		player, err := s.GetPlayer(ctx, model.PlayerID(id))
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) {
				continue
			}
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

// Report operations

func (s *Storage) SaveReport(ctx context.Context, report *model.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}

	member := redis.Z{Score: timeScore(report.CreatedAt), Member: string(report.ID)}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, reportKey(report.ID), data, 0)
	pipe.ZAdd(ctx, reportsForPlayerIndexKey(report.PlayerID), member)
	pipe.ZAdd(ctx, reportsByReporterIndexKey(report.ReporterID), member)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetReportsForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Report, error) {
	return s.reportsFromIndex(ctx, reportsForPlayerIndexKey(playerID))
}

func (s *Storage) GetReportsByReporter(ctx context.Context, reporterID model.UserID) ([]*model.Report, error) {
	return s.reportsFromIndex(ctx, reportsByReporterIndexKey(reporterID))
}

func (s *Storage) reportsFromIndex(ctx context.Context, indexKey string) ([]*model.Report, error) {
	ids, err := s.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	reports := make([]*model.Report, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, reportKey(model.ReportID(id))).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		var report model.Report
		if err := json.Unmarshal(data, &report); err != nil {
			return nil, err
		}
		reports = append(reports, &report)
	}
	return reports, nil
}

// Payment operations

func (s *Storage) SavePayment(ctx context.Context, payment *model.Payment) error {
	data, err := json.Marshal(payment)
	if err != nil {
		return err
	}

	// The day index keeps pointing at the first payment of the day;
	// later payments only land in the ZSETs
	dayKey := paymentDayIndexKey(payment.PlayerID, payment.TrainingDate)
	if err := s.client.SetNX(ctx, dayKey, string(payment.ID), 0).Err(); err != nil {
		return err
	}

	member := redis.Z{Score: timeScore(payment.CreatedAt), Member: string(payment.ID)}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, paymentKey(payment.ID), data, 0)
	pipe.ZAdd(ctx, paymentsForDateIndexKey(payment.TrainingDate), member)
	pipe.ZAdd(ctx, paymentsForPlayerIndexKey(payment.PlayerID), member)
	pipe.ZAdd(ctx, paymentsByUserIndexKey(payment.PaidBy), member)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) DeletePayment(ctx context.Context, id model.PaymentID) error {
	data, err := s.client.Get(ctx, paymentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.ErrPaymentNotFound
		}
		return err
	}

	var payment model.Payment
	if err := json.Unmarshal(data, &payment); err != nil {
		return err
	}

	dayKey := paymentDayIndexKey(payment.PlayerID, payment.TrainingDate)
	pointed, err := s.client.Get(ctx, dayKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, paymentKey(id))
	pipe.ZRem(ctx, paymentsForDateIndexKey(payment.TrainingDate), string(id))
	pipe.ZRem(ctx, paymentsForPlayerIndexKey(payment.PlayerID), string(id))
	pipe.ZRem(ctx, paymentsByUserIndexKey(payment.PaidBy), string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	if pointed == string(id) {
		return s.repointPaymentDayIndex(ctx, payment.PlayerID, payment.TrainingDate)
	}
	return nil
}

// repointPaymentDayIndex moves the day index to the earliest remaining
// payment for the (player, training date) pair, or drops it
func (s *Storage) repointPaymentDayIndex(ctx context.Context, playerID model.PlayerID, trainingDate string) error {
	payments, err := s.GetPaymentsForPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	dayKey := paymentDayIndexKey(playerID, trainingDate)
	for _, p := range payments {
		if p.TrainingDate == trainingDate {
			return s.client.Set(ctx, dayKey, string(p.ID), 0).Err()
		}
	}
	return s.client.Del(ctx, dayKey).Err()
}

func (s *Storage) GetPaymentForPlayerOnDate(ctx context.Context, playerID model.PlayerID, trainingDate string) (*model.Payment, error) {
	id, err := s.client.Get(ctx, paymentDayIndexKey(playerID, trainingDate)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPaymentNotFound
		}
		return nil, err
	}
	return s.getPayment(ctx, model.PaymentID(id))
}

func (s *Storage) GetPaymentsForDate(ctx context.Context, trainingDate string) ([]*model.Payment, error) {
	return s.paymentsFromIndex(ctx, paymentsForDateIndexKey(trainingDate))
}

func (s *Storage) GetPaymentsForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Payment, error) {
	return s.paymentsFromIndex(ctx, paymentsForPlayerIndexKey(playerID))
}

func (s *Storage) GetPaymentsByUser(ctx context.Context, userID model.UserID) ([]*model.Payment, error) {
	return s.paymentsFromIndex(ctx, paymentsByUserIndexKey(userID))
}

func (s *Storage) getPayment(ctx context.Context, id model.PaymentID) (*model.Payment, error) {
	data, err := s.client.Get(ctx, paymentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPaymentNotFound
		}
		return nil, err
	}

	var payment model.Payment
	if err := json.Unmarshal(data, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *Storage) paymentsFromIndex(ctx context.Context, indexKey string) ([]*model.Payment, error) {
	ids, err := s.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	payments := make([]*model.Payment, 0, len(ids))
	for _, id := range ids {
		payment, err := s.getPayment(ctx, model.PaymentID(id))
		if err != nil {
			if errors.Is(err, model.ErrPaymentNotFound) {
				continue
			}
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

// Check-in operations

func (s *Storage) SaveCheckIn(ctx context.Context, checkIn *model.CheckIn) error {
	data, err := json.Marshal(checkIn)
	if err != nil {
		return err
	}

	// One check-in per reporter per player per day, enforced by the
	// guard key
	guard := checkInDayIndexKey(checkIn.ReporterID, checkIn.PlayerID, checkIn.TrainingDate)
	ok, err := s.client.SetNX(ctx, guard, string(checkIn.ID), 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrAlreadyCheckedIn
	}

	member := redis.Z{Score: timeScore(checkIn.CreatedAt), Member: string(checkIn.ID)}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, checkInKey(checkIn.ID), data, 0)
	pipe.ZAdd(ctx, checkInsForPlayerIndexKey(checkIn.PlayerID), member)
	pipe.ZAdd(ctx, checkInsForDateIndexKey(checkIn.TrainingDate), member)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCheckInsForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.CheckIn, error) {
	return s.checkInsFromIndex(ctx, checkInsForPlayerIndexKey(playerID))
}

func (s *Storage) GetCheckInsForDate(ctx context.Context, trainingDate string) ([]*model.CheckIn, error) {
	return s.checkInsFromIndex(ctx, checkInsForDateIndexKey(trainingDate))
}

func (s *Storage) checkInsFromIndex(ctx context.Context, indexKey string) ([]*model.CheckIn, error) {
	ids, err := s.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	checkIns := make([]*model.CheckIn, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, checkInKey(model.CheckInID(id))).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		var checkIn model.CheckIn
		if err := json.Unmarshal(data, &checkIn); err != nil {
			return nil, err
		}
		checkIns = append(checkIns, &checkIn)
	}
	return checkIns, nil
}

// Reporter payout operations

func (s *Storage) SavePayout(ctx context.Context, payout *model.ReporterPayout) error {
	data, err := json.Marshal(payout)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, payoutKey(payout.ID), data, 0)
	pipe.ZAdd(ctx, payoutsForReporterIndexKey(payout.ReporterID), redis.Z{
		Score:  timeScore(payout.CreatedAt),
		Member: string(payout.ID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPayoutsForReporter(ctx context.Context, reporterID model.UserID) ([]*model.ReporterPayout, error) {
	ids, err := s.client.ZRange(ctx, payoutsForReporterIndexKey(reporterID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	payouts := make([]*model.ReporterPayout, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, payoutKey(model.PayoutID(id))).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		var payout model.ReporterPayout
		if err := json.Unmarshal(data, &payout); err != nil {
			return nil, err
		}
		payouts = append(payouts, &payout)
	}
	return payouts, nil
}

// Skill snapshot operations

func (s *Storage) SaveSkillSnapshot(ctx context.Context, snapshot *model.SkillSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, snapshotKey(snapshot.ID), data, 0)
	pipe.ZAdd(ctx, snapshotsForUserIndexKey(snapshot.UserID), redis.Z{
		Score:  timeScore(snapshot.RecordedAt),
		Member: string(snapshot.ID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSkillSnapshots(ctx context.Context, userID model.UserID) ([]*model.SkillSnapshot, error) {
	ids, err := s.client.ZRange(ctx, snapshotsForUserIndexKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	snapshots := make([]*model.SkillSnapshot, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, snapshotKey(model.SnapshotID(id))).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		var snapshot model.SkillSnapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &snapshot)
	}
	return snapshots, nil
}
