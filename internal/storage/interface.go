package storage

import (
	"context"

	"github.com/dmaraujo/treinos/internal/model"
)

// Storage defines the interface for data persistence.
//
// Create* operations enforce name uniqueness and return the matching
// conflict sentinel (model.ErrUserExists, model.ErrPlayerExists) when
// the name is taken; callers recover by re-reading. Save* operations
// overwrite. List results are ordered oldest first by creation time.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByName(ctx context.Context, characterName string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)

	// Player operations
	CreatePlayer(ctx context.Context, player *model.Player) error
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByName(ctx context.Context, characterName string) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Report operations (append-only)
	SaveReport(ctx context.Context, report *model.Report) error
	GetReportsForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Report, error)
	GetReportsByReporter(ctx context.Context, reporterID model.UserID) ([]*model.Report, error)

	// Payment operations. A player may hold any number of payments per
	// training date; GetPaymentForPlayerOnDate returns the earliest
	// one, which is the payment that settles the day.
	SavePayment(ctx context.Context, payment *model.Payment) error
	DeletePayment(ctx context.Context, id model.PaymentID) error
	GetPaymentForPlayerOnDate(ctx context.Context, playerID model.PlayerID, trainingDate string) (*model.Payment, error)
	GetPaymentsForDate(ctx context.Context, trainingDate string) ([]*model.Payment, error)
	GetPaymentsForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Payment, error)
	GetPaymentsByUser(ctx context.Context, userID model.UserID) ([]*model.Payment, error)

	// Check-in operations. One check-in per reporter per player per
	// training date; SaveCheckIn returns model.ErrAlreadyCheckedIn for
	// a repeat.
	SaveCheckIn(ctx context.Context, checkIn *model.CheckIn) error
	GetCheckInsForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.CheckIn, error)
	GetCheckInsForDate(ctx context.Context, trainingDate string) ([]*model.CheckIn, error)

	// Reporter payout operations (append-only)
	SavePayout(ctx context.Context, payout *model.ReporterPayout) error
	GetPayoutsForReporter(ctx context.Context, reporterID model.UserID) ([]*model.ReporterPayout, error)

	// Skill snapshot operations
	SaveSkillSnapshot(ctx context.Context, snapshot *model.SkillSnapshot) error
	GetSkillSnapshots(ctx context.Context, userID model.UserID) ([]*model.SkillSnapshot, error)
}
