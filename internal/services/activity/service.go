package activity

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

// Service tracks who was seen at the training grounds. Check-ins are
// observations, not accusations: they carry no fee and no deadline,
// only a record that a player showed up.
type Service struct {
	storage storage.Storage
	days    *trainingday.Service
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new activity service
func New(storage storage.Storage, days *trainingday.Service, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		days:    days,
		clock:   clock,
		logger:  logger,
	}
}

// CheckIn records that the reporter saw the named player training
// today. Each reporter can vouch for a player once per training day.
func (s *Service) CheckIn(ctx context.Context, reporterID model.UserID, characterName string) (*model.CheckIn, error) {
	name := strings.TrimSpace(characterName)
	if name == "" {
		return nil, model.ErrEmptyCharacterName
	}

	reporter, err := s.storage.GetUser(ctx, reporterID)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(name, reporter.CharacterName) {
		return nil, model.ErrSelfCheckIn
	}

	now := s.clock.Now()
	player, err := s.findOrCreatePlayer(ctx, name, now)
	if err != nil {
		return nil, err
	}

	checkIn := &model.CheckIn{
		ID:           model.CheckInID(uuid.NewString()),
		PlayerID:     player.ID,
		ReporterID:   reporterID,
		TrainingDate: s.days.TrainingDate(now),
		CreatedAt:    now,
	}
	if err := s.storage.SaveCheckIn(ctx, checkIn); err != nil {
		return nil, err
	}

	s.logger.Info("player checked in",
		slog.String("player", player.CharacterName),
		slog.String("reporter", reporter.CharacterName),
		slog.String("training_date", checkIn.TrainingDate),
	)
	return checkIn, nil
}

// Board folds check-in history into per-player activity, most active
// first. Hidden players are left off the board.
func (s *Service) Board(ctx context.Context) ([]*model.PlayerActivity, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	today := s.days.TrainingDate(s.clock.Now())
	var board []*model.PlayerActivity
	for _, player := range players {
		if player.Hidden {
			continue
		}

		checkIns, err := s.storage.GetCheckInsForPlayer(ctx, player.ID)
		if err != nil {
			return nil, err
		}
		if len(checkIns) == 0 {
			continue
		}

		entry := &model.PlayerActivity{
			Player:        *player,
			TotalCheckIns: len(checkIns),
		}
		for _, checkIn := range checkIns {
			if entry.LastCheckIn == nil || checkIn.CreatedAt.After(*entry.LastCheckIn) {
				t := checkIn.CreatedAt
				entry.LastCheckIn = &t
			}
			if checkIn.TrainingDate == today {
				entry.CheckInsToday++
			}
		}
		entry.ActiveToday = entry.CheckInsToday > 0
		board = append(board, entry)
	}

	sort.Slice(board, func(i, j int) bool {
		if board[i].TotalCheckIns != board[j].TotalCheckIns {
			return board[i].TotalCheckIns > board[j].TotalCheckIns
		}
		li, lj := board[i].LastCheckIn, board[j].LastCheckIn
		if li != nil && lj != nil && !li.Equal(*lj) {
			return li.After(*lj)
		}
		return board[i].Player.CharacterName < board[j].Player.CharacterName
	})
	return board, nil
}

// findOrCreatePlayer looks a player up by character name, creating
// the record on first sight. A lost creation race is recovered by
// re-reading.
func (s *Service) findOrCreatePlayer(ctx context.Context, characterName string, now time.Time) (*model.Player, error) {
	player, err := s.storage.GetPlayerByName(ctx, characterName)
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
	if err := s.storage.CreatePlayer(ctx, player); err != nil {
		if errors.Is(err, model.ErrPlayerExists) {
			return s.storage.GetPlayerByName(ctx, characterName)
		}
		return nil, err
	}
	return player, nil
}
