package skills

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmaraujo/treinos/internal/dependencies/clock"
	"github.com/dmaraujo/treinos/internal/model"
	"github.com/dmaraujo/treinos/internal/storage"
)

// Service records skill snapshots so members can watch their training
// progress over time
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new skills service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Record validates and stores a snapshot for the user. At least one
// skill must be present.
func (s *Service) Record(ctx context.Context, userID model.UserID, snapshot model.SkillSnapshot) (*model.SkillSnapshot, error) {
	if snapshot.Empty() {
		return nil, model.ErrEmptySnapshot
	}
	for _, v := range []*model.SkillValue{
		snapshot.Sword, snapshot.Club, snapshot.Axe,
		snapshot.Distance, snapshot.Shielding, snapshot.Magic,
	} {
		if v == nil {
			continue
		}
		if v.Level < 0 || v.Percent < 0 || v.Percent > 99 {
			return nil, model.ErrInvalidSkill
		}
	}

	snapshot.ID = model.SnapshotID(uuid.NewString())
	snapshot.UserID = userID
	snapshot.RecordedAt = s.clock.Now()

	if err := s.storage.SaveSkillSnapshot(ctx, &snapshot); err != nil {
		return nil, err
	}

	s.logger.Info("skill snapshot recorded",
		slog.String("user_id", string(userID)),
		slog.String("snapshot_id", string(snapshot.ID)),
	)
	return &snapshot, nil
}

// History returns a user's snapshots, newest first. A limit of 0
// means no limit.
func (s *Service) History(ctx context.Context, userID model.UserID, limit int) ([]*model.SkillSnapshot, error) {
	snapshots, err := s.storage.GetSkillSnapshots(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Storage returns oldest first
	reversed := make([]*model.SkillSnapshot, 0, len(snapshots))
	for i := len(snapshots) - 1; i >= 0; i-- {
		reversed = append(reversed, snapshots[i])
	}
	if limit > 0 && len(reversed) > limit {
		reversed = reversed[:limit]
	}
	return reversed, nil
}
