package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/logging"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/repomanager"
)

// BodyService records body-weight measurements. Unlike food figures, a
// weight that does not parse is rejected.
type BodyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	summaries   *SummaryCache
	log         logging.Logger
}

func NewBodyService(db *sql.DB, m repomanager.RepositoryManager, summaries *SummaryCache, log logging.Logger) *BodyService {
	return &BodyService{db: db, repomanager: m, summaries: summaries, log: log.With("module", "body")}
}

func (s *BodyService) List(ctx context.Context, userID int64) ([]*models.Bodyweight, error) {
	return s.repomanager.Bodyweights(s.db).List(ctx, userID)
}

func (s *BodyService) Create(ctx context.Context, userID int64, in models.BodyweightInput) (*models.Bodyweight, error) {
	if in.Bodyweight == nil || !in.Bodyweight.Valid {
		return nil, common.Validationf("No valid bodyweight provided.")
	}
	if in.Date == nil || in.Date.IsZero() {
		return nil, common.Validationf("No valid date provided.")
	}
	t, err := normalizeTime(in.Time)
	if err != nil {
		return nil, err
	}

	b, err := s.repomanager.Bodyweights(s.db).Create(ctx, &models.Bodyweight{
		UserID:     userID,
		Date:       *in.Date,
		Time:       t,
		Bodyweight: in.Bodyweight.Float64,
	})
	if err != nil {
		return nil, err
	}
	s.summaries.Invalidate(userID)
	s.log.Info(ctx, "bodyweight recorded", "user_id", userID, "id", b.ID)
	return b, nil
}

// Update changes only the fields present in in.
func (s *BodyService) Update(ctx context.Context, userID, id int64, in models.BodyweightInput) (*models.Bodyweight, error) {
	if in.Bodyweight != nil && !in.Bodyweight.Valid {
		return nil, common.Validationf("No valid bodyweight provided.")
	}
	t, err := normalizeTime(in.Time)
	if err != nil {
		return nil, err
	}

	var b *models.Bodyweight
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Bodyweights(tx)
		var err error
		if b, err = repo.Get(ctx, userID, id); err != nil {
			return err
		}
		if in.Date != nil {
			b.Date = *in.Date
		}
		if in.Time != nil {
			b.Time = t
		}
		if in.Bodyweight != nil {
			b.Bodyweight = in.Bodyweight.Float64
		}
		return repo.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	s.summaries.Invalidate(userID)
	return b, nil
}

func (s *BodyService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repomanager.Bodyweights(s.db).Delete(ctx, userID, id); err != nil {
		return err
	}
	s.summaries.Invalidate(userID)
	return nil
}
