package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/repomanager"
)

const tagSearchLimit = 10

// CatalogService manages tags and the labels that place them on photos.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager) *CatalogService {
	return &CatalogService{db: db, repomanager: m}
}

func (s *CatalogService) ListTags(ctx context.Context, userID int64) ([]*models.Tag, error) {
	return s.repomanager.Tags(s.db).List(ctx, userID)
}

func (s *CatalogService) SearchTags(ctx context.Context, userID int64, term string) ([]*models.Tag, error) {
	return s.repomanager.Tags(s.db).Search(ctx, userID, strings.TrimSpace(term), tagSearchLimit)
}

func (s *CatalogService) CreateTag(ctx context.Context, userID int64, t models.Tag) (*models.Tag, error) {
	t.Tag = strings.TrimSpace(t.Tag)
	if t.Tag == "" {
		return nil, common.Validationf("No tag name provided.")
	}
	t.UserID = userID

	var created *models.Tag
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tags(tx)
		if t.ParentID != nil {
			if _, err := repo.Get(ctx, userID, *t.ParentID); err != nil {
				return err
			}
		}
		var err error
		created, err = repo.Create(ctx, &t)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *CatalogService) ListLabels(ctx context.Context, userID, photoID int64) ([]*models.Label, error) {
	if _, err := s.repomanager.Photos(s.db).Get(ctx, userID, photoID); err != nil {
		return nil, err
	}
	return s.repomanager.Labels(s.db).ListByPhoto(ctx, userID, photoID)
}

// CreateLabel tags a photo region. Both the photo and the tag must belong
// to the user.
func (s *CatalogService) CreateLabel(ctx context.Context, userID int64, l models.Label) (*models.Label, error) {
	l.UserID = userID
	var created *models.Label
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Photos(tx).Get(ctx, userID, l.PhotoID); err != nil {
			return err
		}
		if _, err := s.repomanager.Tags(tx).Get(ctx, userID, l.TagID); err != nil {
			return err
		}
		var err error
		created, err = s.repomanager.Labels(tx).Create(ctx, &l)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *CatalogService) UpdateLabel(ctx context.Context, userID, id int64, upd models.LabelUpdate) (*models.Label, error) {
	var l *models.Label
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Labels(tx)
		var err error
		if l, err = repo.Get(ctx, userID, id); err != nil {
			return err
		}
		if upd.TagID != nil {
			if _, err := s.repomanager.Tags(tx).Get(ctx, userID, *upd.TagID); err != nil {
				return err
			}
		}
		upd.ApplyTo(l)
		return repo.Update(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (s *CatalogService) DeleteLabel(ctx context.Context, userID, id int64) error {
	return s.repomanager.Labels(s.db).Delete(ctx, userID, id)
}
