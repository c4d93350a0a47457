package services

import (
	"context"
	"database/sql"
	"io"
	"time"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/logging"
	"github.com/dmitrijs2005/fitlog/internal/server/blobstore"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/repomanager"
)

// PhotoUpload is a new photo with its bytes.
type PhotoUpload struct {
	Date     *models.Date
	Time     *string
	FileName string
	Body     io.Reader
	Size     int64
}

type PhotoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       blobstore.Store
	log         logging.Logger
	now         func() time.Time
}

func NewPhotoService(db *sql.DB, m repomanager.RepositoryManager, store blobstore.Store, log logging.Logger) *PhotoService {
	return &PhotoService{
		db:          db,
		repomanager: m,
		store:       store,
		log:         log.With("module", "photos"),
		now:         time.Now,
	}
}

// Upload records the photo and stores its bytes under the new id. The row
// is rolled back if the bytes cannot be stored.
func (s *PhotoService) Upload(ctx context.Context, userID int64, up PhotoUpload) (*models.Photo, error) {
	if up.Body == nil {
		return nil, common.Validationf("No file provided.")
	}
	t, err := normalizeTime(up.Time)
	if err != nil {
		return nil, err
	}
	p := &models.Photo{UserID: userID, Time: t, FileName: up.FileName}
	if up.Date != nil {
		p.Date = *up.Date
	} else {
		p.Date = models.DateOf(s.now())
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Photos(tx).Create(ctx, p); err != nil {
			return err
		}
		return s.store.Save(ctx, blobstore.PhotoKey(p.ID), up.Body, up.Size)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "photo uploaded", "user_id", userID, "id", p.ID, "size", up.Size)
	return p, nil
}

func (s *PhotoService) List(ctx context.Context, userID int64, filter models.PhotoFilter) ([]*models.Photo, error) {
	return s.repomanager.Photos(s.db).List(ctx, userID, filter)
}

// Get returns the photo with a short-lived download URL.
func (s *PhotoService) Get(ctx context.Context, userID, id int64) (*models.Photo, error) {
	p, err := s.repomanager.Photos(s.db).Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	url, err := s.store.PresignGet(ctx, blobstore.PhotoKey(p.ID))
	if err != nil {
		s.log.Warn(ctx, "presign failed", "id", p.ID, "error", err)
	} else {
		p.FileURL = url
	}
	return p, nil
}

func (s *PhotoService) Update(ctx context.Context, userID, id int64, upd models.PhotoUpdate) (*models.Photo, error) {
	t, err := normalizeTime(upd.Time)
	if err != nil {
		return nil, err
	}
	var p *models.Photo
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Photos(tx)
		var err error
		if p, err = repo.Get(ctx, userID, id); err != nil {
			return err
		}
		if upd.Date != nil && !upd.Date.Equal(p.Date) {
			if err := s.checkDateUnlocked(ctx, tx, p); err != nil {
				return err
			}
		}
		upd.ApplyTo(p)
		if upd.Time != nil {
			p.Time = t
		}
		return repo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// checkDateUnlocked rejects a date change while the photo is grouped or
// linked to a food entry, since both must share its date.
func (s *PhotoService) checkDateUnlocked(ctx context.Context, tx dbx.DBTX, p *models.Photo) error {
	if p.GroupID != nil {
		return common.Validationf("Photo %d belongs to group %d; remove it from the group before changing its date.", p.ID, *p.GroupID)
	}
	n, err := s.repomanager.Foods(tx).CountByPhoto(ctx, p.UserID, p.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return common.Validationf("Photo %d is linked to %d food entries; unlink it before changing its date.", p.ID, n)
	}
	return nil
}

// Data returns the stored bytes of the user's photo.
func (s *PhotoService) Data(ctx context.Context, userID, id int64) ([]byte, error) {
	p, err := s.repomanager.Photos(s.db).Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.store.Fetch(ctx, blobstore.PhotoKey(p.ID))
}

// Delete unlinks the photo from food entries and removes it. The bytes are
// removed after the commit; a failure there only leaves an orphaned object.
func (s *PhotoService) Delete(ctx context.Context, userID, id int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Photos(tx).Get(ctx, userID, id); err != nil {
			return err
		}
		if err := s.repomanager.Foods(tx).ClearPhoto(ctx, userID, id); err != nil {
			return err
		}
		return s.repomanager.Photos(tx).Delete(ctx, userID, id)
	})
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, blobstore.PhotoKey(id)); err != nil {
		s.log.Warn(ctx, "photo blob not deleted", "id", id, "error", err)
	}
	s.log.Info(ctx, "photo deleted", "user_id", userID, "id", id)
	return nil
}

func (s *PhotoService) ListGroups(ctx context.Context, userID int64, filter models.PhotoGroupFilter) ([]*models.PhotoGroup, error) {
	return s.repomanager.PhotoGroups(s.db).List(ctx, userID, filter)
}

func (s *PhotoService) CreateGroup(ctx context.Context, userID int64, g models.PhotoGroup) (*models.PhotoGroup, error) {
	if g.Date.IsZero() {
		return nil, common.Validationf("No valid date provided.")
	}
	g.UserID = userID
	var created *models.PhotoGroup
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.PhotoGroups(tx)
		if g.ParentID != nil {
			if _, err := repo.Get(ctx, userID, *g.ParentID); err != nil {
				return err
			}
		}
		var err error
		created, err = repo.Create(ctx, &g)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
