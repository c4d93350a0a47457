package services

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/logging"
	"github.com/dmitrijs2005/fitlog/internal/server/auth"
	"github.com/dmitrijs2005/fitlog/internal/server/config"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// UserService handles registration, login and profiles.
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	summaries                   *SummaryCache
	log                         logging.Logger
	now                         func() time.Time
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, summaries *SummaryCache, log logging.Logger) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		summaries:                   summaries,
		log:                         log.With("module", "users"),
		now:                         time.Now,
	}
}

// Register creates a user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, common.Validationf("Invalid e-mail address.")
	}
	if len(password) < minPasswordLength {
		return nil, common.Validationf("Password must be at least %d characters long.", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Name:           strings.TrimSpace(name),
		Email:          email,
		Password:       hash,
		PreferredUnits: models.UnitsKilograms,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login checks the credentials and returns a signed access token. Unknown
// e-mails and wrong passwords are indistinguishable.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword(user.Password, []byte(password)) != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	if err := repo.TouchActivity(ctx, user.ID, s.now()); err != nil {
		s.log.Warn(ctx, "last activity not recorded", "user_id", user.ID, "error", err)
	}
	return token, nil
}

// Get returns the full record for the user themself and the public part
// for anyone else.
func (s *UserService) Get(ctx context.Context, viewerID, id int64) (any, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewerID == id {
		return u, nil
	}
	return u.Public(), nil
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, upd models.ProfileUpdate) (*models.User, error) {
	if upd.PreferredUnits != nil {
		switch *upd.PreferredUnits {
		case models.UnitsKilograms, models.UnitsPounds:
		default:
			return nil, common.Validationf("Preferred units must be %q or %q.", models.UnitsKilograms, models.UnitsPounds)
		}
	}
	var u *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		var err error
		if u, err = repo.GetByID(ctx, userID); err != nil {
			return err
		}
		upd.ApplyTo(u)
		return repo.UpdateProfile(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	// Summaries are rendered in the preferred units.
	s.summaries.Invalidate(userID)
	return u, nil
}
