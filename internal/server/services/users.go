package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/cryptox"
	"github.com/dmitrijs2005/bookmarks/internal/server/auth"
	"github.com/dmitrijs2005/bookmarks/internal/server/config"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

const maxUsernameLen = 64

// generateToken is a test seam for auth.GenerateToken.
var generateToken = auth.GenerateToken

// Credentials is the register/login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var errUnprintableUsername = errors.New("must be valid UTF-8 without control characters")

// printable rejects what the store cannot hold in a text column: invalid
// UTF-8 and control characters such as NUL.
func printable(value interface{}) error {
	s, _ := value.(string)
	if !utf8.ValidString(s) {
		return errUnprintableUsername
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return errUnprintableUsername
		}
	}
	return nil
}

func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required, validation.Length(1, maxUsernameLen), validation.By(printable)),
		validation.Field(&c.Password, validation.Required, validation.Length(1, cryptox.MaxPasswordLen)),
	)
}

// Session is what a successful login hands back to the caller.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// AttemptRecorder receives login outcomes. Implementations must not block
// the caller and must not fail it.
type AttemptRecorder interface {
	Record(ctx context.Context, userID *string, status models.AttemptStatus)
}

// UserService registers users and issues access tokens.
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	attempts                    AttemptRecorder
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
	storeTimeout                time.Duration
	dummyHash                   string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, attempts AttemptRecorder, cfg *config.Config) (*UserService, error) {
	// Compared against when the username is unknown, so both failure paths
	// pay for one bcrypt comparison.
	dummy, err := cryptox.HashPassword([]byte(uuid.NewString()), cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	return &UserService{
		db:                          db,
		repomanager:                 m,
		attempts:                    attempts,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  cfg.BcryptCost,
		storeTimeout:                cfg.StoreTimeout,
		dummyHash:                   dummy,
	}, nil
}

// Register creates a user. Duplicate usernames are detected by the store's
// unique constraint and reported as common.ErrDuplicateUsername.
func (s *UserService) Register(ctx context.Context, creds Credentials) (*models.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, validationError(err)
	}

	hash, err := cryptox.HashPassword([]byte(creds.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		UserName:     creds.Username,
		PasswordHash: hash,
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	created, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, storeError(err)
	}
	return created, nil
}

// Login checks the credentials and issues a token. Unknown usernames and
// wrong passwords both return common.ErrInvalidCredentials. Every decided
// attempt is handed to the attempt recorder.
func (s *UserService) Login(ctx context.Context, creds Credentials) (*Session, error) {
	// A name Register would refuse cannot belong to anyone.
	if validation.Validate(creds.Username, validation.Length(0, maxUsernameLen), validation.By(printable)) != nil {
		return nil, s.unknownUser(ctx, creds)
	}

	lookupCtx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	user, err := s.repomanager.Users(s.db).GetUserByLogin(lookupCtx, creds.Username)
	cancel()

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, s.unknownUser(ctx, creds)
		}
		return nil, storeError(err)
	}

	if err := cryptox.ComparePassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		s.attempts.Record(ctx, &user.ID, models.AttemptFailure)
		if errors.Is(err, cryptox.ErrMismatchedPassword) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	token, err := generateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		s.attempts.Record(ctx, &user.ID, models.AttemptFailure)
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	s.attempts.Record(ctx, &user.ID, models.AttemptSuccess)

	return &Session{Token: token, UserID: user.ID}, nil
}

func (s *UserService) unknownUser(ctx context.Context, creds Credentials) error {
	_ = cryptox.ComparePassword(s.dummyHash, []byte(creds.Password))
	s.attempts.Record(ctx, nil, models.AttemptFailure)
	return common.ErrInvalidCredentials
}

// Authenticate resolves the user id carried by a bearer token.
func (s *UserService) Authenticate(token string) (string, error) {
	if token == "" {
		return "", common.ErrorUnauthorized
	}
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return userID, nil
}
