// Package account registers users, checks their credentials and manages
// their profile.
package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rogerio-castellano/ges-stock/internal/logger"
	"github.com/rogerio-castellano/ges-stock/internal/models"
	"github.com/rogerio-castellano/ges-stock/internal/repo"
	"github.com/rogerio-castellano/ges-stock/internal/txlog"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrWeakPassword       = errors.New("password must have at least 6 characters")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("no authenticated user")
)

// Revoker invalidates a token before it expires.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type Service struct {
	users   repo.UserRepository
	history txlog.Recorder
	revoker Revoker
	log     *logger.Logger
	cost    int
	now     func() time.Time
}

func NewService(users repo.UserRepository, history txlog.Recorder, revoker Revoker, log *logger.Logger) *Service {
	return &Service{
		users:   users,
		history: history,
		revoker: revoker,
		log:     log,
		cost:    bcrypt.DefaultCost,
		now:     time.Now,
	}
}

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	CompanyName     string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return models.User{}, ErrMissingFields
	}
	if in.Password != in.ConfirmPassword {
		return models.User{}, ErrPasswordMismatch
	}
	if len(in.Password) < MinPasswordLength {
		return models.User{}, ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return models.User{}, err
	}

	now := s.now().UTC()
	user, err := s.users.CreateUser(ctx, models.User{
		Email:        in.Email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		CompanyName:  strings.TrimSpace(in.CompanyName),
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		return models.User{}, ErrEmailTaken
	}
	if err != nil {
		return models.User{}, err
	}

	s.log.Info("user registered", zap.String("owner_id", user.ID))
	return user, nil
}

// Authenticate returns the user whose email and password match. Unknown
// emails and wrong passwords both return ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrUserNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) Profile(ctx context.Context, ownerID string) (models.User, error) {
	if ownerID == "" {
		return models.User{}, ErrUnauthenticated
	}
	return s.users.GetByID(ctx, ownerID)
}

type ProfileInput struct {
	FirstName   string
	LastName    string
	CompanyName string
}

// UpdateProfile replaces the name fields and logs their old and new values.
func (s *Service) UpdateProfile(ctx context.Context, ownerID string, in ProfileInput) (models.User, error) {
	if ownerID == "" {
		return models.User{}, ErrUnauthenticated
	}
	user, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return models.User{}, err
	}

	details := models.ProfileEditedDetails{
		OldFirstName:   optional(user.FirstName),
		OldLastName:    optional(user.LastName),
		OldCompanyName: optional(user.CompanyName),
	}

	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.CompanyName = strings.TrimSpace(in.CompanyName)
	user.UpdatedAt = s.now().UTC()

	updated, err := s.users.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}

	details.NewFirstName = optional(updated.FirstName)
	details.NewLastName = optional(updated.LastName)
	details.NewCompanyName = optional(updated.CompanyName)
	s.history.Append(ctx, ownerID, models.TypeEditProfile, details)
	return updated, nil
}

type PasswordChange struct {
	Current string
	New     string
	Confirm string
}

func (s *Service) ChangePassword(ctx context.Context, ownerID string, in PasswordChange) error {
	if ownerID == "" {
		return ErrUnauthenticated
	}
	if in.Current == "" || in.New == "" || in.Confirm == "" {
		return ErrMissingFields
	}
	if in.New != in.Confirm {
		return ErrPasswordMismatch
	}
	if len(in.New) < MinPasswordLength {
		return ErrWeakPassword
	}

	user, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Current)) != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.New), s.cost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashed)
	user.UpdatedAt = s.now().UTC()
	if _, err := s.users.UpdateUser(ctx, user); err != nil {
		return err
	}

	s.history.Append(ctx, ownerID, models.TypeChangePassword, nil)
	return nil
}

// Logout records the logout and then revokes the token it was made with.
func (s *Service) Logout(ctx context.Context, ownerID, tokenID string, expiresAt time.Time) error {
	if ownerID == "" {
		return ErrUnauthenticated
	}
	s.history.Append(ctx, ownerID, models.TypeLogout, nil)

	if err := s.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		s.log.Error("token not revoked", zap.String("owner_id", ownerID), zap.Error(err))
		return err
	}
	return nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
