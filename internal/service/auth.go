package service

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/sqlerr"
)

// AuthService registers users and checks their credentials.
type AuthService struct {
	users    model.UserRepository
	notifier Notifier
	cost     int
	logger   *zerolog.Logger
}

func NewAuthService(users model.UserRepository, notifier Notifier, bcryptCost int, logger *zerolog.Logger) *AuthService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &AuthService{
		users:    users,
		notifier: notifier,
		cost:     bcryptCost,
		logger:   logger,
	}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,bytesmax=72"`
	Location string `json:"location" validate:"max=100"`
	Skills   string `json:"skills" validate:"max=500"`
}

func (in *RegisterInput) Validate() error {
	return validate.Struct(in)
}

// Register creates a user after checking the email is free.
//
// The lookup runs before any insert; the unique constraint on email
// still catches a concurrent registration, which is reported the same way.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := model.NewUser(in.Name, in.Email, hash, strings.TrimSpace(in.Location), model.JoinSkills(model.SplitSkills(in.Skills)))
	if err := s.users.Save(ctx, user); err != nil {
		if sqlerr.IsConstraint(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")

	if err := s.notifier.NotifyWelcome(ctx, user); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to queue welcome email")
	}

	return user, nil
}

// Authenticate returns the user whose email and password match, or
// (nil, nil) for an unknown email or a wrong password.
//
// A stored password that is not a bcrypt hash is a legacy plaintext
// value; it is compared in constant time and re-hashed on success.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil || user == nil {
		return nil, err
	}

	if isBcryptHash(user.PasswordHash) {
		err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
		if err != nil {
			return nil, nil
		}
		return user, nil
	}

	if subtle.ConstantTimeCompare([]byte(user.PasswordHash), []byte(password)) != 1 {
		return nil, nil
	}

	s.upgradeLegacyPassword(ctx, user, password)
	return user, nil
}

func (s *AuthService) upgradeLegacyPassword(ctx context.Context, user *model.User, password string) {
	hash, err := s.HashPassword(password)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to hash legacy password")
		return
	}

	previous := user.PasswordHash
	user.PasswordHash = hash
	if _, err := s.users.Update(ctx, user); err != nil {
		user.PasswordHash = previous
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to upgrade legacy password")
		return
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("upgraded legacy password hash")
}

// HashPassword hashes password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func isBcryptHash(stored string) bool {
	if !strings.HasPrefix(stored, "$2") {
		return false
	}
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}

// credentialsOrError turns absence into ErrInvalidCredentials.
func credentialsOrError(user *model.User, err error) (*model.User, error) {
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login is Authenticate for callers that need an error on failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	return credentialsOrError(s.Authenticate(ctx, email, password))
}
