package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/sqlerr"
)

type UserService struct {
	users  model.UserRepository
	auth   *AuthService
	logger *zerolog.Logger
}

func NewUserService(users model.UserRepository, auth *AuthService, logger *zerolog.Logger) *UserService {
	return &UserService{users: users, auth: auth, logger: logger}
}

// ProfileUpdate lists the fields to change. A nil or blank field keeps
// the current value, which is how "press Enter to keep" reaches us.
type ProfileUpdate struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,bytesmax=72"`
	Location *string `json:"location" validate:"omitempty,max=100"`
	Skills   *string `json:"skills" validate:"omitempty,max=500"`
}

func (p *ProfileUpdate) Validate() error {
	return validate.Struct(p)
}

// changed returns the trimmed value when p carries a non-blank one.
func changed(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	v := strings.TrimSpace(*p)
	return v, v != ""
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies upd to the stored user and returns the result.
// A new password is hashed; a new email must not belong to anyone else.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*model.User, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if v, ok := changed(upd.Name); ok {
		user.Name = v
	}
	if v, ok := changed(upd.Location); ok {
		user.Location = v
	}
	if v, ok := changed(upd.Skills); ok {
		user.Skills = model.JoinSkills(model.SplitSkills(v))
	}
	if v, ok := changed(upd.Email); ok && v != user.Email {
		other, err := s.users.FindByEmail(ctx, v)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrEmailTaken
		}
		user.Email = v
	}
	// Passwords are not trimmed.
	if upd.Password != nil && *upd.Password != "" {
		hash, err := s.auth.HashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	ok, err := s.users.Update(ctx, user)
	if err != nil {
		if sqlerr.IsConstraint(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("profile updated")
	return user, nil
}
