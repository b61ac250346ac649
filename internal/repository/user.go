package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/jobportal/internal/database"
	"github.com/deppfellow/jobportal/internal/model"
)

const userColumns = `user_id, name, email, password_hash, location, skills`

type UserRepository struct {
	db *database.Database
}

func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Save(ctx context.Context, u *model.User) error {
	id, err := insertReturningID(ctx, r.db, "users.save", `
		INSERT INTO users (name, email, password_hash, location, skills)
		VALUES (@name, @email, @password_hash, @location, @skills)
		RETURNING user_id`,
		pgx.NamedArgs{
			"name":          u.Name,
			"email":         u.Email,
			"password_hash": u.PasswordHash,
			"location":      u.Location,
			"skills":        u.Skills,
		})
	if err != nil {
		return err
	}

	u.ID = id
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *model.User) (bool, error) {
	return execAffected(ctx, r.db, "users.update", `
		UPDATE users
		SET name = @name, email = @email, password_hash = @password_hash,
			location = @location, skills = @skills
		WHERE user_id = @user_id`,
		pgx.NamedArgs{
			"user_id":       u.ID,
			"name":          u.Name,
			"email":         u.Email,
			"password_hash": u.PasswordHash,
			"location":      u.Location,
			"skills":        u.Skills,
		})
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return execAffected(ctx, r.db, "users.delete", `DELETE FROM users WHERE user_id = $1`, id)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return collectOne[model.User](ctx, r.db, "users.find_by_id",
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
}

// FindByEmail is an exact, case-sensitive match on the unique email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return collectOne[model.User](ctx, r.db, "users.find_by_email",
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) FindBySkills(ctx context.Context, skills string) ([]model.User, error) {
	return collectAll[model.User](ctx, r.db, "users.find_by_skills",
		`SELECT `+userColumns+` FROM users WHERE skills ILIKE $1 ORDER BY user_id`,
		containsPattern(skills))
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	return collectAll[model.User](ctx, r.db, "users.find_all",
		`SELECT `+userColumns+` FROM users ORDER BY user_id`)
}
