package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/jobportal/internal/database"
	"github.com/deppfellow/jobportal/internal/model"
)

const companyColumns = `company_id, name, location, industry`

type CompanyRepository struct {
	db *database.Database
}

func NewCompanyRepository(db *database.Database) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Save(ctx context.Context, c *model.Company) error {
	id, err := insertReturningID(ctx, r.db, "companies.save", `
		INSERT INTO companies (name, location, industry)
		VALUES (@name, @location, @industry)
		RETURNING company_id`,
		pgx.NamedArgs{
			"name":     c.Name,
			"location": c.Location,
			"industry": c.Industry,
		})
	if err != nil {
		return err
	}

	c.ID = id
	return nil
}

func (r *CompanyRepository) Update(ctx context.Context, c *model.Company) (bool, error) {
	return execAffected(ctx, r.db, "companies.update", `
		UPDATE companies
		SET name = @name, location = @location, industry = @industry
		WHERE company_id = @company_id`,
		pgx.NamedArgs{
			"company_id": c.ID,
			"name":       c.Name,
			"location":   c.Location,
			"industry":   c.Industry,
		})
}

func (r *CompanyRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return execAffected(ctx, r.db, "companies.delete", `DELETE FROM companies WHERE company_id = $1`, id)
}

func (r *CompanyRepository) FindByID(ctx context.Context, id int64) (*model.Company, error) {
	return collectOne[model.Company](ctx, r.db, "companies.find_by_id",
		`SELECT `+companyColumns+` FROM companies WHERE company_id = $1`, id)
}

func (r *CompanyRepository) FindByName(ctx context.Context, name string) (*model.Company, error) {
	return collectOne[model.Company](ctx, r.db, "companies.find_by_name",
		`SELECT `+companyColumns+` FROM companies WHERE name = $1 ORDER BY company_id LIMIT 1`, name)
}

func (r *CompanyRepository) FindAll(ctx context.Context) ([]model.Company, error) {
	return collectAll[model.Company](ctx, r.db, "companies.find_all",
		`SELECT `+companyColumns+` FROM companies ORDER BY company_id`)
}
