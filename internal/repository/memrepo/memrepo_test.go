package memrepo

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/jobportal/internal/errs"
	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/repository"
	"github.com/deppfellow/jobportal/internal/repository/repotest"
	"github.com/deppfellow/jobportal/internal/sqlerr"
)

func TestRepositoryContract(t *testing.T) {
	repotest.Run(t, func(t *testing.T) *repository.Repositories {
		return New().Repositories()
	})
}

func TestLookupsReturnCopies(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	c := model.NewCompany("Acme", "Paris", "Retail")
	if err := repos.Companies.Save(ctx, c); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, _ := repos.Companies.FindByID(ctx, c.ID)
	got.Name = "Changed"

	again, _ := repos.Companies.FindByID(ctx, c.ID)
	if again.Name != "Acme" {
		t.Fatalf("mutating a lookup result leaked into the store: %q", again.Name)
	}
}

func TestFailWith(t *testing.T) {
	ctx := context.Background()
	store := New()
	repos := store.Repositories()

	store.FailWith(sqlerr.ErrConnection)

	_, err := repos.Users.FindByEmail(ctx, "a@example.com")
	var opErr *sqlerr.OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected *sqlerr.OpError, got %T", err)
	}
	if opErr.Op != "users.find_by_email" || opErr.Kind != sqlerr.KindConnectivity {
		t.Fatalf("unexpected error %+v", opErr)
	}

	store.FailWith(nil)
	if _, err := repos.Users.FindByEmail(ctx, "a@example.com"); err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
}

func TestRestrictedDeleteNamesDeletedEntity(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	u := model.NewUser("Dan", "dan@example.com", "hash", "", "")
	c := model.NewCompany("Acme", "", "")
	_ = repos.Users.Save(ctx, u)
	_ = repos.Companies.Save(ctx, c)
	j := model.NewJobPosting(c.ID, "Dev", "", "", "")
	_ = repos.JobPostings.Save(ctx, j)
	_ = repos.Applications.Save(ctx, model.NewApplication(j.ID, u.ID))

	_, err := repos.Users.Delete(ctx, u.ID)
	if !sqlerr.IsConstraint(err) {
		t.Fatalf("expected a constraint error, got %v", err)
	}

	var httpErr *errs.HTTPError
	if !errors.As(sqlerr.HandleError(err), &httpErr) {
		t.Fatalf("expected an HTTP error")
	}
	if httpErr.Status != http.StatusBadRequest || httpErr.Message != "The User is still referenced by other records" {
		t.Fatalf("unexpected mapping %d %q", httpErr.Status, httpErr.Message)
	}
}
