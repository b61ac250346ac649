// Package repotest holds the behaviour every repository implementation
// must share, run against both the Postgres and the in-memory stores.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/repository"
	"github.com/deppfellow/jobportal/internal/sqlerr"
)

// Open returns empty repositories for one subtest.
type Open func(t *testing.T) *repository.Repositories

// Run executes the shared repository suite.
func Run(t *testing.T, open Open) {
	tests := []struct {
		name string
		fn   func(t *testing.T, r *repository.Repositories)
	}{
		{"UserRoundTrip", testUserRoundTrip},
		{"UserSkillsSearch", testUserSkillsSearch},
		{"UpdateIsIdempotent", testUpdateIsIdempotent},
		{"DeleteThenAbsent", testDeleteThenAbsent},
		{"DuplicateEmailIsConstraint", testDuplicateEmail},
		{"JobPostingSearch", testJobPostingSearch},
		{"ForeignKeyOnSave", testForeignKeyOnSave},
		{"RestrictOnDelete", testRestrictOnDelete},
		{"Applications", testApplications},
		{"Interviews", testInterviews},
		{"InterviewSaveStoresDate", testInterviewSaveStoresDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, open(t))
		})
	}
}

type fixture struct {
	user    *model.User
	company *model.Company
	job     *model.JobPosting
}

func seed(t *testing.T, r *repository.Repositories) fixture {
	t.Helper()
	ctx := context.Background()

	user := model.NewUser("Alice", "alice@example.com", "hash", "Berlin", "Java, SQL")
	if err := r.Users.Save(ctx, user); err != nil {
		t.Fatalf("save user: %v", err)
	}

	company := model.NewCompany("Acme", "New York", "Software")
	if err := r.Companies.Save(ctx, company); err != nil {
		t.Fatalf("save company: %v", err)
	}

	job := model.NewJobPosting(company.ID, "Backend Engineer", "Build APIs", "New York", "Java, SQL")
	if err := r.JobPostings.Save(ctx, job); err != nil {
		t.Fatalf("save job: %v", err)
	}

	return fixture{user: user, company: company, job: job}
}

func testUserRoundTrip(t *testing.T, r *repository.Repositories) {
	ctx := context.Background()
	f := seed(t, r)

	if f.user.ID < 1 {
		t.Fatalf("expected an assigned id, got %d", f.user.ID)
	}

	got, err := r.Users.FindByID(ctx, f.user.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID = %v, %v", got, err)
	}
	if *got != *f.user {
		t.Fatalf("FindByID = %+v, want %+v", *got, *f.user)
	}

	byEmail, err := r.Users.FindByEmail(ctx, "alice@example.com")
	if err != nil || byEmail == nil || byEmail.ID != f.user.ID {
		t.Fatalf("FindByEmail = %v, %v", byEmail, err)
	}

	missing, err := r.Users.FindByEmail(ctx, "nobody@example.com")
	if err != nil || missing != nil {
		t.Fatalf("expected absence for unknown email, got %v, %v", missing, err)
	}

	all, err := r.Users.FindAll(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("FindAll = %v, %v", all, err)
	}
}

func testUserSkillsSearch(t *testing.T, r *repository.Repositories) {
	ctx := context.Background()
	seed(t, r)

	bob := model.NewUser("Bob", "bob@example.com", "hash", "Remote", "Go, Kubernetes")
	if err := r.Users.Save(ctx, bob); err != nil {
		t.Fatalf("save: %v", err)
	}

	tests := []struct {
		term string
		want int
	}{
		{"sql", 1},
		{"GO", 1},
		{"", 2},
		{"%", 0},
		{"Rust", 0},
	}

	for _, tt := range tests {
		got, err := r.Users.FindBySkills(ctx, tt.term)
		if err != nil {
			t.Fatalf("FindBySkills(%q): %v", tt.term, err)
		}
		if len(got) != tt.want {
			t.Fatalf("FindBySkills(%q) returned %d users, want %d", tt.term, len(got), tt.want)
		}
	}
}

func testUpdateIsIdempotent(t *testing.T, r *repository.Repositories) {
	ctx := context.Background()
	f := seed(t, r)

	f.company.Industry = "Fintech"
	for range 2 {
		ok, err := r.Companies.Update(ctx, f.company)
		if err != nil || !ok {
			t.Fatalf("Update = %v, %v", ok, err)
		}
	}

	got, err := r.Companies.FindByID(ctx, f.company.ID)
	if err != nil || got == nil || got.Industry != "Fintech" {
		t.Fatalf("FindByID after update = %v, %v", got, err)
	}

	ghost := *f.company
	ghost.ID = 999999
	ok, err := r.Companies.Update(ctx, &ghost)
	if err != nil || ok {
		t.Fatalf("update of a missing row = %v, %v", ok, err)
	}
}

func testDeleteThenAbsent(t *testing.T, r *repository.Repositories) {
	ctx := context.Background()

	user := model.NewUser("Carol", "carol@example.com", "hash", "", "")
	if err := r.Users.Save(ctx, user); err != nil {
		t.Fatalf("save: %v", err)
	}

	ok, err := r.Users.Delete(ctx, user.ID)
	if err != nil || !ok {
		t.Fatalf("Delete = %v, %v", ok, err)
	}

	got, err := r.Users.FindByID(ctx, user.ID)
	if err != nil || got != nil {
		t.Fatalf("expected absence after delete, got %v, %v", got, err)
	}

	ok, err = r.Users.Delete(ctx, user.ID)
	if err != nil || ok {
		t.Fatalf("second Delete = %v, %v", ok, err)
	}
}

func testDuplicateEmail(t *testing.T, r *repository.Repositories) {
	ctx := context.Background()
	seed(t, r)

	dup := model.NewUser("Alice Again", "alice@example.com", "hash", "", "")
	err := r.Users.Save(ctx, dup)
	if !sqlerr.IsConstraint(err) {
		t.Fatalf("expected a constraint error, got %v", err)
	}
}

func testJobPostingSearch(t *testing.T, r *repository.Repositories) {
	ctx := context.Background()
	f := seed(t, r)

	if f.job.DatePosted != model.Today() {
		t.Fatalf("expected today's date, got %v", f.job.DatePosted)
	}

	bySkill, err := r.JobPostings.SearchBySkills(ctx, "SQL")
	if err != nil || len(bySkill) != 1 || bySkill[0].ID != f.job.ID {
		t.Fatalf("SearchBySkills(SQL) = %v, %v", bySkill, err)
	}

	remote, err := r.JobPostings.SearchByLocation(ctx, "Remote")
	if err != nil || len(remote) != 0 {
		t.Fatalf("SearchByLocation(Remote) = %v, %v", remote, err)
	}

	york, err := r.JobPostings.SearchByLocation(ctx, "york")
	if err != nil || len(york) != 1 {
		t.Fatalf("SearchByLocation(york) = %v, %v", york, err)
	}

	byCompany, err := r.JobPostings.FindByCompanyID(ctx, f.company.ID)
	if err != nil || len(byCompany) != 1 {
		t.Fatalf("FindByCompanyID = %v, %v", byCompany, err)
	}

	company, err := r.Companies.FindByName(ctx, "Acme")
	if err != nil || company == nil || company.ID != f.company.ID {
		t.Fatalf("FindByName = %v, %v", company, err)
	}

	none, err := r.Companies.FindByName(ctx, "acme")
	if err != nil || none != nil {
		t.Fatalf("FindByName is exact, got %v, %v", none, err)
	}
}

func testForeignKeyOnSave(t *testing.T, r *repository.Repositories) {
	ctx := context.Background()

	orphan := model.NewJobPosting(424242, "Ghost", "", "", "")
	if err := r.JobPostings.Save(ctx, orphan); !sqlerr.IsConstraint(err) {
		t.Fatalf("expected a constraint error, got %v", err)
	}
}

func testRestrictOnDelete(t *testing.T, r *repository.Repositories) {
	ctx := context.Background()
	f := seed(t, r)

	ok, err := r.Companies.Delete(ctx, f.company.ID)
	if ok || !sqlerr.IsConstraint(err) {
		t.Fatalf("Delete of a referenced company = %v, %v", ok, err)
	}

	still, err := r.Companies.FindByID(ctx, f.company.ID)
	if err != nil || still == nil {
		t.Fatalf("company should survive a restricted delete, got %v, %v", still, err)
	}
}

func testApplications(t *testing.T, r *repository.Repositories) {
	ctx := context.Background()
	f := seed(t, r)

	app := model.NewApplication(f.job.ID, f.user.ID)
	if err := r.Applications.Save(ctx, app); err != nil {
		t.Fatalf("save: %v", err)
	}
	if app.Status != model.ApplicationPending || app.ApplicationDate != model.Today() {
		t.Fatalf("unexpected defaults: %+v", app)
	}

	byJob, err := r.Applications.FindByJobID(ctx, f.job.ID)
	if err != nil || len(byJob) != 1 {
		t.Fatalf("FindByJobID = %v, %v", byJob, err)
	}
	byUser, err := r.Applications.FindByUserID(ctx, f.user.ID)
	if err != nil || len(byUser) != 1 {
		t.Fatalf("FindByUserID = %v, %v", byUser, err)
	}

	dup := model.NewApplication(f.job.ID, f.user.ID)
	if err := r.Applications.Save(ctx, dup); !sqlerr.IsConstraint(err) {
		t.Fatalf("expected a constraint error for a duplicate, got %v", err)
	}

	app.Status = "On Hold"
	if ok, err := r.Applications.Update(ctx, app); err != nil || !ok {
		t.Fatalf("Update = %v, %v", ok, err)
	}
	got, err := r.Applications.FindByID(ctx, app.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID = %v, %v", got, err)
	}
	if got.Status != "On Hold" || got.Status.IsKnown() {
		t.Fatalf("expected the raw status to survive, got %q", got.Status)
	}

	app.Status = "accepted"
	if _, err := r.Applications.Update(ctx, app); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = r.Applications.FindByID(ctx, app.ID)
	if got.Status != model.ApplicationAccepted {
		t.Fatalf("expected a normalized status, got %q", got.Status)
	}
}

func testInterviews(t *testing.T, r *repository.Repositories) {
	ctx := context.Background()
	f := seed(t, r)

	app := model.NewApplication(f.job.ID, f.user.ID)
	if err := r.Applications.Save(ctx, app); err != nil {
		t.Fatalf("save application: %v", err)
	}

	day := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	interview := model.NewInterview(app.ID, day)
	if err := r.Interviews.Save(ctx, interview); err != nil {
		t.Fatalf("save interview: %v", err)
	}

	got, err := r.Interviews.FindByApplicationID(ctx, app.ID)
	if err != nil || got == nil || got.ID != interview.ID {
		t.Fatalf("FindByApplicationID = %v, %v", got, err)
	}
	if got.ScheduledDate != model.DateOf(day) {
		t.Fatalf("scheduled date = %v", got.ScheduledDate)
	}

	none, err := r.Interviews.FindByApplicationID(ctx, app.ID+1000)
	if err != nil || none != nil {
		t.Fatalf("expected absence, got %v, %v", none, err)
	}

	scheduled, err := r.Interviews.FindByStatus(ctx, model.InterviewScheduled)
	if err != nil || len(scheduled) != 1 {
		t.Fatalf("FindByStatus = %v, %v", scheduled, err)
	}

	ranges := []struct {
		start, end time.Time
		want       int
	}{
		{model.DateOf(day), model.DateOf(day), 1},
		{day.AddDate(0, 0, -1), day, 1},
		{day.AddDate(0, 0, 1), day.AddDate(0, 0, 5), 0},
	}
	for _, rg := range ranges {
		got, err := r.Interviews.FindByDateRange(ctx, rg.start, rg.end)
		if err != nil || len(got) != rg.want {
			t.Fatalf("FindByDateRange(%v, %v) = %v, %v", rg.start, rg.end, got, err)
		}
	}

	second := model.NewInterview(app.ID, day.AddDate(0, 0, 2))
	if err := r.Interviews.Save(ctx, second); !sqlerr.IsConstraint(err) {
		t.Fatalf("expected one interview per application, got %v", err)
	}

	interview.Status = model.InterviewCompleted
	interview.Feedback = "Strong SQL"
	if ok, err := r.Interviews.Update(ctx, interview); err != nil || !ok {
		t.Fatalf("Update = %v, %v", ok, err)
	}
	completed, err := r.Interviews.FindByStatus(ctx, model.InterviewCompleted)
	if err != nil || len(completed) != 1 || completed[0].Feedback != "Strong SQL" {
		t.Fatalf("FindByStatus(Completed) = %v, %v", completed, err)
	}
}

func testInterviewSaveStoresDate(t *testing.T, r *repository.Repositories) {
	ctx := context.Background()
	f := seed(t, r)

	app := model.NewApplication(f.job.ID, f.user.ID)
	if err := r.Applications.Save(ctx, app); err != nil {
		t.Fatalf("save application: %v", err)
	}

	// Built by hand, so the time of day is still there.
	interview := &model.Interview{
		ApplicationID: app.ID,
		ScheduledDate: time.Date(2026, time.April, 2, 9, 45, 0, 0, time.UTC),
	}
	if err := r.Interviews.Save(ctx, interview); err != nil {
		t.Fatalf("save interview: %v", err)
	}

	want := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)
	if !interview.ScheduledDate.Equal(want) {
		t.Fatalf("saved scheduled date = %v, want %v", interview.ScheduledDate, want)
	}

	got, err := r.Interviews.FindByID(ctx, interview.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID = %v, %v", got, err)
	}
	if !got.ScheduledDate.Equal(interview.ScheduledDate) || got.Status != interview.Status {
		t.Fatalf("stored %+v differs from saved %+v", got, interview)
	}
}
