package service

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/sqlerr"
)

func TestNavigatorFollowsReferences(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "Alice", "alice@example.com", "pw")
	acme := f.company(t, "Acme")
	job := f.post(t, acme.ID, "Dev", "", "")
	ctx := context.Background()

	app, _ := f.svc.Applications.Apply(ctx, user.ID, job.ID)
	interview, _ := f.svc.Interviews.Schedule(ctx, app.ID, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC))
	nav := f.svc.Navigator

	company, err := nav.CompanyOfJob(ctx, job)
	if err != nil || company == nil || company.ID != acme.ID {
		t.Fatalf("CompanyOfJob = %v, %v", company, err)
	}

	jobs, _ := nav.JobPostingsOfCompany(ctx, acme)
	if len(jobs) != 1 || jobs[0].ID != job.ID {
		t.Fatalf("JobPostingsOfCompany = %v", jobs)
	}

	apps, _ := nav.ApplicationsOfJob(ctx, job)
	if len(apps) != 1 || apps[0].ID != app.ID {
		t.Fatalf("ApplicationsOfJob = %v", apps)
	}

	apps, _ = nav.ApplicationsOfUser(ctx, user)
	if len(apps) != 1 {
		t.Fatalf("ApplicationsOfUser = %v", apps)
	}

	gotInterview, _ := nav.InterviewOfApplication(ctx, app)
	if gotInterview == nil || gotInterview.ID != interview.ID {
		t.Fatalf("InterviewOfApplication = %v", gotInterview)
	}

	gotJob, _ := nav.JobOfInterview(ctx, interview)
	if gotJob == nil || gotJob.ID != job.ID {
		t.Fatalf("JobOfInterview = %v", gotJob)
	}

	gotUser, _ := nav.UserOfInterview(ctx, interview)
	if gotUser == nil || gotUser.ID != user.ID {
		t.Fatalf("UserOfInterview = %v", gotUser)
	}
}

func TestNavigatorAbsencePropagates(t *testing.T) {
	f := newFixture(t)
	nav := f.svc.Navigator
	ctx := context.Background()

	// An interview whose application was never stored.
	orphan := &model.Interview{ID: 7, ApplicationID: 404}

	app, err := nav.ApplicationOfInterview(ctx, orphan)
	if app != nil || err != nil {
		t.Fatalf("ApplicationOfInterview = %v, %v", app, err)
	}

	job, err := nav.JobOfInterview(ctx, orphan)
	if job != nil || err != nil {
		t.Fatalf("JobOfInterview = %v, %v", job, err)
	}

	user, err := nav.UserOfInterview(ctx, orphan)
	if user != nil || err != nil {
		t.Fatalf("UserOfInterview = %v, %v", user, err)
	}

	company, err := nav.CompanyOfJob(ctx, job)
	if company != nil || err != nil {
		t.Fatalf("CompanyOfJob(nil) = %v, %v", company, err)
	}

	jobs, err := nav.JobPostingsOfCompany(ctx, nil)
	if jobs != nil || err != nil {
		t.Fatalf("JobPostingsOfCompany(nil) = %v, %v", jobs, err)
	}
}

func TestNavigatorApplicationWithMissingReferences(t *testing.T) {
	f := newFixture(t)
	nav := f.svc.Navigator
	ctx := context.Background()

	// A stored application whose job and user rows are gone.
	app := &model.Application{ID: 1, JobID: 404, UserID: 404, Status: model.ApplicationPending}

	job, err := nav.JobOfApplication(ctx, app)
	if job != nil || err != nil {
		t.Fatalf("JobOfApplication = %v, %v", job, err)
	}

	user, err := nav.UserOfApplication(ctx, app)
	if user != nil || err != nil {
		t.Fatalf("UserOfApplication = %v, %v", user, err)
	}

	company, err := nav.CompanyOfJob(ctx, job)
	if company != nil || err != nil {
		t.Fatalf("CompanyOfJob(nil) = %v, %v", company, err)
	}
}

func TestNavigatorReportsStorageFailure(t *testing.T) {
	f := newFixture(t)
	f.store.FailWith(sqlerr.ErrConnection)

	_, err := f.svc.Navigator.JobOfInterview(context.Background(), &model.Interview{ApplicationID: 1})
	if !sqlerr.IsUnavailable(err) {
		t.Fatalf("expected an unavailable error, got %v", err)
	}
}
