package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/repository/memrepo"
	"github.com/deppfellow/jobportal/internal/service"
	"github.com/deppfellow/jobportal/internal/sqlerr"
)

func newServices(t *testing.T) (*service.Services, *memrepo.Store) {
	t.Helper()
	store := memrepo.New()
	logger := zerolog.Nop()
	return service.New(store.Repositories(), service.NopNotifier{}, bcrypt.MinCost, &logger), store
}

func runScript(t *testing.T, svc *service.Services, lines ...string) (string, *Console) {
	t.Helper()
	var out bytes.Buffer
	logger := zerolog.Nop()

	c := New(svc, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, &logger, nil)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String(), c
}

func seedJobs(t *testing.T, svc *service.Services) {
	t.Helper()
	ctx := context.Background()
	acme, err := svc.Companies.Create(ctx, service.CreateCompanyInput{Name: "Acme", Location: "Paris"})
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range []service.PostJobInput{
		{CompanyID: acme.ID, Title: "Backend Engineer", Location: "New York", SkillsRequired: "Java, SQL"},
		{CompanyID: acme.ID, Title: "Go Developer", Location: "Remote", SkillsRequired: "Go"},
	} {
		if _, err := svc.JobPostings.Post(ctx, in); err != nil {
			t.Fatal(err)
		}
	}
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output does not contain %q\n---\n%s", w, out)
		}
	}
}

func TestRegisterLoginAndExit(t *testing.T) {
	svc, _ := newServices(t)

	out, c := runScript(t, svc,
		"2", "Alice", "alice@example.com", "pw", "Berlin", "Go, SQL",
		"2", "Alice Again", "alice@example.com", "pw2", "", "",
		"1", "alice@example.com", "wrong",
		"1", "alice@example.com", "pw",
		"1",
		"8",
	)

	assertContains(t, out,
		"Welcome to the Job Portal System!",
		"Registration successful! You can now login.",
		"Email already registered. Please use a different email.",
		"Invalid email or password. Please try again.",
		"Login successful!",
		"Welcome, Alice!",
		"Email: alice@example.com",
		"Skills: Go, SQL",
		"Goodbye!",
	)
	if c.CurrentUser() == nil || c.CurrentUser().Email != "alice@example.com" {
		t.Fatalf("expected alice to be logged in, got %v", c.CurrentUser())
	}
}

func TestInvalidChoiceAndEOF(t *testing.T) {
	svc, _ := newServices(t)

	out, _ := runScript(t, svc, "abc", "9")

	if strings.Count(out, "Invalid choice. Please try again.") != 2 {
		t.Fatalf("expected two invalid choice notices\n%s", out)
	}
	assertContains(t, out, "Goodbye!")
}

func TestEOFDuringRegistration(t *testing.T) {
	svc, store := newServices(t)

	out, _ := runScript(t, svc, "2", "Alice")

	assertContains(t, out, "Enter email: ", "Goodbye!")
	users, _ := store.Repositories().Users.FindAll(context.Background())
	if len(users) != 0 {
		t.Fatalf("nothing should be registered, got %v", users)
	}
}

func TestSearchApplyAndListApplications(t *testing.T) {
	svc, _ := newServices(t)
	seedJobs(t, svc)

	out, _ := runScript(t, svc,
		"2", "Bob", "bob@example.com", "pw", "", "",
		"1", "bob@example.com", "pw",
		"3", "1", "SQL",
		"3", "2", "remote",
		"3", "7",
		"3", "1", "Rust",
		"4", "x",
		"4", "42",
		"4", "1",
		"4", "1",
		"5",
		"6",
		"7",
		"3",
	)

	assertContains(t, out,
		"Found 1 job(s):\nJob ID: 1 | Title: Backend Engineer | Company: Acme | Location: New York",
		"Found 1 job(s):\nJob ID: 2 | Title: Go Developer | Company: Acme | Location: Remote",
		"Invalid choice. Showing all jobs.\n\nFound 2 job(s):",
		"No jobs found matching your criteria.",
		"Invalid Job ID. Please enter a valid number.",
		"Job not found with ID: 42",
		"Application submitted successfully!",
		"You have already applied for this job.",
		"Job: Backend Engineer",
		"Status: Pending",
		"You don't have any scheduled interviews.",
		"Logged out successfully.",
	)
}

func TestUpdateProfileKeepsBlankAnswers(t *testing.T) {
	svc, _ := newServices(t)

	out, c := runScript(t, svc,
		"2", "Carol", "carol@example.com", "old", "Lyon", "Go",
		"1", "carol@example.com", "old",
		"2", "", "Remote", "", "new",
		"1",
		"7",
		"1", "carol@example.com", "new",
		"8",
	)

	assertContains(t, out, "Profile updated successfully!", "Location: Remote", "Skills: Go")
	if u := c.CurrentUser(); u == nil || u.Name != "Carol" {
		t.Fatalf("login with the new password failed\n%s", out)
	}
}

func TestViewInterviews(t *testing.T) {
	svc, _ := newServices(t)
	seedJobs(t, svc)
	ctx := context.Background()

	user, err := svc.Auth.Register(ctx, service.RegisterInput{Name: "Dana", Email: "dana@example.com", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}
	app, err := svc.Applications.Apply(ctx, user.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Interviews.Schedule(ctx, app.ID, model.Today()); err != nil {
		t.Fatal(err)
	}

	out, _ := runScript(t, svc, "1", "dana@example.com", "pw", "6", "8")

	assertContains(t, out, "Interview ID: 1 | Job: Go Developer | Date: "+model.Today().Format(dateLayout)+" | Status: Scheduled")
}

func TestStorageFailureIsReported(t *testing.T) {
	svc, store := newServices(t)
	if _, err := svc.Auth.Register(context.Background(), service.RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "pw"}); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	logger := zerolog.Nop()
	in := strings.NewReader("1\neve@example.com\npw\n3\n3\n8\n")
	c := New(svc, in, &out, &logger, nil)

	// Log in first, then break storage before the search.
	c.loginMenu(context.Background())
	store.FailWith(sqlerr.ErrConnection)
	if err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	assertContains(t, out.String(), "The search jobs failed, please try again (connectivity error).")
}
