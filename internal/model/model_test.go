package model

import (
	"reflect"
	"testing"
	"time"
)

func TestParseApplicationStatus(t *testing.T) {
	tests := []struct {
		in        string
		want      ApplicationStatus
		wantKnown bool
	}{
		{"Pending", ApplicationPending, true},
		{"pending", ApplicationPending, true},
		{" ACCEPTED ", ApplicationAccepted, true},
		{"rejected", ApplicationRejected, true},
		{"On Hold", ApplicationStatus("On Hold"), false},
		{"", ApplicationStatus(""), false},
	}

	for _, tt := range tests {
		got := ParseApplicationStatus(tt.in)
		if got != tt.want {
			t.Fatalf("ParseApplicationStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if got.IsKnown() != tt.wantKnown {
			t.Fatalf("ParseApplicationStatus(%q).IsKnown() = %v", tt.in, got.IsKnown())
		}
	}
}

func TestParseInterviewStatus(t *testing.T) {
	if got := ParseInterviewStatus("completed"); got != InterviewCompleted {
		t.Fatalf("got %q", got)
	}
	if got := ParseInterviewStatus("No-show"); got.IsKnown() || got != "No-show" {
		t.Fatalf("expected raw fallback, got %q", got)
	}
}

func TestSplitSkills(t *testing.T) {
	got := SplitSkills(" Java, SQL,,Go ,")
	want := []string{"Java", "SQL", "Go"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitSkills = %v, want %v", got, want)
	}

	if got := JoinSkills([]string{"Go", " ", "SQL"}); got != "Go, SQL" {
		t.Fatalf("JoinSkills = %q", got)
	}

	if len(SplitSkills("")) != 0 {
		t.Fatalf("expected no skills for empty input")
	}
}

func TestConstructorsAreNotPersisted(t *testing.T) {
	u := NewUser("Alice", "alice@example.com", "hash", "Berlin", "Go")
	if u.IsPersisted() {
		t.Fatalf("new user must not be persisted")
	}

	a := NewApplication(5, 3)
	if a.Status != ApplicationPending || a.IsPersisted() {
		t.Fatalf("unexpected application %+v", a)
	}

	when := time.Date(2024, 3, 9, 17, 45, 0, 0, time.FixedZone("X", 3600))
	i := NewInterview(1, when)
	if !i.ScheduledDate.Equal(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("scheduled date not truncated: %s", i.ScheduledDate)
	}
	if i.Status != InterviewScheduled {
		t.Fatalf("unexpected status %q", i.Status)
	}
}
