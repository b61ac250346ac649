package model

import "strings"

// ApplicationStatus is the review state of an Application.
//
// Stored values outside the known set are kept verbatim; IsKnown reports
// whether a value is one of the constants below.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationAccepted ApplicationStatus = "Accepted"
	ApplicationRejected ApplicationStatus = "Rejected"
)

var applicationStatuses = []ApplicationStatus{
	ApplicationPending,
	ApplicationAccepted,
	ApplicationRejected,
}

// ParseApplicationStatus matches known values case-insensitively and
// returns anything else trimmed but otherwise unchanged.
func ParseApplicationStatus(s string) ApplicationStatus {
	s = strings.TrimSpace(s)
	for _, known := range applicationStatuses {
		if strings.EqualFold(s, string(known)) {
			return known
		}
	}
	return ApplicationStatus(s)
}

func (s ApplicationStatus) IsKnown() bool {
	for _, known := range applicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) String() string { return string(s) }

// InterviewStatus is the lifecycle state of an Interview.
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "Scheduled"
	InterviewCompleted InterviewStatus = "Completed"
	InterviewCancelled InterviewStatus = "Cancelled"
)

var interviewStatuses = []InterviewStatus{
	InterviewScheduled,
	InterviewCompleted,
	InterviewCancelled,
}

// ParseInterviewStatus mirrors ParseApplicationStatus.
func ParseInterviewStatus(s string) InterviewStatus {
	s = strings.TrimSpace(s)
	for _, known := range interviewStatuses {
		if strings.EqualFold(s, string(known)) {
			return known
		}
	}
	return InterviewStatus(s)
}

func (s InterviewStatus) IsKnown() bool {
	for _, known := range interviewStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s InterviewStatus) String() string { return string(s) }
