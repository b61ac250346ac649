package service

import (
	"context"

	"github.com/deppfellow/jobportal/internal/model"
)

// Notifier delivers side notifications for completed operations.
// A failing Notifier never fails the operation that triggered it.
type Notifier interface {
	NotifyWelcome(ctx context.Context, user *model.User) error
	NotifyApplicationSubmitted(ctx context.Context, user *model.User, job *model.JobPosting, company *model.Company) error
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) NotifyWelcome(context.Context, *model.User) error { return nil }

func (NopNotifier) NotifyApplicationSubmitted(context.Context, *model.User, *model.JobPosting, *model.Company) error {
	return nil
}
