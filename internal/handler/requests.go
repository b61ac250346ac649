package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/deppfellow/jobportal/internal/validation"
)

var validate = validator.New()

// IDRequest carries the :id path parameter.
type IDRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (r *IDRequest) Validate() error {
	return validate.Struct(r)
}

// EmptyRequest is used by endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

type ListCompaniesRequest struct {
	Name string `query:"name" validate:"max=200"`
}

func (r *ListCompaniesRequest) Validate() error {
	return validate.Struct(r)
}

type ApplyRequest struct {
	JobID int64 `json:"job_id" validate:"required,min=1"`
}

func (r *ApplyRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateApplicationStatusRequest struct {
	ID     int64  `param:"id" validate:"required,min=1"`
	Status string `json:"status" validate:"required,max=50"`
}

func (r *UpdateApplicationStatusRequest) Validate() error {
	return validate.Struct(r)
}

// ScheduleInterviewRequest books an interview for application :id on
// ScheduledDate (YYYY-MM-DD).
type ScheduleInterviewRequest struct {
	ApplicationID int64  `param:"id" validate:"required,min=1"`
	ScheduledDate string `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
}

func (r *ScheduleInterviewRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateInterviewRequest closes interview :id. Feedback is kept only
// for Completed.
type UpdateInterviewRequest struct {
	ID       int64  `param:"id" validate:"required,min=1"`
	Status   string `json:"status" validate:"required,oneof=Completed Cancelled"`
	Feedback string `json:"feedback" validate:"max=5000"`
}

func (r *UpdateInterviewRequest) Validate() error {
	return validate.Struct(r)
}

// InterviewSearchRequest lists interviews by status or by a date range.
// From and To are YYYY-MM-DD and inclusive.
type InterviewSearchRequest struct {
	Status string `query:"status" validate:"omitempty,max=50"`
	From   string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

func (r *InterviewSearchRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if (r.From == "") != (r.To == "") {
		return validation.CustomValidationErrors{
			{Field: "from", Message: "from and to must be given together"},
		}
	}
	if r.Status != "" && r.From != "" {
		return validation.CustomValidationErrors{
			{Field: "status", Message: "filter by status or by dates, not both"},
		}
	}
	return nil
}
