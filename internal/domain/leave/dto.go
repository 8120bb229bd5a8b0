package leave

import (
	"time"

	"github.com/leavedesk/leave-backend-go/internal/pkg/validator"
)

type CreateRequestRequest struct {
	OwnerID   string  `json:"-"`
	Type      Type    `json:"type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Days      int     `json:"days"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidType(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: annual, sick, personal",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.Days <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be a positive integer",
		})
	}

	if r.Type == TypePersonal && (r.Reason == nil || validator.IsEmpty(*r.Reason)) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required for personal leave",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	Status          Status  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidStatus(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, approved, rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestResponse struct {
	ID              string  `json:"id"`
	OwnerID         string  `json:"owner_id"`
	Type            Type    `json:"type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Days            int     `json:"days"`
	Reason          *string `json:"reason,omitempty"`
	Status          Status  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	RequestedAt     string  `json:"requested_at"`
	OwnerName       *string `json:"owner_name,omitempty"`
	OwnerEmail      *string `json:"owner_email,omitempty"`
}

// ToResponse converts a Request entity to its API shape.
func ToResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		Type:            r.Type,
		StartDate:       r.StartDate.Format("2006-01-02"),
		EndDate:         r.EndDate.Format("2006-01-02"),
		Days:            r.Days,
		Reason:          r.Reason,
		Status:          r.Status,
		RejectionReason: r.RejectionReason,
		RequestedAt:     r.RequestedAt.Format(time.RFC3339),
		OwnerName:       r.OwnerName,
		OwnerEmail:      r.OwnerEmail,
	}
}
