package booking

import (
	"strings"
	"time"

	"github.com/lernfeld/kursadmin/core"
)

// Statuses
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

var AllStatuses = []string{StatusPending, StatusApproved, StatusRejected, StatusCancelled}

type Booking struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	UserName   string `json:"user_name"`  // snapshot at booking time
	UserEmail  string `json:"user_email"` // snapshot at booking time
	CourseID   int    `json:"course_id"`
	CourseName string `json:"course_name"` // snapshot at booking time
	Date       string `json:"date"`        // YYYY-MM-DD; the course date
	Status     string `json:"status"`
	// Notes carries the rejection reason or a cancellation note;
	// empty unless Status is rejected or cancelled.
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// NewBooking contains information needed to create a new Booking.
// User and course names are resolved and snapshotted by the service.
type NewBooking struct {
	UserID   int `json:"user_id" validate:"required"`
	CourseID int `json:"course_id" validate:"required"`
}

func (nb *NewBooking) Validate() error {
	return core.Validate.Struct(nb)
}

// RejectBooking carries the reason a pending booking is being rejected.
type RejectBooking struct {
	Notes string `json:"notes" validate:"required"`
}

func (rb *RejectBooking) Validate() error {
	rb.Notes = core.CleanString(rb.Notes)
	return core.Validate.Struct(rb)
}

// QueryFilter applies an AND operation on its active fields.
// Search does a case-insensitive match on one of Booking.UserName,
// Booking.UserEmail or Booking.CourseName. Date is an exact match.
type QueryFilter struct {
	Search string `query:"search"`
	Status string `query:"status"`
	Date   string `query:"date"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Status == "" && qf.Date == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search, true /* lower */)
	qf.Status = core.CleanString(qf.Status, true)
	qf.Date = core.CleanString(qf.Date)
}

// Match reports whether b satisfies all active criteria.
func (qf QueryFilter) Match(b Booking) bool {
	if qf.Search != "" {
		if !strings.Contains(strings.ToLower(b.UserName), qf.Search) &&
			!strings.Contains(strings.ToLower(b.UserEmail), qf.Search) &&
			!strings.Contains(strings.ToLower(b.CourseName), qf.Search) {
			return false
		}
	}
	if qf.Status != "" && b.Status != qf.Status {
		return false
	}
	if qf.Date != "" && b.Date != qf.Date {
		return false
	}
	return true
}
