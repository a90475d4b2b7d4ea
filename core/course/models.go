package course

import (
	"strings"
	"time"

	"github.com/lernfeld/kursadmin/core"
)

// Statuses. Status is authoritative: it is not derived from Enrolled vs
// Capacity and the two may disagree until an operator reconciles them.
const (
	StatusOpen        = "open"
	StatusClosed      = "closed"
	StatusFullyBooked = "fully_booked"
	StatusCancelled   = "cancelled"
)

var AllStatuses = []string{StatusOpen, StatusClosed, StatusFullyBooked, StatusCancelled}

type Course struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Date        string  `json:"date"` // YYYY-MM-DD
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Capacity    int     `json:"capacity"`
	Enrolled    int     `json:"enrolled"`
	TrainerID   *int    `json:"trainer_id"`
	TrainerName string  `json:"trainer_name,omitempty"` // snapshot at assignment time; not updated on rename
	Status      string  `json:"status"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`

	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

func (c *Course) IsOwnedBy(trainerID int) bool {
	return c.TrainerID != nil && *c.TrainerID == trainerID
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Date        string  `json:"date" validate:"required,dateonly"`
	StartTime   string  `json:"start_time" validate:"required,timeofday"`
	EndTime     string  `json:"end_time" validate:"required,timeofday"`
	Capacity    int     `json:"capacity" validate:"required,min=1"`
	TrainerID   *int    `json:"trainer_id"`
	Status      string  `json:"status" validate:"omitempty,coursestatus"`
	Location    string  `json:"location"`
	Price       float64 `json:"price" validate:"min=0"`
}

func (nc *NewCourse) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Description = core.CleanString(nc.Description)
	nc.Location = core.CleanString(nc.Location)
	if nc.Status == "" {
		nc.Status = StatusOpen
	}
	return core.Validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing
// Course. Zero-valued fields keep the original value; Enrolled and TrainerID
// are applied only when non-nil.
type UpdateCourse struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Date        string   `json:"date" validate:"omitempty,dateonly"`
	StartTime   string   `json:"start_time" validate:"omitempty,timeofday"`
	EndTime     string   `json:"end_time" validate:"omitempty,timeofday"`
	Capacity    *int     `json:"capacity" validate:"omitempty,min=1"`
	Enrolled    *int     `json:"enrolled" validate:"omitempty,min=0"`
	TrainerID   *int     `json:"trainer_id"`
	Unassign    bool     `json:"unassign"`
	Status      string   `json:"status" validate:"omitempty,coursestatus"`
	Location    string   `json:"location"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
}

func (uc *UpdateCourse) Validate(orig Course) error {
	if name := core.CleanString(uc.Name); name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}
	uc.Description = core.CleanString(uc.Description)

	if err := core.Validate.Struct(uc); err != nil {
		return err
	}

	// enrolled may never exceed capacity
	capacity := orig.Capacity
	if uc.Capacity != nil {
		capacity = *uc.Capacity
	}
	enrolled := orig.Enrolled
	if uc.Enrolled != nil {
		enrolled = *uc.Enrolled
	}
	if enrolled > capacity {
		return core.NewValidationError(nil, core.FieldError{Field: "enrolled", Error: "enrolled cannot exceed capacity"})
	}
	return nil
}

// QueryFilter applies an AND operation on its active fields.
// Search does a case-insensitive match on one of Course.Name or
// Course.Description. Unassigned narrows to courses without a trainer.
type QueryFilter struct {
	Search     string `query:"search"`
	Status     string `query:"status"`
	TrainerID  *int   `query:"trainer_id"`
	Unassigned bool   `query:"unassigned"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Status == "" && qf.TrainerID == nil && !qf.Unassigned
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search, true /* lower */)
	qf.Status = core.CleanString(qf.Status, true)
}

// Match reports whether c satisfies all active criteria.
func (qf QueryFilter) Match(c Course) bool {
	if qf.Search != "" {
		if !strings.Contains(strings.ToLower(c.Name), qf.Search) &&
			!strings.Contains(strings.ToLower(c.Description), qf.Search) {
			return false
		}
	}
	if qf.Status != "" && c.Status != qf.Status {
		return false
	}
	if qf.Unassigned && c.TrainerID != nil {
		return false
	}
	if qf.TrainerID != nil && !c.IsOwnedBy(*qf.TrainerID) {
		return false
	}
	return true
}
