package instructor

import (
	"strings"
	"time"

	"github.com/lernfeld/kursadmin/core"
)

// Employment types
const (
	EmploymentFullTime  = "full_time"
	EmploymentPartTime  = "part_time"
	EmploymentFreelance = "freelance"
	EmploymentMiniJob   = "mini_job"
)

var AllEmploymentTypes = []string{EmploymentFullTime, EmploymentPartTime, EmploymentFreelance, EmploymentMiniJob}

type Instructor struct {
	ID             int      `json:"id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	DateOfBirth    string   `json:"date_of_birth"` // YYYY-MM-DD
	Bafoeg         bool     `json:"bafoeg"`
	BafoegAmount   *float64 `json:"bafoeg_amount,omitempty"`
	DriversLicense bool     `json:"drivers_license"`
	Insurance      string   `json:"insurance"`
	PhoneNumber    string   `json:"phone_number,omitempty"`
	EmailAddress   string   `json:"email_address,omitempty"`
	Languages      string   `json:"languages,omitempty"`
	Salary         *float64 `json:"salary,omitempty"`
	EmploymentType string   `json:"employment_type"`
	StudyStart     string   `json:"study_start,omitempty"`     // YYYY-MM-DD
	WorkStart      string   `json:"work_start,omitempty"`      // YYYY-MM-DD
	LicensedUntil  string   `json:"licensed_until,omitempty"`  // YYYY-MM-DD
	WorkplaceID    *int     `json:"workplace_id,omitempty"`    // Location ref

	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

func (i *Instructor) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// NewInstructor contains information needed to create a new Instructor.
type NewInstructor struct {
	FirstName      string   `json:"first_name" validate:"required"`
	LastName       string   `json:"last_name" validate:"required"`
	DateOfBirth    string   `json:"date_of_birth" validate:"required,dateonly"`
	Bafoeg         bool     `json:"bafoeg"`
	BafoegAmount   *float64 `json:"bafoeg_amount" validate:"omitempty,min=0"`
	DriversLicense bool     `json:"drivers_license"`
	Insurance      string   `json:"insurance" validate:"required"`
	PhoneNumber    string   `json:"phone_number"`
	EmailAddress   string   `json:"email_address" validate:"omitempty,email"`
	Languages      string   `json:"languages"`
	Salary         *float64 `json:"salary" validate:"omitempty,min=0"`
	EmploymentType string   `json:"employment_type" validate:"required,employment"`
	StudyStart     string   `json:"study_start" validate:"omitempty,dateonly"`
	WorkStart      string   `json:"work_start" validate:"omitempty,dateonly"`
	LicensedUntil  string   `json:"licensed_until" validate:"omitempty,dateonly"`
	WorkplaceID    *int     `json:"workplace_id"`
}

func (ni *NewInstructor) Validate() error {
	ni.FirstName = core.CleanString(ni.FirstName)
	ni.LastName = core.CleanString(ni.LastName)
	ni.EmailAddress = core.CleanString(ni.EmailAddress, true /* lower */)
	// bafoeg amount is meaningful only while the flag is set
	if !ni.Bafoeg {
		ni.BafoegAmount = nil
	}
	return core.Validate.Struct(ni)
}

// UpdateInstructor defines what information may be provided to modify an
// existing Instructor. Zero-valued fields keep the original value.
type UpdateInstructor struct {
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	DateOfBirth    string   `json:"date_of_birth" validate:"omitempty,dateonly"`
	Bafoeg         *bool    `json:"bafoeg"`
	BafoegAmount   *float64 `json:"bafoeg_amount" validate:"omitempty,min=0"`
	DriversLicense *bool    `json:"drivers_license"`
	Insurance      string   `json:"insurance"`
	PhoneNumber    string   `json:"phone_number"`
	EmailAddress   string   `json:"email_address" validate:"omitempty,email"`
	Languages      string   `json:"languages"`
	Salary         *float64 `json:"salary" validate:"omitempty,min=0"`
	EmploymentType string   `json:"employment_type" validate:"omitempty,employment"`
	StudyStart     string   `json:"study_start" validate:"omitempty,dateonly"`
	WorkStart      string   `json:"work_start" validate:"omitempty,dateonly"`
	LicensedUntil  string   `json:"licensed_until" validate:"omitempty,dateonly"`
	WorkplaceID    *int     `json:"workplace_id"`
}

func (ui *UpdateInstructor) Validate(orig Instructor) error {
	if first := core.CleanString(ui.FirstName); first != "" {
		ui.FirstName = first
	} else {
		ui.FirstName = orig.FirstName
	}
	if last := core.CleanString(ui.LastName); last != "" {
		ui.LastName = last
	} else {
		ui.LastName = orig.LastName
	}
	ui.EmailAddress = core.CleanString(ui.EmailAddress, true /* lower */)

	bafoeg := orig.Bafoeg
	if ui.Bafoeg != nil {
		bafoeg = *ui.Bafoeg
	}
	if !bafoeg {
		ui.BafoegAmount = nil
	}
	return core.Validate.Struct(ui)
}

// QueryFilter applies an AND operation on its active fields.
// Search does a case-insensitive match on one of Instructor.FirstName,
// Instructor.LastName or Instructor.EmailAddress.
type QueryFilter struct {
	Search         string `query:"search"`
	EmploymentType string `query:"employment_type"`
	WorkplaceID    *int   `query:"workplace_id"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.EmploymentType == "" && qf.WorkplaceID == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search, true /* lower */)
	qf.EmploymentType = core.CleanString(qf.EmploymentType, true)
}

// Match reports whether ins satisfies all active criteria.
func (qf QueryFilter) Match(ins Instructor) bool {
	if qf.Search != "" {
		if !strings.Contains(strings.ToLower(ins.FirstName), qf.Search) &&
			!strings.Contains(strings.ToLower(ins.LastName), qf.Search) &&
			!strings.Contains(strings.ToLower(ins.EmailAddress), qf.Search) {
			return false
		}
	}
	if qf.EmploymentType != "" && ins.EmploymentType != qf.EmploymentType {
		return false
	}
	if qf.WorkplaceID != nil && (ins.WorkplaceID == nil || *ins.WorkplaceID != *qf.WorkplaceID) {
		return false
	}
	return true
}

// Document is the metadata row for an uploaded instructor document.
// The blob itself is written to the file store under StoredName.
type Document struct {
	ID           int       `json:"id"`
	InstructorID int       `json:"instructor_id"`
	Filename     string    `json:"filename"`
	StoredName   string    `json:"-"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploaded_at"` // UTC
}
