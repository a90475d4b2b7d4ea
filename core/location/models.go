package location

import (
	"strings"
	"time"

	"github.com/lernfeld/kursadmin/core"
)

// Offered course tags
const (
	CourseBasic     = "basic_course"
	CourseAdvanced  = "advanced_course"
	CourseSpecial   = "special_course"
	CourseIntensive = "intensive_course"
)

var AllowedCourses = []string{CourseBasic, CourseAdvanced, CourseSpecial, CourseIntensive}

type Location struct {
	ID                             int      `json:"id"`
	Name                           string   `json:"name"`
	CityID                         int      `json:"city_id"`
	MaximumParticipants            *int     `json:"maximum_participants,omitempty"`
	PassportPhotosOffered          bool     `json:"passport_photos_offered"`
	PassportPhotoPrice             *float64 `json:"passport_photo_price,omitempty"`
	VisionTestOffered              bool     `json:"vision_test_offered"`
	VisionTestPrice                *float64 `json:"vision_test_price,omitempty"`
	LocationInstructionsInstructor string   `json:"location_instructions_instructor,omitempty"`
	LocationInstructionsCustomer   string   `json:"location_instructions_customer,omitempty"`
	OfferedCourses                 []string `json:"offered_courses,omitempty"`
	ConditionsID                   *int     `json:"conditions_id,omitempty"`

	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewLocation contains information needed to create a new Location.
// A service price supplied while its offered flag is false is ignored
// and dropped on validation.
type NewLocation struct {
	Name                           string         `json:"name" validate:"required"`
	CityID                         int            `json:"city_id" validate:"required"`
	MaximumParticipants            *int           `json:"maximum_participants" validate:"omitempty,min=1"`
	PassportPhotosOffered          bool           `json:"passport_photos_offered"`
	PassportPhotoPrice             *float64       `json:"passport_photo_price" validate:"omitempty,min=0"`
	VisionTestOffered              bool           `json:"vision_test_offered"`
	VisionTestPrice                *float64       `json:"vision_test_price" validate:"omitempty,min=0"`
	LocationInstructionsInstructor string         `json:"location_instructions_instructor"`
	LocationInstructionsCustomer   string         `json:"location_instructions_customer"`
	OfferedCourses                 []string       `json:"offered_courses" validate:"omitempty,offeredcourses"`
	Conditions                     *NewConditions `json:"conditions"`
}

func (nl *NewLocation) Validate() error {
	nl.Name = core.CleanString(nl.Name)
	clearDisabledPrices(nl.PassportPhotosOffered, &nl.PassportPhotoPrice, nl.VisionTestOffered, &nl.VisionTestPrice)
	if err := core.Validate.Struct(nl); err != nil {
		return err
	}
	if nl.Conditions != nil {
		return nl.Conditions.Validate()
	}
	return nil
}

// UpdateLocation defines what information may be provided to modify an
// existing Location. Zero-valued fields keep the original value.
type UpdateLocation struct {
	Name                           string   `json:"name"`
	CityID                         *int     `json:"city_id"`
	MaximumParticipants            *int     `json:"maximum_participants" validate:"omitempty,min=1"`
	PassportPhotosOffered          *bool    `json:"passport_photos_offered"`
	PassportPhotoPrice             *float64 `json:"passport_photo_price" validate:"omitempty,min=0"`
	VisionTestOffered              *bool    `json:"vision_test_offered"`
	VisionTestPrice                *float64 `json:"vision_test_price" validate:"omitempty,min=0"`
	LocationInstructionsInstructor string   `json:"location_instructions_instructor"`
	LocationInstructionsCustomer   string   `json:"location_instructions_customer"`
	OfferedCourses                 []string `json:"offered_courses" validate:"omitempty,offeredcourses"`
}

func (ul *UpdateLocation) Validate(orig Location) error {
	if name := core.CleanString(ul.Name); name != "" {
		ul.Name = name
	} else {
		ul.Name = orig.Name
	}

	photosOffered := orig.PassportPhotosOffered
	if ul.PassportPhotosOffered != nil {
		photosOffered = *ul.PassportPhotosOffered
	}
	visionOffered := orig.VisionTestOffered
	if ul.VisionTestOffered != nil {
		visionOffered = *ul.VisionTestOffered
	}
	clearDisabledPrices(photosOffered, &ul.PassportPhotoPrice, visionOffered, &ul.VisionTestPrice)

	return core.Validate.Struct(ul)
}

// clearDisabledPrices drops prices whose corresponding offered flag is off.
func clearDisabledPrices(photosOffered bool, photoPrice **float64, visionOffered bool, visionPrice **float64) {
	if !photosOffered {
		*photoPrice = nil
	}
	if !visionOffered {
		*visionPrice = nil
	}
}

// QueryFilter applies an AND operation on its active fields.
// Search does a case-insensitive match on Location.Name.
type QueryFilter struct {
	Search string `query:"search"`
	CityID *int   `query:"city_id"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.CityID == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search, true /* lower */)
}

// Match reports whether loc satisfies all active criteria.
func (qf QueryFilter) Match(loc Location) bool {
	if qf.Search != "" && !strings.Contains(strings.ToLower(loc.Name), qf.Search) {
		return false
	}
	if qf.CityID != nil && loc.CityID != *qf.CityID {
		return false
	}
	return true
}

// Conditions holds the rental terms negotiated for a location.
type Conditions struct {
	ID              int       `json:"id"`
	ContactPerson   string    `json:"contact_person"`
	ContactEmail    string    `json:"contact_email,omitempty"`
	ContactPhone    string    `json:"contact_phone,omitempty"`
	RentalPrice     *float64  `json:"rental_price,omitempty"`
	RentalPeriod    string    `json:"rental_period,omitempty"`
	PaymentTerms    string    `json:"payment_terms,omitempty"`
	AdditionalNotes string    `json:"additional_notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"` // UTC
	UpdatedAt       time.Time `json:"updated_at"` // UTC
}

type NewConditions struct {
	ContactPerson   string   `json:"contact_person" validate:"required"`
	ContactEmail    string   `json:"contact_email" validate:"omitempty,email"`
	ContactPhone    string   `json:"contact_phone"`
	RentalPrice     *float64 `json:"rental_price" validate:"omitempty,min=0"`
	RentalPeriod    string   `json:"rental_period"`
	PaymentTerms    string   `json:"payment_terms"`
	AdditionalNotes string   `json:"additional_notes"`
}

func (nc *NewConditions) Validate() error {
	nc.ContactPerson = core.CleanString(nc.ContactPerson)
	nc.ContactEmail = core.CleanString(nc.ContactEmail, true /* lower */)
	return core.Validate.Struct(nc)
}

// UpdateConditions defines what information may be provided to modify
// existing Conditions. Zero-valued fields keep the original value.
type UpdateConditions struct {
	ContactPerson   string   `json:"contact_person"`
	ContactEmail    string   `json:"contact_email" validate:"omitempty,email"`
	ContactPhone    string   `json:"contact_phone"`
	RentalPrice     *float64 `json:"rental_price" validate:"omitempty,min=0"`
	RentalPeriod    string   `json:"rental_period"`
	PaymentTerms    string   `json:"payment_terms"`
	AdditionalNotes string   `json:"additional_notes"`
}

func (uc *UpdateConditions) Validate(orig Conditions) error {
	if person := core.CleanString(uc.ContactPerson); person != "" {
		uc.ContactPerson = person
	} else {
		uc.ContactPerson = orig.ContactPerson
	}
	uc.ContactEmail = core.CleanString(uc.ContactEmail, true /* lower */)
	return core.Validate.Struct(uc)
}
