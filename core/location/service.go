package location

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrNotFound           = errors.New("location not found")
	ErrConditionsNotFound = errors.New("conditions not found")
)

type (
	Repository interface {
		CreateLocation(loc Location) (Location, error)
		QueryAllLocations() ([]Location, error)
		GetLocationByID(id int) (Location, error)
		// FilterLocations applies an AND operation on available QueryFilter fields.
		FilterLocations(filter QueryFilter) ([]Location, error)
		UpdateLocation(loc Location, ul UpdateLocation) (Location, error)
		DeleteLocationsByID(ids ...int) error

		CreateConditions(cond Conditions) (Conditions, error)
		GetConditionsByID(id int) (Conditions, error)
		UpdateConditions(cond Conditions, uc UpdateConditions) (Conditions, error)
	}

	Service interface {
		Create(nl NewLocation) (Location, error)
		QueryAll() ([]Location, error)
		GetByID(id int) (Location, error)
		Filter(filter QueryFilter) ([]Location, error)
		Update(id int, ul UpdateLocation) (Location, error)
		Delete(ids ...int) error

		CreateConditions(nc NewConditions) (Conditions, error)
		GetConditions(id int) (Conditions, error)
		UpdateConditions(id int, uc UpdateConditions) (Conditions, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(nl NewLocation) (Location, error) {
	now := time.Now().UTC()
	loc := Location{
		Name:                           nl.Name,
		CityID:                         nl.CityID,
		MaximumParticipants:            nl.MaximumParticipants,
		PassportPhotosOffered:          nl.PassportPhotosOffered,
		PassportPhotoPrice:             nl.PassportPhotoPrice,
		VisionTestOffered:              nl.VisionTestOffered,
		VisionTestPrice:                nl.VisionTestPrice,
		LocationInstructionsInstructor: nl.LocationInstructionsInstructor,
		LocationInstructionsCustomer:   nl.LocationInstructionsCustomer,
		OfferedCourses:                 nl.OfferedCourses,
		CreatedAt:                      now,
		UpdatedAt:                      now,
	}
	if nl.Conditions != nil {
		cond, err := svc.CreateConditions(*nl.Conditions)
		if err != nil {
			return Location{}, errors.Wrap(err, "creating conditions")
		}
		loc.ConditionsID = &cond.ID
	}
	return svc.repo.CreateLocation(loc)
}

func (svc *service) QueryAll() ([]Location, error) {
	return svc.repo.QueryAllLocations()
}

func (svc *service) GetByID(id int) (Location, error) {
	return svc.repo.GetLocationByID(id)
}

func (svc *service) Filter(filter QueryFilter) ([]Location, error) {
	filter.Clean()
	return svc.repo.FilterLocations(filter)
}

func (svc *service) Update(id int, ul UpdateLocation) (Location, error) {
	loc := Location{
		ID:                             id,
		Name:                           ul.Name,
		MaximumParticipants:            ul.MaximumParticipants,
		PassportPhotoPrice:             ul.PassportPhotoPrice,
		VisionTestPrice:                ul.VisionTestPrice,
		LocationInstructionsInstructor: ul.LocationInstructionsInstructor,
		LocationInstructionsCustomer:   ul.LocationInstructionsCustomer,
		OfferedCourses:                 ul.OfferedCourses,
		UpdatedAt:                      time.Now().UTC(),
	}
	return svc.repo.UpdateLocation(loc, ul)
}

func (svc *service) Delete(ids ...int) error {
	return svc.repo.DeleteLocationsByID(ids...)
}

func (svc *service) CreateConditions(nc NewConditions) (Conditions, error) {
	now := time.Now().UTC()
	return svc.repo.CreateConditions(Conditions{
		ContactPerson:   nc.ContactPerson,
		ContactEmail:    nc.ContactEmail,
		ContactPhone:    nc.ContactPhone,
		RentalPrice:     nc.RentalPrice,
		RentalPeriod:    nc.RentalPeriod,
		PaymentTerms:    nc.PaymentTerms,
		AdditionalNotes: nc.AdditionalNotes,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
}

func (svc *service) GetConditions(id int) (Conditions, error) {
	return svc.repo.GetConditionsByID(id)
}

func (svc *service) UpdateConditions(id int, uc UpdateConditions) (Conditions, error) {
	cond := Conditions{
		ID:              id,
		ContactPerson:   uc.ContactPerson,
		ContactEmail:    uc.ContactEmail,
		ContactPhone:    uc.ContactPhone,
		RentalPrice:     uc.RentalPrice,
		RentalPeriod:    uc.RentalPeriod,
		PaymentTerms:    uc.PaymentTerms,
		AdditionalNotes: uc.AdditionalNotes,
		UpdatedAt:       time.Now().UTC(),
	}
	return svc.repo.UpdateConditions(cond, uc)
}
