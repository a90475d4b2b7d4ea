package course

import (
	"time"

	"github.com/pkg/errors"

	"github.com/lernfeld/kursadmin/core"
	"github.com/lernfeld/kursadmin/core/user"
)

var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		CreateCourse(c Course) (Course, error)
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id int) (Course, error)
		// FilterCourses applies an AND operation on available QueryFilter fields.
		FilterCourses(filter QueryFilter) ([]Course, error)
		UpdateCourse(c Course, uc UpdateCourse) (Course, error)
		DeleteCoursesByID(ids ...int) error
	}

	Service interface {
		Create(nc NewCourse) (Course, error)
		QueryAll() ([]Course, error)
		GetByID(id int) (Course, error)
		// Filter returns courses matching filter, pre-narrowed to the
		// actor's own courses when the actor is a trainer. The narrowing
		// cannot be widened by filter values.
		Filter(actor user.User, filter QueryFilter) ([]Course, error)
		Update(id int, uc UpdateCourse) (Course, error)
		Delete(ids ...int) error
	}

	service struct {
		repo    Repository
		usrRepo user.Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, usrRepo user.Repository) Service {
	return &service{repo: repo, usrRepo: usrRepo}
}

func (svc *service) Create(nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	c := Course{
		Name:        nc.Name,
		Description: nc.Description,
		Date:        nc.Date,
		StartTime:   nc.StartTime,
		EndTime:     nc.EndTime,
		Capacity:    nc.Capacity,
		TrainerID:   nc.TrainerID,
		Status:      nc.Status,
		Location:    nc.Location,
		Price:       nc.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := svc.resolveTrainerName(&c); err != nil {
		return Course{}, err
	}
	return svc.repo.CreateCourse(c)
}

func (svc *service) QueryAll() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *service) GetByID(id int) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *service) Filter(actor user.User, filter QueryFilter) ([]Course, error) {
	filter.Clean()
	if actor.IsTrainer() {
		// role scope overrides any trainer criteria sent by the client
		id := actor.ID
		filter.TrainerID = &id
		filter.Unassigned = false
	}
	return svc.repo.FilterCourses(filter)
}

func (svc *service) Update(id int, uc UpdateCourse) (Course, error) {
	c := Course{
		ID:          id,
		Name:        uc.Name,
		Description: uc.Description,
		Date:        uc.Date,
		StartTime:   uc.StartTime,
		EndTime:     uc.EndTime,
		Status:      uc.Status,
		Location:    uc.Location,
		UpdatedAt:   time.Now().UTC(),
	}
	if uc.Unassign {
		uc.TrainerID = nil
		c.TrainerID = nil
	} else if uc.TrainerID != nil {
		c.TrainerID = uc.TrainerID
		if err := svc.resolveTrainerName(&c); err != nil {
			return Course{}, err
		}
	}
	return svc.repo.UpdateCourse(c, uc)
}

func (svc *service) Delete(ids ...int) error {
	return svc.repo.DeleteCoursesByID(ids...)
}

// resolveTrainerName snapshots the trainer's current name onto the course.
// The snapshot is not updated when the trainer is later renamed.
func (svc *service) resolveTrainerName(c *Course) error {
	if c.TrainerID == nil {
		c.TrainerName = ""
		return nil
	}
	usr, err := svc.usrRepo.GetUserByID(*c.TrainerID)
	if err != nil {
		if err == user.ErrNotFound {
			return core.NewValidationError(nil, core.FieldError{Field: "trainer_id", Error: "trainer not found"})
		}
		return errors.Wrap(err, "resolving trainer")
	}
	if !usr.IsTrainer() {
		return core.NewValidationError(nil, core.FieldError{Field: "trainer_id", Error: "user is not a trainer"})
	}
	c.TrainerName = usr.Name
	return nil
}
