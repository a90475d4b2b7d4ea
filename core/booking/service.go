package booking

import (
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/lernfeld/kursadmin/core"
	"github.com/lernfeld/kursadmin/core/course"
	"github.com/lernfeld/kursadmin/core/user"
)

var (
	ErrNotFound   = errors.New("booking not found")
	ErrNotPending = errors.New("booking is not pending")
)

type (
	Repository interface {
		CreateBooking(b Booking) (Booking, error)
		QueryAllBookings() ([]Booking, error)
		GetBookingByID(id int) (Booking, error)
		// FilterBookings applies an AND operation on available QueryFilter fields.
		FilterBookings(filter QueryFilter) ([]Booking, error)
		// SetBookingStatus transitions a booking and stores the
		// accompanying notes; notes are cleared unless provided.
		SetBookingStatus(id int, status, notes string, updatedAt time.Time) (Booking, error)
		DeleteBookingsByID(ids ...int) error
	}

	Service interface {
		Create(nb NewBooking) (Booking, error)
		QueryAll() ([]Booking, error)
		GetByID(id int) (Booking, error)
		Filter(filter QueryFilter) ([]Booking, error)
		// Approve transitions a pending booking to approved and notifies the user.
		Approve(id int) (Booking, error)
		// Reject transitions a pending booking to rejected, records the
		// reason in Notes and notifies the user.
		Reject(id int, rb RejectBooking) (Booking, error)
		Cancel(id int, notes string) (Booking, error)
		Delete(ids ...int) error
	}

	service struct {
		repo       Repository
		usrRepo    user.Repository
		courseRepo course.Repository
		mailSvc    core.EmailService
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, usrRepo user.Repository, courseRepo course.Repository, mailSvc core.EmailService) Service {
	return &service{
		repo:       repo,
		usrRepo:    usrRepo,
		courseRepo: courseRepo,
		mailSvc:    mailSvc,
	}
}

func (svc *service) Create(nb NewBooking) (Booking, error) {
	usr, err := svc.usrRepo.GetUserByID(nb.UserID)
	if err != nil {
		if err == user.ErrNotFound {
			return Booking{}, core.NewValidationError(nil, core.FieldError{Field: "user_id", Error: "user not found"})
		}
		return Booking{}, errors.Wrap(err, "resolving booking user")
	}
	crs, err := svc.courseRepo.GetCourseByID(nb.CourseID)
	if err != nil {
		if err == course.ErrNotFound {
			return Booking{}, core.NewValidationError(nil, core.FieldError{Field: "course_id", Error: "course not found"})
		}
		return Booking{}, errors.Wrap(err, "resolving booking course")
	}

	now := time.Now().UTC()
	b := Booking{
		UserID:     usr.ID,
		UserName:   usr.Name,
		UserEmail:  usr.Email,
		CourseID:   crs.ID,
		CourseName: crs.Name,
		Date:       crs.Date,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateBooking(b)
}

func (svc *service) QueryAll() ([]Booking, error) {
	return svc.repo.QueryAllBookings()
}

func (svc *service) GetByID(id int) (Booking, error) {
	return svc.repo.GetBookingByID(id)
}

func (svc *service) Filter(filter QueryFilter) ([]Booking, error) {
	filter.Clean()
	return svc.repo.FilterBookings(filter)
}

func (svc *service) Approve(id int) (Booking, error) {
	b, err := svc.pending(id)
	if err != nil {
		return Booking{}, err
	}
	b, err = svc.repo.SetBookingStatus(b.ID, StatusApproved, "", time.Now().UTC())
	if err != nil {
		return Booking{}, err
	}
	svc.sendDecisionMail(b, "booking_approved")
	return b, nil
}

func (svc *service) Reject(id int, rb RejectBooking) (Booking, error) {
	b, err := svc.pending(id)
	if err != nil {
		return Booking{}, err
	}
	b, err = svc.repo.SetBookingStatus(b.ID, StatusRejected, rb.Notes, time.Now().UTC())
	if err != nil {
		return Booking{}, err
	}
	svc.sendDecisionMail(b, "booking_rejected")
	return b, nil
}

func (svc *service) Cancel(id int, notes string) (Booking, error) {
	b, err := svc.repo.GetBookingByID(id)
	if err != nil {
		return Booking{}, err
	}
	if b.Status == StatusCancelled {
		return b, nil
	}
	if notes == "" {
		notes = "Cancelled by user"
	}
	return svc.repo.SetBookingStatus(b.ID, StatusCancelled, notes, time.Now().UTC())
}

func (svc *service) Delete(ids ...int) error {
	return svc.repo.DeleteBookingsByID(ids...)
}

func (svc *service) pending(id int) (Booking, error) {
	b, err := svc.repo.GetBookingByID(id)
	if err != nil {
		return Booking{}, err
	}
	if !b.IsPending() {
		return Booking{}, ErrNotPending
	}
	return b, nil
}

func (svc *service) sendDecisionMail(b Booking, template string) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: b.UserName, Address: b.UserEmail}},
		Subject:      "Booking " + b.Status + ": " + b.CourseName,
		TemplateName: template,
		TemplateData: b,
	})
}
