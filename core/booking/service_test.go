package booking_test

import (
	"sync"
	"testing"

	"github.com/lernfeld/kursadmin/core"
	"github.com/lernfeld/kursadmin/core/booking"
	"github.com/lernfeld/kursadmin/core/course"
	"github.com/lernfeld/kursadmin/core/user"
	inmemdb "github.com/lernfeld/kursadmin/storage/database/inmem"
)

// mailRecorder captures outgoing messages instead of sending them.
type mailRecorder struct {
	mutex    sync.Mutex
	messages []*core.EmailMessage
}

func (r *mailRecorder) SendMessages(messages ...*core.EmailMessage) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.messages = append(r.messages, messages...)
}

func (r *mailRecorder) last(t *testing.T) *core.EmailMessage {
	t.Helper()
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if len(r.messages) == 0 {
		t.Fatal("no mail was sent")
	}
	return r.messages[len(r.messages)-1]
}

type fixture struct {
	svc    booking.Service
	mails  *mailRecorder
	usr    user.User
	course course.Course
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := inmemdb.NewDB()
	usrRepo := inmemdb.NewUserRepository(db)
	courseRepo := inmemdb.NewCourseRepository(db)
	mails := &mailRecorder{}

	usr, err := usrRepo.CreateUser(user.User{Name: "Alice Smith", Email: "alice@test.de", Role: user.RoleAdmin, Status: user.StatusActive})
	if err != nil {
		t.Fatalf("CreateUser() failed, %v", err)
	}
	crs, err := courseRepo.CreateCourse(course.Course{Name: "CPR Training", Date: "2025-05-10", Capacity: 12, Status: course.StatusOpen})
	if err != nil {
		t.Fatalf("CreateCourse() failed, %v", err)
	}

	return &fixture{
		svc:    booking.NewService(inmemdb.NewBookingRepository(db), usrRepo, courseRepo, mails),
		mails:  mails,
		usr:    usr,
		course: crs,
	}
}

func (f *fixture) createBooking(t *testing.T) booking.Booking {
	t.Helper()
	b, err := f.svc.Create(booking.NewBooking{UserID: f.usr.ID, CourseID: f.course.ID})
	if err != nil {
		t.Fatalf("Create() failed, %v", err)
	}
	return b
}

func TestServiceCreate(t *testing.T) {
	f := setup(t)

	b := f.createBooking(t)
	if b.Status != booking.StatusPending {
		t.Errorf("b.Status = %s, want %s", b.Status, booking.StatusPending)
	}
	if b.UserName != "Alice Smith" || b.UserEmail != "alice@test.de" {
		t.Errorf("user snapshot = (%s, %s)", b.UserName, b.UserEmail)
	}
	if b.CourseName != "CPR Training" || b.Date != "2025-05-10" {
		t.Errorf("course snapshot = (%s, %s)", b.CourseName, b.Date)
	}

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.svc.Create(booking.NewBooking{UserID: 999, CourseID: f.course.ID})
		if _, ok := err.(*core.ValidationError); !ok {
			t.Errorf("Create() error = %v, want ValidationError", err)
		}
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := f.svc.Create(booking.NewBooking{UserID: f.usr.ID, CourseID: 999})
		if _, ok := err.(*core.ValidationError); !ok {
			t.Errorf("Create() error = %v, want ValidationError", err)
		}
	})
}

func TestServiceApprove(t *testing.T) {
	f := setup(t)
	b := f.createBooking(t)

	approved, err := f.svc.Approve(b.ID)
	if err != nil {
		t.Fatalf("Approve() failed, %v", err)
	}
	if approved.Status != booking.StatusApproved {
		t.Errorf("approved.Status = %s, want %s", approved.Status, booking.StatusApproved)
	}

	msg := f.mails.last(t)
	if msg.TemplateName != "booking_approved" {
		t.Errorf("msg.TemplateName = %s, want booking_approved", msg.TemplateName)
	}
	if len(msg.To) != 1 || msg.To[0].Address != "alice@test.de" {
		t.Errorf("msg.To = %v", msg.To)
	}

	t.Run("already decided", func(t *testing.T) {
		if _, err := f.svc.Approve(b.ID); err != booking.ErrNotPending {
			t.Errorf("Approve() error = %v, want ErrNotPending", err)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		if _, err := f.svc.Approve(999); err != booking.ErrNotFound {
			t.Errorf("Approve() error = %v, want ErrNotFound", err)
		}
	})
}

func TestServiceReject(t *testing.T) {
	f := setup(t)
	b := f.createBooking(t)

	rejected, err := f.svc.Reject(b.ID, booking.RejectBooking{Notes: "does not meet prerequisites"})
	if err != nil {
		t.Fatalf("Reject() failed, %v", err)
	}
	if rejected.Status != booking.StatusRejected {
		t.Errorf("rejected.Status = %s, want %s", rejected.Status, booking.StatusRejected)
	}
	if rejected.Notes != "does not meet prerequisites" {
		t.Errorf("rejected.Notes = %q", rejected.Notes)
	}

	if msg := f.mails.last(t); msg.TemplateName != "booking_rejected" {
		t.Errorf("msg.TemplateName = %s, want booking_rejected", msg.TemplateName)
	}

	t.Run("already decided", func(t *testing.T) {
		if _, err := f.svc.Reject(b.ID, booking.RejectBooking{Notes: "again"}); err != booking.ErrNotPending {
			t.Errorf("Reject() error = %v, want ErrNotPending", err)
		}
	})
}

func TestServiceCancel(t *testing.T) {
	f := setup(t)
	b := f.createBooking(t)

	cancelled, err := f.svc.Cancel(b.ID, "")
	if err != nil {
		t.Fatalf("Cancel() failed, %v", err)
	}
	if cancelled.Status != booking.StatusCancelled {
		t.Errorf("cancelled.Status = %s, want %s", cancelled.Status, booking.StatusCancelled)
	}
	if cancelled.Notes != "Cancelled by user" {
		t.Errorf("cancelled.Notes = %q, want default note", cancelled.Notes)
	}

	t.Run("idempotent", func(t *testing.T) {
		again, err := f.svc.Cancel(b.ID, "later note")
		if err != nil {
			t.Fatalf("Cancel() failed, %v", err)
		}
		if again.Notes != "Cancelled by user" {
			t.Errorf("again.Notes = %q, notes overwritten on repeat cancel", again.Notes)
		}
	})

	t.Run("approved can be cancelled", func(t *testing.T) {
		b2 := f.createBooking(t)
		if _, err := f.svc.Approve(b2.ID); err != nil {
			t.Fatalf("Approve() failed, %v", err)
		}
		cancelled, err := f.svc.Cancel(b2.ID, "schedule conflict")
		if err != nil {
			t.Fatalf("Cancel() failed, %v", err)
		}
		if cancelled.Notes != "schedule conflict" {
			t.Errorf("cancelled.Notes = %q", cancelled.Notes)
		}
	})
}
