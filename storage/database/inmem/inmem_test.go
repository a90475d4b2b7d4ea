package inmemdb

import (
	"testing"
	"time"

	"github.com/lernfeld/kursadmin/core/booking"
	"github.com/lernfeld/kursadmin/core/course"
	"github.com/lernfeld/kursadmin/core/user"
)

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(NewDB())

	usr, err := repo.CreateUser(user.User{Name: "Jane Smith", Email: "jane@test.de", Role: user.RoleTrainer, Status: user.StatusActive})
	if err != nil {
		t.Fatalf("CreateUser() failed, %v", err)
	}
	if usr.ID == 0 {
		t.Error("CreateUser() did not assign an ID")
	}

	t.Run("email uniqueness is case-insensitive", func(t *testing.T) {
		if err := repo.CheckEmailUniqueness("JANE@test.de"); err != user.ErrEmailExists {
			t.Errorf("CheckEmailUniqueness() error = %v, want ErrEmailExists", err)
		}
		if err := repo.CheckEmailUniqueness("jane@test.de", usr); err != nil {
			t.Errorf("CheckEmailUniqueness() with exclusion error = %v", err)
		}
		if err := repo.CheckEmailUniqueness("other@test.de"); err != nil {
			t.Errorf("CheckEmailUniqueness() error = %v", err)
		}
	})

	t.Run("get by email is case-insensitive", func(t *testing.T) {
		got, err := repo.GetUserByEmail("Jane@Test.DE")
		if err != nil {
			t.Fatalf("GetUserByEmail() failed, %v", err)
		}
		if got.ID != usr.ID {
			t.Errorf("got.ID = %d, want %d", got.ID, usr.ID)
		}
	})

	t.Run("update keeps unset fields", func(t *testing.T) {
		updated, err := repo.UpdateUser(user.User{ID: usr.ID, Name: "Jane Smith", Email: "jane@test.de", Role: user.RoleAdmin, UpdatedAt: time.Now().UTC()}, false)
		if err != nil {
			t.Fatalf("UpdateUser() failed, %v", err)
		}
		if updated.Role != user.RoleAdmin {
			t.Errorf("updated.Role = %s, want %s", updated.Role, user.RoleAdmin)
		}
		if updated.Status != user.StatusActive {
			t.Errorf("updated.Status = %s, blank status was saved", updated.Status)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := repo.DeleteUsersByID(usr.ID); err != nil {
			t.Fatalf("DeleteUsersByID() failed, %v", err)
		}
		if _, err := repo.GetUserByID(usr.ID); err != user.ErrNotFound {
			t.Errorf("GetUserByID() error = %v, want ErrNotFound", err)
		}
	})
}

func TestBookingRepositorySetStatus(t *testing.T) {
	repo := NewBookingRepository(NewDB())

	b, err := repo.CreateBooking(booking.Booking{UserName: "Alice", CourseName: "CPR", Status: booking.StatusPending})
	if err != nil {
		t.Fatalf("CreateBooking() failed, %v", err)
	}

	now := time.Now().UTC()
	b, err = repo.SetBookingStatus(b.ID, booking.StatusRejected, "no prerequisites", now)
	if err != nil {
		t.Fatalf("SetBookingStatus() failed, %v", err)
	}
	if b.Status != booking.StatusRejected || b.Notes != "no prerequisites" {
		t.Errorf("b = %+v", b)
	}

	if _, err := repo.SetBookingStatus(999, booking.StatusApproved, "", now); err != booking.ErrNotFound {
		t.Errorf("SetBookingStatus() error = %v, want ErrNotFound", err)
	}
}

func TestQueriesAreOrderedByID(t *testing.T) {
	repo := NewCourseRepository(NewDB())
	for _, name := range []string{"C", "A", "B"} {
		if _, err := repo.CreateCourse(course.Course{Name: name, Status: course.StatusOpen}); err != nil {
			t.Fatalf("CreateCourse() failed, %v", err)
		}
	}

	courses, err := repo.QueryAllCourses()
	if err != nil {
		t.Fatalf("QueryAllCourses() failed, %v", err)
	}
	want := []string{"C", "A", "B"}
	for i, c := range courses {
		if c.Name != want[i] {
			t.Fatalf("courses out of insertion order: %+v", courses)
		}
	}
}

func TestSeed(t *testing.T) {
	db := NewDB()
	if err := Seed(db); err != nil {
		t.Fatalf("Seed() failed, %v", err)
	}

	usrRepo := NewUserRepository(db)
	users, err := usrRepo.QueryAllUsers()
	if err != nil {
		t.Fatalf("QueryAllUsers() failed, %v", err)
	}
	if len(users) != 4 {
		t.Errorf("len(users) = %d, want 4", len(users))
	}

	admin, err := usrRepo.GetUserByEmail("admin@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() failed, %v", err)
	}
	if !admin.IsAdmin() {
		t.Errorf("admin.Role = %s", admin.Role)
	}
	if err := admin.CheckPassword(SeedPassword); err != nil {
		t.Error("seeded admin password does not match SeedPassword")
	}

	courses, err := NewCourseRepository(db).QueryAllCourses()
	if err != nil {
		t.Fatalf("QueryAllCourses() failed, %v", err)
	}
	if len(courses) != 5 {
		t.Errorf("len(courses) = %d, want 5", len(courses))
	}

	bookings, err := NewBookingRepository(db).QueryAllBookings()
	if err != nil {
		t.Fatalf("QueryAllBookings() failed, %v", err)
	}
	if len(bookings) != 6 {
		t.Errorf("len(bookings) = %d, want 6", len(bookings))
	}
	for _, b := range bookings {
		if b.CourseName == "" || b.Date == "" {
			t.Errorf("booking %d is missing its course snapshot: %+v", b.ID, b)
		}
	}

	cities, err := NewCityRepository(db).QueryAllCities()
	if err != nil {
		t.Fatalf("QueryAllCities() failed, %v", err)
	}
	if len(cities) != 4 {
		t.Errorf("len(cities) = %d, want 4", len(cities))
	}

	articles, err := NewInventoryRepository(db).QueryAllArticles()
	if err != nil {
		t.Fatalf("QueryAllArticles() failed, %v", err)
	}
	if len(articles) != 4 {
		t.Errorf("len(articles) = %d, want 4", len(articles))
	}
}
