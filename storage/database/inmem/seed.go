package inmemdb

import (
	"time"

	"github.com/pkg/errors"

	"github.com/lernfeld/kursadmin/core/booking"
	"github.com/lernfeld/kursadmin/core/city"
	"github.com/lernfeld/kursadmin/core/course"
	"github.com/lernfeld/kursadmin/core/inventory"
	"github.com/lernfeld/kursadmin/core/user"
)

// SeedPassword is the password every seeded account gets; dev/test only.
const SeedPassword = "Kursadmin-Dev1!"

func intPtr(i int) *int { return &i }

// Seed loads the development fixtures: an admin, three trainers, five
// courses, six bookings, reference cities and a handful of articles.
func Seed(db *DB) error {
	usrRepo := NewUserRepository(db)
	courseRepo := NewCourseRepository(db)
	bookingRepo := NewBookingRepository(db)
	invRepo := NewInventoryRepository(db)
	cityRepo := &cityRepository{db: db.city}

	now := time.Now().UTC()

	users := []user.User{
		{Name: "Admin User", Email: "admin@example.com", Role: user.RoleAdmin, Status: user.StatusActive},
		{Name: "John Doe", Email: "john@example.com", Role: user.RoleTrainer, Status: user.StatusActive},
		{Name: "Jane Smith", Email: "jane@example.com", Role: user.RoleTrainer, Status: user.StatusActive},
		{Name: "Robert Johnson", Email: "robert@example.com", Role: user.RoleTrainer, Status: user.StatusActive},
	}
	for i := range users {
		users[i].CreatedAt = now
		users[i].UpdatedAt = now
		if err := users[i].SetPassword(SeedPassword); err != nil {
			return errors.Wrap(err, "seeding users")
		}
		usr, err := usrRepo.CreateUser(users[i])
		if err != nil {
			return errors.Wrap(err, "seeding users")
		}
		users[i] = usr
	}

	courses := []course.Course{
		{
			Name:        "CPR Training",
			Description: "Learn essential CPR techniques for emergency situations",
			Date:        "2025-05-10", StartTime: "09:00", EndTime: "17:00",
			Capacity: 20, Enrolled: 15,
			TrainerID: intPtr(users[1].ID), TrainerName: users[1].Name,
			Status:   course.StatusOpen,
			Location: "Main Training Center, Room 101", Price: 199.99,
		},
		{
			Name:        "First Aid Basics",
			Description: "Comprehensive introduction to first aid procedures",
			Date:        "2025-05-15", StartTime: "10:00", EndTime: "16:00",
			Capacity: 15, Enrolled: 15,
			TrainerID: intPtr(users[2].ID), TrainerName: users[2].Name,
			Status:   course.StatusFullyBooked,
			Location: "Health Sciences Building, Lab 3", Price: 149.99,
		},
		{
			Name:        "Advanced Life Support",
			Description: "Professional-level life support techniques for healthcare providers",
			Date:        "2025-05-20", StartTime: "08:00", EndTime: "18:00",
			Capacity: 12, Enrolled: 8,
			TrainerID: intPtr(users[1].ID), TrainerName: users[1].Name,
			Status:   course.StatusOpen,
			Location: "Medical Training Facility, Suite 5", Price: 299.99,
		},
		{
			Name:        "Emergency Response",
			Description: "Rapid response protocols for emergency situations",
			Date:        "2025-05-25", StartTime: "09:30", EndTime: "16:30",
			Capacity: 18, Enrolled: 10,
			TrainerID: intPtr(users[3].ID), TrainerName: users[3].Name,
			Status:   course.StatusOpen,
			Location: "Community Center, Hall B", Price: 179.99,
		},
		{
			Name:        "Pediatric First Aid",
			Description: "Specialized first aid techniques for infants and children",
			Date:        "2025-06-01", StartTime: "10:00", EndTime: "15:00",
			Capacity: 15, Enrolled: 0,
			Status:   course.StatusClosed,
			Location: "Children's Hospital, Training Room", Price: 169.99,
		},
	}
	for i := range courses {
		courses[i].CreatedAt = now
		courses[i].UpdatedAt = now
		crs, err := courseRepo.CreateCourse(courses[i])
		if err != nil {
			return errors.Wrap(err, "seeding courses")
		}
		courses[i] = crs
	}

	bookings := []booking.Booking{
		{UserName: "Alice Smith", UserEmail: "alice@example.com", CourseID: courses[0].ID, Status: booking.StatusApproved},
		{UserName: "Bob Johnson", UserEmail: "bob@example.com", CourseID: courses[0].ID, Status: booking.StatusPending},
		{UserName: "Carol Williams", UserEmail: "carol@example.com", CourseID: courses[1].ID, Status: booking.StatusApproved},
		{UserName: "David Brown", UserEmail: "david@example.com", CourseID: courses[2].ID, Status: booking.StatusRejected, Notes: "Applicant does not meet prerequisites"},
		{UserName: "Emma Davis", UserEmail: "emma@example.com", CourseID: courses[1].ID, Status: booking.StatusCancelled, Notes: "Cancelled by user"},
		{UserName: "Frank Miller", UserEmail: "frank@example.com", CourseID: courses[3].ID, Status: booking.StatusPending},
	}
	for i, b := range bookings {
		for _, crs := range courses {
			if crs.ID == b.CourseID {
				b.CourseName = crs.Name
				b.Date = crs.Date
			}
		}
		b.UserID = users[0].ID // fixture customers have no accounts of their own
		b.CreatedAt = now.Add(time.Duration(-i) * 24 * time.Hour)
		b.UpdatedAt = b.CreatedAt
		if _, err := bookingRepo.CreateBooking(b); err != nil {
			return errors.Wrap(err, "seeding bookings")
		}
	}

	for _, name := range []string{"Berlin", "Hamburg", "München", "Köln"} {
		cityRepo.AddCity(city.City{Name: name})
	}

	articles := []inventory.Article{
		{Name: "First Aid Kit", IsConsumable: true},
		{Name: "Resuscitation Manikin"},
		{Name: "Projector", IsCheckbox: true},
		{Name: "Bandage Pack", IsConsumable: true},
	}
	for _, art := range articles {
		art.CreatedAt = now
		art.UpdatedAt = now
		if _, err := invRepo.CreateArticle(art); err != nil {
			return errors.Wrap(err, "seeding articles")
		}
	}

	return nil
}
