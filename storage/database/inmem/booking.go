package inmemdb

import (
	"sort"
	"sync"
	"time"

	"github.com/lernfeld/kursadmin/core/booking"
)

type bookingTable struct {
	mutex   sync.RWMutex
	table   map[int]*booking.Booking
	pkCount int
}

func newBookingTable() *bookingTable {
	return &bookingTable{table: make(map[int]*booking.Booking)}
}

type bookingRepository struct {
	db *bookingTable
}

var _ booking.Repository = (*bookingRepository)(nil)

func NewBookingRepository(db *DB) booking.Repository {
	return &bookingRepository{db: db.booking}
}

func (repo *bookingRepository) query() []booking.Booking {
	bookings := make([]booking.Booking, 0, len(repo.db.table))
	for _, b := range repo.db.table {
		bookings = append(bookings, *b)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
	return bookings
}

func (repo *bookingRepository) CreateBooking(b booking.Booking) (booking.Booking, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	b.ID = repo.db.pkCount
	repo.db.table[b.ID] = &b
	return b, nil
}

func (repo *bookingRepository) QueryAllBookings() ([]booking.Booking, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *bookingRepository) GetBookingByID(id int) (booking.Booking, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if b, ok := repo.db.table[id]; ok {
		return *b, nil
	}
	return booking.Booking{}, booking.ErrNotFound
}

func (repo *bookingRepository) FilterBookings(filter booking.QueryFilter) ([]booking.Booking, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	bookings := make([]booking.Booking, 0)
	for _, b := range repo.query() {
		if filter.Match(b) {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (repo *bookingRepository) SetBookingStatus(id int, status, notes string, updatedAt time.Time) (booking.Booking, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[id]
	if !ok {
		return booking.Booking{}, booking.ErrNotFound
	}
	orig.Status = status
	orig.Notes = notes
	orig.UpdatedAt = updatedAt

	repo.db.table[id] = orig
	return *orig, nil
}

func (repo *bookingRepository) DeleteBookingsByID(ids ...int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
