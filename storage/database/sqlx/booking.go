package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lernfeld/kursadmin/core/booking"
)

type bookingRow struct {
	ID         int       `db:"id"`
	UserID     int       `db:"user_id"`
	UserName   string    `db:"user_name"`
	UserEmail  string    `db:"user_email"`
	CourseID   int       `db:"course_id"`
	CourseName string    `db:"course_name"`
	Date       string    `db:"date"`
	Status     string    `db:"status"`
	Notes      string    `db:"notes"`
	CreatedAt  null.Time `db:"created_at"`
	UpdatedAt  null.Time `db:"updated_at"`
}

func (row bookingRow) unpack() booking.Booking {
	return booking.Booking{
		ID:         row.ID,
		UserID:     row.UserID,
		UserName:   row.UserName,
		UserEmail:  row.UserEmail,
		CourseID:   row.CourseID,
		CourseName: row.CourseName,
		Date:       row.Date,
		Status:     row.Status,
		Notes:      row.Notes,
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
	}
}

func unpackBookings(rows []bookingRow) []booking.Booking {
	bookings := make([]booking.Booking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, row.unpack())
	}
	return bookings
}

type bookingRepository struct {
	db *sqlx.DB
}

var _ booking.Repository = (*bookingRepository)(nil) // interface compliance check

func NewBookingRepository(db *sqlx.DB) *bookingRepository {
	return &bookingRepository{db: db}
}

func (repo bookingRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return booking.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo bookingRepository) CreateBooking(b booking.Booking) (booking.Booking, error) {
	query := `
INSERT INTO booking (user_id, user_name, user_email, course_id, course_name, date, status, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`
	err := repo.db.Get(
		&b.ID, query,
		b.UserID, b.UserName, b.UserEmail, b.CourseID, b.CourseName, b.Date, b.Status, b.Notes,
		null.TimeFrom(b.CreatedAt.UTC()), null.TimeFrom(b.UpdatedAt.UTC()),
	)
	if err != nil {
		return booking.Booking{}, errors.Wrap(err, "inserting booking")
	}
	return b, nil
}

func (repo bookingRepository) QueryAllBookings() ([]booking.Booking, error) {
	var rows []bookingRow
	if err := repo.db.Select(&rows, `SELECT * FROM booking ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying bookings")
	}
	return unpackBookings(rows), nil
}

func (repo bookingRepository) GetBookingByID(id int) (booking.Booking, error) {
	var row bookingRow
	if err := repo.db.Get(&row, `SELECT * FROM booking WHERE id = $1`, id); err != nil {
		return booking.Booking{}, repo.trapNoRowsErr(err, "finding booking by ID")
	}
	return row.unpack(), nil
}

func (repo bookingRepository) FilterBookings(filter booking.QueryFilter) ([]booking.Booking, error) {
	qb := newQueryBuilder(`SELECT * FROM booking`)
	if filter.Search != "" {
		val := "%" + filter.Search + "%"
		qb.where(`(user_name ILIKE ? OR user_email ILIKE ? OR course_name ILIKE ?)`, val, val, val)
	}
	if filter.Status != "" {
		qb.where(`status = ?`, filter.Status)
	}
	if filter.Date != "" {
		qb.where(`date = ?`, filter.Date)
	}

	var rows []bookingRow
	query, args := qb.build(repo.db, `ORDER BY id`)
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering bookings")
	}
	return unpackBookings(rows), nil
}

func (repo bookingRepository) SetBookingStatus(id int, status, notes string, updatedAt time.Time) (booking.Booking, error) {
	var row bookingRow
	query := `
UPDATE booking
SET status = $1, notes = $2, updated_at = $3
WHERE id = $4
RETURNING *`
	err := repo.db.Get(&row, query, status, notes, null.TimeFrom(updatedAt.UTC()), id)
	if err != nil {
		return booking.Booking{}, repo.trapNoRowsErr(err, "updating booking status")
	}
	return row.unpack(), nil
}

func (repo bookingRepository) DeleteBookingsByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM booking WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting bookings")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting bookings")
	}
	return nil
}
