package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lernfeld/kursadmin/core/course"
)

type courseRow struct {
	ID          int       `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Date        string    `db:"date"`
	StartTime   string    `db:"start_time"`
	EndTime     string    `db:"end_time"`
	Capacity    int       `db:"capacity"`
	Enrolled    int       `db:"enrolled"`
	TrainerID   null.Int  `db:"trainer_id"`
	TrainerName string    `db:"trainer_name"`
	Status      string    `db:"status"`
	Location    string    `db:"location"`
	Price       float64   `db:"price"`
	CreatedAt   null.Time `db:"created_at"`
	UpdatedAt   null.Time `db:"updated_at"`
}

func (row courseRow) unpack() course.Course {
	c := course.Course{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Date:        row.Date,
		StartTime:   row.StartTime,
		EndTime:     row.EndTime,
		Capacity:    row.Capacity,
		Enrolled:    row.Enrolled,
		TrainerName: row.TrainerName,
		Status:      row.Status,
		Location:    row.Location,
		Price:       row.Price,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
	if row.TrainerID.Valid {
		id := int(row.TrainerID.Int)
		c.TrainerID = &id
	}
	return c
}

func unpackCourses(rows []courseRow) []course.Course {
	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.unpack())
	}
	return courses
}

func nullIntFromPtr(p *int) null.Int {
	if p == nil {
		return null.Int{}
	}
	return null.IntFrom(*p)
}

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return course.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo courseRepository) CreateCourse(c course.Course) (course.Course, error) {
	query := `
INSERT INTO course (name, description, date, start_time, end_time, capacity, enrolled,
                    trainer_id, trainer_name, status, location, price, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id`
	err := repo.db.Get(
		&c.ID, query,
		c.Name, c.Description, c.Date, c.StartTime, c.EndTime, c.Capacity, c.Enrolled,
		nullIntFromPtr(c.TrainerID), c.TrainerName, c.Status, c.Location, c.Price,
		null.TimeFrom(c.CreatedAt.UTC()), null.TimeFrom(c.UpdatedAt.UTC()),
	)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return c, nil
}

func (repo courseRepository) QueryAllCourses() ([]course.Course, error) {
	var rows []courseRow
	if err := repo.db.Select(&rows, `SELECT * FROM course ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return unpackCourses(rows), nil
}

func (repo courseRepository) GetCourseByID(id int) (course.Course, error) {
	var row courseRow
	if err := repo.db.Get(&row, `SELECT * FROM course WHERE id = $1`, id); err != nil {
		return course.Course{}, repo.trapNoRowsErr(err, "finding course by ID")
	}
	return row.unpack(), nil
}

func (repo courseRepository) FilterCourses(filter course.QueryFilter) ([]course.Course, error) {
	qb := newQueryBuilder(`SELECT * FROM course`)
	if filter.Search != "" {
		val := "%" + filter.Search + "%"
		qb.where(`(name ILIKE ? OR description ILIKE ?)`, val, val)
	}
	if filter.Status != "" {
		qb.where(`status = ?`, filter.Status)
	}
	if filter.TrainerID != nil {
		qb.where(`trainer_id = ?`, *filter.TrainerID)
	}
	if filter.Unassigned {
		qb.where(`trainer_id IS NULL`)
	}

	var rows []courseRow
	query, args := qb.build(repo.db, `ORDER BY id`)
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering courses")
	}
	return unpackCourses(rows), nil
}

func (repo courseRepository) UpdateCourse(c course.Course, uc course.UpdateCourse) (course.Course, error) {
	orig, err := repo.GetCourseByID(c.ID)
	if err != nil {
		return course.Course{}, err
	}

	// only save set fields
	orig.Name = c.Name
	if c.Description != "" {
		orig.Description = c.Description
	}
	if c.Date != "" {
		orig.Date = c.Date
	}
	if c.StartTime != "" {
		orig.StartTime = c.StartTime
	}
	if c.EndTime != "" {
		orig.EndTime = c.EndTime
	}
	if uc.Capacity != nil {
		orig.Capacity = *uc.Capacity
	}
	if uc.Enrolled != nil {
		orig.Enrolled = *uc.Enrolled
	}
	if uc.Unassign {
		orig.TrainerID = nil
		orig.TrainerName = ""
	} else if uc.TrainerID != nil {
		orig.TrainerID = c.TrainerID
		orig.TrainerName = c.TrainerName
	}
	if c.Status != "" {
		orig.Status = c.Status
	}
	if c.Location != "" {
		orig.Location = c.Location
	}
	if uc.Price != nil {
		orig.Price = *uc.Price
	}
	orig.UpdatedAt = c.UpdatedAt

	query := `
UPDATE course
SET name = $1, description = $2, date = $3, start_time = $4, end_time = $5, capacity = $6,
    enrolled = $7, trainer_id = $8, trainer_name = $9, status = $10, location = $11,
    price = $12, updated_at = $13
WHERE id = $14`
	_, err = repo.db.Exec(
		query,
		orig.Name, orig.Description, orig.Date, orig.StartTime, orig.EndTime, orig.Capacity,
		orig.Enrolled, nullIntFromPtr(orig.TrainerID), orig.TrainerName, orig.Status, orig.Location,
		orig.Price, null.TimeFrom(orig.UpdatedAt.UTC()),
		orig.ID,
	)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	return orig, nil
}

func (repo courseRepository) DeleteCoursesByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM course WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting courses")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting courses")
	}
	return nil
}
