package inmemdb

import (
	"sort"
	"sync"

	"github.com/lernfeld/kursadmin/core/course"
)

type courseTable struct {
	mutex   sync.RWMutex
	table   map[int]*course.Course
	pkCount int
}

func newCourseTable() *courseTable {
	return &courseTable{table: make(map[int]*course.Course)}
}

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db.course}
}

func (repo *courseRepository) query() []course.Course {
	courses := make([]course.Course, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		courses = append(courses, *c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses
}

func (repo *courseRepository) CreateCourse(c course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	c.ID = repo.db.pkCount
	repo.db.table[c.ID] = &c
	return c, nil
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *courseRepository) GetCourseByID(id int) (course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.table[id]; ok {
		return *c, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) FilterCourses(filter course.QueryFilter) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]course.Course, 0)
	for _, c := range repo.query() {
		if filter.Match(c) {
			courses = append(courses, c)
		}
	}
	return courses, nil
}

func (repo *courseRepository) UpdateCourse(c course.Course, uc course.UpdateCourse) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	orig, ok := repo.db.table[c.ID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
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

	repo.db.table[c.ID] = orig
	return *orig, nil
}

func (repo *courseRepository) DeleteCoursesByID(ids ...int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
