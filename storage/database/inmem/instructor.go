package inmemdb

import (
	"sort"
	"sync"

	"github.com/lernfeld/kursadmin/core/instructor"
)

type instructorTable struct {
	mutex   sync.RWMutex
	table   map[int]*instructor.Instructor
	pkCount int
}

func newInstructorTable() *instructorTable {
	return &instructorTable{table: make(map[int]*instructor.Instructor)}
}

type documentTable struct {
	mutex   sync.RWMutex
	table   map[int]*instructor.Document
	pkCount int
}

func newDocumentTable() *documentTable {
	return &documentTable{table: make(map[int]*instructor.Document)}
}

type instructorRepository struct {
	db    *instructorTable
	docDB *documentTable
}

var _ instructor.Repository = (*instructorRepository)(nil)

func NewInstructorRepository(db *DB) instructor.Repository {
	return &instructorRepository{db: db.instructor, docDB: db.document}
}

func (repo *instructorRepository) query() []instructor.Instructor {
	instructors := make([]instructor.Instructor, 0, len(repo.db.table))
	for _, ins := range repo.db.table {
		instructors = append(instructors, *ins)
	}
	sort.Slice(instructors, func(i, j int) bool { return instructors[i].ID < instructors[j].ID })
	return instructors
}

func (repo *instructorRepository) CreateInstructor(ins instructor.Instructor) (instructor.Instructor, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	ins.ID = repo.db.pkCount
	repo.db.table[ins.ID] = &ins
	return ins, nil
}

func (repo *instructorRepository) QueryAllInstructors() ([]instructor.Instructor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *instructorRepository) GetInstructorByID(id int) (instructor.Instructor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if ins, ok := repo.db.table[id]; ok {
		return *ins, nil
	}
	return instructor.Instructor{}, instructor.ErrNotFound
}

func (repo *instructorRepository) FilterInstructors(filter instructor.QueryFilter) ([]instructor.Instructor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	instructors := make([]instructor.Instructor, 0)
	for _, ins := range repo.query() {
		if filter.Match(ins) {
			instructors = append(instructors, ins)
		}
	}
	return instructors, nil
}

func (repo *instructorRepository) UpdateInstructor(ins instructor.Instructor, ui instructor.UpdateInstructor) (instructor.Instructor, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	orig, ok := repo.db.table[ins.ID]
	if !ok {
		return instructor.Instructor{}, instructor.ErrNotFound
	}
	orig.FirstName = ins.FirstName
	orig.LastName = ins.LastName
	if ins.DateOfBirth != "" {
		orig.DateOfBirth = ins.DateOfBirth
	}
	if ui.Bafoeg != nil {
		orig.Bafoeg = *ui.Bafoeg
		orig.BafoegAmount = ui.BafoegAmount
	} else if ui.BafoegAmount != nil {
		orig.BafoegAmount = ui.BafoegAmount
	}
	if ui.DriversLicense != nil {
		orig.DriversLicense = *ui.DriversLicense
	}
	if ins.Insurance != "" {
		orig.Insurance = ins.Insurance
	}
	if ins.PhoneNumber != "" {
		orig.PhoneNumber = ins.PhoneNumber
	}
	if ins.EmailAddress != "" {
		orig.EmailAddress = ins.EmailAddress
	}
	if ins.Languages != "" {
		orig.Languages = ins.Languages
	}
	if ui.Salary != nil {
		orig.Salary = ui.Salary
	}
	if ins.EmploymentType != "" {
		orig.EmploymentType = ins.EmploymentType
	}
	if ins.StudyStart != "" {
		orig.StudyStart = ins.StudyStart
	}
	if ins.WorkStart != "" {
		orig.WorkStart = ins.WorkStart
	}
	if ins.LicensedUntil != "" {
		orig.LicensedUntil = ins.LicensedUntil
	}
	if ui.WorkplaceID != nil {
		orig.WorkplaceID = ui.WorkplaceID
	}
	orig.UpdatedAt = ins.UpdatedAt

	repo.db.table[ins.ID] = orig
	return *orig, nil
}

func (repo *instructorRepository) DeleteInstructorsByID(ids ...int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

func (repo *instructorRepository) CreateDocument(doc instructor.Document) (instructor.Document, error) {
	repo.docDB.mutex.Lock()
	defer repo.docDB.mutex.Unlock()

	repo.docDB.pkCount++
	doc.ID = repo.docDB.pkCount
	repo.docDB.table[doc.ID] = &doc
	return doc, nil
}

func (repo *instructorRepository) QueryDocumentsByInstructorID(instructorID int) ([]instructor.Document, error) {
	repo.docDB.mutex.RLock()
	defer repo.docDB.mutex.RUnlock()

	docs := make([]instructor.Document, 0)
	for _, doc := range repo.docDB.table {
		if doc.InstructorID == instructorID {
			docs = append(docs, *doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (repo *instructorRepository) GetDocumentByID(id int) (instructor.Document, error) {
	repo.docDB.mutex.RLock()
	defer repo.docDB.mutex.RUnlock()

	if doc, ok := repo.docDB.table[id]; ok {
		return *doc, nil
	}
	return instructor.Document{}, instructor.ErrDocumentNotFound
}

func (repo *instructorRepository) DeleteDocumentByID(id int) error {
	repo.docDB.mutex.Lock()
	defer repo.docDB.mutex.Unlock()
	delete(repo.docDB.table, id)
	return nil
}
