package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lernfeld/kursadmin/core/instructor"
)

type instructorRow struct {
	ID             int          `db:"id"`
	FirstName      string       `db:"first_name"`
	LastName       string       `db:"last_name"`
	DateOfBirth    string       `db:"date_of_birth"`
	Bafoeg         bool         `db:"bafoeg"`
	BafoegAmount   null.Float64 `db:"bafoeg_amount"`
	DriversLicense bool         `db:"drivers_license"`
	Insurance      string       `db:"insurance"`
	PhoneNumber    string       `db:"phone_number"`
	EmailAddress   string       `db:"email_address"`
	Languages      string       `db:"languages"`
	Salary         null.Float64 `db:"salary"`
	EmploymentType string       `db:"employment_type"`
	StudyStart     string       `db:"study_start"`
	WorkStart      string       `db:"work_start"`
	LicensedUntil  string       `db:"licensed_until"`
	WorkplaceID    null.Int     `db:"workplace_id"`
	CreatedAt      null.Time    `db:"created_at"`
	UpdatedAt      null.Time    `db:"updated_at"`
}

func (row instructorRow) unpack() instructor.Instructor {
	ins := instructor.Instructor{
		ID:             row.ID,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		DateOfBirth:    row.DateOfBirth,
		Bafoeg:         row.Bafoeg,
		BafoegAmount:   row.BafoegAmount.Ptr(),
		DriversLicense: row.DriversLicense,
		Insurance:      row.Insurance,
		PhoneNumber:    row.PhoneNumber,
		EmailAddress:   row.EmailAddress,
		Languages:      row.Languages,
		Salary:         row.Salary.Ptr(),
		EmploymentType: row.EmploymentType,
		StudyStart:     row.StudyStart,
		WorkStart:      row.WorkStart,
		LicensedUntil:  row.LicensedUntil,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
	if row.WorkplaceID.Valid {
		id := int(row.WorkplaceID.Int)
		ins.WorkplaceID = &id
	}
	return ins
}

func unpackInstructors(rows []instructorRow) []instructor.Instructor {
	instructors := make([]instructor.Instructor, 0, len(rows))
	for _, row := range rows {
		instructors = append(instructors, row.unpack())
	}
	return instructors
}

type documentRow struct {
	ID           int       `db:"id"`
	InstructorID int       `db:"instructor_id"`
	Filename     string    `db:"filename"`
	StoredName   string    `db:"stored_name"`
	ContentType  string    `db:"content_type"`
	Size         int64     `db:"size"`
	UploadedAt   null.Time `db:"uploaded_at"`
}

func (row documentRow) unpack() instructor.Document {
	return instructor.Document{
		ID:           row.ID,
		InstructorID: row.InstructorID,
		Filename:     row.Filename,
		StoredName:   row.StoredName,
		ContentType:  row.ContentType,
		Size:         row.Size,
		UploadedAt:   row.UploadedAt.Time,
	}
}

type instructorRepository struct {
	db *sqlx.DB
}

var _ instructor.Repository = (*instructorRepository)(nil) // interface compliance check

func NewInstructorRepository(db *sqlx.DB) *instructorRepository {
	return &instructorRepository{db: db}
}

func (repo instructorRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return instructor.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo instructorRepository) CreateInstructor(ins instructor.Instructor) (instructor.Instructor, error) {
	query := `
INSERT INTO instructor (first_name, last_name, date_of_birth, bafoeg, bafoeg_amount, drivers_license,
                        insurance, phone_number, email_address, languages, salary, employment_type,
                        study_start, work_start, licensed_until, workplace_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
RETURNING id`
	err := repo.db.Get(
		&ins.ID, query,
		ins.FirstName, ins.LastName, ins.DateOfBirth, ins.Bafoeg, null.Float64FromPtr(ins.BafoegAmount),
		ins.DriversLicense, ins.Insurance, ins.PhoneNumber, ins.EmailAddress, ins.Languages,
		null.Float64FromPtr(ins.Salary), ins.EmploymentType, ins.StudyStart, ins.WorkStart,
		ins.LicensedUntil, nullIntFromPtr(ins.WorkplaceID),
		null.TimeFrom(ins.CreatedAt.UTC()), null.TimeFrom(ins.UpdatedAt.UTC()),
	)
	if err != nil {
		return instructor.Instructor{}, errors.Wrap(err, "inserting instructor")
	}
	return ins, nil
}

func (repo instructorRepository) QueryAllInstructors() ([]instructor.Instructor, error) {
	var rows []instructorRow
	if err := repo.db.Select(&rows, `SELECT * FROM instructor ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying instructors")
	}
	return unpackInstructors(rows), nil
}

func (repo instructorRepository) GetInstructorByID(id int) (instructor.Instructor, error) {
	var row instructorRow
	if err := repo.db.Get(&row, `SELECT * FROM instructor WHERE id = $1`, id); err != nil {
		return instructor.Instructor{}, repo.trapNoRowsErr(err, "finding instructor by ID")
	}
	return row.unpack(), nil
}

func (repo instructorRepository) FilterInstructors(filter instructor.QueryFilter) ([]instructor.Instructor, error) {
	qb := newQueryBuilder(`SELECT * FROM instructor`)
	if filter.Search != "" {
		val := "%" + filter.Search + "%"
		qb.where(`(first_name ILIKE ? OR last_name ILIKE ? OR email_address ILIKE ?)`, val, val, val)
	}
	if filter.EmploymentType != "" {
		qb.where(`employment_type = ?`, filter.EmploymentType)
	}
	if filter.WorkplaceID != nil {
		qb.where(`workplace_id = ?`, *filter.WorkplaceID)
	}

	var rows []instructorRow
	query, args := qb.build(repo.db, `ORDER BY id`)
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering instructors")
	}
	return unpackInstructors(rows), nil
}

func (repo instructorRepository) UpdateInstructor(ins instructor.Instructor, ui instructor.UpdateInstructor) (instructor.Instructor, error) {
	orig, err := repo.GetInstructorByID(ins.ID)
	if err != nil {
		return instructor.Instructor{}, err
	}

	// only save set fields
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

	query := `
UPDATE instructor
SET first_name = $1, last_name = $2, date_of_birth = $3, bafoeg = $4, bafoeg_amount = $5,
    drivers_license = $6, insurance = $7, phone_number = $8, email_address = $9, languages = $10,
    salary = $11, employment_type = $12, study_start = $13, work_start = $14, licensed_until = $15,
    workplace_id = $16, updated_at = $17
WHERE id = $18`
	_, err = repo.db.Exec(
		query,
		orig.FirstName, orig.LastName, orig.DateOfBirth, orig.Bafoeg, null.Float64FromPtr(orig.BafoegAmount),
		orig.DriversLicense, orig.Insurance, orig.PhoneNumber, orig.EmailAddress, orig.Languages,
		null.Float64FromPtr(orig.Salary), orig.EmploymentType, orig.StudyStart, orig.WorkStart,
		orig.LicensedUntil, nullIntFromPtr(orig.WorkplaceID), null.TimeFrom(orig.UpdatedAt.UTC()),
		orig.ID,
	)
	if err != nil {
		return instructor.Instructor{}, errors.Wrap(err, "updating instructor")
	}
	return orig, nil
}

func (repo instructorRepository) DeleteInstructorsByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM instructor WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting instructors")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting instructors")
	}
	return nil
}

func (repo instructorRepository) CreateDocument(doc instructor.Document) (instructor.Document, error) {
	query := `
INSERT INTO instructor_document (instructor_id, filename, stored_name, content_type, size, uploaded_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	err := repo.db.Get(
		&doc.ID, query,
		doc.InstructorID, doc.Filename, doc.StoredName, doc.ContentType, doc.Size,
		null.TimeFrom(doc.UploadedAt.UTC()),
	)
	if err != nil {
		return instructor.Document{}, errors.Wrap(err, "inserting instructor document")
	}
	return doc, nil
}

func (repo instructorRepository) QueryDocumentsByInstructorID(instructorID int) ([]instructor.Document, error) {
	var rows []documentRow
	query := `SELECT * FROM instructor_document WHERE instructor_id = $1 ORDER BY id`
	if err := repo.db.Select(&rows, query, instructorID); err != nil {
		return nil, errors.Wrap(err, "querying instructor documents")
	}
	docs := make([]instructor.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, row.unpack())
	}
	return docs, nil
}

func (repo instructorRepository) GetDocumentByID(id int) (instructor.Document, error) {
	var row documentRow
	if err := repo.db.Get(&row, `SELECT * FROM instructor_document WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return instructor.Document{}, instructor.ErrDocumentNotFound
		}
		return instructor.Document{}, errors.Wrap(err, "finding instructor document by ID")
	}
	return row.unpack(), nil
}

func (repo instructorRepository) DeleteDocumentByID(id int) error {
	if _, err := repo.db.Exec(`DELETE FROM instructor_document WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting instructor document")
	}
	return nil
}
