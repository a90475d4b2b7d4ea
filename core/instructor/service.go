package instructor

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNotFound         = errors.New("instructor not found")
	ErrDocumentNotFound = errors.New("document not found")
)

type (
	Repository interface {
		CreateInstructor(ins Instructor) (Instructor, error)
		QueryAllInstructors() ([]Instructor, error)
		GetInstructorByID(id int) (Instructor, error)
		// FilterInstructors applies an AND operation on available QueryFilter fields.
		FilterInstructors(filter QueryFilter) ([]Instructor, error)
		UpdateInstructor(ins Instructor, ui UpdateInstructor) (Instructor, error)
		DeleteInstructorsByID(ids ...int) error

		CreateDocument(doc Document) (Document, error)
		QueryDocumentsByInstructorID(instructorID int) ([]Document, error)
		GetDocumentByID(id int) (Document, error)
		DeleteDocumentByID(id int) error
	}

	// FileStore persists uploaded document blobs under server-assigned names.
	FileStore interface {
		Save(name string, r io.Reader) (int64, error)
		Open(name string) (io.ReadCloser, error)
		Remove(name string) error
	}

	Service interface {
		Create(ni NewInstructor) (Instructor, error)
		QueryAll() ([]Instructor, error)
		GetByID(id int) (Instructor, error)
		Filter(filter QueryFilter) ([]Instructor, error)
		Update(id int, ui UpdateInstructor) (Instructor, error)
		Delete(ids ...int) error

		// UploadDocument stores one document blob and its metadata row.
		// Callers uploading a batch invoke it once per file so a failure
		// does not abort the remaining files.
		UploadDocument(instructorID int, filename, contentType string, r io.Reader) (Document, error)
		QueryDocuments(instructorID int) ([]Document, error)
		OpenDocument(id int) (Document, io.ReadCloser, error)
		DeleteDocument(id int) error
	}

	service struct {
		repo  Repository
		files FileStore
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, files FileStore) Service {
	return &service{repo: repo, files: files}
}

func (svc *service) Create(ni NewInstructor) (Instructor, error) {
	now := time.Now().UTC()
	return svc.repo.CreateInstructor(Instructor{
		FirstName:      ni.FirstName,
		LastName:       ni.LastName,
		DateOfBirth:    ni.DateOfBirth,
		Bafoeg:         ni.Bafoeg,
		BafoegAmount:   ni.BafoegAmount,
		DriversLicense: ni.DriversLicense,
		Insurance:      ni.Insurance,
		PhoneNumber:    ni.PhoneNumber,
		EmailAddress:   ni.EmailAddress,
		Languages:      ni.Languages,
		Salary:         ni.Salary,
		EmploymentType: ni.EmploymentType,
		StudyStart:     ni.StudyStart,
		WorkStart:      ni.WorkStart,
		LicensedUntil:  ni.LicensedUntil,
		WorkplaceID:    ni.WorkplaceID,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

func (svc *service) QueryAll() ([]Instructor, error) {
	return svc.repo.QueryAllInstructors()
}

func (svc *service) GetByID(id int) (Instructor, error) {
	return svc.repo.GetInstructorByID(id)
}

func (svc *service) Filter(filter QueryFilter) ([]Instructor, error) {
	filter.Clean()
	return svc.repo.FilterInstructors(filter)
}

func (svc *service) Update(id int, ui UpdateInstructor) (Instructor, error) {
	ins := Instructor{
		ID:             id,
		FirstName:      ui.FirstName,
		LastName:       ui.LastName,
		DateOfBirth:    ui.DateOfBirth,
		BafoegAmount:   ui.BafoegAmount,
		Insurance:      ui.Insurance,
		PhoneNumber:    ui.PhoneNumber,
		EmailAddress:   ui.EmailAddress,
		Languages:      ui.Languages,
		Salary:         ui.Salary,
		EmploymentType: ui.EmploymentType,
		StudyStart:     ui.StudyStart,
		WorkStart:      ui.WorkStart,
		LicensedUntil:  ui.LicensedUntil,
		WorkplaceID:    ui.WorkplaceID,
		UpdatedAt:      time.Now().UTC(),
	}
	return svc.repo.UpdateInstructor(ins, ui)
}

func (svc *service) Delete(ids ...int) error {
	for _, id := range ids {
		docs, err := svc.repo.QueryDocumentsByInstructorID(id)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if err = svc.DeleteDocument(doc.ID); err != nil {
				return err
			}
		}
	}
	return svc.repo.DeleteInstructorsByID(ids...)
}

func (svc *service) UploadDocument(instructorID int, filename, contentType string, r io.Reader) (Document, error) {
	if _, err := svc.repo.GetInstructorByID(instructorID); err != nil {
		return Document{}, err
	}

	stored := uuid.New().String()
	size, err := svc.files.Save(stored, r)
	if err != nil {
		return Document{}, errors.Wrap(err, "storing document blob")
	}

	doc, err := svc.repo.CreateDocument(Document{
		InstructorID: instructorID,
		Filename:     filename,
		StoredName:   stored,
		ContentType:  contentType,
		Size:         size,
		UploadedAt:   time.Now().UTC(),
	})
	if err != nil {
		// do not leave an orphaned blob behind
		_ = svc.files.Remove(stored)
		return Document{}, err
	}
	return doc, nil
}

func (svc *service) QueryDocuments(instructorID int) ([]Document, error) {
	if _, err := svc.repo.GetInstructorByID(instructorID); err != nil {
		return nil, err
	}
	return svc.repo.QueryDocumentsByInstructorID(instructorID)
}

func (svc *service) OpenDocument(id int) (Document, io.ReadCloser, error) {
	doc, err := svc.repo.GetDocumentByID(id)
	if err != nil {
		return Document{}, nil, err
	}
	rc, err := svc.files.Open(doc.StoredName)
	if err != nil {
		return Document{}, nil, errors.Wrap(err, "opening document blob")
	}
	return doc, rc, nil
}

func (svc *service) DeleteDocument(id int) error {
	doc, err := svc.repo.GetDocumentByID(id)
	if err != nil {
		return err
	}
	if err = svc.repo.DeleteDocumentByID(id); err != nil {
		return err
	}
	return svc.files.Remove(doc.StoredName)
}
