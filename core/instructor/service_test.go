package instructor_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/lernfeld/kursadmin/core/instructor"
	inmemdb "github.com/lernfeld/kursadmin/storage/database/inmem"
)

// memStore keeps blobs in a map so document tests need no disk.
type memStore struct {
	blobs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{blobs: make(map[string][]byte)}
}

func (s *memStore) Save(name string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.blobs[name] = data
	return int64(len(data)), nil
}

func (s *memStore) Open(name string) (io.ReadCloser, error) {
	data, ok := s.blobs[name]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) Remove(name string) error {
	delete(s.blobs, name)
	return nil
}

func setup(t *testing.T) (instructor.Service, *memStore) {
	t.Helper()
	files := newMemStore()
	svc := instructor.NewService(inmemdb.NewInstructorRepository(inmemdb.NewDB()), files)
	return svc, files
}

func createInstructor(t *testing.T, svc instructor.Service) instructor.Instructor {
	t.Helper()
	ins, err := svc.Create(instructor.NewInstructor{
		FirstName:      "Maria",
		LastName:       "Schmidt",
		DateOfBirth:    "1990-03-15",
		Insurance:      "AOK",
		EmploymentType: instructor.EmploymentFullTime,
	})
	if err != nil {
		t.Fatalf("Create() failed, %v", err)
	}
	return ins
}

func TestServiceDocuments(t *testing.T) {
	svc, files := setup(t)
	ins := createInstructor(t, svc)

	doc, err := svc.UploadDocument(ins.ID, "license.pdf", "application/pdf", strings.NewReader("pdf-bytes"))
	if err != nil {
		t.Fatalf("UploadDocument() failed, %v", err)
	}
	if doc.Filename != "license.pdf" || doc.Size != int64(len("pdf-bytes")) {
		t.Errorf("doc = %+v", doc)
	}
	if len(files.blobs) != 1 {
		t.Errorf("len(files.blobs) = %d, want 1", len(files.blobs))
	}

	t.Run("upload for unknown instructor", func(t *testing.T) {
		_, err := svc.UploadDocument(999, "x.pdf", "application/pdf", strings.NewReader("x"))
		if err != instructor.ErrNotFound {
			t.Errorf("UploadDocument() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("list", func(t *testing.T) {
		docs, err := svc.QueryDocuments(ins.ID)
		if err != nil {
			t.Fatalf("QueryDocuments() failed, %v", err)
		}
		if len(docs) != 1 || docs[0].ID != doc.ID {
			t.Errorf("docs = %+v", docs)
		}
	})

	t.Run("open", func(t *testing.T) {
		got, rc, err := svc.OpenDocument(doc.ID)
		if err != nil {
			t.Fatalf("OpenDocument() failed, %v", err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading document failed, %v", err)
		}
		if string(data) != "pdf-bytes" || got.ContentType != "application/pdf" {
			t.Errorf("data = %q, content type = %s", data, got.ContentType)
		}
	})

	t.Run("delete removes blob", func(t *testing.T) {
		if err := svc.DeleteDocument(doc.ID); err != nil {
			t.Fatalf("DeleteDocument() failed, %v", err)
		}
		if len(files.blobs) != 0 {
			t.Errorf("len(files.blobs) = %d, want 0", len(files.blobs))
		}
		if _, _, err := svc.OpenDocument(doc.ID); err != instructor.ErrDocumentNotFound {
			t.Errorf("OpenDocument() error = %v, want ErrDocumentNotFound", err)
		}
	})
}

func TestServiceDeleteCleansDocuments(t *testing.T) {
	svc, files := setup(t)
	ins := createInstructor(t, svc)

	for _, name := range []string{"a.pdf", "b.pdf"} {
		if _, err := svc.UploadDocument(ins.ID, name, "application/pdf", strings.NewReader(name)); err != nil {
			t.Fatalf("UploadDocument() failed, %v", err)
		}
	}

	if err := svc.Delete(ins.ID); err != nil {
		t.Fatalf("Delete() failed, %v", err)
	}
	if len(files.blobs) != 0 {
		t.Errorf("len(files.blobs) = %d, want 0", len(files.blobs))
	}
	if _, err := svc.GetByID(ins.ID); err != instructor.ErrNotFound {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestServiceUpdateWorkplace(t *testing.T) {
	svc, _ := setup(t)
	ins := createInstructor(t, svc)

	id := 3
	ui := instructor.UpdateInstructor{WorkplaceID: &id}
	if err := ui.Validate(ins); err != nil {
		t.Fatalf("Validate() failed, %v", err)
	}
	updated, err := svc.Update(ins.ID, ui)
	if err != nil {
		t.Fatalf("Update() failed, %v", err)
	}
	if updated.WorkplaceID == nil || *updated.WorkplaceID != 3 {
		t.Errorf("updated.WorkplaceID = %v, want 3", updated.WorkplaceID)
	}
	if updated.FirstName != "Maria" {
		t.Errorf("updated.FirstName = %s, untouched field lost", updated.FirstName)
	}
}
