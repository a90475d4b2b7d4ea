package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/lernfeld/kursadmin/apps/api/echo"
	"github.com/lernfeld/kursadmin/core"
	"github.com/lernfeld/kursadmin/core/booking"
	"github.com/lernfeld/kursadmin/core/city"
	"github.com/lernfeld/kursadmin/core/course"
	"github.com/lernfeld/kursadmin/core/instructor"
	"github.com/lernfeld/kursadmin/core/inventory"
	"github.com/lernfeld/kursadmin/core/location"
	"github.com/lernfeld/kursadmin/core/user"
	inmemdb "github.com/lernfeld/kursadmin/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

func TestMain(m *testing.M) {
	core.Conf.Debug = false
	core.Conf.TestMode = true
	os.Exit(m.Run())
}

// nopLogger satisfies core.Logger; handler tests assert on responses, not logs.
type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

// mailRecorder captures outgoing messages instead of sending them.
type mailRecorder struct {
	mutex    sync.Mutex
	messages []*core.EmailMessage
}

func (r *mailRecorder) SendMessages(messages ...*core.EmailMessage) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.messages = append(r.messages, messages...)
}

// memStore keeps document blobs in a map so upload tests need no disk.
type memStore struct {
	blobs map[string][]byte
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

type testEnv struct {
	app           Server
	mails         *mailRecorder
	files         *memStore
	usrRepo       user.Repository
	usrSvc        user.Service
	courseSvc     course.Service
	bookingSvc    booking.Service
	locationSvc   location.Service
	instructorSvc instructor.Service
	inventorySvc  inventory.Service
	cityRepo      city.Repository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := inmemdb.NewDB()
	usrRepo := inmemdb.NewUserRepository(db)
	courseRepo := inmemdb.NewCourseRepository(db)
	mails := &mailRecorder{}

	files := &memStore{blobs: make(map[string][]byte)}

	usrSvc := user.NewService(usrRepo, mails)
	courseSvc := course.NewService(courseRepo, usrRepo)
	bookingSvc := booking.NewService(inmemdb.NewBookingRepository(db), usrRepo, courseRepo, mails)
	locationSvc := location.NewService(inmemdb.NewLocationRepository(db))
	instructorSvc := instructor.NewService(inmemdb.NewInstructorRepository(db), files)
	inventorySvc := inventory.NewService(inmemdb.NewInventoryRepository(db))
	cityRepo := inmemdb.NewCityRepository(db)

	app := NewServer(&Options{
		DisableReqLogs: true,
		Logger:         nopLogger{},
		UserSvc:        usrSvc,
		CourseSvc:      courseSvc,
		BookingSvc:     bookingSvc,
		LocationSvc:    locationSvc,
		InstructorSvc:  instructorSvc,
		InventorySvc:   inventorySvc,
		CitySvc:        city.NewService(cityRepo),
	})

	return &testEnv{
		app:           app,
		mails:         mails,
		files:         files,
		usrRepo:       usrRepo,
		usrSvc:        usrSvc,
		courseSvc:     courseSvc,
		bookingSvc:    bookingSvc,
		locationSvc:   locationSvc,
		instructorSvc: instructorSvc,
		inventorySvc:  inventorySvc,
		cityRepo:      cityRepo,
	}
}

func (env *testEnv) addCity(t *testing.T, name string) city.City {
	t.Helper()
	adder, ok := env.cityRepo.(interface{ AddCity(c city.City) city.City })
	if !ok {
		t.Fatal("city repository does not support adding records")
	}
	return adder.AddCity(city.City{Name: name})
}

func (env *testEnv) createUser(t *testing.T, name, email, role string, active bool) user.User {
	t.Helper()
	status := user.StatusActive
	if !active {
		status = user.StatusInactive
	}
	usr := user.User{Name: name, Email: email, Role: role, Status: status}
	if err := usr.SetPassword("Str0ng-pass"); err != nil {
		t.Fatalf("SetPassword() failed, %v", err)
	}
	usr, err := env.usrRepo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed, %v", err)
	}
	return usr
}

func (env *testEnv) do(req *http.Request, rec *httptest.ResponseRecorder) {
	env.app.ServeHTTP(rec, req)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj(): %v", err)
	}
	return data
}

func marshalList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marshalList(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if tt.wantCode == 0 {
		tt.wantCode = http.StatusOK
	}
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
