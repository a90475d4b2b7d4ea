package inmemdb

import (
	"sort"
	"sync"

	"github.com/lernfeld/kursadmin/core/location"
)

type locationTable struct {
	mutex   sync.RWMutex
	table   map[int]*location.Location
	pkCount int
}

func newLocationTable() *locationTable {
	return &locationTable{table: make(map[int]*location.Location)}
}

type conditionsTable struct {
	mutex   sync.RWMutex
	table   map[int]*location.Conditions
	pkCount int
}

func newConditionsTable() *conditionsTable {
	return &conditionsTable{table: make(map[int]*location.Conditions)}
}

type locationRepository struct {
	db     *locationTable
	condDB *conditionsTable
}

var _ location.Repository = (*locationRepository)(nil)

func NewLocationRepository(db *DB) location.Repository {
	return &locationRepository{db: db.location, condDB: db.conditions}
}

func (repo *locationRepository) query() []location.Location {
	locs := make([]location.Location, 0, len(repo.db.table))
	for _, loc := range repo.db.table {
		locs = append(locs, *loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i].ID < locs[j].ID })
	return locs
}

func (repo *locationRepository) CreateLocation(loc location.Location) (location.Location, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	loc.ID = repo.db.pkCount
	repo.db.table[loc.ID] = &loc
	return loc, nil
}

func (repo *locationRepository) QueryAllLocations() ([]location.Location, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *locationRepository) GetLocationByID(id int) (location.Location, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if loc, ok := repo.db.table[id]; ok {
		return *loc, nil
	}
	return location.Location{}, location.ErrNotFound
}

func (repo *locationRepository) FilterLocations(filter location.QueryFilter) ([]location.Location, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	locs := make([]location.Location, 0)
	for _, loc := range repo.query() {
		if filter.Match(loc) {
			locs = append(locs, loc)
		}
	}
	return locs, nil
}

func (repo *locationRepository) UpdateLocation(loc location.Location, ul location.UpdateLocation) (location.Location, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	orig, ok := repo.db.table[loc.ID]
	if !ok {
		return location.Location{}, location.ErrNotFound
	}
	orig.Name = loc.Name
	if ul.CityID != nil {
		orig.CityID = *ul.CityID
	}
	if ul.MaximumParticipants != nil {
		orig.MaximumParticipants = ul.MaximumParticipants
	}
	if ul.PassportPhotosOffered != nil {
		orig.PassportPhotosOffered = *ul.PassportPhotosOffered
		orig.PassportPhotoPrice = ul.PassportPhotoPrice
	} else if ul.PassportPhotoPrice != nil {
		orig.PassportPhotoPrice = ul.PassportPhotoPrice
	}
	if ul.VisionTestOffered != nil {
		orig.VisionTestOffered = *ul.VisionTestOffered
		orig.VisionTestPrice = ul.VisionTestPrice
	} else if ul.VisionTestPrice != nil {
		orig.VisionTestPrice = ul.VisionTestPrice
	}
	if ul.LocationInstructionsInstructor != "" {
		orig.LocationInstructionsInstructor = ul.LocationInstructionsInstructor
	}
	if ul.LocationInstructionsCustomer != "" {
		orig.LocationInstructionsCustomer = ul.LocationInstructionsCustomer
	}
	if ul.OfferedCourses != nil {
		orig.OfferedCourses = ul.OfferedCourses
	}
	orig.UpdatedAt = loc.UpdatedAt

	repo.db.table[loc.ID] = orig
	return *orig, nil
}

func (repo *locationRepository) DeleteLocationsByID(ids ...int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

func (repo *locationRepository) CreateConditions(cond location.Conditions) (location.Conditions, error) {
	repo.condDB.mutex.Lock()
	defer repo.condDB.mutex.Unlock()

	repo.condDB.pkCount++
	cond.ID = repo.condDB.pkCount
	repo.condDB.table[cond.ID] = &cond
	return cond, nil
}

func (repo *locationRepository) GetConditionsByID(id int) (location.Conditions, error) {
	repo.condDB.mutex.RLock()
	defer repo.condDB.mutex.RUnlock()

	if cond, ok := repo.condDB.table[id]; ok {
		return *cond, nil
	}
	return location.Conditions{}, location.ErrConditionsNotFound
}

func (repo *locationRepository) UpdateConditions(cond location.Conditions, uc location.UpdateConditions) (location.Conditions, error) {
	repo.condDB.mutex.Lock()
	defer repo.condDB.mutex.Unlock()

	orig, ok := repo.condDB.table[cond.ID]
	if !ok {
		return location.Conditions{}, location.ErrConditionsNotFound
	}
	orig.ContactPerson = cond.ContactPerson
	if cond.ContactEmail != "" {
		orig.ContactEmail = cond.ContactEmail
	}
	if cond.ContactPhone != "" {
		orig.ContactPhone = cond.ContactPhone
	}
	if uc.RentalPrice != nil {
		orig.RentalPrice = uc.RentalPrice
	}
	if cond.RentalPeriod != "" {
		orig.RentalPeriod = cond.RentalPeriod
	}
	if cond.PaymentTerms != "" {
		orig.PaymentTerms = cond.PaymentTerms
	}
	if cond.AdditionalNotes != "" {
		orig.AdditionalNotes = cond.AdditionalNotes
	}
	orig.UpdatedAt = cond.UpdatedAt

	repo.condDB.table[cond.ID] = orig
	return *orig, nil
}
