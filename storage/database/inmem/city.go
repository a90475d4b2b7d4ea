package inmemdb

import (
	"sort"
	"sync"

	"github.com/lernfeld/kursadmin/core/city"
)

type cityTable struct {
	mutex   sync.RWMutex
	table   map[int]*city.City
	pkCount int
}

func newCityTable() *cityTable {
	return &cityTable{table: make(map[int]*city.City)}
}

type cityRepository struct {
	db *cityTable
}

var _ city.Repository = (*cityRepository)(nil)

func NewCityRepository(db *DB) city.Repository {
	return &cityRepository{db: db.city}
}

func (repo *cityRepository) QueryAllCities() ([]city.City, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	cities := make([]city.City, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		cities = append(cities, *c)
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].ID < cities[j].ID })
	return cities, nil
}

func (repo *cityRepository) GetCityByID(id int) (city.City, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.table[id]; ok {
		return *c, nil
	}
	return city.City{}, city.ErrNotFound
}

// AddCity registers a city reference record; used by seed loading and tests.
func (repo *cityRepository) AddCity(c city.City) city.City {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if c.ID == 0 {
		repo.db.pkCount++
		c.ID = repo.db.pkCount
	} else if c.ID > repo.db.pkCount {
		repo.db.pkCount = c.ID
	}
	repo.db.table[c.ID] = &c
	return c
}
