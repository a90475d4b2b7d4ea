package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/lernfeld/kursadmin/core/city"
)

type cityRepository struct {
	db *sqlx.DB
}

var _ city.Repository = (*cityRepository)(nil) // interface compliance check

func NewCityRepository(db *sqlx.DB) *cityRepository {
	return &cityRepository{db: db}
}

func (repo cityRepository) QueryAllCities() ([]city.City, error) {
	var cities []city.City
	if err := repo.db.Select(&cities, `SELECT id, name FROM city ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying cities")
	}
	return cities, nil
}

func (repo cityRepository) GetCityByID(id int) (city.City, error) {
	var c city.City
	if err := repo.db.Get(&c, `SELECT id, name FROM city WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return city.City{}, city.ErrNotFound
		}
		return city.City{}, errors.Wrap(err, "finding city by ID")
	}
	return c, nil
}
