package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lernfeld/kursadmin/core/location"
)

type locationRow struct {
	ID                             int            `db:"id"`
	Name                           string         `db:"name"`
	CityID                         int            `db:"city_id"`
	MaximumParticipants            null.Int       `db:"maximum_participants"`
	PassportPhotosOffered          bool           `db:"passport_photos_offered"`
	PassportPhotoPrice             null.Float64   `db:"passport_photo_price"`
	VisionTestOffered              bool           `db:"vision_test_offered"`
	VisionTestPrice                null.Float64   `db:"vision_test_price"`
	LocationInstructionsInstructor string         `db:"location_instructions_instructor"`
	LocationInstructionsCustomer   string         `db:"location_instructions_customer"`
	OfferedCourses                 pq.StringArray `db:"offered_courses"`
	ConditionsID                   null.Int       `db:"conditions_id"`
	CreatedAt                      null.Time      `db:"created_at"`
	UpdatedAt                      null.Time      `db:"updated_at"`
}

func (row locationRow) unpack() location.Location {
	loc := location.Location{
		ID:                             row.ID,
		Name:                           row.Name,
		CityID:                         row.CityID,
		PassportPhotosOffered:          row.PassportPhotosOffered,
		PassportPhotoPrice:             row.PassportPhotoPrice.Ptr(),
		VisionTestOffered:              row.VisionTestOffered,
		VisionTestPrice:                row.VisionTestPrice.Ptr(),
		LocationInstructionsInstructor: row.LocationInstructionsInstructor,
		LocationInstructionsCustomer:   row.LocationInstructionsCustomer,
		OfferedCourses:                 []string(row.OfferedCourses),
		CreatedAt:                      row.CreatedAt.Time,
		UpdatedAt:                      row.UpdatedAt.Time,
	}
	if row.MaximumParticipants.Valid {
		max := int(row.MaximumParticipants.Int)
		loc.MaximumParticipants = &max
	}
	if row.ConditionsID.Valid {
		id := int(row.ConditionsID.Int)
		loc.ConditionsID = &id
	}
	return loc
}

func unpackLocations(rows []locationRow) []location.Location {
	locs := make([]location.Location, 0, len(rows))
	for _, row := range rows {
		locs = append(locs, row.unpack())
	}
	return locs
}

type conditionsRow struct {
	ID              int          `db:"id"`
	ContactPerson   string       `db:"contact_person"`
	ContactEmail    string       `db:"contact_email"`
	ContactPhone    string       `db:"contact_phone"`
	RentalPrice     null.Float64 `db:"rental_price"`
	RentalPeriod    string       `db:"rental_period"`
	PaymentTerms    string       `db:"payment_terms"`
	AdditionalNotes string       `db:"additional_notes"`
	CreatedAt       null.Time    `db:"created_at"`
	UpdatedAt       null.Time    `db:"updated_at"`
}

func (row conditionsRow) unpack() location.Conditions {
	return location.Conditions{
		ID:              row.ID,
		ContactPerson:   row.ContactPerson,
		ContactEmail:    row.ContactEmail,
		ContactPhone:    row.ContactPhone,
		RentalPrice:     row.RentalPrice.Ptr(),
		RentalPeriod:    row.RentalPeriod,
		PaymentTerms:    row.PaymentTerms,
		AdditionalNotes: row.AdditionalNotes,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}

type locationRepository struct {
	db *sqlx.DB
}

var _ location.Repository = (*locationRepository)(nil) // interface compliance check

func NewLocationRepository(db *sqlx.DB) *locationRepository {
	return &locationRepository{db: db}
}

func (repo locationRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return location.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo locationRepository) CreateLocation(loc location.Location) (location.Location, error) {
	query := `
INSERT INTO location (name, city_id, maximum_participants, passport_photos_offered, passport_photo_price,
                      vision_test_offered, vision_test_price, location_instructions_instructor,
                      location_instructions_customer, offered_courses, conditions_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`
	err := repo.db.Get(
		&loc.ID, query,
		loc.Name, loc.CityID, nullIntFromPtr(loc.MaximumParticipants),
		loc.PassportPhotosOffered, null.Float64FromPtr(loc.PassportPhotoPrice),
		loc.VisionTestOffered, null.Float64FromPtr(loc.VisionTestPrice),
		loc.LocationInstructionsInstructor, loc.LocationInstructionsCustomer,
		pq.StringArray(loc.OfferedCourses), nullIntFromPtr(loc.ConditionsID),
		null.TimeFrom(loc.CreatedAt.UTC()), null.TimeFrom(loc.UpdatedAt.UTC()),
	)
	if err != nil {
		return location.Location{}, errors.Wrap(err, "inserting location")
	}
	return loc, nil
}

func (repo locationRepository) QueryAllLocations() ([]location.Location, error) {
	var rows []locationRow
	if err := repo.db.Select(&rows, `SELECT * FROM location ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying locations")
	}
	return unpackLocations(rows), nil
}

func (repo locationRepository) GetLocationByID(id int) (location.Location, error) {
	var row locationRow
	if err := repo.db.Get(&row, `SELECT * FROM location WHERE id = $1`, id); err != nil {
		return location.Location{}, repo.trapNoRowsErr(err, "finding location by ID")
	}
	return row.unpack(), nil
}

func (repo locationRepository) FilterLocations(filter location.QueryFilter) ([]location.Location, error) {
	qb := newQueryBuilder(`SELECT * FROM location`)
	if filter.Search != "" {
		qb.where(`name ILIKE ?`, "%"+filter.Search+"%")
	}
	if filter.CityID != nil {
		qb.where(`city_id = ?`, *filter.CityID)
	}

	var rows []locationRow
	query, args := qb.build(repo.db, `ORDER BY id`)
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering locations")
	}
	return unpackLocations(rows), nil
}

func (repo locationRepository) UpdateLocation(loc location.Location, ul location.UpdateLocation) (location.Location, error) {
	orig, err := repo.GetLocationByID(loc.ID)
	if err != nil {
		return location.Location{}, err
	}

	// only save set fields
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

	query := `
UPDATE location
SET name = $1, city_id = $2, maximum_participants = $3, passport_photos_offered = $4,
    passport_photo_price = $5, vision_test_offered = $6, vision_test_price = $7,
    location_instructions_instructor = $8, location_instructions_customer = $9,
    offered_courses = $10, updated_at = $11
WHERE id = $12`
	_, err = repo.db.Exec(
		query,
		orig.Name, orig.CityID, nullIntFromPtr(orig.MaximumParticipants),
		orig.PassportPhotosOffered, null.Float64FromPtr(orig.PassportPhotoPrice),
		orig.VisionTestOffered, null.Float64FromPtr(orig.VisionTestPrice),
		orig.LocationInstructionsInstructor, orig.LocationInstructionsCustomer,
		pq.StringArray(orig.OfferedCourses), null.TimeFrom(orig.UpdatedAt.UTC()),
		orig.ID,
	)
	if err != nil {
		return location.Location{}, errors.Wrap(err, "updating location")
	}
	return orig, nil
}

func (repo locationRepository) DeleteLocationsByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM location WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting locations")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting locations")
	}
	return nil
}

func (repo locationRepository) CreateConditions(cond location.Conditions) (location.Conditions, error) {
	query := `
INSERT INTO conditions (contact_person, contact_email, contact_phone, rental_price, rental_period,
                        payment_terms, additional_notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`
	err := repo.db.Get(
		&cond.ID, query,
		cond.ContactPerson, cond.ContactEmail, cond.ContactPhone,
		null.Float64FromPtr(cond.RentalPrice), cond.RentalPeriod,
		cond.PaymentTerms, cond.AdditionalNotes,
		null.TimeFrom(cond.CreatedAt.UTC()), null.TimeFrom(cond.UpdatedAt.UTC()),
	)
	if err != nil {
		return location.Conditions{}, errors.Wrap(err, "inserting conditions")
	}
	return cond, nil
}

func (repo locationRepository) GetConditionsByID(id int) (location.Conditions, error) {
	var row conditionsRow
	if err := repo.db.Get(&row, `SELECT * FROM conditions WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return location.Conditions{}, location.ErrConditionsNotFound
		}
		return location.Conditions{}, errors.Wrap(err, "finding conditions by ID")
	}
	return row.unpack(), nil
}

func (repo locationRepository) UpdateConditions(cond location.Conditions, uc location.UpdateConditions) (location.Conditions, error) {
	orig, err := repo.GetConditionsByID(cond.ID)
	if err != nil {
		return location.Conditions{}, err
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

	query := `
UPDATE conditions
SET contact_person = $1, contact_email = $2, contact_phone = $3, rental_price = $4,
    rental_period = $5, payment_terms = $6, additional_notes = $7, updated_at = $8
WHERE id = $9`
	_, err = repo.db.Exec(
		query,
		orig.ContactPerson, orig.ContactEmail, orig.ContactPhone,
		null.Float64FromPtr(orig.RentalPrice), orig.RentalPeriod,
		orig.PaymentTerms, orig.AdditionalNotes, null.TimeFrom(orig.UpdatedAt.UTC()),
		orig.ID,
	)
	if err != nil {
		return location.Conditions{}, errors.Wrap(err, "updating conditions")
	}
	return orig, nil
}
