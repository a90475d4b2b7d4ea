package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lernfeld/kursadmin/core/inventory"
)

const pqUniqueViolation = "23505"

type articleRow struct {
	ID           int       `db:"id"`
	Name         string    `db:"name"`
	IsCheckbox   bool      `db:"is_checkbox"`
	IsConsumable bool      `db:"is_consumable"`
	CreatedAt    null.Time `db:"created_at"`
	UpdatedAt    null.Time `db:"updated_at"`
}

func (row articleRow) unpack() inventory.Article {
	return inventory.Article{
		ID:           row.ID,
		Name:         row.Name,
		IsCheckbox:   row.IsCheckbox,
		IsConsumable: row.IsConsumable,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}

func unpackArticles(rows []articleRow) []inventory.Article {
	articles := make([]inventory.Article, 0, len(rows))
	for _, row := range rows {
		articles = append(articles, row.unpack())
	}
	return articles
}

type entryRow struct {
	ID            int       `db:"id"`
	LocationID    int       `db:"location_id"`
	ArticleID     int       `db:"article_id"`
	CheckboxValue bool      `db:"checkbox_value"`
	QuantityValue int       `db:"quantity_value"`
	CreatedAt     null.Time `db:"created_at"`
	UpdatedAt     null.Time `db:"updated_at"`
}

func (row entryRow) unpack() inventory.Entry {
	return inventory.Entry{
		ID:            row.ID,
		LocationID:    row.LocationID,
		ArticleID:     row.ArticleID,
		CheckboxValue: row.CheckboxValue,
		QuantityValue: row.QuantityValue,
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}

type inventoryRepository struct {
	db *sqlx.DB
}

var _ inventory.Repository = (*inventoryRepository)(nil) // interface compliance check

func NewInventoryRepository(db *sqlx.DB) *inventoryRepository {
	return &inventoryRepository{db: db}
}

func (repo inventoryRepository) CreateArticle(art inventory.Article) (inventory.Article, error) {
	query := `
INSERT INTO article (name, is_checkbox, is_consumable, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := repo.db.Get(
		&art.ID, query,
		art.Name, art.IsCheckbox, art.IsConsumable,
		null.TimeFrom(art.CreatedAt.UTC()), null.TimeFrom(art.UpdatedAt.UTC()),
	)
	if err != nil {
		return inventory.Article{}, errors.Wrap(err, "inserting article")
	}
	return art, nil
}

func (repo inventoryRepository) QueryAllArticles() ([]inventory.Article, error) {
	var rows []articleRow
	if err := repo.db.Select(&rows, `SELECT * FROM article ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying articles")
	}
	return unpackArticles(rows), nil
}

func (repo inventoryRepository) GetArticleByID(id int) (inventory.Article, error) {
	var row articleRow
	if err := repo.db.Get(&row, `SELECT * FROM article WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return inventory.Article{}, inventory.ErrArticleNotFound
		}
		return inventory.Article{}, errors.Wrap(err, "finding article by ID")
	}
	return row.unpack(), nil
}

func (repo inventoryRepository) FilterArticles(filter inventory.ArticleQueryFilter) ([]inventory.Article, error) {
	qb := newQueryBuilder(`SELECT * FROM article`)
	if filter.Search != "" {
		qb.where(`name ILIKE ?`, "%"+filter.Search+"%")
	}
	if filter.IsCheckbox != nil {
		qb.where(`is_checkbox = ?`, *filter.IsCheckbox)
	}
	if filter.Consumable != nil {
		qb.where(`is_consumable = ?`, *filter.Consumable)
	}

	var rows []articleRow
	query, args := qb.build(repo.db, `ORDER BY id`)
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering articles")
	}
	return unpackArticles(rows), nil
}

func (repo inventoryRepository) UpdateArticle(art inventory.Article, ua inventory.UpdateArticle) (inventory.Article, error) {
	orig, err := repo.GetArticleByID(art.ID)
	if err != nil {
		return inventory.Article{}, err
	}

	orig.Name = art.Name
	if ua.IsCheckbox != nil {
		orig.IsCheckbox = *ua.IsCheckbox
	}
	if ua.IsConsumable != nil {
		orig.IsConsumable = *ua.IsConsumable
	}
	orig.UpdatedAt = art.UpdatedAt

	query := `
UPDATE article
SET name = $1, is_checkbox = $2, is_consumable = $3, updated_at = $4
WHERE id = $5`
	_, err = repo.db.Exec(query, orig.Name, orig.IsCheckbox, orig.IsConsumable, null.TimeFrom(orig.UpdatedAt.UTC()), orig.ID)
	if err != nil {
		return inventory.Article{}, errors.Wrap(err, "updating article")
	}
	return orig, nil
}

func (repo inventoryRepository) DeleteArticlesByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM article WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting articles")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting articles")
	}
	return nil
}

func (repo inventoryRepository) CreateEntry(e inventory.Entry) (inventory.Entry, error) {
	// (location, article) is unique
	query := `
INSERT INTO inventory_entry (location_id, article_id, checkbox_value, quantity_value, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	err := repo.db.Get(
		&e.ID, query,
		e.LocationID, e.ArticleID, e.CheckboxValue, e.QuantityValue,
		null.TimeFrom(e.CreatedAt.UTC()), null.TimeFrom(e.UpdatedAt.UTC()),
	)
	if err != nil {
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
			return inventory.Entry{}, inventory.ErrEntryExists
		}
		return inventory.Entry{}, errors.Wrap(err, "inserting inventory entry")
	}
	return e, nil
}

func (repo inventoryRepository) QueryEntriesByLocationID(locationID int) ([]inventory.Entry, error) {
	var rows []entryRow
	query := `SELECT * FROM inventory_entry WHERE location_id = $1 ORDER BY id`
	if err := repo.db.Select(&rows, query, locationID); err != nil {
		return nil, errors.Wrap(err, "querying inventory entries")
	}
	entries := make([]inventory.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.unpack())
	}
	return entries, nil
}

func (repo inventoryRepository) GetEntryByID(id int) (inventory.Entry, error) {
	var row entryRow
	if err := repo.db.Get(&row, `SELECT * FROM inventory_entry WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return inventory.Entry{}, inventory.ErrEntryNotFound
		}
		return inventory.Entry{}, errors.Wrap(err, "finding inventory entry by ID")
	}
	return row.unpack(), nil
}

func (repo inventoryRepository) UpdateEntry(e inventory.Entry, ue inventory.UpdateEntry) (inventory.Entry, error) {
	orig, err := repo.GetEntryByID(e.ID)
	if err != nil {
		return inventory.Entry{}, err
	}

	if ue.CheckboxValue != nil {
		orig.CheckboxValue = *ue.CheckboxValue
	}
	if ue.QuantityValue != nil {
		orig.QuantityValue = *ue.QuantityValue
	}
	orig.UpdatedAt = e.UpdatedAt

	query := `
UPDATE inventory_entry
SET checkbox_value = $1, quantity_value = $2, updated_at = $3
WHERE id = $4`
	_, err = repo.db.Exec(query, orig.CheckboxValue, orig.QuantityValue, null.TimeFrom(orig.UpdatedAt.UTC()), orig.ID)
	if err != nil {
		return inventory.Entry{}, errors.Wrap(err, "updating inventory entry")
	}
	return orig, nil
}

func (repo inventoryRepository) DeleteEntryByID(id int) error {
	if _, err := repo.db.Exec(`DELETE FROM inventory_entry WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting inventory entry")
	}
	return nil
}
