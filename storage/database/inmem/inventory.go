package inmemdb

import (
	"sort"
	"sync"

	"github.com/lernfeld/kursadmin/core/inventory"
)

type articleTable struct {
	mutex   sync.RWMutex
	table   map[int]*inventory.Article
	pkCount int
}

func newArticleTable() *articleTable {
	return &articleTable{table: make(map[int]*inventory.Article)}
}

type entryTable struct {
	mutex   sync.RWMutex
	table   map[int]*inventory.Entry
	pkCount int
}

func newEntryTable() *entryTable {
	return &entryTable{table: make(map[int]*inventory.Entry)}
}

type inventoryRepository struct {
	db      *articleTable
	entryDB *entryTable
}

var _ inventory.Repository = (*inventoryRepository)(nil)

func NewInventoryRepository(db *DB) inventory.Repository {
	return &inventoryRepository{db: db.article, entryDB: db.entry}
}

func (repo *inventoryRepository) queryArticles() []inventory.Article {
	articles := make([]inventory.Article, 0, len(repo.db.table))
	for _, art := range repo.db.table {
		articles = append(articles, *art)
	}
	sort.Slice(articles, func(i, j int) bool { return articles[i].ID < articles[j].ID })
	return articles
}

func (repo *inventoryRepository) CreateArticle(art inventory.Article) (inventory.Article, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	art.ID = repo.db.pkCount
	repo.db.table[art.ID] = &art
	return art, nil
}

func (repo *inventoryRepository) QueryAllArticles() ([]inventory.Article, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryArticles(), nil
}

func (repo *inventoryRepository) GetArticleByID(id int) (inventory.Article, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if art, ok := repo.db.table[id]; ok {
		return *art, nil
	}
	return inventory.Article{}, inventory.ErrArticleNotFound
}

func (repo *inventoryRepository) FilterArticles(filter inventory.ArticleQueryFilter) ([]inventory.Article, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	articles := make([]inventory.Article, 0)
	for _, art := range repo.queryArticles() {
		if filter.Match(art) {
			articles = append(articles, art)
		}
	}
	return articles, nil
}

func (repo *inventoryRepository) UpdateArticle(art inventory.Article, ua inventory.UpdateArticle) (inventory.Article, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[art.ID]
	if !ok {
		return inventory.Article{}, inventory.ErrArticleNotFound
	}
	orig.Name = art.Name
	if ua.IsCheckbox != nil {
		orig.IsCheckbox = *ua.IsCheckbox
	}
	if ua.IsConsumable != nil {
		orig.IsConsumable = *ua.IsConsumable
	}
	orig.UpdatedAt = art.UpdatedAt

	repo.db.table[art.ID] = orig
	return *orig, nil
}

func (repo *inventoryRepository) DeleteArticlesByID(ids ...int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

func (repo *inventoryRepository) CreateEntry(e inventory.Entry) (inventory.Entry, error) {
	repo.entryDB.mutex.Lock()
	defer repo.entryDB.mutex.Unlock()

	// (location, article) is unique
	for _, existing := range repo.entryDB.table {
		if existing.LocationID == e.LocationID && existing.ArticleID == e.ArticleID {
			return inventory.Entry{}, inventory.ErrEntryExists
		}
	}

	repo.entryDB.pkCount++
	e.ID = repo.entryDB.pkCount
	repo.entryDB.table[e.ID] = &e
	return e, nil
}

func (repo *inventoryRepository) QueryEntriesByLocationID(locationID int) ([]inventory.Entry, error) {
	repo.entryDB.mutex.RLock()
	defer repo.entryDB.mutex.RUnlock()

	entries := make([]inventory.Entry, 0)
	for _, e := range repo.entryDB.table {
		if e.LocationID == locationID {
			entries = append(entries, *e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (repo *inventoryRepository) GetEntryByID(id int) (inventory.Entry, error) {
	repo.entryDB.mutex.RLock()
	defer repo.entryDB.mutex.RUnlock()

	if e, ok := repo.entryDB.table[id]; ok {
		return *e, nil
	}
	return inventory.Entry{}, inventory.ErrEntryNotFound
}

func (repo *inventoryRepository) UpdateEntry(e inventory.Entry, ue inventory.UpdateEntry) (inventory.Entry, error) {
	repo.entryDB.mutex.Lock()
	defer repo.entryDB.mutex.Unlock()

	orig, ok := repo.entryDB.table[e.ID]
	if !ok {
		return inventory.Entry{}, inventory.ErrEntryNotFound
	}
	if ue.CheckboxValue != nil {
		orig.CheckboxValue = *ue.CheckboxValue
	}
	if ue.QuantityValue != nil {
		orig.QuantityValue = *ue.QuantityValue
	}
	orig.UpdatedAt = e.UpdatedAt

	repo.entryDB.table[e.ID] = orig
	return *orig, nil
}

func (repo *inventoryRepository) DeleteEntryByID(id int) error {
	repo.entryDB.mutex.Lock()
	defer repo.entryDB.mutex.Unlock()
	delete(repo.entryDB.table, id)
	return nil
}
