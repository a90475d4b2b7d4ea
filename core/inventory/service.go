package inventory

import (
	"time"

	"github.com/pkg/errors"

	"github.com/lernfeld/kursadmin/core"
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrEntryNotFound   = errors.New("inventory entry not found")
	ErrEntryExists     = errors.New("an inventory entry for this article already exists")
)

type (
	Repository interface {
		CreateArticle(art Article) (Article, error)
		QueryAllArticles() ([]Article, error)
		GetArticleByID(id int) (Article, error)
		// FilterArticles applies an AND operation on available ArticleQueryFilter fields.
		FilterArticles(filter ArticleQueryFilter) ([]Article, error)
		UpdateArticle(art Article, ua UpdateArticle) (Article, error)
		DeleteArticlesByID(ids ...int) error

		CreateEntry(e Entry) (Entry, error)
		QueryEntriesByLocationID(locationID int) ([]Entry, error)
		GetEntryByID(id int) (Entry, error)
		UpdateEntry(e Entry, ue UpdateEntry) (Entry, error)
		DeleteEntryByID(id int) error
	}

	Service interface {
		CreateArticle(na NewArticle) (Article, error)
		QueryAllArticles() ([]Article, error)
		GetArticle(id int) (Article, error)
		FilterArticles(filter ArticleQueryFilter) ([]Article, error)
		UpdateArticle(id int, ua UpdateArticle) (Article, error)
		DeleteArticles(ids ...int) error

		CreateEntry(locationID int, ne NewEntry) (Entry, error)
		QueryEntries(locationID int) ([]Entry, error)
		UpdateEntry(locationID, entryID int, ue UpdateEntry) (Entry, error)
		DeleteEntry(locationID, entryID int) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) CreateArticle(na NewArticle) (Article, error) {
	now := time.Now().UTC()
	return svc.repo.CreateArticle(Article{
		Name:         na.Name,
		IsCheckbox:   na.IsCheckbox,
		IsConsumable: na.IsConsumable,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (svc *service) QueryAllArticles() ([]Article, error) {
	return svc.repo.QueryAllArticles()
}

func (svc *service) GetArticle(id int) (Article, error) {
	return svc.repo.GetArticleByID(id)
}

func (svc *service) FilterArticles(filter ArticleQueryFilter) ([]Article, error) {
	filter.Clean()
	return svc.repo.FilterArticles(filter)
}

func (svc *service) UpdateArticle(id int, ua UpdateArticle) (Article, error) {
	art := Article{
		ID:        id,
		Name:      ua.Name,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateArticle(art, ua)
}

func (svc *service) DeleteArticles(ids ...int) error {
	return svc.repo.DeleteArticlesByID(ids...)
}

func (svc *service) CreateEntry(locationID int, ne NewEntry) (Entry, error) {
	art, err := svc.repo.GetArticleByID(ne.ArticleID)
	if err != nil {
		if err == ErrArticleNotFound {
			return Entry{}, core.NewValidationError(nil, core.FieldError{Field: "article_id", Error: err.Error()})
		}
		return Entry{}, err
	}
	if err = ne.Validate(art); err != nil {
		return Entry{}, err
	}

	now := time.Now().UTC()
	e := Entry{
		LocationID: locationID,
		ArticleID:  ne.ArticleID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if ne.CheckboxValue != nil {
		e.CheckboxValue = *ne.CheckboxValue
	}
	if ne.QuantityValue != nil {
		e.QuantityValue = *ne.QuantityValue
	}
	e, err = svc.repo.CreateEntry(e)
	if err == ErrEntryExists {
		return Entry{}, core.NewValidationError(nil, core.FieldError{Field: "article_id", Error: err.Error()})
	}
	return e, err
}

func (svc *service) QueryEntries(locationID int) ([]Entry, error) {
	return svc.repo.QueryEntriesByLocationID(locationID)
}

func (svc *service) UpdateEntry(locationID, entryID int, ue UpdateEntry) (Entry, error) {
	e, err := svc.entryInLocation(locationID, entryID)
	if err != nil {
		return Entry{}, err
	}
	art, err := svc.repo.GetArticleByID(e.ArticleID)
	if err != nil {
		return Entry{}, err
	}
	if err = ue.Validate(art); err != nil {
		return Entry{}, err
	}
	e.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateEntry(e, ue)
}

func (svc *service) DeleteEntry(locationID, entryID int) error {
	if _, err := svc.entryInLocation(locationID, entryID); err != nil {
		return err
	}
	return svc.repo.DeleteEntryByID(entryID)
}

// entryInLocation scopes entry lookups to the addressed location.
func (svc *service) entryInLocation(locationID, entryID int) (Entry, error) {
	e, err := svc.repo.GetEntryByID(entryID)
	if err != nil {
		return Entry{}, err
	}
	if e.LocationID != locationID {
		return Entry{}, ErrEntryNotFound
	}
	return e, nil
}
