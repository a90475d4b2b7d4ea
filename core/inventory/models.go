package inventory

import (
	"strings"
	"time"

	"github.com/lernfeld/kursadmin/core"
)

// Article is a stockable (or checkable) item tracked per location.
type Article struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	IsCheckbox   bool      `json:"is_checkbox"`
	IsConsumable bool      `json:"is_consumable"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

// NewArticle contains information needed to create a new Article.
type NewArticle struct {
	Name         string `json:"name" validate:"required"`
	IsCheckbox   bool   `json:"is_checkbox"`
	IsConsumable bool   `json:"is_consumable"`
}

func (na *NewArticle) Validate() error {
	na.Name = core.CleanString(na.Name)
	return core.Validate.Struct(na)
}

// UpdateArticle defines what information may be provided to modify an
// existing Article. Zero-valued fields keep the original value.
type UpdateArticle struct {
	Name         string `json:"name"`
	IsCheckbox   *bool  `json:"is_checkbox"`
	IsConsumable *bool  `json:"is_consumable"`
}

func (ua *UpdateArticle) Validate(orig Article) error {
	if name := core.CleanString(ua.Name); name != "" {
		ua.Name = name
	} else {
		ua.Name = orig.Name
	}
	return core.Validate.Struct(ua)
}

// ArticleQueryFilter applies an AND operation on its active fields.
// Search does a case-insensitive match on Article.Name.
type ArticleQueryFilter struct {
	Search     string `query:"search"`
	IsCheckbox *bool  `query:"is_checkbox"`
	Consumable *bool  `query:"is_consumable"`
}

func (qf *ArticleQueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.IsCheckbox == nil && qf.Consumable == nil
}

func (qf *ArticleQueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search, true /* lower */)
}

// Match reports whether art satisfies all active criteria.
func (qf ArticleQueryFilter) Match(art Article) bool {
	if qf.Search != "" && !strings.Contains(strings.ToLower(art.Name), qf.Search) {
		return false
	}
	if qf.IsCheckbox != nil && art.IsCheckbox != *qf.IsCheckbox {
		return false
	}
	if qf.Consumable != nil && art.IsConsumable != *qf.Consumable {
		return false
	}
	return true
}

// Entry is the per-location stock record for one article, keyed by
// (LocationID, ArticleID). For checkbox articles CheckboxValue carries
// the state and QuantityValue stays zero; for the rest it is the
// other way around.
type Entry struct {
	ID            int       `json:"id"`
	LocationID    int       `json:"location_id"`
	ArticleID     int       `json:"article_id"`
	CheckboxValue bool      `json:"checkbox_value"`
	QuantityValue int       `json:"quantity_value"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
}

// NewEntry contains information needed to create a new inventory Entry.
type NewEntry struct {
	ArticleID     int   `json:"article_id" validate:"required"`
	CheckboxValue *bool `json:"checkbox_value"`
	QuantityValue *int  `json:"quantity_value" validate:"omitempty,min=0"`
}

// Validate checks the entry against the article kind: checkbox articles
// take checkbox_value, all others take quantity_value.
func (ne *NewEntry) Validate(art Article) error {
	if err := core.Validate.Struct(ne); err != nil {
		return err
	}
	if art.IsCheckbox {
		if ne.QuantityValue != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "quantity_value", Error: "article is tracked as a checkbox"})
		}
	} else if ne.CheckboxValue != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "checkbox_value", Error: "article is tracked by quantity"})
	}
	return nil
}

// UpdateEntry defines what information may be provided to modify an
// existing inventory Entry.
type UpdateEntry struct {
	CheckboxValue *bool `json:"checkbox_value"`
	QuantityValue *int  `json:"quantity_value" validate:"omitempty,min=0"`
}

func (ue *UpdateEntry) Validate(art Article) error {
	if err := core.Validate.Struct(ue); err != nil {
		return err
	}
	if art.IsCheckbox {
		if ue.QuantityValue != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "quantity_value", Error: "article is tracked as a checkbox"})
		}
	} else if ue.CheckboxValue != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "checkbox_value", Error: "article is tracked by quantity"})
	}
	return nil
}
