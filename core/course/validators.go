package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/lernfeld/kursadmin/core"
)

var (
	courseStatusTag  = "coursestatus"
	courseStatusText = "invalid status"
)

func init() {
	_ = core.Validate.RegisterValidation(courseStatusTag, courseStatusValidation)
	core.RegisterCustomTranslation(courseStatusTag, courseStatusText)
}

// courseStatusValidation checks that the provided status is in AllStatuses.
func courseStatusValidation(fl validator.FieldLevel) bool {
	return core.StringIn(fl.Field().String(), AllStatuses)
}
