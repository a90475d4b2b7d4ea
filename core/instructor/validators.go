package instructor

import (
	"github.com/go-playground/validator/v10"

	"github.com/lernfeld/kursadmin/core"
)

var (
	employmentTag  = "employment"
	employmentText = "invalid employment type"
)

func init() {
	_ = core.Validate.RegisterValidation(employmentTag, employmentValidation)
	core.RegisterCustomTranslation(employmentTag, employmentText)
}

// employmentValidation checks that the provided type is in AllEmploymentTypes.
func employmentValidation(fl validator.FieldLevel) bool {
	return core.StringIn(fl.Field().String(), AllEmploymentTypes)
}
