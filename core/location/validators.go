package location

import (
	"github.com/go-playground/validator/v10"

	"github.com/lernfeld/kursadmin/core"
)

var (
	offeredCoursesTag  = "offeredcourses"
	offeredCoursesText = "invalid course tags"
)

func init() {
	_ = core.Validate.RegisterValidation(offeredCoursesTag, offeredCoursesValidation)
	core.RegisterCustomTranslation(offeredCoursesTag, offeredCoursesText)
}

// offeredCoursesValidation checks that all provided course tags are in AllowedCourses.
func offeredCoursesValidation(fl validator.FieldLevel) bool {
	tags, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	for _, tag := range tags {
		if !core.StringIn(tag, AllowedCourses) {
			return false
		}
	}
	return true
}
