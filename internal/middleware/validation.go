package middleware

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// bloodPressurePattern accepts the systolic/diastolic form patients
// type in, like "120/80".
var bloodPressurePattern = regexp.MustCompile(`^\d{2,3}/\d{2,3}$`)

func validBloodPressure(fl validator.FieldLevel) bool {
	return bloodPressurePattern.MatchString(fl.Field().String())
}

// RegisterValidators installs domain validators on gin's binding engine
// and makes validation errors report json field names.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	if err := v.RegisterValidation("bloodpressure", validBloodPressure); err != nil {
		panic(err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})
}
