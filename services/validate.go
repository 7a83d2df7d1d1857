package services

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("resdate", func(fl validator.FieldLevel) bool {
		return canonical(DateLayout, fl.Field().String())
	})
	_ = v.RegisterValidation("restime", func(fl validator.FieldLevel) bool {
		return canonical(TimeLayout, fl.Field().String())
	})
	return v
}

// canonical accepts only values already in layout form; time.Parse alone
// lets "9:00" through for "15:04".
func canonical(layout, value string) bool {
	t, err := time.Parse(layout, value)
	return err == nil && t.Format(layout) == value
}

// toValidationError maps the first validator failure onto the error
// taxonomy: "required" means the field was absent, anything else means it
// was present but unusable.
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return missing(field)
	case "resdate":
		return malformed(field, "date must be formatted as YYYY-MM-DD")
	case "restime":
		return malformed(field, "time must be formatted as HH:MM")
	case "gt":
		return malformed(field, field+" must be greater than "+fe.Param())
	case "email":
		return malformed(field, "email is not a valid address")
	case "oneof":
		return malformed(field, field+" must be one of: "+fe.Param())
	default:
		return malformed(field, field+" is invalid")
	}
}
