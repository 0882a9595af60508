package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	fieldErrors := make(map[string]string)
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			fieldErrors[field] = "This field is required"
		case "email":
			fieldErrors[field] = "Enter a valid email address"
		case "min":
			fieldErrors[field] = "Value is too short (min: " + fe.Param() + ")"
		case "max":
			fieldErrors[field] = "Value is too long (max: " + fe.Param() + ")"
		default:
			fieldErrors[field] = "Invalid value"
		}
	}

	return fieldErrors
}
