package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fhuszti/rated-posters-ms-go/internal/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Tell the validator to use the JSON tag as the “field name”
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// Grab the value of `json:"foo,omitempty"`
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			// fallback to the Go field name or skip
			return fld.Name
		}
		return name
	})

	if err := validate.RegisterValidation("contentid", func(fl validator.FieldLevel) bool {
		return model.ContentID(fl.Field().String()).Validate() == nil
	}); err != nil {
		panic(err)
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ErrorsToMap maps each failing field (by JSON name) to the failed tag.
func ErrorsToMap(validationErrs error) map[string]string {
	errsMap := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(validationErrs, &verrs) {
		return errsMap
	}
	for _, fieldErr := range verrs {
		errsMap[fieldErr.Field()] = fieldErr.Tag()
	}
	return errsMap
}

func ErrorsToJson(validationErrs error) (string, error) {
	errsJson, err := json.Marshal(ErrorsToMap(validationErrs))
	if err != nil {
		return "", err
	}
	return string(errsJson), nil
}
