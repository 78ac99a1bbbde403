package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the `validate` tags of a request payload and returns
// a single readable message joining every failed field.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var msgs []string
	for _, fe := range err.(validator.ValidationErrors) {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "email":
			msgs = append(msgs, "email must be a valid address")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", strings.ToLower(fe.Field()), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", strings.ToLower(fe.Field()), fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be %s or greater", strings.ToLower(fe.Field()), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, ". "))
}
