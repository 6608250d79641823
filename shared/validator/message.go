package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":    "{field} is required",
		"gte":         "{field} must be greater than or equal to {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"oneof":       "{field} must be one of {param}",
		"max":         "{field} must be at most {param} characters",
		"min":         "{field} must be at least {param} characters",
		"uuid":        "{field} must be a valid UUID",
		"url":         "{field} must be a valid URL",
		"datetime":    "{field} must be a date",
		"nospace":     "{field} must not contain whitespace",
		"youtube":     "{field} must be a YouTube URL",
		"mimetypes":   "{field} must be an image or audio file",
		"maxfilesize": "{field} must be at most {param} MB",
	}
)

func fieldMessage(field string, valErr val.FieldError) string {
	errStr := messages[valErr.Tag()]
	if errStr == "" {
		return valErr.Error()
	}

	errStr = strings.ReplaceAll(errStr, "{field}", field)

	return strings.ReplaceAll(errStr, "{param}", valErr.Param())
}

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			field := valErr.Field()
			if field == "" {
				field = "value"
			}

			if messages[valErr.Tag()] != "" {
				return fieldMessage(field, valErr)
			}
		}

		return valErrors.Error()
	}

	return err.Error()
}
