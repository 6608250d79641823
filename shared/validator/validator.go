package validator

import (
	"backoffice/shared/failure"
	"backoffice/shared/youtube"
	"errors"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// FieldErrors maps a form field name to the first message for it.
type FieldErrors map[string]string

// Validator is implemented by forms with rules that span several fields.
type Validator interface {
	Validate() FieldErrors
}

func fileHeader(field val.FieldLevel) (*multipart.FileHeader, bool) {
	switch file := field.Field().Interface().(type) {
	case *multipart.FileHeader:
		return file, file != nil
	case multipart.FileHeader:
		return &file, true
	}

	return nil, false
}

// registerMimetypeValidation accepts exact types and family wildcards such as "image/*".
func registerMimetypeValidation(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	contentType := file.Header.Get("Content-Type")
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}

	contentType = strings.TrimSpace(strings.ToLower(contentType))

	for _, allowed := range strings.Fields(field.Param()) {
		if family, found := strings.CutSuffix(allowed, "/*"); found {
			if strings.HasPrefix(contentType, family+"/") {
				return true
			}

			continue
		}

		if contentType == allowed {
			return true
		}
	}

	return false
}

// registerFileSizeValidation checks the size in megabytes given by the tag parameter.
func registerFileSizeValidation(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int64(maxSizeMB * bytesConversion * bytesConversion)

	return file.Size > 0 && file.Size <= maxSizeBytes
}

func registerNoSpaceValidation(field val.FieldLevel) bool {
	return !strings.ContainsFunc(field.Field().String(), unicode.IsSpace)
}

func registerYouTubeValidation(field val.FieldLevel) bool {
	return youtube.IsYouTubeURL(field.Field().String())
}

// fieldName prefers the form tag, then the json tag, so messages use the names the browser posted.
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}

		if name != "" {
			return name
		}
	}

	return field.Name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(fieldName)

	custom := map[string]val.Func{
		"mimetypes":   registerMimetypeValidation,
		"maxfilesize": registerFileSizeValidation,
		"nospace":     registerNoSpaceValidation,
		"youtube":     registerYouTubeValidation,
	}

	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// ValidateStruct returns a bad request failure carrying the first violated rule.
func ValidateStruct[T any](data *T) error {
	if errs := ValidateForm(data); len(errs) > 0 {
		return failure.BadRequestFromString(errs.First()) //nolint:wrapcheck
	}

	return nil
}

// ValidateForm runs the struct tags and then the form's own cross-field rules.
// It returns nil when the form is valid.
func ValidateForm[T any](data *T) FieldErrors {
	errs := FieldErrors{}

	if err := validate.Struct(data); err != nil {
		var valErrors val.ValidationErrors
		if !errors.As(err, &valErrors) {
			errs["_"] = err.Error()

			return errs
		}

		for _, valErr := range valErrors {
			name := formField(valErr)
			if _, seen := errs[name]; !seen {
				errs[name] = fieldMessage(name, valErr)
			}
		}
	}

	if v, ok := any(data).(Validator); ok {
		for name, msg := range v.Validate() {
			if _, seen := errs[name]; !seen {
				errs[name] = msg
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)
	if err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

// First returns one message, preferring a stable order for display.
func (f FieldErrors) First() string {
	if len(f) == 0 {
		return ""
	}

	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return f[keys[0]]
}

// formField strips slice indexes so "tag_ids[2]" reports on "tag_ids".
func formField(err val.FieldError) string {
	name := err.Field()
	if idx := strings.IndexByte(name, '['); idx >= 0 {
		name = name[:idx]
	}

	return name
}
