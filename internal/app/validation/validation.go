// Package validation checks request payloads and converts failures into domain validation errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/manqiyou/manqiyou/internal/domain"
)

var mobileRegex = regexp.MustCompile(`^1\d{10}$`)

var mobile validator.Func = func(fl validator.FieldLevel) bool {
	return mobileRegex.MatchString(fl.Field().String())
}

var contentType validator.Func = func(fl validator.FieldLevel) bool {
	return domain.ContentType(fl.Field().String()).Valid()
}

var difficulty validator.Func = func(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case domain.DifficultyEasy, domain.DifficultyModerate, domain.DifficultyHard:
		return true
	default:
		return false
	}
}

// Validator validates structs using `validate` tags. Field names in messages are taken from the json tags.
// A `msg` tag overrides the generated message of a field.
type Validator struct {
	v *validator.Validate
}

// New returns a validator with the custom rules mobile, contenttype and difficulty registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("mobile", mobile)
	_ = v.RegisterValidation("contenttype", contentType)
	_ = v.RegisterValidation("difficulty", difficulty)

	return &Validator{v: v}
}

// Struct validates the given struct. On failure a *domain.ValidationError is returned that
// contains one entry per invalid field, in declaration order.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate %T: %w", s, err)
	}

	typ := reflect.TypeOf(s)

	fields := make([]domain.FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		fields[i] = domain.FieldError{
			Field:   fe.Field(),
			Message: message(typ, fe),
		}
	}
	return domain.NewValidationError(fields...)
}

func message(typ reflect.Type, fe validator.FieldError) string {
	if sf, ok := lookupField(typ, fe.StructNamespace()); ok {
		if msg := sf.Tag.Get("msg"); msg != "" {
			return msg
		}
	}

	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "mobile":
		return field + " must be a valid mobile number"
	case "len":
		return fmt.Sprintf("%s must have a length of %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "numeric":
		return field + " must be numeric"
	case "url":
		return field + " must be a valid url"
	case "contenttype":
		return field + " must be one of [banner news activity]"
	case "difficulty":
		return field + " must be one of [easy moderate hard]"
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

// lookupField resolves a struct namespace like "OrderRequest.Contact.Phone" or "Batch.Items[0].Name"
// to the struct field it names. The first segment is the name of the root type.
func lookupField(typ reflect.Type, namespace string) (reflect.StructField, bool) {
	segments := strings.Split(namespace, ".")
	if len(segments) < 2 {
		return reflect.StructField{}, false
	}

	var sf reflect.StructField
	for _, segment := range segments[1:] {
		name, indexes := segment, 0
		if i := strings.IndexByte(segment, '['); i >= 0 {
			name, indexes = segment[:i], strings.Count(segment, "[")
		}

		typ = derefType(typ)
		if typ.Kind() != reflect.Struct {
			return reflect.StructField{}, false
		}
		field, ok := typ.FieldByName(name)
		if !ok {
			return reflect.StructField{}, false
		}
		sf, typ = field, field.Type

		for range indexes {
			typ = derefType(typ)
			switch typ.Kind() {
			case reflect.Slice, reflect.Array, reflect.Map:
				typ = typ.Elem()
			default:
				return reflect.StructField{}, false
			}
		}
	}

	return sf, true
}

func derefType(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}
