package domain

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9+\-\s()]{7,20}$`)
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

	recordValidator = NewValidator()
)

// NewValidator создаёт валидатор с правилами для полей сотрудника.
// Поля в ошибках называются по JSON-тегам.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Ошибки регистрации возможны только при пустом теге
	_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return Department(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("position", func(fl validator.FieldLevel) bool {
		return Position(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return v
}

// Validate проверяет полноту записи и допустимость значений перечислений.
// Формат email и телефона проверяется слоем ввода.
func Validate(e Employee) error {
	return ToValidationError(recordValidator.Struct(e))
}

// ToValidationError преобразует ошибки validator в *ValidationError.
// Прочие ошибки возвращаются как есть.
func ToValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:  fe.Field(),
			Reason: reasonFor(fe),
		})
	}
	return out
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "emailaddr":
		return "must look like local@domain.tld"
	case "phone":
		return "must be 7-20 digits, spaces, +, - or parentheses"
	case "department":
		return "must be one of " + joinValues(Departments())
	case "position":
		return "must be one of " + joinValues(Positions())
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
