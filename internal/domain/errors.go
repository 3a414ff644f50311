package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Определение бизнес-ошибок
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrDuplicateID      = errors.New("employee with this id already exists")
	ErrValidation       = errors.New("invalid employee record")
	ErrPersistence      = errors.New("snapshot not persisted")
)

// FieldError - описание проблемы с одним полем записи
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError перечисляет все некорректные поля записи
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

// Is позволяет сравнивать через errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// PersistenceError возвращается, когда изменение применено в памяти,
// но снимок не удалось сохранить
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPersistence, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
