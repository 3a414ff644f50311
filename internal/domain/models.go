package domain

import (
	"strings"
	"time"
)

// DateLayout - формат дат в записях сотрудников (ISO-8601, только дата)
const DateLayout = "2006-01-02"

// Department - подразделение сотрудника (закрытый набор значений)
type Department string

const (
	DepartmentAnalytics Department = "Analytics"
	DepartmentTech      Department = "Tech"
)

// Departments возвращает все допустимые подразделения
func Departments() []Department {
	return []Department{DepartmentAnalytics, DepartmentTech}
}

// Valid сообщает, входит ли значение в допустимый набор
func (d Department) Valid() bool {
	switch d {
	case DepartmentAnalytics, DepartmentTech:
		return true
	default:
		return false
	}
}

// Position - должность сотрудника (закрытый набор значений)
type Position string

const (
	PositionJunior Position = "Junior"
	PositionMedior Position = "Medior"
	PositionSenior Position = "Senior"
)

// Positions возвращает все допустимые должности
func Positions() []Position {
	return []Position{PositionJunior, PositionMedior, PositionSenior}
}

// Valid сообщает, входит ли значение в допустимый набор
func (p Position) Valid() bool {
	switch p {
	case PositionJunior, PositionMedior, PositionSenior:
		return true
	default:
		return false
	}
}

// Employee представляет запись о сотруднике.
// Имена JSON-полей совпадают с форматом сохранённого снимка.
type Employee struct {
	ID               string     `json:"id" validate:"required"`
	FirstName        string     `json:"firstName" validate:"required"`
	LastName         string     `json:"lastName" validate:"required"`
	Email            string     `json:"email" validate:"required"`
	PhoneNumber      string     `json:"phoneNumber" validate:"required"`
	DateOfEmployment string     `json:"dateOfEmployment" validate:"required,datetime=2006-01-02"`
	DateOfBirth      string     `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Department       Department `json:"department" validate:"required,department"`
	Position         Position   `json:"position" validate:"required,position"`
}

// SearchText возвращает строку, по которой выполняется поиск
func (e Employee) SearchText() string {
	return e.FirstName + " " + e.LastName + " " + e.Email
}

// FullName возвращает имя и фамилию через пробел
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// ParseDate разбирает дату в формате DateLayout
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
