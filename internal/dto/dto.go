package dto

import (
	"github.com/employee-roster-api/internal/domain"
)

// EmployeeRequest - запрос на создание или замену сотрудника.
// ID необязателен при создании и игнорируется при замене.
type EmployeeRequest struct {
	ID               string `json:"id" validate:"omitempty,max=64"`
	FirstName        string `json:"firstName" validate:"required,max=200"`
	LastName         string `json:"lastName" validate:"required,max=200"`
	Email            string `json:"email" validate:"required,max=200,emailaddr"`
	PhoneNumber      string `json:"phoneNumber" validate:"required,phone"`
	DateOfEmployment string `json:"dateOfEmployment" validate:"required,datetime=2006-01-02"`
	DateOfBirth      string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Department       string `json:"department" validate:"required,department"`
	Position         string `json:"position" validate:"required,position"`
}

// ToEmployee собирает запись с указанным ID
func (r EmployeeRequest) ToEmployee(id string) domain.Employee {
	return domain.Employee{
		ID:               id,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		PhoneNumber:      r.PhoneNumber,
		DateOfEmployment: r.DateOfEmployment,
		DateOfBirth:      r.DateOfBirth,
		Department:       domain.Department(r.Department),
		Position:         domain.Position(r.Position),
	}
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID               string `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phoneNumber"`
	DateOfEmployment string `json:"dateOfEmployment"`
	DateOfBirth      string `json:"dateOfBirth"`
	Department       string `json:"department"`
	Position         string `json:"position"`
}

// NewEmployeeResponse преобразует запись в ответ
func NewEmployeeResponse(e domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		Email:            e.Email,
		PhoneNumber:      e.PhoneNumber,
		DateOfEmployment: e.DateOfEmployment,
		DateOfBirth:      e.DateOfBirth,
		Department:       string(e.Department),
		Position:         string(e.Position),
	}
}

// ListEmployeesResponse - страница списка сотрудников.
// В Pages ноль обозначает пропуск в навигации.
type ListEmployeesResponse struct {
	Items      []EmployeeResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
	Pages      []int              `json:"pages"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ListEmployeesQuery - параметры запроса списка.
// Допустимость поля сортировки проверяет движок выборок.
type ListEmployeesQuery struct {
	Search   string `json:"search" validate:"max=200"`
	Sort     string `json:"sort"`
	Order    string `json:"order" validate:"omitempty,oneof=asc desc"`
	Page     int    `json:"page" validate:"min=0"`
	PageSize int    `json:"page_size" validate:"min=0,max=100"`
}
