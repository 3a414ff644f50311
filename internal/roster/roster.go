// Package roster описывает намерения изменения списка сотрудников и
// чистую функцию их применения.
package roster

import (
	"fmt"
	"slices"

	"github.com/employee-roster-api/internal/domain"
)

// Intent - запрос на изменение списка сотрудников
type Intent interface {
	// Kind возвращает короткое имя операции для логов
	Kind() string
	intent()
}

// Add добавляет запись в конец списка
type Add struct {
	Employee domain.Employee
}

// Edit заменяет запись с тем же ID целиком
type Edit struct {
	Employee domain.Employee
}

// Delete удаляет запись по ID
type Delete struct {
	ID string
}

func (Add) Kind() string    { return "add" }
func (Edit) Kind() string   { return "edit" }
func (Delete) Kind() string { return "delete" }

func (Add) intent()    {}
func (Edit) intent()   {}
func (Delete) intent() {}

// Apply применяет намерение к списку и возвращает новый список.
// Входной срез не изменяется. changed равен false, если список остался прежним
// (удаление отсутствующей записи).
func Apply(records []domain.Employee, in Intent) (next []domain.Employee, changed bool, err error) {
	switch in := in.(type) {
	case Add:
		if IndexOf(records, in.Employee.ID) >= 0 {
			return records, false, fmt.Errorf("add %q: %w", in.Employee.ID, domain.ErrDuplicateID)
		}
		next = make([]domain.Employee, len(records), len(records)+1)
		copy(next, records)
		return append(next, in.Employee), true, nil

	case Edit:
		idx := IndexOf(records, in.Employee.ID)
		if idx < 0 {
			return records, false, fmt.Errorf("edit %q: %w", in.Employee.ID, domain.ErrEmployeeNotFound)
		}
		next = slices.Clone(records)
		next[idx] = in.Employee
		return next, true, nil

	case Delete:
		idx := IndexOf(records, in.ID)
		if idx < 0 {
			return records, false, nil
		}
		next = make([]domain.Employee, 0, len(records)-1)
		next = append(next, records[:idx]...)
		next = append(next, records[idx+1:]...)
		return next, true, nil

	default:
		return records, false, fmt.Errorf("unsupported intent %T", in)
	}
}

// IndexOf возвращает позицию записи с указанным ID или -1
func IndexOf(records []domain.Employee, id string) int {
	return slices.IndexFunc(records, func(e domain.Employee) bool {
		return e.ID == id
	})
}
