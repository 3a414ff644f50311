// Package query строит отображаемую выборку сотрудников:
// фильтрация, сортировка и постраничная разбивка.
//
// Все функции чистые и не изменяют входной срез.
package query

import (
	"cmp"
	"errors"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/employee-roster-api/internal/domain"
)

var (
	ErrInvalidSortField     = errors.New("query: invalid sort field")
	ErrInvalidSortDirection = errors.New("query: invalid sort direction")
	ErrInvalidPage          = errors.New("query: invalid page")
	ErrInvalidPageSize      = errors.New("query: invalid page size")
	ErrInvalidLocale        = errors.New("query: invalid locale")
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	windowSize = 5
)

// Field - поле, по которому сортируется выборка.
// Значения совпадают с JSON-именами полей записи.
type Field string

const (
	FieldID               Field = "id"
	FieldFirstName        Field = "firstName"
	FieldLastName         Field = "lastName"
	FieldEmail            Field = "email"
	FieldPhoneNumber      Field = "phoneNumber"
	FieldDateOfEmployment Field = "dateOfEmployment"
	FieldDateOfBirth      Field = "dateOfBirth"
	FieldDepartment       Field = "department"
	FieldPosition         Field = "position"
)

// Direction - направление сортировки
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type fieldSpec struct {
	value  func(domain.Employee) string
	isDate bool
}

var fields = map[Field]fieldSpec{
	FieldID:               {value: func(e domain.Employee) string { return e.ID }},
	FieldFirstName:        {value: func(e domain.Employee) string { return e.FirstName }},
	FieldLastName:         {value: func(e domain.Employee) string { return e.LastName }},
	FieldEmail:            {value: func(e domain.Employee) string { return e.Email }},
	FieldPhoneNumber:      {value: func(e domain.Employee) string { return e.PhoneNumber }},
	FieldDepartment:       {value: func(e domain.Employee) string { return string(e.Department) }},
	FieldPosition:         {value: func(e domain.Employee) string { return string(e.Position) }},
	FieldDateOfEmployment: {value: func(e domain.Employee) string { return e.DateOfEmployment }, isDate: true},
	FieldDateOfBirth:      {value: func(e domain.Employee) string { return e.DateOfBirth }, isDate: true},
}

// Valid сообщает, поддерживается ли сортировка по полю
func (f Field) Valid() bool {
	_, ok := fields[f]
	return ok
}

// Filter оставляет записи, у которых "имя фамилия email" содержит search
// без учёта регистра. Пустая строка поиска оставляет все записи.
func Filter(records []domain.Employee, search string) []domain.Employee {
	needle := strings.ToLower(search)

	out := make([]domain.Employee, 0, len(records))
	for _, e := range records {
		if needle == "" || strings.Contains(strings.ToLower(e.SearchText()), needle) {
			out = append(out, e)
		}
	}
	return out
}

// Sort выполняет устойчивую сортировку по полю. Строки сравниваются
// с учётом локали коллатора, даты - по числу дней.
// Записи с равными ключами сохраняют исходный порядок в обоих направлениях.
func Sort(records []domain.Employee, field Field, dir Direction, coll *collate.Collator) ([]domain.Employee, error) {
	fs, ok := fields[field]
	if !ok {
		return nil, ErrInvalidSortField
	}
	if dir != Asc && dir != Desc {
		return nil, ErrInvalidSortDirection
	}
	if coll == nil {
		coll = collate.New(language.Und)
	}

	compare := func(a, b domain.Employee) int {
		av, bv := fs.value(a), fs.value(b)
		if fs.isDate {
			if c, ok := compareDates(av, bv); ok {
				return c
			}
		}
		return coll.CompareString(av, bv)
	}

	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b domain.Employee) int {
		if dir == Desc {
			return -compare(a, b)
		}
		return compare(a, b)
	})
	return out, nil
}

func compareDates(a, b string) (int, bool) {
	at, err := domain.ParseDate(a)
	if err != nil {
		return 0, false
	}
	bt, err := domain.ParseDate(b)
	if err != nil {
		return 0, false
	}
	const day = 24 * 60 * 60
	return cmp.Compare(at.Unix()/day, bt.Unix()/day), true
}

// Paginate возвращает страницу page (нумерация с 1) размером size.
// Страница за пределами выборки даёт пустой срез.
func Paginate(records []domain.Employee, page, size int) []domain.Employee {
	if page < 1 || size < 1 {
		return []domain.Employee{}
	}

	// Сравнение через деление: (page-1)*size может переполнить int
	if len(records) == 0 || page-1 > (len(records)-1)/size {
		return []domain.Employee{}
	}
	start := (page - 1) * size
	end := start + min(size, len(records)-start)

	return slices.Clone(records[start:end])
}

// TotalPages возвращает ceil(count/size), но не меньше 1
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// PageWindow возвращает номера страниц для пейджера: первую, до пяти страниц
// вокруг текущей и последнюю. Ноль обозначает пропуск ("...").
func PageWindow(current, total int) []int {
	if total < 1 {
		total = 1
	}
	current = max(1, min(current, total))

	half := windowSize / 2
	start := max(2, current-half)
	end := min(total-1, current+half)

	if current <= half+1 {
		end = min(total-1, windowSize)
	}
	if current >= total-half {
		start = max(2, total-windowSize+1)
	}

	pages := []int{1}
	if start > 2 {
		pages = append(pages, 0)
	}
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	if end < total-1 {
		pages = append(pages, 0)
	}
	if total > 1 {
		pages = append(pages, total)
	}
	return pages
}
