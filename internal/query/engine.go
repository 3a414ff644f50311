package query

import (
	"fmt"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/employee-roster-api/internal/domain"
)

// Params - параметры выборки
type Params struct {
	Search    string
	SortField Field // пустое значение - без сортировки
	Direction Direction
	Page      int
	PageSize  int
}

// Result - готовая к отображению страница
type Result struct {
	Items      []domain.Employee
	Total      int
	Page       int
	PageSize   int
	TotalPages int
	Window     []int
}

// Engine выполняет выборки с учётом локали и размера страницы по умолчанию
type Engine struct {
	tag             language.Tag
	defaultPageSize int
}

// NewEngine создаёт движок выборок. locale - тег BCP 47 (например, "en" или "tr").
func NewEngine(locale string, defaultPageSize int) (*Engine, error) {
	tag := language.Und
	if locale != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidLocale, locale, err)
		}
		tag = parsed
	}

	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	if defaultPageSize > MaxPageSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, defaultPageSize)
	}

	return &Engine{tag: tag, defaultPageSize: defaultPageSize}, nil
}

// Run выполняет Filter -> Sort -> Paginate и каждый раз пересчитывает всё заново
func (e *Engine) Run(records []domain.Employee, p Params) (Result, error) {
	p, err := e.normalize(p)
	if err != nil {
		return Result{}, err
	}

	matched := Filter(records, p.Search)

	if p.SortField != "" {
		// Коллатор хранит внутренние буферы, поэтому создаётся на каждый вызов
		matched, err = Sort(matched, p.SortField, p.Direction, collate.New(e.tag))
		if err != nil {
			return Result{}, err
		}
	}

	total := TotalPages(len(matched), p.PageSize)
	return Result{
		Items:      Paginate(matched, p.Page, p.PageSize),
		Total:      len(matched),
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: total,
		Window:     PageWindow(p.Page, total),
	}, nil
}

func (e *Engine) normalize(p Params) (Params, error) {
	switch {
	case p.Page == 0:
		p.Page = 1
	case p.Page < 0:
		return p, ErrInvalidPage
	}

	switch {
	case p.PageSize == 0:
		p.PageSize = e.defaultPageSize
	case p.PageSize < 0 || p.PageSize > MaxPageSize:
		return p, ErrInvalidPageSize
	}

	if p.Direction == "" {
		p.Direction = Asc
	}
	if p.Direction != Asc && p.Direction != Desc {
		return p, ErrInvalidSortDirection
	}

	if p.SortField != "" && !p.SortField.Valid() {
		return p, ErrInvalidSortField
	}

	return p, nil
}
