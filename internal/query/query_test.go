package query

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/employee-roster-api/internal/domain"
)

func newEmployee(id, first, last, email string) domain.Employee {
	return domain.Employee{
		ID:               id,
		FirstName:        first,
		LastName:         last,
		Email:            email,
		PhoneNumber:      "555-123-4567",
		DateOfEmployment: "2020-01-01",
		DateOfBirth:      "1990-01-01",
		Department:       domain.DepartmentAnalytics,
		Position:         domain.PositionJunior,
	}
}

func ids(records []domain.Employee) []string {
	out := make([]string, len(records))
	for i, e := range records {
		out[i] = e.ID
	}
	return out
}

func johnAndJane() []domain.Employee {
	return []domain.Employee{
		newEmployee("1", "John", "Doe", "john.doe@example.com"),
		newEmployee("2", "Jane", "Roe", "jane.roe@example.com"),
	}
}

func sample() []domain.Employee {
	return []domain.Employee{
		newEmployee("1", "Alice", "Smith", "alice@example.com"),
		newEmployee("2", "bob", "Jones", "bob@corp.example"),
		newEmployee("3", "Carol", "smith", "carol@example.com"),
		newEmployee("4", "Dave", "Brown", "dave@other.example"),
		newEmployee("5", "alice", "Young", "ay@example.com"),
		newEmployee("6", "Eve", "Smithers", "eve@example.com"),
		newEmployee("7", "Frank", "Stone", "frank@example.com"),
	}
}

func TestFilter_Scenario(t *testing.T) {
	got := Filter(johnAndJane(), "john")
	if diff := cmp.Diff([]string{"1"}, ids(got)); diff != "" {
		t.Errorf("unexpected ids (-want +got):\n%s", diff)
	}
}

func TestFilter_EmptySearchReturnsAllInOrder(t *testing.T) {
	records := sample()
	got := Filter(records, "")
	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestFilter_MatchesExactlyTheSubstringHolders(t *testing.T) {
	records := sample()

	for _, q := range []string{"smith", "ALICE", "example.com", "e S", "@corp", "zzz", "o"} {
		got := Filter(records, q)
		kept := make(map[string]bool, len(got))
		for _, e := range got {
			kept[e.ID] = true
		}

		needle := strings.ToLower(q)
		for _, e := range records {
			has := strings.Contains(strings.ToLower(e.FirstName+" "+e.LastName+" "+e.Email), needle)
			if has != kept[e.ID] {
				t.Errorf("search %q: record %s match=%t, kept=%t", q, e.ID, has, kept[e.ID])
			}
		}

		if !slices.IsSortedFunc(got, func(a, b domain.Employee) int {
			return strings.Compare(a.ID, b.ID)
		}) {
			t.Errorf("search %q: original order not preserved: %v", q, ids(got))
		}
	}
}

func TestSort_Scenario(t *testing.T) {
	got, err := Sort(johnAndJane(), FieldFirstName, Desc, collate.New(language.English))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"2", "1"}, ids(got)); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}

	page := Paginate(got, 1, 1)
	if len(page) != 1 || page[0].FirstName != "Jane" {
		t.Errorf("expected [Jane], got %v", page)
	}
	if total := TotalPages(len(got), 1); total != 2 {
		t.Errorf("expected 2 pages, got %d", total)
	}
}

func TestSort_LocaleAware(t *testing.T) {
	records := []domain.Employee{
		newEmployee("z", "Zoe", "A", "z@example.com"),
		newEmployee("e", "émile", "A", "e@example.com"),
		newEmployee("b", "Bob", "A", "b@example.com"),
		newEmployee("a", "adam", "A", "a@example.com"),
	}

	got, err := Sort(records, FieldFirstName, Asc, collate.New(language.English))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "e", "z"}, ids(got)); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestSort_StableInBothDirections(t *testing.T) {
	records := sample()
	// записи с чётным индексом переходят в Tech, остальные остаются в Analytics
	for i := range records {
		if i%2 == 0 {
			records[i].Department = domain.DepartmentTech
		}
	}

	for _, dir := range []Direction{Asc, Desc} {
		got, err := Sort(records, FieldDepartment, dir, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var analytics, tech []string
		for _, e := range got {
			if e.Department == domain.DepartmentTech {
				tech = append(tech, e.ID)
			} else {
				analytics = append(analytics, e.ID)
			}
		}

		if diff := cmp.Diff([]string{"2", "4", "6"}, analytics); diff != "" {
			t.Errorf("%s: analytics order changed (-want +got):\n%s", dir, diff)
		}
		if diff := cmp.Diff([]string{"1", "3", "5", "7"}, tech); diff != "" {
			t.Errorf("%s: tech order changed (-want +got):\n%s", dir, diff)
		}

		first := got[0].Department
		want := domain.DepartmentAnalytics
		if dir == Desc {
			want = domain.DepartmentTech
		}
		if first != want {
			t.Errorf("%s: expected %s first, got %s", dir, want, first)
		}
	}
}

func TestSort_Dates(t *testing.T) {
	records := sample()[:3]
	records[0].DateOfBirth = "1995-06-01"
	records[1].DateOfBirth = "1989-12-31"
	records[2].DateOfBirth = "1990-01-01"

	got, err := Sort(records, FieldDateOfBirth, Asc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"2", "3", "1"}, ids(got)); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestSort_InvalidArguments(t *testing.T) {
	if _, err := Sort(sample(), Field("salary"), Asc, nil); !errors.Is(err, ErrInvalidSortField) {
		t.Errorf("expected ErrInvalidSortField, got %v", err)
	}
	if _, err := Sort(sample(), FieldEmail, Direction("sideways"), nil); !errors.Is(err, ErrInvalidSortDirection) {
		t.Errorf("expected ErrInvalidSortDirection, got %v", err)
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	records := sample()
	if _, err := Sort(records, FieldLastName, Desc, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(sample(), records); diff != "" {
		t.Errorf("input was mutated (-want +got):\n%s", diff)
	}
}

func TestPaginate_ConcatenationReconstructsSequence(t *testing.T) {
	records := sample()

	for size := 1; size <= len(records)+1; size++ {
		var joined []domain.Employee
		total := TotalPages(len(records), size)
		for page := 1; page <= total; page++ {
			chunk := Paginate(records, page, size)
			if page < total && len(chunk) != size {
				t.Errorf("size %d page %d: expected full page, got %d", size, page, len(chunk))
			}
			joined = append(joined, chunk...)
		}
		if diff := cmp.Diff(records, joined); diff != "" {
			t.Errorf("size %d: pages do not reconstruct input (-want +got):\n%s", size, diff)
		}
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	records := sample()

	tests := []struct {
		page, size int
	}{
		{page: 3, size: 5},
		{page: 100, size: 1},
		{page: 0, size: 5},
		{page: -1, size: 5},
		{page: 1, size: 0},
		{page: math.MaxInt, size: 2},
		{page: 1844674407370955162, size: 10},
		{page: 2, size: math.MaxInt},
	}

	for _, tt := range tests {
		got := Paginate(records, tt.page, tt.size)
		if got == nil || len(got) != 0 {
			t.Errorf("page %d size %d: expected empty slice, got %v", tt.page, tt.size, got)
		}
	}
}

func TestPaginate_HugePageSize(t *testing.T) {
	records := sample()
	got := Paginate(records, 1, math.MaxInt)
	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("expected every record on the first page (-want +got):\n%s", diff)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, size, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{100, 10, 10},
		{101, 10, 11},
		{7, 3, 3},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.count, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d): expected %d, got %d", tt.count, tt.size, tt.want, got)
		}
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 1, []int{1}},
		{1, 2, []int{1, 2}},
		{1, 6, []int{1, 2, 3, 4, 5, 6}},
		{1, 10, []int{1, 2, 3, 4, 5, 0, 10}},
		{5, 10, []int{1, 0, 3, 4, 5, 6, 7, 0, 10}},
		{10, 10, []int{1, 0, 6, 7, 8, 9, 10}},
		{42, 10, []int{1, 0, 6, 7, 8, 9, 10}},
		{1, 0, []int{1}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.current, tt.total), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, PageWindow(tt.current, tt.total)); diff != "" {
				t.Errorf("unexpected window (-want +got):\n%s", diff)
			}
		})
	}
}
