package roster_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/employee-roster-api/internal/domain"
	"github.com/employee-roster-api/internal/roster"
)

func employee(id, firstName string) domain.Employee {
	return domain.Employee{
		ID:               id,
		FirstName:        firstName,
		LastName:         "Doe",
		Email:            "someone@example.com",
		PhoneNumber:      "555-123-4567",
		DateOfEmployment: "2020-01-01",
		DateOfBirth:      "1990-01-01",
		Department:       domain.DepartmentTech,
		Position:         domain.PositionSenior,
	}
}

func seed() []domain.Employee {
	return []domain.Employee{employee("1", "John"), employee("2", "Jane")}
}

func TestApply_AddToEmpty(t *testing.T) {
	next, changed, err := roster.Apply(nil, roster.Add{Employee: employee("1", "A")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("expected changed to be true")
	}
	if diff := cmp.Diff([]domain.Employee{employee("1", "A")}, next); diff != "" {
		t.Errorf("unexpected records (-want +got):\n%s", diff)
	}

	next, changed, err = roster.Apply(next, roster.Delete{ID: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("expected changed to be true")
	}
	if len(next) != 0 {
		t.Errorf("expected empty list, got %d records", len(next))
	}
}

func TestApply_AddAppendsToEnd(t *testing.T) {
	next, _, err := roster.Apply(seed(), roster.Add{Employee: employee("3", "Jim")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := make([]string, len(next))
	for i, e := range next {
		ids[i] = e.ID
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, ids); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestApply_AddDuplicateID(t *testing.T) {
	records := seed()

	next, changed, err := roster.Apply(records, roster.Add{Employee: employee("2", "Other")})
	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if changed {
		t.Error("expected changed to be false")
	}
	if diff := cmp.Diff(seed(), next); diff != "" {
		t.Errorf("records changed on failure (-want +got):\n%s", diff)
	}
}

func TestApply_AddThenDeleteRestoresState(t *testing.T) {
	before := seed()

	added, _, err := roster.Apply(before, roster.Add{Employee: employee("9", "Temp")})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	after, _, err := roster.Apply(added, roster.Delete{ID: "9"})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("add+delete did not restore state (-want +got):\n%s", diff)
	}
}

func TestApply_EditReplacesOnlyTarget(t *testing.T) {
	records := seed()
	edited := employee("2", "Janet")

	next, changed, err := roster.Apply(records, roster.Edit{Employee: edited})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("expected changed to be true")
	}

	want := []domain.Employee{employee("1", "John"), edited}
	if diff := cmp.Diff(want, next); diff != "" {
		t.Errorf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestApply_EditIsWholesale(t *testing.T) {
	records := seed()
	edited := employee("1", "John")
	edited.Department = domain.DepartmentAnalytics
	edited.Position = domain.PositionJunior
	edited.Email = "john@corp.example"

	next, _, err := roster.Apply(records, roster.Edit{Employee: edited})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(edited, next[0]); diff != "" {
		t.Errorf("edit did not replace the record (-want +got):\n%s", diff)
	}
}

func TestApply_EditMissing(t *testing.T) {
	_, changed, err := roster.Apply(seed(), roster.Edit{Employee: employee("42", "Ghost")})
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	if changed {
		t.Error("expected changed to be false")
	}
}

func TestApply_DeleteMissingIsNoop(t *testing.T) {
	next, changed, err := roster.Apply(seed(), roster.Delete{ID: "42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("expected changed to be false")
	}
	if diff := cmp.Diff(seed(), next); diff != "" {
		t.Errorf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	records := seed()

	if _, _, err := roster.Apply(records, roster.Edit{Employee: employee("1", "Changed")}); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if _, _, err := roster.Apply(records, roster.Delete{ID: "1"}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if diff := cmp.Diff(seed(), records); diff != "" {
		t.Errorf("input was mutated (-want +got):\n%s", diff)
	}
}

func TestIntentKind(t *testing.T) {
	tests := []struct {
		intent roster.Intent
		want   string
	}{
		{roster.Add{}, "add"},
		{roster.Edit{}, "edit"},
		{roster.Delete{}, "delete"},
	}

	for _, tt := range tests {
		if got := tt.intent.Kind(); got != tt.want {
			t.Errorf("expected kind %q, got %q", tt.want, got)
		}
	}
}
