// Package seed генерирует демонстрационный список сотрудников для первого запуска.
package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/employee-roster-api/internal/domain"
)

var (
	firstNames = []string{"John", "Jane", "Emre", "Ayşe", "Mehmet", "Elif", "Lucas", "Sofia", "Noah", "Mia", "Can", "Zeynep"}
	lastNames  = []string{"Doe", "Smith", "Yılmaz", "Kaya", "Demir", "Brown", "Garcia", "Öztürk", "Miller", "Wilson", "Çelik"}
	domains    = []string{"example.com", "corp.example", "mail.example"}

	firstHire = time.Date(2015, time.January, 5, 0, 0, 0, 0, time.UTC)
	firstDOB  = time.Date(1970, time.March, 1, 0, 0, 0, 0, time.UTC)
)

// Employees возвращает n корректных записей с ID emp-1..emp-n.
// Результат детерминирован: одинаковое n даёт одинаковый список.
func Employees(n int) []domain.Employee {
	departments := domain.Departments()
	positions := domain.Positions()

	out := make([]domain.Employee, 0, max(n, 0))
	for i := range max(n, 0) {
		first := firstNames[i%len(firstNames)]
		last := lastNames[(i/len(firstNames)+i)%len(lastNames)]

		out = append(out, domain.Employee{
			ID:               fmt.Sprintf("emp-%d", i+1),
			FirstName:        first,
			LastName:         last,
			Email:            email(first, last, i),
			PhoneNumber:      fmt.Sprintf("+90 (5%02d) %03d %04d", 30+i%70, (i*37)%1000, (i*7919)%10000),
			DateOfEmployment: firstHire.AddDate(0, i%120, (i*3)%28).Format(domain.DateLayout),
			DateOfBirth:      firstDOB.AddDate(i%35, (i*5)%12, (i*11)%28).Format(domain.DateLayout),
			Department:       departments[i%len(departments)],
			Position:         positions[(i/len(departments))%len(positions)],
		})
	}
	return out
}

func email(first, last string, i int) string {
	local := asciiLower(first) + "." + asciiLower(last)
	if i >= len(firstNames) {
		local = fmt.Sprintf("%s%d", local, i+1)
	}
	return local + "@" + domains[i%len(domains)]
}

var transliteration = strings.NewReplacer(
	"ş", "s", "Ş", "s", "ı", "i", "İ", "i", "ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g", "ö", "o", "Ö", "o", "ü", "u", "Ü", "u",
)

func asciiLower(s string) string {
	return strings.ToLower(transliteration.Replace(s))
}
