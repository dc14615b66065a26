package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"unihub/internal/core/domain"
)

func path(kv ...string) RequestParams {
	p := RequestParams{Path: map[string]string{}, Query: map[string][]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		p.Path[kv[i]] = kv[i+1]
	}
	return p
}

func TestDecide(t *testing.T) {
	student5 := &domain.Principal{Role: domain.RoleStudent, StudentID: uptr(5), UniversityID: uptr(1)}
	employee := &domain.Principal{Role: domain.RoleEmployee, EmployeeID: uptr(2), UniversityID: uptr(1)}
	admin := &domain.Principal{Role: domain.RoleAdministrator}

	studentSelf := Allow(domain.RoleStudent).Owning(OwnsStudentPath)
	uniStaff := Allow(domain.RoleUniversityAdministrator, domain.RoleEmployee).Owning(OwnsUniversityPath)

	tests := []struct {
		name      string
		principal *domain.Principal
		rule      Rule
		params    RequestParams
		expected  Decision
	}{
		{"student reads own record", student5, studentSelf, path("studentId", "5"), Permit},
		{"student reads another record", student5, studentSelf, path("studentId", "6"), Deny},
		{"employee not listed", employee, studentSelf, path("studentId", "5"), Deny},
		{"anonymous", nil, Allow(domain.AllRoles()...), path(), Deny},
		{"role only", admin, Allow(domain.RoleAdministrator), path(), Permit},
		{"missing parameter", student5, studentSelf, path(), Deny},
		{"blank parameter", student5, studentSelf, path("studentId", " "), Deny},
		{"malformed parameter", student5, studentSelf, path("studentId", "5abc"), Deny},
		{"employee owns university", employee, uniStaff, path("universityId", "1"), Permit},
		{"employee other university", employee, uniStaff, path("universityId", "2"), Deny},
		{"admin without university authority", admin, Allow(domain.RoleAdministrator).Owning(OwnsUniversityPath), path("universityId", "1"), Deny},
		{"leading zeros normalise", student5, studentSelf, path("studentId", "05"), Permit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decide(tt.principal, tt.rule, tt.params))
		})
	}
}

func TestDecide_QueryOwnership(t *testing.T) {
	student := &domain.Principal{Role: domain.RoleStudent, StudentID: uptr(5), UniversityID: uptr(3)}
	rule := Allow(domain.AllRoles()...).Owning(OwnsUniversityQuery)

	params := RequestParams{Query: map[string][]string{"universityId": {"3"}}}
	assert.Equal(t, Permit, Decide(student, rule, params))

	params = RequestParams{Query: map[string][]string{"universityId": {"4"}}}
	assert.Equal(t, Deny, Decide(student, rule, params))

	params = RequestParams{Query: map[string][]string{"universityId": {"4", "3"}}}
	assert.Equal(t, Deny, Decide(student, rule, params), "a repeated parameter is denied even when one value is owned")

	params = RequestParams{Query: map[string][]string{"universityId": {"3", "3"}}}
	assert.Equal(t, Deny, Decide(student, rule, params))

	params = RequestParams{Path: map[string]string{"universityId": "3"}}
	assert.Equal(t, Deny, Decide(student, rule, params), "path value does not satisfy a query rule")
}

func TestDecideAny(t *testing.T) {
	rules := []Rule{
		Allow(domain.RoleAdministrator),
		Allow(domain.RoleUniversityAdministrator).Owning(OwnsUniversityPath),
	}

	admin := &domain.Principal{Role: domain.RoleAdministrator}
	uniAdmin := &domain.Principal{Role: domain.RoleUniversityAdministrator, UniversityID: uptr(7)}
	student := &domain.Principal{Role: domain.RoleStudent, StudentID: uptr(1), UniversityID: uptr(7)}

	assert.Equal(t, Permit, DecideAny(admin, rules, path("universityId", "9")))
	assert.Equal(t, Permit, DecideAny(uniAdmin, rules, path("universityId", "7")))
	assert.Equal(t, Deny, DecideAny(uniAdmin, rules, path("universityId", "9")))
	assert.Equal(t, Deny, DecideAny(student, rules, path("universityId", "7")))
	assert.Equal(t, Deny, DecideAny(nil, rules, path("universityId", "7")))
}
