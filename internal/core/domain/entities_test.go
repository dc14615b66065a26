package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestPrincipalAuthorities(t *testing.T) {
	tests := []struct {
		name      string
		principal Principal
		expected  []string
	}{
		{
			name:      "student holds own id and university",
			principal: Principal{Role: RoleStudent, StudentID: uintPtr(5), UniversityID: uintPtr(3)},
			expected:  []string{"STUDENT", "STUDENT_5", "UNIVERSITY_3"},
		},
		{
			name:      "global administrator has role only",
			principal: Principal{Role: RoleAdministrator},
			expected:  []string{"ADMINISTRATOR"},
		},
		{
			name:      "employee never gets a student authority",
			principal: Principal{Role: RoleEmployee, StudentID: uintPtr(9), UniversityID: uintPtr(1)},
			expected:  []string{"EMPLOYEE", "UNIVERSITY_1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.principal.Authorities())
		})
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("UNIVERSITY_ADMINISTRATOR")
	assert.True(t, ok)
	assert.Equal(t, RoleUniversityAdministrator, r)

	_, ok = ParseRole("ROOT")
	assert.False(t, ok)
}

func TestAppErrorMessages(t *testing.T) {
	assert.Equal(t, "university.not.found", NotFound("university").Message)
	assert.Equal(t, 404, NotFound("university").Code)
	assert.Equal(t, "building.conflict", Conflict("building").Message)
	assert.Equal(t, "bad.request;latitude.must.not.be.null", Validation("latitude.must.not.be.null").Message)
	assert.Equal(t, "bad.request;a;b", Validation("a", "b").Message)
	assert.Equal(t, "bad.request;friend.self.request", IllegalArgument("friend.self.request").Message)
}

func TestAppErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", ErrInvalidCredentials)
	assert.True(t, errors.Is(wrapped, ErrInvalidCredentials))
	assert.False(t, errors.Is(wrapped, ErrInvalidToken))
	assert.False(t, errors.Is(NotFound("user"), ErrNoSuchUser), "an unknown principal is 401, a missing row is 404")
	assert.Equal(t, 401, ErrNoSuchUser.Code)

	appErr, ok := AsAppError(errors.New("boom"))
	assert.False(t, ok)
	assert.Equal(t, ErrInternal, appErr)
}
