package services

import (
	"strconv"
	"strings"

	"unihub/internal/core/domain"
)

// OwnershipSource says where the owned identifier of a request is read from
type OwnershipSource int

const (
	OwnershipNone OwnershipSource = iota
	OwnershipPath
	OwnershipQuery
)

// Ownership names the request parameter the principal must own
type Ownership struct {
	Source OwnershipSource
	Param  string
	// Prefix is the authority prefix, e.g. domain.StudentAuthorityPrefix
	Prefix string
}

// Common ownership parameters
var (
	NoOwnership         = Ownership{}
	OwnsStudentPath     = Ownership{Source: OwnershipPath, Param: "studentId", Prefix: domain.StudentAuthorityPrefix}
	OwnsUniversityPath  = Ownership{Source: OwnershipPath, Param: "universityId", Prefix: domain.UniversityAuthorityPrefix}
	OwnsUniversityQuery = Ownership{Source: OwnershipQuery, Param: "universityId", Prefix: domain.UniversityAuthorityPrefix}
)

// Rule is one static authorization rule of a route
type Rule struct {
	Roles     []domain.Role
	Ownership Ownership
}

// Allow builds a rule for roles without ownership
func Allow(roles ...domain.Role) Rule {
	return Rule{Roles: roles}
}

// Owning returns a copy of r that also requires ownership o
func (r Rule) Owning(o Ownership) Rule {
	r.Ownership = o
	return r
}

// RequestParams exposes the path and query parameters of a request.
// Query keeps every value of a repeated key in request order.
type RequestParams struct {
	Path  map[string]string
	Query map[string][]string
}

func (p RequestParams) lookup(o Ownership) string {
	switch o.Source {
	case OwnershipPath:
		return p.Path[o.Param]
	case OwnershipQuery:
		// A repeated key is ambiguous and owns nothing
		if values := p.Query[o.Param]; len(values) == 1 {
			return values[0]
		}
	}
	return ""
}

// Decision is the outcome of evaluating rules
type Decision int

const (
	Deny Decision = iota
	Permit
)

// Decide evaluates one rule: role first, then ownership of the named parameter
func Decide(p *domain.Principal, rule Rule, params RequestParams) Decision {
	if p == nil {
		return Deny
	}
	if !hasRole(rule.Roles, p.Role) {
		return Deny
	}
	if rule.Ownership.Source == OwnershipNone {
		return Permit
	}

	raw := strings.TrimSpace(params.lookup(rule.Ownership))
	if raw == "" {
		return Deny
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return Deny
	}

	expected := rule.Ownership.Prefix + strconv.FormatUint(id, 10)
	if p.HasAuthority(expected) {
		return Permit
	}
	return Deny
}

// DecideAny permits when at least one rule permits
func DecideAny(p *domain.Principal, rules []Rule, params RequestParams) Decision {
	for _, rule := range rules {
		if Decide(p, rule, params) == Permit {
			return Permit
		}
	}
	return Deny
}

func hasRole(roles []domain.Role, role domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
