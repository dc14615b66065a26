package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/core/domain"
	"unihub/internal/core/services"
	"unihub/internal/pkg/pagination"
	"unihub/internal/pkg/response"
)

// ScopeParam maps a path parameter onto the column it scopes
type ScopeParam struct {
	Param  string
	Column string
}

// Path parameters shared by the nested routes
var (
	UniversityScope = ScopeParam{Param: "universityId", Column: services.ColUniversity}
	FacultyScope    = ScopeParam{Param: "facultyId", Column: services.ColFaculty}
	ProgramScope    = ScopeParam{Param: "programId", Column: services.ColProgram}
	ModuleScope     = ScopeParam{Param: "moduleId", Column: services.ColModule}
	StudentScope    = ScopeParam{Param: "studentId", Column: services.ColStudent}
)

// ResourceHandler serves the CRUD routes of one entity nested under its ancestors
type ResourceHandler[E any, In any, Out any] struct {
	service *services.CRUD[E, In, Out]
	idParam string
	scope   []ScopeParam
}

// NewResourceHandler creates a handler reading the entity id from idParam and ancestor ids from scope
func NewResourceHandler[E any, In any, Out any](service *services.CRUD[E, In, Out], idParam string, scope ...ScopeParam) *ResourceHandler[E, In, Out] {
	return &ResourceHandler[E, In, Out]{service: service, idParam: idParam, scope: scope}
}

// List returns one page of entities
func (h *ResourceHandler[E, In, Out]) List(c *fiber.Ctx) error {
	scope, err := scopeFromPath(c, h.scope)
	if err != nil {
		return err
	}

	page, err := h.service.List(c.UserContext(), scope, nil, pagination.GetParams(c))
	if err != nil {
		return err
	}
	return response.Success(c, page)
}

// Get returns one entity
func (h *ResourceHandler[E, In, Out]) Get(c *fiber.Ctx) error {
	id, scope, err := h.target(c)
	if err != nil {
		return err
	}

	out, err := h.service.Get(c.UserContext(), id, scope)
	if err != nil {
		return err
	}
	return response.Success(c, out)
}

// Create stores a new entity under the path's ancestors
func (h *ResourceHandler[E, In, Out]) Create(c *fiber.Ctx) error {
	scope, err := scopeFromPath(c, h.scope)
	if err != nil {
		return err
	}
	in, err := parseBody[In](c)
	if err != nil {
		return err
	}

	out, err := h.service.Create(c.UserContext(), scope, in)
	if err != nil {
		return err
	}
	return response.Created(c, out)
}

// Update overwrites an existing entity
func (h *ResourceHandler[E, In, Out]) Update(c *fiber.Ctx) error {
	id, scope, err := h.target(c)
	if err != nil {
		return err
	}
	in, err := parseBody[In](c)
	if err != nil {
		return err
	}

	out, err := h.service.Update(c.UserContext(), id, scope, in)
	if err != nil {
		return err
	}
	return response.Success(c, out)
}

// Delete removes an entity and everything it contains
func (h *ResourceHandler[E, In, Out]) Delete(c *fiber.Ctx) error {
	id, scope, err := h.target(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id, scope); err != nil {
		return err
	}
	return response.Message(c, h.service.Name+".deleted")
}

func (h *ResourceHandler[E, In, Out]) target(c *fiber.Ctx) (uint, repositories.Scope, error) {
	id, err := pathID(c, h.idParam)
	if err != nil {
		return 0, nil, err
	}
	scope, err := scopeFromPath(c, h.scope)
	if err != nil {
		return 0, nil, err
	}
	return id, scope, nil
}

// pathID parses a positive numeric path parameter
func pathID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Params(param)), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.IllegalArgument(param + ".invalid")
	}
	return uint(id), nil
}

// queryID reads an id that must appear exactly once in the query string,
// matching how Authorize resolves query ownership
func queryID(c *fiber.Ctx, param string) (uint, error) {
	values := c.Context().QueryArgs().PeekMulti(param)
	switch {
	case len(values) == 0:
		return 0, domain.IllegalArgument(param + ".must.not.be.null")
	case len(values) > 1:
		return 0, domain.IllegalArgument(param + ".invalid")
	}
	id, err := strconv.ParseUint(strings.TrimSpace(string(values[0])), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.IllegalArgument(param + ".invalid")
	}
	return uint(id), nil
}

// scopeFromPath builds the ancestor scope from the path; nil when the route has no ancestors
func scopeFromPath(c *fiber.Ctx, params []ScopeParam) (repositories.Scope, error) {
	if len(params) == 0 {
		return nil, nil
	}
	scope := make(repositories.Scope, len(params))
	for _, p := range params {
		id, err := pathID(c, p.Param)
		if err != nil {
			return nil, err
		}
		scope[p.Column] = id
	}
	return scope, nil
}

// parseBody decodes the JSON request body
func parseBody[T any](c *fiber.Ctx) (*T, error) {
	in := new(T)
	if err := c.BodyParser(in); err != nil {
		return nil, domain.IllegalArgument("body.invalid")
	}
	return in, nil
}
