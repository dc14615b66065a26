package services

import (
	"context"

	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/core/domain"
	"unihub/internal/pkg/pagination"
	"unihub/internal/pkg/validation"
)

// Exister probes whether a row exists within its ancestor chain
type Exister interface {
	ExistsScoped(ctx context.Context, id uint, scope repositories.Scope) (bool, error)
}

// Parent describes the containing resource that must exist before a child is written
type Parent struct {
	Name   string
	Column string
	Store  Exister
}

// CRUD is the generic create/get/update/delete/list service for one entity type.
// E is the persisted model, In the request body and Out the response DTO.
type CRUD[E any, In any, Out any] struct {
	Name   string
	Store  repositories.Store[E]
	Parent *Parent

	// Apply copies request fields onto the entity; used by create and update
	Apply func(e *E, in *In) error
	// Bind sets the ancestor ids present in scope, overriding anything from the body
	Bind func(e *E, scope repositories.Scope)
	// ToOutput maps the entity to its response
	ToOutput func(e *E) Out
	// BeforeDelete may veto a delete
	BeforeDelete func(ctx context.Context, e *E) error
}

// probeParent checks the parent row named by scope exists inside the rest of the scope.
// A nil scope addresses the row by id alone and skips the probe.
func (s *CRUD[E, In, Out]) probeParent(ctx context.Context, scope repositories.Scope) error {
	if s.Parent == nil || scope == nil {
		return nil
	}

	parentID, ok := scopeID(scope, s.Parent.Column)
	if !ok {
		return domain.NotFound(s.Parent.Name)
	}

	parentScope := repositories.Scope{}
	for column, value := range scope {
		if column != s.Parent.Column {
			parentScope[column] = value
		}
	}

	exists, err := s.Parent.Store.ExistsScoped(ctx, parentID, parentScope)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NotFound(s.Parent.Name)
	}
	return nil
}

func (s *CRUD[E, In, Out]) save(ctx context.Context, entity *E) error {
	if err := s.Store.Save(ctx, entity); err != nil {
		if repositories.IsDuplicateKey(err) {
			return domain.Conflict(s.Name)
		}
		return err
	}
	return nil
}

func (s *CRUD[E, In, Out]) find(ctx context.Context, id uint, scope repositories.Scope) (*E, error) {
	entity, err := s.Store.FindScoped(ctx, id, scope)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.NotFound(s.Name)
		}
		return nil, err
	}
	return entity, nil
}

// Create validates the input, checks the parent, and inserts a new row bound to the path ids
func (s *CRUD[E, In, Out]) Create(ctx context.Context, scope repositories.Scope, in *In) (Out, error) {
	var zero Out
	if err := validation.Struct(in); err != nil {
		return zero, err
	}
	if err := s.probeParent(ctx, scope); err != nil {
		return zero, err
	}

	entity := new(E)
	if err := s.Apply(entity, in); err != nil {
		return zero, err
	}
	if s.Bind != nil {
		s.Bind(entity, scope)
	}

	if err := s.save(ctx, entity); err != nil {
		return zero, err
	}
	return s.ToOutput(entity), nil
}

// Get returns one row by id within its ancestor chain
func (s *CRUD[E, In, Out]) Get(ctx context.Context, id uint, scope repositories.Scope) (Out, error) {
	var zero Out
	entity, err := s.find(ctx, id, scope)
	if err != nil {
		return zero, err
	}
	return s.ToOutput(entity), nil
}

// Update overwrites an existing row; ids come from the path, never from the body
func (s *CRUD[E, In, Out]) Update(ctx context.Context, id uint, scope repositories.Scope, in *In) (Out, error) {
	var zero Out
	if err := validation.Struct(in); err != nil {
		return zero, err
	}
	if err := s.probeParent(ctx, scope); err != nil {
		return zero, err
	}

	entity, err := s.find(ctx, id, scope)
	if err != nil {
		return zero, err
	}
	if err := s.Apply(entity, in); err != nil {
		return zero, err
	}
	if s.Bind != nil {
		s.Bind(entity, scope)
	}

	if err := s.save(ctx, entity); err != nil {
		return zero, err
	}
	return s.ToOutput(entity), nil
}

// Delete removes a row and its dependents
func (s *CRUD[E, In, Out]) Delete(ctx context.Context, id uint, scope repositories.Scope) error {
	entity, err := s.find(ctx, id, scope)
	if err != nil {
		return err
	}
	if s.BeforeDelete != nil {
		if err := s.BeforeDelete(ctx, entity); err != nil {
			return err
		}
	}
	if err := s.Store.DeleteByID(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return domain.NotFound(s.Name)
		}
		return err
	}
	return nil
}

// List returns one page of rows under scope narrowed by filter
func (s *CRUD[E, In, Out]) List(ctx context.Context, scope repositories.Scope, filter repositories.Filter, params pagination.Params) (*pagination.Page[Out], error) {
	items, total, err := s.Store.FindPageAndCount(ctx, scope, filter, params.Offset, params.Size)
	if err != nil {
		return nil, err
	}

	out := make([]Out, 0, len(items))
	for i := range items {
		out = append(out, s.ToOutput(&items[i]))
	}
	return pagination.NewPage(out, params, total), nil
}

// scopeID reads an id column from scope
func scopeID(scope repositories.Scope, column string) (uint, bool) {
	v, ok := scope[column]
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// bindID sets *dst when scope carries column
func bindID(dst *uint, scope repositories.Scope, column string) {
	if id, ok := scopeID(scope, column); ok {
		*dst = id
	}
}
