package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope maps ancestor-id columns to the values taken from the request path
type Scope map[string]interface{}

// Filter narrows a list query; count and content queries apply the same filter
type Filter func(*gorm.DB) *gorm.DB

// Cascade names a dependent table whose rows are deleted together with the parent
type Cascade struct {
	Model  interface{}
	Column string
}

// Store is the persistence capability every generic resource needs
type Store[E any] interface {
	Save(ctx context.Context, entity *E) error
	FindScoped(ctx context.Context, id uint, scope Scope) (*E, error)
	ExistsScoped(ctx context.Context, id uint, scope Scope) (bool, error)
	DeleteByID(ctx context.Context, id uint) error
	FindPageAndCount(ctx context.Context, scope Scope, filter Filter, offset, limit int) ([]E, int64, error)
}

// gormStore implements Store for any GORM model with an "id" primary key
type gormStore[E any] struct {
	db       *gorm.DB
	cascades []Cascade
}

// NewStore creates a new store; cascades run inside the delete transaction in the given order
func NewStore[E any](db *gorm.DB, cascades ...Cascade) Store[E] {
	return &gormStore[E]{db: db, cascades: cascades}
}

// scoped applies the id and ancestor columns to a query
func scoped(q *gorm.DB, scope Scope) *gorm.DB {
	if len(scope) == 0 {
		return q
	}
	return q.Where(map[string]interface{}(scope))
}

// Save inserts a new row or overwrites an existing one
func (s *gormStore[E]) Save(ctx context.Context, entity *E) error {
	return s.db.WithContext(ctx).Save(entity).Error
}

// FindScoped gets a row by id within its ancestor chain
func (s *gormStore[E]) FindScoped(ctx context.Context, id uint, scope Scope) (*E, error) {
	var entity E
	err := scoped(s.db.WithContext(ctx).Where("id = ?", id), scope).First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// ExistsScoped checks if a row exists within its ancestor chain
func (s *gormStore[E]) ExistsScoped(ctx context.Context, id uint, scope Scope) (bool, error) {
	var count int64
	err := scoped(s.db.WithContext(ctx).Model(new(E)).Where("id = ?", id), scope).Count(&count).Error
	return count > 0, err
}

// DeleteByID deletes a row and its dependents in one transaction
func (s *gormStore[E]) DeleteByID(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range s.cascades {
			if err := tx.Where(c.Column+" = ?", id).Delete(c.Model).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(new(E), id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// FindPageAndCount lists one window of rows ordered by id plus the total count of the same predicate
func (s *gormStore[E]) FindPageAndCount(ctx context.Context, scope Scope, filter Filter, offset, limit int) ([]E, int64, error) {
	base := func() *gorm.DB {
		q := scoped(s.db.WithContext(ctx).Model(new(E)), scope)
		if filter != nil {
			q = filter(q)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]E, 0, limit)
	err := base().
		Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}}).
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
