package resource

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListOptions controls filtering, ordering and paging of Store.List.
type ListOptions struct {
	ActiveOnly bool
	Sortable   bool
	Page       int
	PerPage    int // 0 disables paging
}

// Store persists one entity type in its own table.
type Store[T any] struct {
	db   *gorm.DB
	name string
}

// NewStore returns a Store for T; name is used in error messages.
func NewStore[T any](gdb *gorm.DB, name string) *Store[T] {
	return &Store[T]{db: gdb, name: name}
}

// List returns the matching rows and the total count before paging.
func (s *Store[T]) List(ctx context.Context, opts ListOptions) ([]T, int64, error) {
	base := func() *gorm.DB {
		query := s.db.WithContext(ctx).Model(new(T))
		if opts.ActiveOnly {
			query = query.Where("active = ?", true)
		}
		return query
	}

	query := base()
	var total int64
	if opts.PerPage > 0 {
		if err := base().Count(&total).Error; err != nil {
			return nil, 0, fmt.Errorf("count %s: %w", s.name, err)
		}
		page := opts.Page
		if page < 1 {
			page = 1
		}
		// 超出最后一页直接返回空列表，同时避免 offset 溢出
		pages := (total + int64(opts.PerPage) - 1) / int64(opts.PerPage)
		if int64(page-1) >= pages {
			return make([]T, 0), total, nil
		}
		query = query.Offset((page - 1) * opts.PerPage).Limit(opts.PerPage)
	}

	if opts.Sortable {
		query = query.Order("sort_order ASC").Order("id ASC")
	} else {
		query = query.Order("created_at DESC").Order("id DESC")
	}

	items := make([]T, 0)
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", s.name, err)
	}
	if opts.PerPage <= 0 {
		total = int64(len(items))
	}
	return items, total, nil
}

// Get fetches a row by primary key.
func (s *Store[T]) Get(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", s.name, err)
	}
	return &item, nil
}

// GetBy fetches the first row whose column equals value, e.g. a page slug.
func (s *Store[T]) GetBy(ctx context.Context, column string, value any) (*T, error) {
	var item T
	err := s.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s by %s: %w", s.name, column, err)
	}
	return &item, nil
}

// Create inserts item; gorm fills in the id and both timestamps.
func (s *Store[T]) Create(ctx context.Context, item *T) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return fmt.Errorf("create %s: %w", s.name, err)
	}
	return nil
}

// Update loads the row, lets mutate merge the supplied fields and saves it
// in a single transaction. Errors returned by mutate abort the update unchanged.
func (s *Store[T]) Update(ctx context.Context, id uint, mutate func(*T) error) (*T, error) {
	var item T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find %s: %w", s.name, err)
		}
		if err := mutate(&item); err != nil {
			return err
		}
		if err := tx.Save(&item).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrConflict
			}
			return fmt.Errorf("update %s: %w", s.name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the row permanently.
func (s *Store[T]) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return fmt.Errorf("delete %s: %w", s.name, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleActive flips the active flag with a single UPDATE and returns the new state.
func (s *Store[T]) ToggleActive(ctx context.Context, id uint) (*T, error) {
	var item T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(new(T)).Where("id = ?", id).Update("active", gorm.Expr("NOT active"))
		if result.Error != nil {
			return fmt.Errorf("toggle %s: %w", s.name, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.First(&item, id).Error; err != nil {
			return fmt.Errorf("reload %s: %w", s.name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Reorder assigns sort_order = index to each id. The ids must list every
// existing row exactly once; otherwise nothing is changed.
func (s *Store[T]) Reorder(ctx context.Context, ids []uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []uint
		if err := tx.Model(new(T)).Pluck("id", &existing).Error; err != nil {
			return fmt.Errorf("load %s ids: %w", s.name, err)
		}
		if err := matchIDs(existing, ids); err != nil {
			return err
		}

		for index, id := range ids {
			if err := tx.Model(new(T)).Where("id = ?", id).Update("sort_order", index).Error; err != nil {
				return fmt.Errorf("reorder %s: %w", s.name, err)
			}
		}
		return nil
	})
}

// NextPosition returns the position after the current last row.
func (s *Store[T]) NextPosition(ctx context.Context) (int, error) {
	var maxSort int
	if err := s.db.WithContext(ctx).Model(new(T)).Select("COALESCE(MAX(sort_order), -1)").Scan(&maxSort).Error; err != nil {
		return 0, fmt.Errorf("resolve %s position: %w", s.name, err)
	}
	return maxSort + 1, nil
}

func matchIDs(existing, requested []uint) error {
	seen := make(map[uint]struct{}, len(requested))
	for _, id := range requested {
		if _, dup := seen[id]; dup {
			return NewValidationError("ids", fmt.Sprintf("contains duplicate id %d", id))
		}
		seen[id] = struct{}{}
	}

	if len(requested) != len(existing) {
		return NewValidationError("ids", "must list every existing id exactly once")
	}
	for _, id := range existing {
		if _, ok := seen[id]; !ok {
			return NewValidationError("ids", "must list every existing id exactly once")
		}
	}
	return nil
}
