package resource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/notaryweb/internal/db"
	"go.uber.org/zap"
)

// Definition names one resource type. Name is the plural used for routes,
// JSON envelopes, cache keys and metrics labels.
type Definition struct {
	Name     string
	Singular string
}

// Entity is satisfied by a pointer to any content model embedding db.Record.
type Entity[T any] interface {
	*T
	Base() *db.Record
}

// Payload is an explicit input schema that merges its supplied fields into T.
type Payload[T any] interface {
	Apply(item *T)
}

type positioned interface {
	Position() *int
}

type orderSupplier interface {
	HasOrder() bool
}

// Options wires the optional collaborators of a Service.
type Options[T any] struct {
	Cache    Cache
	Logger   *zap.Logger
	Recorder MutationRecorder
	// PublicHook decorates records handed to anonymous readers, e.g. rendering markdown.
	PublicHook func(*T)
}

// ListPage is one page of a public listing.
type ListPage[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	TotalPages int   `json:"totalPages"`
}

// Service applies the content policy (visibility, ordering, validation) on top of a Store.
type Service[T any, PT Entity[T], P Payload[T]] struct {
	def        Definition
	store      *Store[T]
	cache      Cache
	log        *zap.Logger
	recorder   MutationRecorder
	publicHook func(*T)
	sortable   bool
}

// NewService builds the service for one resource type.
func NewService[T any, PT Entity[T], P Payload[T]](def Definition, store *Store[T], opts Options[T]) *Service[T, PT, P] {
	svc := &Service[T, PT, P]{
		def:        def,
		store:      store,
		cache:      opts.Cache,
		log:        opts.Logger,
		recorder:   opts.Recorder,
		publicHook: opts.PublicHook,
	}
	if svc.cache == nil {
		svc.cache = NopCache{}
	}
	if svc.log == nil {
		svc.log = zap.NewNop()
	}
	if svc.recorder == nil {
		svc.recorder = nopRecorder{}
	}
	_, svc.sortable = any(PT(new(T))).(positioned)
	return svc
}

// Definition returns the resource names.
func (s *Service[T, PT, P]) Definition() Definition {
	return s.def
}

// Sortable reports whether the resource carries a display position.
func (s *Service[T, PT, P]) Sortable() bool {
	return s.sortable
}

// ListPublic returns active rows only. perPage <= 0 returns every active row on one page.
func (s *Service[T, PT, P]) ListPublic(ctx context.Context, page, perPage int) (ListPage[T], error) {
	page = normalizePage(page)
	if perPage < 0 {
		perPage = 0
	}

	key := s.cacheKey(fmt.Sprintf("public:%d:%d", page, perPage))
	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached ListPage[T]
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	items, total, err := s.store.List(ctx, ListOptions{
		ActiveOnly: true,
		Sortable:   s.sortable,
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		return ListPage[T]{}, err
	}
	for i := range items {
		s.decorate(&items[i])
	}

	result := ListPage[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: calculateTotalPages(total, perPage),
	}

	if page > result.TotalPages {
		return result, nil
	}
	if raw, err := json.Marshal(result); err == nil {
		s.cache.Set(ctx, key, raw)
	}
	return result, nil
}

// ListAdmin returns every row regardless of the active flag.
func (s *Service[T, PT, P]) ListAdmin(ctx context.Context) ([]T, error) {
	items, _, err := s.store.List(ctx, ListOptions{Sortable: s.sortable})
	return items, err
}

// Get fetches a row for the admin panel.
func (s *Service[T, PT, P]) Get(ctx context.Context, id uint) (*T, error) {
	return s.store.Get(ctx, id)
}

// GetPublic fetches an active row by id; inactive rows are reported as ErrNotFound.
func (s *Service[T, PT, P]) GetPublic(ctx context.Context, id uint) (*T, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.visible(item)
}

// GetPublicBy fetches an active row by a unique column such as slug.
func (s *Service[T, PT, P]) GetPublicBy(ctx context.Context, column string, value any) (*T, error) {
	item, err := s.store.GetBy(ctx, column, value)
	if err != nil {
		return nil, err
	}
	return s.visible(item)
}

// Create validates the payload and inserts a new row. New rows are active unless
// the payload says otherwise, and sortable rows without an explicit order go last.
func (s *Service[T, PT, P]) Create(ctx context.Context, payload P) (*T, error) {
	var item T
	PT(&item).Base().Active = true
	payload.Apply(&item)

	if s.sortable && !suppliesOrder(payload) {
		next, err := s.store.NextPosition(ctx)
		if err != nil {
			return nil, err
		}
		*any(PT(&item)).(positioned).Position() = next
	}

	if err := Validate(&item); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, &item); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "create", PT(&item).Base().ID)
	return &item, nil
}

// Update merges only the supplied fields and re-validates the merged row.
func (s *Service[T, PT, P]) Update(ctx context.Context, id uint, payload P) (*T, error) {
	item, err := s.store.Update(ctx, id, func(current *T) error {
		payload.Apply(current)
		return Validate(current)
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "update", id)
	return item, nil
}

// Delete removes a row permanently.
func (s *Service[T, PT, P]) Delete(ctx context.Context, id uint) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.afterMutation(ctx, "delete", id)
	return nil
}

// ToggleActive flips the active flag; calling it twice restores the original state.
func (s *Service[T, PT, P]) ToggleActive(ctx context.Context, id uint) (*T, error) {
	item, err := s.store.ToggleActive(ctx, id)
	if err != nil {
		return nil, err
	}
	s.afterMutation(ctx, "toggle", id)
	return item, nil
}

// Reorder assigns positions following ids; the set must match the existing rows exactly.
func (s *Service[T, PT, P]) Reorder(ctx context.Context, ids []uint) error {
	if !s.sortable {
		return NewValidationError("ids", fmt.Sprintf("%s cannot be reordered", s.def.Name))
	}
	if err := s.store.Reorder(ctx, ids); err != nil {
		return err
	}
	s.afterMutation(ctx, "reorder", 0)
	return nil
}

func (s *Service[T, PT, P]) visible(item *T) (*T, error) {
	if !PT(item).Base().Active {
		return nil, ErrNotFound
	}
	s.decorate(item)
	return item, nil
}

func (s *Service[T, PT, P]) decorate(item *T) {
	if s.publicHook != nil {
		s.publicHook(item)
	}
}

func (s *Service[T, PT, P]) afterMutation(ctx context.Context, op string, id uint) {
	s.cache.Invalidate(ctx, s.cacheKey(""))
	s.recorder.ObserveMutation(s.def.Name, op)
	s.log.Info("content mutated",
		zap.String("resource", s.def.Name),
		zap.String("op", op),
		zap.Uint("id", id),
	)
}

func (s *Service[T, PT, P]) cacheKey(suffix string) string {
	return "content:" + s.def.Name + ":" + suffix
}

func suppliesOrder(payload any) bool {
	supplier, ok := payload.(orderSupplier)
	return ok && supplier.HasOrder()
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func calculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
