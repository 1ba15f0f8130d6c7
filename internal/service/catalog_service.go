package service

import (
	"context"
	"strings"
	"time"

	"github.com/hr-records-api/internal/cache"
	"github.com/hr-records-api/internal/database"
	"github.com/hr-records-api/internal/models"
	"github.com/hr-records-api/internal/repository"
	"github.com/rs/zerolog"
)

const catalogCachePrefix = "catalog:"

// catalogStore is the per-table half of the catalog service
type catalogStore interface {
	list(ctx context.Context) ([]models.CatalogItem, error)
	get(ctx context.Context, id int) (*models.CatalogItem, error)
	create(ctx context.Context, name string) (*models.CatalogItem, error)
	update(ctx context.Context, id int, name string) (*models.CatalogItem, error)
	delete(ctx context.Context, id int) error
}

// repoCatalogStore adapts a generic repository of a lookup entity
type repoCatalogStore[T any, PT interface {
	*T
	models.Catalog
}] struct {
	repo repository.Repository[T]
}

func newCatalogStore[T any, PT interface {
	*T
	models.Catalog
}](repo repository.Repository[T]) *repoCatalogStore[T, PT] {
	return &repoCatalogStore[T, PT]{repo: repo}
}

func toItem[T any, PT interface {
	*T
	models.Catalog
}](entity *T) *models.CatalogItem {
	c := PT(entity)
	return &models.CatalogItem{ID: c.GetID(), Name: c.GetName()}
}

func (s *repoCatalogStore[T, PT]) list(ctx context.Context) ([]models.CatalogItem, error) {
	entities, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]models.CatalogItem, 0, len(entities))
	for i := range entities {
		items = append(items, *toItem[T, PT](&entities[i]))
	}
	return items, nil
}

func (s *repoCatalogStore[T, PT]) get(ctx context.Context, id int) (*models.CatalogItem, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, ErrCatalogNotFound
	}
	return toItem[T, PT](entity), nil
}

// nameTaken reports whether another row already uses name, ignoring case
func (s *repoCatalogStore[T, PT]) nameTaken(ctx context.Context, name string, excludeID int) (bool, error) {
	column := PT(new(T)).NameColumn()
	matches, err := s.repo.Find(ctx, "LOWER("+column+") = LOWER(?)", name)
	if err != nil {
		return false, err
	}
	for i := range matches {
		if PT(&matches[i]).GetID() != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *repoCatalogStore[T, PT]) create(ctx context.Context, name string) (*models.CatalogItem, error) {
	taken, err := s.nameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	entity := new(T)
	PT(entity).SetName(name)
	if err := s.repo.Add(ctx, entity); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return toItem[T, PT](entity), nil
}

func (s *repoCatalogStore[T, PT]) update(ctx context.Context, id int, name string) (*models.CatalogItem, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, ErrCatalogNotFound
	}

	taken, err := s.nameTaken(ctx, name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	PT(entity).SetName(name)
	if err := s.repo.Update(ctx, entity); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return toItem[T, PT](entity), nil
}

func (s *repoCatalogStore[T, PT]) delete(ctx context.Context, id int) error {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entity == nil {
		return ErrCatalogNotFound
	}
	if err := s.repo.Delete(ctx, entity); err != nil {
		if database.IsForeignKeyViolation(err) {
			return ErrCatalogInUse
		}
		return err
	}
	return nil
}

// catalogService is the concrete implementation of CatalogService
type catalogService struct {
	stores map[models.CatalogKind]catalogStore
	cache  cache.Cache
	ttl    time.Duration
	log    zerolog.Logger
}

// newCatalogService creates a new CatalogService
func newCatalogService(repos *repository.Repositories, c cache.Cache, ttl time.Duration, log zerolog.Logger) *catalogService {
	return &catalogService{
		stores: map[models.CatalogKind]catalogStore{
			models.CatalogStatuses:        newCatalogStore[models.Status](repos.Statuses),
			models.CatalogDepartments:     newCatalogStore[models.Department](repos.Departments),
			models.CatalogPositions:       newCatalogStore[models.Position](repos.Positions),
			models.CatalogEducationLevels: newCatalogStore[models.EducationLevel](repos.EducationLevels),
		},
		cache: c,
		ttl:   ttl,
		log:   log.With().Str("service", "catalog").Logger(),
	}
}

func (s *catalogService) store(kind models.CatalogKind) (catalogStore, error) {
	store, ok := s.stores[kind]
	if !ok {
		return nil, ErrUnknownCatalog
	}
	return store, nil
}

// List returns every row of a lookup table, served from cache when possible
func (s *catalogService) List(ctx context.Context, kind models.CatalogKind) ([]models.CatalogItem, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}

	key := catalogCachePrefix + string(kind)
	var items []models.CatalogItem
	hit, err := s.cache.Get(ctx, key, &items)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
	}
	if hit {
		return items, nil
	}

	items, err = store.list(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, items, s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
	return items, nil
}

// Get returns one lookup row
func (s *catalogService) Get(ctx context.Context, kind models.CatalogKind, id int) (*models.CatalogItem, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	return store.get(ctx, id)
}

// Create adds a lookup row with a unique name
func (s *catalogService) Create(ctx context.Context, kind models.CatalogKind, name string) (*models.CatalogItem, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	item, err := store.create(ctx, name)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, kind)
	s.log.Info().Str("catalog", string(kind)).Int("id", item.ID).Msg("Catalog entry created")
	return item, nil
}

// Update renames a lookup row
func (s *catalogService) Update(ctx context.Context, kind models.CatalogKind, id int, name string) (*models.CatalogItem, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	item, err := store.update(ctx, id, name)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, kind)
	return item, nil
}

// Delete removes a lookup row that no employee references
func (s *catalogService) Delete(ctx context.Context, kind models.CatalogKind, id int) error {
	store, err := s.store(kind)
	if err != nil {
		return err
	}
	if err := store.delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, kind)
	s.log.Info().Str("catalog", string(kind)).Int("id", id).Msg("Catalog entry deleted")
	return nil
}

func (s *catalogService) invalidate(ctx context.Context, kind models.CatalogKind) {
	key := catalogCachePrefix + string(kind)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache invalidation failed")
	}
}
