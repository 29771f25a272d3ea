// Package catalog содержит логику публичного каталога пакетов услуг
// и портфолио, а также административных операций над ними.
//
// Публичные списки кэшируются в Redis, любая мутация со стороны
// администратора инвалидирует соответствующий ключ.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/satans-studio/studio-backend/internal/cache"
	"github.com/satans-studio/studio-backend/internal/lib/sl"
	"github.com/satans-studio/studio-backend/internal/models"
)

// Ошибки бизнес-уровня каталога.
var (
	// ErrPackageNotFound пакет услуг не найден.
	ErrPackageNotFound = errors.New("package not found")
	// ErrPortfolioItemNotFound работа портфолио не найдена.
	ErrPortfolioItemNotFound = errors.New("portfolio item not found")
)

// CatalogRepository описывает контракт хранилища каталога.
type CatalogRepository interface {
	ListPackages(ctx context.Context, onlyActive bool) ([]*models.Package, error)
	CreatePackage(ctx context.Context, pkg models.Package) (*models.Package, error)
	UpdatePackage(ctx context.Context, pkg models.Package, id int) (int, error)
	DeletePackage(ctx context.Context, id int) (int, error)
	ListPortfolio(ctx context.Context, onlyActive bool) ([]*models.PortfolioItem, error)
	CreatePortfolioItem(ctx context.Context, item models.PortfolioItem) (*models.PortfolioItem, error)
	UpdatePortfolioItem(ctx context.Context, item models.PortfolioItem, id int) (int, error)
	DeletePortfolioItem(ctx context.Context, id int) (int, error)
}

// ListCache описывает контракт кэша публичных списков.
type ListCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// CatalogService реализует операции каталога поверх хранилища и кэша.
type CatalogService struct {
	repo  CatalogRepository
	cache ListCache
	ttl   time.Duration
	log   *slog.Logger
}

// New создает новый экземпляр CatalogService.
func New(repo CatalogRepository, listCache ListCache, ttl time.Duration, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: listCache,
		ttl:   ttl,
		log:   log,
	}
}

// ListActivePackages возвращает видимые пакеты услуг для публичной страницы.
func (s *CatalogService) ListActivePackages(ctx context.Context) ([]*models.Package, error) {
	const op = "catalog.ListActivePackages"

	var cached []*models.Package
	found, err := s.cache.Get(ctx, cache.KeyActivePackages, &cached)
	if err != nil {
		s.log.Warn("package cache read failed", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	packages, err := s.repo.ListPackages(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.cache.Set(ctx, cache.KeyActivePackages, packages, s.ttl); err != nil {
		s.log.Warn("package cache write failed", sl.Err(err))
	}
	return packages, nil
}

// ListAllPackages возвращает все пакеты услуг для панели администратора.
func (s *CatalogService) ListAllPackages(ctx context.Context) ([]*models.Package, error) {
	const op = "catalog.ListAllPackages"

	packages, err := s.repo.ListPackages(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return packages, nil
}

// CreatePackage создает пакет услуг и сбрасывает кэш публичного списка.
func (s *CatalogService) CreatePackage(ctx context.Context, pkg models.Package) (*models.Package, error) {
	const op = "catalog.CreatePackage"

	created, err := s.repo.CreatePackage(ctx, pkg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyActivePackages)
	return created, nil
}

// UpdatePackage обновляет пакет услуг и сбрасывает кэш публичного списка.
func (s *CatalogService) UpdatePackage(ctx context.Context, pkg models.Package, id int) error {
	const op = "catalog.UpdatePackage"

	rows, err := s.repo.UpdatePackage(ctx, pkg, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return ErrPackageNotFound
	}
	s.invalidate(ctx, cache.KeyActivePackages)
	return nil
}

// DeletePackage удаляет пакет услуг и сбрасывает кэш публичного списка.
func (s *CatalogService) DeletePackage(ctx context.Context, id int) error {
	const op = "catalog.DeletePackage"

	rows, err := s.repo.DeletePackage(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return ErrPackageNotFound
	}
	s.invalidate(ctx, cache.KeyActivePackages)
	return nil
}

// ListActivePortfolio возвращает видимые работы для публичной страницы.
func (s *CatalogService) ListActivePortfolio(ctx context.Context) ([]*models.PortfolioItem, error) {
	const op = "catalog.ListActivePortfolio"

	var cached []*models.PortfolioItem
	found, err := s.cache.Get(ctx, cache.KeyActivePortfolio, &cached)
	if err != nil {
		s.log.Warn("portfolio cache read failed", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	items, err := s.repo.ListPortfolio(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.cache.Set(ctx, cache.KeyActivePortfolio, items, s.ttl); err != nil {
		s.log.Warn("portfolio cache write failed", sl.Err(err))
	}
	return items, nil
}

// ListAllPortfolio возвращает все работы для панели администратора.
func (s *CatalogService) ListAllPortfolio(ctx context.Context) ([]*models.PortfolioItem, error) {
	const op = "catalog.ListAllPortfolio"

	items, err := s.repo.ListPortfolio(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// CreatePortfolioItem создает работу и сбрасывает кэш публичного списка.
func (s *CatalogService) CreatePortfolioItem(ctx context.Context, item models.PortfolioItem) (*models.PortfolioItem, error) {
	const op = "catalog.CreatePortfolioItem"

	created, err := s.repo.CreatePortfolioItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyActivePortfolio)
	return created, nil
}

// UpdatePortfolioItem обновляет работу и сбрасывает кэш публичного списка.
func (s *CatalogService) UpdatePortfolioItem(ctx context.Context, item models.PortfolioItem, id int) error {
	const op = "catalog.UpdatePortfolioItem"

	rows, err := s.repo.UpdatePortfolioItem(ctx, item, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return ErrPortfolioItemNotFound
	}
	s.invalidate(ctx, cache.KeyActivePortfolio)
	return nil
}

// DeletePortfolioItem удаляет работу и сбрасывает кэш публичного списка.
func (s *CatalogService) DeletePortfolioItem(ctx context.Context, id int) error {
	const op = "catalog.DeletePortfolioItem"

	rows, err := s.repo.DeletePortfolioItem(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return ErrPortfolioItemNotFound
	}
	s.invalidate(ctx, cache.KeyActivePortfolio)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, key string) {
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("cache invalidation failed", slog.String("key", key), sl.Err(err))
	}
}
