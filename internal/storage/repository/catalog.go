package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/satans-studio/studio-backend/internal/models"
)

// ListPackages возвращает пакеты услуг в порядке display_order.
// При onlyActive=true скрытые пакеты не попадают в выдачу.
func (s *Storage) ListPackages(ctx context.Context, onlyActive bool) ([]*models.Package, error) {
	const op = "storage.ListPackages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, price, duration_days, features,
			      display_order, is_active
			  FROM packages`
	if onlyActive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY display_order ASC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Package
	for rows.Next() {
		var p models.Package
		var features []byte
		if err = rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.DurationDays,
			&features, &p.DisplayOrder, &p.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = json.Unmarshal(features, &p.Features); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreatePackage вставляет новый пакет услуг и возвращает созданную запись.
func (s *Storage) CreatePackage(ctx context.Context, pkg models.Package) (*models.Package, error) {
	const op = "storage.CreatePackage"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(pkg.Features)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created := pkg
	query := `INSERT INTO packages (name, description, price, duration_days, features, display_order, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		pkg.Name, pkg.Description, pkg.Price, pkg.DurationDays,
		features, pkg.DisplayOrder, pkg.IsActive).Scan(&created.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// UpdatePackage обновляет пакет услуг по ID и возвращает количество изменённых строк.
func (s *Storage) UpdatePackage(ctx context.Context, pkg models.Package, id int) (int, error) {
	const op = "storage.UpdatePackage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(pkg.Features)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE packages
			  SET name = $1, description = $2, price = $3, duration_days = $4,
			      features = $5, display_order = $6, is_active = $7
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		pkg.Name, pkg.Description, pkg.Price, pkg.DurationDays,
		features, pkg.DisplayOrder, pkg.IsActive, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeletePackage удаляет пакет услуг по ID и возвращает количество удалённых строк.
func (s *Storage) DeletePackage(ctx context.Context, id int) (int, error) {
	const op = "storage.DeletePackage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM packages WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListPortfolio возвращает работы портфолио в порядке display_order.
func (s *Storage) ListPortfolio(ctx context.Context, onlyActive bool) ([]*models.PortfolioItem, error) {
	const op = "storage.ListPortfolio"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, image_url, category, project_url,
			      display_order, is_active, created_at
			  FROM portfolio_items`
	if onlyActive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY display_order ASC, created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PortfolioItem
	for rows.Next() {
		var item models.PortfolioItem
		if err = rows.Scan(&item.ID, &item.Title, &item.Description, &item.ImageURL,
			&item.Category, &item.ProjectURL, &item.DisplayOrder, &item.IsActive,
			&item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreatePortfolioItem вставляет новую работу и возвращает созданную запись.
func (s *Storage) CreatePortfolioItem(ctx context.Context, item models.PortfolioItem) (*models.PortfolioItem, error) {
	const op = "storage.CreatePortfolioItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	created := item
	query := `INSERT INTO portfolio_items (title, description, image_url, category,
			      project_url, display_order, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at`
	if err := s.DB.QueryRowContext(ctx, query,
		item.Title, item.Description, item.ImageURL, item.Category,
		item.ProjectURL, item.DisplayOrder, item.IsActive).Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// UpdatePortfolioItem обновляет работу по ID и возвращает количество изменённых строк.
func (s *Storage) UpdatePortfolioItem(ctx context.Context, item models.PortfolioItem, id int) (int, error) {
	const op = "storage.UpdatePortfolioItem"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE portfolio_items
			  SET title = $1, description = $2, image_url = $3, category = $4,
			      project_url = $5, display_order = $6, is_active = $7
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		item.Title, item.Description, item.ImageURL, item.Category,
		item.ProjectURL, item.DisplayOrder, item.IsActive, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeletePortfolioItem удаляет работу по ID и возвращает количество удалённых строк.
func (s *Storage) DeletePortfolioItem(ctx context.Context, id int) (int, error) {
	const op = "storage.DeletePortfolioItem"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM portfolio_items WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
