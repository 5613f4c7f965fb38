package pgdb

import (
	"context"
	"errors"

	"github.com/authentika/go-backend/internal/domain"
	"github.com/authentika/go-backend/internal/repository/pgdb/converter"
	"github.com/authentika/go-backend/pkg/e"
	"github.com/authentika/go-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
// Каталог append-only: строки анализов не обновляются, кроме поля
// ручной верификации.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Insert сохраняет новый проанализированный товар.
// Выполняется только внутри транзакции вместе с записью outbox.
func (p *ProductRepo) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (title, description, price, brand, verified, score)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;
	`

	model := p.conv.ToModel(product)
	err = tx.QueryRow(ctx, query,
		model.Title,
		model.Description,
		model.Price,
		model.Brand,
		model.Verified,
		model.Score,
	).Scan(&model.ID, &model.CreatedAt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// GetByID возвращает товар по идентификатору.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, title, description, price, brand, verified, score, created_at
		FROM products
		WHERE id = $1
	`

	var model converter.ProductModel
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Title, &model.Description, &model.Price,
		&model.Brand, &model.Verified, &model.Score, &model.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// GetByIDs возвращает товары по списку идентификаторов.
// Отсутствующие идентификаторы молча пропускаются.
func (p *ProductRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	query := `
		SELECT id, title, description, price, brand, verified, score, created_at
		FROM products
		WHERE id = ANY($1)
	`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0, len(ids))
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Title, &model.Description, &model.Price,
			&model.Brand, &model.Verified, &model.Score, &model.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// ListRecentVerified возвращает последние верифицированные товары.
func (p *ProductRepo) ListRecentVerified(ctx context.Context, limit int) ([]domain.Product, error) {
	query := `
		SELECT id, title, description, price, brand, verified, score, created_at
		FROM products
		WHERE verified = TRUE
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := p.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0, limit)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Title, &model.Description, &model.Price,
			&model.Brand, &model.Verified, &model.Score, &model.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// UpdateVerification выставляет товару ручной вердикт модератора.
// Выполняется только внутри транзакции вместе с записью outbox.
func (p *ProductRepo) UpdateVerification(ctx context.Context, id int64, verified bool, score float64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET verified = $1, score = $2
		WHERE id = $3
	`

	result, err := tx.Exec(ctx, query, verified, score, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}
