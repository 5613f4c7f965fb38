package usecase

import (
	"context"

	"github.com/authentika/go-backend/internal/domain"
)

type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	ListRecentVerified(ctx context.Context, limit int) ([]domain.Product, error)
	UpdateVerification(ctx context.Context, id int64, verified bool, score float64) error
}

type EmbeddingRepository interface {
	Upsert(ctx context.Context, embedding domain.Embedding) error
	Search(ctx context.Context, vector []float32, limit int) ([]VectorHit, error)
	Delete(ctx context.Context, ids []string) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error)
	SetProducts(ctx context.Context, products []ProductInfo) error
	DeleteProducts(ctx context.Context, ids []int64) error
}

type ReportRepository interface {
	Upload(ctx context.Context, key string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}
