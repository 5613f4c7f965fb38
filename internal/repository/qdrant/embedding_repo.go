package qdrant

import (
	"context"

	"github.com/authentika/go-backend/internal/cfg"
	"github.com/authentika/go-backend/internal/domain"
	"github.com/authentika/go-backend/internal/usecase"
	"github.com/authentika/go-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

// EmbeddingRepo репозиторий для работы с embedding-векторами в Qdrant.
// Коллекция использует косинусную метрику; размерность векторов
// фиксируется на старте и проверяется на каждой операции.
type EmbeddingRepo struct {
	client    *qdrant.Client
	cfg       *cfg.QdrantCfg
	dimension int
}

func NewEmbeddingRepo(client *qdrant.Client, cfg *cfg.QdrantCfg, dimension int) *EmbeddingRepo {
	return &EmbeddingRepo{
		client:    client,
		cfg:       cfg,
		dimension: dimension,
	}
}

// Upsert сохраняет или обновляет embedding-вектор в коллекции Qdrant.
func (q *EmbeddingRepo) Upsert(ctx context.Context, embedding domain.Embedding) error {
	if len(embedding.Vector) == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrEmptyVector)
	}
	if len(embedding.Vector) != q.dimension {
		return e.Wrap(whereami.WhereAmI(), e.ErrDimensionMismatch)
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewIDUUID(embedding.ID),
				Vectors: qdrant.NewVectors(embedding.Vector...),
				Payload: qdrant.NewValueMap(embedding.Payload),
			},
		},
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Search возвращает до limit ближайших векторов по косинусной близости.
// Точки без product_id в payload пропускаются.
func (q *EmbeddingRepo) Search(ctx context.Context, vector []float32, limit int) ([]usecase.VectorHit, error) {
	if len(vector) == 0 {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrEmptyVector)
	}
	if len(vector) != q.dimension {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrDimensionMismatch)
	}

	scored, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	hits := make([]usecase.VectorHit, 0, len(scored))
	for _, point := range scored {
		productID, ok := point.Payload["product_id"]
		if !ok {
			continue
		}

		hits = append(hits, usecase.NewVectorHit(productID.GetIntegerValue(), float64(point.Score)))
	}

	return hits, nil
}

// Delete удаляет точки по идентификаторам. Используется как
// компенсация после неудачного коммита транзакции каталога.
func (q *EmbeddingRepo) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	pointIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		pointIDs = append(pointIDs, qdrant.NewIDUUID(id))
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{
					Ids: pointIDs,
				},
			},
		},
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
