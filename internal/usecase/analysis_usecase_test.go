package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/authentika/go-backend/internal/domain"
	"github.com/authentika/go-backend/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type mockProductRepo struct {
	getByID            func(ctx context.Context, id int64) (*domain.Product, error)
	getByIDs           func(ctx context.Context, ids []int64) ([]domain.Product, error)
	listRecentVerified func(ctx context.Context, limit int) ([]domain.Product, error)
}

func (m *mockProductRepo) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return nil, errors.New("unexpected Insert call")
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return m.getByID(ctx, id)
}

func (m *mockProductRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	return m.getByIDs(ctx, ids)
}

func (m *mockProductRepo) ListRecentVerified(ctx context.Context, limit int) ([]domain.Product, error) {
	return m.listRecentVerified(ctx, limit)
}

func (m *mockProductRepo) UpdateVerification(ctx context.Context, id int64, verified bool, score float64) error {
	return errors.New("unexpected UpdateVerification call")
}

type mockEmbeddingRepo struct {
	search func(ctx context.Context, vector []float32, limit int) ([]VectorHit, error)
}

func (m *mockEmbeddingRepo) Upsert(ctx context.Context, embedding domain.Embedding) error {
	return errors.New("unexpected Upsert call")
}

func (m *mockEmbeddingRepo) Search(ctx context.Context, vector []float32, limit int) ([]VectorHit, error) {
	return m.search(ctx, vector, limit)
}

func (m *mockEmbeddingRepo) Delete(ctx context.Context, ids []string) error {
	return nil
}

type mockCacheRepo struct {
	getProducts func(ctx context.Context, ids []int64) (map[int64]ProductInfo, error)
	setCalls    chan []ProductInfo
}

func (m *mockCacheRepo) GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error) {
	if m.getProducts == nil {
		return map[int64]ProductInfo{}, nil
	}

	return m.getProducts(ctx, ids)
}

func (m *mockCacheRepo) SetProducts(ctx context.Context, products []ProductInfo) error {
	if m.setCalls != nil {
		m.setCalls <- products
	}

	return nil
}

func (m *mockCacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	return nil
}

type stubEmbedder struct {
	dimension int
	calls     int
}

func (s *stubEmbedder) Embed(text string) []float32 {
	s.calls++
	return make([]float32, s.dimension)
}

func (s *stubEmbedder) EmbedBatch(texts []string) [][]float32 {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = s.Embed(texts[i])
	}

	return vectors
}

func newTestUC(productRepo ProductRepository, embeddingRepo EmbeddingRepository, cacheRepo CacheRepository) *AnalysisUseCase {
	return NewAnalysisUC(
		productRepo,
		embeddingRepo,
		nil,
		cacheRepo,
		nil,
		&stubEmbedder{dimension: 8},
		nil,
		nil,
		nopLogger{},
		0.7,
		5,
	)
}

func mustDecimal(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return &d
}

func TestAnalyzeProduct_Validation(t *testing.T) {
	uc := newTestUC(&mockProductRepo{}, &mockEmbeddingRepo{}, &mockCacheRepo{})

	tests := []struct {
		name    string
		req     *AnalyzeProductReq
		wantErr error
	}{
		{
			name:    "missing title",
			req:     &AnalyzeProductReq{Description: "desc", Brand: "Nike"},
			wantErr: e.ErrTitleRequired,
		},
		{
			name:    "blank title",
			req:     &AnalyzeProductReq{Title: "   ", Description: "desc", Brand: "Nike"},
			wantErr: e.ErrTitleRequired,
		},
		{
			name:    "missing description",
			req:     &AnalyzeProductReq{Title: "Sneakers", Brand: "Nike"},
			wantErr: e.ErrDescriptionRequired,
		},
		{
			name:    "missing brand",
			req:     &AnalyzeProductReq{Title: "Sneakers", Description: "desc"},
			wantErr: e.ErrBrandRequired,
		},
		{
			name:    "negative price",
			req:     &AnalyzeProductReq{Title: "Sneakers", Description: "desc", Brand: "Nike", Price: mustDecimal(t, "-1")},
			wantErr: e.ErrInvalidPrice,
		},
		{
			name:    "too many decimal places",
			req:     &AnalyzeProductReq{Title: "Sneakers", Description: "desc", Brand: "Nike", Price: mustDecimal(t, "9.999")},
			wantErr: e.ErrPricePrecision,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.AnalyzeProduct(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateProduct_ZeroPriceAllowed(t *testing.T) {
	uc := newTestUC(&mockProductRepo{}, &mockEmbeddingRepo{}, &mockCacheRepo{})

	// Нулевая цена валидна: скоринг считает её отсутствующей
	err := uc.validateProduct(&AnalyzeProductReq{
		Title:       "Sneakers",
		Description: "desc",
		Brand:       "Nike",
		Price:       mustDecimal(t, "0"),
	})
	assert.NoError(t, err)
}

func TestValidateProduct_AbsentPriceAllowed(t *testing.T) {
	uc := newTestUC(&mockProductRepo{}, &mockEmbeddingRepo{}, &mockCacheRepo{})

	err := uc.validateProduct(&AnalyzeProductReq{
		Title:       "Sneakers",
		Description: "desc",
		Brand:       "Nike",
	})
	assert.NoError(t, err)
}

func TestClassifyResult(t *testing.T) {
	t.Run("narrative score raises final above heuristic", func(t *testing.T) {
		score, label := classifyResult(0.3, 0.9, 0.7)

		assert.Equal(t, 0.9, score)
		assert.Equal(t, AuthenticityPotentiallyFake, label)
	})

	t.Run("heuristic score dominates low narrative", func(t *testing.T) {
		score, label := classifyResult(0.89, 0.2, 0.7)

		assert.Equal(t, 0.89, score)
		assert.Equal(t, AuthenticityPotentiallyFake, label)
	})

	t.Run("equal scores keep heuristic verdict", func(t *testing.T) {
		// Деградация текстового анализа возвращает эвристическую оценку:
		// итог совпадает с ней
		score, label := classifyResult(0.35, 0.35, 0.7)

		assert.Equal(t, 0.35, score)
		assert.Equal(t, AuthenticityLikelyAuthentic, label)
	})

	t.Run("score exactly at threshold is fake", func(t *testing.T) {
		score, label := classifyResult(0.7, 0.1, 0.7)

		assert.Equal(t, 0.7, score)
		assert.Equal(t, AuthenticityPotentiallyFake, label)
	})

	t.Run("out of range narrative score is clamped", func(t *testing.T) {
		score, label := classifyResult(0.3, 1.8, 0.7)

		assert.Equal(t, 1.0, score)
		assert.Equal(t, AuthenticityPotentiallyFake, label)

		score, label = classifyResult(0.3, -0.5, 0.7)

		assert.Equal(t, 0.3, score)
		assert.Equal(t, AuthenticityLikelyAuthentic, label)
	})
}

func TestGetProduct_CacheHit(t *testing.T) {
	cached := ProductInfo{ID: 7, Title: "Cached Sneakers", Brand: "Nike"}
	cacheRepo := &mockCacheRepo{
		getProducts: func(ctx context.Context, ids []int64) (map[int64]ProductInfo, error) {
			require.Equal(t, []int64{7}, ids)
			return map[int64]ProductInfo{7: cached}, nil
		},
	}
	productRepo := &mockProductRepo{
		getByID: func(ctx context.Context, id int64) (*domain.Product, error) {
			t.Fatal("db must not be queried on cache hit")
			return nil, nil
		},
	}

	uc := newTestUC(productRepo, &mockEmbeddingRepo{}, cacheRepo)

	info, err := uc.GetProduct(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, cached, *info)
}

func TestGetProduct_CacheMissFallsBackToDB(t *testing.T) {
	setCalls := make(chan []ProductInfo, 1)
	cacheRepo := &mockCacheRepo{setCalls: setCalls}
	productRepo := &mockProductRepo{
		getByID: func(ctx context.Context, id int64) (*domain.Product, error) {
			return &domain.Product{ID: 7, Title: "Sneakers", Brand: "Nike", CreatedAt: time.Now()}, nil
		},
	}

	uc := newTestUC(productRepo, &mockEmbeddingRepo{}, cacheRepo)

	info, err := uc.GetProduct(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.ID)
	assert.Equal(t, "Sneakers", info.Title)

	select {
	case products := <-setCalls:
		require.Len(t, products, 1)
		assert.Equal(t, int64(7), products[0].ID)
	case <-time.After(time.Second):
		t.Fatal("expected background cache fill")
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	productRepo := &mockProductRepo{
		getByID: func(ctx context.Context, id int64) (*domain.Product, error) {
			return nil, e.ErrProductNotFound
		},
	}

	uc := newTestUC(productRepo, &mockEmbeddingRepo{}, &mockCacheRepo{})

	_, err := uc.GetProduct(context.Background(), 404)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestGetProduct_InvalidID(t *testing.T) {
	uc := newTestUC(&mockProductRepo{}, &mockEmbeddingRepo{}, &mockCacheRepo{})

	_, err := uc.GetProduct(context.Background(), 0)
	assert.ErrorIs(t, err, e.ErrInvalidProductID)
}

func TestListRecentVerified_LimitValidation(t *testing.T) {
	uc := newTestUC(&mockProductRepo{}, &mockEmbeddingRepo{}, &mockCacheRepo{})

	_, err := uc.ListRecentVerified(context.Background(), 0)
	assert.ErrorIs(t, err, e.ErrInvalidLimit)

	_, err = uc.ListRecentVerified(context.Background(), 101)
	assert.ErrorIs(t, err, e.ErrInvalidLimit)
}

func TestListRecentVerified_MapsProducts(t *testing.T) {
	productRepo := &mockProductRepo{
		listRecentVerified: func(ctx context.Context, limit int) ([]domain.Product, error) {
			require.Equal(t, 10, limit)
			return []domain.Product{
				{ID: 2, Title: "Newest", Verified: true},
				{ID: 1, Title: "Older", Verified: true},
			}, nil
		},
	}

	uc := newTestUC(productRepo, &mockEmbeddingRepo{}, &mockCacheRepo{})

	infos, err := uc.ListRecentVerified(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, int64(2), infos[0].ID)
	assert.Equal(t, int64(1), infos[1].ID)
}

func TestVerifyProduct_Validation(t *testing.T) {
	uc := newTestUC(&mockProductRepo{}, &mockEmbeddingRepo{}, &mockCacheRepo{})

	err := uc.VerifyProduct(context.Background(), &VerifyProductReq{ProductID: 0, Score: 0.5})
	assert.ErrorIs(t, err, e.ErrInvalidProductID)

	err = uc.VerifyProduct(context.Background(), &VerifyProductReq{ProductID: 1, Score: 1.5})
	assert.ErrorIs(t, err, e.ErrInvalidScore)

	err = uc.VerifyProduct(context.Background(), &VerifyProductReq{ProductID: 1, Score: -0.1})
	assert.ErrorIs(t, err, e.ErrInvalidScore)
}

func TestSearchNeighbors_OrdersAndHydratesMatches(t *testing.T) {
	embeddingRepo := &mockEmbeddingRepo{
		search: func(ctx context.Context, vector []float32, limit int) ([]VectorHit, error) {
			require.Equal(t, 5, limit)
			return []VectorHit{
				{ProductID: 3, Similarity: 0.72},
				{ProductID: 1, Similarity: 0.91},
				{ProductID: 2, Similarity: 0.91},
			}, nil
		},
	}
	productRepo := &mockProductRepo{
		getByIDs: func(ctx context.Context, ids []int64) ([]domain.Product, error) {
			require.ElementsMatch(t, []int64{1, 2, 3}, ids)
			return []domain.Product{
				{ID: 1, Title: "First", Brand: "Nike"},
				{ID: 2, Title: "Second", Brand: "Nike"},
				{ID: 3, Title: "Third", Brand: "Adidas"},
			}, nil
		},
	}

	uc := newTestUC(productRepo, embeddingRepo, &mockCacheRepo{})

	matches, err := uc.searchNeighbors(context.Background(), make([]float32, 8))
	require.NoError(t, err)
	require.Len(t, matches, 3)

	// Убывание близости, при равенстве — меньший ID раньше
	assert.Equal(t, int64(1), matches[0].ProductID)
	assert.Equal(t, int64(2), matches[1].ProductID)
	assert.Equal(t, int64(3), matches[2].ProductID)
}

func TestSearchNeighbors_SkipsHitsWithoutCatalogRow(t *testing.T) {
	embeddingRepo := &mockEmbeddingRepo{
		search: func(ctx context.Context, vector []float32, limit int) ([]VectorHit, error) {
			return []VectorHit{
				{ProductID: 1, Similarity: 0.9},
				{ProductID: 99, Similarity: 0.8},
			}, nil
		},
	}
	productRepo := &mockProductRepo{
		getByIDs: func(ctx context.Context, ids []int64) ([]domain.Product, error) {
			return []domain.Product{{ID: 1, Title: "Known"}}, nil
		},
	}

	uc := newTestUC(productRepo, embeddingRepo, &mockCacheRepo{})

	matches, err := uc.searchNeighbors(context.Background(), make([]float32, 8))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, int64(1), matches[0].ProductID)
}

func TestSearchNeighbors_EmptyIndex(t *testing.T) {
	embeddingRepo := &mockEmbeddingRepo{
		search: func(ctx context.Context, vector []float32, limit int) ([]VectorHit, error) {
			return nil, nil
		},
	}

	uc := newTestUC(&mockProductRepo{}, embeddingRepo, &mockCacheRepo{})

	matches, err := uc.searchNeighbors(context.Background(), make([]float32, 8))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
