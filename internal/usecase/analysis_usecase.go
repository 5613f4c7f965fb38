package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/authentika/go-backend/internal/domain"
	"github.com/authentika/go-backend/pkg/e"
	"github.com/authentika/go-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	maxListLimit    = 100
	cacheSetTimeout = 500 * time.Millisecond
)

// AnalysisUseCase реализует бизнес-логику анализа подлинности товаров.
type AnalysisUseCase struct {
	productRepo   ProductRepository
	embeddingRepo EmbeddingRepository
	outboxRepo    OutboxRepository
	cacheRepo     CacheRepository
	dbPool        transaction.Transactional
	embedder      Embedder
	narrative     NarrativeInfra
	reports       ReportArchive
	logger        logger.Logger
	fakeThreshold float64
	topK          int
}

func NewAnalysisUC(
	productRepo ProductRepository,
	embeddingRepo EmbeddingRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	dbPool transaction.Transactional,
	embedder Embedder,
	narrative NarrativeInfra,
	reports ReportArchive,
	logger logger.Logger,
	fakeThreshold float64,
	topK int,
) *AnalysisUseCase {
	return &AnalysisUseCase{
		productRepo:   productRepo,
		embeddingRepo: embeddingRepo,
		outboxRepo:    outboxRepo,
		cacheRepo:     cacheRepo,
		dbPool:        dbPool,
		embedder:      embedder,
		narrative:     narrative,
		reports:       reports,
		logger:        logger,
		fakeThreshold: fakeThreshold,
		topK:          topK,
	}
}

// AnalyzeProduct выполняет полный конвейер анализа: векторизация, поиск
// соседей, эвристическая оценка, внешний текстовый анализ и сохранение
// товара с вердиктом. Итоговая оценка — максимум из двух оценок:
// конвейер консервативен и не позволяет одному слою замаскировать
// подозрения другого.
func (a *AnalysisUseCase) AnalyzeProduct(ctx context.Context, req *AnalyzeProductReq) (*AnalyzeProductRes, error) {
	const op = "AnalysisUseCase.AnalyzeProduct"

	// Валидация данных
	if err := a.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	product := domain.NewProduct(req.Title, req.Description, req.Price, req.Brand)

	// Векторизация выполняется ровно один раз: тот же вектор идёт и в
	// поиск соседей, и в индекс при сохранении
	vector := a.embedder.Embed(product.EmbeddingText())
	if len(vector) == 0 {
		return nil, e.Wrap(op, e.ErrEmptyVector)
	}

	// Поиск ближайших соседей среди ранее проанализированных товаров
	neighbors, err := a.searchNeighbors(ctx, vector)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Эвристическая оценка по ценовой и брендовой статистике соседей
	heuristicScore, heuristicReasoning := ScoreAuthenticity(product, neighbors, a.fakeThreshold)

	// Внешний текстовый анализ. Инфраструктура деградирует до
	// эвристической оценки сама и никогда не возвращает ошибку
	narrativeRes := a.narrative.AnalyzeWithNarrative(ctx, NewNarrativeReq(product, heuristicScore, heuristicReasoning, neighbors))

	finalScore, authenticity := classifyResult(heuristicScore, narrativeRes.Score, a.fakeThreshold)

	product.Score = &finalScore

	// Сохранение товара, события outbox и вектора
	stored, err := a.storeAnalyzedProduct(ctx, product, vector, finalScore, authenticity)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := &AnalyzeProductRes{
		ProductID:          stored.ID,
		Title:              stored.Title,
		Score:              finalScore,
		Authenticity:       authenticity,
		InitialReasoning:   heuristicReasoning,
		NarrativeReasoning: narrativeRes.Reasoning,
		WarningIndicators:  narrativeRes.WarningIndicators,
		Recommendations:    narrativeRes.Recommendations,
		SimilarProducts:    neighbors,
	}

	// Фоновое наполнение кэша
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), cacheSetTimeout)
		defer cancel()

		if err := a.cacheRepo.SetProducts(bgCtx, []ProductInfo{NewProductInfo(stored)}); err != nil {
			a.logger.Warnf("Failed to cache analyzed product in background: %v", e.Wrap(op, err))
		}
	}()

	// Фоновая архивация отчёта (best-effort)
	a.reports.ArchiveResult(res)

	return res, nil
}

// GetProduct возвращает информацию о товаре: сначала из кэша, при
// промахе — из БД с фоновым наполнением кэша.
func (a *AnalysisUseCase) GetProduct(ctx context.Context, id int64) (*ProductInfo, error) {
	const op = "AnalysisUseCase.GetProduct"

	if id <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidProductID)
	}

	// Поиск товара в кэше. Ошибка кэша не фатальна — переходим к БД
	cached, err := a.cacheRepo.GetProducts(ctx, []int64{id})
	if err != nil {
		a.logger.Warnf("Failed to get product from cache: %v", e.Wrap(op, err))
	} else if info, ok := cached[id]; ok {
		return &info, nil
	}

	product, err := a.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	info := NewProductInfo(product)

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), cacheSetTimeout)
		defer cancel()

		if err := a.cacheRepo.SetProducts(bgCtx, []ProductInfo{info}); err != nil {
			a.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return &info, nil
}

// ListRecentVerified возвращает последние верифицированные товары.
func (a *AnalysisUseCase) ListRecentVerified(ctx context.Context, limit int) ([]ProductInfo, error) {
	const op = "AnalysisUseCase.ListRecentVerified"

	if limit <= 0 || limit > maxListLimit {
		return nil, e.Wrap(op, e.ErrInvalidLimit)
	}

	products, err := a.productRepo.ListRecentVerified(ctx, limit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := make([]ProductInfo, 0, len(products))
	for i := range products {
		result = append(result, NewProductInfo(&products[i]))
	}

	return result, nil
}

// VerifyProduct выставляет товару ручной вердикт модератора и публикует
// событие product.verified через outbox в той же транзакции.
func (a *AnalysisUseCase) VerifyProduct(ctx context.Context, req *VerifyProductReq) error {
	const op = "AnalysisUseCase.VerifyProduct"

	if req.ProductID <= 0 {
		return e.Wrap(op, e.ErrInvalidProductID)
	}
	if req.Score < 0 || req.Score > 1 {
		return e.Wrap(op, e.ErrInvalidScore)
	}

	var err error
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, a.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	err = a.productRepo.UpdateVerification(ctx, req.ProductID, req.Verified, req.Score)
	if err != nil {
		return e.Wrap(op, err)
	}

	payload, err := NewProductVerifiedPayload(req.ProductID, req.Verified, req.Score)
	if err != nil {
		return e.Wrap(op, err)
	}

	_, err = a.outboxRepo.Create(ctx, NewOutboxEvent(EventProductVerified, req.ProductID, payload))
	if err != nil {
		return e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	// Удаление из кэша устаревших данных товара
	if err := a.cacheRepo.DeleteProducts(ctx, []int64{req.ProductID}); err != nil {
		a.logger.Warnf("Failed to delete product from cache: %v", e.Wrap(op, err))
	}

	return nil
}

// storeAnalyzedProduct атомарно сохраняет строку товара, событие outbox
// и вектор. Вектор пишется в Qdrant до коммита; если коммит не прошёл,
// осиротевшая точка удаляется компенсирующим запросом.
func (a *AnalysisUseCase) storeAnalyzedProduct(
	ctx context.Context,
	product *domain.Product,
	vector []float32,
	score float64,
	authenticity string,
) (*domain.Product, error) {
	var (
		err      error
		pointID  string
		upserted bool
	)

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, a.dbPool)
	if err != nil {
		return nil, err
	}
	// Если произошла ошибка, происходит Rollback транзакции и удаление
	// осиротевшего вектора из индекса
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			if upserted {
				a.logger.Warnf(
					"Cleaning up orphaned vector after transaction failure. point_id: %s, error: %v",
					pointID,
					err,
				)

				if delErr := a.embeddingRepo.Delete(context.Background(), []string{pointID}); delErr != nil {
					a.logger.Errorf(delErr, "Failed to clean up orphaned vector. point_id: %s", pointID)
				}
			}
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	stored, err := a.productRepo.Insert(ctx, product)
	if err != nil {
		return nil, err
	}

	payload, err := NewProductAnalyzedPayload(stored.ID, stored.Title, score, authenticity)
	if err != nil {
		return nil, err
	}

	_, err = a.outboxRepo.Create(ctx, NewOutboxEvent(EventProductAnalyzed, stored.ID, payload))
	if err != nil {
		return nil, err
	}

	pointID = uuid.NewString()
	err = a.embeddingRepo.Upsert(ctx, *domain.NewEmbedding(pointID, vector, domain.NewPayload(stored.ID)))
	if err != nil {
		return nil, err
	}
	upserted = true

	err = tx.Commit(ctx)
	if err != nil {
		return nil, err
	}

	return stored, nil
}

// classifyResult сводит две оценки в итоговую и присваивает метку.
// Итог — максимум из эвристической и текстовой оценок: один слой не
// может замаскировать подозрения другого. Оценка ровно на пороге
// классифицируется как подделка.
func classifyResult(heuristicScore, narrativeScore, fakeThreshold float64) (float64, string) {
	finalScore := math.Max(heuristicScore, ClampScore(narrativeScore))
	if finalScore >= fakeThreshold {
		return finalScore, AuthenticityPotentiallyFake
	}

	return finalScore, AuthenticityLikelyAuthentic
}

// searchNeighbors запрашивает ближайшие векторы и догружает строки
// товаров из каталога. Совпадения без строки в каталоге отбрасываются.
func (a *AnalysisUseCase) searchNeighbors(ctx context.Context, vector []float32) ([]domain.SimilarityMatch, error) {
	hits, err := a.embeddingRepo.Search(ctx, vector, a.topK)
	if err != nil {
		return nil, err
	}

	if len(hits) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ProductID)
	}

	products, err := a.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	productsMap := make(map[int64]*domain.Product, len(products))
	for i := range products {
		productsMap[products[i].ID] = &products[i]
	}

	matches := make([]domain.SimilarityMatch, 0, len(hits))
	for _, hit := range hits {
		product, ok := productsMap[hit.ProductID]
		if !ok {
			a.logger.Warnf("Vector hit without catalog row, skipping. product_id: %d", hit.ProductID)
			continue
		}

		matches = append(matches, domain.SimilarityMatch{
			ProductID:   product.ID,
			Title:       product.Title,
			Description: product.Description,
			Price:       product.Price,
			Brand:       product.Brand,
			Verified:    product.Verified,
			Score:       product.Score,
			Similarity:  hit.Similarity,
		})
	}

	domain.SortMatches(matches)

	return matches, nil
}

// validateProduct проверяет корректность входных данных запроса на анализ.
func (a *AnalysisUseCase) validateProduct(req *AnalyzeProductReq) error {
	if strings.TrimSpace(req.Title) == "" {
		return e.ErrTitleRequired
	}

	if strings.TrimSpace(req.Description) == "" {
		return e.ErrDescriptionRequired
	}

	if strings.TrimSpace(req.Brand) == "" {
		return e.ErrBrandRequired
	}

	if req.Price != nil {
		// Нулевая цена — валидный, но вырожденный вход: скоринг считает
		// её отсутствующей. Отклоняются только отрицательные цены
		if req.Price.Sign() < 0 {
			return e.ErrInvalidPrice
		}
		if req.Price.Exponent() < -2 {
			return fmt.Errorf("%w: %s", e.ErrPricePrecision, req.Price.String())
		}
	}

	return nil
}
