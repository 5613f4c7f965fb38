package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/authentika/go-backend/internal/domain"
	"github.com/authentika/go-backend/internal/usecase"
	"github.com/authentika/go-backend/pkg/jitter"
	"github.com/authentika/go-backend/pkg/logger"
	"github.com/google/uuid"
)

const (
	archiveTimeout  = 30 * time.Second
	archiveAttempts = 3
	archiveBackoff  = time.Second
	maxBackoff      = 10 * time.Second
)

// ReportArchive выгружает итоговые отчёты анализа в объектное хранилище
// в фоне. Архивация best-effort: её сбой не влияет на ответ клиенту.
type ReportArchive struct {
	reportRepo  usecase.ReportRepository
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewReportArchive(reportRepo usecase.ReportRepository, logger logger.Logger, shutdownCtx context.Context) *ReportArchive {
	return &ReportArchive{
		reportRepo:  reportRepo,
		logger:      logger,
		shutdownCtx: shutdownCtx,
	}
}

// reportModel — форма JSON-отчёта в архиве.
type reportModel struct {
	ProductID          int64            `json:"product_id"`
	Title              string           `json:"title"`
	Score              float64          `json:"score"`
	Authenticity       string           `json:"authenticity"`
	InitialReasoning   string           `json:"initial_reasoning"`
	NarrativeReasoning string           `json:"narrative_reasoning"`
	WarningIndicators  []string         `json:"warning_indicators"`
	Recommendations    []string         `json:"recommendations"`
	SimilarProducts    []reportNeighbor `json:"similar_products"`
	ArchivedAt         time.Time        `json:"archived_at"`
}

type reportNeighbor struct {
	ProductID  int64   `json:"product_id"`
	Title      string  `json:"title"`
	Brand      string  `json:"brand"`
	Price      string  `json:"price,omitempty"`
	Similarity float64 `json:"similarity"`
}

func toReportNeighbors(matches []domain.SimilarityMatch) []reportNeighbor {
	neighbors := make([]reportNeighbor, 0, len(matches))
	for _, match := range matches {
		neighbor := reportNeighbor{
			ProductID:  match.ProductID,
			Title:      match.Title,
			Brand:      match.Brand,
			Similarity: match.Similarity,
		}
		if match.Price != nil {
			neighbor.Price = match.Price.String()
		}

		neighbors = append(neighbors, neighbor)
	}

	return neighbors
}

// ArchiveResult запускает фоновую архивацию отчёта анализа.
func (r *ReportArchive) ArchiveResult(res *usecase.AnalyzeProductRes) {
	if res == nil {
		return
	}

	r.wg.Add(1)
	go r.archive(res)
}

// archive сериализует отчёт и загружает его с экспоненциальной
// задержкой и jitter между попытками.
func (r *ReportArchive) archive(res *usecase.AnalyzeProductRes) {
	defer r.wg.Done()
	const op = "ReportArchive.archive"

	ctx, cancel := context.WithTimeout(r.shutdownCtx, archiveTimeout)
	defer cancel()

	data, err := json.Marshal(&reportModel{
		ProductID:          res.ProductID,
		Title:              res.Title,
		Score:              res.Score,
		Authenticity:       res.Authenticity,
		InitialReasoning:   res.InitialReasoning,
		NarrativeReasoning: res.NarrativeReasoning,
		WarningIndicators:  res.WarningIndicators,
		Recommendations:    res.Recommendations,
		SimilarProducts:    toReportNeighbors(res.SimilarProducts),
		ArchivedAt:         time.Now().UTC(),
	})
	if err != nil {
		r.logger.Warnf("%s: failed to marshal report, product_id: %d, error: %v", op, res.ProductID, err)
		return
	}

	key := fmt.Sprintf("reports/%d/%s.json", res.ProductID, uuid.NewString())

	for attempt := 0; attempt < archiveAttempts; attempt++ {
		if _, err := r.reportRepo.Upload(ctx, key, data); err == nil {
			r.logger.Debugf("%s: report archived, key: %s", op, key)
			return
		} else if attempt == archiveAttempts-1 {
			r.logger.Warnf("%s: giving up on report archive, key: %s, error: %v", op, key, err)
			return
		}

		select {
		case <-time.After(jitter.ExponentialBackoff(archiveBackoff, maxBackoff, attempt, jitter.DefaultJitter)):
		case <-ctx.Done():
			r.logger.Warnf("%s: archive interrupted by shutdown, key: %s", op, key)
			return
		}
	}
}

// WaitForArchive ожидает завершения фоновых архиваций с учётом
// таймаута завершения приложения.
func (r *ReportArchive) WaitForArchive(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("report archive timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
