package usecase

import (
	"time"

	"github.com/authentika/go-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Метки классификации итогового результата.
const (
	AuthenticityLikelyAuthentic = "Likely Authentic"
	AuthenticityPotentiallyFake = "Potentially Fake"
)

// ANALYSIS USECASE

// AnalyzeProductReq — запрос на анализ товара. Форма совпадает с
// нормализованным выводом скрейпера и marketplace-API адаптера:
// обязательны только title/description/brand, остальное опционально.
type AnalyzeProductReq struct {
	Title       string
	Description string
	Price       *decimal.Decimal
	Brand       string
	URL         string
	ExternalID  string
}

// AnalyzeProductRes — составной результат анализа.
type AnalyzeProductRes struct {
	ProductID          int64
	Title              string
	Score              float64
	Authenticity       string
	InitialReasoning   string
	NarrativeReasoning string
	WarningIndicators  []string
	Recommendations    []string
	SimilarProducts    []domain.SimilarityMatch
}

// VerifyProductReq — запрос ручной верификации товара.
type VerifyProductReq struct {
	ProductID int64
	Verified  bool
	Score     float64
}

// ProductInfo — DTO с информацией о товаре для внешнего использования.
type ProductInfo struct {
	ID          int64
	Title       string
	Description string
	Price       *decimal.Decimal
	Brand       string
	Verified    bool
	Score       *float64
	CreatedAt   time.Time
}

// INFRASTRUCTURE

// NarrativeReq — контекст для внешнего текстового анализа.
type NarrativeReq struct {
	Product            *domain.Product
	HeuristicScore     float64
	HeuristicReasoning string
	Neighbors          []domain.SimilarityMatch
}

// NarrativeRes — разобранный результат внешнего анализа.
type NarrativeRes struct {
	Score             float64
	Reasoning         string
	WarningIndicators []string
	Recommendations   []string
}

type WriteRawMessageReq struct {
	ProductID int64
	Payload   []byte
}

// REPOSITORIES

// VectorHit — сырое совпадение из векторного индекса.
type VectorHit struct {
	ProductID  int64
	Similarity float64
}

// MAPPERS

func NewAnalyzeProductReq(title, description string, price *decimal.Decimal, brand, url, externalID string) *AnalyzeProductReq {
	return &AnalyzeProductReq{
		Title:       title,
		Description: description,
		Price:       price,
		Brand:       brand,
		URL:         url,
		ExternalID:  externalID,
	}
}

func NewNarrativeReq(product *domain.Product, heuristicScore float64, heuristicReasoning string, neighbors []domain.SimilarityMatch) *NarrativeReq {
	return &NarrativeReq{
		Product:            product,
		HeuristicScore:     heuristicScore,
		HeuristicReasoning: heuristicReasoning,
		Neighbors:          neighbors,
	}
}

func NewNarrativeRes(score float64, reasoning string, warningIndicators []string, recommendations []string) *NarrativeRes {
	return &NarrativeRes{
		Score:             score,
		Reasoning:         reasoning,
		WarningIndicators: warningIndicators,
		Recommendations:   recommendations,
	}
}

func NewWriteRawMessageReq(productID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ProductID: productID,
		Payload:   payload,
	}
}

func NewProductInfo(product *domain.Product) ProductInfo {
	return ProductInfo{
		ID:          product.ID,
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Brand:       product.Brand,
		Verified:    product.Verified,
		Score:       product.Score,
		CreatedAt:   product.CreatedAt,
	}
}

func NewVectorHit(productID int64, similarity float64) VectorHit {
	return VectorHit{
		ProductID:  productID,
		Similarity: similarity,
	}
}
