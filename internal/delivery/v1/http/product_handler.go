package http

import (
	"net/http"
	"time"

	"github.com/authentika/go-backend/internal/usecase"
	"github.com/authentika/go-backend/pkg/e"
	"github.com/authentika/go-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

const defaultVerifiedLimit = 10

type ProductHandler struct {
	analysisUsecase usecase.AnalysisUC
	logger          logger.Logger
}

func NewProductHandler(analysisUsecase usecase.AnalysisUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{analysisUsecase: analysisUsecase, logger: logger}
}

type analyzeProductRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Brand       string           `json:"brand"`
	URL         string           `json:"url,omitempty"`
	ExternalID  string           `json:"external_id,omitempty"`
}

type analyzeProductResponse struct {
	ProductID          int64                    `json:"product_id"`
	Title              string                   `json:"title"`
	Score              float64                  `json:"score"`
	Authenticity       string                   `json:"authenticity"`
	InitialReasoning   string                   `json:"initial_reasoning"`
	NarrativeReasoning string                   `json:"narrative_reasoning"`
	WarningIndicators  []string                 `json:"warning_indicators"`
	Recommendations    []string                 `json:"recommendations"`
	SimilarProducts    []similarProductResponse `json:"similar_products"`
}

type productResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Brand       string           `json:"brand"`
	Verified    bool             `json:"verified"`
	Score       *float64         `json:"score,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type verifyProductRequest struct {
	Verified bool    `json:"verified"`
	Score    float64 `json:"score"`
}

// analyzeProduct
//
//	@Summary		Анализ подлинности товара
//	@Description	Выполняет полный конвейер анализа: векторный поиск похожих товаров, эвристическую оценку и текстовый анализ
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		analyzeProductRequest	true	"Данные товара"
//	@Success		200		{object}	analyzeProductResponse	"Результат анализа"
//	@Failure		400		{object}	ErrorResponse			"Ошибка валидации"
//	@Failure		500		{object}	ErrorResponse			"Внутренняя ошибка"
//	@Router			/products/analyze [post]
func (p *ProductHandler) analyzeProduct(w http.ResponseWriter, r *http.Request) {
	var req analyzeProductRequest
	if err := parseJSONBody(r, &req); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := p.analysisUsecase.AnalyzeProduct(r.Context(), usecase.NewAnalyzeProductReq(
		req.Title, req.Description, req.Price, req.Brand, req.URL, req.ExternalID,
	))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &analyzeProductResponse{
		ProductID:          res.ProductID,
		Title:              res.Title,
		Score:              res.Score,
		Authenticity:       res.Authenticity,
		InitialReasoning:   res.InitialReasoning,
		NarrativeReasoning: res.NarrativeReasoning,
		WarningIndicators:  res.WarningIndicators,
		Recommendations:    res.Recommendations,
		SimilarProducts:    toSimilarProductResponses(res),
	})
}

// getProduct
//
//	@Summary		Получение товара
//	@Description	Возвращает сохранённый товар с результатом анализа
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int				true	"ID товара"
//	@Success		200	{object}	productResponse	"Товар"
//	@Failure		400	{object}	ErrorResponse	"Некорректный ID"
//	@Failure		404	{object}	ErrorResponse	"Товар не найден"
//	@Router			/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		p.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	info, err := p.analysisUsecase.GetProduct(r.Context(), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(info))
}

// listRecentVerified
//
//	@Summary		Последние верифицированные товары
//	@Description	Возвращает последние товары с ручным вердиктом модератора
//	@Tags			products
//	@Produce		json
//	@Param			limit	query		int				false	"Максимум записей (по умолчанию 10)"
//	@Success		200		{array}		productResponse	"Товары"
//	@Failure		400		{object}	ErrorResponse	"Некорректный limit"
//	@Router			/products/verified [get]
func (p *ProductHandler) listRecentVerified(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, defaultVerifiedLimit)
	if err != nil {
		p.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	infos, err := p.analysisUsecase.ListRecentVerified(r.Context(), limit)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	result := make([]*productResponse, 0, len(infos))
	for i := range infos {
		result = append(result, toProductResponse(&infos[i]))
	}

	WriteSuccess(w, http.StatusOK, result)
}

// verifyProduct
//
//	@Summary		Ручная верификация товара
//	@Description	Выставляет товару вердикт модератора и публикует событие product.verified
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"ID товара"
//	@Param			request	body		verifyProductRequest	true	"Вердикт"
//	@Success		200		{object}	map[string]interface{}	"Успешное обновление"
//	@Failure		400		{object}	ErrorResponse			"Ошибка валидации"
//	@Failure		404		{object}	ErrorResponse			"Товар не найден"
//	@Router			/products/{id}/verify [post]
func (p *ProductHandler) verifyProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		p.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	var req verifyProductRequest
	if err := parseJSONBody(r, &req); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	if err := p.analysisUsecase.VerifyProduct(r.Context(), &usecase.VerifyProductReq{
		ProductID: id,
		Verified:  req.Verified,
		Score:     req.Score,
	}); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"ProductID": id,
		"Verified":  req.Verified,
	})
}

func toProductResponse(info *usecase.ProductInfo) *productResponse {
	return &productResponse{
		ID:          info.ID,
		Title:       info.Title,
		Description: info.Description,
		Price:       info.Price,
		Brand:       info.Brand,
		Verified:    info.Verified,
		Score:       info.Score,
		CreatedAt:   info.CreatedAt,
	}
}
