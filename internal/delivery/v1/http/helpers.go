package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/authentika/go-backend/internal/usecase"
	"github.com/authentika/go-backend/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrTitleRequired):
		return http.StatusBadRequest, e.ErrTitleRequired.Error()
	case errors.Is(err, e.ErrDescriptionRequired):
		return http.StatusBadRequest, e.ErrDescriptionRequired.Error()
	case errors.Is(err, e.ErrBrandRequired):
		return http.StatusBadRequest, e.ErrBrandRequired.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrInvalidScore):
		return http.StatusBadRequest, e.ErrInvalidScore.Error()
	case errors.Is(err, e.ErrInvalidProductID):
		return http.StatusBadRequest, e.ErrInvalidProductID.Error()
	case errors.Is(err, e.ErrInvalidLimit):
		return http.StatusBadRequest, e.ErrInvalidLimit.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseJSONBody декодирует JSON-тело запроса в dst.
// Лишние поля игнорируются: адаптеры скрейпера и marketplace-API
// присылают полный нормализованный payload.
func parseJSONBody(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}

	return nil
}

// parseProductID извлекает ID товара из URL.
func parseProductID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, e.ErrInvalidProductID
	}

	return id, nil
}

// parseLimit извлекает limit из query-параметра с значением по умолчанию.
func parseLimit(r *http.Request, defaultLimit int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, e.ErrInvalidLimit
	}

	return limit, nil
}

// similarProductResponse — сосед в ответе анализа.
type similarProductResponse struct {
	ProductID  int64            `json:"product_id"`
	Title      string           `json:"title"`
	Brand      string           `json:"brand"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Verified   bool             `json:"verified"`
	Similarity float64          `json:"similarity"`
}

func toSimilarProductResponses(res *usecase.AnalyzeProductRes) []similarProductResponse {
	similar := make([]similarProductResponse, 0, len(res.SimilarProducts))
	for _, match := range res.SimilarProducts {
		similar = append(similar, similarProductResponse{
			ProductID:  match.ProductID,
			Title:      match.Title,
			Brand:      match.Brand,
			Price:      match.Price,
			Verified:   match.Verified,
			Similarity: match.Similarity,
		})
	}

	return similar
}
