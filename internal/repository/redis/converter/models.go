package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductInfoRedisModel struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Brand       string           `json:"brand"`
	Verified    bool             `json:"verified"`
	Score       *float64         `json:"score,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
