package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает анализируемый товар маркетплейса.
// Цена может отсутствовать — это валидное состояние, а не ошибка.
type Product struct {
	ID          int64
	Title       string
	Description string
	Price       *decimal.Decimal
	Brand       string
	Verified    bool
	Score       *float64
	CreatedAt   time.Time
}

func NewProduct(title string, description string, price *decimal.Decimal, brand string) *Product {
	return &Product{
		Title:       title,
		Description: description,
		Price:       price,
		Brand:       brand,
	}
}

// EmbeddingText возвращает каноническую строку товара для векторизации.
// Шаблон обязан совпадать при индексации и при поиске, иначе поиск
// по близости тихо деградирует.
func (p *Product) EmbeddingText() string {
	return fmt.Sprintf("Title: %s. Description: %s. Brand: %s.", p.Title, p.Description, p.Brand)
}

// PriceFloat возвращает цену как float64 и признак её наличия.
func (p *Product) PriceFloat() (float64, bool) {
	if p.Price == nil {
		return 0, false
	}

	return p.Price.InexactFloat64(), true
}
