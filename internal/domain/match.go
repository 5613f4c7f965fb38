package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SimilarityMatch — сохранённый ранее товар, найденный поиском ближайших
// соседей, вместе со значением косинусной близости к запросу.
type SimilarityMatch struct {
	ProductID   int64
	Title       string
	Description string
	Price       *decimal.Decimal
	Brand       string
	Verified    bool
	Score       *float64
	Similarity  float64
}

// SortMatches упорядочивает совпадения по убыванию близости.
// При равной близости раньше идёт товар с меньшим ID — порядок
// детерминирован и не зависит от хранилища.
func SortMatches(matches []SimilarityMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].ProductID < matches[j].ProductID
	})
}

// PriceFloat возвращает цену соседа как float64 и признак её наличия.
func (m *SimilarityMatch) PriceFloat() (float64, bool) {
	if m.Price == nil {
		return 0, false
	}

	return m.Price.InexactFloat64(), true
}
