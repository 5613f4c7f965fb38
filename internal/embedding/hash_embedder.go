// Package embedding реализует детерминированный текстовый эмбеддер.
//
// HashEmbedder — иллюстративная заглушка: вектор выводится из SHA-256
// дайджеста текста, а не из семантики. Контракт (детерминизм, единичная
// норма, нулевой вектор для пустого входа) совпадает с контрактом
// производственной модели, поэтому замена на неё не трогает остальной код.
package embedding

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"
)

type HashEmbedder struct {
	dimension int
}

func NewHashEmbedder(dimension int) *HashEmbedder {
	return &HashEmbedder{
		dimension: dimension,
	}
}

// Dimension возвращает размерность порождаемых векторов.
func (h *HashEmbedder) Dimension() int {
	return h.dimension
}

// Embed строит вектор единичной нормы из текста.
// Один и тот же текст всегда даёт бит-в-бит одинаковый вектор,
// что позволяет идемпотентно переиндексировать каталог.
// Для пустого текста возвращается нулевой вектор.
func (h *HashEmbedder) Embed(text string) []float32 {
	if text == "" {
		return make([]float32, h.dimension)
	}

	digest := sha256.Sum256([]byte(text))
	// Дайджест сводится к 32-битному seed: младшие 4 байта big-endian,
	// что эквивалентно взятию числа по модулю 2^32.
	seed := binary.BigEndian.Uint32(digest[28:])

	rng := rand.New(rand.NewSource(int64(seed)))
	raw := make([]float64, h.dimension)
	var sumSquares float64
	for i := range raw {
		raw[i] = rng.Float64()*2 - 1
		sumSquares += raw[i] * raw[i]
	}

	norm := math.Sqrt(sumSquares)
	vector := make([]float32, h.dimension)
	for i, v := range raw {
		if norm > 0 {
			vector[i] = float32(v / norm)
		} else {
			vector[i] = float32(v)
		}
	}

	return vector
}

// EmbedBatch векторизует набор текстов, сохраняя позиции:
// для пустого текста в результате остаётся нулевой вектор
// на том же индексе, а не пропуск.
func (h *HashEmbedder) EmbedBatch(texts []string) [][]float32 {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = h.Embed(text)
	}

	return vectors
}
