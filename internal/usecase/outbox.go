package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	EventProductAnalyzed OutboxEventType = "product.analyzed"
	EventProductVerified OutboxEventType = "product.verified"
)

// OutboxEvent — событие, записываемое в одной транзакции с изменением
// каталога и публикуемое в Kafka фоновым worker'ом.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	ProductID   int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

func NewOutboxEvent(eventType OutboxEventType, productID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		ProductID: productID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}

// ProductAnalyzedPayload — тело события product.analyzed.
type ProductAnalyzedPayload struct {
	ProductID    int64   `json:"product_id"`
	Title        string  `json:"title"`
	Score        float64 `json:"score"`
	Authenticity string  `json:"authenticity"`
	AnalyzedAt   int64   `json:"analyzed_at"`
}

// ProductVerifiedPayload — тело события product.verified.
type ProductVerifiedPayload struct {
	ProductID  int64   `json:"product_id"`
	Verified   bool    `json:"verified"`
	Score      float64 `json:"score"`
	VerifiedAt int64   `json:"verified_at"`
}

func NewProductAnalyzedPayload(productID int64, title string, score float64, authenticity string) ([]byte, error) {
	return json.Marshal(&ProductAnalyzedPayload{
		ProductID:    productID,
		Title:        title,
		Score:        score,
		Authenticity: authenticity,
		AnalyzedAt:   time.Now().UTC().UnixNano(),
	})
}

func NewProductVerifiedPayload(productID int64, verified bool, score float64) ([]byte, error) {
	return json.Marshal(&ProductVerifiedPayload{
		ProductID:  productID,
		Verified:   verified,
		Score:      score,
		VerifiedAt: time.Now().UTC().UnixNano(),
	})
}
