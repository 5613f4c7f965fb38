package usecase

import "context"

// Embedder превращает текст в вектор фиксированной размерности.
// Функция чистая: одинаковый текст всегда даёт одинаковый вектор.
type Embedder interface {
	Embed(text string) []float32
	EmbedBatch(texts []string) [][]float32
}

// NarrativeInfra выполняет внешний текстовый анализ товара.
// Реализация обязана деградировать до эвристической оценки и
// никогда не возвращает ошибку наружу.
type NarrativeInfra interface {
	AnalyzeWithNarrative(ctx context.Context, req *NarrativeReq) *NarrativeRes
}

// ReportArchive архивирует итоговый отчёт анализа (best-effort).
type ReportArchive interface {
	ArchiveResult(res *AnalyzeProductRes)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
