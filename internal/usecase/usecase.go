package usecase

import "context"

type AnalysisUC interface {
	AnalyzeProduct(ctx context.Context, req *AnalyzeProductReq) (*AnalyzeProductRes, error)
	GetProduct(ctx context.Context, id int64) (*ProductInfo, error)
	ListRecentVerified(ctx context.Context, limit int) ([]ProductInfo, error)
	VerifyProduct(ctx context.Context, req *VerifyProductReq) error
}
