package converter

import (
	"github.com/authentika/go-backend/internal/usecase"
)

// ProductInfoConverter преобразует DTO товара между usecase и Redis-моделью.
type ProductInfoConverter struct{}

func NewProductInfoConverter() ProductInfoConverter {
	return ProductInfoConverter{}
}

func (ProductInfoConverter) ToRedisModel(entity *usecase.ProductInfo) *ProductInfoRedisModel {
	if entity == nil {
		return nil
	}

	return &ProductInfoRedisModel{
		ID:          entity.ID,
		Title:       entity.Title,
		Description: entity.Description,
		Price:       entity.Price,
		Brand:       entity.Brand,
		Verified:    entity.Verified,
		Score:       entity.Score,
		CreatedAt:   entity.CreatedAt,
	}
}

func (ProductInfoConverter) ToUseCase(model *ProductInfoRedisModel) *usecase.ProductInfo {
	if model == nil {
		return nil
	}

	return &usecase.ProductInfo{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Price:       model.Price,
		Brand:       model.Brand,
		Verified:    model.Verified,
		Score:       model.Score,
		CreatedAt:   model.CreatedAt,
	}
}

func (c ProductInfoConverter) ToArrRedisModel(entities []usecase.ProductInfo) []ProductInfoRedisModel {
	models := make([]ProductInfoRedisModel, 0, len(entities))
	for i := range entities {
		models = append(models, *c.ToRedisModel(&entities[i]))
	}

	return models
}

func (c ProductInfoConverter) ToArrUseCase(models []ProductInfoRedisModel) []usecase.ProductInfo {
	entities := make([]usecase.ProductInfo, 0, len(models))
	for i := range models {
		entities = append(entities, *c.ToUseCase(&models[i]))
	}

	return entities
}
