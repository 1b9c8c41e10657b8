package service

import (
	"match-service/internal/match/model"
)

// NewProduct — нормализация записи каталога.
// manufacturer+model дают обязательные токены, family — необязательные
// (за вычетом уже обязательных: family никогда не спорит с идентичностью).
// Пустой обязательный набор — ошибка каталога.
func NewProduct(name, manufacturer, modelText, family string) (model.Product, error) {
	required := TokenSet(manufacturer, modelText)
	if len(required) == 0 {
		return model.Product{}, &model.CatalogError{Name: name, Msg: "empty manufacturer+model"}
	}
	optional := make(map[string]struct{})
	for t := range TokenSet(family) {
		if _, ok := required[t]; !ok {
			optional[t] = struct{}{}
		}
	}
	return model.Product{
		Name:         name,
		Required:     required,
		Optional:     optional,
		ManufPhrase:  composePhrase(Tokenize(manufacturer)),
		FamilyPhrase: composePhrase(Tokenize(family)),
		ModelPhrase:  composePhrase(Tokenize(modelText)),
	}, nil
}
