package service

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"match-service/internal/fileio"
	"match-service/internal/match/model"
)

// LoadProducts — записи каталога → продукты. Любая кривая запись фатальна.
func LoadProducts(recs []fileio.Record, file string) ([]model.Product, error) {
	products := make([]model.Product, 0, len(recs))
	for _, rec := range recs {
		if rec.Err != nil {
			return nil, &model.CatalogError{File: file, Line: rec.Line, Msg: rec.Err.Error()}
		}
		name := fieldStr(rec.Fields, "product_name")
		p, err := NewProduct(
			name,
			fieldStr(rec.Fields, "manufacturer"),
			fieldStr(rec.Fields, "model"),
			fieldStr(rec.Fields, "family"),
		)
		if err != nil {
			var ce *model.CatalogError
			if errors.As(err, &ce) {
				ce.File = file
				ce.Line = rec.Line
			}
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// LoadListings — записи прайса → листинги. Кривая строка пропускается
// с warn-логом, прогон не прерывается: прайсы — сторонний, грязный вход.
func LoadListings(recs []fileio.Record, file string, log zerolog.Logger) []model.Listing {
	listings := make([]model.Listing, 0, len(recs))
	for _, rec := range recs {
		if rec.Err != nil {
			log.Warn().Str("file", file).Int("line", rec.Line).Err(rec.Err).Msg("listing skipped")
			continue
		}
		title := fieldStr(rec.Fields, "title")
		if title == "" {
			log.Warn().Str("file", file).Int("line", rec.Line).Msg("listing without title skipped")
			continue
		}
		listings = append(listings, model.Listing{
			Title:        title,
			Manufacturer: fieldStr(rec.Fields, "manufacturer"),
			Raw:          rec.Fields,
		})
	}
	return listings
}

// fieldStr — строковое поле записи; ключ ищется без учёта регистра,
// чтобы табличные шапки вида "Manufacturer" тоже подходили.
func fieldStr(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		for k, kv := range m {
			if strings.EqualFold(strings.TrimSpace(k), key) {
				v = kv
				break
			}
		}
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
