package service

import "match-service/internal/match/model"

// Index — инвертированный индекс каталога: токен → имена продуктов в порядке
// добавления, плюс таблица имя → Product. Строится один раз до обработки
// листингов, во время матчинга только читается.
type Index struct {
	postings map[string][]string
	products map[string]*model.Product
}

func BuildIndex(products []model.Product) *Index {
	idx := &Index{
		postings: make(map[string][]string),
		products: make(map[string]*model.Product, len(products)),
	}
	for i := range products {
		p := &products[i]
		// дубль имени в каталоге — неопределённое поведение, побеждает последний
		idx.products[p.Name] = p
		for t := range p.Required {
			idx.postings[t] = append(idx.postings[t], p.Name)
		}
		// Required и Optional не пересекаются, дублей (токен, продукт) не будет
		for t := range p.Optional {
			idx.postings[t] = append(idx.postings[t], p.Name)
		}
	}
	return idx
}

func (idx *Index) Product(name string) *model.Product { return idx.products[name] }

func (idx *Index) Postings(token string) []string { return idx.postings[token] }

func (idx *Index) Len() int { return len(idx.products) }
