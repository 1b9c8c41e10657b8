package service

import (
	"strings"

	"match-service/internal/match/model"
)

// Match — кандидаты для листинга и выбор единственного.
// ok=true только при однозначном совпадении; ноль или несколько кандидатов —
// листинг отбрасывается. Ложная привязка дороже пропущенной.
func Match(l model.Listing, idx *Index, opt model.Options) (string, bool) {
	desc := TokenSet(l.Title, l.Manufacturer)
	if len(desc) == 0 {
		return "", false
	}

	// сколько РАЗЛИЧНЫХ токенов описания попало в каждый продукт
	tally := make(map[string]int)
	for t := range desc {
		for _, name := range idx.Postings(t) {
			tally[name]++
		}
	}

	// Правило покрытия: либо закрыты все обязательные и необязательные токены,
	// либо ровно все обязательные (без частичного перекрытия, случайно равного
	// их числу). Частичное совпадение — не доказательство идентичности.
	var cands []string
	for name, n := range tally {
		p := idx.Product(name)
		switch {
		case n == len(p.Required)+len(p.Optional):
		case n == len(p.Required) && coversAll(desc, p.Required):
		default:
			continue
		}
		cands = append(cands, name)
	}

	// Вторичный фильтр: фразы продукта должны буквально входить в текст
	// листинга. Включается опцией и только при >1 кандидате, чтобы
	// единственный кандидат не мог потеряться.
	if opt.PhraseCheck && len(cands) > 1 {
		text := composePhrase(Tokenize(l.Title + " " + l.Manufacturer))
		kept := cands[:0]
		for _, name := range cands {
			p := idx.Product(name)
			if !strings.Contains(text, p.ManufPhrase) || !strings.Contains(text, p.ModelPhrase) {
				continue
			}
			if p.FamilyPhrase != "" && !strings.Contains(text, p.FamilyPhrase) {
				continue
			}
			kept = append(kept, name)
		}
		cands = kept
	}

	if len(cands) != 1 {
		return "", false
	}
	return cands[0], true
}

func coversAll(desc, tokens map[string]struct{}) bool {
	for t := range tokens {
		if _, ok := desc[t]; !ok {
			return false
		}
	}
	return true
}

// Run — два строгих этапа: построить индекс по каталогу, затем прогнать
// листинги. Продукты выводятся в порядке первого однозначного совпадения,
// листинги внутри продукта — в порядке появления во входном потоке.
func Run(products []model.Product, listings []model.Listing, opt model.Options) []model.Group {
	idx := BuildIndex(products)
	byName := make(map[string]int, idx.Len())
	groups := make([]model.Group, 0)
	for _, l := range listings {
		name, ok := Match(l, idx, opt)
		if !ok {
			continue
		}
		gi, seen := byName[name]
		if !seen {
			gi = len(groups)
			byName[name] = gi
			groups = append(groups, model.Group{ProductName: name})
		}
		groups[gi].Listings = append(groups[gi].Listings, l.Raw)
	}
	return groups
}
