package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-service/internal/match/model"
)

func mustProduct(t *testing.T, name, manuf, modelText, family string) model.Product {
	t.Helper()
	p, err := NewProduct(name, manuf, modelText, family)
	require.NoError(t, err)
	return p
}

func listing(title, manuf string) model.Listing {
	return model.Listing{
		Title:        title,
		Manufacturer: manuf,
		Raw:          map[string]any{"title": title, "manufacturer": manuf},
	}
}

func TestMatchCoverage(t *testing.T) {
	products := []model.Product{
		mustProduct(t, "W200", "Sony", "DSC-W200", ""),
	}
	idx := BuildIndex(products)

	// надмножество, закрывающее все обязательные токены — матч
	name, ok := Match(listing("Sony DSC W200 camera", "Sony"), idx, model.Options{})
	require.True(t, ok)
	assert.Equal(t, "W200", name)

	// частичное покрытие обязательных — не матч
	_, ok = Match(listing("Sony camera", "Sony"), idx, model.Options{})
	assert.False(t, ok)
}

func TestMatchOptionalTokens(t *testing.T) {
	products := []model.Product{
		mustProduct(t, "W200", "Sony", "DSC-W200", "Cyber shot"),
	}
	idx := BuildIndex(products)

	// только обязательные, ноль необязательных — матч
	_, ok := Match(listing("Sony DSC W200", ""), idx, model.Options{})
	assert.True(t, ok)

	// обязательные + вся family — матч
	_, ok = Match(listing("Sony Cyber shot DSC W200", ""), idx, model.Options{})
	assert.True(t, ok)

	// обязательные + половина family: сумма не равна ни req, ни req+opt — не матч
	_, ok = Match(listing("Sony Cyber DSC W200", ""), idx, model.Options{})
	assert.False(t, ok)
}

func TestMatchAmbiguityDropped(t *testing.T) {
	products := []model.Product{
		mustProduct(t, "P1", "Acme", "X100", ""),
		mustProduct(t, "P2", "Acme", "X100", "Pro"),
	}
	idx := BuildIndex(products)

	// оба продукта полностью покрыты — листинг отбрасывается
	_, ok := Match(listing("Acme X100 Pro bundle", "Acme"), idx, model.Options{})
	assert.False(t, ok)
}

func TestMatchEmptyDescription(t *testing.T) {
	idx := BuildIndex([]model.Product{mustProduct(t, "P1", "Acme", "X100", "")})
	_, ok := Match(listing("", ""), idx, model.Options{})
	assert.False(t, ok)
}

func TestPhraseCheckDisambiguates(t *testing.T) {
	products := []model.Product{
		mustProduct(t, "P1", "Acme", "X100", ""),
		mustProduct(t, "P2", "Acme", "Mark X100", ""),
	}
	idx := BuildIndex(products)

	l := listing("Acme X100 Mark", "Acme")

	// по токенам покрыты оба — без фразовой проверки неоднозначно
	_, ok := Match(l, idx, model.Options{})
	require.False(t, ok)

	// фраза " mark x100 " в тексте не встречается, остаётся один P1
	name, ok := Match(l, idx, model.Options{PhraseCheck: true})
	require.True(t, ok)
	assert.Equal(t, "P1", name)
}

func TestPhraseCheckNeverDropsSingleCandidate(t *testing.T) {
	products := []model.Product{
		mustProduct(t, "P1", "Acme Corp", "X100", ""),
	}
	idx := BuildIndex(products)

	// порядок слов ломает фразу " acme corp ", но кандидат единственный —
	// вторичный фильтр не должен его терять
	name, ok := Match(listing("Corp Acme X100", ""), idx, model.Options{PhraseCheck: true})
	require.True(t, ok)
	assert.Equal(t, "P1", name)
}

func TestRunEndToEnd(t *testing.T) {
	products := []model.Product{
		mustProduct(t, "P1", "Acme", "X100", ""),
	}
	l := listing("Acme X100 Camera", "Acme Corp")

	groups := Run(products, []model.Listing{l}, model.Options{})
	require.Len(t, groups, 1)
	assert.Equal(t, "P1", groups[0].ProductName)
	require.Len(t, groups[0].Listings, 1)
	assert.Equal(t, l.Raw, groups[0].Listings[0])
}

func TestRunEndToEndNegative(t *testing.T) {
	products := []model.Product{
		mustProduct(t, "P1", "Acme", "X100", ""),
		mustProduct(t, "P2", "Acme", "X200", ""),
	}
	groups := Run(products, []model.Listing{listing("Acme Camera", "Acme")}, model.Options{})
	assert.Empty(t, groups)
}

func TestRunPreservesListingOrder(t *testing.T) {
	products := []model.Product{
		mustProduct(t, "P1", "Acme", "X100", ""),
		mustProduct(t, "P2", "Acme", "X200", ""),
	}
	mk := func(n int, title string) model.Listing {
		l := listing(title, "Acme")
		l.Raw["pos"] = n
		return l
	}
	listings := []model.Listing{
		mk(1, "Acme X200 kit"),
		mk(2, "Acme X100 camera"),
		mk(3, "Acme gadget"), // не матчится
		mk(4, "Acme X100 bundle"),
		mk(5, "Acme X100"),
	}

	groups := Run(products, listings, model.Options{})
	require.Len(t, groups, 2)

	// группы — в порядке первого однозначного матча
	assert.Equal(t, "P2", groups[0].ProductName)
	assert.Equal(t, "P1", groups[1].ProductName)

	// листинги внутри группы — в порядке входного потока
	var pos []int
	for _, raw := range groups[1].Listings {
		pos = append(pos, raw["pos"].(int))
	}
	assert.Equal(t, []int{2, 4, 5}, pos)
}
