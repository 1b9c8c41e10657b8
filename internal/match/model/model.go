package model

import "fmt"

// Product — каноническая запись каталога. Собирается один раз при загрузке,
// дальше только читается.
type Product struct {
	Name     string
	Required map[string]struct{} // токены manufacturer+model, обязательны все
	Optional map[string]struct{} // токены family за вычетом обязательных

	// склеенные фразы " a b c " для необязательной проверки вхождения
	ManufPhrase  string
	FamilyPhrase string
	ModelPhrase  string
}

// Listing — одна строка прайса. Raw хранит исходную запись целиком,
// чтобы незнакомые поля дошли до вывода без потерь.
type Listing struct {
	Title        string
	Manufacturer string
	Raw          map[string]any
}

type Options struct {
	PhraseCheck bool // вторичная проверка кандидатов по вхождению фраз
}

// Group — продукт и его листинги в порядке появления во входном потоке.
type Group struct {
	ProductName string           `json:"product_name"`
	Listings    []map[string]any `json:"listings"`
}

// CatalogError — непригодная запись каталога. Фатальна для всего запуска:
// каталог — доверенный вход, молча пропускать его строки нельзя.
type CatalogError struct {
	File string
	Line int
	Name string
	Msg  string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog %s:%d (%q): %s", e.File, e.Line, e.Name, e.Msg)
}
