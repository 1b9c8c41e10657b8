package service

import (
	"strings"
	"unicode"
)

// Tokenize — нижний регистр, всё кроме букв и цифр заменяется пробелом.
// Точка выживает только между двумя цифрами ("3.5" — это номер модели),
// остальные точки — разделители (хвосты сокращений "Corp." и т.п.).
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	r := []rune(strings.ToLower(s))
	b := make([]rune, 0, len(r))
	for i, c := range r {
		switch {
		case unicode.IsLetter(c) || unicode.IsDigit(c):
			b = append(b, c)
		case c == '.' && i > 0 && i+1 < len(r) && unicode.IsDigit(r[i-1]) && unicode.IsDigit(r[i+1]):
			b = append(b, c)
		default:
			b = append(b, ' ')
		}
	}
	var out []string
	for _, t := range strings.Fields(string(b)) {
		if t = strings.Trim(t, "."); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// TokenSet — объединённое множество токенов нескольких строк.
func TokenSet(parts ...string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, p := range parts {
		for _, t := range Tokenize(p) {
			set[t] = struct{}{}
		}
	}
	return set
}

// composePhrase — " a b c " с пробелами по краям, чтобы вхождение фразы
// проверялось по границам токенов.
func composePhrase(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return " " + strings.Join(tokens, " ") + " "
}
