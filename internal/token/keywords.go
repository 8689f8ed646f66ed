package token

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Сравнение точное: длина отсекает большинство кандидатов до сравнения строк.
func LookupKeyword(ident string) (Kind, bool) {
	switch len(ident) {
	case 2:
		if ident == "if" {
			return KwIf, true
		}
	case 3:
		switch ident {
		case "ret":
			return KwRet, true
		case "let":
			return KwLet, true
		case "mut":
			return KwMut, true
		}
	case 4:
		switch ident {
		case "else":
			return KwElse, true
		case "true":
			return KwTrue, true
		}
	case 5:
		switch ident {
		case "funct":
			return KwFunct, true
		case "while":
			return KwWhile, true
		case "false":
			return KwFalse, true
		}
	case 6:
		if ident == "return" {
			return KwReturn, true
		}
	}
	return Ident, false
}
