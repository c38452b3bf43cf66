package lexer

// Byte-classification helpers, adapted from the teacher's util package
// (util.IsNumber/IsLetter/...) into unexported lexer-local helpers.

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isUnderscore(b byte) bool {
	return b == '_'
}

func isIdentStart(b byte) bool {
	return isLetter(b) || isUnderscore(b)
}

func isIdentPart(b byte) bool {
	return isLetter(b) || isUnderscore(b) || isDigit(b)
}
