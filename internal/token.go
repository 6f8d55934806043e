package internal

import "fmt"

// tokenType Holds a token
type tokenType int

const (
	tkEOF tokenType = iota - 1

	// Statement separator.
	tkNewline

	// Single-character tokens.
	// (, ), {, }, ',', :, &, $
	tkLeftParen
	tkRightParen
	tkLeftBrace
	tkRightBrace
	tkComma
	tkColon
	tkAmpersand
	tkDollar

	// Arithmetic and their compound forms.
	// +, -, *, /, %, +=, -=, *=, /=, %=, ++, --
	tkPlus
	tkMinus
	tkStar
	tkSlash
	tkPercent
	tkPlusEqual
	tkMinusEqual
	tkStarEqual
	tkSlashEqual
	tkPercentEqual
	tkPlusPlus
	tkMinusMinus

	// One or two character tokens.
	// =, ==, <>, >, >=, <, <=
	tkEqual
	tkEqualEqual
	tkNotEqual
	tkGreater
	tkGreaterEqual
	tkLess
	tkLessEqual

	// Literals.
	// *variable*, "text", 'c', number, [escape]
	tkIdentifier
	tkString
	tkChar
	tkNumber
	tkEscape

	// Keywords.
	// SUGOD, KATAPUSAN, MUGNA, IPAKITA, DAWAT, NUMERO, TIPIK, LETRA, TINUOD,
	// UG, O, DILI, OO, NULL, KUNG, KUNG PA, KUNG WALA, ALANG SA, MINTRAS,
	// BUHATA, HUNONG, PADAYON, PUNDOK
	tkStart
	tkEnd
	tkDeclare
	tkPrint
	tkScan
	tkIntType
	tkFloatType
	tkCharType
	tkBoolType
	tkAnd
	tkOr
	tkNot
	tkTrue
	tkNull
	tkIf
	tkElif
	tkElse
	tkFor
	tkWhile
	tkDo
	tkBreak
	tkContinue
	tkBlock
)

var tokenNames = map[tokenType]string{
	tkEOF:          "EOF",
	tkNewline:      "NEWLINE",
	tkLeftParen:    "LEFT_PAREN",
	tkRightParen:   "RIGHT_PAREN",
	tkLeftBrace:    "LEFT_BRACE",
	tkRightBrace:   "RIGHT_BRACE",
	tkComma:        "COMMA",
	tkColon:        "COLON",
	tkAmpersand:    "CONCAT",
	tkDollar:       "NEW_LINE",
	tkPlus:         "PLUS",
	tkMinus:        "MINUS",
	tkStar:         "STAR",
	tkSlash:        "SLASH",
	tkPercent:      "PERCENT",
	tkPlusEqual:    "PLUS_EQUAL",
	tkMinusEqual:   "MINUS_EQUAL",
	tkStarEqual:    "STAR_EQUAL",
	tkSlashEqual:   "SLASH_EQUAL",
	tkPercentEqual: "PERCENT_EQUAL",
	tkPlusPlus:     "INCREMENT",
	tkMinusMinus:   "DECREMENT",
	tkEqual:        "EQUAL",
	tkEqualEqual:   "EQUAL_EQUAL",
	tkNotEqual:     "NOT_EQUAL",
	tkGreater:      "GREATER",
	tkGreaterEqual: "GREATER_EQUAL",
	tkLess:         "LESS",
	tkLessEqual:    "LESS_EQUAL",
	tkIdentifier:   "IDENTIFIER",
	tkString:       "STRING",
	tkChar:         "CHAR",
	tkNumber:       "NUMBER",
	tkEscape:       "ESCAPE",
	tkStart:        "START",
	tkEnd:          "END",
	tkDeclare:      "DECLARE",
	tkPrint:        "PRINT",
	tkScan:         "SCAN",
	tkIntType:      "NUMERO",
	tkFloatType:    "TIPIK",
	tkCharType:     "LETRA",
	tkBoolType:     "TINUOD",
	tkAnd:          "AND",
	tkOr:           "OR",
	tkNot:          "NOT",
	tkTrue:         "TRUE",
	tkNull:         "NULL",
	tkIf:           "IF",
	tkElif:         "ELIF",
	tkElse:         "ELSE",
	tkFor:          "FOR",
	tkWhile:        "WHILE",
	tkDo:           "DO",
	tkBreak:        "BREAK",
	tkContinue:     "CONTINUE",
	tkBlock:        "BLOCK",
}

func (t tokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tokenType(%d)", int(t))
}

type token struct {
	token   tokenType
	lexeme  string
	literal interface{}
	line    int
	// pos is the byte offset of lexeme in the source. Synthesized tokens use -1.
	pos int
}

func (t *token) String() string {
	if t.literal == nil {
		return fmt.Sprintf("%d %s %q", t.line, t.token, t.lexeme)
	}
	return fmt.Sprintf("%d %s %q %v", t.line, t.token, t.lexeme, t.literal)
}
