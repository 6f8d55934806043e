package internal

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

type lexer struct {
	start   int
	current int
	line    int

	state *interpreterState
}

var keywords = map[string]tokenType{
	"SUGOD":     tkStart,
	"KATAPUSAN": tkEnd,
	"MUGNA":     tkDeclare,
	"IPAKITA":   tkPrint,
	"DAWAT":     tkScan,
	"NUMERO":    tkIntType,
	"TIPIK":     tkFloatType,
	"LETRA":     tkCharType,
	"TINUOD":    tkBoolType,
	"UG":        tkAnd,
	"O":         tkOr,
	"DILI":      tkNot,
	"OO":        tkTrue,
	"NULL":      tkNull,
	"KUNG":      tkIf,
	"MINTRAS":   tkWhile,
	"BUHATA":    tkDo,
	"HUNONG":    tkBreak,
	"PADAYON":   tkContinue,
	"PUNDOK":    tkBlock,
}

// phrases are reserved words made of two words separated by exactly one space
var phrases = map[string]tokenType{
	"KUNG PA":   tkElif,
	"KUNG WALA": tkElse,
	"KUNG DILI": tkElse,
	"ALANG SA":  tkFor,
}

var phrasePrefixes = map[string]bool{
	"KUNG":  true,
	"ALANG": true,
}

// operandFollows holds the tokens after which an operand is expected,
// a '--' glued to an identifier there is a prefix decrement
var operandFollows = map[tokenType]bool{
	tkEqual:        true,
	tkLeftParen:    true,
	tkComma:        true,
	tkColon:        true,
	tkPlus:         true,
	tkMinus:        true,
	tkStar:         true,
	tkSlash:        true,
	tkPercent:      true,
	tkPlusEqual:    true,
	tkMinusEqual:   true,
	tkStarEqual:    true,
	tkSlashEqual:   true,
	tkPercentEqual: true,
	tkEqualEqual:   true,
	tkNotEqual:     true,
	tkGreater:      true,
	tkGreaterEqual: true,
	tkLess:         true,
	tkLessEqual:    true,
	tkAmpersand:    true,
	tkAnd:          true,
	tkOr:           true,
	tkNot:          true,
}

var escapes = map[byte]string{
	'n': "\n",
	't': "\t",
	'r': "\r",
}

func (l *lexer) scan() {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}
	l.start = l.current
	l.emit(tkEOF, nil)
	l.state.log("lexer").WithFields(logrus.Fields{
		"tokens": len(l.state.tokens),
		"lines":  l.line,
	}).Debug("scan finished")
}

func (l *lexer) scanToken() {
	c := l.advance()
	switch c {
	case '(':
		l.emit(tkLeftParen, nil)
	case ')':
		l.emit(tkRightParen, nil)
	case '{':
		l.emit(tkLeftBrace, nil)
	case '}':
		l.emit(tkRightBrace, nil)
	case ',':
		l.emit(tkComma, nil)
	case ':':
		l.emit(tkColon, nil)
	case '&':
		l.emit(tkAmpersand, nil)
	case '$':
		l.emit(tkDollar, nil)
	case '[':
		l.escape()
	case '+':
		if l.match('+') {
			l.emit(tkPlusPlus, nil)
		} else if l.match('=') {
			l.emit(tkPlusEqual, nil)
		} else {
			l.emit(tkPlus, nil)
		}
	case '-':
		if l.peek() == '-' {
			if l.isDecrement() {
				l.advance()
				l.emit(tkMinusMinus, nil)
				return
			}
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		} else if l.match('=') {
			l.emit(tkMinusEqual, nil)
		} else {
			l.emit(tkMinus, nil)
		}
	case '*':
		if l.match('=') {
			l.emit(tkStarEqual, nil)
		} else {
			l.emit(tkStar, nil)
		}
	case '/':
		if l.match('=') {
			l.emit(tkSlashEqual, nil)
		} else {
			l.emit(tkSlash, nil)
		}
	case '%':
		if l.match('=') {
			l.emit(tkPercentEqual, nil)
		} else {
			l.emit(tkPercent, nil)
		}
	case '=':
		if l.match('=') {
			l.emit(tkEqualEqual, nil)
		} else {
			l.emit(tkEqual, nil)
		}
	case '<':
		if l.match('>') {
			l.emit(tkNotEqual, nil)
		} else if l.match('=') {
			l.emit(tkLessEqual, nil)
		} else {
			l.emit(tkLess, nil)
		}
	case '>':
		if l.match('=') {
			l.emit(tkGreaterEqual, nil)
		} else {
			l.emit(tkGreater, nil)
		}

	// Ignore whitespace
	case ' ':
	case '\r':
	case '\t':

	case '\n':
		l.emit(tkNewline, nil)
		l.line++

	case '"':
		l.string()

	case '\'':
		l.char()

	case '.':
		if isDigit(l.peek()) {
			l.number()
		} else {
			l.error(errUnexpectedChar)
		}

	default:
		if isDigit(c) {
			l.number()
		} else if isAlpha(c) {
			l.identifier()
		} else {
			l.skipRune()
			l.error(errUnexpectedChar)
		}
	}
}

// isDecrement decides whether the '--' starting at l.start is an operator
// rather than the start of a comment
func (l *lexer) isDecrement() bool {
	if len(l.state.tokens) == 0 {
		return false
	}
	prev := l.state.tokens[len(l.state.tokens)-1]
	if prev.token == tkIdentifier && prev.pos+len(prev.lexeme) == l.start {
		return true
	}
	return operandFollows[prev.token] && isAlpha(l.peekAt(l.current+1))
}

func (l *lexer) string() {
	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}

	if l.isAtEnd() {
		l.error(errUnterminatedString)
		return
	}

	// Consume ending "
	l.advance()

	l.emit(tkString, l.state.source[l.start+1:l.current-1])
}

func (l *lexer) char() {
	for !l.isAtEnd() && l.peek() != '\'' && l.peek() != '\n' {
		l.advance()
	}

	if l.isAtEnd() || l.peek() == '\n' {
		l.error(errUnterminatedChar)
		return
	}

	// Consume ending '
	l.advance()

	content := l.state.source[l.start+1 : l.current-1]
	r, size := utf8.DecodeRuneInString(content)
	if size == 0 || size != len(content) || r == utf8.RuneError {
		l.error(errInvalidChar)
		return
	}

	l.emit(tkChar, r)
}

func (l *lexer) escape() {
	for !l.isAtEnd() && l.peek() != ']' && l.peek() != '\n' {
		l.advance()
	}

	if l.isAtEnd() || l.peek() == '\n' {
		l.error(errUnterminatedEscape)
		return
	}

	// Consume ending ]
	l.advance()

	content := l.state.source[l.start+1 : l.current-1]
	switch len(content) {
	case 0:
		// []] is an escaped closing bracket
		if l.match(']') {
			l.emit(tkEscape, "]")
		} else {
			l.emit(tkEscape, "")
		}
	case 1:
		if control, ok := escapes[content[0]]; ok {
			l.emit(tkEscape, control)
		} else {
			l.emit(tkEscape, content)
		}
	default:
		l.error(errInvalidEscape)
	}
}

func (l *lexer) number() {
	isFloat := l.state.source[l.start] == '.'

	for isDigit(l.peek()) {
		l.advance()
	}

	if !isFloat && l.peek() == '.' && isDigit(l.peekAt(l.current+1)) {
		isFloat = true
		// Consume .
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if !isDigit(l.peek()) {
			l.error(errInvalidExponent)
			return
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	text := l.state.source[l.start:l.current]

	if isFloat {
		literal, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.error(errInvalidNumber)
			return
		}
		l.emit(tkNumber, literal)
		return
	}

	literal, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.error(errInvalidNumber)
		return
	}
	l.emit(tkNumber, literal)
}

func (l *lexer) identifier() {
	l.word()

	text := l.state.source[l.start:l.current]

	if phrasePrefixes[text] && l.peek() == ' ' && isAlpha(l.peekAt(l.current+1)) {
		afterFirst := l.current
		l.advance()
		l.word()
		if tokenType, ok := phrases[l.state.source[l.start:l.current]]; ok {
			l.emit(tokenType, nil)
			return
		}
		l.current = afterFirst
	}

	tokenType, ok := keywords[text]
	if !ok {
		tokenType = tkIdentifier
	}

	l.emit(tokenType, nil)
}

// error reports err on the text scanned so far, cut at the first line break
func (l *lexer) error(err error) {
	lexeme := l.state.source[l.start:l.current]
	if i := strings.IndexByte(lexeme, '\n'); i >= 0 {
		lexeme = lexeme[:i]
	}
	l.state.setError(err, l.line, lexeme)
}

func (l *lexer) word() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
}

func (l *lexer) advance() byte {
	current := l.state.source[l.current]
	l.current++
	return current
}

// skipRune moves past the rest of a multi-byte character
func (l *lexer) skipRune() {
	_, size := utf8.DecodeRuneInString(l.state.source[l.start:])
	l.current = l.start + size
}

func (l *lexer) match(c byte) bool {
	if l.isAtEnd() || l.state.source[l.current] != c {
		return false
	}
	l.current++
	return true
}

func (l *lexer) peek() byte {
	return l.peekAt(l.current)
}

func (l *lexer) peekAt(i int) byte {
	if i >= len(l.state.source) {
		return 0
	}
	return l.state.source[i]
}

func (l *lexer) emit(tk tokenType, literal interface{}) {
	l.state.tokens = append(l.state.tokens, token{
		token:   tk,
		lexeme:  l.state.source[l.start:l.current],
		literal: literal,
		line:    l.line,
		pos:     l.start,
	})
}

func (l *lexer) isAtEnd() bool {
	return l.current >= len(l.state.source)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
