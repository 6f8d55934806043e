package internal

import (
	"github.com/sirupsen/logrus"
)

type elifBranch struct {
	condition expr
	body      stmt
}

// parser stores parser data
type parser struct {
	current   int
	loopDepth int

	state *interpreterState
}

var compoundOperators = map[tokenType]tokenType{
	tkPlusEqual:    tkPlus,
	tkMinusEqual:   tkMinus,
	tkStarEqual:    tkStar,
	tkSlashEqual:   tkSlash,
	tkPercentEqual: tkPercent,
}

func (p *parser) enterLoop() {
	p.loopDepth++
}

func (p *parser) leaveLoop() {
	p.loopDepth--
}

func (p *parser) insideLoop() bool {
	return p.loopDepth > 0
}

func (p *parser) parse() {
	p.skipNewlines()
	if !p.match(tkStart) {
		p.state.tokenError(errExpectedStart, p.peekToken())
	}

	for !p.isAtEnd() && !p.check(tkEnd) {
		if p.match(tkNewline) {
			continue
		}
		if p.check(tkRightBrace) {
			p.state.tokenError(errUnexpectedBrace, p.advance())
			continue
		}
		st := p.parseStmt()
		// A statement that failed to parse is dropped, the error is already recorded
		if st != nil {
			p.state.stmts = append(p.state.stmts, st)
		}
	}

	if !p.match(tkEnd) {
		p.state.tokenError(errExpectedEnd, p.peekToken())
		return
	}
	p.skipNewlines()
	if !p.isAtEnd() {
		p.state.tokenError(errAfterEnd, p.peekToken())
	}

	p.state.log("parser").WithFields(logrus.Fields{
		"statements": len(p.state.stmts),
		"errors":     len(p.state.errors),
	}).Debug("parse finished")
}

func (p *parser) parseStmt() (st stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			st = nil
		}
	}()
	return p.statement()
}

func (p *parser) statement() stmt {
	if p.match(tkDeclare) {
		st := p.varDeclaration(false)
		p.endStatement()
		return st
	}
	if p.match(tkPrint) {
		return p.printStmt()
	}
	if p.match(tkScan) {
		return p.scanStmt()
	}
	if p.match(tkIf) {
		return p.ifStmt()
	}
	if p.match(tkWhile) {
		return p.while()
	}
	if p.match(tkDo) {
		return p.doWhile()
	}
	if p.match(tkFor) {
		return p.forLoop()
	}
	if p.match(tkBreak) {
		return p.brk()
	}
	if p.match(tkContinue) {
		return p.cont()
	}
	if p.match(tkBlock) {
		return &blockStmt{stmts: p.block()}
	}
	st := &exprStmt{expression: p.expression()}
	p.endStatement()
	return st
}

// endStatement consumes the newline that terminates a simple statement
func (p *parser) endStatement() {
	if p.match(tkNewline) || p.check(tkEnd) || p.check(tkRightBrace) || p.isAtEnd() {
		return
	}
	p.state.fatalError(errExpectedNewline, p.peekToken())
}

func (p *parser) varDeclaration(inLoopHeader bool) stmt {
	keyword := p.previous()

	declared, ok := declarationTypes[p.peek().token]
	if !ok {
		p.state.fatalError(errInvalidDataType, p.peekToken())
	}
	p.advance()

	st := &multiVarStmt{
		keyword:  keyword,
		declared: declared,
	}
	seen := make(map[string]bool)
	for {
		name := p.consume(tkIdentifier, errExpectedIdentifier)
		if seen[name.lexeme] {
			p.state.tokenError(errDuplicateDecl, name)
		}
		seen[name.lexeme] = true

		var init expr
		if p.match(tkEqual) {
			init = p.initializer(declared)
		}
		st.names = append(st.names, name)
		st.initializers = append(st.initializers, init)

		if inLoopHeader || !p.match(tkComma) {
			break
		}
	}
	return st
}

// initializer parses a declaration initializer and checks literals against
// the declared type
func (p *parser) initializer(declared dataType) expr {
	at := p.peekToken()
	init := p.expression()

	literal, isLiteral := init.(*literalExpr)
	if !isLiteral || literal.value == nil {
		return init
	}

	if declared == typeBool {
		if text, isText := literal.value.(string); isText {
			b, ok := truthLiteral(text)
			if !ok {
				p.state.fatalError(errInvalidBool, at)
			}
			return &literalExpr{value: b}
		}
	}

	if _, err := coerce(declared, literal.value); err != nil {
		p.state.fatalError(errDeclTypeMismatch, at)
	}
	if _, isFloat := literal.value.(float64); isFloat && declared == typeInteger {
		p.state.fatalError(errDeclTypeMismatch, at)
	}
	return init
}

func (p *parser) printStmt() stmt {
	keyword := p.previous()
	p.consume(tkColon, errExpectedColon)
	value := p.expression()
	p.endStatement()
	return &printStmt{
		keyword:    keyword,
		expression: value,
	}
}

func (p *parser) scanStmt() stmt {
	keyword := p.previous()
	p.consume(tkColon, errExpectedColon)
	var names []*token
	for {
		names = append(names, p.consume(tkIdentifier, errExpectedIdentifier))
		if !p.match(tkComma) {
			break
		}
	}
	p.endStatement()
	return &scanStmt{
		keyword: keyword,
		names:   names,
	}
}

func (p *parser) ifStmt() stmt {
	st := &ifStmt{
		keyword: p.previous(),
	}
	st.condition = p.condition()
	st.thenBranch = p.body()

	for p.lookPast(tkElif) {
		elif := &elifBranch{condition: p.condition()}
		elif.body = p.body()
		st.elifs = append(st.elifs, elif)
	}

	if p.lookPast(tkElse) {
		st.elseBranch = p.body()
	}

	return st
}

func (p *parser) while() stmt {
	keyword := p.previous()
	cond := p.condition()
	p.enterLoop()
	defer p.leaveLoop()
	return &whileStmt{
		keyword:   keyword,
		condition: cond,
		body:      p.body(),
	}
}

func (p *parser) doWhile() stmt {
	keyword := p.previous()

	p.enterLoop()
	defer p.leaveLoop()
	body := p.body()

	p.skipNewlines()
	p.consume(tkWhile, errExpectedWhile)
	cond := p.condition()
	p.endStatement()

	return &doWhileStmt{
		keyword:   keyword,
		body:      body,
		condition: cond,
	}
}

// forLoop desugars ALANG SA (init, cond, inc) body into
// PUNDOK{ init; MINTRAS (cond) PUNDOK{ body; inc } }
func (p *parser) forLoop() stmt {
	keyword := p.previous()
	p.consume(tkLeftParen, errExpectedOpenParen)

	var init stmt
	if p.match(tkDeclare) {
		init = p.varDeclaration(true)
	} else if !p.check(tkComma) {
		init = &exprStmt{expression: p.expression()}
	}
	p.consume(tkComma, errExpectedComma)

	var cond expr
	if !p.check(tkComma) {
		cond = p.expression()
	}
	p.consume(tkComma, errExpectedComma)

	var inc expr
	if !p.check(tkRightParen) {
		inc = p.expression()
	}
	p.consume(tkRightParen, errUnclosedParen)

	p.enterLoop()
	defer p.leaveLoop()
	body := p.body()

	if cond == nil {
		cond = &literalExpr{value: true}
	}
	if inc != nil {
		body = &blockStmt{stmts: []stmt{body, &exprStmt{expression: inc}}}
	}
	var loop stmt = &whileStmt{
		keyword:   keyword,
		condition: cond,
		body:      body,
	}
	if init != nil {
		loop = &blockStmt{stmts: []stmt{init, loop}}
	}
	return loop
}

func (p *parser) brk() stmt {
	keyword := p.previous()
	if !p.insideLoop() {
		p.state.fatalError(errOnlyAllowedInsideLoop, keyword)
	}
	p.endStatement()
	return &breakStmt{
		keyword: keyword,
	}
}

func (p *parser) cont() stmt {
	keyword := p.previous()
	if !p.insideLoop() {
		p.state.fatalError(errOnlyAllowedInsideLoop, keyword)
	}
	p.endStatement()
	return &continueStmt{
		keyword: keyword,
	}
}

// condition parses a parenthesized condition
func (p *parser) condition() expr {
	p.consume(tkLeftParen, errExpectedOpenParen)
	cond := p.expression()
	p.consume(tkRightParen, errUnclosedParen)
	return cond
}

// body parses the statement controlled by KUNG, MINTRAS, BUHATA or ALANG SA,
// which may start on the next line
func (p *parser) body() stmt {
	p.skipNewlines()
	return p.statement()
}

func (p *parser) block() []stmt {
	p.consume(tkLeftBrace, errExpectedOpenBrace)
	var stmts []stmt
	for !p.check(tkRightBrace) && !p.check(tkEnd) && !p.isAtEnd() {
		if p.match(tkNewline) {
			continue
		}
		if st := p.parseStmt(); st != nil {
			stmts = append(stmts, st)
		}
	}
	p.consume(tkRightBrace, errUnclosedBrace)
	return stmts
}

func (p *parser) expression() expr {
	return p.assignment()
}

func (p *parser) assignment() expr {
	expr := p.or()

	if p.match(tkPlusEqual, tkMinusEqual, tkStarEqual, tkSlashEqual, tkPercentEqual) {
		operator := p.previous()
		value := p.assignment()

		variable, isVar := expr.(*variableExpr)
		if !isVar {
			p.state.fatalError(errInvalidAssignTarget, operator)
		}
		// a += b is evaluated as a = a + b
		simple := &token{
			token:  compoundOperators[operator.token],
			lexeme: operator.lexeme[:1],
			line:   operator.line,
			pos:    -1,
		}
		return &assignExpr{
			name: variable.name,
			value: &binaryExpr{
				left:     &variableExpr{name: variable.name},
				operator: simple,
				right:    value,
			},
		}
	}

	if p.match(tkEqual) {
		equal := p.previous()
		value := p.assignment()

		if variable, isVar := expr.(*variableExpr); isVar {
			return &assignExpr{
				name:  variable.name,
				value: value,
			}
		}

		p.state.fatalError(errInvalidAssignTarget, equal)
	}
	return expr
}

func (p *parser) or() expr {
	expr := p.and()
	for p.match(tkOr) {
		operator := p.previous()
		right := p.and()
		expr = &logicalExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) and() expr {
	expr := p.equality()
	for p.match(tkAnd) {
		operator := p.previous()
		right := p.equality()
		expr = &logicalExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) equality() expr {
	expr := p.comparison()
	for p.match(tkEqualEqual, tkNotEqual) {
		operator := p.previous()
		right := p.comparison()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) comparison() expr {
	expr := p.term()
	for p.match(tkGreater, tkGreaterEqual, tkLess, tkLessEqual) {
		operator := p.previous()
		right := p.term()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) term() expr {
	expr := p.factor()
	for p.match(tkPlus, tkMinus, tkAmpersand, tkDollar, tkEscape) {
		operator := p.previous()
		right := p.factor()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	if p.check(tkString) || p.check(tkChar) || p.check(tkIdentifier) || p.check(tkNumber) {
		p.state.fatalError(errMissingConcat, p.peekToken())
	}
	return expr
}

func (p *parser) factor() expr {
	expr := p.unary()
	for p.match(tkStar, tkSlash, tkPercent) {
		operator := p.previous()
		right := p.unary()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) unary() expr {
	if p.match(tkNot, tkMinus) {
		operator := p.previous()
		right := p.unary()
		return &unaryExpr{
			operator: operator,
			right:    right,
		}
	}
	if p.match(tkPlusPlus, tkMinusMinus) {
		operator := p.previous()
		operand := p.unary()
		variable, isVar := operand.(*variableExpr)
		if !isVar {
			p.state.fatalError(errInvalidIncDecTarget, operator)
		}
		return &incDecExpr{
			operator: operator,
			target:   variable,
			prefix:   true,
		}
	}
	return p.primary()
}

func (p *parser) primary() expr {
	if p.match(tkNumber, tkString, tkChar) {
		return &literalExpr{value: p.previous().literal}
	}
	if p.match(tkTrue) {
		return &literalExpr{value: true}
	}
	if p.match(tkNull) {
		return &literalExpr{value: nil}
	}
	if p.match(tkDollar) {
		return &literalExpr{value: "\n"}
	}
	if p.match(tkEscape) {
		return &literalExpr{value: p.previous().literal}
	}
	if p.match(tkIdentifier) {
		variable := &variableExpr{name: p.previous()}
		if p.match(tkPlusPlus, tkMinusMinus) {
			return &incDecExpr{
				operator: p.previous(),
				target:   variable,
				prefix:   false,
			}
		}
		return variable
	}
	if p.match(tkLeftParen) {
		expr := p.expression()
		p.consume(tkRightParen, errUnclosedParen)
		return &groupingExpr{expression: expr}
	}

	p.state.fatalError(errExpectedExpr, p.peekToken())
	return nil
}

func (p *parser) consume(tk tokenType, err error) *token {
	if p.check(tk) {
		return p.advance()
	}
	p.state.fatalError(err, p.peekToken())
	return nil
}

func (p *parser) advance() *token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) match(tokens ...tokenType) bool {
	for _, token := range tokens {
		if p.check(token) {
			p.current++
			return true
		}
	}
	return false
}

func (p *parser) check(token tokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().token == token
}

// lookPast matches tk after any number of blank lines, leaving the
// newlines unconsumed when tk is not there
func (p *parser) lookPast(tk tokenType) bool {
	oldCurrent := p.current
	p.skipNewlines()
	if p.match(tk) {
		return true
	}
	p.current = oldCurrent
	return false
}

func (p *parser) skipNewlines() {
	for p.match(tkNewline) {
	}
}

func (p *parser) peek() token {
	return p.state.tokens[p.current]
}

func (p *parser) peekToken() *token {
	return &p.state.tokens[p.current]
}

func (p *parser) previous() *token {
	return &p.state.tokens[p.current-1]
}

func (p *parser) isAtEnd() bool {
	return p.peek().token == tkEOF
}

func (p *parser) synchronize() {
	// Block and program ends are left for the enclosing loop to consume
	if !p.check(tkEnd) && !p.check(tkRightBrace) {
		p.advance()
	}
	for !p.isAtEnd() {
		if p.current > 0 && p.previous().token == tkNewline {
			return
		}

		switch p.peek().token {
		case tkDeclare, tkPrint, tkScan, tkIf, tkWhile, tkDo, tkFor,
			tkBreak, tkContinue, tkBlock, tkEnd, tkRightBrace:
			return
		}

		p.advance()
	}
}
