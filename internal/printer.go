package internal

import (
	"fmt"
	"strings"
)

// PrintTree parses source and renders each statement as an s-expression
func PrintTree(source string, reporter Reporter) (string, bool) {
	state := newInterpreterState(source, reporter, nil)
	if !frontend(state) {
		return "", false
	}
	out := ""
	for _, st := range state.stmts {
		out += stmtString(st) + "\n"
	}
	return out, true
}

func stmtString(s stmt) string {
	switch st := s.(type) {
	case *exprStmt:
		return exprString(st.expression)
	case *printStmt:
		return fmt.Sprintf("(IPAKITA %s)", exprString(st.expression))
	case *scanStmt:
		names := make([]string, len(st.names))
		for i, name := range st.names {
			names[i] = name.lexeme
		}
		return "(DAWAT " + strings.Join(names, " ") + ")"
	case *multiVarStmt:
		out := "(MUGNA " + st.declared.String()
		for i, name := range st.names {
			if init := st.initializers[i]; init != nil {
				out += fmt.Sprintf(" (%s %s)", name.lexeme, exprString(init))
			} else {
				out += " " + name.lexeme
			}
		}
		return out + ")"
	case *blockStmt:
		out := "(PUNDOK"
		for _, inner := range st.stmts {
			out += " " + stmtString(inner)
		}
		return out + ")"
	case *ifStmt:
		out := fmt.Sprintf("(KUNG %s %s", exprString(st.condition), stmtString(st.thenBranch))
		for _, elif := range st.elifs {
			out += fmt.Sprintf(" (KUNG PA %s %s)", exprString(elif.condition), stmtString(elif.body))
		}
		if st.elseBranch != nil {
			out += fmt.Sprintf(" (KUNG WALA %s)", stmtString(st.elseBranch))
		}
		return out + ")"
	case *whileStmt:
		return fmt.Sprintf("(MINTRAS %s %s)", exprString(st.condition), stmtString(st.body))
	case *doWhileStmt:
		return fmt.Sprintf("(BUHATA %s %s)", stmtString(st.body), exprString(st.condition))
	case *breakStmt:
		return "(HUNONG)"
	case *continueStmt:
		return "(PADAYON)"
	}
	return ""
}

func exprString(e expr) string {
	switch ex := e.(type) {
	case *literalExpr:
		switch value := ex.value.(type) {
		case string:
			return fmt.Sprintf("%q", value)
		case rune:
			return "'" + string(value) + "'"
		}
		return stringify(ex.value)
	case *groupingExpr:
		return exprString(ex.expression)
	case *variableExpr:
		return ex.name.lexeme
	case *assignExpr:
		return fmt.Sprintf("(= %s %s)", ex.name.lexeme, exprString(ex.value))
	case *unaryExpr:
		return fmt.Sprintf("(%s %s)", ex.operator.lexeme, exprString(ex.right))
	case *binaryExpr:
		return fmt.Sprintf("(%s %s %s)", ex.operator.lexeme, exprString(ex.left), exprString(ex.right))
	case *logicalExpr:
		return fmt.Sprintf("(%s %s %s)", ex.operator.lexeme, exprString(ex.left), exprString(ex.right))
	case *incDecExpr:
		if ex.prefix {
			return fmt.Sprintf("(%s %s)", ex.operator.lexeme, ex.target.name.lexeme)
		}
		return fmt.Sprintf("(%s %s)", ex.target.name.lexeme, ex.operator.lexeme)
	}
	return ""
}
