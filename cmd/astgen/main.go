// Command astgen writes the expression and statement node families of the
// interpreter. Each node is a struct implementing a closed marker interface so
// the interpreter can switch over the variants exhaustively.
//
// Usage: go run ./cmd/astgen Expr > internal/expr.go
package main

import (
	"fmt"
	"go/format"
	"os"
	"strings"
)

var nodes = map[string][]string{
	"Expr": {
		"Literal: value interface{}",
		"Grouping: expression expr",
		"Unary: operator *token, right expr",
		"Binary: left expr, operator *token, right expr",
		"Logical: left expr, operator *token, right expr",
		"Variable: name *token",
		"Assign: name *token, value expr",
		"IncDec: operator *token, target *variableExpr, prefix bool",
	},
	"Stmt": {
		"Expr: expression expr",
		"Print: keyword *token, expression expr",
		"MultiVar: keyword *token, names []*token, initializers []expr, declared dataType",
		"Block: stmts []stmt",
		"If: keyword *token, condition expr, thenBranch stmt, elifs []*elifBranch, elseBranch stmt",
		"While: keyword *token, condition expr, body stmt",
		"DoWhile: keyword *token, body stmt, condition expr",
		"Break: keyword *token",
		"Continue: keyword *token",
		"Scan: keyword *token, names []*token",
	},
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: astgen Expr|Stmt")
		os.Exit(64)
	}
	types, ok := nodes[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "astgen: unknown node family %q\n", os.Args[1])
		os.Exit(64)
	}
	out, err := format.Source([]byte(generateAst(os.Args[1], types)))
	if err != nil {
		fmt.Fprintln(os.Stderr, "astgen:", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}

func generateAst(baseName string, types []string) string {
	base := strings.ToLower(baseName)
	out := "// Code generated by cmd/astgen; DO NOT EDIT.\n\n"
	out += "package internal\n\n"

	// Start base interface
	out += "type " + base + " interface {\n"
	out += "\t" + base + "Node()\n"
	out += "}\n\n"
	// End base interface

	// Start structs
	for _, t := range types {
		typeDef := strings.SplitN(t, ":", 2)
		structName := strings.TrimSpace(typeDef[0])
		structFields := strings.TrimSpace(typeDef[1])
		out += generateType(baseName, structName, structFields)
	}
	// End structs

	return out
}

func generateType(baseName, name, fields string) string {
	base := strings.ToLower(baseName)
	structName := strings.ToLower(string(name[0])) + name[1:] + baseName

	// Start Structure Definition
	out := "type " + structName + " struct {\n"
	for _, field := range strings.Split(fields, ",") {
		out += "\t" + strings.TrimSpace(field) + "\n"
	}
	out += "}\n\n"
	// End Structure Definition

	// Start Method Definition
	out += "func (*" + structName + ") " + base + "Node() {}\n\n"
	// End Method Definition

	return out
}
