package internal

import "fmt"

type binding struct {
	value    interface{}
	declared dataType
}

type scope struct {
	// parent is the index of the enclosing scope, -1 for the root
	parent int
	values map[string]*binding
}

// env is an arena of scopes. Scopes are pushed on block entry and popped on
// block exit, so the arena always holds exactly the chain of live scopes and
// current is its last index.
type env struct {
	scopes  []scope
	current int
}

func newEnv() *env {
	return &env{
		scopes:  []scope{{parent: -1, values: make(map[string]*binding)}},
		current: 0,
	}
}

func (e *env) push() {
	e.scopes = append(e.scopes, scope{parent: e.current, values: make(map[string]*binding)})
	e.current = len(e.scopes) - 1
}

func (e *env) pop() {
	if e.current == 0 {
		return
	}
	parent := e.scopes[e.current].parent
	e.scopes = e.scopes[:e.current]
	e.current = parent
}

func (e *env) define(name string, value interface{}, declared dataType) {
	e.scopes[e.current].values[name] = &binding{value: value, declared: declared}
}

func (e *env) lookup(name string) *binding {
	for i := e.current; i >= 0; i = e.scopes[i].parent {
		if b, ok := e.scopes[i].values[name]; ok {
			return b
		}
	}
	return nil
}

func (e *env) get(name *token) (interface{}, error) {
	if b := e.lookup(name.lexeme); b != nil {
		return b.value, nil
	}
	return nil, undefinedVar(name)
}

func (e *env) assign(name *token, value interface{}) (interface{}, error) {
	b := e.lookup(name.lexeme)
	if b == nil {
		return nil, undefinedVar(name)
	}
	coerced, err := coerce(b.declared, value)
	if err != nil {
		return nil, &runtimeError{token: name, err: err}
	}
	b.value = coerced
	return coerced, nil
}

// assignInput stores text read from the user, parsed per the declared type
func (e *env) assignInput(name *token, text string) (interface{}, error) {
	b := e.lookup(name.lexeme)
	if b == nil {
		return nil, undefinedVar(name)
	}
	value, err := parseInput(b.declared, text)
	if err != nil {
		return nil, &runtimeError{token: name, err: err}
	}
	b.value = value
	return value, nil
}

func (e *env) existsInAnyScope(name string) bool {
	return e.lookup(name) != nil
}

func undefinedVar(name *token) error {
	return &runtimeError{
		token: name,
		err:   fmt.Errorf("%w '%s'.", errUndefinedVar, name.lexeme),
	}
}
