package graph

import "strings"

// Builder assembles a Cypher query from a fixed head and optional predicate
// clauses, each bound to a named parameter. Values never end up in the query
// text itself.
type Builder struct {
	head   string
	preds  []string
	tail   []string
	params map[string]any
}

func NewQuery(head string) *Builder {
	return &Builder{
		head:   strings.TrimSpace(head),
		params: map[string]any{},
	}
}

// Param binds a named parameter without adding a clause.
func (b *Builder) Param(name string, value any) *Builder {
	b.params[name] = value
	return b
}

// Where appends an AND predicate bound to one named parameter.
func (b *Builder) Where(clause, name string, value any) *Builder {
	b.preds = append(b.preds, strings.TrimSpace(clause))
	b.params[name] = value
	return b
}

// WhereIf is Where guarded by cond, for optional filters.
func (b *Builder) WhereIf(cond bool, clause, name string, value any) *Builder {
	if !cond {
		return b
	}
	return b.Where(clause, name, value)
}

// Tail appends a trailing fragment (RETURN, ORDER BY, LIMIT).
func (b *Builder) Tail(fragment string) *Builder {
	b.tail = append(b.tail, strings.TrimSpace(fragment))
	return b
}

func (b *Builder) Build() (string, map[string]any) {
	var sb strings.Builder
	sb.WriteString(b.head)
	for _, p := range b.preds {
		sb.WriteString("\n  AND ")
		sb.WriteString(p)
	}
	for _, t := range b.tail {
		sb.WriteString("\n")
		sb.WriteString(t)
	}
	return sb.String(), b.params
}
