// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query builds PubMed boolean search expressions. Queries are
// assembled as a small expression tree and serialized once by a single
// renderer, which owns all quoting and escaping for the target grammar.
package query

import "strings"

// Expr is one node of a boolean search expression.
type Expr interface {
	render(b *strings.Builder)
}

// term is a field-tagged search term, e.g. `Aspirin[Title/Abstract]`.
type term struct {
	text   string
	field  string
	quoted bool
}

// Term returns a field-tagged term. The renderer quotes it only when the
// text contains characters the grammar would otherwise misparse.
func Term(text, field string) Expr {
	return &term{text: text, field: field}
}

// Phrase returns a field-tagged term that is always quoted, as publication
// type filters require.
func Phrase(text, field string) Expr {
	return &term{text: text, field: field, quoted: true}
}

func (t *term) render(b *strings.Builder) {
	text := escapeTerm(t.text)
	if t.quoted || needsQuoting(text) {
		b.WriteByte('"')
		b.WriteString(text)
		b.WriteByte('"')
	} else {
		b.WriteString(text)
	}
	if t.field != "" {
		b.WriteByte('[')
		b.WriteString(t.field)
		b.WriteByte(']')
	}
}

// escapeTerm strips characters the PubMed grammar cannot carry inside a
// term. Double quotes cannot be escaped in the grammar, so they are removed.
func escapeTerm(s string) string {
	s = strings.ReplaceAll(s, `"`, "")
	return strings.TrimSpace(s)
}

// needsQuoting reports whether the term text contains grammar
// metacharacters and must be quoted to stay a single term.
func needsQuoting(s string) bool {
	return strings.ContainsAny(s, "()[]:/")
}

// raw is a pre-rendered fragment, used for the date-range clause whose
// syntax the term grammar cannot express.
type raw struct {
	s string
}

// Raw returns an expression that renders as-is.
func Raw(s string) Expr {
	return &raw{s: s}
}

func (r *raw) render(b *strings.Builder) {
	b.WriteString(r.s)
}

// boolExpr joins operands with AND or OR.
type boolExpr struct {
	op       string
	operands []Expr
}

// And joins expressions with AND. Nil operands are dropped; a single
// remaining operand is returned unwrapped.
func And(exprs ...Expr) Expr {
	return combine("AND", exprs)
}

// Or joins expressions with OR, with the same nil and single-operand rules.
func Or(exprs ...Expr) Expr {
	return combine("OR", exprs)
}

func combine(op string, exprs []Expr) Expr {
	var kept []Expr
	for _, e := range exprs {
		if e != nil {
			kept = append(kept, e)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return &boolExpr{op: op, operands: kept}
}

func (e *boolExpr) render(b *strings.Builder) {
	b.WriteByte('(')
	for i, op := range e.operands {
		if i > 0 {
			b.WriteByte(' ')
			b.WriteString(e.op)
			b.WriteByte(' ')
		}
		op.render(b)
	}
	b.WriteByte(')')
}

// Render serializes an expression tree into a PubMed query string.
func Render(e Expr) string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	e.render(&b)
	return b.String()
}
