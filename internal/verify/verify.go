// Package verify checks that a comment rewrite left the code of a Python file
// alone. Both versions are parsed with tree-sitter and their non-comment
// leaves are compared.
package verify

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrNotEquivalent is returned when the rewrite touched code.
var ErrNotEquivalent = errors.New("rewrite is not code-equivalent")

// Leaf is one terminal node of the syntax tree.
type Leaf struct {
	Type string
	Text string
	Line int // 1-based
}

// Leaves parses src and returns its terminal nodes in source order,
// comments excluded.
func Leaves(ctx context.Context, src []byte) ([]Leaf, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer tree.Close()

	var out []Leaf
	c := sitter.NewTreeCursor(tree.RootNode())
	defer c.Close()
	for {
		n := c.CurrentNode()
		if n.ChildCount() == 0 && n.Type() != "comment" {
			out = append(out, Leaf{
				Type: n.Type(),
				Text: n.Content(src),
				Line: int(n.StartPoint().Row) + 1,
			})
		}
		if c.GoToFirstChild() {
			continue
		}
		for !c.GoToNextSibling() {
			if !c.GoToParent() {
				return out, nil
			}
		}
	}
}

// Equivalent returns nil when before and after have the same code leaves,
// and an error wrapping ErrNotEquivalent that names the first difference
// otherwise.
func Equivalent(ctx context.Context, before, after []byte) error {
	a, err := Leaves(ctx, before)
	if err != nil {
		return err
	}
	b, err := Leaves(ctx, after)
	if err != nil {
		return err
	}
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i].Type != b[i].Type || a[i].Text != b[i].Text {
			return fmt.Errorf("%w: line %d: %s %q became %s %q",
				ErrNotEquivalent, b[i].Line, a[i].Type, a[i].Text, b[i].Type, b[i].Text)
		}
	}
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d code tokens became %d", ErrNotEquivalent, len(a), len(b))
	}
	return nil
}
