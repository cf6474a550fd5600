package token_test

import (
	"testing"

	"comform/internal/token"
)

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Invalid:   "Invalid",
		token.EOF:       "EOF",
		token.Comment:   "Comment",
		token.Newline:   "Newline",
		token.Directive: "Directive",
		token.Other:     "Other",
		token.Kind(200): "Kind(?)",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestTokenPredicates(t *testing.T) {
	c := token.Token{Kind: token.Comment, Text: "# hi", Leading: "  ", Line: 3, Col: 2}
	if !c.IsComment() || c.IsNewline() || c.Synthetic() {
		t.Fatalf("unexpected predicates for %+v", c)
	}
	if got := c.Width(8); got != 6 {
		t.Errorf("Width = %d, want 6", got)
	}
	d := token.Token{Kind: token.Directive, Text: "# noqa"}
	if d.IsComment() {
		t.Error("directive must not count as a comment")
	}
	if !d.Synthetic() {
		t.Error("token without a line must be synthetic")
	}
}

func TestClassifyComment(t *testing.T) {
	cases := []struct {
		text string
		line int
		want token.DirectiveKind
	}{
		{"#!/usr/bin/env python3", 1, token.DirectiveShebang},
		{"#!/usr/bin/env python3", 2, token.NotDirective},
		{"# -*- coding: utf-8 -*-", 1, token.DirectiveCoding},
		{"# vim: set fileencoding=latin-1 :", 2, token.DirectiveCoding},
		{"# -*- coding: utf-8 -*-", 3, token.NotDirective},
		{"# noqa: E501", 10, token.DirectivePragma},
		{"# type: ignore[attr-defined]", 10, token.DirectivePragma},
		{"# fmt: off", 10, token.DirectivePragma},
		{"#pylint: disable=foo", 10, token.DirectivePragma},
		{"# just words about types: not a pragma", 10, token.NotDirective},
		{"#", 10, token.NotDirective},
	}
	for _, tc := range cases {
		if got := token.ClassifyComment(tc.text, tc.line, token.DefaultPragmas); got != tc.want {
			t.Errorf("ClassifyComment(%q, %d) = %v, want %v", tc.text, tc.line, got, tc.want)
		}
	}
	if got := token.ClassifyComment("# noqa", 5, nil); got != token.NotDirective {
		t.Errorf("no pragmas configured: got %v", got)
	}
}
