// Package fuzztests houses Go fuzz harnesses for the comment rewriting
// pipeline (source -> lexer -> grouper -> reflow -> splice). They smoke test
// robustness on arbitrary input and check the invariants in internal/testkit.
//
// The seed corpus runs with plain go test; go test -fuzz explores further.
package fuzztests
