// Package driver runs the comment reflow pipeline over files.
//
// For each file: read, lex, group comments, reflow each group, splice the
// results back, check that code is unchanged, run the code formatter,
// restore line endings and BOM, write. FormatPaths fans files out over a
// bounded worker pool and reports results in path order.
package driver
