// Package diag defines the diagnostic model and the error taxonomy shared by
// the lexer, the driver and the CLI.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code: compact numeric identifier (see codes.go) with stable string form.
//   - Message: human oriented text; keep it short and actionable.
//   - Primary span: the canonical source.Span pointing to the issue.
//   - Notes: optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. The lexer
// builds a ReportBuilder via ReportError and calls Emit. diag.BagReporter
// aggregates diagnostics into a Bag, which supports sorting and deduplication.
//
// # Errors
//
// errors.go holds the error values that cross package boundaries:
// ValidationError (bad input path, exit status 2), TokenizeError (a Bag with
// errors, rendered path:line:col: message) and ErrInternal (broken rewrite
// invariants). Callers inspect them with errors.Is and errors.As.
package diag
