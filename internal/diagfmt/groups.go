package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"comform/internal/comment"
	"comform/internal/format"
)

// GroupOutput describes one comment group and how it would be laid out.
type GroupOutput struct {
	Start              int    `json:"start"`
	Tokens             int    `json:"tokens"`
	Line               int    `json:"line"`
	Rule               string `json:"rule"`
	InitialColumn      int    `json:"initial_column"`
	ContinuationColumn int    `json:"continuation_column"`
	Text               string `json:"text"`
	Reflowed           string `json:"reflowed"`
}

// BuildGroupsOutput plans and reflows every group.
func BuildGroupsOutput(groups []comment.Group, opts comment.Options) []GroupOutput {
	out := make([]GroupOutput, 0, len(groups))
	for _, g := range groups {
		layout := comment.Plan(g, opts)
		out = append(out, GroupOutput{
			Start:              g.Start,
			Tokens:             g.Len(),
			Line:               g.Tokens[0].Line,
			Rule:               layout.Rule.String(),
			InitialColumn:      layout.InitialColumn,
			ContinuationColumn: layout.ContinuationColumn,
			Text:               g.Text(),
			Reflowed:           string(format.Print(comment.Reflow(g, opts))),
		})
	}
	return out
}

// FormatGroupsPretty prints each group header followed by its reflowed text.
func FormatGroupsPretty(w io.Writer, groups []comment.Group, opts comment.Options) error {
	for i, g := range BuildGroupsOutput(groups, opts) {
		if _, err := fmt.Fprintf(w, "group %d: line %d, %d tokens, %s, col %d -> %d\n",
			i+1, g.Line, g.Tokens, g.Rule, g.InitialColumn, g.ContinuationColumn); err != nil {
			return err
		}
		fmt.Fprintf(w, "  text: %q\n", g.Text)
		fmt.Fprintf(w, "%s", indentBlock(g.Reflowed, "  | "))
	}
	return nil
}

// FormatGroupsJSON prints the groups as an indented JSON array.
func FormatGroupsJSON(w io.Writer, groups []comment.Group, opts comment.Options) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildGroupsOutput(groups, opts))
}

func indentBlock(s, prefix string) string {
	if s == "" {
		return ""
	}
	out := make([]byte, 0, len(s)+len(prefix)*4)
	atStart := true
	for i := 0; i < len(s); i++ {
		if atStart {
			out = append(out, prefix...)
			atStart = false
		}
		out = append(out, s[i])
		if s[i] == '\n' {
			atStart = true
		}
	}
	if !atStart {
		out = append(out, '\n')
	}
	return string(out)
}
