package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	styleable "github.com/goliatone/go-styleable"
	"github.com/goliatone/go-styleable/stylesheet"
)

// originDefault labels keys that no origin holds a value for.
const originDefault = "default"

// Output formats for resolve.
const (
	formatTable  = "table"
	formatJSON   = "json"
	formatInline = "inline"
)

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		in     inputs
		format string
		origin string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the styled value of every figure property",
		Long: `Print the styled value of every figure property.

User values (--set) are written first, then the stylesheet documents (--sheet)
are applied and finally the inline style (--inline). For every key the
command prints the value of the strongest origin that holds one, or the key's
default when none does.

With --origin the output is restricted to one origin (user-agent, user,
author, inline).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runResolve(cmd.Context(), cmd.OutOrStdout(), in, format, origin)
		},
	}

	in.bind(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, json, inline")
	cmd.Flags().StringVar(&origin, "origin", "", "only print values held at this origin")

	return cmd
}

// resolvedEntry is the JSON form of one resolved key.
type resolvedEntry struct {
	Value  string `json:"value"`
	Origin string `json:"origin"`
	Null   bool   `json:"null,omitempty"`
}

func (c *CLI) runResolve(ctx context.Context, w io.Writer, in inputs, format, originText string) error {
	origin, err := styleable.ParseOrigin(originText)
	if err != nil {
		return err
	}
	fig, err := c.build(ctx, in)
	if err != nil {
		return err
	}

	entries, err := resolveEntries(fig.bean, origin)
	if err != nil {
		return err
	}

	switch format {
	case formatJSON:
		payload, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		fmt.Fprintln(w, string(payload))
	case formatInline:
		if origin == styleable.OriginResolved {
			return fmt.Errorf("inline output requires --origin")
		}
		style, err := stylesheet.FormatInline(fig.bean, origin)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, style)
	case formatTable, "":
		printTitle(w, fig.bean.String())
		rows := make([]row, 0, len(entries))
		for _, key := range fig.bean.Type().Registry().Keys() {
			if entry, ok := entries[key.Name()]; ok {
				rows = append(rows, row{name: key.Name(), value: entry.Value, origin: entry.Origin})
			}
		}
		printRows(w, rows)
		printSuccess(w, "%d rules matched, %d declarations applied", len(fig.report.Matched), fig.report.Applied)
		for _, matched := range fig.report.Matched {
			printDetail(w, "%s", matched)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

// resolveEntries formats the value of every key. For OriginResolved every key
// is listed, falling back to defaults; for a concrete origin only the keys it
// holds are.
func resolveEntries(bean *styleable.Bean, origin styleable.Origin) (map[string]resolvedEntry, error) {
	out := map[string]resolvedEntry{}
	for _, key := range bean.Type().Registry().Keys() {
		entry := resolvedEntry{Origin: originDefault}
		var value any
		switch {
		case origin != styleable.OriginResolved:
			if !bean.ContainsKey(origin, key) {
				continue
			}
			value = bean.GetStyledAt(origin, key)
			entry.Origin = origin.String()
		default:
			value = bean.GetStyled(key)
			if winner, ok := bean.Store().ResolvedOrigin(key); ok {
				entry.Origin = winner.String()
			}
		}
		if value == nil {
			entry.Null = true
		}
		text, err := styleable.FormatValue(key, value)
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", key.Name(), err)
		}
		entry.Value = text
		out[key.Name()] = entry
	}
	return out, nil
}
