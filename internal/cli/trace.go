package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	styleable "github.com/goliatone/go-styleable"
)

// traceCommand creates the trace command.
func (c *CLI) traceCommand() *cobra.Command {
	var (
		in     inputs
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "trace <key>",
		Short: "Show what every origin holds for one property",
		Long: `Show what every origin holds for one property.

Origins are listed strongest first. The origin marked with an arrow provides
the styled value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTrace(cmd.Context(), cmd.OutOrStdout(), in, args[0], asJSON)
		},
	}

	in.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the trace as JSON")

	return cmd
}

func (c *CLI) runTrace(ctx context.Context, w io.Writer, in inputs, name string, asJSON bool) error {
	fig, err := c.build(ctx, in)
	if err != nil {
		return err
	}
	key, err := lookupKey(fig.bean, name)
	if err != nil {
		return err
	}
	trace := fig.bean.Trace(key)

	if asJSON {
		payload, err := trace.ToJSON()
		if err != nil {
			return fmt.Errorf("encode trace: %w", err)
		}
		fmt.Fprintln(w, string(payload))
		return nil
	}

	printTitle(w, fmt.Sprintf("%s %s", fig.bean.String(), key.Name()))
	rows := make([]row, 0, len(trace.Layers)+1)
	for _, layer := range trace.Layers {
		label := layer.State.String()
		if layer.State == styleable.SlotValue {
			text, err := styleable.FormatValue(key, layer.Value)
			if err != nil {
				return err
			}
			label = text
		}
		marker := ""
		if trace.Found && layer.Origin == trace.Origin {
			marker = iconArrow
		}
		rows = append(rows, row{name: layer.Origin.String(), value: label, origin: marker})
	}
	def, err := styleable.FormatValue(key, trace.Default)
	if err != nil {
		return err
	}
	rows = append(rows, row{name: originDefault, value: def, origin: originDefault})
	printRows(w, rows)
	return nil
}
