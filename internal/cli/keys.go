package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	styleable "github.com/goliatone/go-styleable"
)

// keysCommand creates the keys command.
func (c *CLI) keysCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the figure properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runKeys(cmd.OutOrStdout(), figureType(kind))
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "rect", "figure kind")

	return cmd
}

func runKeys(w io.Writer, t *styleable.BeanType) error {
	printTitle(w, t.Name())
	rows := make([]row, 0, t.Registry().Len())
	for _, desc := range t.Describe() {
		key, ok := t.Registry().Key(desc.Index)
		if !ok {
			continue
		}
		def, err := styleable.FormatValue(key, desc.Default)
		if err != nil {
			return err
		}
		rows = append(rows, row{name: fmt.Sprintf("%d %s", desc.Index, desc.Name), value: def, origin: desc.Type})
	}
	printRows(w, rows)
	return nil
}
