package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	styleable "github.com/goliatone/go-styleable"
	"github.com/goliatone/go-styleable/schema/openapi"
)

// schemaCommand creates the schema command.
func (c *CLI) schemaCommand() *cobra.Command {
	var (
		kinds  []string
		prefix string
		title  string
		origin string
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print an OpenAPI document describing the figure properties",
		Long: `Print an OpenAPI document describing the figure properties.

Every kind becomes one component schema and one operation that writes the
values of a figure of that kind at --origin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := styleable.ParseOrigin(origin)
			if err != nil {
				return err
			}
			return runSchema(cmd.OutOrStdout(), kinds, prefix, title, target)
		},
	}
	cmd.Flags().StringSliceVarP(&kinds, "kind", "k", []string{"rect"}, "figure kinds to describe")
	cmd.Flags().StringVar(&prefix, "path-prefix", "/styles", "path prefix of the generated operations")
	cmd.Flags().StringVar(&title, "title", "Figure Styles", "document title")
	cmd.Flags().StringVar(&origin, "origin", "user", "origin the operations write at")

	return cmd
}

func runSchema(w io.Writer, kinds []string, prefix, title string, origin styleable.Origin) error {
	types := make([]*styleable.BeanType, 0, len(kinds))
	for _, kind := range kinds {
		types = append(types, figureType(kind))
	}
	doc, err := openapi.Generate(types,
		openapi.WithInfo(title, "1.0.0"),
		openapi.WithOperation(prefix, "put", openapi.WithOperationOrigin(origin)),
	)
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	fmt.Fprintln(w, string(payload))
	return nil
}
