package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nksaraf/magiql/pkg/cli/internal/output"
)

func (a *app) newFieldsCmd() *cobra.Command {
	var validate bool

	cmd := &cobra.Command{
		Use:   "fields <file> <path>",
		Short: "List the schema fields that can be selected at a path",
		Long: `Resolve the GraphQL type at path against the configured schema and list its
fields, marking the ones already selected. Abstract types also list one
inline fragment per possible type.`,
		Example: `  magiql fields --schema schema.graphql query.graphql Foo.definitions.0
  magiql fields --json query.graphql Foo.definitions.0.selectionSet.selections.0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSchema()
			if err != nil {
				return err
			}
			src, err := a.read(cmd.InOrStdin(), args[:1])
			if err != nil {
				return err
			}
			sess, err := a.open(src)
			if err != nil {
				return err
			}
			doc, err := sess.Reconstruct()
			if err != nil {
				return err
			}
			if validate {
				if err := s.ValidateDocument(doc); err != nil {
					return err
				}
			}

			suggestions, err := s.Suggest(doc, args[1])
			if err != nil {
				return err
			}

			return a.printResult(suggestions, func() error {
				tw := output.Table(a.stdout)
				fmt.Fprintln(tw, "\tNAME\tTYPE\tARGUMENTS")
				for _, sg := range suggestions {
					mark := ""
					if sg.Selected {
						mark = "*"
					}
					name, typ := sg.Name, sg.Type
					if sg.Fragment {
						name, typ = "... on "+sg.Name, "fragment"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, name, typ, strings.Join(sg.Arguments, ", "))
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", false, "Validate the document against the schema first")
	return cmd
}
