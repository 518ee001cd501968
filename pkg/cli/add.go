package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nksaraf/magiql/pkg/cli/internal/flags"
	"github.com/nksaraf/magiql/pkg/cli/internal/parse"
	"github.com/nksaraf/magiql/pkg/editor"
	"github.com/nksaraf/magiql/pkg/gqlast"
)

func (a *app) newAddCmd() *cobra.Command {
	var (
		write     bool
		alias     string
		arguments flags.StringSlice
	)

	cmd := &cobra.Command{
		Use:   "add <file> <path> <field>",
		Short: "Add a field or fragment spread to a selection set",
		Long: `Append a field to the selection set at path. Path may also name the field,
operation or fragment owning the selection set; a leaf field gains a new
selection set. A field written as "...Name" adds a fragment spread.

Arguments take GraphQL input value literals and replace an existing argument
of the same name.`,
		Example: `  magiql add query.graphql Foo.definitions.0.selectionSet.selections.0 email
  magiql add -w query.graphql Foo.definitions.0 user --arg id=4 --arg 'where={active: true}'
  magiql add query.graphql Foo.definitions.0 ...UserParts`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parse.Arguments(arguments)
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

			setPath, err := selectionSetPath(sess, args[1])
			if err != nil {
				return err
			}
			path, err := sess.AddSelection(setPath, newSelection(args[2], alias))
			if err != nil {
				return err
			}
			for _, arg := range parsed {
				if _, err := sess.AddArgument(path, arg.Name, arg.Value); err != nil {
					return err
				}
			}
			return a.finishEdit(src, sess, []string{path}, write)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	cmd.Flags().StringVar(&alias, "alias", "", "Alias for the new field")
	cmd.Flags().Var(&arguments, "arg", "Field argument as name=value (repeatable)")
	return cmd
}

func newSelection(field, alias string) gqlast.Selection {
	if name, ok := strings.CutPrefix(field, "..."); ok {
		return &gqlast.FragmentSpread{Name: gqlast.NewName(name)}
	}
	f := gqlast.NewField(field)
	if alias != "" {
		f.Alias = gqlast.NewName(alias)
	}
	return f
}

// selectionSetPath resolves a node that owns a selection set to the path of
// that set.
func selectionSetPath(sess *editor.Session, path string) (string, error) {
	kind, err := kindOf(sess, path)
	if err != nil {
		return "", err
	}
	switch kind {
	case gqlast.KindField, gqlast.KindOperationDefinition, gqlast.KindInlineFragment, gqlast.KindFragmentDefinition:
		return gqlast.Join(path, gqlast.KeySelectionSet), nil
	}
	return path, nil
}
