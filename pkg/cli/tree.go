package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nksaraf/magiql/pkg/cli/internal/output"
	"github.com/nksaraf/magiql/pkg/editor"
	"github.com/nksaraf/magiql/pkg/gqlast"
)

func (a *app) newTreeCmd() *cobra.Command {
	var match, where string
	var all bool

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "List the node paths of a document",
		Long: `List every node the store holds for a document, indented by depth. Nodes
that are not part of the printed document are dimmed on a terminal and marked
"(unselected)" otherwise.

--match takes a glob over dot paths ("*" is one segment, "**" any number).
--where takes a boolean expression over path, parentPath, kind, isSelected,
name and depth.`,
		Example: `  # All fields
  magiql tree query.graphql --where 'kind == "Field"'

  # Direct children of the first operation's selection set
  magiql tree query.graphql --match 'Foo.definitions.0.selectionSet.selections.*'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.read(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			sess, err := a.open(src)
			if err != nil {
				return err
			}
			if where == "" && !all {
				where = `kind != "Name"`
			}
			nodes, err := selectNodes(sess, match, where)
			if err != nil {
				return err
			}

			return a.printResult(nodes, func() error {
				color := output.IsTerminal(a.stdout)
				for _, n := range nodes {
					line := output.Indent(n.Depth) + string(n.Kind)
					if n.Name != "" {
						line += " " + n.Name
					}
					line += "  " + n.Path
					if !n.IsSelected {
						if !color {
							line += " (unselected)"
						}
						line = output.Dim(line, color)
					}
					fmt.Fprintln(a.stdout, line)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&match, "match", "", "Only list nodes whose path matches this glob")
	cmd.Flags().StringVar(&where, "where", "", "Only list nodes for which this expression holds")
	cmd.Flags().BoolVar(&all, "all", false, "Include Name nodes")
	return cmd
}

// selectNodes lists the nodes of sess that pass both the glob and the
// expression. Empty arguments select everything.
func selectNodes(sess *editor.Session, match, where string) ([]editor.NodeInfo, error) {
	var (
		nodes []editor.NodeInfo
		err   error
	)
	if match != "" {
		nodes, err = sess.Match(match)
	} else {
		nodes, err = sess.Nodes()
	}
	if err != nil || where == "" {
		return nodes, err
	}

	filtered, err := sess.Filter(where)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool, len(filtered))
	for _, n := range filtered {
		keep[n.Path] = true
	}
	out := make([]editor.NodeInfo, 0, len(filtered))
	for _, n := range nodes {
		if keep[n.Path] {
			out = append(out, n)
		}
	}
	return out, nil
}

// kindOf reports the kind of the selected node at path, or "" when there is
// none.
func kindOf(sess *editor.Session, path string) (gqlast.Kind, error) {
	n, err := sess.Node(path)
	if err != nil || gqlast.IsNil(n) {
		return "", err
	}
	return n.Kind(), nil
}
