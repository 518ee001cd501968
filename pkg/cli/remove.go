package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/nksaraf/magiql/pkg/editor"
)

// EditOutput is the JSON result of the editing commands.
type EditOutput struct {
	File    string   `json:"file"`
	Paths   []string `json:"paths"`
	Written bool     `json:"written"`
	Text    string   `json:"text,omitempty"`
}

func (a *app) newRemoveCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "remove <file> <path>...",
		Short: "Remove selections, arguments or other list items from a document",
		Long: `Remove the nodes at the given paths from the lists that hold them. Paths are
the ones printed by magiql tree. Use "-" as the file to read stdin.`,
		Example: `  magiql remove query.graphql Foo.definitions.0.selectionSet.selections.0.selectionSet.selections.1
  magiql remove -w query.graphql Foo.definitions.0.selectionSet.selections.0.arguments.0`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.read(cmd.InOrStdin(), args[:1])
			if err != nil {
				return err
			}
			sess, err := a.open(src)
			if err != nil {
				return err
			}
			paths := args[1:]
			for _, path := range paths {
				if err := sess.Remove(path); err != nil {
					return err
				}
			}
			return a.finishEdit(src, sess, paths, write)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	return cmd
}

// finishEdit writes or prints the edited document and reports the touched
// paths.
func (a *app) finishEdit(src source, sess *editor.Session, paths []string, write bool) error {
	result := EditOutput{File: src.name, Paths: paths}
	text, err := sess.Text()
	if err != nil {
		return err
	}

	if write && !src.isStdin() {
		if err := a.write(src, sess); err != nil {
			return err
		}
		result.Written = true
		return a.printResult(result, func() error {
			for _, p := range paths {
				if _, err := io.WriteString(a.stdout, p+"\n"); err != nil {
					return err
				}
			}
			return nil
		})
	}

	result.Text = text
	return a.printResult(result, func() error {
		_, err := io.WriteString(a.stdout, text)
		return err
	})
}
