package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// FmtOutput is the JSON result of magiql fmt.
type FmtOutput struct {
	File    string `json:"file"`
	Changed bool   `json:"changed"`
	Text    string `json:"text,omitempty"`
}

func (a *app) newFmtCmd() *cobra.Command {
	var check, write bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print a document after a round trip through the store",
		Long: `Decompose a GraphQL document into the store, reconstruct it and print it.
Reads stdin when no file (or "-") is given.`,
		Example: `  # Format to stdout
  magiql fmt query.graphql

  # Fail when the file is not formatted
  magiql fmt --check query.graphql

  # Rewrite the file in place
  magiql fmt -w query.graphql`,
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
			text, err := sess.Text()
			if err != nil {
				return err
			}

			result := FmtOutput{File: src.name, Changed: text != src.text}
			switch {
			case check:
				err := a.printResult(result, func() error {
					if result.Changed {
						fmt.Fprintln(a.stdout, src.name)
					}
					return nil
				})
				if err != nil {
					return err
				}
				if result.Changed {
					return ErrNotFormatted
				}
				return nil

			case write && !src.isStdin():
				if result.Changed {
					if err := a.write(src, sess); err != nil {
						return err
					}
				}
				return a.printResult(result, func() error { return nil })
			}

			result.Text = text
			return a.printResult(result, func() error {
				_, err := io.WriteString(a.stdout, text)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "List the file and fail if it is not formatted")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	return cmd
}
