package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nksaraf/magiql/pkg/cliconfig"
	"github.com/nksaraf/magiql/pkg/editor"
	"github.com/nksaraf/magiql/pkg/gqlast"
	"github.com/nksaraf/magiql/pkg/schema"
)

// stdinName is the file argument that reads from standard input.
const stdinName = "-"

// source is a document read from a file or stdin.
type source struct {
	name string
	text string
}

func (s source) isStdin() bool {
	return s.name == stdinName
}

func (a *app) read(cmdIn io.Reader, args []string) (source, error) {
	if len(args) == 0 || args[0] == stdinName {
		data, err := io.ReadAll(cmdIn)
		if err != nil {
			return source{}, fmt.Errorf("read stdin: %w", err)
		}
		return source{name: stdinName, text: string(data)}, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return source{}, err
	}
	return source{name: args[0], text: string(data)}, nil
}

// open decomposes src into a new session.
func (a *app) open(src source) (*editor.Session, error) {
	if strings.TrimSpace(src.text) == "" {
		return nil, ErrEmptyInput
	}
	root, err := a.rootFor(src.text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.name, err)
	}
	sess := editor.New(root,
		editor.WithLogger(a.logger.With("file", src.name)),
		editor.WithIndent(a.cfg.Indent),
	)
	if err := sess.SetText(src.text); err != nil {
		return nil, fmt.Errorf("%s: %w", src.name, err)
	}
	return sess, nil
}

// rootFor picks the configured root, else the name of the first definition.
func (a *app) rootFor(text string) (string, error) {
	if a.cfg.Root != "" {
		return a.cfg.Root, nil
	}
	doc, err := gqlast.Parse(text, cliconfig.DefaultRoot)
	if err != nil {
		return "", err
	}
	if len(doc.Definitions) > 0 {
		switch d := doc.Definitions[0].(type) {
		case *gqlast.OperationDefinition:
			if d.Name != nil && d.Name.Value != "" {
				return d.Name.Value, nil
			}
		case *gqlast.FragmentDefinition:
			if d.Name != nil && d.Name.Value != "" {
				return d.Name.Value, nil
			}
		}
	}
	return cliconfig.DefaultRoot, nil
}

// write prints the session's document to the file it came from, or to stdout
// for stdin.
func (a *app) write(src source, sess *editor.Session) error {
	text, err := sess.Text()
	if err != nil {
		return err
	}
	if src.isStdin() {
		_, err := io.WriteString(a.stdout, text)
		return err
	}
	if err := os.WriteFile(src.name, []byte(text), 0o644); err != nil {
		return err
	}
	a.logger.Info("document written", "file", src.name, "bytes", len(text))
	return nil
}

func (a *app) loadSchema() (*schema.Schema, error) {
	if a.cfg.Schema == "" {
		return nil, ErrNoSchema
	}
	s, err := schema.ParseSchemaFile(a.cfg.Schema)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("schema loaded", "file", a.cfg.Schema, "types", len(s.ListTypes()))
	return s, nil
}
