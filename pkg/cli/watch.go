package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/nksaraf/magiql/pkg/cli/internal/output"
	"github.com/nksaraf/magiql/pkg/editor"
	"github.com/nksaraf/magiql/pkg/gqlast"
)

func (a *app) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Keep a document in the store and reprint it whenever the file changes",
		Long: `Load a document, then re-sync the store each time the file is saved and print
the reconstructed document. Saves that do not parse are reported and leave the
store unchanged. Stops on interrupt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.read(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if src.isStdin() {
				return errors.New("watch needs a file")
			}
			sess, err := a.open(src)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w, err := newFileWatcher(src.name, sess, a)
			if err != nil {
				return err
			}
			defer w.Close()
			return w.Run(ctx)
		},
	}
	return cmd
}

// fileWatcher feeds saves of one file into a session. Events are handled on
// the Run goroutine only, so the session sees one writer.
type fileWatcher struct {
	path    string
	sess    *editor.Session
	app     *app
	watcher *fsnotify.Watcher
	unsub   func()
}

func newFileWatcher(path string, sess *editor.Session, a *app) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &fileWatcher{path: abs, sess: sess, app: a, watcher: watcher}
	w.unsub = sess.Subscribe(func(doc *gqlast.Document) {
		if err := w.print(); err != nil {
			a.logger.Warn("print failed", "error", err)
		}
	})
	return w, nil
}

// Run prints the current document, then handles events until ctx is done.
func (w *fileWatcher) Run(ctx context.Context) error {
	if err := w.print(); err != nil {
		return err
	}
	w.app.logger.Debug("watching", "file", w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.app.logger.Warn("watcher error", "error", err)

		case <-ctx.Done():
			w.app.logger.Debug("watch stopping", "file", w.path)
			return nil
		}
	}
}

func (w *fileWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	data, err := os.ReadFile(w.path)
	if err != nil {
		// The file may be mid-replace; the next event brings the new content.
		w.app.logger.Debug("read failed", "file", w.path, "error", err)
		return
	}
	if strings.TrimSpace(string(data)) == "" {
		// Truncated by a save in progress.
		return
	}
	if err := w.sess.SetText(string(data)); err != nil {
		output.Warn(w.app.stderr, "%s: %v", w.path, err)
		return
	}
	w.app.logger.Info("document synced", "file", w.path)
}

func (w *fileWatcher) print() error {
	text, err := w.sess.Text()
	if err != nil {
		return err
	}
	if w.app.jsonOutput {
		return output.JSON(w.app.stdout, FmtOutput{File: w.path, Text: text})
	}
	_, err = io.WriteString(w.app.stdout, text)
	return err
}

// Close stops watching and detaches from the session.
func (w *fileWatcher) Close() error {
	w.unsub()
	return w.watcher.Close()
}
