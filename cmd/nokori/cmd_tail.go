package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/nokori/framing"
	"github.com/dhamidi/nokori/stream"

	_ "github.com/tliron/commonlog/simple"
)

func newTailCmd() *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:   "tail <file>",
		Short: "Follow a growing file and decode frames as they are appended",
		Long: "Tail watches a file for appended bytes and feeds them to the " +
			"frame decoder as they arrive. A frame split across several writes " +
			"is held as parser state, not re-read, so tail never re-parses or " +
			"blocks on a partial frame.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)
			return runTail(args[0])
		},
	}

	cmd.Flags().IntVarP(&verbosity, "verbose", "v", 0, "log verbosity")

	return cmd
}

func runTail(path string) error {
	log := commonlog.GetLogger("nokori.tail")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { f.Close() }()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors and log rotation replace files, so
	// a watch on the file itself would silently go stale. A Create for
	// the target path means the file was replaced and must be reopened.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink := stream.NewSink(framing.Message())
	frames := 0

	// Existing content first, then whatever the watcher reports.
	if err := feedAppended(f, sink, &frames); err != nil {
		return err
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			log.Infof("stopped after %d frames, %d bytes", frames, sink.Offset())
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				nf, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("reopen %s: %w", path, err)
				}
				f.Close()
				f = nf
				log.Infof("file replaced, following the new file")
			} else if !event.Op.Has(fsnotify.Write) {
				continue
			}
			log.Debugf("write event, %d bytes buffered", sink.Buffered())
			if err := feedAppended(f, sink, &frames); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watcher: %v", err)
		}
	}
}

// feedAppended reads everything past the file's current read offset into
// the sink and prints any frames that became complete.
func feedAppended(f *os.File, sink *stream.Decoder[framing.Frame], frames *int) error {
	if _, err := io.Copy(sink, f); err != nil {
		return fmt.Errorf("read appended bytes: %w", err)
	}
	for {
		frame, err := sink.Next()
		if errors.Is(err, stream.ErrNeedMoreInput) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode frame %d: %w", *frames+1, err)
		}
		*frames++
		fmt.Printf("[%d] %d bytes\n", *frames, frame.Length)
		os.Stdout.Write(frame.Payload)
		fmt.Println()
	}
}
