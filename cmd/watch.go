package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/headline/internal/analysis"
	"github.com/zjrosen/headline/internal/headerdiff"
	"github.com/zjrosen/headline/internal/log"
	"github.com/zjrosen/headline/internal/pubsub"
	"github.com/zjrosen/headline/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-parse a document's header whenever the file changes",
	Long: `Watch a document and print its directive every time the file is saved,
with an inline diff of the header line against the previous version:

  ✓ @option a=1 b=2
    @option a=[-1-]{+2+} b=2

Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, cmd.OutOrStdout(), args[0], cfg.Watch.Debounce)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(ctx context.Context, out io.Writer, path string, debounce time.Duration) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	analyzer := newAnalyzer()
	defer analyzer.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := analyzer.Broker().Subscribe(ctx)

	w, err := watcher.New(watcher.Config{Path: path, DebounceDur: debounce})
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	doc := analysis.DocumentKey(path)
	analyze := func() {
		data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				_ = analyzer.Forget(ctx, doc)
				return
			}
			log.ErrorErr(log.CatWatcher, "Failed to read watched file", err, "path", path)
			return
		}
		analyzer.Analyze(ctx, doc, string(data))
	}

	log.Info(log.CatWatcher, "Watching document", "path", path, "debounce", debounce)
	analyze()

	r := reporter{out: out}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			analyze()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := r.report(ev); err != nil {
				return err
			}
		}
	}
}

// reporter prints analysis events and remembers the last header line so
// each report can show what changed.
type reporter struct {
	out      io.Writer
	previous string
	seen     bool
}

func (r *reporter) report(ev pubsub.Event[analysis.Analysis]) error {
	an := ev.Payload
	header := an.Header()

	var b strings.Builder
	switch ev.Type {
	case pubsub.AnalyzedEvent:
		b.WriteString("✓ " + formatDirective(an))
	case pubsub.InvalidEvent:
		b.WriteString("✗ " + an.Err.Error())
		if perr, ok := an.ParseError(); ok {
			for _, line := range strings.Split(perr.Caret(), "\n") {
				b.WriteString("\n  " + line)
			}
		}
	case pubsub.ClearedEvent:
		b.WriteString("- no header")
	}
	b.WriteString("\n")

	if r.seen {
		if segs := headerdiff.Compare(r.previous, header); headerdiff.Changed(segs) {
			b.WriteString("  " + headerdiff.Render(segs) + "\n")
		}
	}
	r.previous = header
	r.seen = true

	_, err := io.WriteString(r.out, b.String())
	return err
}

func formatDirective(an analysis.Analysis) string {
	d := an.Parsed.Directive
	parts := []string{"@" + d.Name}
	for _, p := range d.Pairs {
		parts = append(parts, p.Key+"="+p.Value)
	}
	return strings.Join(parts, " ")
}
