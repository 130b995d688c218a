package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/chzyer/readline"
	"github.com/matst80/slask-view/pkg/config"
	"github.com/matst80/slask-view/pkg/format"
	"github.com/matst80/slask-view/pkg/logger"
	"github.com/matst80/slask-view/pkg/storage"
	"github.com/matst80/slask-view/pkg/types"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var mock bool
	var start string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse a record file page by page in the terminal",
		Long: `Browse loads a json or csv record file and shows it as a sortable,
filterable and paginated table. Every view change is written to a URL
with back and forward history, so any view can be reopened with "open".`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("", cmd.Flags())
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{
				Level:  cfg.Log.Level,
				JSON:   cfg.Log.JSON,
				Output: cmd.ErrOrStderr(),
			})

			src, err := sourceFor(cmd.Context(), cfg.DataFile, mock)
			if err != nil {
				return err
			}
			b, err := newBrowser(browserOptions{
				Start:     start,
				Source:    src,
				PageSize:  cfg.PageSize,
				Formatter: format.ForCountry(cfg.Country),
				Logger:    log,
				Out:       cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}
			defer b.Close()
			return runREPL(cmd, b)
		},
	}
	config.RegisterFlags(cmd.Flags())
	cmd.Flags().BoolVar(&mock, "mock", false, "serve the data file with a simulated network delay")
	cmd.Flags().StringVar(&start, "url", "/products", "initial view url")
	return cmd
}

// sourceFor resolves the data file. With mock the file is read once up
// front and served after a delay on every fetch.
func sourceFor(ctx context.Context, dataFile string, mock bool) (types.RecordSource, error) {
	disk := storage.NewDiskStorage("", path.Dir(dataFile))
	src, err := disk.Source(path.Base(dataFile))
	if err != nil {
		return nil, err
	}
	if !mock {
		return src, nil
	}
	records, err := src.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return storage.NewMock(records), nil
}

func runREPL(cmd *cobra.Command, b *browser) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "view> ",
		HistoryFile:     path.Join(os.TempDir(), "slask-view_history"),
		AutoComplete:    b.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "Type help for commands, quit to exit")
	_, _ = fmt.Fprintln(out, "loading...")
	b.Reload(cmd.Context())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := b.Exec(cmd.Context(), line); quit {
			return nil
		}
		rl.SetPrompt(b.Prompt())
	}
}
