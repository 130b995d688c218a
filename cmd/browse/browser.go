package main

import (
	"context"
	"fmt"
	"io"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/matst80/slask-view/pkg/common"
	"github.com/matst80/slask-view/pkg/format"
	"github.com/matst80/slask-view/pkg/logger"
	"github.com/matst80/slask-view/pkg/pagination"
	"github.com/matst80/slask-view/pkg/storage"
	"github.com/matst80/slask-view/pkg/types"
	"github.com/matst80/slask-view/pkg/urlstate"
	"github.com/matst80/slask-view/pkg/view"
)

type browserOptions struct {
	Start     string
	Source    types.RecordSource
	PageSize  int
	Formatter *format.Formatter
	Logger    logger.Logger
	Out       io.Writer
}

// browser drives one orchestrator from typed commands. The location is
// shared for the whole session, so back and forward walk every view
// change.
type browser struct {
	loc     *urlstate.Location
	view    *view.Orchestrator
	src     types.RecordSource
	fmt     *format.Formatter
	log     logger.Logger
	out     io.Writer
	columns []view.Column
	// failure is the panic that broke the view, until reset or reload.
	failure error
}

func newBrowser(opts browserOptions) (*browser, error) {
	if opts.Start == "" {
		opts.Start = "/products"
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Formatter == nil {
		opts.Formatter = format.ForCountry("")
	}
	loc, err := urlstate.NewLocation(opts.Start)
	if err != nil {
		return nil, err
	}
	b := &browser{
		loc:     loc,
		src:     opts.Source,
		fmt:     opts.Formatter,
		log:     opts.Logger,
		out:     opts.Out,
		columns: view.ProductColumns,
	}
	b.view = view.New(loc, view.Options{
		PageSize: opts.PageSize,
		Logger:   opts.Logger,
	})
	// history moves come from this process only, so re-render on each
	loc.OnPopState(func() {
		if b.failure == nil {
			b.render()
		}
	})
	return b, nil
}

func (b *browser) Close() {
	b.view.Close()
}

func (b *browser) Prompt() string {
	if b.failure != nil {
		return "view (failed)> "
	}
	return "view> "
}

// Reload fetches the records again and clears a previous failure.
func (b *browser) Reload(ctx context.Context) {
	b.failure = nil
	b.guard(func() {
		b.view.Load(ctx, b.src)
	})
	b.render()
}

// guard runs fn and keeps a panic as the failure of the view.
func (b *browser) guard(fn func()) {
	if err := common.GuardDo(fn); err != nil {
		b.log.Error("view failed", "err", err)
		b.failure = err
	}
}

// Exec runs one command line and reports whether the session should end.
func (b *browser) Exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	command, args := strings.ToLower(fields[0]), fields[1:]

	switch command {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		printHelp(b.out)
		return false
	case "reload":
		b.Reload(ctx)
		return false
	case "reset":
		b.failure = nil
		b.render()
		return false
	case "url":
		b.println(b.loc.String())
		return false
	case "history":
		b.printHistory()
		return false
	}

	if b.failure != nil {
		b.printf("view failed: %v (reset or reload)\n", b.failure)
		return false
	}

	switch command {
	case "back", "b":
		if !b.loc.Back() {
			b.println("no earlier view")
		}
		return false
	case "forward", "f":
		if !b.loc.Forward() {
			b.println("no later view")
		}
		return false
	}

	action, err := b.action(command, args)
	if err != nil {
		b.println(err.Error())
		return false
	}
	b.guard(action)
	b.render()
	return false
}

func (b *browser) action(command string, args []string) (func(), error) {
	arg := func() (string, error) {
		if len(args) == 0 {
			return "", fmt.Errorf("usage: %s <value>", command)
		}
		return args[0], nil
	}

	switch command {
	case "category", "c":
		category, err := arg()
		if err != nil {
			return nil, err
		}
		return func() { b.view.SetCategory(category) }, nil
	case "sort", "s":
		key, err := arg()
		if err != nil {
			return nil, err
		}
		if !b.sortable(key) {
			return nil, fmt.Errorf("%s is not sortable", key)
		}
		return func() { b.view.HandleSort(key) }, nil
	case "field":
		key, err := arg()
		if err != nil {
			return nil, err
		}
		return func() { b.view.SetSortField(key) }, nil
	case "dir":
		value, err := arg()
		if err != nil {
			return nil, err
		}
		direction := types.ParseSortDirection(value)
		if direction == types.SortNone {
			return func() { b.view.ClearSort() }, nil
		}
		return func() { b.view.SetSortDirection(direction) }, nil
	case "unsort":
		return b.view.ClearSort, nil
	case "page", "p":
		value, err := arg()
		if err != nil {
			return nil, err
		}
		page, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("not a page number: %s", value)
		}
		return func() { b.view.GoToPage(page) }, nil
	case "next", "n":
		return b.view.NextPage, nil
	case "prev", "previous":
		return b.view.PreviousPage, nil
	case "first":
		return b.view.FirstPage, nil
	case "last":
		return b.view.LastPage, nil
	case "open":
		raw, err := arg()
		if err != nil {
			return nil, err
		}
		if err := b.loc.Navigate(raw); err != nil {
			return nil, err
		}
		return b.view.Sync, nil
	case "pagesize":
		value, err := arg()
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(value)
		if err != nil || !slices.Contains(pagination.PageSizeOptions, size) {
			return nil, fmt.Errorf("page size must be one of %v", pagination.PageSizeOptions)
		}
		return func() { b.view.SetPageSize(size) }, nil
	case "save":
		name, err := arg()
		if err != nil {
			return nil, err
		}
		return func() { b.save(name) }, nil
	case "show", "ls":
		return func() {}, nil
	}
	return nil, fmt.Errorf("unknown command: %s (type help for commands)", command)
}

// save writes the rows of the current page to a json file, gzipped when
// the name ends in .gz.
func (b *browser) save(fileName string) {
	items := b.view.View().Items
	disk := storage.NewDiskStorage("", path.Dir(fileName))
	if err := disk.SaveJson(items, path.Base(fileName)); err != nil {
		b.printf("save failed: %v\n", err)
		return
	}
	b.printf("saved %d rows to %s\n", len(items), fileName)
}

func (b *browser) sortable(key string) bool {
	for _, k := range view.SortableKeys(b.columns) {
		if k == key {
			return true
		}
	}
	return false
}

func (b *browser) render() {
	if b.failure != nil {
		b.printf("view failed: %v (reset or reload)\n", b.failure)
		return
	}
	renderView(b.out, b.columns, b.view.View(), b.fmt)
}

func (b *browser) printHistory() {
	entries, current := b.loc.History()
	for i, entry := range entries {
		marker := "  "
		if i == current {
			marker = "> "
		}
		b.printf("%s%s\n", marker, entry)
	}
}

func (b *browser) completer() *readline.PrefixCompleter {
	categories := func(string) []string {
		return append([]string{types.AllCategories}, b.view.View().Categories...)
	}
	sortKeys := make([]readline.PrefixCompleterInterface, 0, len(b.columns))
	for _, key := range view.SortableKeys(b.columns) {
		sortKeys = append(sortKeys, readline.PcItem(key))
	}
	pageSizes := make([]readline.PrefixCompleterInterface, 0, len(pagination.PageSizeOptions))
	for _, size := range pagination.PageSizeOptions {
		pageSizes = append(pageSizes, readline.PcItem(strconv.Itoa(size)))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("category", readline.PcItemDynamic(categories)),
		readline.PcItem("sort", sortKeys...),
		readline.PcItem("field", sortKeys...),
		readline.PcItem("dir", readline.PcItem("asc"), readline.PcItem("desc"), readline.PcItem("none")),
		readline.PcItem("unsort"),
		readline.PcItem("page"),
		readline.PcItem("pagesize", pageSizes...),
		readline.PcItem("save"),
		readline.PcItem("next"),
		readline.PcItem("prev"),
		readline.PcItem("first"),
		readline.PcItem("last"),
		readline.PcItem("back"),
		readline.PcItem("forward"),
		readline.PcItem("open"),
		readline.PcItem("url"),
		readline.PcItem("history"),
		readline.PcItem("show"),
		readline.PcItem("reset"),
		readline.PcItem("reload"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

func (b *browser) println(s string) {
	_, _ = fmt.Fprintln(b.out, s)
}

func (b *browser) printf(f string, args ...any) {
	_, _ = fmt.Fprintf(b.out, f, args...)
}

func printHelp(w io.Writer) {
	help := `
Commands:
  category <name>   Show one category (all shows everything)
  sort <column>     Sort by column, again to flip the direction
  field <column>    Sort by column keeping the direction
  dir asc|desc|none Set the sort direction
  unsort            Clear sorting
  page <n>          Go to page n
  pagesize <n>      Rows per page: 5, 10, 20, 50 or 100
  next, prev        Step one page
  first, last       Jump to the first or last page
  back, forward     Walk the view history
  open <url>        Open a view url, e.g. /products?category=Books&page=2
  url               Print the current view url
  history           List the view history
  save <file>       Write the rows of this page to a json file
  show              Print the current view
  reset             Clear a failed view and keep the data
  reload            Fetch the records again
  quit              Exit
`
	_, _ = fmt.Fprintln(w, help)
}
