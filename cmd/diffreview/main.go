package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/diffreview"
	"github.com/fwojciec/diffreview/bubbletea"
	"github.com/fwojciec/diffreview/chroma"
	"github.com/fwojciec/diffreview/clipboard"
	"github.com/fwojciec/diffreview/git"
	"github.com/fwojciec/diffreview/gitdiff"
	"github.com/fwojciec/diffreview/jsonl"
	"github.com/fwojciec/diffreview/lipgloss"
	"github.com/fwojciec/diffreview/worddiff"
)

// ErrNoChanges is returned when the diff contains no changes to display.
var ErrNoChanges = errors.New("no changes to display")

// ErrNoInput is returned when there is no diff to read.
var ErrNoInput = errors.New("no input: pipe a diff, pass a file, or use -from/-to")

const usage = `Usage:
  git diff | diffreview [flags]
  diffreview [flags] <file.diff>
  diffreview -from <rev> [-to <rev>] [-repo <path>] [flags]

Flags:
`

// App encapsulates the application logic for testing.
type App struct {
	Stdin    io.Reader
	FilePath string
	From     string
	To       string
	RepoPath string
	Parser   diffreview.Parser
	Git      diffreview.GitRunner
	Viewer   diffreview.Viewer
}

// Run reads a diff from git, a file, or stdin, parses it and displays it.
func (a *App) Run(ctx context.Context) error {
	r, closeFn, err := a.input(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	diff, err := a.Parser.Parse(r)
	if err != nil {
		return err
	}
	if len(diff.Files) == 0 {
		return ErrNoChanges
	}
	return a.Viewer.View(ctx, diff)
}

func (a *App) input(ctx context.Context) (io.Reader, func(), error) {
	noop := func() {}
	switch {
	case a.From != "" || a.To != "":
		repo := a.RepoPath
		if repo == "" {
			repo = "."
		}
		out, err := a.Git.Diff(ctx, repo, a.From, a.To)
		if err != nil {
			return nil, noop, err
		}
		return strings.NewReader(out), noop, nil
	case a.FilePath != "":
		f, err := os.Open(a.FilePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open diff: %w", err)
		}
		return f, func() { f.Close() }, nil
	case a.Stdin != nil:
		return a.Stdin, noop, nil
	default:
		return nil, noop, ErrNoInput
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("diffreview", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	from := fs.String("from", "", "base revision to diff from")
	to := fs.String("to", "", "revision to diff to (default: working tree)")
	repo := fs.String("repo", ".", "path to the git repository")
	view := fs.String("view", "unified", "layout of changes: unified or split")
	highlightWhitespace := fs.Bool("highlight-whitespace", true, "emphasize edits in leading and trailing whitespace")
	commentsPath := fs.String("comments", "", "JSONL file of review comments to show below changes")
	themeName := fs.String("theme", "dark", "color theme: dark or light")
	wordDiff := fs.Bool("word-diff", false, "mark edits at word granularity")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if path := os.Getenv("DIFFREVIEW_LOG"); path != "" {
		f, err := tea.LogToFile(path, "diffreview")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	viewStyle, ok := diffreview.ParseViewStyle(*view)
	if !ok {
		return fmt.Errorf("unknown view %q: want unified or split", *view)
	}
	theme, ok := lipgloss.ThemeByName(*themeName)
	if !ok {
		return fmt.Errorf("unknown theme %q", *themeName)
	}

	opts := []bubbletea.Option{
		bubbletea.WithTheme(theme),
		bubbletea.WithViewStyle(viewStyle),
		bubbletea.WithHighlightWhitespaceChanges(*highlightWhitespace),
		bubbletea.WithLanguageDetector(chroma.NewDetector()),
		bubbletea.WithVersions(*from, *to),
	}
	if *wordDiff {
		opts = append(opts, bubbletea.WithWordDiffer(worddiff.NewDiffer()))
	}
	if clip := clipboard.NewSystem(); clip.Available() {
		opts = append(opts, bubbletea.WithClipboard(clip))
	}
	if *commentsPath != "" {
		comments, err := jsonl.NewCommentLoader().Load(*commentsPath)
		if err != nil {
			return fmt.Errorf("load comments: %w", err)
		}
		log.Printf("loaded %d comments from %s", comments.Len(), *commentsPath)
		opts = append(opts, bubbletea.WithWidgets(comments))
	}

	app := &App{
		FilePath: fs.Arg(0),
		From:     *from,
		To:       *to,
		RepoPath: *repo,
		Parser:   gitdiff.NewParser(),
		Git:      git.NewRunner(),
		Viewer:   bubbletea.NewViewer(opts...),
	}
	if app.FilePath == "" && app.From == "" && app.To == "" {
		piped, err := stdinPiped()
		if err != nil {
			return fmt.Errorf("check stdin: %w", err)
		}
		if piped {
			app.Stdin = os.Stdin
		}
	}

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return app.Run(ctx)
}

// stdinPiped reports whether stdin is a pipe or file rather than a terminal.
func stdinPiped() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, err
	}
	return stat.Mode()&os.ModeCharDevice == 0, nil
}
