package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	flag "github.com/spf13/pflag"

	"github.com/cj3636/gitc/internal/config"
	"github.com/cj3636/gitc/internal/diff"
	"github.com/cj3636/gitc/internal/export"
	"github.com/cj3636/gitc/internal/logging"
	"github.com/cj3636/gitc/internal/repo"
	"github.com/cj3636/gitc/internal/tui"
)

const version = "0.1.0"

var (
	showVersion  bool
	help         bool
	noLineNumber bool
	highContrast bool
	tabSize      int
	theme        string
	historyLimit int
	graphLimit   int
	graphSpacing int
	keymapFile   string
	logFile      string
	logLevel     string
	logFormat    string
	graphColors  []string
	diffPath     string
	commitID     string
	exportFormat string
	exportFile   string
	exportCopy   bool
)

func init() {
	flag.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	flag.BoolVarP(&help, "help", "h", false, "Show help information")
	flag.BoolVarP(&noLineNumber, "no-line-numbers", "n", false, "Hide line numbers in the diff pane")
	flag.BoolVar(&highContrast, "high-contrast", false, "Increase theme contrast")
	flag.IntVarP(&tabSize, "tab-size", "t", 4, "Set tab size")
	flag.StringVar(&theme, "theme", "", "Theme preset: dark, light, solarized or dracula (default: follow terminal)")
	flag.IntVar(&historyLimit, "history-limit", repo.DefaultHistoryLimit, "Number of commits in the history tree")
	flag.IntVar(&graphLimit, "graph-limit", repo.DefaultGraphLimit, "Number of commits in the graph")
	flag.IntVar(&graphSpacing, "graph-spacing", 2, "Rows between graph nodes")
	flag.StringVar(&keymapFile, "keymap", "", "YAML file of keybinding overrides (action: [keys])")
	flag.StringVar(&logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flag.StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	flag.StringSliceVar(&graphColors, "graph-colors", nil, "Comma-separated colours cycled over graph nodes")
	flag.StringVar(&diffPath, "diff", "", "Export the diff of this file without launching the TUI")
	flag.StringVar(&commitID, "commit", "", "With --diff, diff the file in this commit against its parent")
	flag.StringVar(&exportFormat, "export-format", "", "Export format: html, markdown or ansi")
	flag.StringVar(&exportFile, "export-file", "", "Write the exported diff to the provided file path")
	flag.BoolVar(&exportCopy, "export-copy", false, "Copy the exported diff to your clipboard")
	flag.Usage = usage
}

func usage() {
	fmt.Println("gitc - a terminal git inspector built with Charm libraries")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  gitc [options] [repository]")
	fmt.Println("  gitc --diff <file> [--commit <id>] [--export-format fmt] [repository]")
	fmt.Println("")
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  gitc                                   # Pick a repository")
	fmt.Println("  gitc ~/src/project                     # Open a repository")
	fmt.Println("  gitc --theme light --history-limit 50 .")
	fmt.Println("  gitc --diff main.go --export-format html --export-file diff.html .")
	fmt.Println("  gitc --diff main.go --commit HEAD --export-copy .")
	fmt.Println("")
	fmt.Println("Keyboard shortcuts:")
	fmt.Println("  tab/shift+tab  Switch pane")
	fmt.Println("  space/x        Check file for commit")
	fmt.Println("  enter          Show diff / expand commit")
	fmt.Println("  ctrl+s         Commit checked files")
	fmt.Println("  ctrl+o         Open repository")
	fmt.Println("  ctrl+r/F5      Refresh")
	fmt.Println("  ctrl+g         Show git status")
	fmt.Println("  ctrl+t         Toggle light/dark theme")
	fmt.Println("  y / e          Copy / export diff")
	fmt.Println("  F10/m          Menu")
	fmt.Println("  F1 / F2        About / keys")
	fmt.Println("  ctrl+q         Quit")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func buildConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.ShowLineNo = !noLineNumber
	cfg.TabSize = tabSize
	cfg.HighContrast = highContrast
	cfg.HistoryLimit = historyLimit
	cfg.GraphLimit = graphLimit
	cfg.GraphSpacing = graphSpacing

	preset := config.PresetDark
	if theme != "" {
		p, err := config.ParsePreset(theme)
		if err != nil {
			fail("%v", err)
		}
		preset = p
	} else if !termenv.HasDarkBackground() {
		preset = config.PresetLight
	}
	cfg.SetPreset(preset)

	if keymapFile != "" {
		kb, err := config.LoadKeymap(keymapFile)
		if err != nil {
			fail("%v", err)
		}
		cfg.Keybindings = kb
	}
	return cfg
}

func isUntracked(access *repo.Access, path string) bool {
	for _, c := range access.ChangedFiles() {
		if c.Path == path {
			return c.State == repo.StateUntracked
		}
	}
	return false
}

// runExport renders one diff without the TUI.
func runExport(access *repo.Access, cfg *config.Config) {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		fail("%v", err)
	}

	title := diffPath
	result := diff.Parse(access.Diff(diffPath), title)
	if commitID != "" {
		title = commitID + ":" + diffPath
		result = diff.Parse(access.CommitFileDiff(commitID, diffPath), title)
	} else if isUntracked(access, diffPath) {
		result = diff.Plain(access.Diff(diffPath), title)
	}

	rendered, err := export.Render(result, format, export.Options{
		Title:           title,
		ShowLineNumbers: cfg.ShowLineNo,
	})
	if err != nil {
		fail("exporting diff: %v", err)
	}

	if exportFile != "" {
		if err := os.WriteFile(exportFile, []byte(rendered), 0o644); err != nil {
			fail("writing export: %v", err)
		}
		fmt.Fprintf(os.Stdout, "Diff saved to %s\n", exportFile)
	}

	if exportCopy {
		if err := export.CopyToClipboard(rendered, os.Stdout); err != nil {
			fail("copying diff to clipboard: %v", err)
		}
		fmt.Println("Diff copied to clipboard.")
	}

	if exportFile == "" && !exportCopy {
		fmt.Println(rendered)
	}
}

func main() {
	flag.Parse()

	if help {
		usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("gitc version %s\n", version)
		fmt.Println("A terminal git inspector built with Charm libraries")
		os.Exit(0)
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		fail("%v", err)
	}
	logger, closer, err := logging.OpenFile(logFile, logFormat, level)
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	var path string
	if args := flag.Args(); len(args) > 0 {
		path = args[0]
	}

	access := repo.New(repo.WithLogger(logger), repo.WithPalette(graphColors))
	defer access.Close()

	headless := diffPath != "" || exportFormat != "" || exportFile != "" || exportCopy
	if headless {
		if diffPath == "" {
			fail("--diff is required for export")
		}
		if path == "" {
			path = "."
		}
		if err := access.Open(path); err != nil {
			fail("%v", err)
		}
		runExport(access, buildConfig())
		return
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fail("gitc needs a terminal; use --diff with --export-format for scripted output")
	}

	cfg := buildConfig()
	model := tui.NewModel(access, cfg, tui.Options{
		Path:         path,
		ExportFormat: export.FormatMarkdown,
		Logger:       logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
