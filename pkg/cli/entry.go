// Package cli implements the vela command.
package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/vela/internal/backend"
	"github.com/funvibe/vela/internal/config"
	"github.com/funvibe/vela/internal/diagnostics"
	"github.com/funvibe/vela/internal/evaluator"
	"github.com/funvibe/vela/internal/pipeline"
	"github.com/funvibe/vela/internal/prettyprinter"
)

const usage = `usage:
  vela [flags] <file>        run an AST document
  vela [flags] -e <document> run an inline document and print its value
  vela [flags] repl          read documents from stdin, separated by ---
  vela fmt <file>            print a document as source
  vela -version

flags:
`

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// options are the command-line flags. Flags that were given override the
// configuration file.
type options struct {
	configPath string
	eval       string
	trace      bool
	color      string
	maxDepth   int
	noStdlib   bool
	version    bool
	set        map[string]bool
}

type command struct {
	opts   options
	args   []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Run executes the command line in os.Args and exits.
func Run() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			// Print stack trace for debugging
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(exitError)
		}
	}()
	os.Exit(Main(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Main runs the command with the given arguments and streams and returns
// the exit code.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &command{stdin: stdin, stdout: stdout, stderr: stderr}
	if code, ok := c.parse(args); !ok {
		return code
	}

	if c.opts.version {
		fmt.Fprintln(stdout, "vela "+config.Version)
		return exitOK
	}

	// Handle fmt command (vela fmt <file>)
	if code, ok := c.handleFormat(); ok {
		return code
	}

	// Handle -e mode (inline document)
	if code, ok := c.handleEval(); ok {
		return code
	}

	// Handle repl command
	if code, ok := c.handleRepl(); ok {
		return code
	}

	if len(c.args) != 1 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}
	path, err := resolveEntry(c.args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return exitError
	}
	cfg, err := c.loadConfig(filepath.Dir(path))
	if err != nil {
		return c.report(cfg, []*diagnostics.DiagnosticError{configError(err)})
	}
	ctx := c.runPipeline(cfg, pipeline.NewPipelineContext(path, nil))
	return c.report(cfg, ctx.Errors)
}

func (c *command) parse(args []string) (int, bool) {
	fs := flag.NewFlagSet("vela", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() {
		fmt.Fprint(c.stderr, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&c.opts.configPath, "config", "", "path to a vela.yaml configuration file")
	fs.StringVar(&c.opts.eval, "e", "", "run an inline AST document")
	fs.BoolVar(&c.opts.trace, "trace", false, "log calls and struct instantiation to stderr")
	fs.StringVar(&c.opts.color, "color", "", "diagnostics color: auto, always or never")
	fs.IntVar(&c.opts.maxDepth, "max-depth", 0, "maximum evaluation depth")
	fs.BoolVar(&c.opts.noStdlib, "no-stdlib", false, "do not register the standard builtins")
	fs.BoolVar(&c.opts.version, "version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK, false
		}
		return exitUsage, false
	}
	c.opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.opts.set[f.Name] = true })
	c.args = fs.Args()
	return exitOK, true
}

// loadConfig reads -config, or vela.yaml from dir, and applies flags on top.
// On error the returned configuration is still usable for reporting.
func (c *command) loadConfig(dir string) (*config.Config, error) {
	path := c.opts.configPath
	if path == "" {
		found, err := config.FindConfig(dir)
		if err != nil {
			return c.applyFlags(config.Default()), err
		}
		path = found
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return c.applyFlags(cfg), err
		}
		cfg = loaded
	}
	cfg = c.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return c.applyFlags(config.Default()), fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

func (c *command) applyFlags(cfg *config.Config) *config.Config {
	if c.opts.set["trace"] {
		cfg.Trace = c.opts.trace
	}
	if c.opts.set["color"] {
		cfg.Color = c.opts.color
	}
	if c.opts.set["max-depth"] {
		cfg.MaxDepth = c.opts.maxDepth
	}
	if c.opts.set["no-stdlib"] {
		enabled := !c.opts.noStdlib
		cfg.Stdlib = &enabled
	}
	return cfg
}

func configError(err error) *diagnostics.DiagnosticError {
	d := diagnostics.FromError(err)
	d.Code = diagnostics.ErrC001
	return d
}

func (c *command) newBackend(cfg *config.Config) *backend.TreeWalkBackend {
	var logger *slog.Logger
	if cfg.Trace {
		logger = slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return backend.NewTreeWalk(cfg, c.stdout, logger)
}

func (c *command) runPipeline(cfg *config.Config, ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	p := pipeline.Frontend().With(backend.NewExecutionProcessor(c.newBackend(cfg)))
	return p.Run(ctx)
}

// report prints diagnostics and returns the exit code for them.
func (c *command) report(cfg *config.Config, diags []*diagnostics.DiagnosticError) int {
	if len(diags) == 0 {
		return exitOK
	}
	printer := diagnostics.Printer{Color: colorFor(cfg.Color, c.stderr)}
	printer.FprintAll(c.stderr, diags)
	return exitError
}

func colorFor(mode string, w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return diagnostics.ColorEnabled(mode, f)
	}
	return mode == config.ColorAlways
}

// resolveEntry maps a directory to its entry file <dir>/<dir name><ext>.
func resolveEntry(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return path, nil
	}
	dirBase := filepath.Base(path)
	for _, ext := range config.SourceFileExtensions {
		candidate := filepath.Join(path, dirBase+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("entry file not found for directory: %s", path)
}

// handleFormat prints a document as source.
func (c *command) handleFormat() (int, bool) {
	if len(c.args) == 0 || c.args[0] != "fmt" {
		return 0, false
	}
	if len(c.args) != 2 {
		fmt.Fprintln(c.stderr, "usage: vela fmt <file>")
		return exitUsage, true
	}
	path := c.args[1]
	if !isSourceFile(path) {
		fmt.Fprintf(c.stderr, "Warning: %s does not have a recognized extension (%s)\n",
			path, strings.Join(config.SourceFileExtensions, ", "))
	}
	ctx := pipeline.Frontend().Run(pipeline.NewPipelineContext(path, nil))
	if ctx.HasErrors() {
		return c.report(config.Default(), ctx.Errors), true
	}
	fmt.Fprint(c.stdout, prettyprinter.Print(ctx.AstRoot))
	return exitOK, true
}

// handleEval runs the -e document and prints its value.
func (c *command) handleEval() (int, bool) {
	if !c.opts.set["e"] {
		return 0, false
	}
	cfg, err := c.loadConfig(".")
	if err != nil {
		return c.report(cfg, []*diagnostics.DiagnosticError{configError(err)}), true
	}
	ctx := c.runPipeline(cfg, pipeline.NewPipelineContext("<eval>", []byte(c.opts.eval)))
	if ctx.HasErrors() {
		return c.report(cfg, ctx.Errors), true
	}
	fmt.Fprintln(c.stdout, ctx.Result.Inspect())
	return exitOK, true
}

// handleRepl reads documents from stdin, separated by lines of "---", and
// runs them in one root context, printing each value or its diagnostics.
func (c *command) handleRepl() (int, bool) {
	if len(c.args) != 1 || c.args[0] != "repl" {
		return 0, false
	}
	cfg, err := c.loadConfig(".")
	if err != nil {
		return c.report(cfg, []*diagnostics.DiagnosticError{configError(err)}), true
	}
	b := c.newBackend(cfg)
	root := evaluator.NewRootContext(config.ReplContextName)
	if cfg.UseStdlib() {
		evaluator.RegisterBuiltins(root)
	}
	p := pipeline.New(pipeline.DecodeProcessor{}, backend.NewExecutionProcessor(b))

	code := exitOK
	run := func(doc []string) {
		src := strings.TrimSpace(strings.Join(doc, "\n"))
		if src == "" {
			return
		}
		ctx := pipeline.NewPipelineContext(config.ReplContextName, []byte(src))
		ctx.Root = root
		ctx = p.Run(ctx)
		if ctx.HasErrors() {
			// The session continues; the exit code records the failure.
			code = c.report(cfg, ctx.Errors)
			return
		}
		fmt.Fprintln(c.stdout, ctx.Result.Inspect())
	}

	var doc []string
	scanner := bufio.NewScanner(c.stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			run(doc)
			doc = doc[:0]
			continue
		}
		doc = append(doc, line)
	}
	run(doc)
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(c.stderr, "Error reading input: %s\n", err)
		return exitError, true
	}
	return code, true
}
