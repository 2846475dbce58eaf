package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/funvibe/funrelay/internal/bridge"
	"github.com/funvibe/funrelay/internal/classify"
	"github.com/funvibe/funrelay/internal/config"
	"github.com/funvibe/funrelay/internal/parser"
	"github.com/funvibe/funrelay/internal/prettyprinter"
	"github.com/funvibe/funrelay/internal/recorder"
	"github.com/funvibe/funrelay/internal/relay"
	"github.com/funvibe/funrelay/internal/symbols"
	"github.com/funvibe/funrelay/internal/typelist"
	"github.com/funvibe/funrelay/internal/typesystem"
)

const usageText = `funrelay plans how C++ arguments cross a forwarding boundary.

Usage:
  funrelay classify <expr>...   category, reference and base per expression
  funrelay plan <expr>...       forwarding, target and conversion rows
  funrelay nth <signature> <k>  the k-th parameter type of a signature
  funrelay audit                check configured Go bridge functions
  funrelay history [n]          recent recorded plan runs

classify and plan also read expressions from stdin, one per line, when
none are given on the command line.

Flags:
  -config <path>  explicit funrelay.yaml (default: nearest one upward)
  -yaml           machine output instead of aligned text
  -no-color       plain text even on a terminal
  -record         record this run's plans regardless of config
`

type cliOptions struct {
	configPath string
	yamlOut    bool
	noColor    bool
	record     bool
	help       bool
}

// splitArgs separates host flags from the command and its arguments.
// Flags may appear anywhere on the line.
func splitArgs(argv []string) (cliOptions, []string, error) {
	var opts cliOptions
	var args []string
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "-config" || arg == "--config":
			i++
			if i >= len(argv) {
				return opts, nil, fmt.Errorf("-config needs a path")
			}
			opts.configPath = argv[i]
		case arg == "-yaml" || arg == "--yaml":
			opts.yamlOut = true
		case arg == "-no-color" || arg == "--no-color":
			opts.noColor = true
		case arg == "-record" || arg == "--record":
			opts.record = true
		case arg == "-help" || arg == "--help" || arg == "help":
			opts.help = true
		case strings.HasPrefix(arg, "-"):
			return opts, nil, fmt.Errorf("unknown flag %s", arg)
		default:
			args = append(args, arg)
		}
	}
	return opts, args, nil
}

// app carries everything a command needs after configuration loading.
type app struct {
	cfg       *config.Config
	cfgDir    string
	table     *symbols.SymbolTable
	opts      relay.Options
	sink      recorder.Sink
	yamlOut   bool
	color     bool
	hadErrors bool
}

func newApp(cli cliOptions) (*app, error) {
	path := cli.configPath
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := config.Default()
	cfgDir := "."
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		cfgDir = filepath.Dir(path)
	}

	table := symbols.NewSymbolTable()
	if errs := parser.DefineConfigTypes(cfg, table); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "- %s\n", e.Error())
		}
		return nil, fmt.Errorf("config declares invalid types")
	}

	var sink recorder.Sink = recorder.Discard{}
	if cli.record || cfg.Record.Enabled {
		dbPath := cfg.Record.Path
		if dbPath == "" {
			dbPath = config.DefaultRecordPath
		}
		r, err := recorder.Open(dbPath)
		if err != nil {
			return nil, err
		}
		sink = r
	}

	return &app{
		cfg:     cfg,
		cfgDir:  cfgDir,
		table:   table,
		opts:    relay.Options{MoveSemantics: cfg.MoveEnabled()},
		sink:    sink,
		yamlOut: cli.yamlOut,
		color:   !cli.noColor && prettyprinter.ColorEnabled(),
	}, nil
}

func (a *app) printer() *prettyprinter.PlanPrinter {
	if a.color {
		return prettyprinter.NewPlanPrinter()
	}
	return prettyprinter.NewPlainPrinter()
}

// parse runs one expression through the front end. Errors go to stderr
// and mark the run as failed; the caller skips the expression.
func (a *app) parse(expr string) (typesystem.Type, bool) {
	t, errs := parser.ParseString(expr, "", a.table)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "- %s: %s\n", expr, e.Error())
		}
		a.hadErrors = true
		return nil, false
	}
	return t, true
}

// readExpressions returns argv expressions, or stdin lines when argv
// has none and stdin is not a terminal.
func readExpressions(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("no expressions given and stdin is a terminal")
	}

	var exprs []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			exprs = append(exprs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return exprs, nil
}

func (a *app) runClassify(args []string) error {
	exprs, err := readExpressions(args)
	if err != nil {
		return err
	}

	first := true
	for _, expr := range exprs {
		t, ok := a.parse(expr)
		if !ok {
			continue
		}
		d := classify.Classify(t)

		if a.yamlOut {
			doc, err := prettyprinter.MarshalClassification(t, d)
			if err != nil {
				return err
			}
			if !first {
				fmt.Print("---\n")
			}
			fmt.Print(doc)
		} else {
			if !first {
				fmt.Println()
			}
			p := a.printer()
			p.PrintClassification(t, d)
			fmt.Print(p.String())
		}
		first = false
	}
	return nil
}

func (a *app) runPlan(args []string) error {
	exprs, err := readExpressions(args)
	if err != nil {
		return err
	}

	first := true
	for _, expr := range exprs {
		t, ok := a.parse(expr)
		if !ok {
			continue
		}

		// A whole signature expands to one row per parameter.
		plans, isSignature := relay.SignaturePlans(t, a.opts)
		if !isSignature {
			plans = []relay.Plan{relay.PlanWith(t, a.opts)}
		}

		if _, err := a.sink.Record("plan", t.String(), plans); err != nil {
			return err
		}

		if a.yamlOut {
			var doc string
			var merr error
			if isSignature {
				doc, merr = prettyprinter.MarshalSignature(t, plans)
			} else {
				doc, merr = prettyprinter.MarshalPlan(plans[0])
			}
			if merr != nil {
				return merr
			}
			if !first {
				fmt.Print("---\n")
			}
			fmt.Print(doc)
		} else {
			if !first {
				fmt.Println()
			}
			p := a.printer()
			if isSignature {
				p.PrintSignature(t, plans)
			} else {
				p.PrintPlan(plans[0])
			}
			fmt.Print(p.String())
		}
		first = false
	}
	return nil
}

func (a *app) runNth(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("nth needs a signature and an index")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("index %q is not an integer", args[1])
	}

	t, ok := a.parse(args[0])
	if !ok {
		// parse reported the diagnostics and marked the run failed.
		return nil
	}

	result, found := typelist.SelectParam(n, t)
	if a.yamlOut {
		doc, err := prettyprinter.MarshalSelection(t, n, result, found)
		if err != nil {
			return err
		}
		fmt.Print(doc)
		return nil
	}
	p := a.printer()
	p.PrintSelection(t, n, result, found)
	fmt.Print(p.String())
	return nil
}

func (a *app) runAudit() error {
	if len(a.cfg.Bridges) == 0 {
		fmt.Println("no bridges configured")
		return nil
	}

	auditor, err := bridge.New(a.cfg, a.cfgDir)
	if err != nil {
		return err
	}
	results, err := auditor.Audit(a.cfg.Bridges)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		name := res.Spec.Pkg + "." + res.Spec.Func
		switch {
		case res.Err != nil:
			failed++
			fmt.Printf("FAIL %s\n", name)
			fmt.Printf("  - %s\n", res.Err)
		case len(res.Findings) > 0:
			failed++
			fmt.Printf("FAIL %s\n", name)
			for _, f := range res.Findings {
				fmt.Printf("  - %s\n", f)
			}
		default:
			fmt.Printf("ok   %s\n", name)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d bridges failed", failed, len(results))
	}
	return nil
}

func (a *app) runHistory(args []string) error {
	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("history count %q is not a positive integer", args[0])
		}
		limit = n
	}

	dbPath := a.cfg.Record.Path
	if dbPath == "" {
		dbPath = config.DefaultRecordPath
	}
	if _, err := os.Stat(dbPath); err != nil {
		fmt.Printf("no recorded history at %s\n", dbPath)
		return nil
	}

	r, err := recorder.Open(dbPath)
	if err != nil {
		return err
	}
	defer r.Close()

	runs, err := r.Recent(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	for i, run := range runs {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s  %s  %s  %s\n",
			run.CreatedAt.Local().Format(time.RFC3339), run.ID, run.Command, run.Source)
		for _, p := range run.Plans {
			fmt.Printf("  param %d: %s forwards as %s, lands as %s (%s)\n",
				p.Position, p.Source, p.Forwarding, p.Target, p.Conversion)
		}
	}
	return nil
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	cli, args, err := splitArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if cli.help || len(args) == 0 {
		fmt.Print(usageText)
		if cli.help {
			return
		}
		os.Exit(1)
	}

	command, rest := args[0], args[1:]
	switch command {
	case "classify", "plan", "nth", "audit", "history":
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", command)
		fmt.Print(usageText)
		os.Exit(1)
	}

	a, err := newApp(cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	switch command {
	case "classify":
		err = a.runClassify(rest)
	case "plan":
		err = a.runPlan(rest)
	case "nth":
		err = a.runNth(rest)
	case "audit":
		err = a.runAudit()
	case "history":
		err = a.runHistory(rest)
	}

	// os.Exit skips deferred calls, so the sink closes explicitly.
	closeErr := a.sink.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if closeErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", closeErr)
		os.Exit(1)
	}
	if a.hadErrors {
		os.Exit(1)
	}
}
