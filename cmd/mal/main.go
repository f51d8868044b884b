// Command mal is the interpreter CLI: a REPL, a file runner and the check
// and fmt tools.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	flags "github.com/jessevdk/go-flags"
	metrics "github.com/rcrowley/go-metrics"

	"github.com/ToucheSir/mal/pkg/config"
	"github.com/ToucheSir/mal/pkg/diagnostics"
	"github.com/ToucheSir/mal/pkg/evaluator"
	"github.com/ToucheSir/mal/pkg/formatter"
	"github.com/ToucheSir/mal/pkg/help"
	"github.com/ToucheSir/mal/pkg/runtime"
	"github.com/ToucheSir/mal/pkg/types"
)

// sessionOptions are shared by the commands that evaluate code.
type sessionOptions struct {
	Verbose []bool `short:"v" long:"verbose" description:"Increase log verbosity (repeatable)"`
	Config  string `long:"config" value-name:"FILE" description:"Read settings from FILE instead of .mal.toml"`
	Stats   bool   `long:"stats" description:"Print evaluation metrics to stderr on exit"`
	Trace   string `long:"trace" value-name:"FILE" description:"Write evaluation trace events to FILE as JSON lines"`
}

type checkOptions struct {
	Pretty bool `long:"pretty" description:"Human-readable diagnostics"`
}

type fmtOptions struct {
	Write bool `short:"w" long:"write" description:"Rewrite the file in place"`
}

func main() {
	code := dispatch(os.Args[1:])
	glog.Flush()
	os.Exit(code)
}

func dispatch(args []string) int {
	if len(args) == 0 {
		return cmdRepl(nil)
	}
	switch args[0] {
	case "repl":
		return cmdRepl(args[1:])
	case "run":
		return cmdRun(args[1:])
	case "check":
		return cmdCheck(args[1:])
	case "fmt":
		return cmdFmt(args[1:])
	case "help", "--help", "-h":
		return cmdHelp(args[1:])
	case "version", "--version":
		fmt.Printf("mal %s\n", help.Version)
		return 0
	}
	if strings.HasPrefix(args[0], "-") {
		return cmdRepl(args)
	}
	return cmdRun(args)
}

// parseArgs parses options into data and returns the remaining arguments.
// ok is false when parsing failed or help was shown; code is then the exit
// status.
func parseArgs(data any, usage string, args []string, extra flags.Options) (rest []string, code int, ok bool) {
	parser := flags.NewParser(data, flags.Default|extra)
	parser.Usage = usage
	rest, err := parser.ParseArgs(args)
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return nil, 0, false
		}
		return nil, 1, false
	}
	return rest, 0, true
}

// session is an interpreter runtime built from command-line options and
// the config file.
type session struct {
	rt       *runtime.Runtime
	cfg      *config.Config
	registry metrics.Registry
	stats    bool
	trace    io.Closer
}

func newSession(opts *sessionOptions, rtOpts ...runtime.Option) (*session, error) {
	setupLogging(len(opts.Verbose))

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return nil, err
	}
	if cfg.Source != "" {
		glog.V(1).Infof("config loaded from %s", cfg.Source)
	}

	s := &session{
		cfg:      cfg,
		registry: metrics.NewRegistry(),
		stats:    opts.Stats || cfg.Stats,
	}
	rtOpts = append(rtOpts, runtime.WithMetrics(s.registry))

	if opts.Trace != "" {
		f, err := os.Create(opts.Trace)
		if err != nil {
			return nil, &types.Error{Code: diagnostics.EIO, Message: fmt.Sprintf("cannot create trace file: %s", opts.Trace)}
		}
		s.trace = f
		enc := json.NewEncoder(f)
		rtOpts = append(rtOpts, runtime.WithTrace(func(ev evaluator.TraceEvent) {
			if err := enc.Encode(ev); err != nil {
				glog.Warningf("trace: %v", err)
			}
		}))
	}

	rt, err := runtime.New(rtOpts...)
	if err != nil {
		s.close()
		return nil, err
	}
	s.rt = rt

	for _, path := range cfg.Preload {
		if _, err := rt.LoadFile(path); err != nil {
			s.close()
			return nil, fmt.Errorf("preload %s: %w", path, err)
		}
	}
	return s, nil
}

func (s *session) close() {
	if s.trace != nil {
		if err := s.trace.Close(); err != nil {
			glog.Warningf("closing trace file: %v", err)
		}
	}
	if s.stats {
		metrics.WriteOnce(s.registry, os.Stderr)
	}
}

func setupLogging(verbosity int) {
	_ = flag.CommandLine.Parse(nil)
	_ = flag.Set("logtostderr", "true")
	_ = flag.Set("v", strconv.Itoa(verbosity))
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(config.ExpandHome(path))
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Load(cwd)
}

// reportError prints an evaluation failure and returns the exit status.
func reportError(err error) int {
	fmt.Fprintln(os.Stderr, runtime.ErrorText(err))
	var malErr *types.Error
	if errors.As(err, &malErr) {
		return diagnostics.ExitCode(malErr.Code)
	}
	return 1
}

func cmdRun(args []string) int {
	var opts sessionOptions
	rest, code, ok := parseArgs(&opts, "[OPTIONS] <file> [args...]", args, flags.PassAfterNonOption)
	if !ok {
		return code
	}
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "usage: mal run <file> [args...]")
		return 1
	}

	s, err := newSession(&opts, runtime.WithArgv(rest[1:]))
	if err != nil {
		return reportError(err)
	}
	defer s.close()

	if _, err := s.rt.LoadFile(rest[0]); err != nil {
		return reportError(err)
	}
	return 0
}

func cmdCheck(args []string) int {
	var opts checkOptions
	files, code, ok := parseArgs(&opts, "[OPTIONS] <file>...", args, flags.None)
	if !ok {
		return code
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: mal check [--pretty] <file>...")
		return 1
	}

	var diags []diagnostics.Diagnostic
	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			diags = append(diags, diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read file: %s", file), nil, ""))
			continue
		}
		diags = append(diags, runtime.Check(string(source), file)...)
	}

	if len(diags) > 0 {
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics(diags, opts.Pretty))
		return diagnostics.ExitCode(diags[0].Code)
	}
	if opts.Pretty {
		fmt.Println("No errors found.")
	} else {
		fmt.Println("[]")
	}
	return 0
}

func cmdFmt(args []string) int {
	var opts fmtOptions
	files, code, ok := parseArgs(&opts, "[OPTIONS] <file>", args, flags.None)
	if !ok {
		return code
	}
	if len(files) != 1 {
		fmt.Fprintln(os.Stderr, "usage: mal fmt [--write] <file>")
		return 1
	}
	file := files[0]

	sourceBytes, err := os.ReadFile(file)
	if err != nil {
		diag := diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read file: %s", file), nil, "")
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics([]diagnostics.Diagnostic{diag}, false))
		return 1
	}
	source := string(sourceBytes)

	formatted, err := runtime.Format(source, file)
	if err != nil {
		diag := types.AsError(err).Diagnostic()
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics([]diagnostics.Diagnostic{diag}, false))
		return 2
	}

	if formatter.HasComments(source) {
		fmt.Fprintln(os.Stderr, "warning: comments are not preserved by the formatter")
	}

	if opts.Write {
		if err := os.WriteFile(file, []byte(formatted), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing file: %s\n", err)
			return 1
		}
		return 0
	}
	fmt.Print(formatted)
	return 0
}

func cmdHelp(args []string) int {
	showIndex := false
	topic := ""
	for _, arg := range args {
		if arg == "--index" {
			showIndex = true
		} else if !strings.HasPrefix(arg, "-") {
			topic = arg
		}
	}

	if showIndex {
		if topic != "" && topic != "stdlib" {
			fmt.Fprintln(os.Stderr, "error: --index is only supported for the stdlib topic")
			return 1
		}
		fmt.Print(help.StdlibIndex())
		return 0
	}

	if topic == "" {
		fmt.Print(help.QUICKREF)
		return 0
	}

	_, content, err := help.MatchTopic(topic)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nAvailable topics: %s\n", err, strings.Join(help.TopicList, ", "))
		return 1
	}
	fmt.Print(content)
	return 0
}
