// Package runtime provides the top-level mal runtime orchestrator.
package runtime

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"
	metrics "github.com/rcrowley/go-metrics"

	"github.com/ToucheSir/mal/pkg/diagnostics"
	"github.com/ToucheSir/mal/pkg/evaluator"
	"github.com/ToucheSir/mal/pkg/formatter"
	"github.com/ToucheSir/mal/pkg/printer"
	"github.com/ToucheSir/mal/pkg/reader"
	"github.com/ToucheSir/mal/pkg/stdlib"
	"github.com/ToucheSir/mal/pkg/types"
	"github.com/ToucheSir/mal/pkg/validator"
)

// MetricRepLatency times each Rep call.
const MetricRepLatency = "rep.latency"

// HostLanguage is bound to *host-language*.
const HostLanguage = "go"

// Prelude is evaluated once in the root environment before any user code.
const Prelude = `
(def! not (fn* (a) (if a false true)))

(def! load-file
  (fn* (f) (eval (read-string (str "(do " (slurp f) "\nnil)")))))

(defmacro! cond
  (fn* (& xs)
    (if (> (count xs) 0)
      (list 'if (first xs)
        (if (> (count xs) 1)
          (nth xs 1)
          (throw "odd number of forms to cond"))
        (cons 'cond (rest (rest xs)))))))

(def! *gensym-counter* (atom 0))

(def! gensym
  (fn* () (symbol (str "G__" (swap! *gensym-counter* (fn* (x) (+ 1 x)))))))

(defmacro! or
  (fn* (& xs)
    (if (empty? xs)
      nil
      (if (= 1 (count xs))
        (first xs)
        (let* (condvar (gensym))
          ` + "`" + `(let* (~condvar ~(first xs))
             (if ~condvar ~condvar (or ~@(rest xs)))))))))
`

// LineReader reads one line of input after showing prompt. ok is false at
// end of input.
type LineReader func(prompt string) (line string, ok bool)

// Runtime wires together the reader, evaluator, primitives and root
// environment of one interpreter session.
type Runtime struct {
	stdlib     *stdlib.Registry
	registry   metrics.Registry
	trace      func(event evaluator.TraceEvent)
	stdout     io.Writer
	lineReader LineReader
	argv       []string

	ev      *evaluator.Evaluator
	env     *types.Env
	latency metrics.Timer
}

// Option is a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithStdlib sets the primitive registry.
func WithStdlib(r *stdlib.Registry) Option {
	return func(rt *Runtime) {
		rt.stdlib = r
	}
}

// WithStdout sets where prn and println write.
func WithStdout(w io.Writer) Option {
	return func(rt *Runtime) {
		rt.stdout = w
	}
}

// WithLineReader sets the input source used by readline.
func WithLineReader(fn LineReader) Option {
	return func(rt *Runtime) {
		rt.lineReader = fn
	}
}

// WithArgv sets the values bound to *ARGV*. Invalid UTF-8 in an argument
// is replaced with U+FFFD.
func WithArgv(args []string) Option {
	return func(rt *Runtime) {
		rt.argv = args
	}
}

// WithMetrics sets the registry receiving evaluator and runtime metrics.
func WithMetrics(r metrics.Registry) Option {
	return func(rt *Runtime) {
		rt.registry = r
	}
}

// WithTrace sets the trace callback.
func WithTrace(fn func(event evaluator.TraceEvent)) Option {
	return func(rt *Runtime) {
		rt.trace = fn
	}
}

// New creates a Runtime with the given options, installs the primitives and
// evaluates the prelude. By default the stdlib defaults are registered and
// output goes to os.Stdout.
func New(opts ...Option) (*Runtime, error) {
	stdlibReg := stdlib.NewRegistry()
	stdlib.RegisterDefaults(stdlibReg)

	rt := &Runtime{
		stdlib: stdlibReg,
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.registry == nil {
		rt.registry = metrics.NewRegistry()
	}
	if rt.lineReader == nil {
		rt.lineReader = stdinLineReader(rt.stdout)
	}

	evOpts := []evaluator.Option{evaluator.WithMetrics(rt.registry)}
	if rt.trace != nil {
		evOpts = append(evOpts, evaluator.WithTrace(rt.trace))
	}
	rt.ev = evaluator.New(evOpts...)
	rt.latency = metrics.GetOrRegisterTimer(MetricRepLatency, rt.registry)

	rt.env = types.NewEnv(nil)
	rt.stdlib.Install(rt.env, rt)
	rt.env.Set(types.Intern("eval"), &types.Func{Name: "eval", Fn: rt.evalPrimitive})
	rt.env.Set(types.Intern("*host-language*"), types.NewStr(HostLanguage))
	argv := make([]types.Value, len(rt.argv))
	for i, a := range rt.argv {
		argv[i] = types.NewStr(strings.ToValidUTF8(a, "\uFFFD"))
	}
	rt.env.Set(types.Intern("*ARGV*"), types.NewList(argv...))

	if _, err := rt.EvalString(Prelude, "<prelude>"); err != nil {
		return nil, fmt.Errorf("prelude: %w", err)
	}
	glog.V(1).Infof("runtime ready: %d primitives installed", len(rt.stdlib.All()))
	return rt, nil
}

func stdinLineReader(prompt io.Writer) LineReader {
	scanner := bufio.NewScanner(os.Stdin)
	return func(p string) (string, bool) {
		fmt.Fprint(prompt, p)
		if !scanner.Scan() {
			return "", false
		}
		return scanner.Text(), true
	}
}

// evalPrimitive implements eval: its argument is evaluated in the root
// environment regardless of where eval is called.
func (rt *Runtime) evalPrimitive(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return nil, types.ArityError("eval: wrong number of arguments: expected 1, got %d", len(args))
	}
	return rt.ev.Eval(args[0], rt.env)
}

// Env returns the root environment.
func (rt *Runtime) Env() *types.Env {
	return rt.env
}

// Metrics returns the metrics registry.
func (rt *Runtime) Metrics() metrics.Registry {
	return rt.registry
}

// Apply implements stdlib.Host.
func (rt *Runtime) Apply(fn types.Value, args []types.Value) (types.Value, error) {
	return rt.ev.Apply(fn, args)
}

// Stdout implements stdlib.Host.
func (rt *Runtime) Stdout() io.Writer {
	return rt.stdout
}

// ReadLine implements stdlib.Host.
func (rt *Runtime) ReadLine(prompt string) (string, bool) {
	return rt.lineReader(prompt)
}

// Eval evaluates a single form in the root environment.
func (rt *Runtime) Eval(form types.Value) (types.Value, error) {
	return rt.ev.Eval(form, rt.env)
}

// EvalString reads every form in source and evaluates them in order,
// returning the value of the last one. Source without forms yields nil.
func (rt *Runtime) EvalString(source, filename string) (types.Value, error) {
	forms, err := reader.ReadAll(source, filename)
	if err != nil {
		return nil, err
	}
	var result types.Value = types.NewNil()
	for _, form := range forms {
		result, err = rt.ev.Eval(form, rt.env)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Rep reads, evaluates and prints one REPL entry. The boolean result is
// false when the entry held no forms and nothing should be printed.
func (rt *Runtime) Rep(line string) (string, bool, error) {
	start := time.Now()
	defer func() {
		rt.latency.UpdateSince(start)
		if glog.V(2) {
			glog.Infof("rep took %s", time.Since(start))
		}
	}()

	forms, err := reader.ReadAll(line, "<repl>")
	if err != nil {
		return "", false, err
	}
	if len(forms) == 0 {
		return "", false, nil
	}
	var result types.Value
	for _, form := range forms {
		result, err = rt.ev.Eval(form, rt.env)
		if err != nil {
			return "", false, err
		}
	}
	return printer.Render(result, true), true, nil
}

// LoadFile evaluates every form of the file at path.
func (rt *Runtime) LoadFile(path string) (types.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.Error{Code: diagnostics.EIO, Message: err.Error()}
	}
	v, err := rt.EvalString(string(data), path)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("loaded %s", path)
	return v, nil
}

// Check reads source and validates special-form shapes without evaluating.
func Check(source, filename string) []diagnostics.Diagnostic {
	forms, err := reader.ReadAll(source, filename)
	if err != nil {
		return []diagnostics.Diagnostic{types.AsError(err).Diagnostic()}
	}
	return validator.Validate(forms)
}

// Format reads source and re-renders its forms.
func Format(source, filename string) (string, error) {
	forms, err := reader.ReadAll(source, filename)
	if err != nil {
		return "", err
	}
	return formatter.Format(forms), nil
}

// ErrorText renders an evaluation failure the way the REPL reports it.
// Thrown values are printed readably.
func ErrorText(err error) string {
	var malErr *types.Error
	if errors.As(err, &malErr) && malErr.Code == diagnostics.EThrow {
		return "Error: " + printer.Render(malErr.Payload, true)
	}
	return "Error: " + err.Error()
}
