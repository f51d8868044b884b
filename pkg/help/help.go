// Package help holds the reference text printed by `mal help`.
package help

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ToucheSir/mal/pkg/stdlib"
)

// Version is the interpreter version reported by the CLI.
const Version = "0.1.0"

// QUICKREF is printed by `mal help` without a topic.
const QUICKREF = `mal v` + Version + ` - a small Lisp interpreter

USAGE
  mal                     start the REPL
  mal <file> [args...]    run a program; args are bound to *ARGV*
  mal run <file> [args]   same as above
  mal check <file>        read and shape-check without evaluating
  mal fmt <file>          print the canonical layout of a program
  mal help [topic]        show this text or a topic

TOPICS
  syntax        literals, reader macros, comments
  types         the value model and truthiness
  forms         special forms: def! let* do if fn* quote try* ...
  macros        defmacro!, quasiquote, macroexpand
  errors        throw, try*/catch*, host errors
  stdlib        primitive functions (add --index for the full list)
  diagnostics   error codes and exit statuses
  repl          prompt, history, configuration
  examples      short programs

Run "mal help <topic>" for details. Topic names may be abbreviated.
`

// TopicList is the display order of the help topics.
var TopicList = []string{
	"syntax",
	"types",
	"forms",
	"macros",
	"errors",
	"stdlib",
	"diagnostics",
	"repl",
	"examples",
}

// Topics maps topic names to their text.
var Topics = map[string]string{
	"syntax": `SYNTAX

  123  -7               integers (64-bit)
  "text\n"              strings; escapes \" \\ \n
  :name                 keyword
  name                  symbol
  (a b c)               list
  [a b c]               vector
  {:k 1 "s" 2}          map; keys are strings or keywords
  ; comment             to end of line; commas are whitespace

Reader macros
  'x    (quote x)
  ` + "`" + `x    (quasiquote x)
  ~x    (unquote x)
  ~@x   (splice-unquote x)
  @x    (deref x)
  ^m x  (with-meta x m)
`,

	"types": `TYPES

  nil  true  false      the only falsy values are nil and false
  number                64-bit signed integer
  string  keyword  symbol
  list  vector          sequential; equal when elements are equal
  map                   string/keyword keys, printed in key order
  function  macro       closures and host primitives
  atom                  mutable reference: atom deref reset! swap!

Lists are persistent: cons and rest share structure with their input.
`,

	"forms": `SPECIAL FORMS

  (def! sym expr)              bind in the current environment
  (let* (s1 e1 s2 e2) body...) sequential local bindings
  (do e1 e2 ...)               evaluate in order, return the last
  (if c then [else])           else defaults to nil
  (fn* (a b & rest) body...)   closure; & collects remaining args
  (quote x)                    x unevaluated
  (quasiquote x)               template, see "macros"
  (quasiquoteexpand x)         show the quasiquote rewrite
  (defmacro! sym fn)           define a macro
  (macroexpand form)           expand macros at the head of form
  (try* expr (catch* e body))  handle errors, see "errors"

Calls in tail position (if branches, last form of do/let*/fn*,
catch* bodies) do not grow the stack.
`,

	"macros": `MACROS

  (defmacro! unless (fn* (c a b) ` + "`" + `(if ~c ~b ~a)))
  (unless false 1 2)                  => 1
  (macroexpand (unless false 1 2))    => (if false 2 1)

Macros receive their arguments unevaluated and return a form that is
evaluated in place of the call. Expansion repeats until the head is no
longer a macro.

The prelude defines cond, or and gensym.
`,

	"errors": `ERRORS

  (throw value)                 raise any value
  (try* expr (catch* e body))   bind the raised value to e

Failures raised by the interpreter itself (unknown symbols, wrong
argument counts, bad arguments to primitives) are caught as strings
describing the problem.

  (try* (throw {:code 1}) (catch* e (get e :code)))   => 1
  (try* (nth [] 1) (catch* e e))  => "nth: index 1 out of range"
`,

	"stdlib": `STDLIB

  arithmetic   + - * / < <= > >= time-ms
  predicates   = nil? true? false? symbol? keyword? string? number?
               list? vector? map? atom? fn? macro? sequential?
               empty? contains?
  sequences    list vector vec count cons concat nth first rest
               conj seq apply map
  maps         hash-map assoc dissoc get keys vals
  text / io    symbol keyword pr-str str prn println read-string
               slurp readline
  atoms        atom deref reset! swap!
  metadata     with-meta meta
  control      throw eval load-file

Run "mal help stdlib --index" for the complete list.
`,

	"diagnostics": `DIAGNOSTICS

  E_READ     malformed source                  exit 2
  E_SHAPE    special form with a bad shape     exit 2
  E_LOOKUP   unbound symbol                    exit 4
  E_ARITY    wrong number of arguments         exit 4
  E_HOST     primitive failure                 exit 4
  E_THROW    uncaught throw                    exit 3
  E_IO       file could not be read            exit 1

"mal check --pretty" prints diagnostics for humans; the default is
JSON, one object per diagnostic.
`,

	"repl": `REPL

  Enter forms at the prompt. Input that ends inside a form continues on
  the next line. Ctrl-D exits, Ctrl-C discards the current entry.

Configuration is read from .mal.toml in the current directory, falling
back to ~/.mal/config.toml:

  prompt = "user> "
  history_file = "~/.mal_history"
  history_limit = 1000
  stats = false
  preload = ["~/lib/core.mal"]
`,

	"examples": `EXAMPLES

  (def! fib (fn* (n) (if (< n 2) n (+ (fib (- n 1)) (fib (- n 2))))))
  (fib 20)                                    => 6765

  (def! sum (fn* (n acc) (if (= n 0) acc (sum (- n 1) (+ n acc)))))
  (sum 100000 0)                              => 5000050000

  (def! counter (atom 0))
  (swap! counter + 5)                         => 5

  (map (fn* (x) (* x x)) [1 2 3])             => (1 4 9)
`,
}

// MatchTopic resolves a topic by exact name or unique prefix.
func MatchTopic(query string) (string, string, error) {
	if content, ok := Topics[query]; ok {
		return query, content, nil
	}
	var matches []string
	for _, name := range TopicList {
		if strings.HasPrefix(name, query) {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 0:
		return "", "", fmt.Errorf("unknown help topic %q", query)
	case 1:
		return matches[0], Topics[matches[0]], nil
	}
	return "", "", fmt.Errorf("ambiguous help topic %q: %s", query, strings.Join(matches, ", "))
}

// preludeNames are defined in mal source at startup rather than registered
// as primitives.
var preludeNames = []string{"cond", "eval", "gensym", "load-file", "not", "or"}

// StdlibIndex lists every primitive and prelude definition.
func StdlibIndex() string {
	reg := stdlib.NewRegistry()
	stdlib.RegisterDefaults(reg)
	names := append(reg.Names(), preludeNames...)
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("STDLIB INDEX\n\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", name)
	}
	fmt.Fprintf(&b, "\nTotal: %d functions\n", len(names))
	return b.String()
}
