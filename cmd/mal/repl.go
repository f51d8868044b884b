package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
	flags "github.com/jessevdk/go-flags"
	"github.com/peterh/liner"

	"github.com/ToucheSir/mal/pkg/config"
	"github.com/ToucheSir/mal/pkg/help"
	"github.com/ToucheSir/mal/pkg/reader"
	"github.com/ToucheSir/mal/pkg/runtime"
)

func cmdRepl(args []string) int {
	var opts sessionOptions
	rest, code, ok := parseArgs(&opts, "[OPTIONS]", args, flags.None)
	if !ok {
		return code
	}
	if len(rest) > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", rest[0])
		return 1
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	s, err := newSession(&opts, runtime.WithLineReader(func(prompt string) (string, bool) {
		line, err := ln.Prompt(prompt)
		return line, err == nil
	}))
	if err != nil {
		return reportError(err)
	}
	defer s.close()

	histPath := config.ExpandHome(s.cfg.HistoryFile)
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	fmt.Printf("mal %s; Ctrl-D exits\n", help.Version)
	runREPL(ln, s.rt, s.cfg.Prompt)
	fmt.Println()

	if histPath != "" {
		if err := saveHistory(ln, histPath, s.cfg.HistoryLimit); err != nil {
			glog.Warningf("saving history: %v", err)
		}
	}
	return 0
}

// runREPL reads entries until end of input. An entry that ends inside a
// form continues on the next line.
func runREPL(ln *liner.State, rt *runtime.Runtime, prompt string) {
	cont := strings.Repeat(" ", len(prompt))
	var buf strings.Builder
	for {
		p := prompt
		if buf.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			buf.Reset()
			continue
		}
		if err != nil {
			glog.Errorf("reading input: %v", err)
			return
		}

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)
		entry := buf.String()

		out, printed, err := rt.Rep(entry)
		if err != nil && reader.IsIncomplete(err) {
			continue
		}
		buf.Reset()
		if strings.TrimSpace(entry) != "" {
			ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))
		}
		switch {
		case err != nil:
			fmt.Println(runtime.ErrorText(err))
		case printed:
			fmt.Println(out)
		}
	}
}

// saveHistory writes at most limit of the most recent entries to path.
func saveHistory(ln *liner.State, path string, limit int) error {
	var buf bytes.Buffer
	if _, err := ln.WriteHistory(&buf); err != nil {
		return err
	}
	lines := strings.SplitAfter(buf.String(), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "")), 0o600)
}
