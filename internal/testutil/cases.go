// Package testutil provides shared test helpers for mal Go tests.
package testutil

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CasesDir is the relative path from the module root to the case files.
const CasesDir = "testdata"

// Case is one REPL entry from a case file together with what it must
// produce.
type Case struct {
	File  string
	Line  int
	Input string

	// Output holds patterns matched against the lines printed while the
	// input is evaluated, including the REPL's "Error: ..." line.
	Output []string

	// Result is the expected printed value when HasResult is set.
	Result    string
	HasResult bool
}

// LoadCases parses a case file. Each non-comment line is an input; the
// lines that follow it may carry expectations:
//
//	;=>value     the printed result
//	;/pattern    a regular expression for one line of printed output
//
// Any other line starting with ';' is a comment.
func LoadCases(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cases []Case
	var cur *Case
	flush := func() {
		if cur != nil {
			cases = append(cases, *cur)
			cur = nil
		}
	}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case strings.HasPrefix(line, ";=>"):
			if cur != nil {
				cur.Result = strings.TrimPrefix(line, ";=>")
				cur.HasResult = true
			}
			flush()
		case strings.HasPrefix(line, ";/"):
			if cur != nil {
				cur.Output = append(cur.Output, strings.TrimPrefix(line, ";/"))
			}
		case strings.HasPrefix(trimmed, ";"):
			// comment
		default:
			flush()
			cur = &Case{File: filepath.Base(path), Line: lineNo, Input: line}
		}
	}
	flush()
	return cases, scanner.Err()
}

// ListCaseFiles returns the .mal files under root in name order.
func ListCaseFiles(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".mal") {
			files = append(files, filepath.Join(root, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
