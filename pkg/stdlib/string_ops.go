package stdlib

import (
	"fmt"
	"os"

	"github.com/ToucheSir/mal/pkg/printer"
	"github.com/ToucheSir/mal/pkg/reader"
	"github.com/ToucheSir/mal/pkg/types"
)

// symbol name → interned symbol
func stdlibSymbol(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("symbol", args, 1); err != nil {
		return nil, err
	}
	name, err := strArg(args, 0)
	if err != nil {
		return nil, err
	}
	return types.Intern(name), nil
}

// keyword name → keyword; keywords are returned unchanged
func stdlibKeyword(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("keyword", args, 1); err != nil {
		return nil, err
	}
	if kw, ok := args[0].(types.Keyword); ok {
		return kw, nil
	}
	name, err := strArg(args, 0)
	if err != nil {
		return nil, err
	}
	return types.NewKeyword(name), nil
}

// pr-str x... → readable renderings joined by spaces
func stdlibPrStr(_ Host, args []types.Value) (types.Value, error) {
	return types.NewStr(printer.Join(args, " ", true)), nil
}

// str x... → plain renderings concatenated
func stdlibStr(_ Host, args []types.Value) (types.Value, error) {
	return types.NewStr(printer.Join(args, "", false)), nil
}

func stdlibPrn(h Host, args []types.Value) (types.Value, error) {
	if _, err := fmt.Fprintln(h.Stdout(), printer.Join(args, " ", true)); err != nil {
		return nil, err
	}
	return types.NewNil(), nil
}

func stdlibPrintln(h Host, args []types.Value) (types.Value, error) {
	if _, err := fmt.Fprintln(h.Stdout(), printer.Join(args, " ", false)); err != nil {
		return nil, err
	}
	return types.NewNil(), nil
}

// read-string text → first form in text
func stdlibReadString(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("read-string", args, 1); err != nil {
		return nil, err
	}
	text, err := strArg(args, 0)
	if err != nil {
		return nil, err
	}
	return reader.Read(text)
}

// slurp path → file contents as a string
func stdlibSlurp(_ Host, args []types.Value) (types.Value, error) {
	if err := checkArity("slurp", args, 1); err != nil {
		return nil, err
	}
	path, err := strArg(args, 0)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !types.ValidText(string(data)) {
		return nil, fmt.Errorf("%s is not valid UTF-8", path)
	}
	return types.NewStr(string(data)), nil
}

// readline prompt → next input line, nil at end of input
func stdlibReadline(h Host, args []types.Value) (types.Value, error) {
	if err := checkArity("readline", args, 1); err != nil {
		return nil, err
	}
	prompt, err := strArg(args, 0)
	if err != nil {
		return nil, err
	}
	line, ok := h.ReadLine(prompt)
	if !ok {
		return types.NewNil(), nil
	}
	if !types.ValidText(line) {
		return nil, fmt.Errorf("input line is not valid UTF-8")
	}
	return types.NewStr(line), nil
}
