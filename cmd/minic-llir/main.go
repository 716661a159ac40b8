// Command minic-llir is the driver for the minic-llir compiler frontend: it
// reads a source file, runs it through the lexer, parser, and code
// generator, and writes the resulting LLVM IR (or, with a debug flag, an
// intermediate stage) to stdout or to a file.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/daizxn/minic-llir/pkg/ast"
	"github.com/daizxn/minic-llir/pkg/codegen"
	"github.com/daizxn/minic-llir/pkg/diag"
	"github.com/daizxn/minic-llir/pkg/lexer"
	"github.com/daizxn/minic-llir/pkg/parser"
)

var version = "0.1.0"

var (
	dumpAST    bool
	dumpTokens bool
	emitLLOnly bool
	outputPath string
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "minic-llir [file]",
		Short:   "minic-llir compiles a disciplined C subset to LLVM IR",
		Long: `minic-llir is a compiler frontend for a small imperative language: a
disciplined subset of C with integer and byte scalars, multi-dimensional
arrays, functions, and structured control flow. It lexes and parses the
source, lowers it to LLVM IR via github.com/llir/llvm, and prints the
resulting module.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return compileFile(args[0], out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVar(&dumpTokens, "dump-tokens", false, "print the token stream instead of compiling")
	rootCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST instead of compiling")
	rootCmd.Flags().BoolVarP(&emitLLOnly, "emit-llvm", "S", false, "emit textual LLVM IR (the default output form)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write output to this file instead of stdout")

	return rootCmd
}

func compileFile(filename string, out, errOut io.Writer) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "minic-llir: %v\n", err)
		return err
	}

	w := out
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			fmt.Fprintf(errOut, "minic-llir: %v\n", err)
			return err
		}
		defer f.Close()
		w = f
	}

	switch {
	case dumpTokens:
		return dumpTokenStream(filename, string(content), w)
	case dumpAST:
		return dumpParsedAST(filename, string(content), w, errOut)
	default:
		return compileToLLVM(filename, string(content), w, errOut)
	}
}

func dumpTokenStream(filename, src string, w io.Writer) error {
	l := lexer.New(filename, src)
	for {
		tok := l.NextToken()
		fmt.Fprintf(w, "%s\t%-10s %q\n", tok.Location, tok.Kind, tok.Lexeme)
		if tok.Kind == lexer.EOF {
			return nil
		}
	}
}

func dumpParsedAST(filename, src string, w, errOut io.Writer) error {
	unit, diags := parseSource(filename, src)
	fmt.Fprintln(w, ast.Dump(unit))
	return reportDiagnostics(filename, diags, errOut)
}

func compileToLLVM(filename, src string, w, errOut io.Writer) error {
	unit, diags := parseSource(filename, src)
	if diags.HasErrors() {
		return reportDiagnostics(filename, diags, errOut)
	}

	gen := codegen.New(filename)
	module, genDiags := gen.Gen(unit)
	fmt.Fprintln(w, module.String())
	return reportDiagnostics(filename, genDiags, errOut)
}

func parseSource(filename, src string) (*ast.CompUnit, diag.Diagnostics) {
	l := lexer.New(filename, src)
	p := parser.New(l)
	unit := p.Parse()
	return unit, p.Diagnostics()
}

func reportDiagnostics(filename string, diags diag.Diagnostics, errOut io.Writer) error {
	if !diags.HasErrors() {
		return nil
	}
	for _, d := range diags {
		fmt.Fprintf(errOut, "%s\n", d)
	}
	return fmt.Errorf("%s: %d error(s)", filename, len(diags))
}
