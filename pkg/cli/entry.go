package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/oinkcat/scripting-lang/internal/ast"
	"github.com/oinkcat/scripting-lang/internal/config"
	"github.com/oinkcat/scripting-lang/internal/evaluator"
	"github.com/oinkcat/scripting-lang/internal/lexer"
	"github.com/oinkcat/scripting-lang/internal/modules"
	"github.com/oinkcat/scripting-lang/internal/parser"
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

// Run is the interpreter entry point. It returns the process exit
// code.
func Run(args []string) int {
	if len(args) == 1 && (args[0] == "-version" || args[0] == "--version") {
		fmt.Println("li", config.Version)
		return 0
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: li <script"+config.SourceFileExt+">")
		return 2
	}

	path := args[0]
	if !isSourceFile(path) {
		printError(os.Stderr, fmt.Sprintf("not a source file: %s", path))
		return 1
	}

	if err := RunFile(path, os.Stdout); err != nil {
		printError(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// RunFile loads, parses and executes one script, writing emitted
// values to out. The host side of the event loop posts the start event
// and closes the queue, so a script's StartLoop drains it and returns.
func RunFile(path string, out io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	scriptDir := filepath.Dir(path)
	cfg, err := LoadConfig(scriptDir)
	if err != nil {
		return err
	}

	p := parser.New(lexer.New(string(src)))
	program := p.ParseProgram()
	program.File = path
	if msgs := p.Errors(); len(msgs) > 0 {
		return fmt.Errorf("%s: %s", evaluator.SyntaxError, msgs[0])
	}

	eval := evaluator.New()
	eval.Out = out

	env := evaluator.NewEnvironment()
	evaluator.RegisterBuiltins(env)
	for name, value := range cfg.Shared {
		env.Declare(name, sharedValue(value))
	}

	registry := modules.NewRegistry()

	dispatcher := modules.NewDispatcher(eval)
	registry.Register(dispatcher.Module())
	dispatcher.Post(config.EventStart, nil)
	dispatcher.Close()

	if usesModule(program, "store") {
		st, err := modules.OpenStore(cfg.StorePath(scriptDir))
		if err != nil {
			return err
		}
		defer st.Close()
		registry.Register(st.Module())
	}

	eval.Modules = registry

	if result := eval.RunProgram(program, env); result.Type() == evaluator.ERROR_OBJ {
		return fmt.Errorf("%s", result.Inspect())
	}
	return nil
}

// usesModule reports whether the program imports the named native
// module. The store database is only opened when asked for.
func usesModule(program *ast.Program, name string) bool {
	for _, imp := range program.Imports {
		for _, imported := range imp.Names {
			if imported == name {
				return true
			}
		}
	}
	return false
}

// printError writes an error line to w, in red when w is a terminal.
func printError(w io.Writer, msg string) {
	f, ok := w.(*os.File)
	colored := ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	if colored {
		fmt.Fprintf(w, "\x1b[31m%s\x1b[0m\n", msg)
	} else {
		fmt.Fprintln(w, msg)
	}
}
