package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
// args[0] is the program name, as in os.Args.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch {
	case cmd == "convert":
		return runConvertCmd(rest, env)
	case cmd == "doctor":
		return runDoctorCmd(rest, env)
	case cmd == "completion":
		return runCompletionCmd(rest, env)
	case isCommand(cmd, "version"):
		fmt.Fprintf(env.Stdout, "html2pdf %s\n", Version)
		return ExitSuccess
	case isCommand(cmd, "help"):
		runHelp(rest, env)
		return ExitSuccess
	case looksLikeInput(cmd):
		// "html2pdf page.html" is shorthand for "html2pdf convert page.html".
		return runConvertCmd(args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// isCommand matches a command name or its flag spelling (help, --help, -h).
func isCommand(arg, name string) bool {
	return arg == name || arg == "--"+name || arg == "-"+name[:1]
}

// looksLikeInput reports whether arg names a file the convert command accepts.
func looksLikeInput(arg string) bool {
	return inputExtensions[strings.ToLower(filepath.Ext(arg))]
}
