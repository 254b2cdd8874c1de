package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: postbuild <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Compile post templates into markdown")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'postbuild help <command>' for details on a specific command.")
}

// printSharedFlags prints the flags accepted by build and config.
func printSharedFlags(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --templates <dir>     Template directory (default \"templates\")")
	fmt.Fprintln(w, "      --ext <ext>           Template extension (default \".j2\")")
	fmt.Fprintln(w, "  -o, --output <dir>        Build directory, wiped on every run (default \"build\")")
	fmt.Fprintln(w, "      --root <dir>          Repository root for included files (default \".\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content:")
	fmt.Fprintln(w, "      --marker <name>       TOC marker, as in <!-- name --> (default \"wotw_toc\")")
	fmt.Fprintln(w, "      --style <name>        Chroma style for highlighted code (default \"monokai\")")
	fmt.Fprintln(w, "      --html                Also write an HTML rendering of each post")
	fmt.Fprintln(w, "      --theme <name>        Page theme for --html (default \"default\")")
	fmt.Fprintln(w, "      --assets <dir>        Custom themes: styles/<name>.css, pages/<name>.html")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: postbuild build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile every post-*<ext> template into the build directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Template functions:")
	fmt.Fprintln(w, "  include_with_default(tag, path[, lang])   File at a git revision, else local copy")
	fmt.Fprintln(w, "  highlight_block(content[, lang])          Inline-styled HTML code block")
	fmt.Fprintln(w, "  num2words(n)                              English words for a number")
	fmt.Fprintln(w, "  run_bash(arg, ...)                        Command and its output")
	fmt.Fprintln(w, "  today([format])                           Build date, e.g. today(\"long\")")
	fmt.Fprintln(w)
	printSharedFlags(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: postbuild config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration a build would use, as YAML.")
	fmt.Fprintln(w)
	printSharedFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: postbuild version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: postbuild help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
