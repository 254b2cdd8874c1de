package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-postbuild/internal/assets"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

var supportedShells = []Shell{ShellBash, ShellZsh, ShellFish, ShellPowerShell}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags, comma separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Args  []string // fixed positional values, e.g. shell names
}

// completionMeta holds completion hints that a FlagSet cannot express.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
func flagCompletionMeta() map[string]completionMeta {
	return map[string]completionMeta{
		"style": {Values: styles.Names()},
		"theme": {Values: assets.NewEmbeddedLoader().Themes()},

		"config": {FileGlob: "*.yaml,*.yml"},

		"templates": {IsDir: true},
		"output":    {IsDir: true},
		"root":      {IsDir: true},
		"assets":    {IsDir: true},
	}
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	meta := flagCompletionMeta()
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}
		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}

		if m, ok := meta[f.Name]; ok {
			switch {
			case len(m.Values) > 0:
				fd.Type = flagEnum
				fd.Values = m.Values
			case m.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = m.FileGlob
			case m.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	buildSet, _ := newBuildFlagSet("build")
	configSet, _ := newBuildFlagSet("config")

	commandNames := []string{"build", "config", "version", "help", "completion"}
	shells := make([]string, len(supportedShells))
	for i, s := range supportedShells {
		shells[i] = string(s)
	}

	return []commandDef{
		{Name: "build", Desc: "Compile post templates into markdown", Flags: extractFlagsFromFlagSet(buildSet)},
		{Name: "config", Desc: "Print the effective configuration", Flags: extractFlagsFromFlagSet(configSet)},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command", Args: commandNames},
		{Name: "completion", Desc: "Generate shell completion script", Args: shells},
	}
}

// GenerateCompletion writes shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	commands := getCommands()

	var script string
	switch shell {
	case ShellBash:
		script = bashScript(commands)
	case ShellZsh:
		script = zshScript(commands)
	case ShellFish:
		script = fishScript(commands)
	case ShellPowerShell:
		script = powerShellScript(commands)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: %v", ErrUnexpectedArgs, args[1:])
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: postbuild completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(postbuild completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(postbuild completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    postbuild completion fish > ~/.config/fish/completions/postbuild.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    postbuild completion powershell | Out-String | Invoke-Expression")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func bashScript(commands []commandDef) string {
	var sb strings.Builder

	sb.WriteString("# bash completion for postbuild\n\n")
	sb.WriteString("_postbuild_completions() {\n")
	sb.WriteString("    local cur prev cmd\n")
	sb.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	sb.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	sb.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	sb.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&sb, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(commandNameList(commands), " "))
	sb.WriteString("        return\n")
	sb.WriteString("    fi\n\n")
	sb.WriteString("    case \"${cmd}\" in\n")

	for _, cmd := range commands {
		if len(cmd.Flags) == 0 && len(cmd.Args) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "    %s)\n", cmd.Name)

		if len(cmd.Flags) > 0 {
			sb.WriteString("        case \"${prev}\" in\n")
			for _, f := range cmd.Flags {
				reply := bashValueReply(f)
				if reply == "" {
					continue
				}
				fmt.Fprintf(&sb, "        %s)\n            %s\n            return\n            ;;\n", bashFlagPattern(f), reply)
			}
			sb.WriteString("        esac\n")
		}

		var words []string
		words = append(words, cmd.Args...)
		for _, f := range cmd.Flags {
			words = append(words, "--"+f.Long)
			if f.Short != "" {
				words = append(words, "-"+f.Short)
			}
		}
		fmt.Fprintf(&sb, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(words, " "))
		sb.WriteString("        ;;\n")
	}

	sb.WriteString("    esac\n")
	sb.WriteString("}\n\n")
	sb.WriteString("complete -F _postbuild_completions postbuild\n")
	return sb.String()
}

func bashFlagPattern(f flagDef) string {
	if f.Short != "" {
		return "-" + f.Short + "|--" + f.Long
	}
	return "--" + f.Long
}

// bashValueReply returns the COMPREPLY assignment for a flag's value, or ""
// when the flag takes none.
func bashValueReply(f flagDef) string {
	switch f.Type {
	case flagEnum:
		return fmt.Sprintf("COMPREPLY=($(compgen -W %q -- \"${cur}\"))", strings.Join(f.Values, " "))
	case flagDir:
		return "COMPREPLY=($(compgen -d -- \"${cur}\"))"
	case flagFile:
		var parts []string
		for _, glob := range strings.Split(f.FileGlob, ",") {
			parts = append(parts, fmt.Sprintf("$(compgen -f -X '!%s' -- \"${cur}\")", glob))
		}
		parts = append(parts, "$(compgen -d -- \"${cur}\")")
		return "COMPREPLY=(" + strings.Join(parts, " ") + ")"
	case flagString:
		return "COMPREPLY=()"
	default:
		return ""
	}
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func zshScript(commands []commandDef) string {
	var sb strings.Builder

	sb.WriteString("#compdef postbuild\n\n")
	sb.WriteString("_postbuild() {\n")
	sb.WriteString("    local -a commands\n")
	sb.WriteString("    commands=(\n")
	for _, cmd := range commands {
		fmt.Fprintf(&sb, "        '%s:%s'\n", cmd.Name, zshEscape(cmd.Desc))
	}
	sb.WriteString("    )\n\n")
	sb.WriteString("    if (( CURRENT == 2 )); then\n")
	sb.WriteString("        _describe 'command' commands\n")
	sb.WriteString("        return\n")
	sb.WriteString("    fi\n\n")
	sb.WriteString("    words=(\"${words[@]:1}\")\n")
	sb.WriteString("    (( CURRENT-- ))\n\n")
	sb.WriteString("    case \"${words[1]}\" in\n")

	for _, cmd := range commands {
		switch {
		case len(cmd.Flags) > 0:
			fmt.Fprintf(&sb, "    %s)\n        _arguments \\\n", cmd.Name)
			for i, f := range cmd.Flags {
				sep := " \\"
				if i == len(cmd.Flags)-1 {
					sep = ""
				}
				fmt.Fprintf(&sb, "            %s%s\n", zshFlagSpec(f), sep)
			}
			sb.WriteString("        ;;\n")
		case len(cmd.Args) > 0:
			fmt.Fprintf(&sb, "    %s)\n        _values '%s' %s\n        ;;\n", cmd.Name, cmd.Name, strings.Join(cmd.Args, " "))
		}
	}

	sb.WriteString("    esac\n")
	sb.WriteString("}\n\n")
	sb.WriteString("compdef _postbuild postbuild\n")
	return sb.String()
}

func zshFlagSpec(f flagDef) string {
	desc := "[" + zshEscape(f.Desc) + "]"

	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagDir:
		action = ":directory:_files -/"
	case flagFile:
		action = ":file:_files -g \"" + strings.ReplaceAll(f.FileGlob, ",", " ") + "\""
	default:
		action = ":" + f.Long + ":"
	}

	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return "'(-" + f.Short + " --" + f.Long + ")'{-" + f.Short + ",--" + f.Long + "}'" + desc + action + "'"
}

func zshEscape(s string) string {
	return strings.NewReplacer(
		"'", `'\''`,
		"[", `\[`,
		"]", `\]`,
		":", `\:`,
	).Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func fishScript(commands []commandDef) string {
	var sb strings.Builder

	sb.WriteString("# fish completion for postbuild\n\n")
	sb.WriteString("function __fish_postbuild_needs_command\n")
	sb.WriteString("    set -l cmd (commandline -opc)\n")
	sb.WriteString("    test (count $cmd) -eq 1\n")
	sb.WriteString("end\n\n")
	sb.WriteString("function __fish_postbuild_using_command\n")
	sb.WriteString("    set -l cmd (commandline -opc)\n")
	sb.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	sb.WriteString("end\n\n")
	sb.WriteString("complete -c postbuild -f\n")

	for _, cmd := range commands {
		fmt.Fprintf(&sb, "complete -c postbuild -n __fish_postbuild_needs_command -a %s -d '%s'\n",
			cmd.Name, fishEscape(cmd.Desc))
	}

	for _, cmd := range commands {
		cond := fmt.Sprintf("'__fish_postbuild_using_command %s'", cmd.Name)
		if len(cmd.Args) > 0 {
			fmt.Fprintf(&sb, "complete -c postbuild -n %s -a '%s'\n", cond, strings.Join(cmd.Args, " "))
		}
		for _, f := range cmd.Flags {
			var sb2 strings.Builder
			fmt.Fprintf(&sb2, "complete -c postbuild -n %s", cond)
			if f.Short != "" {
				fmt.Fprintf(&sb2, " -s %s", f.Short)
			}
			fmt.Fprintf(&sb2, " -l %s", f.Long)
			switch f.Type {
			case flagBool:
			case flagEnum:
				fmt.Fprintf(&sb2, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagDir:
				sb2.WriteString(" -x -a '(__fish_complete_directories)'")
			case flagFile:
				sb2.WriteString(" -r -F")
			default:
				sb2.WriteString(" -x")
			}
			fmt.Fprintf(&sb2, " -d '%s'\n", fishEscape(f.Desc))
			sb.WriteString(sb2.String())
		}
	}

	return sb.String()
}

func fishEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func powerShellScript(commands []commandDef) string {
	var sb strings.Builder

	sb.WriteString("# powershell completion for postbuild\n\n")
	sb.WriteString("Register-ArgumentCompleter -Native -CommandName postbuild -ScriptBlock {\n")
	sb.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	sb.WriteString("    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	sb.WriteString("    $commands = [ordered]@{\n")
	for _, cmd := range commands {
		fmt.Fprintf(&sb, "        '%s' = '%s'\n", cmd.Name, psEscape(cmd.Desc))
	}
	sb.WriteString("    }\n\n")
	sb.WriteString("    if ($elements.Count -le 1 -or ($elements.Count -eq 2 -and $wordToComplete)) {\n")
	sb.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	sb.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	sb.WriteString("        }\n")
	sb.WriteString("        return\n")
	sb.WriteString("    }\n\n")
	sb.WriteString("    $candidates = switch ($elements[1]) {\n")
	for _, cmd := range commands {
		var words []string
		for _, a := range cmd.Args {
			words = append(words, "'"+a+"'")
		}
		for _, f := range cmd.Flags {
			words = append(words, "'--"+f.Long+"'")
			if f.Short != "" {
				words = append(words, "'-"+f.Short+"'")
			}
		}
		if len(words) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "        '%s' { @(%s) }\n", cmd.Name, strings.Join(words, ", "))
	}
	sb.WriteString("        default { @() }\n")
	sb.WriteString("    }\n\n")
	sb.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	sb.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	sb.WriteString("    }\n")
	sb.WriteString("}\n")
	return sb.String()
}

func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func commandNameList(commands []commandDef) []string {
	names := make([]string, len(commands))
	for i, cmd := range commands {
		names[i] = cmd.Name
	}
	return names
}
