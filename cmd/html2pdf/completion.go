package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
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

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // free value, nothing to complete
	flagBool
	flagInt
	flagFile // file, optionally filtered by extension
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long       string   // --output
	Short      string   // -o (empty if none)
	Type       flagType // completion type
	Desc       string   // help text
	Extensions []string // for file flags; empty means any file
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	TakesFiles bool // accepts HTML or Markdown file arguments
	Values     []string
}

// completionMeta holds completion hints that a FlagSet cannot express.
// Flag names, types and descriptions come from the FlagSet.
type completionMeta struct {
	Extensions []string
	IsFile     bool
	IsDir      bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"config":      {IsFile: true, Extensions: []string{"yaml", "yml"}},
	"css":         {IsFile: true, Extensions: []string{"css"}},
	"header-html": {IsFile: true, Extensions: []string{"html", "htm"}},
	"footer-html": {IsFile: true, Extensions: []string{"html", "htm"}},
	"renderer":    {IsFile: true},
	"output":      {IsDir: true},
	"temp-dir":    {IsDir: true},
}

// inputGlobExtensions are completed for convert's positional arguments.
var inputGlobExtensions = []string{"html", "htm", "md", "markdown"}

// shells lists what the completion command accepts, in help order.
var shells = []Shell{ShellBash, ShellZsh, ShellFish, ShellPowerShell}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet,
// enriched with flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case meta.IsDir:
				fd.Type = flagDir
			case meta.IsFile:
				fd.Type = flagFile
				fd.Extensions = meta.Extensions
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	shellNames := make([]string, len(shells))
	for i, s := range shells {
		shellNames[i] = string(s)
	}

	return []commandDef{
		{
			Name:       "convert",
			Desc:       "Convert HTML or Markdown files, or a URL, to PDF",
			Flags:      extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			TakesFiles: true,
		},
		{
			Name:  "doctor",
			Desc:  "Check that wkhtmltopdf is installed and usable",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "print results as JSON"}},
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script", Values: shellNames},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	case ShellPowerShell:
		script = generatePowerShell(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletionCmd handles the completion command and returns an exit code.
func runCompletionCmd(args []string, env *Environment) int {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return ExitSuccess
	}
	if err := GenerateCompletion(env.Stdout, Shell(args[0])); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}
	return ExitSuccess
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf completion <shell>")
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
	fmt.Fprintln(w, "    eval \"$(html2pdf completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(html2pdf completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    html2pdf completion fish > ~/.config/fish/completions/html2pdf.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    html2pdf completion powershell | Out-String | Invoke-Expression")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# bash completion for html2pdf\n")
	b.WriteString("shopt -s extglob\n\n")
	b.WriteString("_html2pdf_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		writeBashValueCases(&b, c.Flags)

		switch {
		case c.Name == "help":
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(commandNames(cmds), " "))
		case len(c.Values) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(c.Values, " "))
		case c.TakesFiles:
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
			b.WriteString("        else\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\") $(compgen -d -- \"$cur\"))\n",
				strings.Join(inputGlobExtensions, "|"))
			b.WriteString("        fi\n")
		default:
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -o filenames -F _html2pdf_completions html2pdf\n")
	return b.String()
}

// writeBashValueCases completes the value of the previous word's flag.
func writeBashValueCases(b *strings.Builder, flags []flagDef) {
	var cases []string
	for _, f := range flags {
		var action string
		switch f.Type {
		case flagDir:
			action = `COMPREPLY=($(compgen -d -- "$cur"))`
		case flagFile:
			if len(f.Extensions) == 0 {
				action = `COMPREPLY=($(compgen -f -- "$cur"))`
			} else {
				action = fmt.Sprintf(`COMPREPLY=($(compgen -f -X '!*.@(%s)' -- "$cur") $(compgen -d -- "$cur"))`,
					strings.Join(f.Extensions, "|"))
			}
		case flagString, flagInt:
			action = "COMPREPLY=()"
		default:
			continue
		}
		cases = append(cases, fmt.Sprintf("        %s)\n            %s\n            return\n            ;;\n",
			strings.Join(flagNames(f), "|"), action))
	}
	if len(cases) == 0 {
		return
	}
	b.WriteString("        case \"$prev\" in\n")
	for _, c := range cases {
		b.WriteString(c)
	}
	b.WriteString("        esac\n")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef html2pdf\n\n")
	b.WriteString("_html2pdf() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		switch {
		case c.Name == "help":
			b.WriteString("        _describe 'command' commands\n")
		case len(c.Values) > 0:
			fmt.Fprintf(&b, "        _values 'value' %s\n", strings.Join(c.Values, " "))
		case len(c.Flags) > 0 || c.TakesFiles:
			b.WriteString("        _arguments \\\n")
			for _, f := range c.Flags {
				fmt.Fprintf(&b, "            %s \\\n", zshFlagSpec(f))
			}
			if c.TakesFiles {
				fmt.Fprintf(&b, "            '*:input:_files -g \"*.(%s)\"' \\\n", strings.Join(inputGlobExtensions, "|"))
			}
			b.WriteString("            && return\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _html2pdf html2pdf\n")
	return b.String()
}

// zshFlagSpec renders one _arguments spec, e.g.
// '(-o --output)'{-o,--output}'[output file or directory]:dir:_files -/'.
func zshFlagSpec(f flagDef) string {
	var value string
	switch f.Type {
	case flagBool:
	case flagDir:
		value = ":dir:_files -/"
	case flagFile:
		if len(f.Extensions) == 0 {
			value = ":file:_files"
		} else {
			value = fmt.Sprintf(":file:_files -g \"*.(%s)\"", strings.Join(f.Extensions, "|"))
		}
	case flagInt:
		value = ":number:"
	default:
		value = ":value:"
	}

	spec := "[" + zshEscape(f.Desc) + "]" + value
	if f.Short == "" {
		return "'--" + f.Long + spec + "'"
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s'", f.Short, f.Long, f.Short, f.Long, spec)
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for html2pdf\n\n")
	b.WriteString("function __fish_html2pdf_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_html2pdf_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c html2pdf -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c html2pdf -n __fish_html2pdf_needs_command -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_html2pdf_using_command %s'", c.Name)
		b.WriteString("\n")
		if c.Name == "help" {
			fmt.Fprintf(&b, "complete -c html2pdf -n %s -a %s\n", cond, fishQuote(strings.Join(commandNames(cmds), " ")))
		}
		if len(c.Values) > 0 {
			fmt.Fprintf(&b, "complete -c html2pdf -n %s -a %s\n", cond, fishQuote(strings.Join(c.Values, " ")))
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c html2pdf -n %s -F\n", cond)
		}
		for _, f := range c.Flags {
			line := "complete -c html2pdf -n " + cond
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long
			switch f.Type {
			case flagBool:
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagFile:
				line += " -r -F"
			default:
				line += " -x"
			}
			line += " -d " + fishQuote(f.Desc)
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}

func fishQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func generatePowerShell(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# PowerShell completion for html2pdf\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName html2pdf -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $words = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    $commands = @{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s' = '%s'\n", c.Name, psEscape(c.Desc))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    if ($words.Count -le 1 -or ($words.Count -eq 2 -and $wordToComplete)) {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $options = switch ($words[1]) {\n")
	for _, c := range cmds {
		var words []string
		for _, f := range c.Flags {
			words = append(words, fmt.Sprintf("'--%s'", f.Long))
		}
		for _, v := range c.Values {
			words = append(words, "'"+v+"'")
		}
		if c.Name == "help" {
			for _, n := range commandNames(cmds) {
				words = append(words, "'"+n+"'")
			}
		}
		if len(words) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        '%s' { @(%s) }\n", c.Name, strings.Join(words, ", "))
	}
	b.WriteString("        default { @() }\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $options | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// flagNames returns "--long" and, when set, "-s".
func flagNames(f flagDef) []string {
	names := []string{"--" + f.Long}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, flagNames(f)...)
	}
	return words
}
