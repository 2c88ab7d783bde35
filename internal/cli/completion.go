package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/seqcalc/internal/config"
)

// Shells lists the shells GenerateCompletion supports.
var Shells = []string{"bash", "zsh", "fish", "powershell"}

// completionFlag describes one flag for the completion scripts. values is
// empty for flags that take free-form or no arguments.
type completionFlag struct {
	name   string
	desc   string
	values []string
}

func completionFlags(families []string) []completionFlag {
	return []completionFlag{
		{name: "mode", desc: "What to compute", values: config.Modes},
		{name: "family", desc: "Sequence family", values: append(append([]string{}, families...), config.FamilyAll)},
		{name: "start", desc: "Index-0 value of a progression"},
		{name: "step", desc: "Arithmetic common difference"},
		{name: "ratio", desc: "Geometric common ratio"},
		{name: "index", desc: "First listed index"},
		{name: "count", desc: "Number of listed terms", values: []string{"5", "10", "20", "50"}},
		{name: "k", desc: "Binomial k or Josephus step"},
		{name: "n", desc: "Binomial n, circle size or disk count"},
		{name: "rows", desc: "Rows of the Pascal triangle", values: []string{"5", "10", "20"}},
		{name: "variant", desc: "Hanoi solver", values: config.Variants},
		{name: "timeout", desc: "Maximum execution time", values: []string{"5s", "30s", "1m", "5m"}},
		{name: "verify", desc: "Cross-check seeks against walks"},
		{name: "json", desc: "Output in JSON format"},
		{name: "quiet", desc: "Quiet mode for scripts"},
		{name: "q", desc: "Quiet mode for scripts"},
		{name: "no-color", desc: "Disable colored output"},
		{name: "server", desc: "Start HTTP server mode"},
		{name: "port", desc: "Server port", values: []string{"8080", "3000", "5000", "9000"}},
		{name: "interactive", desc: "Start interactive REPL mode"},
		{name: "log-level", desc: "Structured log level", values: []string{"debug", "info", "warn", "error"}},
		{name: "completion", desc: "Generate completion script", values: Shells},
		{name: "version", desc: "Show version information"},
		{name: "help", desc: "Show help message"},
	}
}

// GenerateCompletion writes a completion script for shell.
//
// Parameters:
//   - out: The writer receiving the script.
//   - shell: One of Shells; "ps" is accepted for powershell.
//   - families: The registered family names offered for -family.
//
// Returns:
//   - error: An error if the shell is not supported or the write fails.
func GenerateCompletion(out io.Writer, shell string, families []string) error {
	flags := completionFlags(families)
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(flags)
	case "zsh":
		script = zshCompletion(flags)
	case "fish":
		script = fishCompletion(flags)
	case "powershell", "ps":
		script = powerShellCompletion(flags)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(Shells, ", "))
	}
	_, err := io.WriteString(out, script)
	return err
}

func bashCompletion(flags []completionFlag) string {
	var b strings.Builder
	b.WriteString("# Bash completion script for seqcalc\n")
	b.WriteString("# Add this to your ~/.bashrc or ~/.bash_completion\n\n")
	b.WriteString("_seqcalc_completions() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    case \"${prev}\" in\n")
	names := make([]string, 0, len(flags))
	for _, f := range flags {
		names = append(names, "-"+f.name)
		if len(f.values) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        -%s|--%s)\n", f.name, f.name)
		fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(f.values, " "))
		b.WriteString("            return 0\n            ;;\n")
	}
	b.WriteString("    esac\n\n")
	fmt.Fprintf(&b, "    COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(names, " "))
	b.WriteString("}\n\ncomplete -F _seqcalc_completions seqcalc\n")
	return b.String()
}

func zshCompletion(flags []completionFlag) string {
	var b strings.Builder
	b.WriteString("#compdef seqcalc\n\n")
	b.WriteString("# Zsh completion script for seqcalc\n")
	b.WriteString("# Place this file in a directory of your $fpath\n\n")
	b.WriteString("_seqcalc() {\n    _arguments -s")
	for _, f := range flags {
		spec := fmt.Sprintf("'-%s[%s]", f.name, f.desc)
		if len(f.values) > 0 {
			spec += fmt.Sprintf(":%s:(%s)", f.name, strings.Join(f.values, " "))
		}
		fmt.Fprintf(&b, " \\\n        %s'", spec)
	}
	b.WriteString("\n}\n\n_seqcalc \"$@\"\n")
	return b.String()
}

func fishCompletion(flags []completionFlag) string {
	var b strings.Builder
	b.WriteString("# Fish completion script for seqcalc\n")
	b.WriteString("# Add this to ~/.config/fish/completions/seqcalc.fish\n\n")
	b.WriteString("complete -c seqcalc -f\n")
	for _, f := range flags {
		fmt.Fprintf(&b, "complete -c seqcalc -o %s -d '%s'", f.name, f.desc)
		if len(f.values) > 0 {
			fmt.Fprintf(&b, " -xa '%s'", strings.Join(f.values, " "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func powerShellCompletion(flags []completionFlag) string {
	var b strings.Builder
	b.WriteString("# PowerShell completion script for seqcalc\n")
	b.WriteString("# Add this to your $PROFILE\n\n")
	b.WriteString("Register-ArgumentCompleter -CommandName 'seqcalc' -Native -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $values = @{\n")
	for _, f := range flags {
		if len(f.values) == 0 {
			continue
		}
		quoted := make([]string, len(f.values))
		for i, v := range f.values {
			quoted[i] = "'" + v + "'"
		}
		fmt.Fprintf(&b, "        '-%s' = @(%s)\n", f.name, strings.Join(quoted, ", "))
	}
	b.WriteString("    }\n    $options = @(\n")
	for _, f := range flags {
		fmt.Fprintf(&b, "        @{Name = '-%s'; Description = '%s' }\n", f.name, f.desc)
	}
	b.WriteString("    )\n\n")
	b.WriteString("    $elements = $commandAst.CommandElements\n")
	b.WriteString("    $prev = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }\n")
	b.WriteString("    if ($values.ContainsKey($prev)) {\n")
	b.WriteString("        $values[$prev] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("        }\n        return\n    }\n")
	b.WriteString("    $options | Where-Object { $_.Name -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)\n")
	b.WriteString("    }\n}\n")
	return b.String()
}
