package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// completionGenerators maps each supported shell to its cobra generator.
var completionGenerators = map[string]func(io.Writer) error{
	"bash": func(w io.Writer) error { return rootCmd.GenBashCompletion(w) },
	"zsh":  func(w io.Writer) error { return rootCmd.GenZshCompletion(w) },
	"fish": func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
	"powershell": func(w io.Writer) error {
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Print a completion script for the given shell. Commands that take a
client name complete it from the stored clients.

  source <(clientclock completion bash)
  clientclock completion zsh > "${fpath[1]}/_clientclock"
  clientclock completion fish > ~/.config/fish/completions/clientclock.fish
  clientclock completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func generateCompletion(shell string) {
	gen, ok := completionGenerators[shell]
	if !ok {
		fail(fmt.Sprintf("Unsupported shell '%s'", shell), nil, "Supported shells: bash, zsh, fish, powershell")
		return
	}
	if err := gen(deps.Stdout); err != nil {
		fail(fmt.Sprintf("Failed to generate %s completion", shell), err, "")
	}
}
