package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/oceanplot/pkg/figure"
	"github.com/matzehuels/oceanplot/pkg/seawater"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for oceanplot.

Bash:
  $ source <(oceanplot completion bash)

Zsh:
  # Enable completion once with: echo "autoload -U compinit; compinit" >> ~/.zshrc
  $ oceanplot completion zsh > "${fpath[1]}/_oceanplot"

Fish:
  $ oceanplot completion fish > ~/.config/fish/completions/oceanplot.fish

PowerShell:
  PS> oceanplot completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// registerCompletions offers the valid values of enumerated flags.
func registerCompletions(cmd *cobra.Command) {
	fixed := func(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		}
	}
	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", fixed(figure.ValidFormats...))
	}
	if cmd.Flags().Lookup("center") != nil {
		_ = cmd.RegisterFlagCompletionFunc("center", fixed("x", "y", "xy"))
	}
	if cmd.Flags().Lookup("sigma") != nil {
		var sigmas []string
		for sg := seawater.Sigma0; sg <= seawater.Sigma4; sg++ {
			sigmas = append(sigmas, sg.String())
		}
		_ = cmd.RegisterFlagCompletionFunc("sigma", fixed(sigmas...))
	}
}
