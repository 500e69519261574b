package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketgen/pkg/pipeline"
	"github.com/matzehuels/bracketgen/pkg/render/styles"
)

// completionCommand creates the completion command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for bracketgen.

  $ source <(bracketgen completion bash)
  $ bracketgen completion zsh > "${fpath[1]}/_bracketgen"
  $ bracketgen completion fish > ~/.config/fish/completions/bracketgen.fish
  PS> bracketgen completion powershell | Out-String | Invoke-Expression

Completions cover output formats, visualization types, styles and input
file types.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// =============================================================================
// Flag Completions
// =============================================================================

var (
	teamFileExts = []string{"json", "yaml", "yml", "xlsx"}
	pickFileExts = []string{"json", "yaml", "yml"}
)

// registerRenderCompletions wires value completion for the render flags.
func registerRenderCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("type", fixedCompletion(sortedKeys(pipeline.ValidVizTypes)))
	_ = cmd.RegisterFlagCompletionFunc("style", fixedCompletion(styles.Names()))
	_ = cmd.MarkFlagFilename("teams", teamFileExts...)
	_ = cmd.MarkFlagFilename("picks", pickFileExts...)
}

// completeFormats completes the last entry of a comma-separated format
// list, skipping formats already given.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	given := pipeline.ParseFormats(prefix)

	var out []string
	for _, f := range sortedKeys(pipeline.ValidFormats) {
		if !slices.Contains(given, f) {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func fixedCompletion(values []string) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
