// Package completion provides the shell completion command.
package completion

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCommand creates the completion command. It replaces cobra's
// generated one so the help text names this binary.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Generate a shell completion script",
		Long: `Generate the autocompletion script for the given shell.

ISBNs and user IDs complete from the configured store.

To load completions in your current shell session:

  source <(bookshelf completion bash)
  source <(bookshelf completion zsh)
  bookshelf completion fish | source

To load completions for every new session, write the script to your
shell's completion directory, for example:

  bookshelf completion bash > /etc/bash_completion.d/bookshelf
  bookshelf completion zsh > "${fpath[1]}/_bookshelf"
  bookshelf completion fish > ~/.config/fish/completions/bookshelf.fish`,
		Args:                  cobra.ExactArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell %q: must be one of bash, zsh, fish, powershell", args[0])
			}
		},
	}
}
