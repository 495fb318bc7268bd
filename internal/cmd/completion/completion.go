// Package completion provides dynamic argument completion backed by the library.
package completion

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/bookshelf/cmd/application"
)

// CompletionFunc is the signature cobra expects for ValidArgsFunction.
type CompletionFunc func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// ISBNs completes the first positional argument with catalogued ISBNs,
// described by title.
func ISBNs(app application.Application) CompletionFunc {
	return atPosition(0, func(toComplete string) []string {
		lib, err := app.Library()
		if err != nil || lib == nil {
			return nil
		}
		var out []string
		for _, b := range lib.Books() {
			if strings.HasPrefix(b.ISBN, toComplete) {
				out = append(out, b.ISBN+"\t"+b.Title)
			}
		}
		return out
	})
}

// UserIDs completes the first positional argument with registered user IDs,
// described by name.
func UserIDs(app application.Application) CompletionFunc {
	return atPosition(0, userIDs(app))
}

// UserThenISBN completes a <user-id> <isbn> pair.
func UserThenISBN(app application.Application) CompletionFunc {
	users := userIDs(app)
	books := ISBNs(app)
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		switch len(args) {
		case 0:
			return users(toComplete), cobra.ShellCompDirectiveNoFileComp
		case 1:
			return books(cmd, nil, toComplete)
		default:
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
	}
}

func userIDs(app application.Application) func(string) []string {
	return func(toComplete string) []string {
		lib, err := app.Library()
		if err != nil || lib == nil {
			return nil
		}
		var out []string
		for _, u := range lib.Users() {
			if strings.HasPrefix(u.ID, toComplete) {
				out = append(out, u.ID+"\t"+u.Name)
			}
		}
		return out
	}
}

// atPosition offers candidates only while the argument at pos is being typed.
func atPosition(pos int, candidates func(toComplete string) []string) CompletionFunc {
	return func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != pos {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return candidates(toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}
