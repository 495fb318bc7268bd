// Package user provides the user resource command and subcommands.
package user

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/agentstation/bookshelf/cmd/application"
	"github.com/agentstation/bookshelf/internal/cmd/completion"
	"github.com/agentstation/bookshelf/internal/cmd/globals"
	"github.com/agentstation/bookshelf/internal/cmd/output"
	"github.com/agentstation/bookshelf/internal/cmd/table"
	"github.com/agentstation/bookshelf/pkg/library"
)

// Details is a user together with the catalog entries of the books they hold.
type Details struct {
	User  library.User   `json:"user" yaml:"user"`
	Books []library.Book `json:"books" yaml:"books"`
}

// NewCommand creates the user resource command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users"},
		GroupID: "core",
		Short:   "Manage library users",
		Example: `  bookshelf user add --name Alice --id 001
  bookshelf user add --name Bob            # ID generated
  bookshelf user list
  bookshelf user show 001`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newAddCommand(app))
	cmd.AddCommand(newRemoveCommand(app))
	cmd.AddCommand(newSearchCommand(app))
	cmd.AddCommand(newListCommand(app))
	cmd.AddCommand(newShowCommand(app))

	return cmd
}

func newAddCommand(app application.Application) *cobra.Command {
	var name, id string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := app.Library()
			if err != nil {
				return err
			}

			if id == "" {
				id = uuid.NewString()
			}
			user := library.NewUser(name, id)
			if err := lib.AddUser(cmd.Context(), user); err != nil {
				return err
			}

			app.Logger().Debug().Str("user_id", user.ID).Msg("User added")
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), user, table.UsersToTableData([]library.User{user}))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "User name")
	cmd.Flags().StringVar(&id, "id", "", "User ID (generated when omitted)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRemoveCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:               "remove <id>",
		Aliases:           []string{"rm"},
		Short:             "Remove a user",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.UserIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := app.Library()
			if err != nil {
				return err
			}
			if err := lib.RemoveUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed user %s\n", args[0])
			return err
		},
	}
}

func newSearchCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search users by name or ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := app.Library()
			if err != nil {
				return err
			}
			return output.FormatUsers(cmd.OutOrStdout(), app.OutputFormat(), lib.SearchUser(args[0]))
		},
	}
}

func newListCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := app.Library()
			if err != nil {
				return err
			}

			flags := globals.ParseResources(cmd)
			users := lib.Users()
			if flags.Search != "" {
				users = lib.SearchUser(flags.Search)
			}
			if flags.Limit > 0 && len(users) > flags.Limit {
				users = users[:flags.Limit]
			}

			app.Logger().Debug().Msgf("Found %d users", len(users))
			return output.FormatUsers(cmd.OutOrStdout(), app.OutputFormat(), users)
		},
	}

	globals.AddResourceFlags(cmd)

	return cmd
}

func newShowCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:               "show <id>",
		Short:             "Show a user and the books they hold",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.UserIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := app.Library()
			if err != nil {
				return err
			}
			user, err := lib.User(args[0])
			if err != nil {
				return err
			}
			books, err := lib.BorrowedBooks(user.ID)
			if err != nil {
				return err
			}
			details := Details{User: user, Books: books}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), details, table.UserDetails(user, books))
		},
	}
}
