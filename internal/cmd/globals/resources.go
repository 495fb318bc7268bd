package globals

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ResourceFlags narrow a listing.
type ResourceFlags struct {
	Limit  int
	Search string
}

// AddResourceFlags registers --limit and --search on cmd.
func AddResourceFlags(cmd *cobra.Command) *ResourceFlags {
	f := &ResourceFlags{}
	cmd.Flags().IntVarP(&f.Limit, "limit", "l", 0, "Limit number of results")
	cmd.Flags().StringVarP(&f.Search, "search", "s", "", "Search term to filter results")
	return f
}

// ParseResources reads the flags added by AddResourceFlags. It panics on a
// command that never registered them.
func ParseResources(cmd *cobra.Command) *ResourceFlags {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		panic(fmt.Sprintf("flag limit: %v", err))
	}
	search, err := cmd.Flags().GetString("search")
	if err != nil {
		panic(fmt.Sprintf("flag search: %v", err))
	}
	return &ResourceFlags{Limit: limit, Search: search}
}
