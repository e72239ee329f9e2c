package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/clientclock/internal/cli"
	"github.com/xolan/clientclock/internal/service"
)

var deleteYesFlag bool

// clientCmd groups the client registry commands
var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
	Long: `Add, delete and list clients.

Examples:
  clientclock client add Acme
  clientclock client delete Acme
  clientclock client list`,
}

var clientAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a client",
	Long: `Add a client with no worked time. Names are unique; adding an existing
name leaves it unchanged.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		addClient(strings.Join(args, " "))
	},
}

var clientDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a client and its timer",
	Long: `Delete a client, its worked time, pending entries and timer.
A confirmation prompt will be shown unless --yes is specified.
A backup is taken first; undo with 'clientclock restore'.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeClientNames,
	Run: func(cmd *cobra.Command, args []string) {
		deleteClient(args[0], deleteYesFlag)
	},
}

var clientListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List clients",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listClients()
	},
}

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.AddCommand(clientAddCmd)
	clientCmd.AddCommand(clientDeleteCmd)
	clientCmd.AddCommand(clientListCmd)

	clientDeleteCmd.Flags().BoolVarP(&deleteYesFlag, "yes", "y", false, "skip confirmation prompt")
}

// addClient creates a client
func addClient(name string) {
	svcs, ok := loadServices()
	if !ok {
		return
	}

	c, err := svcs.Clients.Add(name)
	if errors.Is(err, service.ErrClientExists) {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: Client '%s' already exists\n", c.Name)
		deps.Exit(1)
		return
	}
	if err != nil {
		failWith(err, name)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Added client: %s\n", c.Name)
}

// deleteClient removes a client after confirmation
func deleteClient(name string, yes bool) {
	svcs, ok := loadServices()
	if !ok {
		return
	}

	c, err := svcs.Clients.Get(name)
	if err != nil {
		failWith(err, name)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Client to delete:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s  %s, %d pending\n",
		c.Name, cli.FormatWorked(c.TimeWorked), len(c.PotentialTimes))

	err = svcs.Clients.Delete(name, confirmer(yes))
	if errors.Is(err, service.ErrCancelled) {
		_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
		return
	}
	if err != nil {
		failWith(err, name)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Deleted client: %s\n", name)
}

// completeClientNames offers stored client names for the first argument.
func completeClientNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	svcs, err := deps.Services()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	clients, err := svcs.Clients.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, c := range clients {
		if strings.HasPrefix(c.Name, toComplete) {
			names = append(names, c.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
