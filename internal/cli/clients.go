package cli

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/martijn/clientreg/internal/validator"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	listState string
	listLimit int
	listPage  int
	listSort  string
	listOrder string

	addPhones   []string
	addInactive bool

	deleteYes bool

	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage registered clients",
	Long:  "List, inspect, add and delete clients directly against the configured store",
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(listLimit))
		query.Set("page", strconv.Itoa(listPage))
		query.Set("sort", listSort)
		query.Set("order", listOrder)
		if listState != "" {
			query.Set("state", listState)
		}

		cursor, err := validator.Pagination(query)
		if err != nil {
			return err
		}
		filter, err := validator.ListFilter(query)
		if err != nil {
			return err
		}
		filter.Cursor = cursor

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		clients, total, err := services.ClientRepo.List(cmd.Context(), *filter)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(clients) == 0 {
			fmt.Fprintln(out, "No clients found")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tREGISTERED\tACTIVE")
		for _, client := range clients {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n",
				client.ID,
				client.FullName(),
				client.Email,
				client.RegisterDate,
				client.State,
			)
		}
		w.Flush()

		fmt.Fprintf(out, "\nPage %d of %d (%d clients)\n", cursor.Page, cursor.Pages(total), total)
		return nil
	},
}

var clientsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a client and its phone numbers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := validator.ID(args[0])
		if err != nil {
			return err
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		client, err := services.ClientRepo.FindByID(cmd.Context(), id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:         %d\n", client.ID)
		fmt.Fprintf(out, "Name:       %s\n", client.FullName())
		fmt.Fprintf(out, "Email:      %s\n", client.Email)
		fmt.Fprintf(out, "Registered: %s\n", client.RegisterDate)
		fmt.Fprintf(out, "Active:     %t\n", client.State)
		if len(client.Phones) == 0 {
			fmt.Fprintln(out, "Phones:     none")
		} else {
			fmt.Fprintf(out, "Phones:     %s\n", strings.Join(client.Phones, ", "))
		}
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add <first-name> <last-name> <email>",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]interface{}{
			"name":  args[0] + " " + args[1],
			"email": args[2],
			"state": !addInactive,
		}
		if len(addPhones) > 0 {
			phones := make([]interface{}, len(addPhones))
			for i, phone := range addPhones {
				phones[i] = phone
			}
			body["phones"] = phones
		}

		input, err := validator.CreateClient(body)
		if err != nil {
			return err
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		id, err := services.ClientRepo.Create(cmd.Context(), input)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Client created successfully")
		fmt.Fprintf(cmd.OutOrStdout(), "Client ID: %d\n", id)
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a client and its phone numbers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := validator.ID(args[0])
		if err != nil {
			return err
		}

		if !deleteYes {
			if !stdinIsTerminal() {
				return fmt.Errorf("refusing to delete client %d without --yes in a non-interactive session", id)
			}

			// Confirm deletion
			fmt.Fprintf(cmd.OutOrStdout(), "Are you sure you want to delete client %d and its phone numbers? (yes/no): ", id)
			var confirm string
			fmt.Fscanln(cmd.InOrStdin(), &confirm)
			if confirm != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		deleted, err := services.ClientRepo.Delete(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Client %d (%s) deleted with %d phone number(s)\n",
			deleted.ID, deleted.Email, len(deleted.Phones))
		return nil
	},
}

func init() {
	clientsListCmd.Flags().StringVar(&listState, "state", "", "filter by state (true or false)")
	clientsListCmd.Flags().IntVar(&listLimit, "limit", 10, "page size")
	clientsListCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	clientsListCmd.Flags().StringVar(&listSort, "sort", "id", "sort field (register, email, name, id)")
	clientsListCmd.Flags().StringVar(&listOrder, "order", "asc", "sort order (asc or desc)")

	clientsAddCmd.Flags().StringSliceVar(&addPhones, "phone", nil, "phone number to attach (repeatable)")
	clientsAddCmd.Flags().BoolVar(&addInactive, "inactive", false, "register the client as inactive")

	clientsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(clientsCmd)
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsShowCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)
}
