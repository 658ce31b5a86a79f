package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/untoldecay/footprint/internal/model"
)

var personCmd = &cobra.Command{
	Use:   "person",
	Short: "Manage protected persons",
}

var (
	personAddEmails    []string
	personAddPhones    []string
	personAddAddresses []string
	personAddUsernames []string
	personAddRelation  string
)

var personAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new protected person",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := &model.Person{
			Name:      args[0],
			Relation:  personAddRelation,
			Emails:    personAddEmails,
			Phones:    personAddPhones,
			Addresses: personAddAddresses,
			Usernames: personAddUsernames,
		}
		id, err := db.InsertPerson(cmd.Context(), p)
		if err != nil {
			return err
		}
		fmt.Printf("Added person #%d: %s\n", id, p.Name)
		return nil
	},
}

var personListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every protected person",
	RunE: func(cmd *cobra.Command, args []string) error {
		persons, err := db.ListPersons(cmd.Context())
		if err != nil {
			return err
		}
		if len(persons) == 0 {
			fmt.Println("No persons registered.")
			return nil
		}
		for _, p := range persons {
			fmt.Printf("#%d  %s (%s)\n", p.ID, p.Name, p.Relation)
			if len(p.Emails) > 0 {
				fmt.Printf("     emails: %s\n", strings.Join(p.Emails, ", "))
			}
			if len(p.Usernames) > 0 {
				fmt.Printf("     usernames: %s\n", strings.Join(p.Usernames, ", "))
			}
		}
		return nil
	},
}

var personShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one protected person",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid person id %q", args[0])
		}
		p, err := db.GetPerson(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("#%d  %s (%s)\n", p.ID, p.Name, p.Relation)
		fmt.Printf("  emails:    %s\n", strings.Join(p.Emails, ", "))
		fmt.Printf("  phones:    %s\n", strings.Join(p.Phones, ", "))
		fmt.Printf("  addresses: %s\n", strings.Join(p.Addresses, ", "))
		fmt.Printf("  usernames: %s\n", strings.Join(p.Usernames, ", "))
		return nil
	},
}

func init() {
	personAddCmd.Flags().StringSliceVar(&personAddEmails, "email", nil, "email address (repeatable)")
	personAddCmd.Flags().StringSliceVar(&personAddPhones, "phone", nil, "phone number (repeatable)")
	personAddCmd.Flags().StringSliceVar(&personAddAddresses, "address", nil, "mailing address (repeatable)")
	personAddCmd.Flags().StringSliceVar(&personAddUsernames, "username", nil, "known username (repeatable)")
	personAddCmd.Flags().StringVar(&personAddRelation, "relation", "self", "relation to the account owner: self, spouse, child, parent, other")

	personCmd.AddCommand(personAddCmd, personListCmd, personShowCmd)
	rootCmd.AddCommand(personCmd)
}
