package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/service/auth"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// newHashPasswordCmd prints the bcrypt hash of a password, for seeding users
// directly in the database. The password is read from stdin when no argument
// is given so it stays out of shell history.
func newHashPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cost, _ := cmd.Flags().GetInt("cost")

			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			if err := domain.ValidatePassword(password); err != nil {
				return err
			}
			hash, err := auth.NewBcryptHasher(cost).Hash(password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
	cmd.Flags().Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	return cmd
}
