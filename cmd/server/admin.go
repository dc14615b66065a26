package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/config"
	"unihub/internal/core/domain"
	"unihub/internal/core/services"
	"unihub/internal/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer config.CloseDatabase(db)

			return config.Migrate(db)
		},
	}
}

func newCreateUserCommand() *cobra.Command {
	var (
		input        services.CreateUserInput
		universityID uint
		employeeID   uint
	)

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an administrator or employee account",
		Long:  `Create a user account directly in the database. Students register themselves through the API.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer config.CloseDatabase(db)

			if universityID != 0 {
				input.UniversityID = &universityID
			}
			if employeeID != 0 {
				input.EmployeeID = &employeeID
			}

			ctx, cancel := withTimeout(cmd.Context())
			defer cancel()

			users := services.NewUserService(repositories.NewUserRepository(db), repositories.NewStores(db))
			user, err := users.CreateUser(ctx, &input)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			logger.Info("user created", "id", user.ID, "email", user.Email, "role", user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&input.Password, "password", "", "Password, at least 8 characters (required)")
	cmd.Flags().StringVar(&input.Role, "role", string(domain.RoleAdministrator), "ADMINISTRATOR, UNIVERSITY_ADMINISTRATOR or EMPLOYEE")
	cmd.Flags().StringVar(&input.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&input.LastName, "last-name", "", "Last name")
	cmd.Flags().UintVar(&universityID, "university-id", 0, "University the account belongs to")
	cmd.Flags().UintVar(&employeeID, "employee-id", 0, "Employee record linked to the account")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// withTimeout bounds one-shot administrative commands
func withTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, time.Minute)
}
