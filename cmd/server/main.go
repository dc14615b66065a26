package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "unihub/docs" // Swagger docs
)

// @title UniHub API
// @version 1.0
// @description Backend of the UniHub university mobile app
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@unihub.example

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "unihub",
		Short: "UniHub API server",
		Long:  `UniHub serves the university mobile app: authentication, the university catalog, posts, friendships and notifications.`,
		// Running the binary without a subcommand starts the server
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newCreateUserCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
