package cmd

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/templui/goaltrack/internal/app"
	"github.com/templui/goaltrack/internal/apperror"
	"github.com/templui/goaltrack/internal/config"
	"github.com/templui/goaltrack/internal/db"
	"github.com/templui/goaltrack/internal/service"
)

func UserCmd() *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var username, email, password string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(cfg *config.Config, database *sqlx.DB) error {
				err := db.RunMigrations(cmd.Context(), database.DB, cfg.DBDriver)
				if err != nil {
					return err
				}

				a := app.NewWithDB(cfg, database)
				u, err := a.AuthService.Register(cmd.Context(), service.RegisterInput{
					Username:        username,
					Email:           email,
					Password:        password,
					ConfirmPassword: password,
				})
				if msg := apperror.Message(err, ""); msg != "" {
					return errors.New(msg)
				}
				if err != nil {
					return err
				}

				fmt.Printf("Created user %s (%s)\n", u.Username, u.ID)
				return nil
			})
		},
	}
	create.Flags().StringVar(&username, "username", "", "login handle")
	create.Flags().StringVar(&email, "email", "", "email address")
	create.Flags().StringVar(&password, "password", "", "initial password")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	user.AddCommand(create)
	return user
}
