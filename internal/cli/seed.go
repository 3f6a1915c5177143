package cli

import (
	"context"
	"errors"
	"log"

	"github.com/spf13/cobra"

	"journey-quiz-service/internal/app"
	"journey-quiz-service/internal/config"
	"journey-quiz-service/internal/domain"
)

type seedOptions struct {
	username string
	email    string
	password string
}

// NewSeedAdminCmd creates the default administrator account if it is missing.
func NewSeedAdminCmd(configPath *string) *cobra.Command {
	opts := seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the default admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			rt, err := buildRuntime(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rt.Close()
			_, err = seedAdmin(cmd.Context(), rt.services.Auth, opts)
			return err
		},
	}
	cmd.Flags().StringVar(&opts.username, "username", "admin", "admin username")
	cmd.Flags().StringVar(&opts.email, "email", "admin@example.com", "admin email")
	cmd.Flags().StringVar(&opts.password, "password", "admin123", "admin password")
	return cmd
}

// seedAdmin reports whether a new user was created.
func seedAdmin(ctx context.Context, auth *app.AuthService, opts seedOptions) (bool, error) {
	_, err := auth.Register(ctx, app.RegisterInput{
		Username: opts.username,
		Email:    opts.email,
		Password: opts.password,
	})
	switch {
	case err == nil:
		log.Printf("default admin user %q created", opts.username)
		return true, nil
	case errors.Is(err, domain.ErrUsernameExists), errors.Is(err, domain.ErrEmailExists):
		log.Printf("default admin user already exists")
		return false, nil
	default:
		return false, err
	}
}
