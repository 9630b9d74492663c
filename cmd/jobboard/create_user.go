package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobportal/jobboard/internal/core/domain"
	"github.com/jobportal/jobboard/internal/core/ports"
	"github.com/jobportal/jobboard/internal/core/service"
	"github.com/jobportal/jobboard/internal/infrastructure/db/mongo"
)

// newCreateUserCmd registers accounts outside the public form, so any role
// can be created regardless of REGISTRATION_ROLES.
func newCreateUserCmd() *cobra.Command {
	var in ports.RegisterInput

	cmd := &cobra.Command{
		Use:     "create-user",
		Short:   "Create a user with any role",
		Example: `  jobboard create-user --username root --password 's3cret' --role admin`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, err := bootstrap(ctx)
			if err != nil {
				return err
			}

			client, db, err := openMongo(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			// The policy is irrelevant for trusted registration.
			auth := service.NewAuthService(
				mongo.NewUserRepository(db),
				service.NewBcryptHasher(cfg.Auth.BcryptCost),
				domain.NewRegistrationPolicy(),
				log,
			)
			user, err := auth.RegisterTrusted(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %q (id %d, role %s)\n", user.Username, user.ID, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Username, "username", "", "account name")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")
	cmd.Flags().StringVar(&in.Role, "role", string(domain.RoleAdmin), "jobseeker, employer or admin")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
