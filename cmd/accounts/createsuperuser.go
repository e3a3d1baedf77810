package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"accounts/internal/delivery/http/validator"
	"accounts/internal/usecase"
	"accounts/internal/usecase/impl"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// superuserPasswordEnv supplies the password when --password is not given.
const superuserPasswordEnv = "SUPERUSER_PASSWORD"

type superuserFlags struct {
	email    string
	fullName string
	password string
	phone    string
}

func (f superuserFlags) input() (usecase.CreateUserInput, error) {
	if err := validator.New().Var(f.email, "required,email,max=254"); err != nil {
		return usecase.CreateUserInput{}, errors.Wrap(err, "invalid --email")
	}

	password := f.password
	if password == "" {
		password = os.Getenv(superuserPasswordEnv)
	}

	input := usecase.CreateUserInput{
		Email:    f.email,
		FullName: strings.TrimSpace(f.fullName),
		Password: password,
	}
	if phone := strings.TrimSpace(f.phone); phone != "" {
		input.Extra.Phone = &phone
	}

	return input, nil
}

func createSuperuserCommand() *cobra.Command {
	var flags superuserFlags

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Creates a staff superuser with the admin role",
		Long: "Creates a staff superuser with the admin role. The password is read from --password or " +
			superuserPasswordEnv + "; without either the account gets an unusable password.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := flags.input()
			if err != nil {
				return err
			}

			var (
				identity usecase.IdentityUsecase
				logger   *slog.Logger
			)

			opts := fx.Options(
				injectInfra(),
				injectRepo(),
				injectService(),
				fx.Provide(impl.NewIdentityService),
				fx.Populate(&identity, &logger),
			)

			return runOneShot(cmd.Context(), opts, func(ctx context.Context) error {
				user, err := identity.CreateSuperuser(ctx, input)
				if err != nil {
					return errors.Wrap(err, "create superuser")
				}

				logger.Info("Superuser created",
					slog.String("user_id", user.ID.String()),
					slog.String("email", user.Email),
					slog.Bool("has_usable_password", user.HasUsablePassword()),
				)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&flags.email, "email", "", "Email address used to log in")
	cmd.Flags().StringVar(&flags.fullName, "full-name", "", "Full name")
	cmd.Flags().StringVar(&flags.password, "password", "", "Password (defaults to $"+superuserPasswordEnv+")")
	cmd.Flags().StringVar(&flags.phone, "phone", "", "Phone number")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
