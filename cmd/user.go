package main

import (
	"hbnb/internal/config"
	"hbnb/internal/facade"

	"github.com/spf13/cobra"
)

// userCommand constructs the 'user' subcommand group.
func userCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manages users",
		Long:  "Manages users.\n\n" + storageNote,
	}
	addActorFlags(cmd)

	create := &cobra.Command{
		Use:   "create",
		Short: "Registers a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup := newApp(ctx, cmd, cfg)
			defer cleanup()

			actor, err := a.actor(ctx, cmd)
			if err != nil {
				return err
			}

			in := facade.UserInput{}
			in.FirstName, _ = cmd.Flags().GetString("first-name")
			in.LastName, _ = cmd.Flags().GetString("last-name")
			in.Email, _ = cmd.Flags().GetString("email")
			in.Password, _ = cmd.Flags().GetString("new-password")
			in.IsAdmin, _ = cmd.Flags().GetBool("admin")

			u, err := a.facade.CreateUser(ctx, actor, in)
			if err != nil {
				return err //nolint: wrapcheck
			}

			return render(cmd.OutOrStdout(), u, encodeUser)
		},
	}
	create.Flags().String("first-name", "", "First name")
	create.Flags().String("last-name", "", "Last name")
	create.Flags().String("email", "", "Email address")
	create.Flags().String("new-password", "", "Password of the new user")
	create.Flags().Bool("admin", false, "Grant administrator rights")
	_ = create.MarkFlagRequired("email")

	list := &cobra.Command{
		Use:   "list",
		Short: "Lists all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup := newApp(ctx, cmd, cfg)
			defer cleanup()

			users, err := a.facade.GetAllUsers(ctx)
			if err != nil {
				return err //nolint: wrapcheck
			}

			return renderAll(cmd.OutOrStdout(), users, encodeUser)
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Shows a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			a, cleanup := newApp(ctx, cmd, cfg)
			defer cleanup()

			u, err := a.facade.GetUser(ctx, id)
			if err != nil {
				return err //nolint: wrapcheck
			}
			if u == nil {
				return notFound("user", args[0])
			}

			return render(cmd.OutOrStdout(), u, encodeUser)
		},
	}

	login := &cobra.Command{
		Use:   "login",
		Short: "Checks the --as and --password credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup := newApp(ctx, cmd, cfg)
			defer cleanup()

			email, _ := cmd.Flags().GetString("as")
			password, _ := cmd.Flags().GetString("password")

			u, err := a.facade.Authenticate(ctx, email, password)
			if err != nil {
				return err //nolint: wrapcheck
			}

			return render(cmd.OutOrStdout(), u, encodeUser)
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Deletes a user with their places and reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			a, cleanup := newApp(ctx, cmd, cfg)
			defer cleanup()

			actor, err := a.actor(ctx, cmd)
			if err != nil {
				return err
			}

			u, err := a.facade.DeleteUser(ctx, actor, id)
			if err != nil {
				return err //nolint: wrapcheck
			}
			if u == nil {
				return notFound("user", args[0])
			}

			return render(cmd.OutOrStdout(), u, encodeUser)
		},
	}

	cmd.AddCommand(create, list, show, login, del)

	return cmd
}
