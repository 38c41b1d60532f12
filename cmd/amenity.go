package main

import (
	"hbnb/internal/config"
	"hbnb/internal/facade"

	"github.com/spf13/cobra"
)

// amenityCommand constructs the 'amenity' subcommand group.
func amenityCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amenity",
		Short: "Manages amenities",
		Long:  "Manages amenities.\n\n" + storageNote,
	}
	addActorFlags(cmd)

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Creates an amenity, requires an administrator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup := newApp(ctx, cmd, cfg)
			defer cleanup()

			actor, err := a.actor(ctx, cmd)
			if err != nil {
				return err
			}

			amenity, err := a.facade.CreateAmenity(ctx, actor, facade.AmenityInput{Name: args[0]})
			if err != nil {
				return err //nolint: wrapcheck
			}

			return render(cmd.OutOrStdout(), amenity, encodeAmenity)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lists all amenities",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup := newApp(ctx, cmd, cfg)
			defer cleanup()

			amenities, err := a.facade.GetAllAmenities(ctx)
			if err != nil {
				return err //nolint: wrapcheck
			}

			return renderAll(cmd.OutOrStdout(), amenities, encodeAmenity)
		},
	}

	cmd.AddCommand(create, list)

	return cmd
}
