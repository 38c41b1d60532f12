package main

import (
	"hbnb/internal/config"
	"hbnb/internal/facade"
	"hbnb/pkg/domain"

	"github.com/spf13/cobra"
)

// placeCommand constructs the 'place' subcommand group.
func placeCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Manages places",
		Long:  "Manages places.\n\n" + storageNote,
	}
	addActorFlags(cmd)

	create := &cobra.Command{
		Use:   "create",
		Short: "Creates a place owned by the acting user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			amenityArgs, _ := cmd.Flags().GetStringSlice("amenity")
			amenityIDs := make([]domain.ID, 0, len(amenityArgs))
			for _, s := range amenityArgs {
				id, err := parseIDArg(s)
				if err != nil {
					return err
				}
				amenityIDs = append(amenityIDs, id)
			}

			a, cleanup := newApp(ctx, cmd, cfg)
			defer cleanup()

			actor, err := a.actor(ctx, cmd)
			if err != nil {
				return err
			}

			in := facade.PlaceInput{OwnerID: actor.UserID, AmenityIDs: amenityIDs}
			in.Title, _ = cmd.Flags().GetString("title")
			in.Description, _ = cmd.Flags().GetString("description")
			in.Price, _ = cmd.Flags().GetFloat64("price")
			in.Latitude, _ = cmd.Flags().GetFloat64("latitude")
			in.Longitude, _ = cmd.Flags().GetFloat64("longitude")
			in.Location, _ = cmd.Flags().GetString("location")

			place, err := a.facade.CreatePlace(ctx, actor, in)
			if err != nil {
				return err //nolint: wrapcheck
			}

			return render(cmd.OutOrStdout(), place, encodePlace)
		},
	}
	create.Flags().String("title", "", "Title")
	create.Flags().String("description", "", "Description")
	create.Flags().Float64("price", 0, "Price per night")
	create.Flags().Float64("latitude", 0, "Latitude")
	create.Flags().Float64("longitude", 0, "Longitude")
	create.Flags().String("location", "", "Location")
	create.Flags().StringSlice("amenity", nil, "Amenity id, may be repeated")

	list := &cobra.Command{
		Use:   "list",
		Short: "Lists all places",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup := newApp(ctx, cmd, cfg)
			defer cleanup()

			places, err := a.facade.GetAllPlaces(ctx)
			if err != nil {
				return err //nolint: wrapcheck
			}

			return renderAll(cmd.OutOrStdout(), places, encodePlace)
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Shows a place with its amenities and reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			a, cleanup := newApp(ctx, cmd, cfg)
			defer cleanup()

			place, err := a.facade.GetPlace(ctx, id)
			if err != nil {
				return err //nolint: wrapcheck
			}
			if place == nil {
				return notFound("place", args[0])
			}

			return render(cmd.OutOrStdout(), place, encodePlace)
		},
	}

	cmd.AddCommand(create, list, show)

	return cmd
}
