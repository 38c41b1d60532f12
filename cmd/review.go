package main

import (
	"hbnb/internal/config"
	"hbnb/internal/facade"
	"hbnb/pkg/domain"

	"github.com/spf13/cobra"
)

// reviewCommand constructs the 'review' subcommand group.
func reviewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Manages reviews",
		Long:  "Manages reviews.\n\n" + storageNote,
	}
	addActorFlags(cmd)

	create := &cobra.Command{
		Use:   "create <place-id>",
		Short: "Reviews a place as the acting user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			placeID, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			a, cleanup := newApp(ctx, cmd, cfg)
			defer cleanup()

			actor, err := a.actor(ctx, cmd)
			if err != nil {
				return err
			}

			in := facade.ReviewInput{PlaceID: placeID}
			in.Text, _ = cmd.Flags().GetString("text")
			in.Rating, _ = cmd.Flags().GetInt("rating")

			review, err := a.facade.CreateReview(ctx, actor, in)
			if err != nil {
				return err //nolint: wrapcheck
			}

			return render(cmd.OutOrStdout(), review, encodeReview)
		},
	}
	create.Flags().String("text", "", "Review text")
	create.Flags().Int("rating", 0, "Rating from 1 to 5")

	list := &cobra.Command{
		Use:   "list",
		Short: "Lists reviews, optionally of one place",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			placeArg, _ := cmd.Flags().GetString("place")

			var placeID domain.ID
			if placeArg != "" {
				id, err := parseIDArg(placeArg)
				if err != nil {
					return err
				}
				placeID = id
			}

			a, cleanup := newApp(ctx, cmd, cfg)
			defer cleanup()

			var (
				reviews []*domain.Review
				err     error
			)
			if placeID.IsZero() {
				reviews, err = a.facade.GetAllReviews(ctx)
			} else {
				reviews, err = a.facade.GetReviewsByPlace(ctx, placeID)
				if err == nil && reviews == nil {
					return notFound("place", placeArg)
				}
			}
			if err != nil {
				return err //nolint: wrapcheck
			}

			return renderAll(cmd.OutOrStdout(), reviews, encodeReview)
		},
	}
	list.Flags().String("place", "", "Only list reviews of this place")

	cmd.AddCommand(create, list)

	return cmd
}
