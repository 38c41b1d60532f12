package facade

import (
	"context"
	"fmt"

	"hbnb/pkg/domain"
	"hbnb/pkg/logger"
	"hbnb/pkg/serrors"
	"hbnb/pkg/storage"

	"go.uber.org/zap"
)

// CreateReview stores a review written by the actor. Owners cannot review
// their own places and a user reviews a place at most once.
func (s *service) CreateReview(ctx context.Context, actor domain.Actor, in ReviewInput) (*domain.Review, error) {
	if actor.Anonymous() {
		return nil, deny(ctx, serrors.ErrUnauthorized, actor, "create_review", "reviews need an author")
	}

	var review *domain.Review
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		author, err := tx.Users().Get(ctx, actor.UserID)
		if err != nil {
			return fmt.Errorf("could not get author: %w", err)
		}
		if author == nil {
			return notFound("user", actor.UserID)
		}

		place, err := tx.Places().Get(ctx, in.PlaceID)
		if err != nil {
			return fmt.Errorf("could not get place: %w", err)
		}
		if place == nil {
			return notFound("place", in.PlaceID)
		}

		if place.OwnedBy(author.ID) {
			return deny(ctx, serrors.ErrForbidden, actor, "create_review", "cannot review your own place")
		}
		for _, r := range place.Reviews {
			if r.User != nil && r.User.ID == author.ID {
				return serrors.With(serrors.ErrConflict, "place %s is already reviewed by %s", place.ID, author.ID)
			}
		}

		review, err = domain.NewReview(domain.ReviewParams{
			Text:   in.Text,
			Rating: in.Rating,
			User:   author,
			Place:  place,
		})
		if err != nil {
			return err //nolint: wrapcheck
		}

		if err := tx.Reviews().Add(ctx, review); err != nil {
			place.DetachReview(review.ID)

			return fmt.Errorf("could not store review: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err //nolint: wrapcheck
	}

	logger.Debug(ctx, "review created", zap.Stringer("review_id", review.ID), zap.Stringer("place_id", in.PlaceID))

	return review, nil
}

func (s *service) GetReview(ctx context.Context, id domain.ID) (*domain.Review, error) {
	r, err := s.storage.Reviews().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get review: %w", err)
	}

	return r, nil
}

func (s *service) GetAllReviews(ctx context.Context) ([]*domain.Review, error) {
	reviews, err := s.storage.Reviews().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list reviews: %w", err)
	}

	return reviews, nil
}

// GetReviewsByPlace returns the reviews of a place in creation order, or nil
// when the place does not exist.
func (s *service) GetReviewsByPlace(ctx context.Context, placeID domain.ID) ([]*domain.Review, error) {
	p, err := s.storage.Places().Get(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("could not get place: %w", err)
	}
	if p == nil {
		return nil, nil
	}

	return append([]*domain.Review{}, p.Reviews...), nil
}

// UpdateReview patches a review on behalf of its author. It returns nil when
// the review does not exist.
func (s *service) UpdateReview(ctx context.Context,
	actor domain.Actor,
	id domain.ID,
	patch domain.Patch) (*domain.Review, error) {
	var review *domain.Review
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		existing, err := tx.Reviews().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("could not get review: %w", err)
		}
		if existing == nil {
			return nil
		}

		if existing.User == nil || !actor.Is(existing.User.ID) {
			return deny(ctx, serrors.ErrForbidden, actor, "update_review", "only the author can update a review")
		}

		if err := tx.Reviews().Update(ctx, id, patch); err != nil {
			return err //nolint: wrapcheck
		}

		review, err = tx.Reviews().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("could not reload review: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err //nolint: wrapcheck
	}

	return review, nil
}

// DeleteReview removes a review on behalf of its author or an admin and
// detaches it from its place.
func (s *service) DeleteReview(ctx context.Context, actor domain.Actor, id domain.ID) (*domain.Review, error) {
	var review *domain.Review
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		review, err = tx.Reviews().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("could not get review: %w", err)
		}
		if review == nil {
			return nil
		}

		if (review.User == nil || !actor.Is(review.User.ID)) && !admin(actor) {
			return deny(ctx, serrors.ErrForbidden, actor, "delete_review", "only the author can delete a review")
		}

		return removeReview(ctx, tx, review)
	}); err != nil {
		return nil, err //nolint: wrapcheck
	}

	if review != nil {
		logger.Debug(ctx, "review deleted", zap.Stringer("review_id", id))
	}

	return review, nil
}

func removeReview(ctx context.Context, tx storage.AllStorage, r *domain.Review) error {
	if err := tx.Reviews().Delete(ctx, r.ID); err != nil {
		return fmt.Errorf("could not delete review: %w", err)
	}
	if r.Place != nil {
		r.Place.DetachReview(r.ID)
	}

	return nil
}
