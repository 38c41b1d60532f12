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

func admin(actor domain.Actor) bool { return actor.IsAdmin && !actor.Anonymous() }

// CreateUser registers a user. The email must be unused. Creating an admin
// takes an admin actor, except for the very first user when bootstrapping is
// allowed.
func (s *service) CreateUser(ctx context.Context, actor domain.Actor, in UserInput) (*domain.User, error) {
	var user *domain.User
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		if in.IsAdmin && !admin(actor) {
			all, err := tx.Users().GetAll(ctx)
			if err != nil {
				return fmt.Errorf("could not list users: %w", err)
			}
			if len(all) > 0 || !s.options.AllowAdminBootstrap {
				return deny(ctx, serrors.ErrForbidden, actor, "create_user", "only admins can create admins")
			}
		}

		existing, err := tx.Users().GetByAttribute(ctx, "email", in.Email)
		if err != nil {
			return fmt.Errorf("could not look up email: %w", err)
		}
		if existing != nil {
			return serrors.With(serrors.ErrConflict, "email %s is already registered", in.Email)
		}

		user, err = domain.NewUser(domain.UserParams{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			Password:  in.Password,
			IsAdmin:   in.IsAdmin,
		})
		if err != nil {
			return err //nolint: wrapcheck
		}

		if err := tx.Users().Add(ctx, user); err != nil {
			return fmt.Errorf("could not store user: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err //nolint: wrapcheck
	}

	logger.Debug(ctx, "user created", zap.Stringer("user_id", user.ID), zap.Bool("is_admin", user.IsAdmin))

	return user, nil
}

// GetUser returns the user or nil when absent.
func (s *service) GetUser(ctx context.Context, id domain.ID) (*domain.User, error) {
	u, err := s.storage.Users().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}

	return u, nil
}

func (s *service) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.storage.Users().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list users: %w", err)
	}

	return users, nil
}

// GetUserByEmail returns the user registered with email or nil.
func (s *service) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.storage.Users().GetByAttribute(ctx, "email", email)
	if err != nil {
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}

	return u, nil
}

// UpdateUser patches a user. Users may update themselves, admins anyone;
// only admins may grant or revoke admin rights. It returns nil when the user
// does not exist.
func (s *service) UpdateUser(ctx context.Context,
	actor domain.Actor,
	id domain.ID,
	patch domain.Patch) (*domain.User, error) {
	var user *domain.User
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		existing, err := tx.Users().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("could not get user: %w", err)
		}
		if existing == nil {
			return nil
		}

		if !actor.Is(id) && !admin(actor) {
			return deny(ctx, serrors.ErrForbidden, actor, "update_user", "cannot update another user")
		}
		if _, ok := patch["is_admin"]; ok && !admin(actor) {
			return deny(ctx, serrors.ErrForbidden, actor, "update_user", "only admins can change admin rights")
		}

		if email, ok := patch["email"].(string); ok && email != existing.Email {
			other, err := tx.Users().GetByAttribute(ctx, "email", email)
			if err != nil {
				return fmt.Errorf("could not look up email: %w", err)
			}
			if other != nil && other.ID != id {
				return serrors.With(serrors.ErrConflict, "email %s is already registered", email)
			}
		}

		if err := tx.Users().Update(ctx, id, patch); err != nil {
			return err //nolint: wrapcheck
		}

		user, err = tx.Users().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("could not reload user: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err //nolint: wrapcheck
	}

	if user != nil {
		logger.Debug(ctx, "user updated", zap.Stringer("user_id", user.ID))
	}

	return user, nil
}

// DeleteUser removes a user together with the places it owns and the reviews
// it wrote or received on those places. Only admins may delete users.
func (s *service) DeleteUser(ctx context.Context, actor domain.Actor, id domain.ID) (*domain.User, error) {
	if !admin(actor) {
		return nil, deny(ctx, serrors.ErrForbidden, actor, "delete_user", "only admins can delete users")
	}

	var user *domain.User
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		user, err = tx.Users().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("could not get user: %w", err)
		}
		if user == nil {
			return nil
		}

		reviews, err := tx.Reviews().GetAll(ctx)
		if err != nil {
			return fmt.Errorf("could not list reviews: %w", err)
		}
		for _, r := range reviews {
			if r.User.ID == id || r.Place.OwnedBy(id) {
				if err := removeReview(ctx, tx, r); err != nil {
					return err
				}
			}
		}

		places, err := tx.Places().GetAll(ctx)
		if err != nil {
			return fmt.Errorf("could not list places: %w", err)
		}
		for _, p := range places {
			if p.OwnedBy(id) {
				if err := tx.Places().Delete(ctx, p.ID); err != nil {
					return fmt.Errorf("could not delete place: %w", err)
				}
			}
		}

		if err := tx.Users().Delete(ctx, id); err != nil {
			return fmt.Errorf("could not delete user: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err //nolint: wrapcheck
	}

	if user != nil {
		logger.Debug(ctx, "user deleted", zap.Stringer("user_id", id))
	}

	return user, nil
}

// Authenticate checks credentials and returns the matching user.
func (s *service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.storage.Users().GetByAttribute(ctx, "email", email)
	if err != nil {
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}
	if u == nil || !u.VerifyPassword(password) {
		logger.Info(ctx, "authentication failed", zap.String("email", email))

		return nil, serrors.With(serrors.ErrUnauthorized, "invalid credentials")
	}

	return u, nil
}
