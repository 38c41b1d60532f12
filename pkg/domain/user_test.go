package domain_test

import (
	"errors"
	"hbnb/pkg/domain"
	"hbnb/pkg/serrors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, email string) *domain.User {
	t.Helper()

	u, err := domain.NewUser(domain.UserParams{
		FirstName: "A",
		LastName:  "B",
		Email:     email,
		Password:  "pw",
	})
	require.NoError(t, err)

	return u
}

func requireValidationError(t *testing.T, err error, field string) {
	t.Helper()

	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrValidation)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected *domain.ValidationError, got %T", err)
	require.Equal(t, field, verr.Field)
}

func TestNewUser(t *testing.T) {
	tests := []struct {
		name   string
		params domain.UserParams
		field  string
	}{
		{
			name:   "valid",
			params: domain.UserParams{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
		},
		{
			name:   "missing first name",
			params: domain.UserParams{FirstName: "  ", LastName: "Doe", Email: "jane@example.com"},
			field:  "first_name",
		},
		{
			name:   "first name too long",
			params: domain.UserParams{FirstName: strings.Repeat("a", 51), LastName: "Doe", Email: "jane@example.com"},
			field:  "first_name",
		},
		{
			name:   "missing last name",
			params: domain.UserParams{FirstName: "Jane", Email: "jane@example.com"},
			field:  "last_name",
		},
		{
			name:   "last name too long",
			params: domain.UserParams{FirstName: "Jane", LastName: strings.Repeat("é", 51), Email: "jane@example.com"},
			field:  "last_name",
		},
		{
			name:   "missing email",
			params: domain.UserParams{FirstName: "Jane", LastName: "Doe"},
			field:  "email",
		},
		{
			name:   "malformed email",
			params: domain.UserParams{FirstName: "Jane", LastName: "Doe", Email: "jane.example.com"},
			field:  "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := domain.NewUser(tt.params)
			if tt.field == "" {
				require.NoError(t, err)
				require.NoError(t, u.Validate())
				require.False(t, u.IsAdmin)

				return
			}

			requireValidationError(t, err, tt.field)
			require.Nil(t, u)
		})
	}
}

func TestUser_NameAtMaxLength(t *testing.T) {
	_, err := domain.NewUser(domain.UserParams{
		FirstName: strings.Repeat("a", 50),
		LastName:  strings.Repeat("b", 50),
		Email:     "a@b.com",
	})
	require.NoError(t, err)
}

func TestUser_Identity(t *testing.T) {
	seen := map[domain.ID]bool{}
	for range 50 {
		u, err := domain.NewUser(domain.UserParams{FirstName: "A", LastName: "B", Email: "a@b.com"})
		require.NoError(t, err)
		require.False(t, u.ID.IsZero())
		require.NotEmpty(t, u.ID.String())
		require.False(t, seen[u.ID], "duplicate id %s", u.ID)
		seen[u.ID] = true
		require.False(t, u.UpdatedAt.Before(u.CreatedAt))
	}
}

func TestUser_Password(t *testing.T) {
	u := newUser(t, "a@b.com")
	require.True(t, u.HasPassword())
	require.True(t, u.VerifyPassword("pw"))
	require.False(t, u.VerifyPassword("nope"))
	require.NotEqual(t, "pw", u.HashedPassword())

	requireValidationError(t, u.SetPassword(""), "password")
	require.True(t, u.VerifyPassword("pw"), "failed SetPassword must keep the previous hash")

	require.NoError(t, u.SetPassword("s3cret"))
	require.True(t, u.VerifyPassword("s3cret"))
	require.False(t, u.VerifyPassword("pw"))
}

func TestUser_VerifyPasswordWithoutHash(t *testing.T) {
	u, err := domain.NewUser(domain.UserParams{FirstName: "A", LastName: "B", Email: "a@b.com"})
	require.NoError(t, err)
	require.False(t, u.HasPassword())
	require.False(t, u.VerifyPassword(""))
	require.False(t, u.VerifyPassword("anything"))
}

func TestUser_RestoreHashedPassword(t *testing.T) {
	src := newUser(t, "a@b.com")

	dst := &domain.User{Base: src.Base, FirstName: "A", LastName: "B", Email: "a@b.com"}
	dst.RestoreHashedPassword(src.HashedPassword())
	require.True(t, dst.VerifyPassword("pw"))
}

func TestUser_Update(t *testing.T) {
	u := newUser(t, "a@b.com")
	id, created, updated := u.ID, u.CreatedAt, u.UpdatedAt

	require.NoError(t, u.Update(domain.Patch{
		"first_name": "Alice",
		"is_admin":   true,
		"id":         domain.NewID(),
		"created_at": "ignored",
		"unknown":    42,
	}))
	require.Equal(t, "Alice", u.FirstName)
	require.True(t, u.IsAdmin)
	require.Equal(t, id, u.ID)
	require.Equal(t, created, u.CreatedAt)
	require.False(t, u.UpdatedAt.Before(updated))
	require.False(t, u.UpdatedAt.Before(u.CreatedAt))
}

func TestUser_UpdatePassword(t *testing.T) {
	u := newUser(t, "a@b.com")
	require.NoError(t, u.Update(domain.Patch{"password": "changed"}))
	require.True(t, u.VerifyPassword("changed"))

	requireValidationError(t, u.Update(domain.Patch{"password": ""}), "password")
	require.True(t, u.VerifyPassword("changed"))
}

func TestUser_FailedUpdateKeepsState(t *testing.T) {
	u := newUser(t, "a@b.com")
	updated := u.UpdatedAt

	err := u.Update(domain.Patch{"first_name": "Changed", "email": "not-an-email"})
	requireValidationError(t, err, "email")

	// updates are staged: nothing from the rejected patch reaches the entity
	require.Equal(t, "a@b.com", u.Email)
	require.Equal(t, "A", u.FirstName)
	require.Equal(t, updated, u.UpdatedAt)
}

func TestUser_UpdateWrongType(t *testing.T) {
	u := newUser(t, "a@b.com")

	requireValidationError(t, u.Update(domain.Patch{"is_admin": "yes"}), "is_admin")
	requireValidationError(t, u.Update(domain.Patch{"email": 12}), "email")
	require.False(t, u.IsAdmin)
}

func TestUser_Attribute(t *testing.T) {
	u := newUser(t, "a@b.com")

	v, ok := u.Attribute("email")
	require.True(t, ok)
	require.Equal(t, "a@b.com", v)

	v, ok = u.Attribute("id")
	require.True(t, ok)
	require.Equal(t, u.ID, v)

	_, ok = u.Attribute("password_hash")
	require.False(t, ok)
}

func TestActor(t *testing.T) {
	u := newUser(t, "a@b.com")

	var anon domain.Actor
	require.True(t, anon.Anonymous())
	require.False(t, anon.Is(domain.ID{}))

	a := domain.ActorOf(u)
	require.False(t, a.Anonymous())
	require.True(t, a.Is(u.ID))
	require.False(t, a.IsAdmin)
	require.Equal(t, domain.Actor{}, domain.ActorOf(nil))
}

func TestParseID(t *testing.T) {
	id := domain.NewID()

	parsed, err := domain.ParseID(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = domain.ParseID("not-a-uuid")
	requireValidationError(t, err, "id")
}
