package domain_test

import (
	"hbnb/pkg/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	user := newUser(t, "a@b.com")
	place := newPlace(t, user)

	review, err := domain.NewReview(domain.ReviewParams{Text: "Great!", Rating: 5, User: user, Place: place})
	require.NoError(t, err)
	require.Len(t, place.Reviews, 1)
	require.Same(t, review, place.Reviews[0])

	second, err := domain.NewReview(domain.ReviewParams{Text: "Meh", Rating: 2, User: user, Place: place})
	require.NoError(t, err)
	require.Equal(t, []*domain.Review{review, second}, place.Reviews)

	place.AddReview(review)
	require.Len(t, place.Reviews, 2, "re-adding a review must not duplicate it")
}

func TestNewReview_Invalid(t *testing.T) {
	user := newUser(t, "a@b.com")
	place := newPlace(t, user)

	tests := []struct {
		name   string
		params domain.ReviewParams
		field  string
	}{
		{name: "missing text", params: domain.ReviewParams{Text: " ", Rating: 3, User: user, Place: place}, field: "text"},
		{name: "rating too low", params: domain.ReviewParams{Text: "ok", Rating: 0, User: user, Place: place}, field: "rating"},
		{name: "rating too high", params: domain.ReviewParams{Text: "ok", Rating: 6, User: user, Place: place}, field: "rating"},
		{name: "missing user", params: domain.ReviewParams{Text: "ok", Rating: 3, Place: place}, field: "user"},
		{name: "missing place", params: domain.ReviewParams{Text: "ok", Rating: 3, User: user}, field: "place"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewReview(tt.params)
			requireValidationError(t, err, tt.field)
		})
	}
	require.Empty(t, place.Reviews, "rejected reviews must not be attached")
}

func TestReview_Update(t *testing.T) {
	user := newUser(t, "a@b.com")
	place := newPlace(t, user)
	other := newPlace(t, user)
	review, err := domain.NewReview(domain.ReviewParams{Text: strings.Repeat("long ", 100), Rating: 3, User: user, Place: place})
	require.NoError(t, err)

	// JSON numbers decode as float64
	require.NoError(t, review.Update(domain.Patch{"rating": float64(4), "text": "Better", "place": other}))
	require.Equal(t, 4, review.Rating)
	require.Equal(t, "Better", review.Text)
	require.Same(t, place, review.Place, "place is set once")

	requireValidationError(t, review.Update(domain.Patch{"rating": 4.5}), "rating")
	requireValidationError(t, review.Update(domain.Patch{"rating": 9}), "rating")
	requireValidationError(t, review.Update(domain.Patch{"text": ""}), "text")
	require.Equal(t, 4, review.Rating)
	require.Equal(t, "Better", review.Text)

	v, ok := review.Attribute("place_id")
	require.True(t, ok)
	require.Equal(t, place.ID, v)
}

func TestAmenity(t *testing.T) {
	a := newAmenity(t, "WiFi")
	require.NoError(t, a.Validate())

	_, err := domain.NewAmenity("")
	requireValidationError(t, err, "name")

	_, err = domain.NewAmenity(strings.Repeat("x", 51))
	requireValidationError(t, err, "name")

	require.NoError(t, a.Update(domain.Patch{"name": "Fast WiFi"}))
	require.Equal(t, "Fast WiFi", a.Name)

	requireValidationError(t, a.Update(domain.Patch{"name": ""}), "name")
	require.Equal(t, "Fast WiFi", a.Name)
}
