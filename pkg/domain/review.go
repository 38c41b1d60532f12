package domain

const (
	minRating = 1
	maxRating = 5
)

// Review is a rated comment a user leaves on a place.
type Review struct {
	Base

	Text   string
	Rating int

	// User is the author; it is set once at construction.
	User *User
	// Place is the reviewed place; it is set once at construction.
	Place *Place
}

// ReviewParams holds the fields accepted when creating a review. The
// references are trusted: checking that they exist is the caller's job.
type ReviewParams struct {
	Text   string
	Rating int
	User   *User
	Place  *Place
}

var _ Entity = (*Review)(nil)

// NewReview builds and validates a Review and appends it to the reviews of
// its place.
func NewReview(p ReviewParams) (*Review, error) {
	r := &Review{
		Base:   newBase(),
		Text:   p.Text,
		Rating: p.Rating,
		User:   p.User,
		Place:  p.Place,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.Place.AddReview(r)

	return r, nil
}

// Validate implements Entity.
func (r *Review) Validate() error {
	if err := checkText("text", r.Text, true, 0); err != nil {
		return err
	}
	if r.Rating < minRating || r.Rating > maxRating {
		return invalid("rating", "must be between %d and %d", minRating, maxRating)
	}
	if r.User == nil {
		return invalid("user", "is required")
	}
	if r.Place == nil {
		return invalid("place", "is required")
	}

	return nil
}

// Update implements Entity. Recognized keys: text and rating. The author and
// the place never change.
func (r *Review) Update(patch Patch) error {
	return stagedUpdate(r, patch)
}

func (r *Review) set(key string, value any) error {
	var err error
	switch key {
	case "text":
		r.Text, err = asString(key, value)
	case "rating":
		r.Rating, err = asInt(key, value)
	}

	return err
}

// Attribute implements Entity.
func (r *Review) Attribute(name string) (any, bool) {
	switch name {
	case "text":
		return r.Text, true
	case "rating":
		return r.Rating, true
	case "user_id":
		if r.User == nil {
			return ID{}, true
		}

		return r.User.ID, true
	case "place_id":
		if r.Place == nil {
			return ID{}, true
		}

		return r.Place.ID, true
	}

	return r.attribute(name)
}
