package domain

const (
	titleMaxLen       = 100
	descriptionMaxLen = 5000
	locationMaxLen    = 255
)

// Place is a rental listing owned by exactly one user.
type Place struct {
	Base

	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	Location    string

	Owner *User
	// Amenities is a set: order carries no meaning and an amenity appears once.
	Amenities []*Amenity
	// Reviews holds the reviews of this place in creation order.
	Reviews []*Review
}

// PlaceParams holds the fields accepted when creating a place.
type PlaceParams struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	Location    string
	Owner       *User
	Amenities   []*Amenity
}

var _ Entity = (*Place)(nil)

// NewPlace builds and validates a Place.
func NewPlace(p PlaceParams) (*Place, error) {
	place := &Place{
		Base:        newBase(),
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Location:    p.Location,
		Owner:       p.Owner,
	}
	for _, a := range p.Amenities {
		place.AddAmenity(a)
	}
	if err := place.Validate(); err != nil {
		return nil, err
	}

	return place, nil
}

// Validate implements Entity.
func (p *Place) Validate() error {
	if err := checkText("title", p.Title, true, titleMaxLen); err != nil {
		return err
	}
	if err := checkText("description", p.Description, false, descriptionMaxLen); err != nil {
		return err
	}
	if err := checkText("location", p.Location, false, locationMaxLen); err != nil {
		return err
	}
	if !(p.Price > 0) {
		return invalid("price", "must be greater than 0")
	}
	if !(p.Latitude >= -90 && p.Latitude <= 90) {
		return invalid("latitude", "must be between -90 and 90")
	}
	if !(p.Longitude >= -180 && p.Longitude <= 180) {
		return invalid("longitude", "must be between -180 and 180")
	}
	if p.Owner == nil {
		return invalid("owner", "is required")
	}

	return nil
}

// Update implements Entity. Recognized keys: title, description, price,
// latitude, longitude, location, owner (*User) and amenities ([]*Amenity,
// replacing the whole set).
func (p *Place) Update(patch Patch) error {
	return stagedUpdate(p, patch)
}

func (p *Place) set(key string, value any) error {
	var err error
	switch key {
	case "title":
		p.Title, err = asString(key, value)
	case "description":
		p.Description, err = asString(key, value)
	case "location":
		p.Location, err = asString(key, value)
	case "price":
		p.Price, err = asFloat(key, value)
	case "latitude":
		p.Latitude, err = asFloat(key, value)
	case "longitude":
		p.Longitude, err = asFloat(key, value)
	case "owner":
		owner, ok := value.(*User)
		if !ok || owner == nil {
			return invalid(key, "must be a user")
		}
		p.Owner = owner
	case "amenities":
		amenities, ok := value.([]*Amenity)
		if !ok {
			return invalid(key, "must be a list of amenities")
		}
		p.Amenities = nil
		for _, a := range amenities {
			p.AddAmenity(a)
		}
	}

	return err
}

// Attribute implements Entity.
func (p *Place) Attribute(name string) (any, bool) {
	switch name {
	case "title":
		return p.Title, true
	case "description":
		return p.Description, true
	case "price":
		return p.Price, true
	case "latitude":
		return p.Latitude, true
	case "longitude":
		return p.Longitude, true
	case "location":
		return p.Location, true
	case "owner_id":
		if p.Owner == nil {
			return ID{}, true
		}

		return p.Owner.ID, true
	}

	return p.attribute(name)
}

// AddAmenity adds a to the amenity set. Adding an amenity twice has no effect.
func (p *Place) AddAmenity(a *Amenity) {
	if a == nil || p.HasAmenity(a.ID) {
		return
	}
	p.Amenities = append(p.Amenities, a)
}

// RemoveAmenity drops the amenity identified by id from the set.
func (p *Place) RemoveAmenity(id ID) {
	for i, a := range p.Amenities {
		if a.ID == id {
			p.Amenities = append(p.Amenities[:i:i], p.Amenities[i+1:]...)

			return
		}
	}
}

// HasAmenity reports whether the amenity identified by id is in the set.
func (p *Place) HasAmenity(id ID) bool {
	for _, a := range p.Amenities {
		if a.ID == id {
			return true
		}
	}

	return false
}

// AddReview appends r to the review sequence. It is called by whoever creates
// the review; a review already present is not appended again.
func (p *Place) AddReview(r *Review) {
	if r == nil {
		return
	}
	for _, existing := range p.Reviews {
		if existing.ID == r.ID {
			return
		}
	}
	p.Reviews = append(p.Reviews, r)
}

// DetachReview removes the review identified by id, keeping the order of the
// others. It is only meant for the deletion of that review.
func (p *Place) DetachReview(id ID) {
	for i, r := range p.Reviews {
		if r.ID == id {
			p.Reviews = append(p.Reviews[:i:i], p.Reviews[i+1:]...)

			return
		}
	}
}

// OwnedBy reports whether the user identified by id owns the place.
func (p *Place) OwnedBy(id ID) bool {
	return p.Owner != nil && p.Owner.ID == id
}
