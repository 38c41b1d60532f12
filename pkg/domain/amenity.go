package domain

const amenityNameMaxLen = 50

// Amenity is a named facility a place can offer (e.g. "WiFi").
type Amenity struct {
	Base

	// Name is unique across amenities. Uniqueness is checked by the facade.
	Name string
}

var _ Entity = (*Amenity)(nil)

// NewAmenity builds and validates an Amenity.
func NewAmenity(name string) (*Amenity, error) {
	a := &Amenity{Base: newBase(), Name: name}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate implements Entity.
func (a *Amenity) Validate() error {
	return checkText("name", a.Name, true, amenityNameMaxLen)
}

// Update implements Entity. Recognized keys: name.
func (a *Amenity) Update(patch Patch) error {
	return stagedUpdate(a, patch)
}

func (a *Amenity) set(key string, value any) error {
	var err error
	if key == "name" {
		a.Name, err = asString(key, value)
	}

	return err
}

// Attribute implements Entity.
func (a *Amenity) Attribute(name string) (any, bool) {
	if name == "name" {
		return a.Name, true
	}

	return a.attribute(name)
}
