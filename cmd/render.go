package main

import (
	"fmt"
	"io"
	"time"

	"hbnb/pkg/domain"

	"github.com/go-faster/jx"
)

// Entities are rendered by hand so that references appear as ids and the
// password hash never leaves the process.

func encodeBase(e *jx.Encoder, b domain.Base) {
	e.FieldStart("id")
	e.Str(b.ID.String())
	e.FieldStart("created_at")
	e.Str(b.CreatedAt.Format(time.RFC3339Nano))
	e.FieldStart("updated_at")
	e.Str(b.UpdatedAt.Format(time.RFC3339Nano))
}

func encodeUser(e *jx.Encoder, u *domain.User) {
	e.Obj(func(e *jx.Encoder) {
		encodeBase(e, u.Base)
		e.FieldStart("first_name")
		e.Str(u.FirstName)
		e.FieldStart("last_name")
		e.Str(u.LastName)
		e.FieldStart("email")
		e.Str(u.Email)
		e.FieldStart("is_admin")
		e.Bool(u.IsAdmin)
	})
}

func encodeAmenity(e *jx.Encoder, a *domain.Amenity) {
	e.Obj(func(e *jx.Encoder) {
		encodeBase(e, a.Base)
		e.FieldStart("name")
		e.Str(a.Name)
	})
}

func encodeReview(e *jx.Encoder, r *domain.Review) {
	e.Obj(func(e *jx.Encoder) {
		encodeBase(e, r.Base)
		e.FieldStart("text")
		e.Str(r.Text)
		e.FieldStart("rating")
		e.Int(r.Rating)
		if r.User != nil {
			e.FieldStart("user_id")
			e.Str(r.User.ID.String())
		}
		if r.Place != nil {
			e.FieldStart("place_id")
			e.Str(r.Place.ID.String())
		}
	})
}

func encodePlace(e *jx.Encoder, p *domain.Place) {
	e.Obj(func(e *jx.Encoder) {
		encodeBase(e, p.Base)
		e.FieldStart("title")
		e.Str(p.Title)
		e.FieldStart("description")
		e.Str(p.Description)
		e.FieldStart("price")
		e.Float64(p.Price)
		e.FieldStart("latitude")
		e.Float64(p.Latitude)
		e.FieldStart("longitude")
		e.Float64(p.Longitude)
		e.FieldStart("location")
		e.Str(p.Location)
		if p.Owner != nil {
			e.FieldStart("owner_id")
			e.Str(p.Owner.ID.String())
		}
		e.FieldStart("amenities")
		e.Arr(func(e *jx.Encoder) {
			for _, a := range p.Amenities {
				encodeAmenity(e, a)
			}
		})
		e.FieldStart("reviews")
		e.Arr(func(e *jx.Encoder) {
			for _, r := range p.Reviews {
				encodeReview(e, r)
			}
		})
	})
}

// render writes v as one JSON document followed by a newline.
func render[T any](w io.Writer, v T, encode func(e *jx.Encoder, v T)) error {
	var e jx.Encoder
	e.SetIdent(2)
	encode(&e, v)
	if _, err := fmt.Fprintln(w, e.String()); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}

	return nil
}

// renderAll writes vs as a JSON array.
func renderAll[T any](w io.Writer, vs []T, encode func(e *jx.Encoder, v T)) error {
	return render(w, vs, func(e *jx.Encoder, vs []T) {
		e.Arr(func(e *jx.Encoder) {
			for _, v := range vs {
				encode(e, v)
			}
		})
	})
}
