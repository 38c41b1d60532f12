// Package domain contains the entities of the rental listing core (users,
// places, amenities and reviews) together with the identity, timestamp and
// validation rules attached to them. Entities validate themselves on
// construction and on every update; they know nothing about storage, so the
// same values can be held by the in-memory or the PostgreSQL repositories.
package domain
