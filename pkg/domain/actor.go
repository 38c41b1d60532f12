package domain

// Actor identifies who performs an operation, as resolved by the caller from
// its authentication token. The zero Actor is an anonymous caller.
type Actor struct {
	UserID  ID
	IsAdmin bool
}

// ActorOf returns the Actor acting as u.
func ActorOf(u *User) Actor {
	if u == nil {
		return Actor{}
	}

	return Actor{UserID: u.ID, IsAdmin: u.IsAdmin}
}

// Anonymous reports whether no user is acting.
func (a Actor) Anonymous() bool { return a.UserID.IsZero() }

// Is reports whether the actor is the user identified by id.
func (a Actor) Is(id ID) bool { return !a.Anonymous() && a.UserID == id }
