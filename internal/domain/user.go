package domain

// User is the domain representation of a registered user.
type User struct {
	ID    UserID
	Name  string
	Email string
	Phone string

	// Friends holds references to other users, not embedded records.
	// Order is preserved as stored.
	Friends []UserID
}

// Login is the credential record paired 1:1 with a User by shared id.
// The password is treated as an opaque string at this layer.
type Login struct {
	ID       UserID
	Password string
}

// Location is a recorded position. It is part of the stored document family
// but has no repository of its own yet.
type Location struct {
	ID        string
	Latitude  string
	Longitude string
}
