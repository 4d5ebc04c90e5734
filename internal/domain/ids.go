package domain

// UserID is the identifier of a user record. It doubles as the username and
// as the identifier of the user's login record (1:1 by shared id).
type UserID string

// TripID is an internal identifier for a trip record.
type TripID string

// Revision is the document store's optimistic-concurrency token for a stored
// document. The store mints it; callers only hand it back unchanged as the
// precondition of a conditional write.
type Revision string
