package users

// Error is the service's caller-facing failure, shaped like trips.Error so
// the HTTP adapter maps both uniformly.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}
