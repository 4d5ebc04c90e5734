package trips

// Error is the service's caller-facing failure: Status/Code drive the HTTP
// response, Details carries e.g. the offending userId. A 409 Code "CONFLICT"
// means a mutation lost the revision race and may be retried from fresh state.
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
