package validation

import "errors"

// Error is an input failure tied to a single field. Operations returning it
// leave persisted state untouched.
type Error struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func New(field, code, message string) *Error {
	return &Error{Field: field, Code: code, Message: message}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Code
}

// Is matches on field and code so wrapped copies still compare equal to the
// package level sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Field == t.Field && e.Code == t.Code
}

func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) && verr != nil {
		return verr, true
	}
	return nil, false
}
