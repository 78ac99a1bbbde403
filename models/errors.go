package models

import "strings"

// ErrorKind classifies an AppError so the central error handler can pick
// the HTTP status without inspecting message text.
type ErrorKind int

const (
	KindValidation ErrorKind = iota // malformed input or business-rule violation
	KindAuth                        // missing/invalid/expired token, bad credentials
	KindForbidden                   // authenticated but not entitled
	KindNotFound                    // referenced entity absent
)

type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string { return e.Message }

// Status maps the error kind to its HTTP status code.
func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation:
		return 400
	case KindAuth:
		return 401
	case KindForbidden:
		return 403
	case KindNotFound:
		return 404
	}
	return 500
}

func ErrValidation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func ErrAuth(message string) *AppError {
	return &AppError{Kind: KindAuth, Message: message}
}

func ErrForbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func ErrNotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// uniqueConstraints maps the constraint and index names of the schema
// (and sqlite's table.column spelling) to the user-facing field they
// guard. The review pair reports product_id, the field the user chose.
var uniqueConstraints = []struct {
	needle string
	field  string
}{
	{"users.email", "email"},
	{"uni_users_email", "email"},
	{"categories.name", "name"},
	{"uni_categories_name", "name"},
	{"carts.user_id", "user_id"},
	{"idx_carts_user_id", "user_id"},
	{"idx_reviews_user_product", "product_id"},
	{"reviews.user_id", "product_id"},
}

// DuplicateKeyField reports whether err is a uniqueness-constraint
// violation surfaced by the store, and which field caused it when the
// message names a known constraint. Matching full constraint and index
// names keeps unrelated errors that merely contain a column word from
// being labeled duplicates; the phrasing gate covers both the postgres
// and the sqlite driver without driver-specific error types.
func DuplicateKeyField(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "duplicate key") && !strings.Contains(msg, "unique constraint") {
		return "", false
	}
	for _, constraint := range uniqueConstraints {
		if strings.Contains(msg, constraint.needle) {
			return constraint.field, true
		}
	}
	return "", true
}
