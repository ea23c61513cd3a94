// Package sqlerr specifically handles store driver errors.
//
// It turns errors from the database driver into one tagged error type
// (*Error) so callers can branch on a Code instead of on driver-specific
// encodings, and converts that type into user-friendly HTTP errors
// (e.g. a "no rows" result into a 404, a unique violation into a 409).
package sqlerr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Code classifies a store error.
type Code string

const (
	// NotFound means a targeted single-row operation matched zero rows.
	NotFound Code = "not_found"
	// Conflict means the row clashes with an existing one (unique violation).
	Conflict            Code = "conflict"
	ForeignKeyViolation Code = "foreign_key_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
	// Unavailable covers connection failures and cancelled or timed out calls.
	Unavailable Code = "unavailable"
	Other       Code = "other"
)

// Severity mirrors the Postgres message severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// SQLSTATE codes we branch on.
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateNotNullViolation    = "23502"
	sqlStateCheckViolation      = "23514"
)

// Error is the tagged error returned by every store operation.
//
// It serializes into the "details" field of non-production error responses,
// which is why the driver error itself is kept out of the JSON.
type Error struct {
	Code           Code     `json:"code"`
	Severity       Severity `json:"severity,omitempty"`
	DatabaseCode   string   `json:"database_code,omitempty"`
	Message        string   `json:"message"`
	SchemaName     string   `json:"schema_name,omitempty"`
	TableName      string   `json:"table_name,omitempty"`
	ColumnName     string   `json:"column_name,omitempty"`
	DataTypeName   string   `json:"data_type_name,omitempty"`
	ConstraintName string   `json:"constraint_name,omitempty"`
	driverErr      error
}

func (e *Error) Error() string {
	if e.DatabaseCode != "" {
		return fmt.Sprintf("%s (SQLSTATE %s)", e.Message, e.DatabaseCode)
	}
	return e.Message
}

// Unwrap exposes the original driver error to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// NewNotFound builds the not-found signal for table.
func NewNotFound(table string) *Error {
	return &Error{
		Code:      NotFound,
		Message:   "no rows in result set",
		TableName: table,
	}
}

// ErrCode reports the Code for a given error.
//
// If err can be unwrapped into *Error, its Code is returned; otherwise Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// IsNotFound reports whether err carries the not-found signal.
func IsNotFound(err error) bool {
	return ErrCode(err) == NotFound
}

// Wrap converts any driver error into *Error. Nil stays nil and an error
// that already is an *Error is returned unchanged. table names the relation
// the operation targeted; it fills TableName when the driver does not.
func Wrap(err error, table string) error {
	if err == nil {
		return nil
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return err
	}

	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		converted := ConvertPgError(pgErr)
		if converted.TableName == "" {
			converted.TableName = table
		}
		return converted

	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		notFound := NewNotFound(table)
		notFound.driverErr = err
		return notFound

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), pgconn.SafeToRetry(err):
		return &Error{
			Code:      Unavailable,
			Message:   err.Error(),
			TableName: table,
			driverErr: err,
		}
	}

	return &Error{
		Code:      Other,
		Message:   err.Error(),
		TableName: table,
		driverErr: err,
	}
}

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// MapCode maps a SQLSTATE onto a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case sqlStateUniqueViolation:
		return Conflict
	case sqlStateForeignKeyViolation:
		return ForeignKeyViolation
	case sqlStateNotNullViolation:
		return NotNullViolation
	case sqlStateCheckViolation:
		return CheckViolation
	}

	// Class 08: connection exception.
	if len(sqlState) == 5 && sqlState[:2] == "08" {
		return Unavailable
	}

	return Other
}

// MapSeverity maps the driver severity string onto Severity.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}
