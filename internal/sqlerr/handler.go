package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/todos/internal/errs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// generateErrorCode builds a machine-readable code of the form
// <ENTITY>_<ACTION>, e.g. todos + NotFound => TODO_NOT_FOUND.
func generateErrorCode(tableName string, code Code) string {
	entity := strings.ToUpper(singular(tableName))
	if entity == "" {
		entity = "RECORD"
	}

	action := "ERROR"
	switch code {
	case NotFound:
		action = "NOT_FOUND"
	case Conflict:
		action = "ALREADY_EXISTS"
	case ForeignKeyViolation:
		action = "REFERENCE_NOT_FOUND"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	case Unavailable:
		action = "UNAVAILABLE"
	}

	return fmt.Sprintf("%s_%s", entity, action)
}

// formatUserFriendlyMessage produces the message shown to clients for the
// error classes that are not passed through verbatim.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case NotFound:
		return fmt.Sprintf("%s not found", entityName)

	case Conflict:
		// "identifier" is replaced by the column name when the constraint
		// name reveals it.
		return fmt.Sprintf("A %s with this identifier already exists", strings.ToLower(entityName))

	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", strings.ToLower(entityName))

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return sqlErr.Message
	}
}

// getEntityName picks the noun a message refers to: the base of an "_id"
// column first, then the singular table name, then "Record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return humanizeText(strings.TrimSuffix(strings.ToLower(columnName), "_id"))
	}

	if entity := singular(tableName); entity != "" {
		return humanizeText(entity)
	}

	return "Record"
}

// singular drops one trailing "s": "todos" -> "todo".
func singular(name string) string {
	if len(name) > 1 && strings.HasSuffix(strings.ToLower(name), "s") {
		return name[:len(name)-1]
	}
	return name
}

// humanizeText converts snake_case into Title Case: "created_at" -> "Created At".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// uniqueKeyPattern matches Postgres' default "<table>_<column>_key" names.
var uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column from a unique constraint
// named either "unique_<table>_<column>" or "<table>_<column>_key".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeyPattern.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a store error into an application-level error.
//
// Output:
//   - If already *errs.HTTPError: returned unchanged
//   - NotFound: errs.NewNotFoundError ("Todo not found")
//   - Conflict: errs.NewConflictError with the clashing column when known
//   - ForeignKey/NotNull/Check violations: errs.NewBadRequestError
//   - Unavailable/Other: a 500 carrying the store's own message
//   - Anything that is not a store error: a generic 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var sqlErr *Error
	if !errors.As(err, &sqlErr) {
		return errs.NewInternalServerError()
	}

	errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
	userMessage := formatUserFriendlyMessage(sqlErr)

	switch sqlErr.Code {
	case NotFound:
		return errs.NewNotFoundError(userMessage, &errorCode)

	case Conflict:
		columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
		if columnName != "" {
			userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
		}
		return errs.NewConflictError(userMessage, &errorCode)

	case NotNullViolation:
		fieldErrors := []errs.FieldError{
			{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: "is required",
			},
		}
		return errs.NewBadRequestError(userMessage, &errorCode, fieldErrors)

	case ForeignKeyViolation, CheckViolation:
		return errs.NewBadRequestError(userMessage, &errorCode, nil)

	default:
		return errs.NewStoreError(sqlErr.Message)
	}
}
