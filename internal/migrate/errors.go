package migrate

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// isSoftConflict reports whether a DDL failure means the desired end state
// already holds (duplicate constraint, duplicate object). Structured driver
// error codes are checked first; the message match is a fallback for
// engines that only report text.
func isSoftConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case "42710", // duplicate_object
			"42P07", // duplicate_table
			"42P16", // invalid_table_definition (constraint already present)
			"42P10", // invalid_column_reference on re-add
			"23505": // unique_violation from a concurrent add
			return true
		}
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1022, // ER_DUP_KEY
			1061, // ER_DUP_KEYNAME
			1091, // ER_CANT_DROP_FIELD_OR_KEY (constraint already gone)
			1826, // ER_DUP_CONSTRAINT_NAME
			1831, // ER_DUP_INDEX
			3822: // ER_CHECK_CONSTRAINT_DUP_NAME
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate")
}
