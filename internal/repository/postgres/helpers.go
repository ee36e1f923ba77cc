package postgres

import (
	"database/sql"
	"fmt"
)

// requireRow turns a zero-row write into a not-found error.
func requireRow(result sql.Result, resource string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s not found", resource)
	}
	return nil
}
