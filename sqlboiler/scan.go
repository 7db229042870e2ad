package sqlboiler

import (
	"database/sql"

	"github.com/friendsofgo/errors"
)

// ScanColumns scans the current row by column name. Columns without a
// destination in dest are discarded. When cursorColumn is not empty its
// value is returned as the row's index.
//
// It is a building block for RowScanner implementations:
//
//	func scanUser(rows *sql.Rows, cursorColumn string) (*models.User, int, error) {
//	    u := &models.User{}
//	    index, err := sqlboiler.ScanColumns(rows, cursorColumn, map[string]any{
//	        "id":   &u.ID,
//	        "name": &u.Name,
//	    })
//	    return u, index, err
//	}
func ScanColumns(rows *sql.Rows, cursorColumn string, dest map[string]any) (int, error) {
	cols, err := rows.Columns()
	if err != nil {
		return 0, err
	}

	var index int64
	foundCursor := cursorColumn == ""
	targets := make([]any, len(cols))
	for i, col := range cols {
		switch target, ok := dest[col]; {
		case cursorColumn != "" && col == cursorColumn:
			targets[i] = &index
			foundCursor = true
		case ok:
			targets[i] = target
		default:
			targets[i] = new(any)
		}
	}

	if !foundCursor {
		return 0, errors.Errorf("cursor column %q missing from result columns", cursorColumn)
	}

	if err := rows.Scan(targets...); err != nil {
		return 0, err
	}

	return int(index), nil
}
