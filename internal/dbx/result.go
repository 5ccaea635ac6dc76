package dbx

import (
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
)

// ExpectRow checks the outcome of an UPDATE keyed by primary key: a driver
// error wraps common.ErrStatementFailed, zero affected rows is
// common.ErrorNotFound.
func ExpectRow(res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
