package sqlite

import (
	"database/sql/driver"
	"fmt"
	"strings"

	sqlitedriver "modernc.org/sqlite"
)

// casefoldFunc is the SQL name of the Unicode lower-casing function used
// for title matching. SQLite's own LIKE folds ASCII letters only.
const casefoldFunc = "casefold"

func init() {
	sqlitedriver.MustRegisterDeterministicScalarFunction(casefoldFunc, 1, casefold)
}

func casefold(_ *sqlitedriver.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument type %T", casefoldFunc, v)
	}
}
