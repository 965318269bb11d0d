package store

import (
	"database/sql"

	sqlite3 "github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
)

// DriverName is the database/sql driver every store opens with: the
// go-sqlite3 driver with the casefold function registered on each
// connection.
const DriverName = "sqlite3_searchcond"

// FoldFunc is the name of the SQL function returning the Unicode case fold
// of a text value. Non-text values, NULL included, are returned unchanged.
const FoldFunc = "casefold"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(FoldFunc, casefold, true)
		},
	})
}

// casefold folds text so "ÉTÉ" and "été" compare equal. A Caser keeps
// state, so each call gets its own.
func casefold(v any) any {
	switch s := v.(type) {
	case string:
		return cases.Fold().String(s)
	case []byte:
		return cases.Fold().String(string(s))
	default:
		return v
	}
}
