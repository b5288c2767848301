package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
)

var dbSequence atomic.Int64

// NewSQLiteMemoryDB opens a private in-memory SQLite database. Each call
// returns an isolated database so tests never share state.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:testsupport_%d?mode=memory&cache=shared&_fk=1", dbSequence.Add(1))
	return sql.Open("sqlite3", dsn)
}
