package sqlpuzzle

import (
	"strings"

	"github.com/dropbox/sqlpuzzle/database/sqltypes"
)

// The sql flavor fragments are rendered for.
type Database interface {
	// The character used to quote identifiers.
	EscapeCharacter() rune
	// How string literals are escaped.
	EscapeStyle() sqltypes.EscapeStyle
	Name() string
}

type genericDatabase struct {
	escapeChar  rune
	escapeStyle sqltypes.EscapeStyle
	name        string
}

func (db *genericDatabase) EscapeCharacter() rune {
	return db.escapeChar
}

func (db *genericDatabase) EscapeStyle() sqltypes.EscapeStyle {
	return db.escapeStyle
}

func (db *genericDatabase) Name() string {
	return db.name
}

func NewMySQLDatabase() Database {
	return &genericDatabase{
		escapeChar:  '`',
		escapeStyle: sqltypes.BackslashEscape,
		name:        "mysql",
	}
}

func NewPostgresDatabase() Database {
	return &genericDatabase{
		escapeChar:  '"',
		escapeStyle: sqltypes.PostgresEscape,
		name:        "postgres",
	}
}

func NewSQLiteDatabase() Database {
	return &genericDatabase{
		escapeChar:  '"',
		escapeStyle: sqltypes.StandardEscape,
		name:        "sqlite",
	}
}

// Returns the database for a dialect name (mysql, postgres or sqlite,
// case insensitive).
func DatabaseByName(name string) (Database, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mysql":
		return NewMySQLDatabase(), nil
	case "postgres", "postgresql":
		return NewPostgresDatabase(), nil
	case "sqlite", "sqlite3":
		return NewSQLiteDatabase(), nil
	}
	return nil, newInvalidArgument("Unknown database dialect '%s'", name)
}
