// Command sqlpuzzle renders sql fragments described by a YAML document.
//
// Usage:
//
//	sqlpuzzle render [file]     render a document (stdin when file is omitted)
//	sqlpuzzle relations         list the condition relations
//
// Settings are read from --config, SQLPUZZLE_* environment variables and
// flags (--dialect, --statement).
package main

import (
	"log"

	"github.com/dropbox/sqlpuzzle/errors"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("sqlpuzzle: ")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(errors.GetMessage(err))
	}
}
