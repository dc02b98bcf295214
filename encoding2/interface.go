package encoding2

import (
	"io"
)

// An interface for encoding byte values.  *bytes.Buffer satisfies it.
type BinaryWriter interface {
	io.Writer
	io.ByteWriter
}
