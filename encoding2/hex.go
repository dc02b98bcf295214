package encoding2

const hexDigits = "0123456789abcdef"

// This hex encodes the binary data and writes the encoded data to the writer.
// Write errors are ignored; callers write into in-memory buffers.
func HexEncodeToWriter(w BinaryWriter, data []byte) {
	for _, b := range data {
		_ = w.WriteByte(hexDigits[b>>4])
		_ = w.WriteByte(hexDigits[b&0x0f])
	}
}
