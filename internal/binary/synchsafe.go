package binary

// Synchsafe32 decodes a synchsafe integer (7 bits per byte, 28 bits total).
// The high bit of each byte is ignored. b must hold at least 4 bytes.
func Synchsafe32(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// PutSynchsafe32 encodes the low 28 bits of v as a synchsafe integer.
func PutSynchsafe32(b []byte, v uint32) {
	_ = b[3]
	b[0] = byte(v>>21) & 0x7F
	b[1] = byte(v>>14) & 0x7F
	b[2] = byte(v>>7) & 0x7F
	b[3] = byte(v) & 0x7F
}

// Uint24 decodes a plain 24-bit big-endian integer (ID3v2.2 frame sizes).
func Uint24(b []byte) uint32 {
	_ = b[2]
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}
