package id3

// Unsynchronisation inserts a 0x00 after every 0xFF that could be mistaken
// for an MPEG frame sync. Frame sizes written by such encoders count the
// original bytes, so both the frame end and its payload must be corrected.

// unsynchronizedSize returns the number of stuffed bytes that hold size
// bytes of real data starting at rel in block. Each FF 00 pair found
// extends the span by one. The scan stops at the end of block.
func unsynchronizedSize(block []byte, rel int, size int64) int64 {
	for j := int64(0); j < size; j++ {
		i := int64(rel) + j
		if i+1 >= int64(len(block)) {
			break
		}
		if block[i] == 0xFF && block[i+1] == 0x00 {
			size++
		}
	}
	return size
}

// destuff removes the 0x00 following each 0xFF. The input is not modified.
func destuff(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for j := 0; j < len(data); j++ {
		v := data[j]
		if v == 0xFF && j+1 < len(data) && data[j+1] == 0x00 {
			j++
		}
		out = append(out, v)
	}
	return out
}
