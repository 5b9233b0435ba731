package conv

// Hex32 writes the uppercase hex digits of n into the tail of buf, without
// 0x, padded with zeros to at least minDigits. buf should be >= 8 bytes.
func Hex32(buf []byte, n uint32, minDigits int) []byte {
	const hexd = "0123456789ABCDEF"
	i := len(buf)
	for d := 0; i > 0 && (n != 0 || d < minDigits || d == 0); d++ {
		i--
		buf[i] = hexd[n&0xF]
		n >>= 4
	}
	return buf[i:]
}
