package utils

func BytesToUint16(upper, lower uint8) uint16 {
	return uint16(upper)<<8 ^ uint16(lower)
}
