package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// GenerateOTP returns a 6-digit password-reset code.
func GenerateOTP() string {
	var buf [4]byte
	rand.Read(buf[:])
	n := binary.BigEndian.Uint32(buf[:]) % 900000
	return fmt.Sprintf("%06d", 100000+n)
}
