package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	letterBytes  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberBytes  = "0123456789"
	alphanumeric = letterBytes + numberBytes
)

func GenerateRandomString(length int) string {
	return generateRandom(length, alphanumeric)
}

// GenerateOTPCode produces a numeric one-time code of the given length.
func GenerateOTPCode(length int) string {
	return generateRandom(length, numberBytes)
}

func generateRandom(length int, charset string) string {
	result := make([]byte, length)
	charsetLength := big.NewInt(int64(len(charset)))

	for i := range result {
		num, _ := rand.Int(rand.Reader, charsetLength)
		result[i] = charset[num.Int64()]
	}

	return string(result)
}
