package utils

import (
	"math/rand"
)

// GenerateCode generates a random human-facing table code
func GenerateCode() string {
	result := make([]byte, CodeLength)
	for i := range result {
		result[i] = CodeCharset[rand.Intn(len(CodeCharset))]
	}
	return string(result)
}
