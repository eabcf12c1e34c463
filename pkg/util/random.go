package util

import (
	"math/rand"
	"time"
)

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateRandomNumber returns a random number between min and max (inclusive)
func GenerateRandomNumber(min, max int) int {
	return min + rng.Intn(max-min+1)
}
