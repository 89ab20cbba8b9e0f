package main

import (
	"math/rand"
)

const (
	randChars    = "abcdefghijklmnopqrstuvwxyz"
	minRandLen   = 5
	maxRandLen   = 10
	RandArgument = "RAND"
)

// randString returns a lowercase string of minRandLen..maxRandLen letters.
func randString(r *rand.Rand) string {
	n := minRandLen + r.Intn(maxRandLen-minRandLen+1)
	b := make([]byte, n)
	for i := range b {
		b[i] = randChars[r.Intn(len(randChars))]
	}
	return string(b)
}
