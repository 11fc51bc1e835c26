package room

import (
	"math/rand"
	"sync"
	"time"
)

const (
	roomIDLen      = 8
	roomIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var (
	roomIDRand   = rand.New(rand.NewSource(time.Now().UnixNano()))
	roomIDRandMu sync.Mutex
)

// NewRoomID returns an 8-character uppercase base36 identifier.
func NewRoomID() string {
	roomIDRandMu.Lock()
	defer roomIDRandMu.Unlock()
	b := make([]byte, roomIDLen)
	for i := range b {
		b[i] = roomIDAlphabet[roomIDRand.Intn(len(roomIDAlphabet))]
	}
	return string(b)
}
