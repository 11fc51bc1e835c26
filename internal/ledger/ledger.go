// Package ledger holds each connected participant's balance and current
// room assignment. Balances are an in-memory accounting of escrowed stakes
// and payouts; nothing survives a process restart.
//
// The ledger is not safe for concurrent use on its own. The match
// coordinator serializes every mutation behind its lock, which is the
// single-writer discipline the rest of the server relies on.
package ledger

import "errors"

var (
	ErrNotFound          = errors.New("participant_unknown")
	ErrInsufficientFunds = errors.New("insufficient_funds")
)

type Participant struct {
	ID      string
	Name    string
	Balance int64
	RoomID  string
}

type Ledger struct {
	participants map[string]*Participant
}

func New() *Ledger {
	return &Ledger{participants: map[string]*Participant{}}
}

func (l *Ledger) Register(id, name string, startingBalance int64) *Participant {
	p := &Participant{ID: id, Name: name, Balance: startingBalance}
	l.participants[id] = p
	return p
}

func (l *Ledger) Get(id string) (*Participant, bool) {
	p, ok := l.participants[id]
	return p, ok
}

// Debit fails without mutating when the balance cannot cover the amount.
func (l *Ledger) Debit(id string, amount int64) error {
	p, ok := l.participants[id]
	if !ok {
		return ErrNotFound
	}
	if p.Balance < amount {
		return ErrInsufficientFunds
	}
	p.Balance -= amount
	return nil
}

// Credit returns ErrNotFound for unknown participants; settlement treats
// that as a silent no-credit rather than a fault.
func (l *Ledger) Credit(id string, amount int64) error {
	p, ok := l.participants[id]
	if !ok {
		return ErrNotFound
	}
	p.Balance += amount
	return nil
}

func (l *Ledger) AssignRoom(id, roomID string) error {
	p, ok := l.participants[id]
	if !ok {
		return ErrNotFound
	}
	p.RoomID = roomID
	return nil
}

func (l *Ledger) Remove(id string) {
	delete(l.participants, id)
}
