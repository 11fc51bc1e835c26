package room

import "time"

// Directory maps room ID to Room, preserving insertion order so broadcast
// snapshots list rooms stably.
type Directory struct {
	rooms map[string]*Room
	order []string
}

func NewDirectory() *Directory {
	return &Directory{rooms: map[string]*Room{}}
}

// Create allocates a room with a fresh ID and the given first seat. An ID
// collision is retried, never overwritten.
func (d *Directory) Create(stake int64, first Seat) *Room {
	id := NewRoomID()
	for d.rooms[id] != nil {
		id = NewRoomID()
	}
	r := &Room{
		ID:        id,
		Stake:     stake,
		Seats:     []Seat{first},
		Status:    StatusWaiting,
		CreatedAt: time.Now(),
	}
	d.rooms[id] = r
	d.order = append(d.order, id)
	return r
}

func (d *Directory) Get(id string) (*Room, bool) {
	r, ok := d.rooms[id]
	return r, ok
}

func (d *Directory) Remove(id string) {
	if _, ok := d.rooms[id]; !ok {
		return
	}
	delete(d.rooms, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// List returns rooms in insertion order.
func (d *Directory) List() []*Room {
	out := make([]*Room, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.rooms[id])
	}
	return out
}

func (d *Directory) Len() int {
	return len(d.rooms)
}
