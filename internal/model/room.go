package model

import "time"

// Room represents a row in the `rooms` table.  Rooms are an open
// set: physical rooms like "A101" coexist with virtual ones like
// "Online".  Sessions reference rooms by name so that the slot
// uniqueness key (room, date, shift) reads naturally in the DB.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique room name.
//  Capacity  – seat capacity (zero for virtual rooms).
//  IsActive  – whether the room is offered for new sessions.
//  CreatedAt – timestamp of creation.
type Room struct {
	ID        uint64    // rooms.id
	Name      string    // rooms.name
	Capacity  int       // rooms.capacity
	IsActive  bool      // rooms.is_active
	CreatedAt time.Time // rooms.created_at
}
