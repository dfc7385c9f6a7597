package models

import "fmt"

// PowerStoneSlots is the number of display positions on the power stones
// section of the site. Slots are numbered 1..PowerStoneSlots and each slot
// holds at most one stone.
const PowerStoneSlots = 6

// PowerStone represents one of the six fixed gallery positions. Slot is the
// natural key; ID is derived from the slot when the client does not send one.
type PowerStone struct {
	ID    string `json:"id"`
	Slot  int    `json:"slot"`
	Src   string `json:"src"`
	Title string `json:"title,omitempty"`
}

// IsPowerStoneSlot reports whether n is a valid slot number.
func IsPowerStoneSlot(n int) bool {
	return n >= 1 && n <= PowerStoneSlots
}

// PowerStoneID returns the derived id for a slot, used when a stone is
// created without an explicit id.
func PowerStoneID(slot int) string {
	return fmt.Sprintf("stone-%d", slot)
}
