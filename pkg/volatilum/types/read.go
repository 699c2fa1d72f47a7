package types

import "fmt"

// Slot is the ledger progression counter. It carries no meaning beyond ordering.
type Slot uint64

// SlotConsistentRead binds a set of account payloads to the single slot they were all observed at.
type SlotConsistentRead struct {
	Slot     Slot
	Accounts AccountBytes
}

// Covers returns a MissingAccount error for the first id in ids that is absent from the read.
func (r SlotConsistentRead) Covers(ids []string) error {
	for _, id := range ids {
		if !r.Accounts.Has(id) {
			return NewError(MissingAccount, fmt.Sprintf("missing account data for %s", id))
		}
	}
	return nil
}

// ClientConfig is the caller supplied observation policy.
type ClientConfig struct {
	// MinContextSlot, when set, rejects any observation made below this slot.
	MinContextSlot *Slot
}

func (c ClientConfig) WithMinContextSlot(s Slot) ClientConfig {
	c.MinContextSlot = &s
	return c
}

// Clone returns a copy that shares no pointers with c.
func (c ClientConfig) Clone() ClientConfig {
	if c.MinContextSlot == nil {
		return c
	}
	return ClientConfig{}.WithMinContextSlot(*c.MinContextSlot)
}

// CheckSlot fails with SlotInconsistency when slot is below the configured minimum.
func (c ClientConfig) CheckSlot(slot Slot) error {
	if c.MinContextSlot != nil && slot < *c.MinContextSlot {
		return NewError(SlotInconsistency, fmt.Sprintf("observed slot %d below minContextSlot %d", slot, *c.MinContextSlot))
	}
	return nil
}
