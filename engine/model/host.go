package model

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// Host is the table of models loaded by the host application, addressed by slot index.
// It is the reference implementation of the channel source that effect bindings read from:
// all lookups are by slot, and every not-found case is reported as -1 rather than an error.
type Host struct {
	mu     sync.RWMutex
	models []Model
}

// NewHost creates an empty Host.
//
// Returns:
//   - *Host: the newly created host
func NewHost() *Host {
	return &Host{}
}

// Add places a model in the first free slot.
//
// Parameters:
//   - m: the model to add
//
// Returns:
//   - int: the slot index of the model
func (h *Host) Add(m Model) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, existing := range h.models {
		if existing == nil {
			h.models[i] = m
			return i
		}
	}
	h.models = append(h.models, m)
	return len(h.models) - 1
}

// Remove frees a slot. The slot may be reused by a later Add.
//
// Parameters:
//   - slot: the slot index to free
func (h *Host) Remove(slot int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if slot >= 0 && slot < len(h.models) {
		h.models[slot] = nil
	}
}

// Model returns the model in a slot, or nil if the slot is empty.
//
// Parameters:
//   - slot: the slot index
//
// Returns:
//   - Model: the model, or nil
func (h *Host) Model(slot int) Model {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if slot < 0 || slot >= len(h.models) {
		return nil
	}
	return h.models[slot]
}

// Slot returns the slot of the first model with the given name, or -1.
//
// Parameters:
//   - name: the model name
//
// Returns:
//   - int: the slot index, or -1 if no model has that name
func (h *Host) Slot(name string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for i, m := range h.models {
		if m != nil && m.Name() == name {
			return i
		}
	}
	return -1
}

// MorphIndex resolves a morph name on the model in slot.
func (h *Host) MorphIndex(slot int, name string) int {
	if m := h.Model(slot); m != nil {
		return m.MorphIndex(name)
	}
	return -1
}

// BoneIndex resolves a bone name on the model in slot.
func (h *Host) BoneIndex(slot int, name string) int {
	if m := h.Model(slot); m != nil {
		return m.BoneIndex(name)
	}
	return -1
}

// MorphWeight reads a morph weight on the model in slot, or 0 if the slot is empty.
func (h *Host) MorphWeight(slot, index int) float32 {
	if m := h.Model(slot); m != nil {
		return m.MorphWeight(index)
	}
	return 0
}

// BoneMatrix reads a bone world matrix on the model in slot, or identity if the slot is empty.
func (h *Host) BoneMatrix(slot, index int) [16]float32 {
	if m := h.Model(slot); m != nil {
		return m.BoneWorldMatrix(index)
	}
	return common.IdentityMatrix()
}
