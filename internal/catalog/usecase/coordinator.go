package usecase

import "github.com/nexus-marketplace/catalog-service/internal/catalog/domain"

// ViewCoordinator tracks which overlays are open. Overlays of different kinds
// may be open together; opening a kind that is already open replaces its reference.
type ViewCoordinator struct {
	states map[domain.OverlayKind]domain.OverlayState
}

// NewViewCoordinator returns a coordinator with every overlay closed.
func NewViewCoordinator() *ViewCoordinator {
	return &ViewCoordinator{states: make(map[domain.OverlayKind]domain.OverlayState, len(domain.OverlayKinds))}
}

// Open opens kind on ref. Unknown kinds are ignored.
func (v *ViewCoordinator) Open(kind domain.OverlayKind, ref string) {
	if !kind.IsValid() {
		return
	}
	v.states[kind] = domain.OverlayState{Open: true, Ref: ref}
}

// Close closes kind. Closing a closed overlay does nothing.
func (v *ViewCoordinator) Close(kind domain.OverlayKind) {
	delete(v.states, kind)
}

// Switch closes from and then opens to on ref.
func (v *ViewCoordinator) Switch(from, to domain.OverlayKind, ref string) {
	v.Close(from)
	v.Open(to, ref)
}

// CloseAll closes every overlay.
func (v *ViewCoordinator) CloseAll() {
	for k := range v.states {
		delete(v.states, k)
	}
}

// State returns the state of kind.
func (v *ViewCoordinator) State(kind domain.OverlayKind) domain.OverlayState {
	return v.states[kind]
}

// IsOpen reports whether kind is open.
func (v *ViewCoordinator) IsOpen(kind domain.OverlayKind) bool {
	return v.states[kind].Open
}

// Snapshot returns the state of every overlay kind.
func (v *ViewCoordinator) Snapshot() map[domain.OverlayKind]domain.OverlayState {
	out := make(map[domain.OverlayKind]domain.OverlayState, len(domain.OverlayKinds))
	for _, k := range domain.OverlayKinds {
		out[k] = v.states[k]
	}
	return out
}
