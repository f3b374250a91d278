package checkout

import (
	"encoding/json"
	"fmt"
)

// codLocationTag marks the serialized location payload embedded in order
// notes so the order collaborator can recognize it.
const codLocationTag = "COD_LOCATION"

// Coordinates is a device-reported geographic position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DeliveryLocation is where an order should be delivered. Coordinates and
// the manually typed address are not mutually exclusive; when both are
// present, coordinates take precedence for routing but the address is still
// transmitted as supplementary text.
type DeliveryLocation struct {
	Coords  *Coordinates `json:"coords,omitempty"`
	Address string       `json:"address,omitempty"`
	Note    string       `json:"note,omitempty"`
}

// IsUsable reports whether the location is sufficient to submit an order:
// either captured coordinates or a non-empty manual address.
func (l DeliveryLocation) IsUsable() bool {
	return l.Coords != nil || l.Address != ""
}

type codLocationPayload struct {
	Tag     string       `json:"tag"`
	Coords  *Coordinates `json:"coords,omitempty"`
	Note    string       `json:"note,omitempty"`
	Address string       `json:"address,omitempty"`
}

// OrderNotes serializes the location into the tagged JSON blob carried in
// the per-shop order's notes field.
func (l DeliveryLocation) OrderNotes() (string, error) {
	raw, err := json.Marshal(codLocationPayload{
		Tag:     codLocationTag,
		Coords:  l.Coords,
		Note:    l.Note,
		Address: l.Address,
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize delivery location: %w", err)
	}
	return string(raw), nil
}
