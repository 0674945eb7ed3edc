package domain

// PoolKind distinguishes the two rental pools. Station pools hold shared
// vehicles parked at fixed campus stations; event pools hold time-boxed
// rentals attached to campus events. Both share the same document shape.
type PoolKind string

const (
	PoolKindStation PoolKind = "station"
	PoolKindEvent   PoolKind = "event"
)

// InventoryItem is one rental pool document: a station (or event) with a
// count of identical rentable units. The document key doubles as the
// display name.
type InventoryItem struct {
	ID           string `json:"id" firestore:"-"`
	Location     string `json:"location" firestore:"location"`
	Availability int64  `json:"availability" firestore:"availability"`
	VehicleKind  string `json:"vehicleKind,omitempty" firestore:"vehicleKind,omitempty"`
}

// Station holds the geographic position of a rental station, used to
// geofence self-service drop-offs. Positions come from configuration, not
// from the inventory documents.
type Station struct {
	Name      string  `json:"name" yaml:"name"`
	Latitude  float64 `json:"lat" yaml:"lat"`
	Longitude float64 `json:"lon" yaml:"lon"`
}
