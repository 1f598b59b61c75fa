// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// ReservationConfirmedEvent is published after a reservation create commits.
// It carries enough for downstream consumers (notifications, analytics) to
// act without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	ClientID      uint64 `json:"client_id"`
	RoomID        uint64 `json:"room_id"`
	StaffID       uint64 `json:"staff_id"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	NightlyUSD    string `json:"nightly_price_usd"`
	NightlyBS     string `json:"nightly_price_bs"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// RateRegisteredEvent is published after a new exchange rate commits.
// Operators watch this queue to decide when to trigger the bulk reprice.
type RateRegisteredEvent struct {
	RateID        uint64 `json:"rate_id"`
	EffectiveDate string `json:"effective_date"`
	RateBsPerUSD  string `json:"rate_bs_per_usd"`
	RegisteredAt  string `json:"registered_at"`
}
