package model

import "time"

// PaymentMethod records how a player paid their league fee.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentGCash PaymentMethod = "gcash"
)

// ParsePaymentMethod validates a payment method string. The empty string
// (after trimming) means "unpaid" and is returned as-is.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case "", PaymentCash, PaymentGCash:
		return m, nil
	default:
		return "", ErrInvalidPayment
	}
}

// Snapshot is the full aggregate league state at a point in time: players,
// insertion order, team rosters, payments, standings, and the schedule.
// It is the unit of local-cache persistence and of remote reconciliation.
//
// Players and AddedSeq both hold stored (encoded) player names. Players is
// the authoritative membership list; AddedSeq preserves first-added order
// for display and survives remote re-fetches that return names sorted.
type Snapshot struct {
	Players  []string                  `json:"players"`
	AddedSeq []string                  `json:"added_seq"`
	Teams    map[TeamLetter][]string   `json:"teams"`
	Paid     map[string]PaymentMethod  `json:"paid"`
	Scores   map[TeamLetter]TeamRecord `json:"scores"`
	Games    []Game                    `json:"games"`
	SavedAt  time.Time                 `json:"saved_at"`
}

// NewSnapshot returns an empty snapshot with every team present and zeroed.
func NewSnapshot() *Snapshot {
	s := &Snapshot{
		Teams:  make(map[TeamLetter][]string),
		Paid:   make(map[string]PaymentMethod),
		Scores: make(map[TeamLetter]TeamRecord),
	}
	for _, t := range Teams() {
		s.Teams[t] = nil
		s.Scores[t] = TeamRecord{}
	}
	return s
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	cp := &Snapshot{
		Players:  append([]string(nil), s.Players...),
		AddedSeq: append([]string(nil), s.AddedSeq...),
		Teams:    make(map[TeamLetter][]string, len(s.Teams)),
		Paid:     make(map[string]PaymentMethod, len(s.Paid)),
		Scores:   make(map[TeamLetter]TeamRecord, len(s.Scores)),
		Games:    append([]Game(nil), s.Games...),
		SavedAt:  s.SavedAt,
	}
	for t, roster := range s.Teams {
		cp.Teams[t] = append([]string(nil), roster...)
	}
	for name, m := range s.Paid {
		cp.Paid[name] = m
	}
	for t, rec := range s.Scores {
		cp.Scores[t] = rec
	}
	return cp
}

// Normalize repairs a snapshot loaded from an untrusted source (the local
// cache): nil maps are allocated, missing teams are zero-filled, and
// AddedSeq is reconciled against the player list.
func (s *Snapshot) Normalize() {
	if s.Teams == nil {
		s.Teams = make(map[TeamLetter][]string)
	}
	if s.Paid == nil {
		s.Paid = make(map[string]PaymentMethod)
	}
	if s.Scores == nil {
		s.Scores = make(map[TeamLetter]TeamRecord)
	}
	for _, t := range Teams() {
		if _, ok := s.Teams[t]; !ok {
			s.Teams[t] = nil
		}
		if _, ok := s.Scores[t]; !ok {
			s.Scores[t] = TeamRecord{}
		}
	}
	s.AddedSeq = EnsureSeq(s.Players, s.AddedSeq)
}

// TeamOf returns the team whose roster contains the player, or "" if the
// player is unassigned.
func (s *Snapshot) TeamOf(name string) TeamLetter {
	for _, t := range Teams() {
		for _, n := range s.Teams[t] {
			if n == name {
				return t
			}
		}
	}
	return ""
}

// HasPlayer reports whether the stored name is registered.
func (s *Snapshot) HasPlayer(name string) bool {
	for _, n := range s.Players {
		if n == name {
			return true
		}
	}
	return false
}

// EnsureSeq reconciles an insertion-order sequence with the current player
// list: names no longer present are dropped, names missing from the
// sequence are appended in list order.
func EnsureSeq(names, seq []string) []string {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range seq {
		if present[n] && !seen[n] {
			out = append(out, n)
			seen[n] = true
		}
	}
	for _, n := range names {
		if !seen[n] {
			out = append(out, n)
			seen[n] = true
		}
	}
	return out
}
