package analytics

import "strings"

// Canonical reservation statuses. New writes are validated against this set
// at the API boundary; free-text statuses from the historical import (mostly
// French) are mapped once through NormalizeStatus instead of being re-scanned
// by every consumer.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusExpired   = "expired"
)

var canonicalStatuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusRejected:  true,
	StatusCancelled: true,
	StatusCompleted: true,
	StatusExpired:   true,
}

// Keyword sets for legacy free-text statuses. Cancellation is checked before
// confirmation so a string carrying both families ("annulée après
// confirmation") resolves deterministically.
var (
	cancelKeywords   = []string{"annul", "cancel", "refus", "reject"}
	completeKeywords = []string{"complet", "termin", "finish"}
	confirmKeywords  = []string{"confirm", "valid", "accep", "approv"}
	expireKeywords   = []string{"expir"}
)

// IsCanonicalStatus reports whether s is one of the canonical status values.
func IsCanonicalStatus(s string) bool {
	return canonicalStatuses[s]
}

// NormalizeStatus maps a raw status string to a canonical one. Canonical input
// passes through unchanged; anything unmatched maps to pending.
func NormalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if canonicalStatuses[s] {
		return s
	}
	if containsAny(s, cancelKeywords) {
		if containsAny(s, []string{"refus", "reject"}) {
			return StatusRejected
		}
		return StatusCancelled
	}
	if containsAny(s, expireKeywords) {
		return StatusExpired
	}
	if containsAny(s, completeKeywords) {
		return StatusCompleted
	}
	if containsAny(s, confirmKeywords) {
		return StatusConfirmed
	}
	return StatusPending
}

// IsCancelled reports whether a status counts as a lost booking.
func IsCancelled(status string) bool {
	s := NormalizeStatus(status)
	return s == StatusCancelled || s == StatusRejected || s == StatusExpired
}

// IsConfirmed reports whether a status counts toward confirmed bookings:
// not cancelled, and carrying a confirmation meaning. Completed rentals were
// necessarily confirmed first.
func IsConfirmed(status string) bool {
	s := NormalizeStatus(status)
	return s == StatusConfirmed || s == StatusCompleted
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
