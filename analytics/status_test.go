package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatusCanonicalPassthrough(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted, StatusExpired} {
		assert.Equal(t, s, NormalizeStatus(s))
	}
}

func TestNormalizeStatusLegacyFrench(t *testing.T) {
	cases := map[string]string{
		"Annulée":                StatusCancelled,
		"annulé par le client":   StatusCancelled,
		"Refusée par le loueur":  StatusRejected,
		"Confirmée":              StatusConfirmed,
		"validée":                StatusConfirmed,
		"acceptée":               StatusConfirmed,
		"Terminée - completed":   StatusCompleted,
		"expirée automatiquement": StatusExpired,
		"en attente":             StatusPending,
		"":                       StatusPending,
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeStatus(input), "input %q", input)
	}
}

func TestNormalizeStatusCancellationWinsOverConfirmation(t *testing.T) {
	// Strings carrying both families must resolve to the cancellation side.
	for _, s := range []string{
		"annulée après confirmation",
		"confirmed then cancelled",
		"Réservation confirmée puis annulée",
	} {
		got := NormalizeStatus(s)
		assert.True(t, IsCancelled(got), "input %q resolved to %q", s, got)
	}
}

func TestIsConfirmedAndIsCancelled(t *testing.T) {
	assert.True(t, IsConfirmed(StatusConfirmed))
	assert.True(t, IsConfirmed(StatusCompleted))
	assert.False(t, IsConfirmed(StatusPending))

	assert.True(t, IsCancelled(StatusCancelled))
	assert.True(t, IsCancelled(StatusRejected))
	assert.True(t, IsCancelled(StatusExpired))
	assert.False(t, IsCancelled(StatusConfirmed))
}

func TestIsCanonicalStatus(t *testing.T) {
	assert.True(t, IsCanonicalStatus(StatusConfirmed))
	assert.False(t, IsCanonicalStatus("Confirmée"))
	assert.False(t, IsCanonicalStatus(""))
}
