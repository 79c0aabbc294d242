package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{RequestStatusPending, RequestStatusAccepted},
		{RequestStatusPending, RequestStatusCancelled},
		{RequestStatusAccepted, RequestStatusInProgress},
		{RequestStatusAccepted, RequestStatusCancelled},
		{RequestStatusInProgress, RequestStatusCompleted},
	}
	for _, pair := range allowed {
		assert.True(t, CanTransition(pair[0], pair[1]), "переход %s -> %s должен быть разрешён", pair[0], pair[1])
	}

	forbidden := [][2]string{
		{RequestStatusPending, RequestStatusInProgress},
		{RequestStatusPending, RequestStatusCompleted},
		{RequestStatusAccepted, RequestStatusCompleted},
		{RequestStatusInProgress, RequestStatusCancelled},
		{RequestStatusCompleted, RequestStatusPending},
		{RequestStatusCancelled, RequestStatusAccepted},
		{RequestStatusPending, RequestStatusPending},
		{"unknown", RequestStatusAccepted},
	}
	for _, pair := range forbidden {
		assert.False(t, CanTransition(pair[0], pair[1]), "переход %s -> %s должен быть запрещён", pair[0], pair[1])
	}
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus(RequestStatusCompleted))
	assert.True(t, IsTerminalStatus(RequestStatusCancelled))

	assert.False(t, IsTerminalStatus(RequestStatusPending))
	assert.False(t, IsTerminalStatus(RequestStatusAccepted))
	assert.False(t, IsTerminalStatus(RequestStatusInProgress))
}
