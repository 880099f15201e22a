package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartpark/models"
)

func TestActiveClients_DedupesAndSorts(t *testing.T) {
	now := time.Now()
	details := map[string]models.ReservationDetail{
		"Place1": {SpotKey: "Place1", ClientName: "Jean Dupont", ClientEmail: "jean@example.com", EndTime: now},
		"Place2": {SpotKey: "Place2", ClientName: "Jean Dupont", ClientEmail: "jean@example.com", EndTime: now},
		"Place3": {SpotKey: "Place3", ClientName: "Amine B", ClientEmail: "amine@example.com", EndTime: now},
		"Place4": {SpotKey: "Place4", EndTime: now},
	}

	clients := activeClients(details)

	require.Len(t, clients, 2)
	assert.Equal(t, "amine@example.com", clients[0].Email)
	assert.Equal(t, "jean@example.com", clients[1].Email)
	assert.Equal(t, "Jean Dupont", clients[1].FullName)
}

func TestActiveClients_Empty(t *testing.T) {
	clients := activeClients(nil)
	assert.Empty(t, clients)
}
