package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studio-manager/internal/logger"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/testutil"
)

func TestDispatcher_WritesEvents(t *testing.T) {
	db := testutil.NewDB(t)
	d := NewDispatcher(New(db), logger.Discard())

	id := uint(9)
	d.Dispatch(Event{StudioID: 1, Action: "contract_transition", Entity: "contract", EntityID: &id,
		Metadata: map[string]string{"to": "scheduled"}})
	d.Dispatch(Event{StudioID: 1, Action: "payment_recorded", Entity: "contract", EntityID: &id})
	d.Close()

	var rows []models.AuditLog
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "contract_transition", rows[0].Action)
	assert.JSONEq(t, `{"to":"scheduled"}`, rows[0].Metadata)
	assert.Empty(t, rows[1].Metadata)
}

func TestDispatcher_NilSafe(t *testing.T) {
	var d *Dispatcher

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "x"})
		d.Close()
	})
}

func TestDispatcher_DispatchAfterClose(t *testing.T) {
	db := testutil.NewDB(t)
	d := NewDispatcher(New(db), logger.Discard())

	d.Dispatch(Event{StudioID: 1, Action: "customer_created", Entity: "customer"})
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{StudioID: 1, Action: "customer_updated", Entity: "customer"})
		d.Close()
	})

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
