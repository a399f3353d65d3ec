package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

func newContract() *models.Contract {
	return &models.Contract{
		ID:           7,
		Status:       string(StatusWaitingSchedule),
		PackagePrice: 20_000_000,
	}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestApply_FullFlow(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	c := newContract()

	note, err := Apply(c, TransitionInput{To: StatusScheduled, ShootDate: date(2026, 2, 14), Author: "Lan"}, now)
	require.NoError(t, err)
	assert.Equal(t, "scheduled", c.Status)
	assert.Equal(t, date(2026, 2, 14), c.ShootDate)
	assert.NotNil(t, c.ScheduledAt)
	assert.Equal(t, uint(7), note.ContractID)
	assert.Equal(t, "waiting_schedule", note.FromStatus)
	assert.Equal(t, "scheduled", note.ToStatus)
	assert.Equal(t, "Chờ lên lịch → Đã lên lịch chụp. Ngày chụp: 14/02/2026", note.Content)

	_, err = Apply(c, TransitionInput{To: StatusRetouch, Note: "Đã chụp xong"}, now)
	require.NoError(t, err)
	assert.NotNil(t, c.RetouchAt)

	_, err = Apply(c, TransitionInput{To: StatusHandover, HandoverDate: date(2026, 3, 1)}, now)
	require.NoError(t, err)

	_, err = Apply(c, TransitionInput{To: StatusCompleted}, now)
	require.NoError(t, err)
	assert.NotNil(t, c.CompletedAt)
	assert.False(t, IsOpen(Status(c.Status)))
}

func TestApply_RequiredFields(t *testing.T) {
	now := time.Now()

	c := newContract()
	_, err := Apply(c, TransitionInput{To: StatusScheduled}, now)
	assert.True(t, httperr.IsBusiness(err, "missing_shoot_date"))
	assert.Equal(t, "waiting_schedule", c.Status)

	_, err = Apply(c, TransitionInput{To: StatusCancelled, Reason: "  "}, now)
	assert.True(t, httperr.IsBusiness(err, "missing_reason"))

	c.Status = string(StatusRetouch)
	_, err = Apply(c, TransitionInput{To: StatusHandover}, now)
	assert.True(t, httperr.IsBusiness(err, "missing_handover_date"))
}

func TestApply_InvalidTransition(t *testing.T) {
	c := newContract()

	_, err := Apply(c, TransitionInput{To: StatusCompleted}, time.Now())
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))

	c.Status = string(StatusHandover)
	_, err = Apply(c, TransitionInput{To: StatusCancelled, Reason: "x"}, time.Now())
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

func TestApply_CancelStoresReason(t *testing.T) {
	c := newContract()

	note, err := Apply(c, TransitionInput{To: StatusCancelled, Reason: " Khách đổi ý ", Note: "gọi lại sau"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Khách đổi ý", c.CancelReason)
	assert.Equal(t, "Chờ lên lịch → Đã hủy. Lý do: Khách đổi ý. gọi lại sau", note.Content)
}

func TestRequiredFields(t *testing.T) {
	assert.Equal(t, []string{"shoot_date"}, RequiredFields(StatusScheduled))
	assert.Equal(t, []string{"reason"}, RequiredFields(StatusCancelled))
	assert.Nil(t, RequiredFields(StatusRetouch))
}

func TestRecalculate(t *testing.T) {
	c := newContract()
	c.AdditionalServices = []models.ContractService{
		{UnitPrice: 1_500_000, Quantity: 2},
		{UnitPrice: 500_000},
	}
	c.Discount = 1_000_000

	require.NoError(t, Recalculate(c))
	assert.Equal(t, int64(22_500_000), c.TotalAmount)

	c.Discount = 30_000_000
	assert.True(t, httperr.IsBusiness(Recalculate(c), "invalid_discount"))
	assert.Equal(t, int64(22_500_000), c.TotalAmount)

	c.Discount = 0
	c.PaidAmount = 25_000_000
	c.AdditionalServices = nil
	assert.True(t, httperr.IsBusiness(Recalculate(c), "total_below_paid"))
}

func TestRegisterPayment(t *testing.T) {
	c := newContract()
	c.TotalAmount = 20_000_000

	require.NoError(t, RegisterPayment(c, 5_000_000))
	assert.Equal(t, int64(5_000_000), c.PaidAmount)
	assert.Equal(t, int64(15_000_000), c.Outstanding())

	assert.True(t, httperr.IsBusiness(RegisterPayment(c, 0), "invalid_amount"))
	assert.True(t, httperr.IsBusiness(RegisterPayment(c, 15_000_001), "overpayment"))

	require.NoError(t, RegisterPayment(c, 15_000_000))
	assert.Zero(t, c.Outstanding())

	c.Status = string(StatusCancelled)
	assert.True(t, httperr.IsBusiness(RegisterPayment(c, 1), "contract_closed"))
}
