package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	assert.True(t, ValidSaleStatus(SalePending))
	assert.False(t, ValidSaleStatus("refunded"))

	assert.True(t, ValidSaleType(SaleMixed))
	assert.False(t, ValidSaleType(""))

	assert.True(t, ValidPaymentMethod(PayMobilePayment))
	assert.True(t, ValidPaymentMethod(PayBinance))
	assert.False(t, ValidPaymentMethod("check"))

	assert.True(t, ValidReservationStatus(ReservationCheckedIn))
	assert.False(t, ValidReservationStatus("held"))

	assert.True(t, ValidRoomStatus(RoomMaintenance))
	assert.False(t, ValidRoomStatus("dirty"))
}
