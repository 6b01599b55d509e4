package request

import (
	"testing"

	"mess-review/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestRateOutletRequest_AnonymousDefault(t *testing.T) {
	no := false
	yes := true

	assert.True(t, RateOutletRequest{}.Anonymous())
	assert.True(t, RateOutletRequest{IsAnonymous: &yes}.Anonymous())
	assert.False(t, RateOutletRequest{IsAnonymous: &no}.Anonymous())
	assert.True(t, RateFoodItemRequest{}.Anonymous())
	assert.False(t, RateFoodItemRequest{IsAnonymous: &no}.Anonymous())
}

func TestRateOutletRequest_Validation(t *testing.T) {
	valid := RateOutletRequest{OutletID: "6f1c5a57-7c89-4d55-a2a4-cf2bd1c0e1c1", Stars: 5}
	assert.Nil(t, utils.ValidateStruct(valid))

	for _, stars := range []int{0, 6, -1} {
		bad := valid
		bad.Stars = stars
		errs := utils.ValidateStruct(bad)
		assert.Contains(t, errs, "Stars")
	}

	bad := valid
	bad.OutletID = "not-a-uuid"
	assert.Contains(t, utils.ValidateStruct(bad), "OutletID")
}

func TestPaginatedRequest(t *testing.T) {
	p := PaginatedRequest{Page: 3, PerPage: 20}
	assert.Equal(t, 20, p.Limit())
	assert.Equal(t, 40, p.Offset())

	p = PaginatedRequest{Page: 0, PerPage: 500}
	assert.Equal(t, 100, p.Limit())
	assert.Equal(t, 0, p.Offset())
}
