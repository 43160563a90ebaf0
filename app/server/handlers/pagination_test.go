package handlers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func u(v uint) *uint { return &v }

func TestParsePagination(t *testing.T) {
	a := &App{}

	tests := []struct {
		name      string
		page      *uint
		limit     *uint
		wantAll   bool
		wantPage  int
		wantLimit int
		wantErr   bool
	}{
		{name: "defaults", wantPage: 0, wantLimit: 100},
		{name: "show all", page: u(0), limit: u(0), wantAll: true, wantPage: -1, wantLimit: -1},
		{name: "page 0 is first page", page: u(0), limit: u(10), wantPage: 0, wantLimit: 10},
		{name: "third page", page: u(3), limit: u(20), wantPage: 2, wantLimit: 20},
		{name: "zero limit", page: u(2), limit: u(0), wantPage: 1, wantLimit: 100},
		{name: "limit capped", page: u(1), limit: u(math.MaxUint), wantPage: 0, wantLimit: 1000},
		{name: "last page that fits", page: u(uint(math.MaxInt)/1000 + 1), limit: u(1000), wantPage: math.MaxInt / 1000, wantLimit: 1000},
		{name: "offset overflows", page: u(uint(math.MaxInt)/1000 + 2), limit: u(1000), wantErr: true},
		{name: "huge page", page: u(uint(math.MaxInt) + 1), limit: u(2), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			all, page, limit, err := a.parsePagination(tt.page, tt.limit)
			if tt.wantErr {
				assert.ErrorIs(t, err, errPageOutOfRange)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantAll, all)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestCalcMaxPage(t *testing.T) {
	a := &App{}

	assert.EqualValues(t, 1, a.calcMaxPage(42, true, -1))
	assert.EqualValues(t, 0, a.calcMaxPage(0, false, 10))
	assert.EqualValues(t, 1, a.calcMaxPage(10, false, 10))
	assert.EqualValues(t, 2, a.calcMaxPage(11, false, 10))
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, uniqueIDs([]uint{3, 1, 3, 2, 1}))
	assert.Nil(t, uniqueIDs(nil))
}
