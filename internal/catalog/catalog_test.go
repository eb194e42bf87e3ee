package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velour/internal/model"
)

func testCatalog() *Resolver {
	return NewResolver([]model.Service{
		{ID: 1, Name: "Haircut", DurationMinutes: 60, IsActive: true},
		{ID: 2, Name: "Coloring full", DurationMinutes: 120, IsActive: true},
		{ID: 3, Name: "Manicure", DurationMinutes: 0, IsActive: true},
	})
}

func TestDurationFor(t *testing.T) {
	r := testCatalog()

	tests := []struct {
		name        string
		serviceID   int64
		serviceName string
		want        int
	}{
		{"by id", 2, "", 120},
		{"id wins over name", 1, "Coloring full", 60},
		{"by exact name", 0, "haircut", 60},
		{"by substring", 0, "Coloring", 120},
		{"unknown falls back", 0, "Massage", DefaultDurationMinutes},
		{"zero stored duration falls back", 3, "Manicure", DefaultDurationMinutes},
		{"empty falls back", 0, "", DefaultDurationMinutes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.DurationFor(tt.serviceID, tt.serviceName))
		})
	}
}

func TestFindByName(t *testing.T) {
	r := testCatalog()

	s, ok := r.FindByName("  HAIRCUT ")
	require.True(t, ok)
	assert.Equal(t, int64(1), s.ID)

	// Booking rows sometimes carry a longer label than the catalog name.
	s, ok = r.FindByName("Haircut + styling")
	require.True(t, ok)
	assert.Equal(t, int64(1), s.ID)

	_, ok = r.FindByName("")
	assert.False(t, ok)
}
