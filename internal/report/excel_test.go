package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"velour/internal/model"
	"velour/internal/schedule"
)

type stubSlots struct {
	byDate map[string]map[int64][]schedule.Slot
}

func (s *stubSlots) AllStaffDaySlots(_ context.Context, date time.Time, _ int) (map[int64][]schedule.Slot, error) {
	return s.byDate[date.Format("2006-01-02")], nil
}

type stubStaff struct{ staff []model.Staff }

func (s *stubStaff) ListBookableStaff(_ context.Context) ([]model.Staff, error) {
	return s.staff, nil
}

func slotAt(t *testing.T, clock string, optimal bool) schedule.Slot {
	t.Helper()
	ts, err := time.Parse("15:04", clock)
	require.NoError(t, err)
	return schedule.Slot{Start: ts, IsOptimal: optimal}
}

func TestWriteMonthReport(t *testing.T) {
	slots := &stubSlots{byDate: map[string]map[int64][]schedule.Slot{
		"2025-06-10": {
			1: {slotAt(t, "10:30", true), slotAt(t, "11:00", false), slotAt(t, "20:00", true)},
		},
	}}
	staff := &stubStaff{staff: []model.Staff{
		{ID: 1, Name: "Anna", IsActive: true, IsBookable: true},
		{ID: 2, Name: "Boris", IsActive: true, IsBookable: true},
	}}
	logger := zerolog.Nop()
	exporter := NewExporter(slots, staff, &logger)

	var buf bytes.Buffer
	require.NoError(t, exporter.WriteMonthReport(context.Background(), &buf, 2025, time.June, 60))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Anna", "Boris"}, f.GetSheetList())

	header, err := f.GetCellValue("Anna", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	// June 10 is row 11 (header + 9 preceding days).
	free, err := f.GetCellValue("Anna", "C11")
	require.NoError(t, err)
	assert.Equal(t, "3", free)
	optimal, err := f.GetCellValue("Anna", "D11")
	require.NoError(t, err)
	assert.Equal(t, "2", optimal)
	first, err := f.GetCellValue("Anna", "E11")
	require.NoError(t, err)
	assert.Equal(t, "10:30", first)
	last, err := f.GetCellValue("Anna", "F11")
	require.NoError(t, err)
	assert.Equal(t, "20:00", last)

	// Boris has no slots anywhere; the row still renders with zeros.
	free, err = f.GetCellValue("Boris", "C11")
	require.NoError(t, err)
	assert.Equal(t, "0", free)
}

func TestWriteMonthReportLongSheetName(t *testing.T) {
	staff := &stubStaff{staff: []model.Staff{
		{ID: 1, Name: "An extremely long staff member display name", IsActive: true, IsBookable: true},
	}}
	logger := zerolog.Nop()
	exporter := NewExporter(&stubSlots{}, staff, &logger)

	var buf bytes.Buffer
	require.NoError(t, exporter.WriteMonthReport(context.Background(), &buf, 2025, time.June, 60))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	assert.Len(t, sheets[0], 31)
}
