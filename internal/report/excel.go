package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"velour/internal/model"
	"velour/internal/schedule"
)

// SlotSource computes slots for every staff member on a date.
type SlotSource interface {
	AllStaffDaySlots(ctx context.Context, date time.Time, durationMin int) (map[int64][]schedule.Slot, error)
}

// StaffSource lists the staff to report on.
type StaffSource interface {
	ListBookableStaff(ctx context.Context) ([]model.Staff, error)
}

// Exporter renders month availability reports as xlsx workbooks, one
// sheet per staff member.
type Exporter struct {
	slots  SlotSource
	staff  StaffSource
	logger *zerolog.Logger
}

// NewExporter creates a report exporter.
func NewExporter(slots SlotSource, staff StaffSource, logger *zerolog.Logger) *Exporter {
	return &Exporter{slots: slots, staff: staff, logger: logger}
}

var reportColumns = []string{"Date", "Weekday", "Free slots", "Optimal slots", "First slot", "Last slot"}

// WriteMonthReport writes the availability workbook for a month to w.
func (e *Exporter) WriteMonthReport(ctx context.Context, w io.Writer, year int, month time.Month, durationMin int) error {
	staff, err := e.staff.ListBookableStaff(ctx)
	if err != nil {
		return fmt.Errorf("list staff: %w", err)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	// Collect slots day by day; each day is one engine call covering
	// all staff.
	days := make([]time.Time, 0, 31)
	byDay := make(map[string]map[int64][]schedule.Slot)
	for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
		slots, err := e.slots.AllStaffDaySlots(ctx, day, durationMin)
		if err != nil {
			return fmt.Errorf("slots for %s: %w", day.Format("2006-01-02"), err)
		}
		days = append(days, day)
		byDay[day.Format("2006-01-02")] = slots
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Warn().Err(err).Msg("close report workbook")
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, st := range staff {
		sheet := sheetName(st.Name)
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("create sheet %s: %w", sheet, err)
			}
		}

		for col, title := range reportColumns {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, title); err != nil {
				return err
			}
		}
		endCell, _ := excelize.CoordinatesToCellName(len(reportColumns), 1)
		_ = f.SetCellStyle(sheet, "A1", endCell, headerStyle)

		for rowIdx, day := range days {
			dateStr := day.Format("2006-01-02")
			slots := byDay[dateStr][st.ID]

			optimal := 0
			for _, slot := range slots {
				if slot.IsOptimal {
					optimal++
				}
			}
			firstSlot, lastSlot := "", ""
			if len(slots) > 0 {
				firstSlot = slots[0].Start.Format("15:04")
				lastSlot = slots[len(slots)-1].Start.Format("15:04")
			}

			row := []any{dateStr, day.Weekday().String(), len(slots), optimal, firstSlot, lastSlot}
			for col, val := range row {
				cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sheet, cell, val); err != nil {
					return err
				}
			}
		}
	}

	return f.Write(w)
}

// sheetName truncates to the 31-char Excel sheet name limit.
func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
