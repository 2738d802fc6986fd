// Package report exports the order book and admin statistics as a workbook.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"superapp-api/models"
	"superapp-api/store"
	"superapp-api/views"

	"github.com/xuri/excelize/v2"
)

const (
	SheetOrders  = "Orders"
	SheetSummary = "Summary"
)

var orderHeader = []interface{}{
	"ID", "Client", "Vendor", "Partner", "Item", "Type", "Status", "Total", "Created", "Updated",
}

// Build fills a new workbook from snap. The caller closes it.
func Build(snap store.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fill(f, snap); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func fill(f *excelize.File, snap store.Snapshot) error {
	if err := f.SetSheetName("Sheet1", SheetOrders); err != nil {
		return err
	}
	if err := writeOrders(f, snap.Orders); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	return writeSummary(f, snap)
}

// Write builds the workbook and streams it to w.
func Write(w io.Writer, snap store.Snapshot) error {
	f, err := Build(snap)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func writeOrders(f *excelize.File, orders []models.Order) error {
	if err := f.SetSheetRow(SheetOrders, "A1", &orderHeader); err != nil {
		return err
	}
	for i, o := range orders {
		row := []interface{}{
			o.ID, o.ClientName, o.VendorID, o.PartnerName, o.Item, string(o.Type), string(o.Status),
			o.TotalNum, o.CreatedAt.Format(time.DateTime), o.UpdatedAt.Format(time.DateTime),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetOrders, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, snap store.Snapshot) error {
	stats := views.Stats(snap.Orders, snap.Users)
	rows := [][]interface{}{
		{"Total revenue", stats.TotalRev},
		{"Orders", stats.OrderCount},
		{"Users", stats.UserCount},
		{"Most popular", stats.MostPopular},
		{},
		{"Status", "Count"},
	}

	summary := views.StatusSummary(snap.Orders)
	statuses := make([]string, 0, len(summary))
	for s := range summary {
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		rows = append(rows, []interface{}{s, summary[models.OrderStatus(s)]})
	}

	rows = append(rows, []interface{}{}, []interface{}{"Recommendations"})
	for _, r := range stats.Recs {
		rows = append(rows, []interface{}{r})
	}

	for i := range rows {
		if len(rows[i]) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSummary, cell, &rows[i]); err != nil {
			return fmt.Errorf("summary row %d: %w", i+1, err)
		}
	}
	return nil
}
