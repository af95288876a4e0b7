package main

import (
	"io"
	"strconv"

	"mfgorders/internal/core/application/usecases/queries"
	"mfgorders/internal/core/domain/services"

	"github.com/olekukonko/tablewriter"
)

func renderTotals(w io.Writer, totals services.OrderTotals) error {
	table := tablewriter.NewWriter(w)
	table.Header("Product", "Qty", "Unit price", "Sample fee", "Shipping", "Total")
	for _, p := range totals.Products {
		if err := table.Append([]string{
			p.ProductID.String(),
			strconv.Itoa(p.Quantity),
			p.UnitPrice.StringFixed(2),
			p.SampleFee.StringFixed(2),
			p.ShippingPrice.StringFixed(2),
			p.Total.StringFixed(2),
		}); err != nil {
			return err
		}
	}
	table.Footer("", "", "", "", "Order total", totals.Total.StringFixed(2))
	return table.Render()
}

func renderETA(w io.Writer, eta queries.ETAResponse) error {
	date := "-"
	if eta.Date != nil {
		date = eta.Date.String()
	}
	table := tablewriter.NewWriter(w)
	table.Header("Product", "Delivery", "Estimate", "Shipping unset")
	if err := table.Append([]string{
		eta.ProductID.String(),
		date,
		strconv.FormatBool(eta.IsEstimate),
		strconv.FormatBool(eta.ShippingMethodUnset),
	}); err != nil {
		return err
	}
	return table.Render()
}

func renderMargins(w io.Writer, cfg services.MarginConfig, stored bool) error {
	table := tablewriter.NewWriter(w)
	table.Header("Margin", "Percent")
	rows := [][]string{
		{"product", cfg.ProductMarginPct.String()},
		{"shipping", cfg.ShippingMarginPct.String()},
	}
	if !stored {
		rows = append(rows, []string{"source", "defaults"})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
