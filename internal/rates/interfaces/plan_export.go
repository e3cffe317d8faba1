package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	rates "tariffscope/internal/rates/domain"
	"tariffscope/internal/rates/pricing"
)

// BuildComparisonXLSX renders one row per plan with its cost at every
// checkpoint, for side-by-side comparison.
func BuildComparisonXLSX(plans []rates.PlanRecord, checkpoints []int) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "plans"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Plan", "Provider", "Zip", "Kind", "Renewable %", "Tags"}
	for _, usage := range checkpoints {
		headers = append(headers, fmt.Sprintf("Total @ %d kWh", usage))
	}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(sheet, cell, header)
	}

	for i, plan := range plans {
		row := i + 2
		values := []any{plan.Name, plan.Provider, plan.ZipCode, plan.RateModel.PlanKind, renewableCell(plan), tagsCell(plan)}
		for _, usage := range checkpoints {
			if breakdown, ok := plan.Costs[pricing.CheckpointLabel(usage)]; ok {
				values = append(values, breakdown.Total)
			} else {
				values = append(values, "")
			}
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildCostSheetPDF renders a per-plan cost sheet: header facts plus one
// breakdown table per checkpoint.
func BuildCostSheetPDF(plan *rates.PlanRecord, checkpoints []int) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Plan Cost Sheet")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Plan: %s", plan.Name))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Provider: %s", plan.Provider))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Zip: %s", plan.ZipCode))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Kind: %s", plan.RateModel.PlanKind))
	pdf.Ln(5)
	if plan.RateModel.RenewablePercent != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Renewable: %d%%", *plan.RateModel.RenewablePercent))
		pdf.Ln(5)
	}
	if plan.RateModel.TerminationFee != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Early termination fee: $%.2f", *plan.RateModel.TerminationFee))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	for _, usage := range checkpoints {
		breakdown, ok := plan.Costs[pricing.CheckpointLabel(usage)]
		if !ok {
			continue
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, fmt.Sprintf("At %d kWh / month", usage))
		pdf.Ln(7)

		pdf.CellFormat(50, 6, "Tier", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "kWh", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "Rate", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "Cost", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, tier := range breakdown.TierBreakdown {
			label := tier.Label
			if tier.Default {
				label += " (default rate)"
			}
			pdf.CellFormat(50, 6, label, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d", tier.KWh), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.4f", tier.Rate), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", tier.Cost), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}

		pdf.Cell(0, 6, fmt.Sprintf("Base %.2f  Energy %.2f  Delivery %.2f  Taxes %.2f  Total %.2f",
			breakdown.BaseCharge, breakdown.EnergyCharge, breakdown.DeliveryCharge, breakdown.TaxesAndFees, breakdown.Total))
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renewableCell(plan rates.PlanRecord) any {
	if plan.RateModel.RenewablePercent == nil {
		return ""
	}
	return *plan.RateModel.RenewablePercent
}

func tagsCell(plan rates.PlanRecord) string {
	out := ""
	for i, tag := range plan.Classifications {
		if i > 0 {
			out += ","
		}
		out += tag
	}
	return out
}
