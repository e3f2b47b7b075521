package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// BuildPDF renders the report as a PDF document.
func BuildPDF(r *Report, siteName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "PV Performance Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	if siteName != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Site: %s", siteName))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", r.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Energy (kWh): %.2f", r.Summary.TotalKWh))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average PR: %.4f", r.Summary.AvgPR))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average Specific Yield (kWh/kWp/day): %.4f", r.Summary.AvgSpecificYieldPerDay))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(30, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "POA (kWh/m2)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "E_AC (kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Spec. Yield", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "PR", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, d := range r.Daily {
		pdf.CellFormat(30, 6, d.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.3f", d.POAKWhPerM2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.1f", d.EACKWh), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.4f", d.SpecificYieldPerKWp), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.4f", d.PR), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Loss Diagram (theoretical %.1f kWh, actual %.1f kWh)", r.LossDiagram.TheoreticalKWh, r.LossDiagram.ActualKWh))
	pdf.Ln(7)
	pdf.CellFormat(60, 6, "Loss", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Pct", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Delta (kWh)", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, item := range r.LossDiagram.Items {
		pdf.CellFormat(60, 6, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f%%", item.LossPct), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%.1f", item.DeltaKWh), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildXLSX renders the report as a workbook with daily and loss sheets.
func BuildXLSX(r *Report, siteName string) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	dailySheet := "daily"
	lossSheet := "losses"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(dailySheet); err != nil {
		return nil, fmt.Errorf("creating daily sheet: %w", err)
	}
	if _, err := f.NewSheet(lossSheet); err != nil {
		return nil, fmt.Errorf("creating loss sheet: %w", err)
	}

	_ = f.SetCellValue(summarySheet, "A1", "PV Performance Report")
	_ = f.SetCellValue(summarySheet, "A3", "Site")
	_ = f.SetCellValue(summarySheet, "B3", siteName)
	_ = f.SetCellValue(summarySheet, "A4", "Generated")
	_ = f.SetCellValue(summarySheet, "B4", r.GeneratedAt.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A5", "Total Energy (kWh)")
	_ = f.SetCellValue(summarySheet, "B5", r.Summary.TotalKWh)
	_ = f.SetCellValue(summarySheet, "A6", "Average PR")
	_ = f.SetCellValue(summarySheet, "B6", r.Summary.AvgPR)
	_ = f.SetCellValue(summarySheet, "A7", "Average Specific Yield (kWh/kWp/day)")
	_ = f.SetCellValue(summarySheet, "B7", r.Summary.AvgSpecificYieldPerDay)

	_ = f.SetCellValue(dailySheet, "A1", "Date")
	_ = f.SetCellValue(dailySheet, "B1", "POA (kWh/m2)")
	_ = f.SetCellValue(dailySheet, "C1", "E_AC (kWh)")
	_ = f.SetCellValue(dailySheet, "D1", "Specific Yield (kWh/kWp)")
	_ = f.SetCellValue(dailySheet, "E1", "PR")
	_ = f.SetCellValue(dailySheet, "F1", "Extended")
	for i, d := range r.Daily {
		row := i + 2
		_ = f.SetCellValue(dailySheet, fmt.Sprintf("A%d", row), d.Date)
		_ = f.SetCellValue(dailySheet, fmt.Sprintf("B%d", row), d.POAKWhPerM2)
		_ = f.SetCellValue(dailySheet, fmt.Sprintf("C%d", row), d.EACKWh)
		_ = f.SetCellValue(dailySheet, fmt.Sprintf("D%d", row), d.SpecificYieldPerKWp)
		_ = f.SetCellValue(dailySheet, fmt.Sprintf("E%d", row), d.PR)
		_ = f.SetCellValue(dailySheet, fmt.Sprintf("F%d", row), d.Extended)
	}

	_ = f.SetCellValue(lossSheet, "A1", "Loss")
	_ = f.SetCellValue(lossSheet, "B1", "Pct")
	_ = f.SetCellValue(lossSheet, "C1", "Delta (kWh)")
	for i, item := range r.LossDiagram.Items {
		row := i + 2
		_ = f.SetCellValue(lossSheet, fmt.Sprintf("A%d", row), item.Name)
		_ = f.SetCellValue(lossSheet, fmt.Sprintf("B%d", row), item.LossPct)
		_ = f.SetCellValue(lossSheet, fmt.Sprintf("C%d", row), item.DeltaKWh)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("rendering report xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
