package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/diewo77/go-gescom/internal/httpx"
	"github.com/diewo77/go-gescom/internal/models"
	"github.com/diewo77/go-gescom/internal/services"
)

// ExportHandler streams the invoice book as CSV or XLSX.
type ExportHandler struct {
	Svc *services.InvoiceService
}

func NewExportHandler(svc *services.InvoiceService) *ExportHandler {
	return &ExportHandler{Svc: svc}
}

var exportHeader = []string{
	"ID Facture",
	"Contact",
	"Adresse",
	"Ville",
	"Code Postal",
	"Email",
	"Téléphone",
	"Montant HT",
	"Montant TTC",
	"Statut",
	"Date",
}

// exportRow flattens one invoice plus its line totals into the export columns.
func (h *ExportHandler) exportRow(inv *models.Invoice) ([]string, error) {
	lines, err := h.Svc.Lines(inv.ID)
	if err != nil {
		return nil, err
	}
	var totalHT, totalTTC float64
	for _, line := range lines {
		totalHT += line.PriceHT * float64(line.Quantity)
		totalTTC += line.PriceTax
	}
	return []string{
		fmt.Sprintf("%d", inv.ID),
		inv.Name,
		inv.Address,
		inv.City,
		inv.ZipCode,
		inv.Email,
		inv.Phone,
		fmt.Sprintf("%.2f", models.Round2(totalHT)),
		fmt.Sprintf("%.2f", models.Round2(totalTTC)),
		inv.Status,
		inv.CreatedAt.Format("02/01/2006"),
	}, nil
}

// CSV serves GET /invoices/export/csv. Semicolon separated with a BOM so the
// file opens cleanly in French-locale Excel.
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Svc.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="factures.csv"`)
	w.Write([]byte("sep=;\n\ufeff"))

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	cw.Write(exportHeader)
	for i := range invoices {
		row, err := h.exportRow(&invoices[i])
		if err != nil {
			log.Error().Err(err).Uint("invoice_id", invoices[i].ID).Msg("export: lignes illisibles, facture ignorée")
			continue
		}
		cw.Write(row)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Error().Err(err).Msg("export csv: écriture interrompue")
	}
}

// XLSX serves GET /invoices/export/xlsx.
func (h *ExportHandler) XLSX(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Svc.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Factures"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	rowIdx := 2
	for i := range invoices {
		row, err := h.exportRow(&invoices[i])
		if err != nil {
			log.Error().Err(err).Uint("invoice_id", invoices[i].ID).Msg("export: lignes illisibles, facture ignorée")
			continue
		}
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx)
			f.SetCellValue(sheet, cell, v)
		}
		rowIdx++
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="factures.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("export xlsx: écriture interrompue")
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
	}
}
