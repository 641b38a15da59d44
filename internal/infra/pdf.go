package infra

// pdf.go — Printable activity summary using go-pdf/fpdf.
// Admins export a closed activity as a one-page A5 report:
//   - operator / machine header
//   - client, location, service
//   - start/end odometer and elapsed time
//   - area and performance rating
//   - review status

import (
	"bytes"
	"fmt"
	"time"

	"github.com/parmenasoares/track-and-work/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateActivityReport renders a PDF summary of one activity and returns
// the raw bytes (the caller streams them to the client).
func GenerateActivityReport(a *model.Activity) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Track & Work", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Relatório de Atividade", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW*0.38, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW*0.62, 6, value, "", 1, "L", false, 0, "")
	}

	operator := ""
	if a.Operator != nil {
		operator = a.Operator.FullName()
	}
	machine := ""
	if a.Machine != nil {
		machine = a.Machine.Name
	}
	row("Operador", operator)
	row("Máquina", machine)
	if a.Client != nil {
		row("Cliente", a.Client.Name)
	}
	if a.Location != nil {
		row("Localização", a.Location.Name)
	}
	if a.Service != nil {
		row("Serviço", a.Service.Name)
	}
	pdf.Ln(2)

	row("Início", a.StartTime.Format("02/01/2006 15:04"))
	if a.EndTime != nil {
		row("Fim", a.EndTime.Format("02/01/2006 15:04"))
		row("Duração", a.EndTime.Sub(a.StartTime).Round(time.Minute).String())
	}
	row("Hodómetro inicial", a.StartOdometer.StringFixed(2))
	if a.EndOdometer != nil {
		row("Hodómetro final", a.EndOdometer.StringFixed(2))
	}
	if a.AreaValue != nil {
		unit := ""
		if a.AreaUnit != nil {
			unit = " " + *a.AreaUnit
		}
		row("Área", a.AreaValue.StringFixed(2)+unit)
	}
	if a.PerformanceRating != nil {
		row("Avaliação", fmt.Sprintf("%d/5", *a.PerformanceRating))
	}
	pdf.Ln(2)

	row("Estado", a.Status)
	if a.Notes != nil && *a.Notes != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 6, "Observações", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, *a.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render report: %w", err)
	}
	return buf.Bytes(), nil
}
