package pdfexport

import (
	"bytes"
	dbmodels "facility-desk-backend/models/db"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const fontDir = "static/font/"

// GenerateWorkOrder наряд на выполнение работ по назначению
func GenerateWorkOrder(assignment dbmodels.Assignment, issue dbmodels.Issue) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateWorkOrder panic recover: %v", r)
		}
	}()
	pdf, family := newDocument()
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	_, lineHt := pdf.GetFontSize()
	lineHt *= 1.6

	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(0, 12, fmt.Sprintf("Наряд на выполнение работ № %d", assignment.ID), "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 12)
	pdf.Ln(4)

	rows := [][2]string{
		{"Заявка", fmt.Sprintf("№ %d, %s", issue.ID, issue.Title)},
		{"Категория", issue.Category.ToHuman()},
		{"Местоположение", issue.Location},
		{"Статус назначения", assignment.Status.ToHuman()},
		{"Дата назначения", assignment.CreatedAt.Format("02.01.2006")},
		{"Плановая дата", formatDate(assignment.PlannedDate)},
		{"Предварительная стоимость", formatCost(assignment.EstimatedCost)},
		{"Фактическая стоимость", formatCost(assignment.ActualCost)},
	}
	if assignment.Contractor != nil {
		rows = append(rows, [2]string{"Подрядчик", assignment.Contractor.GetFullName()})
	}
	if assignment.Manager != nil {
		rows = append(rows, [2]string{"Управляющий", assignment.Manager.GetFullName()})
	}
	if assignment.CompletedAt != nil {
		rows = append(rows, [2]string{"Дата завершения", assignment.CompletedAt.Format("02.01.2006")})
	}
	for _, row := range rows {
		pdf.SetFont(family, "B", 12)
		pdf.CellFormat(65, lineHt, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont(family, "", 12)
		pdf.CellFormat(0, lineHt, row[1], "1", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont(family, "B", 12)
	pdf.CellFormat(0, lineHt, "Описание", "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 12)
	pdf.MultiCell(0, lineHt, issue.Description, "", "L", false)

	pdf.Ln(12)
	pdf.CellFormat(90, lineHt, "Подрядчик ____________", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, lineHt, "Жилец ____________", "", 1, "R", false, 0, "")

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// newDocument при отсутствии ttf шрифта используется встроенный
func newDocument() (pdf *fpdf.Fpdf, family string) {
	family = "Arial"
	pdf = fpdf.New("P", "mm", "A4", fontDir)
	pdf.AddUTF8Font(family, "", "Arial.ttf")
	pdf.AddUTF8Font(family, "B", "Arial Bold.ttf")
	if pdf.Error() != nil {
		family = "Helvetica"
		pdf = fpdf.New("P", "mm", "A4", "")
	}
	pdf.SetTitle("Наряд на выполнение работ", true)
	pdf.SetCreationDate(time.Now())
	pdf.AddPage()
	pdf.SetFont(family, "", 12)
	return pdf, family
}

func formatDate(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return value.Format("02.01.2006")
}

func formatCost(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *value)
}
