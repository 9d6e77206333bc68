package xlsexport

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

type column struct {
	title string
	width float64
}

// заливка ячейки статуса по цвету статуса в интерфейсе
var statusFill = map[string]string{
	"info":      "DDEBF7",
	"primary":   "BDD7EE",
	"secondary": "EDEDED",
	"warning":   "FFF2CC",
	"success":   "E2EFDA",
	"error":     "F8CBAD",
}

type sheetWriter struct {
	f       *excelize.File
	sheet   string
	columns []column
	row     int
	styles  map[string]int
}

func newSheetWriter(f *excelize.File, sheet string, columns []column) *sheetWriter {
	return &sheetWriter{
		f:       f,
		sheet:   sheet,
		columns: columns,
		styles:  map[string]int{},
	}
}

func (w *sheetWriter) style(key string, build func() *excelize.Style) (int, error) {
	if id, ok := w.styles[key]; ok {
		return id, nil
	}
	id, err := w.f.NewStyle(build())
	if err != nil {
		return 0, err
	}
	w.styles[key] = id
	return id, nil
}

func baseFont(bold bool) *excelize.Font {
	return &excelize.Font{
		Bold:   bold,
		Family: "Times New Roman",
		Size:   11,
	}
}

// header шапка таблицы, закрепленная при прокрутке
func (w *sheetWriter) header() error {
	styleID, err := w.style("header", func() *excelize.Style {
		return &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Font:      baseFont(true),
			Border: []excelize.Border{
				{Type: "bottom", Color: "000000", Style: 1},
			},
		}
	})
	if err != nil {
		return err
	}
	w.row++
	for idx, col := range w.columns {
		name, err := excelize.ColumnNumberToName(idx + 1)
		if err != nil {
			return err
		}
		if err = w.f.SetColWidth(w.sheet, name, name, col.width); err != nil {
			return err
		}
		if err = w.cell(idx+1, col.title, styleID); err != nil {
			return err
		}
	}
	return w.f.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (w *sheetWriter) dataStyle() (int, error) {
	return w.style("data", func() *excelize.Style {
		return &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
			Font:      baseFont(false),
		}
	})
}

func (w *sheetWriter) fillStyle(color string) (int, error) {
	fill, ok := statusFill[color]
	if !ok {
		return w.dataStyle()
	}
	return w.style("fill:"+color, func() *excelize.Style {
		return &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
			Font:      baseFont(false),
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
		}
	})
}

// line записывает строку данных, к колонке fillCol (с 1) применяется заливка fillColor
func (w *sheetWriter) line(values []interface{}, fillCol int, fillColor string) error {
	if len(values) != len(w.columns) {
		return errors.Errorf("ожидалось %d значений, получено %d", len(w.columns), len(values))
	}
	dataID, err := w.dataStyle()
	if err != nil {
		return err
	}
	w.row++
	for idx, value := range values {
		styleID := dataID
		if idx+1 == fillCol {
			if styleID, err = w.fillStyle(fillColor); err != nil {
				return err
			}
		}
		if err = w.cell(idx+1, value, styleID); err != nil {
			return err
		}
	}
	return nil
}

func (w *sheetWriter) cell(col int, value interface{}, styleID int) error {
	name, err := excelize.CoordinatesToCellName(col, w.row)
	if err != nil {
		return err
	}
	if err = w.f.SetCellValue(w.sheet, name, value); err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, name, name, styleID)
}
