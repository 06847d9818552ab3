package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"dataset-reconciler/core/reconcile"
	"dataset-reconciler/core/utils"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook report.
const (
	SheetComparison = "Comparison"
	SheetSummary    = "Summary"
)

// Row fill colors (background, font) per classification.
var statusColors = map[reconcile.Status][2]string{
	reconcile.StatusRemoved: {"C6EFCE", "006100"},
	reconcile.StatusAdded:   {"FFC7CE", "9C0006"},
	reconcile.StatusChanged: {"FFEB9C", "9C0000"},
}

// XLSXWriter renders a highlighted comparison workbook.
//
// The Comparison sheet has one row per key: the key, the old values, the new values, the
// status and the changed columns. Rows only in the old table are green, rows only in the
// new table red and changed rows yellow. The Summary sheet lists the counts.
type XLSXWriter struct{}

func (XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXWriter) Extension() string { return ".xlsx" }

func (x XLSXWriter) Write(w io.Writer, res *reconcile.DiffResult, meta Meta) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetSheetName("Sheet1", SheetComparison); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeComparison(f, res, styles); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	if err := writeSummary(f, res, meta, styles); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:       "Dataset comparison",
		Description: fmt.Sprintf("%s vs %s", meta.OldSource, meta.NewSource),
		Identifier:  meta.ID,
	}); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}

	return f.Write(w)
}

type styleSet struct {
	header int
	status map[reconcile.Status]int
}

func newStyles(f *excelize.File) (*styleSet, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"366092"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	s := &styleSet{header: header, status: make(map[reconcile.Status]int, len(statusColors))}
	for status, c := range statusColors {
		id, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Color: c[1]},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{c[0]}},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s style: %w", status, err)
		}
		s.status[status] = id
	}
	return s, nil
}

func writeComparison(f *excelize.File, res *reconcile.DiffResult, styles *styleSet) error {
	columns := res.AllColumns()

	header := make([]any, 0, 2*len(columns)+3)
	header = append(header, "Key")
	for _, c := range columns {
		header = append(header, "Old."+c)
	}
	for _, c := range columns {
		header = append(header, "New."+c)
	}
	header = append(header, "Status", "Changed Columns")

	if err := setRow(f, SheetComparison, 1, header, styles.header); err != nil {
		return err
	}

	for i, rec := range res.Records {
		row := make([]any, 0, len(header))
		row = append(row, rec.Key.String())
		for _, c := range columns {
			row = append(row, cellValue(rec.Old[c]))
		}
		for _, c := range columns {
			row = append(row, cellValue(rec.New[c]))
		}
		row = append(row, StatusLabel(rec.Status), strings.Join(rec.ChangedColumns(), ", "))

		if err := setRow(f, SheetComparison, i+2, row, styles.status[rec.Status]); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(SheetComparison, "A", "A", 25); err != nil {
		return err
	}
	if len(header) > 2 {
		second, _ := excelize.ColumnNumberToName(len(header) - 2)
		if err := f.SetColWidth(SheetComparison, "B", second, 18); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetComparison, last, last, 30); err != nil {
		return err
	}
	return f.SetPanes(SheetComparison, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

func writeSummary(f *excelize.File, res *reconcile.DiffResult, meta Meta, styles *styleSet) error {
	s := res.Summary
	rows := [][]any{{"Status", "Count", "Description"}}
	for _, st := range reconcile.Statuses {
		rows = append(rows, []any{StatusLabel(st), s.Count(st), StatusDescription(st)})
	}
	rows = append(rows,
		[]any{"Old total rows", s.OldRows, "Rows in " + meta.OldSource},
		[]any{"New total rows", s.NewRows, "Rows in " + meta.NewSource},
		[]any{"Old duplicate keys", s.OldDuplicates, "Old rows ignored because an earlier row had the same key"},
		[]any{"New duplicate keys", s.NewDuplicates, "New rows ignored because an earlier row had the same key"},
		[]any{"Key columns", strings.Join(res.Keys, ", "), string(res.Alignment)},
	)

	for i, row := range rows {
		style := 0
		if i == 0 {
			style = styles.header
		}
		if err := setRow(f, SheetSummary, i+1, row, style); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetSummary, "A", "A", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSummary, "B", "B", 10); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "C", "C", 60)
}

// setRow writes values starting at column A and applies style to the written cells.
func setRow(f *excelize.File, sheet string, rowNum int, values []any, style int) error {
	start, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, rowNum, err)
	}
	if style == 0 || len(values) == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(values), rowNum)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}

// cellValue keeps numbers and booleans typed so the spreadsheet can compute with them.
// NaN and infinities have no cell representation and are written as text.
func cellValue(v any) any {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return utils.ToString(n)
		}
		return n
	case float32:
		if f := float64(n); math.IsNaN(f) || math.IsInf(f, 0) {
			return utils.ToString(n)
		}
		return n
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v
	default:
		return utils.ToString(v)
	}
}
