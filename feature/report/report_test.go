package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"dataset-reconciler/core/reconcile"
	"dataset-reconciler/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleResult(t *testing.T) *reconcile.DiffResult {
	t.Helper()
	cols := []string{"id", "name", "qty"}
	oldT := table.New(cols,
		table.Row{"id": 1, "name": "A", "qty": 10},
		table.Row{"id": 2, "name": "B", "qty": 5},
		table.Row{"id": 4, "name": "D", "qty": 1},
	)
	newT := table.New(cols,
		table.Row{"id": 1, "name": "A", "qty": 12},
		table.Row{"id": 3, "name": "C", "qty": 7},
		table.Row{"id": 4, "name": "D", "qty": 1},
	)
	res, err := reconcile.Reconcile(oldT, newT, reconcile.Spec{Keys: []string{"id"}, Alignment: reconcile.AlignByName})
	require.NoError(t, err)
	return res
}

func sampleMeta() Meta {
	return NewMeta("old.csv", "new.csv", "")
}

func TestWriterFor(t *testing.T) {
	tests := []struct {
		name    string
		want    Writer
		wantErr bool
	}{
		{name: "out.xlsx", want: &XLSXWriter{}},
		{name: "OUT.JSON", want: &JSONWriter{}},
		{name: "out.txt", want: &TextWriter{Limit: -1}},
		{name: "out.pdf", wantErr: true},
		{name: "out", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WriterFor(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewMeta(t *testing.T) {
	m := NewMeta("a", "b", "bom-fixed")
	assert.Len(t, m.ID, 36)
	assert.Equal(t, "bom-fixed", m.Profile)
	assert.False(t, m.CreatedAt.IsZero())
	assert.True(t, strings.HasPrefix(Filename(&XLSXWriter{}, m), "comparison-"))
	assert.True(t, strings.HasSuffix(Filename(&XLSXWriter{}, m), ".xlsx"))
}

func TestXLSXWriter(t *testing.T) {
	res := sampleResult(t)
	var buf bytes.Buffer
	require.NoError(t, XLSXWriter{}.Write(&buf, res, sampleMeta()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetComparison, SheetSummary}, f.GetSheetList())

	rows, err := f.GetRows(SheetComparison)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	for i := range rows {
		rows[i] = trimTrailing(rows[i])
	}
	assert.Equal(t, []string{
		"Key", "Old.id", "Old.name", "Old.qty", "New.id", "New.name", "New.qty", "Status", "Changed Columns",
	}, rows[0])
	assert.Equal(t, []string{"1", "1", "A", "10", "1", "A", "12", "Changed", "qty"}, rows[1])
	assert.Equal(t, []string{"2", "2", "B", "5", "", "", "", "Only in old"}, rows[2])
	assert.Equal(t, []string{"3", "", "", "", "3", "C", "7", "Only in new"}, rows[3])
	assert.Equal(t, []string{"4", "4", "D", "1", "4", "D", "1", "Unchanged"}, rows[4])

	header, err := f.GetCellStyle(SheetComparison, "A1")
	require.NoError(t, err)
	changed, err := f.GetCellStyle(SheetComparison, "A2")
	require.NoError(t, err)
	removed, err := f.GetCellStyle(SheetComparison, "A3")
	require.NoError(t, err)
	added, err := f.GetCellStyle(SheetComparison, "A4")
	require.NoError(t, err)
	unchanged, err := f.GetCellStyle(SheetComparison, "A5")
	require.NoError(t, err)

	assert.NotZero(t, header)
	assert.NotZero(t, changed)
	assert.NotZero(t, removed)
	assert.NotZero(t, added)
	assert.Zero(t, unchanged)
	assert.Len(t, map[int]bool{header: true, changed: true, removed: true, added: true}, 4)

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	require.Len(t, summary, 10)
	assert.Equal(t, []string{"Status", "Count", "Description"}, summary[0])
	assert.Equal(t, "Unchanged", summary[1][0])
	assert.Equal(t, "1", summary[1][1])
	assert.Equal(t, []string{"Old total rows", "3", "Rows in old.csv"}, summary[5])
	assert.Equal(t, []string{"Key columns", "id", "by_name"}, summary[9])
}

func TestCellValue(t *testing.T) {
	assert.Nil(t, cellValue(nil))
	assert.Equal(t, 1.5, cellValue(1.5))
	assert.Equal(t, int64(7), cellValue(int64(7)))
	assert.Equal(t, "", cellValue(math.NaN()))
	assert.Equal(t, "+Inf", cellValue(math.Inf(1)))
	assert.Equal(t, "-Inf", cellValue(float32(math.Inf(-1))))
}

func TestXLSXWriter_NonFiniteValues(t *testing.T) {
	cols := []string{"id", "ratio"}
	oldT := table.New(cols, table.Row{"id": 1, "ratio": math.Inf(1)})
	newT := table.New(cols, table.Row{"id": 1, "ratio": math.NaN()})
	res, err := reconcile.Reconcile(oldT, newT, reconcile.Spec{Keys: []string{"id"}, Alignment: reconcile.AlignByName})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, XLSXWriter{}.Write(&buf, res, sampleMeta()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	oldRatio, err := f.GetCellValue(SheetComparison, "C2")
	require.NoError(t, err)
	assert.Equal(t, "+Inf", oldRatio)
}

func TestJSONWriter(t *testing.T) {
	res := sampleResult(t)
	meta := sampleMeta()

	var buf bytes.Buffer
	require.NoError(t, JSONWriter{}.Write(&buf, res, meta))

	var doc struct {
		Meta   Meta `json:"meta"`
		Result struct {
			Records []struct {
				Key     []string `json:"key"`
				Status  string   `json:"status"`
				Changes []struct {
					Column string `json:"column"`
					Old    any    `json:"old"`
					New    any    `json:"new"`
				} `json:"changes"`
			} `json:"records"`
			Summary reconcile.Summary `json:"summary"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, meta.ID, doc.Meta.ID)
	require.Len(t, doc.Result.Records, 4)
	assert.Equal(t, []string{"1"}, doc.Result.Records[0].Key)
	assert.Equal(t, "changed", doc.Result.Records[0].Status)
	assert.Equal(t, "qty", doc.Result.Records[0].Changes[0].Column)
	assert.Equal(t, float64(12), doc.Result.Records[0].Changes[0].New)
	assert.Equal(t, 1, doc.Result.Summary.Added)
}

func TestTextWriter(t *testing.T) {
	res := sampleResult(t)

	t.Run("Preview", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, TextWriter{Limit: 1}.Write(&buf, res, sampleMeta()))
		out := buf.String()

		assert.Contains(t, out, "old.csv")
		assert.Contains(t, out, "Only in new:  1")
		assert.Contains(t, out, `qty: "10" -> "12"`)
		assert.Contains(t, out, "... 2 more")
	})

	t.Run("NoPreview", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, TextWriter{}.Write(&buf, res, sampleMeta()))
		assert.NotContains(t, buf.String(), "STATUS")
	})

	t.Run("Identical", func(t *testing.T) {
		tbl := table.New([]string{"id"}, table.Row{"id": "1"})
		same, err := reconcile.Reconcile(tbl, tbl, reconcile.Spec{Keys: []string{"id"}, Alignment: reconcile.AlignByName})
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, TextWriter{Limit: -1}.Write(&buf, same, sampleMeta()))
		assert.Contains(t, buf.String(), "The two tables are identical.")
	})
}

func trimTrailing(row []string) []string {
	for len(row) > 0 && row[len(row)-1] == "" {
		row = row[:len(row)-1]
	}
	return row
}
