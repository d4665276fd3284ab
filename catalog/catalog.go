// Package catalog loads piece definitions from Excel workbooks. Each
// worksheet row describes one piece; the header row names the columns,
// so column order in the workbook does not matter.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/plus3/blockfall/blocks"
)

var (
	// ErrMissingColumns reports a workbook whose header row lacks one or
	// more required columns.
	ErrMissingColumns = errors.New("catalog: missing required columns")
	// ErrEmptySheet reports a worksheet without a header row.
	ErrEmptySheet = errors.New("catalog: worksheet is empty")
	// ErrNoPieces reports a workbook that yields no piece rows.
	ErrNoPieces = errors.New("catalog: no pieces in workbook")
)

// requiredColumns must all be present in the header row. Rows beyond
// Row5 are not supported; larger shapes need a different source.
var requiredColumns = []string{
	"ShapeID",
	"DisplayName",
	"Cells",
	"AllowRotate",
	"AllowMirror",
	"SpawnWeight",
	"ColorHex",
	"MatrixSize",
	"Row1",
	"Row2",
	"Row3",
	"Row4",
	"Row5",
	"Notes",
}

var rowColumns = []string{"Row1", "Row2", "Row3", "Row4", "Row5"}

// Load reads all pieces from the workbook's active sheet.
func Load(path string) ([]blocks.Piece, error) {
	return LoadSheet(path, "")
}

// LoadSheet reads all pieces from the named worksheet, or from the
// active sheet when name is empty. Rows without a ShapeID are skipped;
// any other malformed row fails the whole load.
func LoadSheet(path, sheet string) ([]blocks.Piece, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("catalog: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q", ErrEmptySheet, sheet)
	}

	columns, err := headerMap(rows[0])
	if err != nil {
		return nil, err
	}

	var pieces []blocks.Piece
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		p, ok, err := parseRow(row, columns)
		if err != nil {
			return nil, fmt.Errorf("catalog: row %d: %w", rowNum, err)
		}
		if !ok {
			continue
		}
		pieces = append(pieces, p)
	}
	if len(pieces) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPieces, path)
	}
	return pieces, nil
}

func headerMap(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for idx, name := range header {
		name = strings.TrimSpace(name)
		if name != "" {
			columns[name] = idx
		}
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return columns, nil
}

// parseRow builds a piece from one worksheet row. Returns ok=false for
// rows with a blank ShapeID, which are treated as padding.
func parseRow(row []string, columns map[string]int) (blocks.Piece, bool, error) {
	cell := func(name string) string {
		idx := columns[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	shapeID := cell("ShapeID")
	if shapeID == "" {
		return blocks.Piece{}, false, nil
	}

	allowRotate, err := parseBool(cell("AllowRotate"), true)
	if err != nil {
		return blocks.Piece{}, false, fmt.Errorf("AllowRotate: %w", err)
	}
	allowMirror, err := parseBool(cell("AllowMirror"), true)
	if err != nil {
		return blocks.Piece{}, false, fmt.Errorf("AllowMirror: %w", err)
	}

	spawnWeight := 1.0
	if v := cell("SpawnWeight"); v != "" {
		spawnWeight, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return blocks.Piece{}, false, fmt.Errorf("SpawnWeight: %w", err)
		}
	}

	sizeText := cell("MatrixSize")
	if sizeText == "" {
		return blocks.Piece{}, false, fmt.Errorf("piece %s: MatrixSize is required", shapeID)
	}
	matrixSize, err := parseInt(sizeText)
	if err != nil {
		return blocks.Piece{}, false, fmt.Errorf("MatrixSize: %w", err)
	}

	rowTexts := make([]string, len(rowColumns))
	for i, name := range rowColumns {
		rowTexts[i] = cell(name)
	}
	matrix, err := MatrixFromRows(rowTexts, matrixSize)
	if err != nil {
		return blocks.Piece{}, false, fmt.Errorf("piece %s: %w", shapeID, err)
	}

	p, err := blocks.NewPiece(blocks.Piece{
		ShapeID:     shapeID,
		DisplayName: cell("DisplayName"),
		Matrix:      matrix,
		AllowRotate: allowRotate,
		AllowMirror: allowMirror,
		SpawnWeight: spawnWeight,
		ColorHex:    cell("ColorHex"),
		Notes:       cell("Notes"),
	})
	if err != nil {
		return blocks.Piece{}, false, err
	}

	// Cells is a redundant checksum over the matrix when present.
	if v := cell("Cells"); v != "" {
		want, err := parseInt(v)
		if err != nil {
			return blocks.Piece{}, false, fmt.Errorf("Cells: %w", err)
		}
		if got := p.CellCount(); got != want {
			return blocks.Piece{}, false, fmt.Errorf("piece %s: Cells=%d but matrix has %d occupied cells", shapeID, want, got)
		}
	}

	return p, true, nil
}

// MatrixFromRows builds a size x size matrix from textual row patterns
// of "0" and "1" characters. Short or missing rows pad with zeros on
// the right and bottom; rows longer than size are rejected.
func MatrixFromRows(rows []string, size int) (blocks.Matrix, error) {
	if size <= 0 {
		return nil, fmt.Errorf("matrix size %d, want > 0", size)
	}
	if len(rows) > size {
		rows = rows[:size]
	}

	m := make(blocks.Matrix, size)
	for r := range m {
		m[r] = make([]int, size)
		if r >= len(rows) {
			continue
		}
		text := strings.ReplaceAll(strings.TrimSpace(rows[r]), " ", "")
		if len(text) > size {
			return nil, fmt.Errorf("row %d pattern %q longer than matrix size %d", r+1, text, size)
		}
		for c, ch := range text {
			switch ch {
			case '0':
			case '1':
				m[r][c] = 1
			default:
				return nil, fmt.Errorf("row %d pattern %q: invalid character %q", r+1, text, ch)
			}
		}
	}
	return m, nil
}

func parseBool(text string, def bool) (bool, error) {
	if text == "" {
		return def, nil
	}
	switch strings.ToLower(text) {
	case "true", "1", "yes", "y":
		return true, nil
	case "false", "0", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("cannot parse %q as bool", text)
}

// parseInt accepts integer cells that spreadsheet tools may have
// rendered as floats, like "4" or "4.0".
func parseInt(text string) (int, error) {
	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as integer", text)
	}
	n := int(f)
	if float64(n) != f {
		return 0, fmt.Errorf("cannot parse %q as integer", text)
	}
	return n, nil
}
