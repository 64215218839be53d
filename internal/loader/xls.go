package loader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"

	"github.com/Fybex/naukma-schedule-parser/internal/sheet"
)

// loadXLS reads the first worksheet of a legacy .xls workbook. Numeric
// cells come back as "N.0" strings; the suffix is dropped so week and
// group parsing sees plain integers.
func loadXLS(data []byte) (*sheet.Sheet, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "windows-1251")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}

	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, fmt.Errorf("xls workbook has no sheets")
	}

	rows := make([][]string, 0, int(ws.MaxRow)+1)
	for r := 0; r <= int(ws.MaxRow); r++ {
		row := ws.Row(r)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			cells = append(cells, strings.TrimSuffix(strings.TrimSpace(row.Col(c)), ".0"))
		}
		rows = append(rows, cells)
	}
	return sheet.New(rows), nil
}
