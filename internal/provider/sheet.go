package provider

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/albapepper/flagfantasy/internal/fantasy"
)

var ErrInvalidSheet = errors.New("invalid stat sheet")

// StatSheet is one game's score sheet: a line per player, in sheet order.
type StatSheet struct {
	Lines   []SheetLine
	Unknown []string // header columns that name no counter
}

// SheetLine is one row of a stat sheet.
type SheetLine struct {
	PlayerID string
	Name     string
	Stats    fantasy.StatLine
}

// ReadStatSheet parses the first sheet of an XLSX workbook. The header row
// is "id | name | <counter columns>"; counter columns accept the same
// aliases as tournament exports. Blank rows are skipped and blank cells
// count as zero.
func ReadStatSheet(r io.Reader) (*StatSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open stat sheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidSheet)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrInvalidSheet, sheets[0])
	}

	header := rows[0]
	if len(header) < 2 ||
		!strings.EqualFold(strings.TrimSpace(header[0]), "id") ||
		!strings.EqualFold(strings.TrimSpace(header[1]), "name") {
		return nil, fmt.Errorf("%w: header must start with id, name", ErrInvalidSheet)
	}

	sheet := &StatSheet{}
	columns := make(map[int]fantasy.Counter)
	for i := 2; i < len(header); i++ {
		name := strings.TrimSpace(header[i])
		if name == "" {
			continue
		}
		c, err := fantasy.ParseCounter(name)
		if err != nil {
			sheet.Unknown = append(sheet.Unknown, name)
			continue
		}
		columns[i] = c
	}

	seen := make(map[string]int)
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		id := strings.TrimSpace(row[0])
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: player %s on rows %d and %d", ErrInvalidSheet, id, prev, line)
		}
		seen[id] = line

		sl := SheetLine{PlayerID: id, Stats: make(fantasy.StatLine)}
		if len(row) > 1 {
			sl.Name = strings.TrimSpace(row[1])
		}
		for col, c := range columns {
			if col >= len(row) {
				continue
			}
			n, err := ExtractCount(row[col])
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %s: %w", ErrInvalidSheet, line, header[col], err)
			}
			sl.Stats[c] += n
		}
		sheet.Lines = append(sheet.Lines, sl)
	}
	return sheet, nil
}

// WriteLeaderboardSheet writes a ranked leaderboard as a single-sheet
// workbook: rank, entry, name, points, synthetic, then the roster.
func WriteLeaderboardSheet(w io.Writer, div fantasy.Division, ranked []fantasy.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := string(div)
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := []interface{}{"rank", "entry", "name", "points", "synthetic", "roster"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, e := range ranked {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{i + 1, e.EntryID, e.DisplayName, e.TotalPoints, e.Synthetic, strings.Join(e.Roster, ",")}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
