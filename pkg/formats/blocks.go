package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// BlockRow is one row of the block table:
//
//	Name Solid Transparent Translucent Dynamic Texture [Model]
type BlockRow struct {
	Name        string
	Solid       bool
	Transparent bool
	Translucent bool
	Dynamic     bool
	Texture     string // Texture name, without directory or extension
	Model       string // Model name; defaults to Texture
	Line        int
}

// BlockTable is a parsed block table. Row i gets block id i+1; id 0 is air.
type BlockTable struct {
	Rows    []BlockRow
	Skipped []int // Line numbers of malformed rows
}

// ParseBlockTable parses whitespace-delimited block rows. Blank lines and
// lines starting with '#' are skipped. Rows with fewer than six fields, or
// with non-integer flags, are recorded in Skipped and ignored.
func ParseBlockTable(data []byte) (*BlockTable, error) {
	table := &BlockTable{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.Fields(text)
		row, ok := parseBlockRow(fields)
		if !ok {
			table.Skipped = append(table.Skipped, line)
			continue
		}
		row.Line = line
		table.Rows = append(table.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading block table: %w", err)
	}
	return table, nil
}

func parseBlockRow(fields []string) (BlockRow, bool) {
	if len(fields) < 6 {
		return BlockRow{}, false
	}
	var flags [4]bool
	for i := range flags {
		v, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return BlockRow{}, false
		}
		flags[i] = v != 0
	}
	row := BlockRow{
		Name:        truncateName(fields[0]),
		Solid:       flags[0],
		Transparent: flags[1],
		Translucent: flags[2],
		Dynamic:     flags[3],
		Texture:     fields[5],
		Model:       fields[5],
	}
	if len(fields) > 6 {
		row.Model = fields[6]
	}
	return row, true
}

// EntityRow configures the tile-entity rendering of a block:
//
//	BlockName RendererName ModelPath
//	@ AnimationPath
type EntityRow struct {
	Block     string
	Renderer  string
	Model     string
	Animation string // Set by a following "@" line
	Line      int
}

// EntityConfig is a parsed tile-entity configuration file.
type EntityConfig struct {
	Entries []EntityRow
}

// ParseEntityConfig parses the tile-entity configuration. An "@" line
// attaches an animation to the entry above it; "+" lines (multi-part models)
// are ignored since every part lives in the model file.
func ParseEntityConfig(data []byte) (*EntityConfig, error) {
	cfg := &EntityConfig{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' || text[0] == '+' {
			continue
		}

		if text[0] == '@' {
			fields := strings.Fields(text[1:])
			if len(fields) == 0 || len(cfg.Entries) == 0 {
				continue
			}
			cfg.Entries[len(cfg.Entries)-1].Animation = fields[0]
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 3 {
			continue
		}
		cfg.Entries = append(cfg.Entries, EntityRow{
			Block:    fields[0],
			Renderer: fields[1],
			Model:    fields[2],
			Line:     line,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading entity config: %w", err)
	}
	return cfg, nil
}
