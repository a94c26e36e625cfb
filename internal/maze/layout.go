package maze

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Layout glyphs.
const (
	GlyphWall   = '#'
	GlyphPath   = ' '
	GlyphDot    = '.'
	GlyphPower  = 'o'
	GlyphPlayer = 'P' // player spawn, a Path tile
	GlyphGhost  = 'G' // ghost spawn, a Path tile
)

// Layout is a maze description as stored in YAML layout files.
type Layout struct {
	Name     string   `yaml:"name"`
	Title    string   `yaml:"title"`
	TileSize float64  `yaml:"tile_size"`
	Rows     []string `yaml:"rows"`
}

// Level is a parsed layout: a fresh grid plus its spawn points.
type Level struct {
	Grid        *Grid
	PlayerSpawn Cell
	GhostSpawns []Cell
}

// ParseLayout decodes a YAML layout document.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("maze: cannot parse layout: %w", err)
	}
	if len(l.Rows) == 0 {
		return nil, fmt.Errorf("maze: layout %q: %w", l.Name, ErrBadLayout)
	}
	if l.Title == "" {
		l.Title = l.Name
	}
	return &l, nil
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	c := *l
	c.Rows = slices.Clone(l.Rows)
	return &c
}

// LoadLayoutFile reads and decodes a YAML layout file.
func LoadLayoutFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("maze: cannot read layout %s: %w", path, err)
	}
	return ParseLayout(data)
}

// Build creates a new grid from the layout. Every call returns an
// independent grid, so a layout can be rebuilt for each level.
func (l *Layout) Build() (*Level, error) {
	lvl, err := ParseRows(l.Rows, l.TileSize)
	if err != nil {
		return nil, fmt.Errorf("maze: layout %q: %w", l.Name, err)
	}
	return lvl, nil
}

// ParseRows builds a level from ASCII rows. A missing player spawn defaults
// to the first open cell.
func ParseRows(rows []string, tileSize float64) (*Level, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadLayout)
	}
	lvl := &Level{PlayerSpawn: Cell{Col: -1, Row: -1}}
	tiles := make([][]Tile, len(rows))
	for r, line := range rows {
		runes := []rune(line)
		tiles[r] = make([]Tile, len(runes))
		for c, ch := range runes {
			switch ch {
			case GlyphWall:
				tiles[r][c] = Wall
			case GlyphDot:
				tiles[r][c] = Dot
			case GlyphPower:
				tiles[r][c] = Power
			case GlyphPath:
				tiles[r][c] = Path
			case GlyphPlayer:
				tiles[r][c] = Path
				lvl.PlayerSpawn = Cell{Col: c, Row: r}
			case GlyphGhost:
				tiles[r][c] = Path
				lvl.GhostSpawns = append(lvl.GhostSpawns, Cell{Col: c, Row: r})
			default:
				return nil, fmt.Errorf("%w: unknown glyph %q at %d,%d", ErrBadLayout, ch, c, r)
			}
		}
	}

	g, err := NewGrid(tiles, tileSize)
	if err != nil {
		return nil, err
	}
	lvl.Grid = g

	if lvl.PlayerSpawn.Col < 0 {
		for r := 0; r < g.Rows() && lvl.PlayerSpawn.Col < 0; r++ {
			for c := 0; c < g.Cols(); c++ {
				if g.TileAt(c, r) != Wall {
					lvl.PlayerSpawn = Cell{Col: c, Row: r}
					break
				}
			}
		}
		if lvl.PlayerSpawn.Col < 0 {
			return nil, fmt.Errorf("%w: no open cell", ErrBadLayout)
		}
	}
	return lvl, nil
}
