// Package assets loads the text sprites the renderer draws. A sprite that
// is missing or malformed is returned not ready; the renderer then draws a
// plain block in its place.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/funrun/internal/config"
)

//go:embed sprites/*.txt
var builtin embed.FS

// Sprite is a rectangular block of runes. Spaces are transparent.
type Sprite struct {
	Name  string
	Lines [][]rune
	Width int
	Ready bool
}

// Height returns the number of rows.
func (s Sprite) Height() int {
	return len(s.Lines)
}

// At returns the rune at (col, row), or a space outside the sprite.
func (s Sprite) At(col, row int) rune {
	if row < 0 || row >= len(s.Lines) {
		return ' '
	}
	line := s.Lines[row]
	if col < 0 || col >= len(line) {
		return ' '
	}
	return line[col]
}

// Set holds every sprite the renderer uses.
type Set struct {
	Player   Sprite
	Obstacle Sprite
}

// ErrEmptySprite is returned for sprite data with nothing visible in it.
var ErrEmptySprite = errors.New("assets: sprite has no visible cells")

// Parse builds a sprite from text. Trailing blank lines are dropped and
// rows are padded to the widest one.
func Parse(name string, data []byte) (Sprite, error) {
	if !utf8.Valid(data) {
		return Sprite{Name: name}, fmt.Errorf("assets: %s is not valid UTF-8", name)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	rows := strings.Split(strings.TrimRight(text, "\n"), "\n")

	width := 0
	visible := false
	lines := make([][]rune, 0, len(rows))
	for _, row := range rows {
		r := []rune(strings.TrimRight(row, " \t"))
		if len(r) > width {
			width = len(r)
		}
		if len(r) > 0 {
			visible = true
		}
		lines = append(lines, r)
	}
	if !visible {
		return Sprite{Name: name}, ErrEmptySprite
	}

	for i, l := range lines {
		if len(l) < width {
			lines[i] = append(l, []rune(strings.Repeat(" ", width-len(l)))...)
		}
	}
	return Sprite{Name: name, Lines: lines, Width: width, Ready: true}, nil
}

// LoadSprite reads a sprite from disk. On failure the returned sprite is
// not ready and the error says why.
func LoadSprite(path string) (Sprite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sprite{Name: path}, fmt.Errorf("assets: failed to read %s: %w", path, err)
	}
	return Parse(path, data)
}

func loadBuiltin(name string) (Sprite, error) {
	data, err := builtin.ReadFile("sprites/" + name)
	if err != nil {
		return Sprite{Name: name}, fmt.Errorf("assets: missing builtin %s: %w", name, err)
	}
	return Parse(name, data)
}

// Load resolves the configured sprites, falling back to the built-in ones
// for empty paths. The Set is always usable; the error joins every sprite
// that could not be loaded.
func Load(cfg config.AssetsConfig) (Set, error) {
	var errs []error
	load := func(path, builtinName string) Sprite {
		var (
			s   Sprite
			err error
		)
		if path == "" {
			s, err = loadBuiltin(builtinName)
		} else {
			s, err = LoadSprite(path)
		}
		if err != nil {
			errs = append(errs, err)
		}
		return s
	}

	set := Set{
		Player:   load(cfg.PlayerSprite, "mascot.txt"),
		Obstacle: load(cfg.ObstacleSprite, "obstacle.txt"),
	}
	return set, errors.Join(errs...)
}
