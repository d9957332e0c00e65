package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/funrun/internal/config"
)

func TestParsePadsRows(t *testing.T) {
	s, err := Parse("box", []byte("ab\nabcd\n\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !s.Ready {
		t.Error("parsed sprite should be ready")
	}
	if s.Width != 4 || s.Height() != 2 {
		t.Errorf("size = %dx%d, expected 4x2", s.Width, s.Height())
	}
	if s.At(3, 0) != ' ' || s.At(3, 1) != 'd' {
		t.Errorf("unexpected cells %q %q", s.At(3, 0), s.At(3, 1))
	}
	if s.At(10, 10) != ' ' || s.At(-1, 0) != ' ' {
		t.Error("out of range At should return space")
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"whitespace only", []byte("   \n\t\n")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Parse(tc.name, tc.data)
			if !errors.Is(err, ErrEmptySprite) {
				t.Errorf("expected ErrEmptySprite, got %v", err)
			}
			if s.Ready {
				t.Error("empty sprite must not be ready")
			}
		})
	}
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	s, err := Parse("bad", []byte{0xff, 0xfe})
	if err == nil || s.Ready {
		t.Errorf("expected not-ready sprite and error, got ready=%v err=%v", s.Ready, err)
	}
}

func TestLoadBuiltins(t *testing.T) {
	set, err := Load(config.AssetsConfig{})
	if err != nil {
		t.Fatalf("built-in sprites should load: %v", err)
	}
	if !set.Player.Ready || !set.Obstacle.Ready {
		t.Error("built-in sprites should be ready")
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "obstacle.txt")
	if err := os.WriteFile(custom, []byte("#\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := Load(config.AssetsConfig{
		PlayerSprite:   filepath.Join(dir, "missing.txt"),
		ObstacleSprite: custom,
	})
	if err == nil {
		t.Fatal("expected an error for the missing sprite")
	}
	if set.Player.Ready {
		t.Error("missing sprite must not be ready")
	}
	if !set.Obstacle.Ready || set.Obstacle.At(0, 0) != '#' {
		t.Error("custom obstacle sprite should load")
	}
}
