package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/pixi/internal/canvas"
	"github.com/san-kum/pixi/internal/config"
)

// ErrRenderNotFound indicates a render ID with no stored metadata.
var ErrRenderNotFound = errors.New("storage: render not found")

// Store is a directory of completed renders: one subdirectory per render
// holding the exported image plus its metadata.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RenderMetadata struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Config    config.Config `json:"config"`
	Elapsed   float64       `json:"elapsed_seconds"`
	Coverage  int           `json:"coverage"`
	Histogram []int         `json:"histogram"`
}

// ImagePath returns the location of a saved render's PNG.
func (s *Store) ImagePath(renderID string) string {
	return filepath.Join(s.baseDir, renderID, "out.png")
}

// Save writes the rendered image and its metadata under a fresh render ID.
func (s *Store) Save(cfg *config.Config, img *image.RGBA, elapsed time.Duration, coverage int, histogram []int) (string, error) {
	renderID := fmt.Sprintf("render_%d", time.Now().Unix())
	renderDir := filepath.Join(s.baseDir, renderID)

	if err := os.MkdirAll(renderDir, 0755); err != nil {
		return "", err
	}

	meta := RenderMetadata{
		ID:        renderID,
		Timestamp: time.Now(),
		Config:    *cfg,
		Elapsed:   elapsed.Seconds(),
		Coverage:  coverage,
		Histogram: histogram,
	}

	metaPath := filepath.Join(renderDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := canvas.WritePNG(filepath.Join(renderDir, "out.png"), img); err != nil {
		return "", err
	}

	return renderID, nil
}

// List loads metadata for every stored render, newest first. Subdirectories
// without readable metadata are skipped.
func (s *Store) List() ([]RenderMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RenderMetadata{}, nil
		}
		return nil, err
	}

	renders := make([]RenderMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RenderMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		renders = append(renders, meta)
	}

	sort.Slice(renders, func(i, j int) bool {
		return renders[i].Timestamp.After(renders[j].Timestamp)
	})

	return renders, nil
}

func (s *Store) Load(renderID string) (*RenderMetadata, error) {
	metaPath := filepath.Join(s.baseDir, renderID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRenderNotFound, renderID)
		}
		return nil, err
	}

	var meta RenderMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}
