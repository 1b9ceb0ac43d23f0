// Package manifest builds and persists dataset split manifests: the paired
// file path and label sequences a training pipeline consumes. Paths are
// derived from JSON metadata files that map video identifiers to integer
// class labels.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrLengthMismatch reports parallel path/label sequences of unequal length.
var ErrLengthMismatch = errors.New("manifest: path and label counts differ")

// Entry is one metadata record: a video identifier and its class label.
// Class optionally carries a human-readable class name for display.
type Entry struct {
	VideoID string `json:"video_id"`
	Label   int    `json:"label"`
	Class   string `json:"class,omitempty"`
}

// Manifest holds the parallel path and label sequences for one dataset
// split. Paths[i] is labeled Labels[i].
type Manifest struct {
	Paths  []string `json:"paths"`
	Labels []int32  `json:"labels"`
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.Paths)
}

// Validate checks the parallel sequences line up.
func (m *Manifest) Validate() error {
	if len(m.Paths) != len(m.Labels) {
		return fmt.Errorf("%w: %d paths, %d labels", ErrLengthMismatch, len(m.Paths), len(m.Labels))
	}
	return nil
}

// ReadMeta parses a metadata file: a JSON array of Entry objects.
func ReadMeta(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", path, err)
	}
	return entries, nil
}

// Build constructs a shuffled manifest from a metadata file. Each entry's
// path is baseDir/<video_id><ext>. The paired shuffle uses the provided rand
// source so two builds over the same metadata always cover the same
// (path, label) set, in an order determined by the seed.
func Build(metaPath, baseDir, ext string, rng *rand.Rand) (*Manifest, error) {
	entries, err := ReadMeta(metaPath)
	if err != nil {
		return nil, err
	}

	ext = normalizeExt(ext)
	paths := make([]string, 0, len(entries))
	labels := make([]int32, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.VideoID) == "" {
			return nil, fmt.Errorf("manifest: metadata entry with empty video_id in %s", metaPath)
		}
		paths = append(paths, filepath.Join(baseDir, e.VideoID+ext))
		labels = append(labels, int32(e.Label))
	}

	m := &Manifest{Paths: paths, Labels: labels}
	if err := Shuffle(m, rng); err != nil {
		return nil, err
	}
	return m, nil
}

// Shuffle permutes the manifest in place, moving each path and its label
// together. Fails before touching anything when the sequences disagree.
func Shuffle(m *Manifest, rng *rand.Rand) error {
	if err := m.Validate(); err != nil {
		return err
	}
	rng.Shuffle(len(m.Paths), func(i, j int) {
		m.Paths[i], m.Paths[j] = m.Paths[j], m.Paths[i]
		m.Labels[i], m.Labels[j] = m.Labels[j], m.Labels[i]
	})
	return nil
}

// Load reads a previously saved manifest and validates its pairing.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Save writes the manifest as JSON.
func (m *Manifest) Save(path string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ClassCount tallies how many entries carry each label.
type ClassCount struct {
	Label int32
	Name  string
	Count int
}

// Classes summarizes the label distribution of the metadata entries, sorted
// by label. Names come from the first entry that carries one.
func Classes(entries []Entry) []ClassCount {
	counts := make(map[int32]*ClassCount)
	for _, e := range entries {
		label := int32(e.Label)
		cc, ok := counts[label]
		if !ok {
			cc = &ClassCount{Label: label}
			counts[label] = cc
		}
		cc.Count++
		if cc.Name == "" && strings.TrimSpace(e.Class) != "" {
			cc.Name = strings.TrimSpace(e.Class)
		}
	}

	out := make([]ClassCount, 0, len(counts))
	for _, cc := range counts {
		out = append(out, *cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
