package system

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Clip is a locally known clip, optionally linked to its hosted copy.
type Clip struct {
	Name     string
	Path     string
	HostedID *uuid.UUID
}

// ClipResolver maps a user-supplied clip name to a local clip.
type ClipResolver interface {
	Resolve(name string) (*Clip, error)
	SetHostedID(name string, id uuid.UUID) error
}

const indexFile = ".clipshare-index.json"

type clipIndex struct {
	Clips map[string]clipEntry `json:"clips"`
}

type clipEntry struct {
	HostedID string `json:"hosted_id,omitempty"`
}

// DirResolver finds clips as .mp4 files in the configured clips directory,
// with hosted IDs tracked in a small index file alongside them.
type DirResolver struct {
	Dir string
}

func (r *DirResolver) Resolve(name string) (*Clip, error) {
	stem := strings.TrimSpace(name)
	stem = strings.TrimSuffix(strings.TrimSuffix(stem, ".mp4"), ".MP4")
	if stem == "" {
		return nil, fmt.Errorf("clip name cannot be empty")
	}

	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read clips dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".mp4") {
			continue
		}
		entryStem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if !strings.EqualFold(entryStem, stem) {
			continue
		}
		clip := &Clip{Name: entryStem, Path: filepath.Join(r.Dir, entry.Name())}
		index, err := r.loadIndex()
		if err == nil {
			if rec, ok := index.Clips[entry.Name()]; ok && rec.HostedID != "" {
				if id, err := uuid.Parse(rec.HostedID); err == nil {
					clip.HostedID = &id
				}
			}
		}
		return clip, nil
	}
	return nil, fmt.Errorf("clip %q not found", stem)
}

func (r *DirResolver) SetHostedID(name string, id uuid.UUID) error {
	index, err := r.loadIndex()
	if err != nil {
		index = &clipIndex{}
	}
	if index.Clips == nil {
		index.Clips = map[string]clipEntry{}
	}
	filename := name
	if filepath.Ext(filename) == "" {
		filename += ".mp4"
	}
	index.Clips[filename] = clipEntry{HostedID: id.String()}
	content, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal clip index: %w", err)
	}
	return os.WriteFile(filepath.Join(r.Dir, indexFile), content, 0o600)
}

func (r *DirResolver) loadIndex() (*clipIndex, error) {
	content, err := os.ReadFile(filepath.Join(r.Dir, indexFile))
	if err != nil {
		return nil, err
	}
	var index clipIndex
	if err := json.Unmarshal(content, &index); err != nil {
		return nil, fmt.Errorf("failed to parse clip index: %w", err)
	}
	return &index, nil
}
