package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"liquidityGuard/internal/model"
)

// FlagFile keeps the symbol -> flag map in a JSON file, replaced atomically on every write.
type FlagFile struct {
	path string
	mu   sync.Mutex
}

func NewFlagFile(path string) *FlagFile {
	return &FlagFile{path: path}
}

// PutFlag overwrites the flag for symbol and leaves other symbols untouched.
func (f *FlagFile) PutFlag(_ context.Context, symbol string, flag model.Flag) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	flags, err := LoadFlags(f.path)
	if err != nil {
		flags = model.FlagMap{}
	}
	flags[symbol] = flag

	dir := filepath.Dir(f.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create flags dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(flags, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal flags: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write flags tmp: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename flags: %w", err)
	}
	return nil
}

// LoadFlags reads the flags file. A missing file yields an empty map; unparseable
// content is reported as an error alongside an empty map.
func LoadFlags(path string) (model.FlagMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.FlagMap{}, nil
		}
		return model.FlagMap{}, fmt.Errorf("read flags: %w", err)
	}

	flags := model.FlagMap{}
	if err := json.Unmarshal(data, &flags); err != nil {
		return model.FlagMap{}, fmt.Errorf("parse flags: %w", err)
	}
	if flags == nil {
		flags = model.FlagMap{}
	}
	return flags, nil
}
