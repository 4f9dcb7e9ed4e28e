package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound indicates that no state file exists for the requested key.
var ErrNotFound = errors.New("state not found")

// statePerm is the permission of cache directories.
const statePerm = 0o755

// SaveState writes state to dir/basename+extension. The file is written to a
// temporary name first and renamed, so readers never see a partial file.
func SaveState(dir, basename string, codec Codec, state any) error {
	err := os.MkdirAll(dir, statePerm)
	if err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, basename+".*.tmp")
	if err != nil {
		return fmt.Errorf("create state file: %w", err)
	}

	encodeErr := codec.Encode(tmp, state)
	closeErr := tmp.Close()

	if err := errors.Join(encodeErr, closeErr); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("encode state: %w", err)
	}

	renameErr := os.Rename(tmp.Name(), StatePath(dir, basename, codec))
	if renameErr != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("rename state file: %w", renameErr)
	}

	return nil
}

// LoadState decodes dir/basename+extension into state, which must be a pointer.
// A missing file yields ErrNotFound.
func LoadState(dir, basename string, codec Codec, state any) error {
	file, err := os.Open(StatePath(dir, basename, codec))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", basename, ErrNotFound)
	}

	if err != nil {
		return fmt.Errorf("open state file: %w", err)
	}
	defer file.Close()

	err = codec.Decode(file, state)
	if err != nil {
		return fmt.Errorf("decode state: %w", err)
	}

	return nil
}

// StatePath returns the file a state of basename is stored in.
func StatePath(dir, basename string, codec Codec) string {
	return filepath.Join(dir, basename+codec.Extension())
}

// Persister stores values of one type under a key-derived file name.
type Persister[T any] struct {
	prefix string
	codec  Codec
}

// NewPersister creates a persister whose files are named prefix-key.
func NewPersister[T any](prefix string, codec Codec) *Persister[T] {
	return &Persister[T]{
		prefix: prefix,
		codec:  codec,
	}
}

func (p *Persister[T]) basename(key string) string {
	return p.prefix + "-" + key
}

// Save writes state for key into dir.
func (p *Persister[T]) Save(dir, key string, state *T) error {
	return SaveState(dir, p.basename(key), p.codec, state)
}

// Load reads the state for key from dir.
func (p *Persister[T]) Load(dir, key string) (*T, error) {
	var state T

	err := LoadState(dir, p.basename(key), p.codec, &state)
	if err != nil {
		return nil, err
	}

	return &state, nil
}

// Path returns the file the state for key is stored in.
func (p *Persister[T]) Path(dir, key string) string {
	return StatePath(dir, p.basename(key), p.codec)
}
