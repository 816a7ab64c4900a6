package runlog

import (
	"fmt"
	"os"
)

// ReadFile reads the whole file at path, closes it, then decodes it. Open and read
// failures are returned as *IOError; decode failures keep their type behind the path.
func ReadFile(path string, opts Options) (*Run, error) {
	//nolint:gosec // G304: the path is supplied by the user on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	run, err := Decode(data, opts)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return run, nil
}

// WriteFile encodes run in layout and writes it to path.
func WriteFile(path string, run *Run, layout Layout) error {
	data, err := Encode(run, layout)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
