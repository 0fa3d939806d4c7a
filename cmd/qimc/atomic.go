package main

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// atomicWriteFile writes data to path by first writing to a uniquely
// named temp file in the same directory, then renaming it into place,
// so a crash or interrupted write never leaves a half-written output.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+uuid.New().String()+".tmp")

	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
