// Package status persiste el registro de estado de migración en un archivo
// JSON al lado del store. Va fuera de la base para que sobreviva intacto a
// cualquier rollback de la transacción de migración.
package status

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tu-usuario/caja-pro/internal/application/migration"
)

// FileStore implementa migration.StatusStore sobre un archivo JSON.
type FileStore struct {
	path string
}

// NewFileStore crea el store en la ruta dada; el archivo se crea en el
// primer Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

var _ migration.StatusStore = (*FileStore)(nil)

func (s *FileStore) Load() (migration.Status, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return migration.DefaultStatus(), nil
	}
	if err != nil {
		return migration.Status{}, fmt.Errorf("leer estado de migración: %w", err)
	}
	var st migration.Status
	if err := json.Unmarshal(data, &st); err != nil {
		return migration.Status{}, fmt.Errorf("decodificar estado de migración: %w", err)
	}
	return st, nil
}

// Save escribe a un archivo temporal y renombra: el registro nunca queda a
// medio escribir aunque el proceso muera.
func (s *FileStore) Save(st migration.Status) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar estado de migración: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio de estado: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".status-*.json")
	if err != nil {
		return fmt.Errorf("crear archivo temporal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("escribir estado de migración: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cerrar archivo temporal: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publicar estado de migración: %w", err)
	}
	return nil
}
