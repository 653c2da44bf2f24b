// Package storage guarda las imágenes de productos en un sistema de archivos (afero).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jhoicas/taller-inventario/internal/application/usecase"
)

var _ usecase.ImageStore = (*ImageStore)(nil)

// ErrInvalidName nombre de archivo con separadores o vacío.
var ErrInvalidName = errors.New("storage: nombre de archivo inválido")

// ImageStore archivos planos dentro de un directorio.
type ImageStore struct {
	fs  afero.Fs
	dir string
}

// NewImageStore crea el directorio si no existe. En producción fs es afero.NewOsFs().
func NewImageStore(fsys afero.Fs, dir string) (*ImageStore, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de imágenes: %w", err)
	}
	return &ImageStore{fs: fsys, dir: dir}, nil
}

// Dir directorio raíz (para servirlo como estático).
func (s *ImageStore) Dir() string { return s.dir }

func (s *ImageStore) Save(_ context.Context, name string, r io.Reader) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := afero.WriteReader(s.fs, p, r); err != nil {
		_ = s.fs.Remove(p)
		return fmt.Errorf("escribir %s: %w", name, err)
	}
	return nil
}

// Remove borra el archivo; que no exista no es error.
func (s *ImageStore) Remove(_ context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar %s: %w", name, err)
	}
	return nil
}

// Exists indica si el archivo está guardado.
func (s *ImageStore) Exists(name string) (bool, error) {
	p, err := s.path(name)
	if err != nil {
		return false, err
	}
	return afero.Exists(s.fs, p)
}

func (s *ImageStore) path(name string) (string, error) {
	if name == "" || filepath.Base(name) != name || name == "." || name == ".." {
		return "", ErrInvalidName
	}
	return filepath.Join(s.dir, name), nil
}
