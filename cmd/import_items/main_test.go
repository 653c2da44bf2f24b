package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/pkg/logger"
)

type creatorSpy struct {
	got  []dto.SaveItemRequest
	seen map[string]bool
	err  error
}

func (s *creatorSpy) Create(_ context.Context, in dto.SaveItemRequest) (*dto.ItemResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: nombre_producto requerido", domain.ErrInvalidInput)
	}
	if s.seen == nil {
		s.seen = map[string]bool{}
	}
	if id := in.ID.String(); id != "" && s.seen[id] {
		return nil, domain.ErrDuplicate
	}
	s.seen[in.ID.String()] = true
	s.got = append(s.got, in)
	return &dto.ItemResponse{Name: in.Name}, nil
}

func TestImportItems_Conteos(t *testing.T) {
	csvData := "id_producto;nombre_producto;categoria;precio_unitario;stock_inicial\n" +
		"1;Tablero;Madera;1.234,56;10\n" +
		"1;Tablero repetido;Madera;0;0\n" +
		"2;;Madera;0;0\n" +
		";Paral;Madera;5000;3\n"
	spy := &creatorSpy{}

	res, err := importItems(context.Background(), strings.NewReader(csvData), ';', spy, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, importResult{Created: 2, Duplicates: 1, Rejected: 1}, res)
	require.Len(t, spy.got, 2)
	assert.Equal(t, dto.FlexNumber("1.234,56"), spy.got[0].UnitPrice)
	assert.Equal(t, "Paral", spy.got[1].Name)
	assert.Nil(t, spy.got[1].ImageURL)
}

func TestImportItems_Latin1(t *testing.T) {
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, charmap.ISO8859_1.NewEncoder())
	_, err := w.Write([]byte("nombre_producto,categoria\nTornillería,Ferretería\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	spy := &creatorSpy{}
	r := transform.NewReader(&buf, charmap.ISO8859_1.NewDecoder())
	_, err = importItems(context.Background(), r, ',', spy, logger.Nop())
	require.NoError(t, err)

	require.Len(t, spy.got, 1)
	assert.Equal(t, "Tornillería", spy.got[0].Name)
	assert.Equal(t, "Ferretería", spy.got[0].Category)
}

func TestImportItems_SinColumnaNombre(t *testing.T) {
	_, err := importItems(context.Background(), strings.NewReader("id,categoria\n1,x\n"), ',', &creatorSpy{}, logger.Nop())
	assert.Error(t, err)
}

func TestImportItems_ErrorDeBaseCorta(t *testing.T) {
	spy := &creatorSpy{err: errors.New("conexión perdida")}
	res, err := importItems(context.Background(), strings.NewReader("nombre_producto\nTablero\nParal\n"), ',', spy, logger.Nop())

	assert.Error(t, err)
	assert.Equal(t, 0, res.Created)
}
