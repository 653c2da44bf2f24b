// import_items carga un catálogo de productos desde CSV usando las mismas reglas que POST /api/inventario.
//
// Uso: go run ./cmd/import_items [-latin1] [-sep ';'] catalogo.csv
// Columnas reconocidas (encabezado obligatorio): id_producto, nombre_producto, categoria,
// precio_unitario, stock_inicial, stock_minimo, imagen_url. Los productos con id repetido se omiten.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/application/usecase"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/taller-inventario/pkg/config"
	"github.com/jhoicas/taller-inventario/pkg/logger"
)

// itemCreator alta de un producto.
type itemCreator interface {
	Create(ctx context.Context, in dto.SaveItemRequest) (*dto.ItemResponse, error)
}

type importResult struct {
	Created    int
	Duplicates int
	Rejected   int
}

func main() {
	latin1 := flag.Bool("latin1", false, "el archivo viene en ISO-8859-1 (exportado desde Excel)")
	sep := flag.String("sep", ",", "separador de columnas")
	flag.Parse()
	if flag.NArg() != 1 || len(*sep) != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_items [-latin1] [-sep ';'] catalogo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	var r io.Reader = f
	if *latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	db := postgres.NewDB(cfg.DB)
	defer db.Close()
	itemUC := usecase.NewItemUseCase(postgres.NewItemRepository(db), postgres.NewTxRunner(db), nil)

	res, err := importItems(context.Background(), r, rune((*sep)[0]), itemUC, log)
	if err != nil {
		log.Fatal().Err(err).Msg("importar catálogo")
	}
	log.Info().
		Int("creados", res.Created).
		Int("duplicados", res.Duplicates).
		Int("rechazados", res.Rejected).
		Msg("importación terminada")
}

// importItems lee el CSV fila por fila. Una fila inválida o duplicada no detiene la carga;
// un error de base de datos sí.
func importItems(ctx context.Context, r io.Reader, sep rune, items itemCreator, log *logger.Logger) (importResult, error) {
	var res importResult
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return res, fmt.Errorf("leer encabezado: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := cols["nombre_producto"]; !ok {
		return res, fmt.Errorf("falta la columna nombre_producto")
	}

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		line++
		if err != nil {
			return res, fmt.Errorf("línea %d: %w", line, err)
		}
		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		in := dto.SaveItemRequest{
			ID:           dto.FlexNumber(field("id_producto")),
			Name:         field("nombre_producto"),
			Category:     field("categoria"),
			UnitPrice:    dto.FlexNumber(field("precio_unitario")),
			StockOnHand:  dto.FlexNumber(field("stock_inicial")),
			MinimumStock: dto.FlexNumber(field("stock_minimo")),
		}
		if url := field("imagen_url"); url != "" {
			in.ImageURL = &url
		}

		_, err = items.Create(ctx, in)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, domain.ErrDuplicate):
			res.Duplicates++
			log.Warn().Int("linea", line).Str("id", field("id_producto")).Msg("producto ya existe, se omite")
		case errors.Is(err, domain.ErrInvalidInput):
			res.Rejected++
			log.Warn().Int("linea", line).Err(err).Msg("fila inválida, se omite")
		default:
			return res, fmt.Errorf("línea %d: %w", line, err)
		}
	}
}
