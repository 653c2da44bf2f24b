// Package inventory reglas puras del inventario (sin IO).
package inventory

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyNumber el valor está vacío o solo tiene espacios.
	ErrEmptyNumber = errors.New("número vacío")
	// ErrMalformedNumber el valor no se pudo interpretar como número.
	ErrMalformedNumber = errors.New("número inválido")
)

// ParseNumber interpreta un número escrito con separadores locales.
//
//	"1.234,56" -> 1234.56  (punto de miles, coma decimal)
//	"2,5"      -> 2.5
//	"10.5"     -> 10.5
//	"10"       -> 10
//
// Si aparecen ambos separadores, la coma debe ir después del último punto;
// "1,234.56" se rechaza porque es ambiguo.
func ParseNumber(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ErrEmptyNumber
	}
	dot := strings.LastIndex(s, ".")
	comma := strings.Index(s, ",")
	if strings.Count(s, ",") > 1 {
		return decimal.Zero, ErrMalformedNumber
	}
	switch {
	case dot >= 0 && comma >= 0:
		if dot > comma {
			return decimal.Zero, ErrMalformedNumber
		}
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, ErrMalformedNumber
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrMalformedNumber
	}
	return d, nil
}

// ParseQuantity como ParseNumber pero exige un valor estrictamente positivo.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	d, err := ParseNumber(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrMalformedNumber
	}
	return d, nil
}

// ParseID interpreta un identificador entero positivo ("7", "7.0", " 7 ").
func ParseID(raw string) (int64, error) {
	d, err := ParseNumber(raw)
	if err != nil {
		return 0, err
	}
	if !d.IsPositive() || !d.Equal(d.Truncate(0)) || d.GreaterThan(decimal.NewFromInt(1<<62)) {
		return 0, ErrMalformedNumber
	}
	return d.IntPart(), nil
}
