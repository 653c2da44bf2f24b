package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Cantidades y montos viajan como números JSON, no como strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Envelope respuesta exitosa compatible con los clientes existentes: {"ok":true,"datos":...}.
type Envelope struct {
	OK   bool `json:"ok"`
	Data any  `json:"datos,omitempty"`
}

// OK envuelve datos en una respuesta exitosa.
func OK(data any) Envelope {
	return Envelope{OK: true, Data: data}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Code    string `json:"code"`
	Message string `json:"error"`
	ItemID  *int64 `json:"item_id,omitempty"`
}

// FlexNumber número recibido como JSON number o como string ("1.234,56").
// Guarda el texto; la interpretación la hace inventory.ParseNumber.
type FlexNumber string

// UnmarshalJSON acepta null, string o número.
func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*n = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = FlexNumber(s)
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("número inválido: %s", b)
	}
	*n = FlexNumber(d.String())
	return nil
}

// String texto tal como llegó.
func (n FlexNumber) String() string { return string(n) }
