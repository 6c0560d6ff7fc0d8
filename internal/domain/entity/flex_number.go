package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexNumber es un campo numérico tolerante: el origen de datos externo
// entrega montos y capitas a veces como número y a veces como string
// ("150000", " 150000 ", ""). La política es degradación silenciosa:
// un valor ausente o no parseable vale cero, nunca corta el cálculo.
type FlexNumber struct {
	raw string
}

// Flex construye un FlexNumber desde un string crudo.
func Flex(raw string) FlexNumber {
	return FlexNumber{raw: strings.TrimSpace(raw)}
}

// FlexFromDecimal construye un FlexNumber definido desde un decimal.
func FlexFromDecimal(d decimal.Decimal) FlexNumber {
	return FlexNumber{raw: d.String()}
}

// Defined indica si el campo vino con algún valor (aunque no sea parseable).
func (f FlexNumber) Defined() bool { return f.raw != "" }

// Raw devuelve el texto original (para persistir tal cual llegó).
func (f FlexNumber) Raw() string { return f.raw }

// Decimal parsea el valor; ausente o inválido → cero.
func (f FlexNumber) Decimal() decimal.Decimal {
	if f.raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(f.raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Positive indica si el valor parsea a un número estrictamente positivo.
func (f FlexNumber) Positive() bool {
	return f.Decimal().IsPositive()
}

// UnmarshalJSON acepta número JSON, string o null.
func (f *FlexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		f.raw = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		f.raw = strings.TrimSpace(str)
		return nil
	}
	f.raw = s
	return nil
}

// MarshalJSON emite el valor parseado como número, o null si está ausente.
func (f FlexNumber) MarshalJSON() ([]byte, error) {
	if f.raw == "" {
		return []byte("null"), nil
	}
	return []byte(f.Decimal().String()), nil
}

// Scan implementa sql.Scanner: columnas TEXT o NUMERIC indistintamente.
func (f *FlexNumber) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		f.raw = ""
	case string:
		f.raw = strings.TrimSpace(v)
	case []byte:
		f.raw = strings.TrimSpace(string(v))
	case int64:
		f.raw = decimal.NewFromInt(v).String()
	case float64:
		f.raw = decimal.NewFromFloat(v).String()
	default:
		return fmt.Errorf("flexnumber: tipo no soportado %T", src)
	}
	return nil
}
