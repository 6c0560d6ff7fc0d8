// Package normalize centraliza la normalización de texto libre que llega del
// origen de datos: nombres de prepagas, planes y asesores se cargan a mano y
// vienen con mayúsculas, tildes y espacios inconsistentes ("Prevención Salud",
// "prevencion salud ", "PREVENCIÓN").
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// quitaTildes descompone (NFD), elimina marcas diacríticas y recompone (NFC).
var quitaTildes = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold devuelve el texto en minúsculas, sin tildes y sin espacios en los
// extremos. Es la forma canónica para comparaciones por substring
// (detección de prepaga, señales PASS, etc.).
func Fold(s string) string {
	clean, _, err := transform.String(quitaTildes, s)
	if err != nil {
		// Entrada no normalizable: degradar a lower/trim sin quitar tildes.
		clean = s
	}
	return strings.ToLower(strings.TrimSpace(clean))
}

// Key colapsa además los espacios internos. Se usa como clave de agrupación
// para nombres de asesor ("Juan  Pérez" y "juan perez" son la misma persona).
func Key(s string) string {
	return strings.Join(strings.Fields(Fold(s)), " ")
}

// SameName compara dos nombres ignorando mayúsculas, tildes y espacios.
func SameName(a, b string) bool {
	return Key(a) == Key(b)
}
