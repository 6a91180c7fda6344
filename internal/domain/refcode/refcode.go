// Package refcode reglas puras de los códigos de referencia de clientes y de
// los consecutivos derivados de ellos. Sin acceso a datos: la unicidad dentro
// de la empresa la garantizan el asignador y el constraint de la base.
package refcode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/office-pro/internal/domain"
)

// Formato canónico: 1 a 3 letras mayúsculas seguidas de 1 o más dígitos.
// El sufijo 0 se reserva (los sondeos empiezan en 1).
var codePattern = regexp.MustCompile(`^[A-Z]{1,3}[1-9][0-9]*$`)

// FallbackPrefix prefijo cuando el nombre no aporta ninguna letra usable.
const FallbackPrefix = "CL"

// identifierDigits ancho del consecutivo con ceros a la izquierda ("BS1" -> "BS1000001").
const identifierDigits = 6

// Normalize deja el código en su forma canónica: sin espacios y en mayúsculas.
// "bs1" y "BS1" son el mismo código.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Validate verifica el formato canónico sobre un código ya normalizado.
func Validate(code string) error {
	if !codePattern.MatchString(code) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidCodeFormat, code)
	}
	return nil
}

// foldASCII descompone acentos y descarta las marcas (NFD + quitar Mn),
// dejando solo letras ASCII en mayúsculas. "Muñoz" -> "MUNOZ".
func foldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(folded) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// DerivePrefix deriva el prefijo de letras a partir del nombre del cliente.
// Se prefiere la razón social si existe. Regla canónica: iniciales de las
// primeras palabras significativas (máximo 3); con una sola palabra se toman
// sus dos primeras letras. "Bob Smith" -> "BS", "Muñoz e Hijos SA" -> "MEH".
func DerivePrefix(name, companyName string) string {
	source := strings.TrimSpace(companyName)
	if source == "" {
		source = strings.TrimSpace(name)
	}
	words := strings.Fields(foldASCII(source))
	var b strings.Builder
	for _, w := range words {
		if b.Len() == 3 {
			break
		}
		b.WriteByte(w[0])
	}
	prefix := b.String()
	if len(prefix) < 2 && len(words) > 0 {
		w := words[0]
		if len(w) >= 2 {
			prefix = w[:2]
		}
	}
	if prefix == "" {
		prefix = FallbackPrefix
	}
	return prefix
}

// Format arma el código candidato prefijo+sufijo que prueba el asignador.
func Format(prefix string, suffix int) string {
	return prefix + strconv.Itoa(suffix)
}

// Identifier deriva el consecutivo emitido: prefijo (el código del cliente)
// más el valor del contador con ceros a la izquierda.
func Identifier(prefix string, value int64) string {
	return fmt.Sprintf("%s%0*d", prefix, identifierDigits, value)
}
