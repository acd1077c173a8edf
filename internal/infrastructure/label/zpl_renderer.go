// Package label contiene los adaptadores de impresión de etiquetas ZPL.
package label

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Trazabilidad-api/internal/application/labels"
)

// ZPLRenderer sustituye marcadores {campo} en la plantilla.
// Los valores se pliegan a ASCII: las fuentes residentes de Zebra no traen acentos.
type ZPLRenderer struct{}

func NewZPLRenderer() *ZPLRenderer { return &ZPLRenderer{} }

var _ labels.ZPLRenderer = (*ZPLRenderer)(nil)

// Render devuelve el ZPL final con ^PQ<copies> antes del ^XZ de cierre.
func (r *ZPLRenderer) Render(template string, d labels.LabelData, copies int) string {
	replacer := strings.NewReplacer(
		"{batch_number}", zplValue(d.BatchNumber),
		"{product_name}", zplValue(d.ProductName),
		"{product_sku}", zplValue(d.ProductSKU),
		"{company_name}", zplValue(d.CompanyName),
		"{company_document}", zplValue(d.CompanyDocument),
		"{quantity}", zplValue(d.Quantity),
		"{unit}", zplValue(d.Unit),
		"{production_date}", d.ProductionDate,
		"{expiration_date}", d.ExpirationDate,
		"{barcode}", zplValue(d.Barcode),
		"{qr_code}", zplValue(d.QRCodeData),
	)
	return withCopies(replacer.Replace(template), copies)
}

// withCopies fija la cantidad de copias reemplazando cualquier ^PQ previo.
func withCopies(zpl string, copies int) string {
	copies = max(copies, 1)
	zpl = stripPQ(zpl)
	pq := "^PQ" + strconv.Itoa(copies)
	end := strings.LastIndex(zpl, "^XZ")
	if end < 0 {
		return zpl + pq + "^XZ"
	}
	return zpl[:end] + pq + zpl[end:]
}

// stripPQ elimina comandos ^PQ existentes (hasta el siguiente ^ o ~).
func stripPQ(zpl string) string {
	for {
		i := strings.Index(zpl, "^PQ")
		if i < 0 {
			return zpl
		}
		j := strings.IndexAny(zpl[i+3:], "^~")
		if j < 0 {
			return zpl[:i]
		}
		zpl = zpl[:i] + zpl[i+3+j:]
	}
}

var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// zplValue pliega a ASCII y neutraliza los prefijos de comando dentro del dato.
func zplValue(s string) string {
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r == '^' || r == '~':
			b.WriteByte(' ')
		case r > unicode.MaxASCII:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
