// Package ticker maps instrument symbols to their market data category.
package ticker

import "strings"

// Category is an instrument category of the data912 live feed.
type Category string

const (
	CategoryCEDEAR Category = "cedear" // Argentine depositary receipts
	CategoryStock  Category = "stock"  // local stocks
	CategoryBond   Category = "bond"   // sovereign bonds
	CategoryCorp   Category = "corp"   // corporate bonds (ONs)
	CategoryNote   Category = "note"   // government notes
	CategoryFCI    Category = "fci"    // local investment funds, no external feed
)

// Retrievable reports whether instruments of this category can be priced
// from the external feed. FCI funds have no externally quoted price and
// must never trigger a network fetch.
func (c Category) Retrievable() bool {
	return c != CategoryFCI
}

// FixedUnit reports whether the category holds fixed-unit instruments:
// quantity is always exactly one lump-sum unit rather than a share count,
// so positions are not marked to market against a per-unit quote.
func (c Category) FixedUnit() bool {
	return c == CategoryBond || c == CategoryFCI
}

// categoryMap is the static ticker classification table.
var categoryMap = map[string]Category{
	// CEDEARs - Equities Growth
	"AMZND": CategoryCEDEAR,
	"MSFTD": CategoryCEDEAR,
	"JPMD":  CategoryCEDEAR,
	"XLFD":  CategoryCEDEAR,
	"GSD":   CategoryCEDEAR,

	// CEDEARs - Equities Value/Defensivos
	"UNHD":  CategoryCEDEAR,
	"XLVD":  CategoryCEDEAR,
	"CATD":  CategoryCEDEAR,
	"PFED":  CategoryCEDEAR,
	"BIIBD": CategoryCEDEAR,
	"MMMD":  CategoryCEDEAR,
	"DIAD":  CategoryCEDEAR,
	"JNJD":  CategoryCEDEAR,

	// Acciones locales
	"YPFDD": CategoryStock,
	"PAMPD": CategoryStock,
	"TXARD": CategoryStock,

	// Obligaciones Negociables
	"YM39D": CategoryCorp,
	"YMCID": CategoryCorp,

	// Soberanos
	"GD30D": CategoryBond,
	"GD35D": CategoryBond,

	// FCI - not available via the feed
	"CICLO NOVA II CLASE A": CategoryFCI,
}

// Normalize returns the canonical form of a ticker used for both
// classification and feed symbol matching.
func Normalize(ticker string) string {
	return strings.ToUpper(ticker)
}

// Classify returns the category for a ticker. The second return is false
// for unknown tickers, which callers must treat as non-fatal: the asset
// is simply never priced.
func Classify(t string) (Category, bool) {
	c, ok := categoryMap[Normalize(t)]
	return c, ok
}

// IsRetrievable reports whether the ticker can be priced from the
// external feed at all.
func IsRetrievable(t string) bool {
	c, ok := Classify(t)
	return ok && c.Retrievable()
}
