package retail

import (
	"regexp"
	"strings"

	"github.com/mmynk/mealcart/internal/packsize"
	"github.com/mmynk/mealcart/internal/units"
)

// SoldBy is the basis a retailer sells a product on.
type SoldBy string

const (
	// SoldByUnit means the product is bought as discrete packages.
	SoldByUnit SoldBy = "UNIT"
	// SoldByWeight means the product is billed by scale weight.
	SoldByWeight SoldBy = "WEIGHT"
)

// ParseSoldBy normalizes a raw sale basis field. Values other than UNIT and
// WEIGHT are returned upper-cased so callers can flag them.
func ParseSoldBy(raw string) SoldBy {
	return SoldBy(strings.ToUpper(strings.TrimSpace(raw)))
}

// Valid reports whether s is one of the known sale bases.
func (s SoldBy) Valid() bool {
	return s == SoldByUnit || s == SoldByWeight
}

var countMarkerRe = regexp.MustCompile(`\b(ct|each)\b`)

// weighedCategories are category fragments whose products are commonly sold
// loose by the pound.
var weighedCategories = []string{"produce", "meat", "seafood"}

// InferSoldBy decides whether a product is sold by unit or by weight.
//
// The retailer's declared basis wins when it is UNIT or WEIGHT. Otherwise a
// count marker in the size means UNIT. Produce, meat and seafood with a plain
// pound size are WEIGHT; everything else, composite packs included, is UNIT.
func InferSoldBy(apiSoldBy, size string, categories []string) SoldBy {
	if declared := ParseSoldBy(apiSoldBy); declared.Valid() {
		return declared
	}

	if countMarkerRe.MatchString(strings.ToLower(size)) {
		return SoldByUnit
	}

	if isWeighedCategory(categories) {
		parsed := packsize.Parse(size)
		if parsed.OK && !parsed.Composite &&
			parsed.Dimension == packsize.DimensionWeight && parsed.Measure == units.Pound {
			return SoldByWeight
		}
	}

	return SoldByUnit
}

func isWeighedCategory(categories []string) bool {
	for _, c := range categories {
		lc := strings.ToLower(c)
		for _, frag := range weighedCategories {
			if strings.Contains(lc, frag) {
				return true
			}
		}
	}
	return false
}
