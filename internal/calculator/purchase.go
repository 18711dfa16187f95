package calculator

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/mmynk/mealcart/internal/models"
	"github.com/mmynk/mealcart/internal/packsize"
	"github.com/mmynk/mealcart/internal/retail"
	"github.com/mmynk/mealcart/internal/units"
)

// Status is the outcome of resolving one requirement against one product.
type Status int

const (
	// Resolved means Quantity packs cover the requirement.
	Resolved Status = iota
	// NeedsReview means no quantity could be computed; the user must pick one.
	NeedsReview
	// Skipped means the product's sale basis was not understood.
	Skipped
)

// String returns a short status label.
func (s Status) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case NeedsReview:
		return "needs_review"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Resolution is the purchase quantity for one requirement. Quantity is 0
// whenever Status is not Resolved.
type Resolution struct {
	Quantity int
	Status   Status
	Reason   string
}

// maxPacks bounds a resolved quantity; anything larger is a data error.
var maxPacks = decimal.NewFromInt(math.MaxInt32)

func resolved(q decimal.Decimal) Resolution {
	if q.GreaterThan(maxPacks) {
		return needsReview("quantity %s is too large", q)
	}
	return Resolution{Quantity: int(q.IntPart()), Status: Resolved}
}

func needsReview(format string, args ...any) Resolution {
	return Resolution{Status: NeedsReview, Reason: fmt.Sprintf(format, args...)}
}

// Pack is what the resolver needs to know about a retail product.
type Pack struct {
	SoldBy retail.SoldBy
	Size   packsize.Parsed

	// UnitOfMeasure is the product's raw unit-of-measure field, tried when
	// Size is unusable.
	UnitOfMeasure string
}

// PackOf describes a retail product for the resolver.
func PackOf(p *retail.Product) Pack {
	return Pack{
		SoldBy:        p.SaleBasis(),
		Size:          packsize.Parse(p.Size),
		UnitOfMeasure: p.UnitOfMeasure,
	}
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDensity enables volume/weight bridging through the given density table
// when a requirement and its product disagree on dimension.
func WithDensity(t *units.DensityTable) Option {
	return func(r *Resolver) {
		r.densities = t
	}
}

// Resolver computes how many retail packs cover a requirement.
// The zero value resolves same-dimension requirements only.
type Resolver struct {
	densities *units.DensityTable
}

// NewResolver creates a Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// quotientPlaces bounds the precision of pack ratios before rounding up, so
// that conversion factors with repeating decimals do not add a spurious pack.
const quotientPlaces = 9

var gramsPerPound = decimal.RequireFromString("453.59237")

// Resolve returns the number of packs of pack needed to cover req.
// Every computed quantity is rounded up.
func (r *Resolver) Resolve(req models.Requirement, pack Pack) Resolution {
	if !pack.SoldBy.Valid() {
		return Resolution{Status: Skipped, Reason: fmt.Sprintf("unexpected sold-by value %q", pack.SoldBy)}
	}
	if !req.Quantity.IsPositive() {
		return needsReview("no quantity to purchase")
	}

	if pack.SoldBy == retail.SoldByWeight {
		return r.resolveWeight(req)
	}
	return r.resolveUnit(req, pack)
}

func (r *Resolver) resolveUnit(req models.Requirement, pack Pack) Resolution {
	switch req.Dimension {
	case units.Count:
		return resolveCount(req, pack)
	case units.DimensionUnknown:
		return needsReview("unrecognized unit %q", req.Unit)
	}

	size := usableSize(pack)
	packQty, packUnit, ok := size.PrimaryMeasure()
	if !ok {
		return needsReview("pack size %q is unusable", pack.Size.Raw)
	}
	packBase, ok := units.ToBase(packQty, packUnit)
	if !ok {
		return needsReview("pack unit %q is not convertible", size.Unit)
	}
	if !packBase.IsPositive() {
		return needsReview("pack size %q is zero", size.Raw)
	}

	needBase := req.BaseQuantity
	packDim := units.DimensionOf(packUnit)
	if packDim != req.Dimension {
		bridged, ok := r.bridge(req, packDim)
		if !ok {
			return needsReview("cannot convert %s to %s for %q", req.Dimension, packDim, req.Name)
		}
		needBase = bridged
	}

	return resolved(needBase.Div(packBase).Round(quotientPlaces).Ceil())
}

// resolveCount buys one pack per item needed, or enough packs of a declared
// item count ("12 ct", "8 ct / 22 oz") to cover the items.
func resolveCount(req models.Requirement, pack Pack) Resolution {
	perPack := pack.Size.CountEach
	if !pack.Size.OK || !perPack.Valid || !perPack.Decimal.IsPositive() {
		return resolved(req.Quantity.Ceil())
	}
	return resolved(req.Quantity.Div(perPack.Decimal).Round(quotientPlaces).Ceil())
}

// resolveWeight handles products billed by scale weight. Weight requirements
// are requested in pounds; counts and unrecognized units pass through as a
// plain number of weight-priced units.
func (r *Resolver) resolveWeight(req models.Requirement) Resolution {
	switch req.Dimension {
	case units.Count, units.DimensionUnknown:
		return resolved(req.Quantity.Ceil())
	case units.Weight:
		pounds := req.BaseQuantity.Div(gramsPerPound)
		return resolved(pounds.Round(quotientPlaces).Ceil())
	}

	grams, ok := r.bridge(req, units.Weight)
	if !ok {
		return needsReview("no density to weigh %s of %q", req.Dimension, req.Name)
	}
	return resolved(grams.Div(gramsPerPound).Round(quotientPlaces).Ceil())
}

// bridge converts the requirement's base quantity into the base unit of dim
// through the ingredient's density.
func (r *Resolver) bridge(req models.Requirement, dim units.Dimension) (decimal.Decimal, bool) {
	if r.densities == nil {
		return decimal.Zero, false
	}
	density, ok := r.densities.DensityOf(req.Name)
	if !ok {
		return decimal.Zero, false
	}
	switch {
	case req.Dimension == units.Volume && dim == units.Weight:
		return units.VolumeToWeight(req.BaseQuantity, density)
	case req.Dimension == units.Weight && dim == units.Volume:
		return units.WeightToVolume(req.BaseQuantity, density)
	default:
		return decimal.Zero, false
	}
}

// usableSize returns the parsed pack size, falling back to the raw
// unit-of-measure field. A bare unit ("LB") there means one of that unit.
func usableSize(pack Pack) packsize.Parsed {
	if pack.Size.OK || pack.UnitOfMeasure == "" {
		return pack.Size
	}
	if fallback := packsize.Parse(pack.UnitOfMeasure); fallback.OK {
		return fallback
	}
	if fallback := packsize.Parse("1 " + pack.UnitOfMeasure); fallback.OK {
		return fallback
	}
	return pack.Size
}
