package optimization

import (
	"sort"

	"github.com/rxreturns/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PackageLine is one product entry in a proposed shipment package,
// after netting out quantities already committed to open packages.
type PackageLine struct {
	Identifier     string
	ProductName    string
	FullUnits      int
	PartialUnits   int
	PricePerUnit   decimal.Decimal
	EstimatedValue decimal.Decimal
}

// Package is a proposed shipment grouping of recommended lines for one
// distributor. Derived per request; persisting a package is a separate
// commit step owned by the shipping module.
type Package struct {
	DistributorName     string
	Lines               []PackageLine
	TotalItems          int
	TotalEstimatedValue decimal.Decimal
}

// PackageSummary aggregates counters over one package build
type PackageSummary struct {
	ProductsWithPricing    int
	ProductsWithoutPricing int
	DistributorsUsed       int
}

// PackageBuilder groups recommendations into shippable packages
type PackageBuilder struct{}

// NewPackageBuilder creates a package builder
func NewPackageBuilder() *PackageBuilder {
	return &PackageBuilder{}
}

// Build groups recommended lines by distributor, nets each line against
// quantities already committed to the pharmacy's open packages (keyed by
// normalized identifier), and drops exhausted lines and empty groups.
// Packages come back sorted by total estimated value descending.
func (pb *PackageBuilder) Build(recommendations []Recommendation, committed map[string]int) ([]Package, PackageSummary) {
	summary := PackageSummary{}
	groups := make(map[string][]PackageLine)
	order := make([]string, 0)

	for i := range recommendations {
		rec := &recommendations[i]
		if !rec.HasPricing() {
			summary.ProductsWithoutPricing++
			continue
		}
		summary.ProductsWithPricing++

		line, ok := pb.netLine(rec, committed)
		if !ok {
			continue
		}
		if _, exists := groups[rec.RecommendedDistributor]; !exists {
			order = append(order, rec.RecommendedDistributor)
		}
		groups[rec.RecommendedDistributor] = append(groups[rec.RecommendedDistributor], line)
	}

	packages := make([]Package, 0, len(order))
	for _, name := range order {
		lines := groups[name]
		if len(lines) == 0 {
			continue
		}
		pkg := Package{
			DistributorName:     name,
			Lines:               lines,
			TotalEstimatedValue: decimal.Zero,
		}
		for j := range lines {
			pkg.TotalItems += lines[j].FullUnits + lines[j].PartialUnits
			pkg.TotalEstimatedValue = pkg.TotalEstimatedValue.Add(lines[j].EstimatedValue)
		}
		packages = append(packages, pkg)
	}

	sort.SliceStable(packages, func(i, j int) bool {
		if !packages[i].TotalEstimatedValue.Equal(packages[j].TotalEstimatedValue) {
			return packages[i].TotalEstimatedValue.GreaterThan(packages[j].TotalEstimatedValue)
		}
		return packages[i].DistributorName < packages[j].DistributorName
	})

	summary.DistributorsUsed = len(packages)
	return packages, summary
}

// netLine reduces a recommended line by the quantity already committed
// for its identifier. Lines exhausted by open packages are dropped.
// Reduction consumes full units before partial units.
func (pb *PackageBuilder) netLine(rec *Recommendation, committed map[string]int) (PackageLine, bool) {
	already := committed[valueobject.NormalizeNDC(rec.Identifier)]

	fullUnits := rec.FullUnits
	partialUnits := rec.PartialUnits
	if already > 0 {
		if already >= fullUnits {
			already -= fullUnits
			fullUnits = 0
		} else {
			fullUnits -= already
			already = 0
		}
		if already >= partialUnits {
			partialUnits = 0
		} else {
			partialUnits -= already
		}
	}

	quantity := fullUnits + partialUnits
	if quantity <= 0 {
		return PackageLine{}, false
	}

	return PackageLine{
		Identifier:     rec.Identifier,
		ProductName:    rec.ProductName,
		FullUnits:      fullUnits,
		PartialUnits:   partialUnits,
		PricePerUnit:   rec.ExpectedPrice,
		EstimatedValue: rec.ExpectedPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, true
}
