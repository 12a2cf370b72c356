package listings

import (
	"fmt"
	"strings"

	"freight-exchange/internal/exchangeerrors"

	"github.com/shopspring/decimal"
)

var (
	maxBudget     = decimal.NewFromInt(1_000_000)
	truckRegimes  = map[string]bool{"LTL": true, "FTL": true, "ANY": true}
	palletTypes   = map[string]bool{"europallet": true, "industrialpallet": true, "other": true}
	paymentTerms  = map[string]bool{"1days": true, "14days": true, "30days": true, "60days": true, "90days": true}
	maxTruckTypes = 3
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("service: %w - %s", exchangeerrors.ErrInvalidListing, fmt.Sprintf(format, args...))
}

// Validate checks a listing submission against the board's rules
func Validate(in Input) error {
	f := in.Freight

	for _, place := range []struct{ name, value string }{{"origin", f.Origin}, {"destination", f.Destination}} {
		n := len([]rune(strings.TrimSpace(place.value)))
		if n < 3 || n > 596 {
			return invalid("%s must be 3 to 596 characters", place.name)
		}
	}
	if f.Distance < 0 || f.Distance > 36000 {
		return invalid("distance out of range")
	}
	if len([]rune(f.Details)) > 596 {
		return invalid("details too long")
	}

	if in.Budget != nil && (in.Budget.IsNegative() || in.Budget.GreaterThan(maxBudget)) {
		return invalid("budget must be between 0 and %s", maxBudget)
	}
	if in.Validity != "" && !in.Validity.Valid() {
		return invalid("unknown validity %q", in.Validity)
	}

	if f.PaymentDeadline != "" && !paymentTerms[f.PaymentDeadline] {
		return invalid("unknown payment deadline %q", f.PaymentDeadline)
	}

	if (f.Pallet.Type == "") != (f.Pallet.Number == 0) {
		return invalid("pallet type and number go together")
	}
	if f.Pallet.Type != "" && !palletTypes[f.Pallet.Type] {
		return invalid("unknown pallet type %q", f.Pallet.Type)
	}
	if f.Pallet.Number < 0 || f.Pallet.Number > 17000 {
		return invalid("pallet number out of range")
	}

	if f.Size.Tonnage <= 0 || f.Size.Tonnage > 17000 {
		return invalid("tonnage is required and at most 17000")
	}
	for _, dim := range []float64{f.Size.Volume, f.Size.Height, f.Size.Width, f.Size.Length} {
		if dim < 0 {
			return invalid("negative size")
		}
	}

	if !truckRegimes[f.Truck.Regime] {
		return invalid("truck regime must be LTL, FTL or ANY")
	}
	if len(f.Truck.Types) > maxTruckTypes {
		return invalid("at most %d truck types", maxTruckTypes)
	}
	return nil
}

// ValidRegime reports whether regime is a known truck regime
func ValidRegime(regime string) bool {
	return truckRegimes[regime]
}
