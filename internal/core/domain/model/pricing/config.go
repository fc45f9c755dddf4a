package pricing

// Config holds the base tariff for delivery fee calculation. All amounts are
// integer dinars. The active tariff is stored in the pricing configuration
// table; DefaultConfig is the fallback when none is configured.
type Config struct {
	// BaseFee is the flat pickup fee.
	BaseFee int64
	// PricePerKm is the fee per kilometer of delivery distance.
	PricePerKm int64
	// MinPrice floors the final fee.
	MinPrice int64
	// MaxPrice caps the final fee.
	MaxPrice int64
	// RoundTo is the rounding step applied to the final fee. The fee is
	// rounded up to the next multiple so a 5 km trip on the default tariff
	// stays a clean 250 DA.
	RoundTo int64
}

// DefaultConfig returns the standard tariff: 100 DA base, 30 DA/km,
// clamped to [100, 1500] and rounded up to 10 DA.
func DefaultConfig() Config {
	return Config{
		BaseFee:    100,
		PricePerKm: 30,
		MinPrice:   100,
		MaxPrice:   1500,
		RoundTo:    10,
	}
}
