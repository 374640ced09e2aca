package generator

// Config drives the sample-data generator.
type Config struct {
	NumCustomers  int
	NumOperations int
	PremiumChance float64
	Seed          int64
}

// DefaultConfig returns baseline settings producing a small, readable
// dataset.
func DefaultConfig() Config {
	return Config{
		NumCustomers:  5,
		NumOperations: 40,
		PremiumChance: 0.3,
		Seed:          42,
	}
}
