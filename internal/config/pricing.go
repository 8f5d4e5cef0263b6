package config

// CountryFee is one row of the static country -> recovery fee table.
type CountryFee struct {
	BaseFee  float64 `yaml:"base_fee"`
	Currency string  `yaml:"currency"`
	Symbol   string  `yaml:"symbol"`
}

type PricingConfig struct {
	// Fees maps ISO 3166-1 alpha-2 country codes to the base recovery fee.
	Fees map[string]CountryFee `yaml:"fees"`
	// DefaultCountry is the fail-open fallback when a country is unrecognized.
	DefaultCountry string `yaml:"default_country"`
	// PromoDiscount is the fixed amount subtracted when a valid code is applied.
	PromoDiscount float64 `yaml:"promo_discount"`
	// ReporterReward is owed to the finder once the admin confirms payment.
	ReporterReward float64 `yaml:"reporter_reward"`
	// PromoOwnerReward is owed to the code owner when their code was used.
	PromoOwnerReward float64 `yaml:"promo_owner_reward"`
}

func loadPricingConfig() *PricingConfig {
	return &PricingConfig{
		Fees: map[string]CountryFee{
			"SN": {BaseFee: 7000, Currency: "XOF", Symbol: "FCFA"},
			"CI": {BaseFee: 7000, Currency: "XOF", Symbol: "FCFA"},
			"ML": {BaseFee: 7000, Currency: "XOF", Symbol: "FCFA"},
			"BF": {BaseFee: 7000, Currency: "XOF", Symbol: "FCFA"},
			"TG": {BaseFee: 7000, Currency: "XOF", Symbol: "FCFA"},
			"BJ": {BaseFee: 7000, Currency: "XOF", Symbol: "FCFA"},
			"NE": {BaseFee: 7000, Currency: "XOF", Symbol: "FCFA"},
			"GN": {BaseFee: 95000, Currency: "GNF", Symbol: "FG"},
			"CM": {BaseFee: 9000, Currency: "XAF", Symbol: "FCFA"},
			"GA": {BaseFee: 9000, Currency: "XAF", Symbol: "FCFA"},
			"MA": {BaseFee: 150, Currency: "MAD", Symbol: "DH"},
			"FR": {BaseFee: 15, Currency: "EUR", Symbol: "€"},
		},
		DefaultCountry:   getEnv("PRICING_DEFAULT_COUNTRY", "SN"),
		PromoDiscount:    getEnvAsFloat64("PRICING_PROMO_DISCOUNT", 1000),
		ReporterReward:   getEnvAsFloat64("PRICING_REPORTER_REWARD", 2000),
		PromoOwnerReward: getEnvAsFloat64("PRICING_PROMO_OWNER_REWARD", 1000),
	}
}
