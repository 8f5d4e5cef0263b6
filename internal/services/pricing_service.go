package services

import (
	"strings"

	"github.com/creat233/idfinder-sub001/internal/config"
	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/pkg/logger"
)

// PricingService is the country -> recovery fee policy. It is a pure lookup:
// same country in, same price out, and it always answers. An unrecognized
// country falls back to the default country's fee rather than failing.
type PricingService interface {
	GetPrice(countryCode string) *models.Price
	DefaultCountry() string
}

type pricingService struct {
	config *config.PricingConfig
	logger *logger.Logger
}

func NewPricingService(cfg *config.PricingConfig, log *logger.Logger) PricingService {
	return &pricingService{
		config: cfg,
		logger: log,
	}
}

func (s *pricingService) GetPrice(countryCode string) *models.Price {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))

	fee, exists := s.config.Fees[countryCode]
	if !exists {
		// Fail-open: an unknown country gets the default country's fee.
		if s.logger != nil && countryCode != "" {
			s.logger.WithField("country", countryCode).Warn("Unknown country, falling back to default recovery fee")
		}
		fee = s.config.Fees[s.config.DefaultCountry]
	}

	return &models.Price{
		BaseFee:        fee.BaseFee,
		Currency:       fee.Currency,
		CurrencySymbol: fee.Symbol,
	}
}

func (s *pricingService) DefaultCountry() string {
	return s.config.DefaultCountry
}
