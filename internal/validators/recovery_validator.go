package validators

import (
	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/internal/utils"
)

// ValidateRecoverySubmission checks the owner's recovery form. Returns a
// field -> message map, nil when valid.
func ValidateRecoverySubmission(sub *models.RecoverySubmission) map[string]string {
	if details := ValidateStruct(sub); details != nil {
		return details
	}

	details := make(map[string]string)

	if !utils.IsValidName(sub.OwnerName) {
		details["owner_name"] = "must be a plausible person name"
	}
	if !utils.IsValidPhone(utils.NormalizePhone(sub.OwnerPhone)) {
		details["owner_phone"] = "must be a valid phone number"
	}
	if sub.CountryCode != "" && len(sub.CountryCode) != 2 {
		details["country_code"] = "must be a two-letter country code"
	}
	if sub.PromoCode != "" && !utils.IsValidPromoCodeFormat(utils.CanonicalPromoCode(sub.PromoCode)) {
		details["promo_code"] = "must be 4-16 letters or digits"
	}

	if len(details) == 0 {
		return nil
	}
	return details
}
