package validators

import (
	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/internal/utils"
)

// ValidateReportSubmission checks the finder's report form. Returns a
// field -> message map, nil when valid.
func ValidateReportSubmission(sub *models.ReportSubmission) map[string]string {
	if details := ValidateStruct(sub); details != nil {
		return details
	}

	details := make(map[string]string)

	if !models.ValidDocumentType(sub.DocumentType) {
		details["document_type"] = "unsupported document type"
	}
	if sub.ReporterPhone != "" && !utils.IsValidPhone(utils.NormalizePhone(sub.ReporterPhone)) {
		details["reporter_phone"] = "must be a valid phone number"
	}

	if len(details) == 0 {
		return nil
	}
	return details
}
