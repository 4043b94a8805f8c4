package mapping

import (
	"github.com/leftsolutions/transactions_processor/internal/core/domain"
	"github.com/leftsolutions/transactions_processor/internal/models"
)

// ToModelImportJob converts a domain ImportJob to a model ImportJob
func ToModelImportJob(d domain.ImportJob) models.ImportJob {
	errs := d.Errors
	if errs == nil {
		errs = []string{}
	}
	return models.ImportJob{
		JobID:        d.JobID,
		WorkspaceID:  d.WorkspaceID,
		Year:         d.Period.Year,
		Month:        d.Period.Month,
		State:        models.ImportJobState(d.State),
		ImportedRows: d.ImportedRows,
		RejectedRows: d.RejectedRows,
		Errors:       errs,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDomainImportJob converts a model ImportJob to a domain ImportJob
func ToDomainImportJob(m models.ImportJob) domain.ImportJob {
	errs := m.Errors
	if errs == nil {
		errs = []string{}
	}
	return domain.ImportJob{
		JobID:        m.JobID,
		WorkspaceID:  m.WorkspaceID,
		Period:       domain.Period{Year: m.Year, Month: m.Month},
		State:        domain.ImportJobState(m.State),
		ImportedRows: m.ImportedRows,
		RejectedRows: m.RejectedRows,
		Errors:       errs,
		UpdatedAt:    m.UpdatedAt,
	}
}
