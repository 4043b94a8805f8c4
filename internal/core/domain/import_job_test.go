package domain_test

import (
	"testing"

	"github.com/leftsolutions/transactions_processor/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcessingImportJob(t *testing.T) {
	period := domain.Period{Year: 2024, Month: 3}
	job := domain.NewProcessingImportJob("ws-1", period)

	assert.NotEmpty(t, job.JobID)
	assert.Equal(t, "ws-1", job.WorkspaceID)
	assert.Equal(t, period, job.Period)
	assert.Equal(t, domain.ImportJobProcessing, job.State)
	assert.Zero(t, job.ImportedRows)
	assert.Zero(t, job.RejectedRows)
	assert.Empty(t, job.Errors)
	assert.False(t, job.UpdatedAt.IsZero())
}

func TestImportJob_MarkCompleted(t *testing.T) {
	tests := []struct {
		name         string
		importedRows int
		rejectedRows int
		errors       []string
		wantState    domain.ImportJobState
	}{
		{
			name:         "all rows imported",
			importedRows: 10,
			rejectedRows: 0,
			errors:       nil,
			wantState:    domain.ImportJobCompleted,
		},
		{
			name:         "some rows rejected",
			importedRows: 8,
			rejectedRows: 2,
			errors:       []string{"Line 3: invalid IBAN format", "Line 7: amount must be non-zero"},
			wantState:    domain.ImportJobWithWarning,
		},
		{
			name:         "empty batch",
			importedRows: 0,
			rejectedRows: 0,
			errors:       nil,
			wantState:    domain.ImportJobCompleted,
		},
		{
			name:         "every row rejected",
			importedRows: 0,
			rejectedRows: 5,
			errors:       []string{"Line 2: invalid record format"},
			wantState:    domain.ImportJobWithWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := domain.NewProcessingImportJob("ws-1", domain.Period{Year: 2024, Month: 3}).
				MarkCompleted(tt.importedRows, tt.rejectedRows, tt.errors)

			assert.Equal(t, tt.wantState, job.State)
			assert.Equal(t, tt.importedRows, job.ImportedRows)
			assert.Equal(t, tt.rejectedRows, job.RejectedRows)
			require.NotNil(t, job.Errors)
			assert.Equal(t, len(tt.errors), len(job.Errors))
		})
	}
}

func TestImportJob_MarkFailed_PreservesCounts(t *testing.T) {
	job := domain.NewProcessingImportJob("ws-1", domain.Period{Year: 2024, Month: 3}).
		MarkCompleted(7, 3, []string{"Line 2: invalid IBAN format"})

	failed := job.MarkFailed("database unavailable")

	assert.Equal(t, domain.ImportJobFailed, failed.State)
	assert.Equal(t, 7, failed.ImportedRows)
	assert.Equal(t, 3, failed.RejectedRows)
	assert.Equal(t, []string{"database unavailable"}, failed.Errors)
}

func TestImportJob_MarkProcessing_ClearsErrorsKeepsCounts(t *testing.T) {
	job := domain.NewProcessingImportJob("ws-1", domain.Period{Year: 2024, Month: 3}).
		MarkCompleted(7, 3, []string{"Line 2: invalid IBAN format"})

	restarted := job.MarkProcessing()

	assert.Equal(t, domain.ImportJobProcessing, restarted.State)
	assert.Empty(t, restarted.Errors)
	assert.Equal(t, 7, restarted.ImportedRows)
	assert.Equal(t, 3, restarted.RejectedRows)
}

func TestImportJob_IsCompleted(t *testing.T) {
	tests := []struct {
		state domain.ImportJobState
		want  bool
	}{
		{domain.ImportJobProcessing, false},
		{domain.ImportJobCompleted, true},
		{domain.ImportJobWithWarning, true},
		{domain.ImportJobFailed, false},
		{domain.ImportJobNotFound, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			job := domain.ImportJob{State: tt.state}
			assert.Equal(t, tt.want, job.IsCompleted())
		})
	}
}
