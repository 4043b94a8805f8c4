package services_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leftsolutions/transactions_processor/internal/apperrors"
	"github.com/leftsolutions/transactions_processor/internal/core/domain"
	portsrepo "github.com/leftsolutions/transactions_processor/internal/core/ports/repositories"
	portssvc "github.com/leftsolutions/transactions_processor/internal/core/ports/services"
	"github.com/leftsolutions/transactions_processor/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ImportJobSvcFacade ---
type MockImportJobSvc struct {
	mock.Mock
}

var _ portssvc.ImportJobSvcFacade = (*MockImportJobSvc)(nil)

func (m *MockImportJobSvc) MarkProcessing(ctx context.Context, workspaceID string, period domain.Period) error {
	args := m.Called(ctx, workspaceID, period)
	return args.Error(0)
}

func (m *MockImportJobSvc) MarkCompleted(ctx context.Context, workspaceID string, period domain.Period, importedRows, rejectedRows int, errors []string) error {
	args := m.Called(ctx, workspaceID, period, importedRows, rejectedRows, errors)
	return args.Error(0)
}

func (m *MockImportJobSvc) MarkFailed(ctx context.Context, workspaceID string, period domain.Period, errorMessage string) error {
	args := m.Called(ctx, workspaceID, period, errorMessage)
	return args.Error(0)
}

func (m *MockImportJobSvc) GetStatus(ctx context.Context, workspaceID string, period domain.Period) (domain.ImportJob, error) {
	args := m.Called(ctx, workspaceID, period)
	return args.Get(0).(domain.ImportJob), args.Error(1)
}

func (m *MockImportJobSvc) IsCompleted(ctx context.Context, workspaceID string, period domain.Period) (bool, error) {
	args := m.Called(ctx, workspaceID, period)
	return args.Bool(0), args.Error(1)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepository = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) ReplaceMonthlyTransactions(ctx context.Context, records []domain.Transaction, completedJob domain.ImportJob) error {
	args := m.Called(ctx, records, completedJob)
	return args.Error(0)
}

// --- Test Suite Setup ---
type TransactionImportServiceTestSuite struct {
	suite.Suite
	mockJobSvc  *MockImportJobSvc
	mockTxnRepo *MockTransactionRepository
	service     portssvc.TransactionImportSvcFacade
	workspaceID string
	period      domain.Period
}

func (suite *TransactionImportServiceTestSuite) SetupTest() {
	suite.mockJobSvc = new(MockImportJobSvc)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewTransactionImportService(suite.mockJobSvc, suite.mockTxnRepo)
	suite.workspaceID = "ws-1"
	suite.period = domain.Period{Year: 2024, Month: 3}
}

const importCSV = "iban,date,currency,category,amount\n" +
	"PL61109010140000071219812874,2024-03-05,PLN,groceries,-52.30\n" +
	"INVALID,2024-03-06,PLN,groceries,20.00\n" +
	"DE89370400440532013000,2024-03-10,EUR,salary,4500.00\n"

func (suite *TransactionImportServiceTestSuite) TestImportMonthly_Success() {
	ctx := context.Background()

	suite.mockJobSvc.On("MarkProcessing", ctx, suite.workspaceID, suite.period).Return(nil).Once()

	var capturedRecords []domain.Transaction
	var capturedJob domain.ImportJob
	suite.mockTxnRepo.On("ReplaceMonthlyTransactions", ctx, mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("domain.ImportJob")).
		Run(func(args mock.Arguments) {
			capturedRecords = args.Get(1).([]domain.Transaction)
			capturedJob = args.Get(2).(domain.ImportJob)
		}).Return(nil).Once()

	final := domain.NewProcessingImportJob(suite.workspaceID, suite.period).
		MarkCompleted(2, 1, []string{"Line 3: invalid IBAN format"})
	suite.mockJobSvc.On("GetStatus", ctx, suite.workspaceID, suite.period).Return(final, nil).Once()

	job, err := suite.service.ImportMonthly(ctx, suite.workspaceID, suite.period, strings.NewReader(importCSV))

	suite.Require().NoError(err)
	suite.Equal(domain.ImportJobWithWarning, job.State)

	suite.Len(capturedRecords, 2)
	suite.Equal(domain.ImportJobWithWarning, capturedJob.State)
	suite.Equal(2, capturedJob.ImportedRows)
	suite.Equal(1, capturedJob.RejectedRows)
	suite.Equal([]string{"Line 3: invalid IBAN format"}, capturedJob.Errors)

	suite.mockJobSvc.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionImportServiceTestSuite) TestImportMonthly_EmptyBatchCompletes() {
	ctx := context.Background()

	suite.mockJobSvc.On("MarkProcessing", ctx, suite.workspaceID, suite.period).Return(nil).Once()

	var capturedRecords []domain.Transaction
	var capturedJob domain.ImportJob
	suite.mockTxnRepo.On("ReplaceMonthlyTransactions", ctx, mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("domain.ImportJob")).
		Run(func(args mock.Arguments) {
			capturedRecords = args.Get(1).([]domain.Transaction)
			capturedJob = args.Get(2).(domain.ImportJob)
		}).Return(nil).Once()

	final := domain.NewProcessingImportJob(suite.workspaceID, suite.period).MarkCompleted(0, 0, nil)
	suite.mockJobSvc.On("GetStatus", ctx, suite.workspaceID, suite.period).Return(final, nil).Once()

	_, err := suite.service.ImportMonthly(ctx, suite.workspaceID, suite.period,
		strings.NewReader("iban,date,currency,category,amount\n"))

	suite.Require().NoError(err)
	suite.Empty(capturedRecords)
	suite.Equal(domain.ImportJobCompleted, capturedJob.State)
	suite.Zero(capturedJob.ImportedRows)
	suite.Zero(capturedJob.RejectedRows)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionImportServiceTestSuite) TestImportMonthly_AlreadyProcessing() {
	ctx := context.Background()

	suite.mockJobSvc.On("MarkProcessing", ctx, suite.workspaceID, suite.period).
		Return(apperrors.ErrAlreadyProcessing).Once()

	_, err := suite.service.ImportMonthly(ctx, suite.workspaceID, suite.period, strings.NewReader(importCSV))

	suite.Require().ErrorIs(err, apperrors.ErrAlreadyProcessing)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ReplaceMonthlyTransactions", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJobSvc.AssertExpectations(suite.T())
}

func (suite *TransactionImportServiceTestSuite) TestImportMonthly_BadHeaderFailsJob() {
	ctx := context.Background()

	suite.mockJobSvc.On("MarkProcessing", ctx, suite.workspaceID, suite.period).Return(nil).Once()
	suite.mockJobSvc.On("MarkFailed", ctx, suite.workspaceID, suite.period, "Missing or wrong header: amount").
		Return(nil).Once()

	_, err := suite.service.ImportMonthly(ctx, suite.workspaceID, suite.period,
		strings.NewReader("iban,date,currency,category\n"))

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ReplaceMonthlyTransactions", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJobSvc.AssertExpectations(suite.T())
}

func (suite *TransactionImportServiceTestSuite) TestImportMonthly_ReplaceFailureMarksFailed() {
	ctx := context.Background()
	repoErr := apperrors.NewAppError(http.StatusInternalServerError, "connection reset", nil)

	suite.mockJobSvc.On("MarkProcessing", ctx, suite.workspaceID, suite.period).Return(nil).Once()
	suite.mockTxnRepo.On("ReplaceMonthlyTransactions", ctx, mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("domain.ImportJob")).
		Return(repoErr).Once()
	suite.mockJobSvc.On("MarkFailed", ctx, suite.workspaceID, suite.period, mock.AnythingOfType("string")).
		Return(nil).Once()

	_, err := suite.service.ImportMonthly(ctx, suite.workspaceID, suite.period, strings.NewReader(importCSV))

	suite.Require().Error(err)
	suite.mockJobSvc.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionImportServiceTestSuite) TestImportMonthly_ErrorListCappedCountsExact() {
	ctx := context.Background()
	svc := services.NewTransactionImportService(suite.mockJobSvc, suite.mockTxnRepo,
		services.WithMaxStoredErrors(2))

	input := "iban,date,currency,category,amount\n" +
		"BAD1,2024-03-01,PLN,a,1\n" +
		"BAD2,2024-03-02,PLN,b,2\n" +
		"BAD3,2024-03-03,PLN,c,3\n" +
		"BAD4,2024-03-04,PLN,d,4\n"

	suite.mockJobSvc.On("MarkProcessing", ctx, suite.workspaceID, suite.period).Return(nil).Once()

	var capturedJob domain.ImportJob
	suite.mockTxnRepo.On("ReplaceMonthlyTransactions", ctx, mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("domain.ImportJob")).
		Run(func(args mock.Arguments) {
			capturedJob = args.Get(2).(domain.ImportJob)
		}).Return(nil).Once()
	suite.mockJobSvc.On("GetStatus", ctx, suite.workspaceID, suite.period).
		Return(domain.ImportJob{}, nil).Once()

	_, err := svc.ImportMonthly(ctx, suite.workspaceID, suite.period, strings.NewReader(input))

	suite.Require().NoError(err)
	suite.Equal(4, capturedJob.RejectedRows)
	suite.Len(capturedJob.Errors, 2)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionImportServiceTestSuite) writeTempCSV(content string) string {
	suite.T().Helper()
	path := filepath.Join(suite.T().TempDir(), "upload.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (suite *TransactionImportServiceTestSuite) TestImportMonthlyAsync_ProcessesInBackground() {
	ctx := context.Background()
	csvPath := suite.writeTempCSV(importCSV)

	suite.mockJobSvc.On("MarkProcessing", ctx, suite.workspaceID, suite.period).Return(nil).Once()

	started := domain.NewProcessingImportJob(suite.workspaceID, suite.period)
	suite.mockJobSvc.On("GetStatus", ctx, suite.workspaceID, suite.period).Return(started, nil).Once()

	done := make(chan domain.ImportJob, 1)
	suite.mockTxnRepo.On("ReplaceMonthlyTransactions", mock.Anything, mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("domain.ImportJob")).
		Run(func(args mock.Arguments) {
			done <- args.Get(2).(domain.ImportJob)
		}).Return(nil).Once()

	job, err := suite.service.ImportMonthlyAsync(ctx, suite.workspaceID, suite.period, csvPath)

	suite.Require().NoError(err)
	suite.Equal(domain.ImportJobProcessing, job.State)

	select {
	case committed := <-done:
		suite.Equal(domain.ImportJobWithWarning, committed.State)
		suite.Equal(2, committed.ImportedRows)
		suite.Equal(1, committed.RejectedRows)
	case <-time.After(5 * time.Second):
		suite.FailNow("background import did not run")
	}

	// The spooled upload is deleted once the background import finishes.
	suite.Eventually(func() bool {
		_, statErr := os.Stat(csvPath)
		return os.IsNotExist(statErr)
	}, 5*time.Second, 10*time.Millisecond)

	suite.mockJobSvc.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionImportServiceTestSuite) TestImportMonthlyAsync_AlreadyProcessingDeletesUpload() {
	ctx := context.Background()
	csvPath := suite.writeTempCSV(importCSV)

	suite.mockJobSvc.On("MarkProcessing", ctx, suite.workspaceID, suite.period).
		Return(apperrors.ErrAlreadyProcessing).Once()

	_, err := suite.service.ImportMonthlyAsync(ctx, suite.workspaceID, suite.period, csvPath)

	suite.Require().ErrorIs(err, apperrors.ErrAlreadyProcessing)
	_, statErr := os.Stat(csvPath)
	suite.True(os.IsNotExist(statErr))
	suite.mockJobSvc.AssertExpectations(suite.T())
}

func (suite *TransactionImportServiceTestSuite) TestImportMonthlyAsync_QueueFull() {
	ctx := context.Background()
	svc := services.NewTransactionImportService(suite.mockJobSvc, suite.mockTxnRepo,
		services.WithWorkerPool(1, 1))

	periodA := domain.Period{Year: 2024, Month: 1}
	periodB := domain.Period{Year: 2024, Month: 2}
	periodC := domain.Period{Year: 2024, Month: 3}

	suite.mockJobSvc.On("MarkProcessing", ctx, suite.workspaceID, mock.AnythingOfType("domain.Period")).
		Return(nil).Times(3)
	suite.mockJobSvc.On("GetStatus", ctx, suite.workspaceID, mock.AnythingOfType("domain.Period")).
		Return(domain.ImportJob{State: domain.ImportJobProcessing}, nil).Twice()

	// The single worker blocks inside the first import until released, the
	// second task fills the queue, so the third must be rejected.
	workerBusy := make(chan struct{}, 1)
	release := make(chan struct{})
	suite.mockTxnRepo.On("ReplaceMonthlyTransactions", mock.Anything, mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("domain.ImportJob")).
		Run(func(args mock.Arguments) {
			select {
			case workerBusy <- struct{}{}:
			default:
			}
			<-release
		}).Return(nil)

	_, err := svc.ImportMonthlyAsync(ctx, suite.workspaceID, periodA, suite.writeTempCSV(importCSV))
	suite.Require().NoError(err)

	select {
	case <-workerBusy:
	case <-time.After(5 * time.Second):
		suite.FailNow("worker never picked up the first task")
	}

	_, err = svc.ImportMonthlyAsync(ctx, suite.workspaceID, periodB, suite.writeTempCSV(importCSV))
	suite.Require().NoError(err)

	rejectedPath := suite.writeTempCSV(importCSV)
	suite.mockJobSvc.On("MarkFailed", ctx, suite.workspaceID, periodC, "import queue full").
		Return(nil).Once()

	_, err = svc.ImportMonthlyAsync(ctx, suite.workspaceID, periodC, rejectedPath)

	suite.Require().Error(err)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(http.StatusServiceUnavailable, appErr.Code)

	_, statErr := os.Stat(rejectedPath)
	suite.True(os.IsNotExist(statErr))

	close(release)
	suite.mockJobSvc.AssertExpectations(suite.T())
}

func TestTransactionImportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionImportServiceTestSuite))
}
