package payroll

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hrpay/internal/employee"
	payrollerrors "go-hrpay/internal/payroll/errors"
	"go-hrpay/internal/payslip"
	paysliperrors "go-hrpay/internal/payslip/errors"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

type fakeRepo struct {
	Repository
	period  *PayrollPeriod
	overlap bool
	created *PayrollPeriod
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, p *PayrollPeriod) error {
	f.created = p
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*PayrollPeriod, error) {
	cp := *f.period
	return &cp, nil
}

func (f *fakeRepo) HasOverlappingPeriod(ctx context.Context, start, end time.Time) (bool, error) {
	return f.overlap, nil
}

func (f *fakeRepo) LockPeriod(ctx context.Context, id string) (string, error) {
	if f.period == nil {
		return "", sql.ErrNoRows
	}
	return f.period.Status, nil
}

func (f *fakeRepo) Update(ctx context.Context, p *PayrollPeriod) error {
	cp := *p
	f.period = &cp
	return nil
}

type fakeEmployeeRepo struct {
	employee.Repository
	active []employee.Employee
}

func (f *fakeEmployeeRepo) FindAllActive(ctx context.Context) ([]employee.Employee, error) {
	return f.active, nil
}

type fakePayslipRepo struct {
	payslip.Repository
	payslips []payslip.Payslip
}

func (f *fakePayslipRepo) FindByPeriod(ctx context.Context, periodID string) ([]payslip.Payslip, error) {
	return f.payslips, nil
}

type fakePayslipService struct {
	payslip.Service
	createDraftFn func(ctx context.Context, employeeID, periodID uuid.UUID, baseSalary decimal.Decimal, periodStart time.Time) (*payslip.Payslip, error)
}

func (f *fakePayslipService) CreateDraft(ctx context.Context, employeeID, periodID uuid.UUID, baseSalary decimal.Decimal, periodStart time.Time) (*payslip.Payslip, error) {
	return f.createDraftFn(ctx, employeeID, periodID, baseSalary, periodStart)
}

func draftPeriod() *PayrollPeriod {
	return &PayrollPeriod{
		ID:        uuid.New(),
		Name:      "March 2025",
		StartDate: day(2025, time.March, 1),
		EndDate:   day(2025, time.March, 31),
		PayDate:   day(2025, time.April, 1),
		Frequency: FrequencyMonthly,
		Status:    StatusDraft,
	}
}

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestCreatePeriod(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeRepo{}
	svc := NewService(db, repo, &fakeEmployeeRepo{}, &fakePayslipRepo{}, &fakePayslipService{})

	resp, err := svc.Create(context.Background(), CreatePeriodRequest{
		Name:      "March 2025",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		PayDate:   "2025-04-01",
		Frequency: FrequencyMonthly,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, resp.Status)
	require.NotNil(t, repo.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePeriod_RejectsOverlap(t *testing.T) {
	db, _ := newTestDB(t)

	svc := NewService(db, &fakeRepo{overlap: true}, &fakeEmployeeRepo{}, &fakePayslipRepo{}, &fakePayslipService{})

	_, err := svc.Create(context.Background(), CreatePeriodRequest{
		Name:      "March 2025",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		PayDate:   "2025-04-01",
		Frequency: FrequencyMonthly,
	})
	assert.ErrorIs(t, err, payrollerrors.ErrOverlappingPeriod)
}

func TestProcess_CreatesDraftPayslips(t *testing.T) {
	db, mock := newTestDB(t)
	// Two transitions: DRAFT -> PROCESSING, PROCESSING -> PROCESSED.
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeRepo{period: draftPeriod()}
	empRepo := &fakeEmployeeRepo{active: []employee.Employee{
		{ID: uuid.New(), BaseSalary: d("25000")},
		{ID: uuid.New(), BaseSalary: d("18000")},
	}}
	payslipSvc := &fakePayslipService{
		createDraftFn: func(ctx context.Context, employeeID, periodID uuid.UUID, baseSalary decimal.Decimal, periodStart time.Time) (*payslip.Payslip, error) {
			return &payslip.Payslip{ID: uuid.New()}, nil
		},
	}

	svc := NewService(db, repo, empRepo, &fakePayslipRepo{}, payslipSvc)

	resp, err := svc.Process(context.Background(), repo.period.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.PayslipsCreated)
	assert.Equal(t, 0, resp.EmployeesFailed)
	assert.Equal(t, StatusProcessed, resp.Period.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcess_SecondRunCreatesNothing(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	period := draftPeriod()
	period.Status = StatusProcessed
	repo := &fakeRepo{period: period}
	empRepo := &fakeEmployeeRepo{active: []employee.Employee{
		{ID: uuid.New(), BaseSalary: d("25000")},
	}}
	payslipSvc := &fakePayslipService{
		createDraftFn: func(ctx context.Context, employeeID, periodID uuid.UUID, baseSalary decimal.Decimal, periodStart time.Time) (*payslip.Payslip, error) {
			return nil, paysliperrors.ErrPayslipAlreadyExists
		},
	}

	svc := NewService(db, repo, empRepo, &fakePayslipRepo{}, payslipSvc)

	resp, err := svc.Process(context.Background(), period.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.PayslipsCreated)
	assert.Equal(t, 0, resp.EmployeesFailed)
	assert.Equal(t, StatusProcessed, resp.Period.Status)
}

func TestProcess_PerEmployeeFailureDoesNotAbort(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeRepo{period: draftPeriod()}
	broken := uuid.New()
	empRepo := &fakeEmployeeRepo{active: []employee.Employee{
		{ID: broken, BaseSalary: d("0")},
		{ID: uuid.New(), BaseSalary: d("18000")},
	}}
	payslipSvc := &fakePayslipService{
		createDraftFn: func(ctx context.Context, employeeID, periodID uuid.UUID, baseSalary decimal.Decimal, periodStart time.Time) (*payslip.Payslip, error) {
			if employeeID == broken {
				return nil, paysliperrors.ErrInvalidBaseSalary
			}
			return &payslip.Payslip{ID: uuid.New()}, nil
		},
	}

	svc := NewService(db, repo, empRepo, &fakePayslipRepo{}, payslipSvc)

	resp, err := svc.Process(context.Background(), repo.period.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.PayslipsCreated)
	assert.Equal(t, 1, resp.EmployeesFailed)
	assert.Equal(t, StatusProcessed, resp.Period.Status)
}

func TestProcess_RejectsProcessingPeriod(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	period := draftPeriod()
	period.Status = StatusProcessing
	repo := &fakeRepo{period: period}

	svc := NewService(db, repo, &fakeEmployeeRepo{}, &fakePayslipRepo{}, &fakePayslipService{})

	_, err := svc.Process(context.Background(), period.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
}

func TestFinalize_RequiresAllApproved(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	period := draftPeriod()
	period.Status = StatusProcessed
	repo := &fakeRepo{period: period}
	payslipRepo := &fakePayslipRepo{payslips: []payslip.Payslip{
		{Status: payslip.StatusApproved, GrossSalary: d("26704.55"), NetSalary: d("26154.55")},
		{Status: payslip.StatusCalculated},
	}}

	svc := NewService(db, repo, &fakeEmployeeRepo{}, payslipRepo, &fakePayslipService{})

	_, err := svc.Finalize(context.Background(), period.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrUnapprovedPayslips)
}

func TestFinalize_RefreshesTotals(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	period := draftPeriod()
	period.Status = StatusProcessed
	repo := &fakeRepo{period: period}
	payslipRepo := &fakePayslipRepo{payslips: []payslip.Payslip{
		{
			Status:          payslip.StatusApproved,
			GrossSalary:     d("26704.55"),
			NetSalary:       d("26154.55"),
			TaxAmount:       d("550"),
			TotalDeductions: d("0"),
		},
		{
			Status:          payslip.StatusApproved,
			GrossSalary:     d("18000"),
			NetSalary:       d("16500"),
			TaxAmount:       d("1200"),
			TotalDeductions: d("300"),
		},
		{Status: payslip.StatusCancelled, GrossSalary: d("99999")},
	}}

	svc := NewService(db, repo, &fakeEmployeeRepo{}, payslipRepo, &fakePayslipService{})

	resp, err := svc.Finalize(context.Background(), period.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusFinalized, resp.Status)
	assert.Equal(t, "44704.55", resp.TotalGross)
	assert.Equal(t, "42654.55", resp.TotalNet)
	assert.Equal(t, "1750.00", resp.TotalTax)
	assert.Equal(t, "300.00", resp.TotalDeductions)
	// The cancelled payslip contributes nothing, including to the count.
	assert.Equal(t, 2, resp.PayslipCount)
}

func TestCancel_RejectedFromFinalized(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	period := draftPeriod()
	period.Status = StatusFinalized
	repo := &fakeRepo{period: period}

	svc := NewService(db, repo, &fakeEmployeeRepo{}, &fakePayslipRepo{}, &fakePayslipService{})

	_, err := svc.Cancel(context.Background(), period.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
}
