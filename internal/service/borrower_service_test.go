package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"microlend/internal/errors"
	"microlend/internal/model"
)

// MockBorrowerRepository is a mock implementation of BorrowerRepository.
type MockBorrowerRepository struct {
	mock.Mock
}

func (m *MockBorrowerRepository) Create(ctx context.Context, borrower *model.Borrower) error {
	args := m.Called(ctx, borrower)
	return args.Error(0)
}

func (m *MockBorrowerRepository) CreateBatch(ctx context.Context, borrowers []model.Borrower) error {
	args := m.Called(ctx, borrowers)
	return args.Error(0)
}

func (m *MockBorrowerRepository) Update(ctx context.Context, borrower *model.Borrower) error {
	args := m.Called(ctx, borrower)
	return args.Error(0)
}

func (m *MockBorrowerRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBorrowerRepository) FindByID(ctx context.Context, id uint) (*model.Borrower, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Borrower), args.Error(1)
}

func (m *MockBorrowerRepository) List(ctx context.Context) ([]model.Borrower, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Borrower), args.Error(1)
}

func (m *MockBorrowerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBorrowerRepository) TotalLoanAmount(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func TestBorrowerService_Create(t *testing.T) {
	tests := []struct {
		name          string
		borrowerName  string
		amount        decimal.Decimal
		status        model.BorrowerStatus
		setupMock     func(*MockBorrowerRepository)
		expectedError error
		wantStatus    model.BorrowerStatus
	}{
		{
			name:         "persists submitted fields",
			borrowerName: "Bob",
			amount:       decimal.NewFromInt(750_000),
			status:       model.BorrowerStatusActive,
			setupMock: func(m *MockBorrowerRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Borrower")).Return(nil)
			},
			wantStatus: model.BorrowerStatusActive,
		},
		{
			name:         "empty status defaults to Pending",
			borrowerName: "Atieno",
			amount:       decimal.NewFromInt(500_000),
			status:       "",
			setupMock: func(m *MockBorrowerRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Borrower")).Return(nil)
			},
			wantStatus: model.BorrowerStatusPending,
		},
		{
			name:          "negative amount rejected",
			borrowerName:  "Bob",
			amount:        decimal.NewFromInt(-5),
			status:        model.BorrowerStatusActive,
			setupMock:     func(m *MockBorrowerRepository) {},
			expectedError: errors.ErrInvalidLoanAmount,
		},
		{
			name:          "unknown status rejected",
			borrowerName:  "Bob",
			amount:        decimal.NewFromInt(1000),
			status:        "Frozen",
			setupMock:     func(m *MockBorrowerRepository) {},
			expectedError: errors.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBorrowerRepository)
			tt.setupMock(mockRepo)

			svc := NewBorrowerService(mockRepo, nil)
			borrower, err := svc.Create(context.Background(), tt.borrowerName, tt.amount, tt.status)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, borrower)
				mockRepo.AssertNotCalled(t, "Create")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.borrowerName, borrower.Name)
				assert.True(t, tt.amount.Equal(borrower.LoanAmount))
				assert.Equal(t, tt.wantStatus, borrower.Status)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestBorrowerService_Update_PartialKeepsOtherFields(t *testing.T) {
	existing := &model.Borrower{
		ID:         3,
		Name:       "Wekesa",
		LoanAmount: decimal.NewFromInt(2_000_000),
		Status:     model.BorrowerStatusPending,
	}

	mockRepo := new(MockBorrowerRepository)
	mockRepo.On("FindByID", mock.Anything, uint(3)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Borrower")).Return(nil)

	svc := NewBorrowerService(mockRepo, nil)
	status := model.BorrowerStatusDefaulted
	updated, err := svc.Update(context.Background(), 3, BorrowerUpdate{Status: &status})

	assert.NoError(t, err)
	assert.Equal(t, "Wekesa", updated.Name)
	assert.True(t, decimal.NewFromInt(2_000_000).Equal(updated.LoanAmount))
	assert.Equal(t, model.BorrowerStatusDefaulted, updated.Status)
	mockRepo.AssertExpectations(t)
}

func TestBorrowerService_Update_Validation(t *testing.T) {
	existing := &model.Borrower{ID: 3, Name: "Wekesa", LoanAmount: decimal.NewFromInt(100), Status: model.BorrowerStatusActive}

	t.Run("negative amount rejected", func(t *testing.T) {
		mockRepo := new(MockBorrowerRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(existing, nil)

		svc := NewBorrowerService(mockRepo, nil)
		negative := decimal.NewFromInt(-1)
		_, err := svc.Update(context.Background(), 3, BorrowerUpdate{LoanAmount: &negative})

		assert.Equal(t, errors.ErrInvalidLoanAmount, err)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("missing id", func(t *testing.T) {
		mockRepo := new(MockBorrowerRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewBorrowerService(mockRepo, nil)
		name := "Nobody"
		_, err := svc.Update(context.Background(), 99, BorrowerUpdate{Name: &name})

		assert.Equal(t, errors.ErrBorrowerNotFound, err)
	})
}

func TestBorrowerService_DeleteThenGet(t *testing.T) {
	mockRepo := new(MockBorrowerRepository)
	mockRepo.On("Delete", mock.Anything, uint(5)).Return(nil).Once()
	mockRepo.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Delete", mock.Anything, uint(5)).Return(gorm.ErrRecordNotFound)

	svc := NewBorrowerService(mockRepo, nil)
	assert.NoError(t, svc.Delete(context.Background(), 5))

	// Every subsequent lookup fails, as does a second delete.
	for i := 0; i < 3; i++ {
		_, err := svc.Get(context.Background(), 5)
		assert.Equal(t, errors.ErrBorrowerNotFound, err)
	}
	assert.Equal(t, errors.ErrBorrowerNotFound, svc.Delete(context.Background(), 5))
}

func TestBorrowerService_Stats(t *testing.T) {
	t.Run("reports count and loan volume", func(t *testing.T) {
		mockRepo := new(MockBorrowerRepository)
		mockRepo.On("Count", mock.Anything).Return(int64(12), nil)
		mockRepo.On("TotalLoanAmount", mock.Anything).Return(decimal.NewFromInt(34_500_000), nil)

		svc := NewBorrowerService(mockRepo, nil)
		count, total, err := svc.Stats(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(12), count)
		assert.True(t, decimal.NewFromInt(34_500_000).Equal(total))
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty table totals to zero", func(t *testing.T) {
		mockRepo := new(MockBorrowerRepository)
		mockRepo.On("Count", mock.Anything).Return(int64(0), nil)
		mockRepo.On("TotalLoanAmount", mock.Anything).Return(decimal.Zero, nil)

		svc := NewBorrowerService(mockRepo, nil)
		count, total, err := svc.Stats(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
		assert.True(t, total.IsZero())
	})
}

func TestBorrowerService_Seed(t *testing.T) {
	t.Run("no-op at or above target", func(t *testing.T) {
		for _, count := range []int64{20, 25, 100} {
			mockRepo := new(MockBorrowerRepository)
			mockRepo.On("Count", mock.Anything).Return(count, nil)

			svc := NewBorrowerService(mockRepo, nil)
			inserted, err := svc.Seed(context.Background())

			assert.NoError(t, err)
			assert.Equal(t, 0, inserted)
			mockRepo.AssertNotCalled(t, "CreateBatch")
		}
	})

	t.Run("sparse table gets exactly 20 valid rows", func(t *testing.T) {
		var captured []model.Borrower
		mockRepo := new(MockBorrowerRepository)
		mockRepo.On("Count", mock.Anything).Return(int64(3), nil)
		mockRepo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]model.Borrower")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).([]model.Borrower)
			}).Return(nil)

		svc := NewBorrowerService(mockRepo, nil)
		inserted, err := svc.Seed(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 20, inserted)
		assert.Len(t, captured, 20)

		min := decimal.NewFromInt(seedMinAmount)
		max := decimal.NewFromInt(seedMaxAmount)
		for _, b := range captured {
			assert.NotEmpty(t, b.Name)
			assert.True(t, model.ValidStatus(b.Status))
			assert.True(t, b.LoanAmount.GreaterThanOrEqual(min))
			assert.True(t, b.LoanAmount.LessThanOrEqual(max))
		}
		mockRepo.AssertExpectations(t)
	})
}
