package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"microlend/internal/model"
)

// BorrowerRepository defines borrower persistence operations.
type BorrowerRepository interface {
	Create(ctx context.Context, borrower *model.Borrower) error
	CreateBatch(ctx context.Context, borrowers []model.Borrower) error
	Update(ctx context.Context, borrower *model.Borrower) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Borrower, error)
	List(ctx context.Context) ([]model.Borrower, error)
	Count(ctx context.Context) (int64, error)
	TotalLoanAmount(ctx context.Context) (decimal.Decimal, error)
}

type borrowerRepository struct {
	db *gorm.DB
}

// NewBorrowerRepository builds a GORM-backed repository.
func NewBorrowerRepository(db *gorm.DB) BorrowerRepository {
	return &borrowerRepository{db: db}
}

func (r *borrowerRepository) Create(ctx context.Context, borrower *model.Borrower) error {
	return r.db.WithContext(ctx).Create(borrower).Error
}

func (r *borrowerRepository) CreateBatch(ctx context.Context, borrowers []model.Borrower) error {
	return r.db.WithContext(ctx).Create(&borrowers).Error
}

func (r *borrowerRepository) Update(ctx context.Context, borrower *model.Borrower) error {
	return r.db.WithContext(ctx).Save(borrower).Error
}

// Delete removes the row permanently; the model carries no gorm.DeletedAt,
// so this is a hard delete.
func (r *borrowerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Borrower{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *borrowerRepository) FindByID(ctx context.Context, id uint) (*model.Borrower, error) {
	var borrower model.Borrower
	if err := r.db.WithContext(ctx).First(&borrower, id).Error; err != nil {
		return nil, err
	}
	return &borrower, nil
}

func (r *borrowerRepository) List(ctx context.Context) ([]model.Borrower, error) {
	var borrowers []model.Borrower
	if err := r.db.WithContext(ctx).Find(&borrowers).Error; err != nil {
		return nil, err
	}
	return borrowers, nil
}

func (r *borrowerRepository) TotalLoanAmount(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&model.Borrower{}).
		Select("COALESCE(SUM(loan_amount), 0)").Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *borrowerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Borrower{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
