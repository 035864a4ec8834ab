package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"microlend/internal/cache"
	"microlend/internal/errors"
	"microlend/internal/model"
	"microlend/internal/repository"
)

const (
	borrowerCacheTTL = 5 * time.Minute

	// seedTarget is how many demo rows Seed tops the table up to.
	seedTarget    = 20
	seedMinAmount = 500_000
	seedMaxAmount = 10_000_000
)

// seedNamePools groups demo names the way the original fixture data does;
// Seed picks a pool at random, then a name within it.
var seedNamePools = [][]string{
	{"Wanjiku", "Kamau", "Wairimu", "Muthoni"},
	{"Mutiso", "Mwikali", "Mutua", "Ndinda"},
	{"Muriuki", "Nkatha", "Mutuma", "Karimi"},
	{"Odhiambo", "Atieno", "Ochieng", "Akinyi"},
	{"Wekesa", "Naliaka", "Barasa", "Mukami"},
	{"Abdi", "Farhia", "Hassan", "Amina"},
	{"Nyaboke", "Onsongo", "Kemunto", "Morara"},
	{"Chacha", "Marwa", "Nyamongo", "Mwita"},
	{"Kiptoo", "Chebet", "Kiplagat", "Jepkoech"},
}

var seedStatuses = []model.BorrowerStatus{
	model.BorrowerStatusActive,
	model.BorrowerStatusPending,
	model.BorrowerStatusDefaulted,
}

// BorrowerUpdate carries partial-update fields; nil fields keep their
// prior value.
type BorrowerUpdate struct {
	Name       *string
	LoanAmount *decimal.Decimal
	Status     *model.BorrowerStatus
}

// BorrowerService handles borrower record operations.
type BorrowerService interface {
	List(ctx context.Context) ([]model.Borrower, error)
	Get(ctx context.Context, id uint) (*model.Borrower, error)
	Create(ctx context.Context, name string, loanAmount decimal.Decimal, status model.BorrowerStatus) (*model.Borrower, error)
	Update(ctx context.Context, id uint, update BorrowerUpdate) (*model.Borrower, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (count int64, totalLoans decimal.Decimal, err error)
	Seed(ctx context.Context) (int, error)
}

type borrowerService struct {
	repo  repository.BorrowerRepository
	cache *cache.Client
}

// NewBorrowerService creates a new borrower service.
func NewBorrowerService(repo repository.BorrowerRepository, cache *cache.Client) BorrowerService {
	return &borrowerService{
		repo:  repo,
		cache: cache,
	}
}

func (s *borrowerService) cacheKey(id uint) string {
	return fmt.Sprintf("borrower:%d", id)
}

// List returns all borrowers in store order. Listing is strictly a read;
// demo data comes from Seed, never from here.
func (s *borrowerService) List(ctx context.Context) ([]model.Borrower, error) {
	return s.repo.List(ctx)
}

// Get retrieves a borrower by ID with caching.
func (s *borrowerService) Get(ctx context.Context, id uint) (*model.Borrower, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Borrower
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	borrower, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBorrowerNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(borrower); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, borrowerCacheTTL)
	}

	return borrower, nil
}

// Create validates and persists a new borrower. An empty status defaults
// to Pending.
func (s *borrowerService) Create(ctx context.Context, name string, loanAmount decimal.Decimal, status model.BorrowerStatus) (*model.Borrower, error) {
	if loanAmount.IsNegative() {
		return nil, errors.ErrInvalidLoanAmount
	}
	if status == "" {
		status = model.BorrowerStatusPending
	}
	if !model.ValidStatus(status) {
		return nil, errors.ErrInvalidStatus
	}

	borrower := &model.Borrower{
		Name:       name,
		LoanAmount: loanAmount,
		Status:     status,
	}
	if err := s.repo.Create(ctx, borrower); err != nil {
		return nil, fmt.Errorf("create borrower: %w", err)
	}
	return borrower, nil
}

// Update overwrites only the supplied fields, leaving the rest unchanged.
func (s *borrowerService) Update(ctx context.Context, id uint, update BorrowerUpdate) (*model.Borrower, error) {
	borrower, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBorrowerNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		borrower.Name = *update.Name
	}
	if update.LoanAmount != nil {
		if update.LoanAmount.IsNegative() {
			return nil, errors.ErrInvalidLoanAmount
		}
		borrower.LoanAmount = *update.LoanAmount
	}
	if update.Status != nil {
		if !model.ValidStatus(*update.Status) {
			return nil, errors.ErrInvalidStatus
		}
		borrower.Status = *update.Status
	}

	if err := s.repo.Update(ctx, borrower); err != nil {
		return nil, fmt.Errorf("update borrower %d: %w", id, err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return borrower, nil
}

// Delete removes a borrower permanently.
func (s *borrowerService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrBorrowerNotFound
		}
		return fmt.Errorf("delete borrower %d: %w", id, err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// Stats returns the dashboard aggregates: how many borrowers exist and the
// sum of all their loan amounts.
func (s *borrowerService) Stats(ctx context.Context) (int64, decimal.Decimal, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("count borrowers: %w", err)
	}
	total, err := s.repo.TotalLoanAmount(ctx)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("sum loan amounts: %w", err)
	}
	return count, total, nil
}

// Seed inserts synthetic demo borrowers. It is a no-op once the table holds
// seedTarget or more rows, so repeated invocations never pile up fixtures.
func (s *borrowerService) Seed(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count borrowers: %w", err)
	}
	if count >= seedTarget {
		return 0, nil
	}

	borrowers := make([]model.Borrower, 0, seedTarget)
	for i := 0; i < seedTarget; i++ {
		pool := seedNamePools[rand.Intn(len(seedNamePools))]
		borrowers = append(borrowers, model.Borrower{
			Name:       pool[rand.Intn(len(pool))],
			LoanAmount: decimal.NewFromInt(int64(seedMinAmount + rand.Intn(seedMaxAmount-seedMinAmount+1))),
			Status:     seedStatuses[rand.Intn(len(seedStatuses))],
		})
	}

	if err := s.repo.CreateBatch(ctx, borrowers); err != nil {
		return 0, fmt.Errorf("seed borrowers: %w", err)
	}
	return len(borrowers), nil
}
