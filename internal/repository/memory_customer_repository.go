package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Raymond9734/customer-registry/internal/models"
)

// memoryCustomerRepository keeps customers in insertion order behind a
// single lock. ID assignment, the email uniqueness check and the write
// happen inside one critical section.
type memoryCustomerRepository struct {
	mu        sync.RWMutex
	customers []*models.Customer
	nextID    int64
	now       func() time.Time
}

// NewMemoryCustomerRepository creates an empty in-memory customer repository
func NewMemoryCustomerRepository() CustomerRepository {
	return &memoryCustomerRepository{
		nextID: 1,
		now:    time.Now,
	}
}

// Create stores a copy of customer and assigns the next ID
func (r *memoryCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(customer.Email, 0) {
		return models.ErrDuplicateEmail(customer.Email)
	}

	customer.ID = r.nextID
	customer.CreatedAt = r.now().UTC()
	r.nextID++

	r.customers = append(r.customers, customer.Clone())
	return nil
}

// GetByID retrieves a customer by ID
func (r *memoryCustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, models.ErrCustomerNotFound(id)
	}
	return r.customers[i].Clone(), nil
}

// List returns every customer in insertion order
func (r *memoryCustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]*models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		customers = append(customers, c.Clone())
	}
	return customers, nil
}

// Update overwrites the name and email of an existing customer
func (r *memoryCustomerRepository) Update(ctx context.Context, id int64, changes models.CustomerChanges) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, models.ErrCustomerNotFound(id)
	}
	if r.emailTaken(changes.Email, id) {
		return nil, models.ErrDuplicateEmail(changes.Email)
	}

	stored := r.customers[i]
	stored.FirstName = changes.FirstName
	stored.LastName = changes.LastName
	stored.Email = changes.Email

	return stored.Clone(), nil
}

// Delete removes a customer
func (r *memoryCustomerRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.ErrCustomerNotFound(id)
	}

	last := len(r.customers) - 1
	copy(r.customers[i:], r.customers[i+1:])
	r.customers[last] = nil
	r.customers = r.customers[:last]
	return nil
}

// indexOf finds the position of id. IDs are increasing, so the slice is sorted.
func (r *memoryCustomerRepository) indexOf(id int64) int {
	lo, hi := 0, len(r.customers)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case r.customers[mid].ID == id:
			return mid
		case r.customers[mid].ID < id:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return -1
}

// emailTaken reports whether another customer than exceptID uses email
func (r *memoryCustomerRepository) emailTaken(email string, exceptID int64) bool {
	key := models.NormalizedEmail(email)
	for _, c := range r.customers {
		if c.ID != exceptID && models.NormalizedEmail(c.Email) == key {
			return true
		}
	}
	return false
}
