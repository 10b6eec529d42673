package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Raymond9734/customer-registry/internal/models"
)

// CustomerRepository defines the interface for customer data access.
// Create and Update enforce case-insensitive email uniqueness atomically.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	Update(ctx context.Context, id int64, changes models.CustomerChanges) (*models.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation
const uniqueViolation = "23505"

const customerColumns = `id, first_name, last_name, email, age, phone, website, date_of_birth,
		salary, password_hash, credit_card_number, customer_type, terms_accepted, created_at`

// customerRepository implements CustomerRepository using PostgreSQL
type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new PostgreSQL customer repository
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create inserts a new customer
func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (first_name, last_name, email, age, phone, website, date_of_birth,
			salary, password_hash, credit_card_number, customer_type, terms_accepted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.Age,
		customer.Phone,
		customer.Website,
		customer.DateOfBirth,
		customer.Salary,
		customer.PasswordHash,
		customer.CreditCardNumber,
		string(customer.CustomerType),
		customer.TermsAccepted,
	).Scan(&customer.ID, &customer.CreatedAt)

	if isUniqueViolation(err) {
		return models.ErrDuplicateEmail(customer.Email)
	}
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// GetByID retrieves a customer by ID
func (r *customerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrCustomerNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return customer, nil
}

// List retrieves every customer in insertion order
func (r *customerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []*models.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// Update overwrites the name and email of an existing customer
func (r *customerRepository) Update(ctx context.Context, id int64, changes models.CustomerChanges) (*models.Customer, error) {
	query := `
		UPDATE customers
		SET first_name = $1, last_name = $2, email = $3
		WHERE id = $4
		RETURNING ` + customerColumns

	customer, err := scanCustomer(r.db.QueryRowContext(
		ctx,
		query,
		changes.FirstName,
		changes.LastName,
		changes.Email,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrCustomerNotFound(id)
	}
	if isUniqueViolation(err) {
		return nil, models.ErrDuplicateEmail(changes.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}

// Delete removes a customer
func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM customers WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrCustomerNotFound(id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	var (
		customer     models.Customer
		dob          sql.NullTime
		salary       sql.NullFloat64
		customerType string
	)

	err := row.Scan(
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.Email,
		&customer.Age,
		&customer.Phone,
		&customer.Website,
		&dob,
		&salary,
		&customer.PasswordHash,
		&customer.CreditCardNumber,
		&customerType,
		&customer.TermsAccepted,
		&customer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	customer.CustomerType = models.CustomerType(customerType)
	if dob.Valid {
		date := models.DateOf(dob.Time)
		customer.DateOfBirth = &date
	}
	if salary.Valid {
		customer.Salary = &salary.Float64
	}

	return &customer, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
