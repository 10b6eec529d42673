package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/customer-registry/internal/models"
)

var customerRowColumns = []string{
	"id", "first_name", "last_name", "email", "age", "phone", "website", "date_of_birth",
	"salary", "password_hash", "credit_card_number", "customer_type", "terms_accepted", "created_at",
}

func newMockRepository(t *testing.T) (CustomerRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewCustomerRepository(db), mock
}

func TestCustomerRepository_Create(t *testing.T) {
	createdAt := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mockErr error
		wantErr error
	}{
		{name: "inserted", mockErr: nil, wantErr: nil},
		{name: "duplicate email", mockErr: &pq.Error{Code: "23505"}, wantErr: models.ErrConflict},
		{name: "database failure", mockErr: errors.New("connection reset"), wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			customer := newCustomer("a@x.com")

			expect := mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers")).
				WithArgs("Jane", "Doe", "a@x.com", 30, "", "", sqlmock.AnyArg(), sqlmock.AnyArg(),
					"", "", "Regular", true)
			if tt.mockErr != nil {
				expect.WillReturnError(tt.mockErr)
			} else {
				expect.WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, createdAt))
			}

			err := repo.Create(context.Background(), customer)

			switch {
			case tt.mockErr == nil:
				require.NoError(t, err)
				assert.Equal(t, int64(7), customer.ID)
				assert.Equal(t, createdAt, customer.CreatedAt)
			case tt.wantErr != nil:
				assert.True(t, errors.Is(err, tt.wantErr))
			default:
				require.Error(t, err)
				assert.False(t, errors.Is(err, models.ErrConflict))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCustomerRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		dob := time.Date(1990, time.May, 4, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows(customerRowColumns).AddRow(
			1, "Jane", "Doe", "a@x.com", 34, "+254712345678", "", dob,
			1500.5, "hash", "4111111111111111", "VIP", true, time.Now(),
		)
		mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE id = $1")).WithArgs(int64(1)).WillReturnRows(rows)

		customer, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Jane", customer.FirstName)
		assert.Equal(t, models.CustomerTypeVIP, customer.CustomerType)
		require.NotNil(t, customer.DateOfBirth)
		assert.Equal(t, "1990-05-04", customer.DateOfBirth.String())
		require.NotNil(t, customer.Salary)
		assert.Equal(t, 1500.5, *customer.Salary)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE id = $1")).WithArgs(int64(5)).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 5)
		assert.True(t, errors.Is(err, models.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCustomerRepository_List(t *testing.T) {
	repo, mock := newMockRepository(t)

	rows := sqlmock.NewRows(customerRowColumns).
		AddRow(1, "Jane", "Doe", "a@x.com", 30, "", "", nil, nil, "hash", "", "Regular", true, time.Now()).
		AddRow(2, "John", "Roe", "b@x.com", 40, "", "", nil, nil, "hash", "", "Premium", true, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id ASC")).WillReturnRows(rows)

	customers, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, int64(1), customers[0].ID)
	assert.Nil(t, customers[0].DateOfBirth)
	assert.Nil(t, customers[0].Salary)
	assert.Equal(t, models.CustomerTypePremium, customers[1].CustomerType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_Update(t *testing.T) {
	changes := models.CustomerChanges{FirstName: "Bob", LastName: "Smith", Email: "A@X.COM"}

	t.Run("duplicate email", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE customers")).
			WithArgs("Bob", "Smith", "A@X.COM", int64(2)).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Update(context.Background(), 2, changes)
		assert.True(t, errors.Is(err, models.ErrConflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE customers")).
			WithArgs("Bob", "Smith", "A@X.COM", int64(9)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(context.Background(), 9, changes)
		assert.True(t, errors.Is(err, models.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updated", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		rows := sqlmock.NewRows(customerRowColumns).
			AddRow(2, "Bob", "Smith", "A@X.COM", 30, "+254712345678", "", nil, nil, "hash", "", "Regular", true, time.Now())
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE customers")).
			WithArgs("Bob", "Smith", "A@X.COM", int64(2)).
			WillReturnRows(rows)

		customer, err := repo.Update(context.Background(), 2, changes)
		require.NoError(t, err)
		assert.Equal(t, "Bob", customer.FirstName)
		assert.Equal(t, "+254712345678", customer.Phone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCustomerRepository_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM customers WHERE id = $1")).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM customers WHERE id = $1")).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.True(t, errors.Is(repo.Delete(context.Background(), 1), models.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
