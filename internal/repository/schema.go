package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// customerSchema creates the customers table. The expression index on
// lower(email) is what makes email uniqueness case-insensitive.
const customerSchema = `
CREATE TABLE IF NOT EXISTS customers (
	id                 BIGSERIAL PRIMARY KEY,
	first_name         VARCHAR(20)  NOT NULL,
	last_name          VARCHAR(10)  NOT NULL,
	email              VARCHAR(100) NOT NULL,
	age                INTEGER      NOT NULL,
	phone              VARCHAR(16)  NOT NULL DEFAULT '',
	website            TEXT         NOT NULL DEFAULT '',
	date_of_birth      DATE,
	salary             DOUBLE PRECISION,
	password_hash      TEXT         NOT NULL,
	credit_card_number TEXT         NOT NULL DEFAULT '',
	customer_type      VARCHAR(16)  NOT NULL DEFAULT 'Regular',
	terms_accepted     BOOLEAN      NOT NULL,
	created_at         TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS customers_email_lower_idx ON customers (LOWER(email));
`

// EnsureCustomerSchema creates the customers table and its indexes if missing
func EnsureCustomerSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, customerSchema); err != nil {
		return fmt.Errorf("failed to ensure customer schema: %w", err)
	}
	return nil
}
