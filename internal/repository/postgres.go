package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"propchat/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresSource loads property records from PostgreSQL. Filtering
// happens in memory, so the table is read once at startup.
type PostgresSource struct {
	db *sqlx.DB
}

// NewPostgresSource connects to PostgreSQL
func NewPostgresSource(dsn string, maxConn, maxIdleConn int) (*PostgresSource, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresSource{db: db}, nil
}

// Close closes the database connection
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

// Load reads the whole property table in id order.
func (s *PostgresSource) Load(ctx context.Context) (*Dataset, error) {
	query := `
		SELECT
			id, project_name, city, locality, landmark, pincode, price,
			bedrooms, bathrooms, balconies, property_type, possession_status,
			details
		FROM properties
		ORDER BY id
	`

	var records []model.PropertyRecord
	if err := s.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}

	return NewDataset(records, 0), nil
}
