package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/jacksleight/simple-commerce/internal/domain"
)

type PostgresCredentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// PostgresCouponRepository is the coupon directory. Coupons live in Postgres
// so the redemption counter can be incremented atomically under its limit.
type PostgresCouponRepository struct {
	db *sql.DB
}

func NewPostgresCouponRepository(cred *PostgresCredentials) (*PostgresCouponRepository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	return &PostgresCouponRepository{db: db}, nil
}

func (r *PostgresCouponRepository) RunMigrations(cred *PostgresCredentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *PostgresCouponRepository) Close() error {
	return r.db.Close()
}

const couponColumns = `id, code, discount_type, discount_value, max_redemptions, redeemed_count, expires_at, created_at, updated_at`

func (r *PostgresCouponRepository) Get(ctx context.Context, id string) (*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresCouponRepository) FindByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, code))
}

func (r *PostgresCouponRepository) scanOne(row *sql.Row) (*domain.Coupon, error) {
	var c domain.Coupon
	var expiresAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.DiscountType,
		&c.DiscountValue,
		&c.MaxRedemptions,
		&c.RedeemedCount,
		&expiresAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	if expiresAt.Valid {
		t := expiresAt.Time
		c.ExpiresAt = &t
	}
	return &c, nil
}

func (r *PostgresCouponRepository) Save(ctx context.Context, coupon *domain.Coupon) error {
	now := time.Now()
	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
		coupon.CreatedAt = now
	}
	coupon.UpdatedAt = now

	query := `
		INSERT INTO coupons (id, code, discount_type, discount_value, max_redemptions, redeemed_count, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			code = EXCLUDED.code,
			discount_type = EXCLUDED.discount_type,
			discount_value = EXCLUDED.discount_value,
			max_redemptions = EXCLUDED.max_redemptions,
			redeemed_count = EXCLUDED.redeemed_count,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		coupon.ID,
		coupon.Code,
		coupon.DiscountType,
		coupon.DiscountValue,
		coupon.MaxRedemptions,
		coupon.RedeemedCount,
		coupon.ExpiresAt,
		coupon.CreatedAt,
		coupon.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save coupon: %w", err)
	}

	return nil
}

// Redeem consumes one use. The WHERE clause enforces the limit so two
// concurrent redemptions can never both succeed on the last use.
func (r *PostgresCouponRepository) Redeem(ctx context.Context, id string) error {
	query := `
		UPDATE coupons
		SET redeemed_count = redeemed_count + 1, updated_at = NOW()
		WHERE id = $1
		  AND (max_redemptions = 0 OR redeemed_count < max_redemptions)`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to redeem coupon: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check redeem result: %w", err)
	}
	if affected == 0 {
		return ErrCouponExhausted
	}

	return nil
}
