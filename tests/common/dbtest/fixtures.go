//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, email, name string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, name) VALUES ($1, $2, $3) ON CONFLICT (email) DO NOTHING",
		userID, email, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestOffer(t *testing.T, db DBLike, hostID uuid.UUID, title string, pricePerNightCents int64, maxGuests int) uuid.UUID {
	t.Helper()

	offerID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO offers (id, host_id, title, price_per_night_cents, max_guests) VALUES ($1, $2, $3, $4, $5)",
		offerID, hostID, title, pricePerNightCents, maxGuests)
	require.NoError(t, err)

	return offerID
}

func SetOfferStatus(t *testing.T, db DBLike, offerID uuid.UUID, status string, isArchive bool) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, "UPDATE offers SET status = $2, is_archive = $3 WHERE id = $1",
		offerID, status, isArchive)
	require.NoError(t, err)
}

// CreateTestBooking inserts a row directly, bypassing the API; used to seed
// states the create endpoint cannot produce (pending under instant confirm,
// historical stays).
func CreateTestBooking(t *testing.T, db DBLike, offerID, guestID uuid.UUID, checkIn, checkOut time.Time, status string, totalPriceCents int64) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `INSERT INTO bookings (id, offer_id, guest_id, check_in, check_out, number_of_guests, status, total_price_cents)
		VALUES ($1, $2, $3, $4, $5, 2, $6, $7)`,
		bookingID, offerID, guestID, checkIn, checkOut, status, totalPriceCents)
	require.NoError(t, err)

	return bookingID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
