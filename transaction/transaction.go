package transaction

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Transaction types and statuses as stored.
const (
	TypeDeposit  = "deposit"
	TypeWithdraw = "withdraw"

	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

var ErrNotFound = errors.New("transaction not found")

// Transaction is one row of the transactions table.
type Transaction struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	TransactionType   string     `json:"transaction_type"`
	Amount            float64    `json:"amount"`
	PaymentMethod     string     `json:"payment_method"`
	PaymentProvider   string     `json:"payment_provider"`
	UserAccountNumber string     `json:"user_account_number"`
	UserAccountName   string     `json:"user_account_name"`
	Notes             string     `json:"notes"`
	ProofImageURL     string     `json:"proof_image_url"`
	Status            string     `json:"status"`
	ReferenceNumber   string     `json:"reference_number"`
	AdminNotes        string     `json:"admin_notes"`
	ProcessedBy       string     `json:"processed_by"`
	ProcessedAt       *time.Time `json:"processed_at"`
	CreatedAt         time.Time  `json:"created_at"`
}

// CreateInput is the payload for a new deposit or withdraw request.
type CreateInput struct {
	TransactionType   string  `json:"transaction_type"`
	Amount            float64 `json:"amount"`
	PaymentMethod     string  `json:"payment_method"`
	PaymentProvider   string  `json:"payment_provider"`
	UserAccountNumber string  `json:"user_account_number"`
	UserAccountName   string  `json:"user_account_name"`
	Notes             string  `json:"notes"`
	ProofImageURL     string  `json:"proof_image_url"`
}

// Filters narrows transaction reads; zero values are skipped.
type Filters struct {
	Type          string
	Status        string
	PaymentMethod string
	DateFrom      string
	DateTo        string
	MinAmount     float64
	MaxAmount     float64
}

// Stats aggregates one user's transaction history.
type Stats struct {
	TotalDeposits     float64    `json:"total_deposits"`
	TotalWithdrawals  float64    `json:"total_withdrawals"`
	DepositCount      int        `json:"deposit_count"`
	WithdrawalCount   int        `json:"withdrawal_count"`
	PendingCount      int        `json:"pending_count"`
	LastTransactionAt *time.Time `json:"last_transaction_at"`
}

// Store reads and writes transactions rows.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// secureIntn returns a uniform random int in [0, n) using crypto/rand.
func secureIntn(n int) int {
	if n <= 0 {
		return 0
	}
	max := big.NewInt(int64(n))
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// NewReference builds a reference number: DEP/WD prefix, a 14-digit UTC
// timestamp and a 4-digit random suffix, e.g. DEP20260828093015-0042.
func NewReference(txType string, now time.Time) string {
	prefix := "WD"
	if txType == TypeDeposit {
		prefix = "DEP"
	}
	stamp := now.UTC().Format("20060102150405")
	return fmt.Sprintf("%s%s-%04d", prefix, stamp, secureIntn(10000))
}

const txColumns = `
	id::text, user_id::text, transaction_type, amount,
	COALESCE(payment_method, ''), COALESCE(payment_provider, ''),
	COALESCE(user_account_number, ''), COALESCE(user_account_name, ''),
	COALESCE(notes, ''), COALESCE(proof_image_url, ''), status,
	reference_number, COALESCE(admin_notes, ''),
	COALESCE(processed_by::text, ''), processed_at, created_at`

func scanTx(sc interface{ Scan(...any) error }) (*Transaction, error) {
	var t Transaction
	err := sc.Scan(
		&t.ID, &t.UserID, &t.TransactionType, &t.Amount,
		&t.PaymentMethod, &t.PaymentProvider,
		&t.UserAccountNumber, &t.UserAccountName,
		&t.Notes, &t.ProofImageURL, &t.Status,
		&t.ReferenceNumber, &t.AdminNotes,
		&t.ProcessedBy, &t.ProcessedAt, &t.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a pending transaction with a fresh reference number.
func (s *Store) Create(ctx context.Context, userID string, in CreateInput) (*Transaction, error) {
	if in.TransactionType != TypeDeposit && in.TransactionType != TypeWithdraw {
		return nil, fmt.Errorf("transaction_type must be deposit or withdraw")
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO transactions (
			user_id, transaction_type, amount, payment_method, payment_provider,
			user_account_number, user_account_name, notes, proof_image_url,
			status, reference_number
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), 'pending', $10)
		RETURNING `+txColumns,
		userID, in.TransactionType, in.Amount, in.PaymentMethod, in.PaymentProvider,
		in.UserAccountNumber, in.UserAccountName, in.Notes, in.ProofImageURL,
		NewReference(in.TransactionType, time.Now()))
	return scanTx(row)
}

// List returns the user's transactions, newest first, narrowed by filters.
func (s *Store) List(ctx context.Context, userID string, f Filters) ([]*Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE user_id = $1`
	args := []any{userID}
	add := func(clause string, v any) {
		args = append(args, v)
		query += fmt.Sprintf(" AND %s $%d", clause, len(args))
	}
	if f.Type != "" {
		add("transaction_type =", f.Type)
	}
	if f.Status != "" {
		add("status =", f.Status)
	}
	if f.PaymentMethod != "" {
		add("payment_method =", f.PaymentMethod)
	}
	if f.DateFrom != "" {
		add("created_at >=", f.DateFrom)
	}
	if f.DateTo != "" {
		add("created_at <=", f.DateTo)
	}
	if f.MinAmount > 0 {
		add("amount >=", f.MinAmount)
	}
	if f.MaxAmount > 0 {
		add("amount <=", f.MaxAmount)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var out []*Transaction
	for rows.Next() {
		t, err := scanTx(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (*Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE id = $1`, id)
	return scanTx(row)
}

func (s *Store) GetByReference(ctx context.Context, reference string) (*Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE reference_number = $1`, reference)
	return scanTx(row)
}

// Cancel marks a pending transaction cancelled. Owner-scoped: the id must
// belong to the user and still be pending.
func (s *Store) Cancel(ctx context.Context, id, userID string) (*Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE transactions SET status = 'cancelled'
		WHERE id = $1 AND user_id = $2 AND status = 'pending'
		RETURNING `+txColumns, id, userID)
	return scanTx(row)
}

// balanceDelta is the signed balance change an approved transaction applies:
// deposits credit, withdrawals debit.
func balanceDelta(txType string, amount float64) float64 {
	if txType == TypeWithdraw {
		return -amount
	}
	return amount
}

// Approve completes a pending transaction (admin) and applies its amount to
// the user's balance. Both writes commit together.
func (s *Store) Approve(ctx context.Context, id, adminID, notes string) (*Transaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin approve: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		UPDATE transactions SET
			status = 'completed', admin_notes = NULLIF($3, ''),
			processed_by = $2, processed_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING `+txColumns, id, adminID, notes)
	t, err := scanTx(row)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE profiles SET balance = balance + $2, updated_at = now()
		WHERE id = $1`,
		t.UserID, balanceDelta(t.TransactionType, t.Amount)); err != nil {
		return nil, fmt.Errorf("apply balance: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit approve: %w", err)
	}
	return t, nil
}

// Reject declines a pending transaction (admin). Notes are required.
func (s *Store) Reject(ctx context.Context, id, adminID, notes string) (*Transaction, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, fmt.Errorf("admin notes are required when rejecting")
	}
	row := s.db.QueryRowContext(ctx, `
		UPDATE transactions SET
			status = 'rejected', admin_notes = $3,
			processed_by = $2, processed_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING `+txColumns, id, adminID, notes)
	return scanTx(row)
}

// SetProofURL attaches an uploaded proof-of-payment to the transaction.
func (s *Store) SetProofURL(ctx context.Context, id, url string) (*Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE transactions SET proof_image_url = $2
		WHERE id = $1
		RETURNING `+txColumns, id, url)
	return scanTx(row)
}

// PendingCount counts the user's pending transactions, optionally by type.
func (s *Store) PendingCount(ctx context.Context, userID, txType string) (int, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND status = 'pending'`
	args := []any{userID}
	if txType != "" {
		query += ` AND transaction_type = $2`
		args = append(args, txType)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("pending count: %w", err)
	}
	return n, nil
}

// UserStats aggregates the user's completed and pending activity in one query.
func (s *Store) UserStats(ctx context.Context, userID string) (*Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'deposit' AND status = 'completed'), 0),
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'withdraw' AND status = 'completed'), 0),
			COUNT(*) FILTER (WHERE transaction_type = 'deposit'),
			COUNT(*) FILTER (WHERE transaction_type = 'withdraw'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			MAX(created_at)
		FROM transactions WHERE user_id = $1`, userID).Scan(
		&st.TotalDeposits, &st.TotalWithdrawals,
		&st.DepositCount, &st.WithdrawalCount,
		&st.PendingCount, &st.LastTransactionAt)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return &st, nil
}
