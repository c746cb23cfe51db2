package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	portaldb "github.com/kudetabet/portal"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// schema is the portal's full table set. Statements are idempotent so the
// command can run on every deploy.
const schema = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS profiles (
  id                  uuid PRIMARY KEY DEFAULT gen_random_uuid(),
  username            text UNIQUE NOT NULL,
  email               text UNIQUE NOT NULL,
  password_hash       text NOT NULL,
  full_name           text,
  phone               text,
  whatsapp            text,
  balance             numeric(20,2) NOT NULL DEFAULT 0,
  payment_type        text,
  payment_method      text,
  bank_account_number text,
  bank_account_name   text,
  referral_code       text,
  avatar_url          text,
  role                text NOT NULL DEFAULT 'user',
  is_active           boolean NOT NULL DEFAULT true,
  bonus_claimed       boolean NOT NULL DEFAULT false,
  last_sign_in_at     timestamptz,
  created_at          timestamptz NOT NULL DEFAULT now(),
  updated_at          timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS transactions (
  id                  uuid PRIMARY KEY DEFAULT gen_random_uuid(),
  user_id             uuid NOT NULL REFERENCES profiles(id),
  transaction_type    text NOT NULL CHECK (transaction_type IN ('deposit', 'withdraw')),
  amount              numeric(20,2) NOT NULL CHECK (amount > 0),
  payment_method      text,
  payment_provider    text,
  user_account_number text,
  user_account_name   text,
  notes               text,
  proof_image_url     text,
  status              text NOT NULL DEFAULT 'pending'
                      CHECK (status IN ('pending', 'completed', 'rejected', 'cancelled')),
  reference_number    text UNIQUE NOT NULL,
  admin_notes         text,
  processed_by        uuid REFERENCES profiles(id),
  processed_at        timestamptz,
  created_at          timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS transactions_user_created_idx
  ON transactions (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS history_games (
  id           uuid PRIMARY KEY DEFAULT gen_random_uuid(),
  user_id      uuid NOT NULL REFERENCES profiles(id),
  game_name    text NOT NULL,
  game_code    text,
  category     text,
  provider     text,
  game_image   text,
  game_link    text,
  is_favourite boolean NOT NULL DEFAULT false,
  is_win       boolean NOT NULL DEFAULT false,
  total_play   integer NOT NULL DEFAULT 0,
  total_bet    numeric(20,2) NOT NULL DEFAULT 0,
  total_win    numeric(20,2) NOT NULL DEFAULT 0,
  created_at   timestamptz NOT NULL DEFAULT now(),
  updated_at   timestamptz NOT NULL DEFAULT now(),
  UNIQUE (user_id, game_code)
);
CREATE INDEX IF NOT EXISTS history_games_user_updated_idx
  ON history_games (user_id, updated_at DESC);

CREATE TABLE IF NOT EXISTS double_exp_claims (
  id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
  user_id       uuid NOT NULL REFERENCES profiles(id),
  claimed_at    timestamptz NOT NULL DEFAULT now(),
  expires_at    timestamptz NOT NULL,
  next_claim_at timestamptz NOT NULL,
  is_active     boolean NOT NULL DEFAULT true
);
CREATE INDEX IF NOT EXISTS double_exp_claims_user_claimed_idx
  ON double_exp_claims (user_id, claimed_at DESC);
`

func main() {
	seedAdmin := flag.String("seed-admin", "", "Create an admin account with this email (prompts ADMIN_PASSWORD env)")
	flag.Parse()

	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	if err := run(*seedAdmin); err != nil {
		fmt.Fprintf(os.Stderr, "migrate failed: %v\n", err)
		os.Exit(1)
	}
}

func run(seedAdmin string) error {
	db, err := portaldb.GetDB()
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if db == nil {
		return fmt.Errorf("DATABASE_URL is not set; cannot connect to DB")
	}

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	fmt.Println("Schema applied")

	if seedAdmin != "" {
		if err := seedAdminAccount(ctx, db, seedAdmin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		fmt.Printf("Admin account ready: %s\n", seedAdmin)
	}
	return nil
}

func seedAdminAccount(ctx context.Context, db *sql.DB, email string) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is not set")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
    INSERT INTO profiles (username, email, password_hash, role)
    VALUES ('admin', $1, $2, 'admin')
    ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
  `, email, string(hash))
	return err
}
