// Package postgres installs azam encoding functions into a PostgreSQL
// database so IDs can be rendered and parsed server-side.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/cockroachdb/errors"
)

// Config holds the migration settings stored in the database.
type Config struct {
	// Prefix names the installed functions: <prefix>_encode, <prefix>_decode
	// and <prefix>_encode_bytea.
	Prefix string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Prefix: "azam"}
}

var prefixPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,47}$`)

// Validate reports whether the prefix is usable as an unquoted identifier.
func (c Config) Validate() error {
	if !prefixPattern.MatchString(c.Prefix) {
		return errors.Wrapf(ErrInvalidPrefix, "%q", c.Prefix)
	}
	return nil
}

var (
	ErrConfigMismatch = errors.New("azam: database config does not match application config")
	ErrInvalidPrefix  = errors.New("azam: invalid function prefix")
)

// Migrate runs the idempotent azam migration with the given configuration.
// If the database already has a different configuration, returns ErrConfigMismatch.
func Migrate(ctx context.Context, db *sql.DB, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _azam_config (
			id int PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			prefix text NOT NULL
		)
	`)
	if err != nil {
		return errors.Wrap(err, "azam: create config table")
	}

	stored, err := GetConfig(ctx, db)
	switch {
	case err == nil:
		if stored != cfg {
			return errors.Wrapf(ErrConfigMismatch, "db has prefix=%q, app has prefix=%q", stored.Prefix, cfg.Prefix)
		}
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.ExecContext(ctx, `INSERT INTO _azam_config (prefix) VALUES ($1)`, cfg.Prefix)
		if err != nil {
			return errors.Wrap(err, "azam: insert config")
		}
	default:
		return errors.Wrap(err, "azam: read config")
	}

	if _, err := db.ExecContext(ctx, generateSQL(cfg)); err != nil {
		return errors.Wrap(err, "azam: run migrations")
	}
	return nil
}

// GetConfig reads the azam configuration from the database.
func GetConfig(ctx context.Context, db *sql.DB) (Config, error) {
	var cfg Config
	err := db.QueryRowContext(ctx, `SELECT prefix FROM _azam_config`).Scan(&cfg.Prefix)
	return cfg, err
}

func generateSQL(cfg Config) string {
	return fmt.Sprintf(`
-- Section of a bytea read as a big-endian number
CREATE OR REPLACE FUNCTION %[1]s_encode_bytea(value bytea)
  RETURNS text
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT LEAKPROOF
  AS $$
DECLARE
  low constant text := '0123456789abcdef';
  high constant text := 'ghjkmnpqrstvwxyz';
  total int := length(value) * 2;
  result text := '';
  nib int;
  started boolean := false;
BEGIN
  FOR i IN 0..total - 1 LOOP
    nib := get_byte(value, i / 2);
    IF i %% 2 = 0 THEN
      nib := nib >> 4;
    ELSE
      nib := nib & 15;
    END IF;
    IF NOT started AND nib = 0 THEN
      CONTINUE;
    END IF;
    started := true;
    IF i = total - 1 THEN
      result := result || substr(low, nib + 1, 1);
    ELSE
      result := result || substr(high, nib + 1, 1);
    END IF;
  END LOOP;
  IF NOT started THEN
    RETURN '0';
  END IF;
  RETURN result;
END;
$$;

-- Section of the bigint's 64-bit pattern
CREATE OR REPLACE FUNCTION %[1]s_encode(id bigint)
  RETURNS text
  LANGUAGE sql
  IMMUTABLE PARALLEL SAFE STRICT LEAKPROOF
  AS $$
  SELECT %[1]s_encode_bytea(int8send(id));
$$;

-- Exactly one section, at most 16 symbols
CREATE OR REPLACE FUNCTION %[1]s_decode(encoded text)
  RETURNS bigint
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
DECLARE
  alphabet constant text := '0123456789abcdefghjkmnpqrstvwxyz';
  n int := char_length(encoded);
  c text;
  v int;
  result bigint := 0;
BEGIN
  IF n = 0 THEN
    RAISE EXCEPTION 'azam: empty input';
  END IF;
  FOR i IN 1..n LOOP
    c := lower(substr(encoded, i, 1));
    IF c = 'o' THEN
      v := 0;
    ELSIF c = 'i' OR c = 'l' THEN
      v := 1;
    ELSE
      v := position(c IN alphabet) - 1;
    END IF;
    IF v < 0 THEN
      RAISE EXCEPTION 'azam: invalid character %% at offset %%', c, i - 1;
    END IF;
    IF i = 1 AND v = 16 THEN
      RAISE EXCEPTION 'azam: illegal leading nibble at offset 0';
    END IF;
    IF i <= 16 THEN
      result := (result << 4) | (v & 15);
    END IF;
    IF v < 16 THEN
      IF i < n THEN
        RAISE EXCEPTION 'azam: trailing data after section at offset %%', i;
      END IF;
      IF i > 16 THEN
        RAISE EXCEPTION 'azam: value out of range';
      END IF;
      RETURN result;
    END IF;
  END LOOP;
  RAISE EXCEPTION 'azam: section not terminated at offset %%', n;
END;
$$;
`, cfg.Prefix)
}
