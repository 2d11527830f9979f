// README: Pricing configuration store backed by PostgreSQL with a Redis
// read-through cache.
package fare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyRules    = "pricing:rules"
	cacheKeyPackages = "pricing:packages"
)

// Store persists per-class rate tables and rental packages. Reads go through
// Redis when available; every write invalidates the cache.
type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, redis *redis.Client) *Store {
	return &Store{db: db, redis: redis}
}

// EnsureSchema creates the configuration tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS pricing_rules (
            vehicle_class TEXT PRIMARY KEY,
            rules         JSONB NOT NULL,
            updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS rental_packages (
            id         TEXT PRIMARY KEY,
            name       TEXT NOT NULL,
            hours      DOUBLE PRECISION NOT NULL,
            km         DOUBLE PRECISION NOT NULL,
            prices     JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`)
	return err
}

// Seed installs the default rate tables and packages when the store is empty.
// Seeding happens once at startup; a missing class at calculation time still
// fails the calculation.
func (s *Store) Seed(ctx context.Context) error {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM pricing_rules`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		for class, r := range DefaultRules() {
			if err := s.PutRules(ctx, class, r); err != nil {
				return err
			}
		}
	}
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM rental_packages`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		for _, p := range DefaultPackages() {
			if err := s.PutPackage(ctx, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Store) Rules(ctx context.Context) (map[VehicleClass]Rules, error) {
	var out map[VehicleClass]Rules
	if s.cacheGet(ctx, cacheKeyRules, &out) {
		return out, nil
	}

	rows, err := s.db.Query(ctx, `SELECT vehicle_class, rules FROM pricing_rules`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out = make(map[VehicleClass]Rules)
	for rows.Next() {
		var class string
		var raw []byte
		if err := rows.Scan(&class, &raw); err != nil {
			return nil, err
		}
		var r Rules
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode rules for %s: %w", class, err)
		}
		out[VehicleClass(class)] = r
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cacheKeyRules, out)
	return out, nil
}

func (s *Store) PutRules(ctx context.Context, class VehicleClass, r Rules) error {
	if err := r.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
        INSERT INTO pricing_rules (vehicle_class, rules, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (vehicle_class) DO UPDATE SET rules = $2, updated_at = NOW()`,
		string(class), raw,
	)
	if err != nil {
		return err
	}
	s.cacheDrop(ctx, cacheKeyRules)
	return nil
}

func (s *Store) Packages(ctx context.Context) ([]Package, error) {
	var out []Package
	if s.cacheGet(ctx, cacheKeyPackages, &out) {
		return out, nil
	}

	rows, err := s.db.Query(ctx, `
        SELECT id, name, hours, km, prices FROM rental_packages ORDER BY hours`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out = nil
	for rows.Next() {
		var p Package
		var raw []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.Hours, &p.Km, &raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &p.Prices); err != nil {
			return nil, fmt.Errorf("decode prices for %s: %w", p.ID, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cacheKeyPackages, out)
	return out, nil
}

func (s *Store) PutPackage(ctx context.Context, p Package) error {
	if p.ID == "" {
		return errors.New("package id is required")
	}
	for class, price := range p.Prices {
		if price < 0 {
			return fmt.Errorf("%w: package %q price for %s", ErrBadRate, p.ID, class)
		}
	}
	raw, err := json.Marshal(p.Prices)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
        INSERT INTO rental_packages (id, name, hours, km, prices, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        ON CONFLICT (id) DO UPDATE
        SET name = $2, hours = $3, km = $4, prices = $5, updated_at = NOW()`,
		p.ID, p.Name, p.Hours, p.Km, raw,
	)
	if err != nil {
		return err
	}
	s.cacheDrop(ctx, cacheKeyPackages)
	return nil
}

func (s *Store) DeletePackage(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM rental_packages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", ErrPackageNotFound, id)
	}
	s.cacheDrop(ctx, cacheKeyPackages)
	return nil
}

func (s *Store) cacheGet(ctx context.Context, key string, v any) bool {
	if s.redis == nil {
		return false
	}
	raw, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func (s *Store) cacheSet(ctx context.Context, key string, v any) {
	if s.redis == nil {
		return
	}
	if raw, err := json.Marshal(v); err == nil {
		s.redis.Set(ctx, key, raw, 0)
	}
}

func (s *Store) cacheDrop(ctx context.Context, key string) {
	if s.redis == nil {
		return
	}
	s.redis.Del(ctx, key)
}

// MemSource is an in-memory RuleSource for tests and local development.
type MemSource struct {
	RulesByClass map[VehicleClass]Rules
	PackageList  []Package
}

func NewMemSource(rules map[VehicleClass]Rules, packages []Package) *MemSource {
	return &MemSource{RulesByClass: rules, PackageList: packages}
}

func (m *MemSource) Rules(_ context.Context) (map[VehicleClass]Rules, error) {
	return m.RulesByClass, nil
}

func (m *MemSource) Packages(_ context.Context) ([]Package, error) {
	return m.PackageList, nil
}

func (m *MemSource) PutRules(_ context.Context, class VehicleClass, r Rules) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if m.RulesByClass == nil {
		m.RulesByClass = make(map[VehicleClass]Rules)
	}
	m.RulesByClass[class] = r
	return nil
}

func (m *MemSource) PutPackage(_ context.Context, p Package) error {
	if p.ID == "" {
		return errors.New("package id is required")
	}
	for class, price := range p.Prices {
		if price < 0 {
			return fmt.Errorf("%w: package %q price for %s", ErrBadRate, p.ID, class)
		}
	}
	for i := range m.PackageList {
		if m.PackageList[i].ID == p.ID {
			m.PackageList[i] = p
			return nil
		}
	}
	m.PackageList = append(m.PackageList, p)
	return nil
}

func (m *MemSource) DeletePackage(_ context.Context, id string) error {
	for i := range m.PackageList {
		if m.PackageList[i].ID == id {
			m.PackageList = append(m.PackageList[:i], m.PackageList[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrPackageNotFound, id)
}
