package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"go.uber.org/zap"

	// registered database/sql drivers for BackendSQL
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLDrivers lists the driver names BackendSQL accepts
var SQLDrivers = []string{"sqlite3", "pgx", "postgres"}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLCache is a persistent Cache in a SQLite or PostgreSQL table. Expiry
// is stored as unix nanoseconds, 0 meaning never.
type SQLCache struct {
	db     *sql.DB
	config Config
	owned  bool
	logger *zap.Logger

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// SQLOption configures a SQLCache
type SQLOption func(*SQLCache)

// WithSQLLogger logs background purge failures at warn level
func WithSQLLogger(logger *zap.Logger) SQLOption {
	return func(c *SQLCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// OpenSQL opens cfg.SQL, verifies the connection and creates the table
func OpenSQL(ctx context.Context, cfg Config, opts ...SQLOption) (*SQLCache, error) {
	if !validDriver(cfg.SQL.Driver) {
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.SQL.Driver)
	}
	db, err := sql.Open(cfg.SQL.Driver, cfg.SQL.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.SQL.Driver, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to %s database: %w", cfg.SQL.Driver, err)
	}

	c, err := NewSQLCache(ctx, db, cfg, time.Minute, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	c.owned = true
	return c, nil
}

// NewSQLCache uses an existing handle, creating the table if needed. Expired
// rows are purged every cleanup interval; 0 disables purging. The handle is
// not closed by Close.
func NewSQLCache(ctx context.Context, db *sql.DB, cfg Config, cleanup time.Duration, opts ...SQLOption) (*SQLCache, error) {
	if cfg.SQL.Table == "" {
		cfg.SQL.Table = DefaultConfig().SQL.Table
	}
	if !tableName.MatchString(cfg.SQL.Table) {
		return nil, fmt.Errorf("invalid cache table name %q", cfg.SQL.Table)
	}

	c := &SQLCache{db: db, config: cfg, logger: zap.NewNop(), stop: make(chan struct{})}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.createTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	if cleanup > 0 {
		c.wg.Add(1)
		go c.purgeLoop(cleanup)
	}
	return c, nil
}

func validDriver(name string) bool {
	for _, d := range SQLDrivers {
		if d == name {
			return true
		}
	}
	return false
}

func (c *SQLCache) createTable(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			cache_key VARCHAR(255) PRIMARY KEY,
			value TEXT NOT NULL,
			expires_at BIGINT NOT NULL
		)`, c.config.SQL.Table))
	return err
}

func (c *SQLCache) Get(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE cache_key = $1 AND (expires_at = 0 OR expires_at > $2)`, c.config.SQL.Table)

	var value string
	err := c.db.QueryRowContext(ctx, query, c.config.Prefix+key, time.Now().UnixNano()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMiss{Key: key}
	}
	if err != nil {
		return nil, fmt.Errorf("cache query: %w", err)
	}
	return []byte(value), nil
}

func (c *SQLCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.config.TTL
	}
	var expires int64
	if ttl > 0 {
		expires = time.Now().Add(ttl).UnixNano()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (cache_key, value, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (cache_key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		c.config.SQL.Table)
	if _, err := c.db.ExecContext(ctx, query, c.config.Prefix+key, string(value), expires); err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

func (c *SQLCache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE cache_key = $1`, c.config.SQL.Table), c.config.Prefix+key)
	return err
}

// Clear deletes the rows under the prefix
func (c *SQLCache) Clear(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE substr(cache_key, 1, $1) = $2`, c.config.SQL.Table),
		len(c.config.Prefix), c.config.Prefix)
	return err
}

func (c *SQLCache) Exists(ctx context.Context, key string) (bool, error) {
	if _, err := c.Get(ctx, key); err != nil {
		if IsMiss(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Purge deletes expired rows and reports how many were removed
func (c *SQLCache) Purge(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE expires_at <> 0 AND expires_at <= $1`, c.config.SQL.Table),
		time.Now().UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close stops purging and closes the handle if OpenSQL created it
func (c *SQLCache) Close() error {
	var err error
	c.once.Do(func() {
		close(c.stop)
		c.wg.Wait()
		if c.owned {
			err = c.db.Close()
		}
	})
	return err
}

func (c *SQLCache) purgeLoop(every time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), every)
			if n, err := c.Purge(ctx); err != nil {
				c.logger.Warn("cache purge failed",
					zap.String("table", c.config.SQL.Table),
					zap.Error(err))
			} else if n > 0 {
				c.logger.Debug("cache purged", zap.Int64("rows", n))
			}
			cancel()
		}
	}
}
