package sql

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/syssam/fixture/dialect"
)

// QueryStats holds statement execution statistics.
type QueryStats struct {
	// TotalQueries is the total number of queries executed.
	TotalQueries atomic.Int64
	// TotalExecs is the total number of exec statements executed.
	TotalExecs atomic.Int64
	// TotalDuration is the total time spent executing statements.
	TotalDuration atomic.Int64 // nanoseconds
	// SlowQueries is the count of statements exceeding the slow threshold.
	SlowQueries atomic.Int64
	// Errors is the count of failed statements.
	Errors atomic.Int64
}

// Stats returns a snapshot of the current statistics.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// Reset resets all statistics to zero.
func (s *QueryStats) Reset() {
	s.TotalQueries.Store(0)
	s.TotalExecs.Store(0)
	s.TotalDuration.Store(0)
	s.SlowQueries.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a point-in-time snapshot of statement statistics.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// Statements returns the number of statements, queries and execs together.
func (s StatsSnapshot) Statements() int64 {
	return s.TotalQueries + s.TotalExecs
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"queries=%d execs=%d duration=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.SlowQueries, s.Errors,
	)
}

// StatsDriver wraps a Driver with statement statistics collection.
type StatsDriver struct {
	dialect.Driver
	stats         *QueryStats
	slowThreshold time.Duration
	log           zerolog.Logger
	mu            sync.RWMutex
}

// StatsOption configures the StatsDriver.
type StatsOption func(*StatsDriver)

// WithSlowThreshold sets the threshold for slow statement detection.
// Default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsDriver) {
		s.slowThreshold = d
	}
}

// WithSlowQueryLog logs slow statements to the given logger at warn level.
func WithSlowQueryLog(log zerolog.Logger) StatsOption {
	return func(s *StatsDriver) {
		s.log = log
	}
}

// NewStatsDriver wraps a Driver with statistics collection.
//
//	drv, _ := sql.Open("postgres", dsn)
//	stats := sql.NewStatsDriver(drv, sql.WithSlowThreshold(200*time.Millisecond))
//	client := fixture.New(sql.OpenStore(stats), graph)
func NewStatsDriver(drv dialect.Driver, opts ...StatsOption) *StatsDriver {
	s := &StatsDriver{
		Driver:        drv,
		stats:         &QueryStats{},
		slowThreshold: 100 * time.Millisecond,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueryStats returns the underlying QueryStats for reading statistics.
func (d *StatsDriver) QueryStats() *QueryStats {
	return d.stats
}

// SetSlowThreshold updates the slow statement threshold.
func (d *StatsDriver) SetSlowThreshold(threshold time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.slowThreshold = threshold
}

// Query executes a query and records statistics.
func (d *StatsDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.record(query, start, err, true)
	return err
}

// Exec executes a statement and records statistics.
func (d *StatsDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.record(query, start, err, false)
	return err
}

func (d *StatsDriver) record(query string, start time.Time, err error, isQuery bool) {
	duration := time.Since(start)
	if isQuery {
		d.stats.TotalQueries.Add(1)
	} else {
		d.stats.TotalExecs.Add(1)
	}
	d.stats.TotalDuration.Add(int64(duration))
	if err != nil {
		d.stats.Errors.Add(1)
	}
	d.mu.RLock()
	threshold := d.slowThreshold
	d.mu.RUnlock()
	if duration > threshold {
		d.stats.SlowQueries.Add(1)
		d.log.Warn().Dur("duration", duration).Str("query", query).Msg("slow query detected")
	}
}

// Tx starts a transaction that also records statistics.
func (d *StatsDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsTx{Tx: tx, driver: d}, nil
}

// Session pins a connection whose statements also record statistics.
func (d *StatsDriver) Session(ctx context.Context) (dialect.Session, error) {
	sess, err := session(ctx, d.Driver)
	if err != nil {
		return nil, err
	}
	return &StatsSession{Session: sess, driver: d}, nil
}

// StatsSession wraps a session with statistics collection.
type StatsSession struct {
	dialect.Session
	driver *StatsDriver
}

// Query executes a query on the session and records statistics.
func (s *StatsSession) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := s.Session.Query(ctx, query, args, v)
	s.driver.record(query, start, err, true)
	return err
}

// Exec executes a statement on the session and records statistics.
func (s *StatsSession) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := s.Session.Exec(ctx, query, args, v)
	s.driver.record(query, start, err, false)
	return err
}

// StatsTx wraps a transaction with statistics collection.
type StatsTx struct {
	dialect.Tx
	driver *StatsDriver
}

// Query executes a query within the transaction and records statistics.
func (tx *StatsTx) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Query(ctx, query, args, v)
	tx.driver.record(query, start, err, true)
	return err
}

// Exec executes a statement within the transaction and records statistics.
func (tx *StatsTx) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Exec(ctx, query, args, v)
	tx.driver.record(query, start, err, false)
	return err
}

// DebugDriver wraps a Driver and logs every statement at debug level.
type DebugDriver struct {
	dialect.Driver
	log zerolog.Logger
}

// NewDebugDriver wraps a Driver with debug logging.
//
//	drv, _ := sql.Open("sqlite", dsn)
//	debug := sql.NewDebugDriver(drv, log.With().Str("component", "sql").Logger())
func NewDebugDriver(drv dialect.Driver, log zerolog.Logger) *DebugDriver {
	return &DebugDriver{Driver: drv, log: log}
}

// Query executes a query and logs it.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	d.log.Debug().Str("query", query).Interface("args", args).Msg("query")
	return d.Driver.Query(ctx, query, args, v)
}

// Exec executes a statement and logs it.
func (d *DebugDriver) Exec(ctx context.Context, query string, args, v any) error {
	d.log.Debug().Str("query", query).Interface("args", args).Msg("exec")
	return d.Driver.Exec(ctx, query, args, v)
}

// Tx starts a transaction with debug logging.
func (d *DebugDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	d.log.Debug().Msg("begin transaction")
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &DebugTx{Tx: tx, log: d.log}, nil
}

// Session pins a connection whose statements are logged too.
func (d *DebugDriver) Session(ctx context.Context) (dialect.Session, error) {
	sess, err := session(ctx, d.Driver)
	if err != nil {
		return nil, err
	}
	d.log.Debug().Msg("acquire session")
	return &DebugSession{Session: sess, log: d.log}, nil
}

// DebugSession wraps a session with debug logging.
type DebugSession struct {
	dialect.Session
	log zerolog.Logger
}

// Query executes a query on the session and logs it.
func (s *DebugSession) Query(ctx context.Context, query string, args, v any) error {
	s.log.Debug().Str("query", query).Interface("args", args).Msg("session query")
	return s.Session.Query(ctx, query, args, v)
}

// Exec executes a statement on the session and logs it.
func (s *DebugSession) Exec(ctx context.Context, query string, args, v any) error {
	s.log.Debug().Str("query", query).Interface("args", args).Msg("session exec")
	return s.Session.Exec(ctx, query, args, v)
}

// Close releases the connection and logs it.
func (s *DebugSession) Close() error {
	s.log.Debug().Msg("release session")
	return s.Session.Close()
}

// DebugTx wraps a transaction with debug logging.
type DebugTx struct {
	dialect.Tx
	log zerolog.Logger
}

// Query executes a query within the transaction and logs it.
func (tx *DebugTx) Query(ctx context.Context, query string, args, v any) error {
	tx.log.Debug().Str("query", query).Interface("args", args).Msg("tx query")
	return tx.Tx.Query(ctx, query, args, v)
}

// Exec executes a statement within the transaction and logs it.
func (tx *DebugTx) Exec(ctx context.Context, query string, args, v any) error {
	tx.log.Debug().Str("query", query).Interface("args", args).Msg("tx exec")
	return tx.Tx.Exec(ctx, query, args, v)
}

// Commit commits the transaction and logs it.
func (tx *DebugTx) Commit() error {
	tx.log.Debug().Msg("commit transaction")
	return tx.Tx.Commit()
}

// Rollback rolls back the transaction and logs it.
func (tx *DebugTx) Rollback() error {
	tx.log.Debug().Msg("rollback transaction")
	return tx.Tx.Rollback()
}

// Ensure interfaces are implemented.
var (
	_ dialect.Driver  = (*StatsDriver)(nil)
	_ dialect.Tx      = (*StatsTx)(nil)
	_ dialect.Session = (*StatsSession)(nil)
	_ dialect.Driver  = (*DebugDriver)(nil)
	_ dialect.Tx      = (*DebugTx)(nil)
	_ dialect.Session = (*DebugSession)(nil)
	_ Sessioner       = (*Driver)(nil)
	_ Sessioner       = (*StatsDriver)(nil)
	_ Sessioner       = (*DebugDriver)(nil)
)
