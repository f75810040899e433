package fixture

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/rs/zerolog"

	"github.com/syssam/fixture/dialect"
	"github.com/syssam/fixture/schema"
)

// Store is the persistence collaborator of a Client. It is implemented by
// dialect/sql.Store.
type Store interface {
	// Dialect returns the name of the storage engine.
	Dialect() string
	// InsertAndFetch inserts one row and returns it as stored, including
	// the columns filled in by the database.
	InsertAndFetch(ctx context.Context, table, key string, values map[string]any) (map[string]any, error)
	// Exec executes a raw statement.
	Exec(ctx context.Context, query string, args ...any) error
	// Session returns an ExecQuerier pinned to one connection.
	Session(ctx context.Context) (dialect.Session, error)
}

// Client creates fixture rows for the models of a graph and cleans up the
// tables it touched.
type Client struct {
	store      Store
	graph      *Graph
	faker      Faker
	registry   *Registry
	truncators map[string]Truncator
	log        zerolog.Logger

	// mu orders Clean (writer) against Create (readers).
	mu sync.RWMutex
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger of the client. Default is zerolog.Nop().
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithFaker sets the scalar faker. Default is NewFaker(0).
func WithFaker(f Faker) Option {
	return func(c *Client) {
		c.faker = f
	}
}

// WithRegistry sets the registry of touched models, for example to share one
// registry between clients of the same database.
func WithRegistry(r *Registry) Option {
	return func(c *Client) {
		c.registry = r
	}
}

// WithTruncator registers the truncator used by Clean for a dialect,
// replacing the built-in one if any.
func WithTruncator(dialect string, t Truncator) Option {
	return func(c *Client) {
		c.truncators[dialect] = t
	}
}

// New returns a client creating rows of the graph models in the store.
func New(store Store, graph *Graph, opts ...Option) *Client {
	c := &Client{
		store:      store,
		graph:      graph,
		truncators: defaultTruncators(),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.faker == nil {
		c.faker = NewFaker(0)
	}
	if c.registry == nil {
		c.registry = NewRegistry()
	}
	return c
}

// Graph returns the graph of the client.
func (c *Client) Graph() *Graph {
	return c.graph
}

// Registry returns the registry of models touched by the client.
func (c *Client) Registry() *Registry {
	return c.registry
}

// createConfig holds the per call options of Create.
type createConfig struct {
	followRelations bool
}

// CreateOption configures one Create call.
type CreateOption func(*createConfig)

// FollowRelations controls relation processing. Default is true. When false,
// no dependency is created, relation overrides are ignored and only scalar
// fields are faked, so the row may violate foreign key constraints.
func FollowRelations(follow bool) CreateOption {
	return func(c *createConfig) {
		c.followRelations = follow
	}
}

// Create synthesizes a row of the model, merged with the overrides, and
// persists it together with the dependencies it needs. Storage errors are
// returned unchanged. Rows inserted before a failure are left in storage.
//
//	profile, err := client.Create(ctx, Profile, fixture.Overrides{
//		"address": "1 Infinite Loop",
//		"account": account,
//	})
func (c *Client) Create(ctx context.Context, m *schema.Model, overrides Overrides, opts ...CreateOption) (*Instance, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg := createConfig{followRelations: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	r := &resolver{Client: c, cfg: cfg}
	return r.create(ctx, m, overrides)
}

// CreateMany creates n rows of the model with the same overrides.
func (c *Client) CreateMany(ctx context.Context, m *schema.Model, n int, overrides Overrides, opts ...CreateOption) ([]*Instance, error) {
	if m == nil {
		return nil, NewConfigError("", ErrUnknownModel)
	}
	if n < 0 {
		return nil, NewInputError(m.Name, "quantity", fmt.Errorf("negative quantity %d", n))
	}
	instances := make([]*Instance, 0, n)
	for range n {
		inst, err := c.Create(ctx, m, overrides, opts...)
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// Prepare returns the faked values of the model merged with the overrides,
// without touching storage or the registry.
func (c *Client) Prepare(m *schema.Model, overrides Overrides) (map[string]any, error) {
	if m == nil {
		return nil, NewConfigError("", ErrUnknownModel)
	}
	if !m.HasSchema() {
		return nil, NewConfigError(m.Name, ErrMissingSchema)
	}
	values, err := c.faker.Fake(m)
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = make(map[string]any, len(overrides))
	}
	maps.Copy(values, overrides)
	return values, nil
}
