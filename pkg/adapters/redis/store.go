package redis

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "automata:"

const (
	fieldFilename = "filename"
	fieldData     = "data"
)

// Store implements ports.MachineStore on Redis.
// Each machine is a hash under <prefix>machine:<name>; <prefix>index is a sorted set
// of names scored by expiry, so listing can prune machines whose key has expired.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithPrefix sets the key prefix (default "automata:").
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL expires stored machines after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithClock replaces the clock used to score and prune the index.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New connects to the Redis server at addr and checks the connection.
func New(ctx context.Context, addr string, opts ...Option) (*Store, error) {
	client := backend.NewClient(&backend.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return NewFromClient(client, opts...), nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: DefaultPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(name string) string { return s.prefix + "machine:" + name }
func (s *Store) index() string          { return s.prefix + "index" }

// SaveMachine writes the document and indexes its name.
func (s *Store) SaveMachine(ctx context.Context, doc *ports.Document) error {
	if doc == nil || doc.Name == "" {
		return fmt.Errorf("save machine: document needs a name")
	}

	score := math.Inf(1)
	if s.ttl > 0 {
		score = float64(s.now().Add(s.ttl).Unix())
	}

	_, err := s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		key := s.key(doc.Name)
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fieldFilename, doc.Filename, fieldData, doc.Data)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		pipe.ZAdd(ctx, s.index(), backend.Z{Score: score, Member: doc.Name})
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save machine %s: %w", doc.Name, err)
	}
	return nil
}

// GetMachine reads a document back.
func (s *Store) GetMachine(ctx context.Context, name string) (*ports.Document, error) {
	fields, err := s.client.HGetAll(ctx, s.key(name)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis get machine %s: %w", name, err)
	}
	data, ok := fields[fieldData]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	return &ports.Document{
		Name:     name,
		Filename: fields[fieldFilename],
		Data:     []byte(data),
	}, nil
}

// ListMachines prunes expired entries from the index and returns the rest, sorted.
func (s *Store) ListMachines(ctx context.Context) ([]string, error) {
	cutoff := "(" + strconv.FormatInt(s.now().Unix(), 10)
	if err := s.client.ZRemRangeByScore(ctx, s.index(), "-inf", cutoff).Err(); err != nil {
		return nil, fmt.Errorf("redis prune index: %w", err)
	}

	names, err := s.client.ZRange(ctx, s.index(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list machines: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

// DeleteMachine removes the document and its index entry.
func (s *Store) DeleteMachine(ctx context.Context, name string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Del(ctx, s.key(name))
		pipe.ZRem(ctx, s.index(), name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete machine %s: %w", name, err)
	}
	return nil
}
