// Package testutil provides in-memory test doubles for the cluster driver and repository.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/OliveiraNt/kafka-admin-api/internal/config"
	"github.com/OliveiraNt/kafka-admin-api/internal/domain"
)

// Driver operation names used as keys for FakeCluster.Errs and CallCount.
const (
	OpCreateTopics           = "CreateTopics"
	OpListTopics             = "ListTopics"
	OpDescribeTopics         = "DescribeTopics"
	OpDeleteTopics           = "DeleteTopics"
	OpClusterID              = "ClusterID"
	OpController             = "Controller"
	OpNodes                  = "Nodes"
	OpListConsumerGroups     = "ListConsumerGroups"
	OpDescribeConsumerGroups = "DescribeConsumerGroups"
	OpConsumerGroupLag       = "ConsumerGroupLag"
	OpPing                   = "Ping"
)

// FakeCluster is an in-memory ClusterDriver. The zero value is not usable; use NewFakeCluster.
type FakeCluster struct {
	mu sync.Mutex

	ID           string
	ControllerID int32
	Brokers      []domain.ClusterNode
	Groups       map[string]domain.ConsumerGroupDescription
	Lags         map[string]domain.GroupLag

	// Errs makes the named operation fail with the given error.
	Errs map[string]error
	// Block, when set, parks every call until it is closed or the call's context is done.
	Block chan struct{}
	// Vanished topics are still listed but no longer described, as if deleted in between.
	Vanished map[string]bool
	// TopicErrs makes DescribeTopics fail the named topics individually.
	TopicErrs map[string]error

	topics map[string]domain.Topic
	calls  map[string]int
	closed bool
}

// NewFakeCluster returns a healthy three-broker cluster without topics.
func NewFakeCluster(id string) *FakeCluster {
	return &FakeCluster{
		ID:           id,
		ControllerID: 1,
		Brokers: []domain.ClusterNode{
			{ID: 1, Host: "broker-1", Port: 9092, Rack: "a"},
			{ID: 2, Host: "broker-2", Port: 9092, Rack: "b"},
			{ID: 3, Host: "broker-3", Port: 9092},
		},
		Groups:    map[string]domain.ConsumerGroupDescription{},
		Lags:      map[string]domain.GroupLag{},
		Errs:      map[string]error{},
		Vanished:  map[string]bool{},
		TopicErrs: map[string]error{},
		topics:    map[string]domain.Topic{},
		calls:     map[string]int{},
	}
}

// SetTopic stores a topic as-is, replacing any topic of the same name.
func (f *FakeCluster) SetTopic(t domain.Topic) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics[t.Name] = cloneTopic(t)
}

// Topic returns the stored topic.
func (f *FakeCluster) Topic(name string) (domain.Topic, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.topics[name]
	return cloneTopic(t), ok
}

// SetError makes op fail with err; a nil err clears it.
func (f *FakeCluster) SetError(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.Errs, op)
		return
	}
	f.Errs[op] = err
}

// CallCount returns how many times op was invoked.
func (f *FakeCluster) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// Closed reports whether Close was called.
func (f *FakeCluster) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *FakeCluster) enter(ctx context.Context, op string) error {
	f.mu.Lock()
	f.calls[op]++
	block := f.Block
	err := f.Errs[op]
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return &domain.DriverError{Op: op, Err: ctx.Err()}
		}
	}
	if err := ctx.Err(); err != nil {
		return &domain.DriverError{Op: op, Err: err}
	}
	return err
}

func (f *FakeCluster) CreateTopics(ctx context.Context, specs ...domain.TopicSpec) error {
	if err := f.enter(ctx, OpCreateTopics); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range specs {
		if _, ok := f.topics[s.Name]; ok {
			return &domain.DriverError{Op: "create topics", Name: s.Name, Kind: domain.FailureTopicExists, Err: errors.New("TOPIC_ALREADY_EXISTS")}
		}
		if int(s.ReplicationFactor) > len(f.Brokers) {
			return &domain.DriverError{Op: "create topics", Name: s.Name, Err: errors.New("INVALID_REPLICATION_FACTOR")}
		}
	}
	for _, s := range specs {
		t := domain.Topic{Name: s.Name, ID: "id-" + s.Name}
		for i := int32(0); i < s.Partitions; i++ {
			replicas := make([]int32, 0, s.ReplicationFactor)
			for r := 0; r < int(s.ReplicationFactor); r++ {
				replicas = append(replicas, f.Brokers[(int(i)+r)%len(f.Brokers)].ID)
			}
			t.Partitions = append(t.Partitions, domain.Partition{
				Index:    i,
				Leader:   replicas[0],
				Replicas: replicas,
				ISR:      append([]int32(nil), replicas...),
			})
		}
		f.topics[s.Name] = t
	}
	return nil
}

func (f *FakeCluster) ListTopics(ctx context.Context) ([]string, error) {
	if err := f.enter(ctx, OpListTopics); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.topics))
	for name, t := range f.topics {
		if !t.Internal {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *FakeCluster) DescribeTopics(ctx context.Context, names ...string) (map[string]domain.Topic, error) {
	if err := f.enter(ctx, OpDescribeTopics); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]domain.Topic, len(names))
	var failed domain.TopicErrors
	for _, name := range names {
		if f.Vanished[name] {
			continue
		}
		if err, ok := f.TopicErrs[name]; ok {
			if failed == nil {
				failed = make(domain.TopicErrors)
			}
			failed[name] = &domain.DriverError{Op: "describe topics", Name: name, Err: err}
			continue
		}
		if t, ok := f.topics[name]; ok {
			out[name] = cloneTopic(t)
		}
	}
	if failed != nil {
		return out, failed
	}
	return out, nil
}

func (f *FakeCluster) DeleteTopics(ctx context.Context, names ...string) error {
	if err := f.enter(ctx, OpDeleteTopics); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range names {
		if _, ok := f.topics[name]; !ok {
			return &domain.DriverError{Op: "delete topics", Name: name, Kind: domain.FailureNotFound, Err: errors.New("UNKNOWN_TOPIC_OR_PARTITION")}
		}
	}
	for _, name := range names {
		delete(f.topics, name)
	}
	return nil
}

func (f *FakeCluster) ClusterID(ctx context.Context) (string, error) {
	if err := f.enter(ctx, OpClusterID); err != nil {
		return "", err
	}
	return f.ID, nil
}

func (f *FakeCluster) Controller(ctx context.Context) (*domain.ClusterNode, error) {
	if err := f.enter(ctx, OpController); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.Brokers {
		if b.ID == f.ControllerID {
			n := b
			return &n, nil
		}
	}
	return nil, nil
}

func (f *FakeCluster) Nodes(ctx context.Context) ([]domain.ClusterNode, error) {
	if err := f.enter(ctx, OpNodes); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ClusterNode(nil), f.Brokers...), nil
}

func (f *FakeCluster) ListConsumerGroups(ctx context.Context) ([]domain.ConsumerGroupListing, error) {
	if err := f.enter(ctx, OpListConsumerGroups); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ConsumerGroupListing, 0, len(f.Groups))
	for id, g := range f.Groups {
		out = append(out, domain.ConsumerGroupListing{
			GroupID:               id,
			State:                 g.State,
			ProtocolType:          g.ProtocolType,
			IsSimpleConsumerGroup: g.ProtocolType == "",
		})
	}
	return out, nil
}

func (f *FakeCluster) DescribeConsumerGroups(ctx context.Context, ids ...string) (map[string]domain.ConsumerGroupDescription, error) {
	if err := f.enter(ctx, OpDescribeConsumerGroups); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]domain.ConsumerGroupDescription, len(ids))
	for _, id := range ids {
		if g, ok := f.Groups[id]; ok {
			out[id] = g
		}
	}
	return out, nil
}

func (f *FakeCluster) ConsumerGroupLag(ctx context.Context, ids ...string) (map[string]domain.GroupLag, error) {
	if err := f.enter(ctx, OpConsumerGroupLag); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]domain.GroupLag)
	if len(ids) == 0 {
		for id, l := range f.Lags {
			out[id] = l
		}
		return out, nil
	}
	for _, id := range ids {
		if l, ok := f.Lags[id]; ok {
			out[id] = l
		}
	}
	return out, nil
}

func (f *FakeCluster) Ping(ctx context.Context) error {
	return f.enter(ctx, OpPing)
}

func (f *FakeCluster) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func cloneTopic(t domain.Topic) domain.Topic {
	parts := make([]domain.Partition, len(t.Partitions))
	for i, p := range t.Partitions {
		parts[i] = domain.Partition{
			Index:    p.Index,
			Leader:   p.Leader,
			Replicas: append([]int32(nil), p.Replicas...),
			ISR:      append([]int32(nil), p.ISR...),
		}
	}
	t.Partitions = parts
	return t
}

// FakeClusterRepository is a simple in-memory repository for tests.
type FakeClusterRepository struct {
	mu      sync.RWMutex
	Cfgs    []config.ClusterConfig
	Drivers map[string]domain.ClusterDriver
}

func NewFakeClusterRepository() *FakeClusterRepository {
	return &FakeClusterRepository{Drivers: map[string]domain.ClusterDriver{}}
}

// Add registers a cluster configuration together with its driver.
func (r *FakeClusterRepository) Add(cfg config.ClusterConfig, driver domain.ClusterDriver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Cfgs = append(r.Cfgs, cfg)
	if driver != nil {
		r.Drivers[cfg.Name] = driver
	}
}

func (r *FakeClusterRepository) FindByName(name string) (config.ClusterConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.Cfgs {
		if c.Name == name {
			return c, true
		}
	}
	return config.ClusterConfig{}, false
}

func (r *FakeClusterRepository) FindAll() []config.ClusterConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]config.ClusterConfig(nil), r.Cfgs...)
}

func (r *FakeClusterRepository) GetDriver(name string) (domain.ClusterDriver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.Drivers[name]
	return d, ok
}

// FakeFactory returns Driver, or a fresh FakeCluster named after the config.
type FakeFactory struct {
	mu      sync.Mutex
	Driver  domain.ClusterDriver
	Err     error
	Created []string
}

func (f *FakeFactory) CreateDriver(cfg config.ClusterConfig) (domain.ClusterDriver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	f.Created = append(f.Created, cfg.Name)
	if f.Driver != nil {
		return f.Driver, nil
	}
	return NewFakeCluster(cfg.Name), nil
}
