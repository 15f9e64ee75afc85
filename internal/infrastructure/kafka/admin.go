package kafka

import (
	"context"
	"sort"
	"time"

	"github.com/OliveiraNt/kafka-admin-api/internal/domain"
	"github.com/twmb/franz-go/pkg/kadm"
)

const (
	defaultReadTimeout  = 5 * time.Second
	defaultGroupTimeout = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second

	// deadGroupState is what brokers report for a group id they hold no state for.
	deadGroupState = "Dead"
)

// adminAPI is the subset of *kadm.Client the driver needs.
type adminAPI interface {
	CreateTopics(ctx context.Context, partitions int32, replicationFactor int16, configs map[string]*string, topics ...string) (kadm.CreateTopicResponses, error)
	DeleteTopics(ctx context.Context, topics ...string) (kadm.DeleteTopicResponses, error)
	ListTopics(ctx context.Context, topics ...string) (kadm.TopicDetails, error)
	BrokerMetadata(ctx context.Context) (kadm.Metadata, error)
	ListGroups(ctx context.Context, filterStates ...string) (kadm.ListedGroups, error)
	DescribeGroups(ctx context.Context, groups ...string) (kadm.DescribedGroups, error)
	Lag(ctx context.Context, groups ...string) (kadm.DescribedGroupLags, error)
}

// Admin implements the domain.ClusterDriver operations on top of kadm.
type Admin struct {
	api          adminAPI
	readTimeout  time.Duration
	groupTimeout time.Duration
	writeTimeout time.Duration
}

// NewAdmin creates a new Admin. A positive requestTimeout replaces every per-call default.
func NewAdmin(api adminAPI, requestTimeout time.Duration) *Admin {
	a := &Admin{
		api:          api,
		readTimeout:  defaultReadTimeout,
		groupTimeout: defaultGroupTimeout,
		writeTimeout: defaultWriteTimeout,
	}
	if requestTimeout > 0 {
		a.readTimeout = requestTimeout
		a.groupTimeout = requestTimeout
		a.writeTimeout = requestTimeout
	}
	return a
}

type createKey struct {
	partitions        int32
	replicationFactor int16
}

// CreateTopics issues one request per distinct partition/replication pair.
func (a *Admin) CreateTopics(ctx context.Context, specs ...domain.TopicSpec) error {
	if len(specs) == 0 {
		return nil
	}
	cctx, cancel := context.WithTimeout(ctx, a.writeTimeout)
	defer cancel()

	var order []createKey
	batches := make(map[createKey][]string)
	for _, s := range specs {
		k := createKey{s.Partitions, s.ReplicationFactor}
		if _, ok := batches[k]; !ok {
			order = append(order, k)
		}
		batches[k] = append(batches[k], s.Name)
	}

	for _, k := range order {
		resp, err := a.api.CreateTopics(cctx, k.partitions, k.replicationFactor, nil, batches[k]...)
		if err != nil {
			return classify("create topics", "", err)
		}
		for _, name := range batches[k] {
			if r, ok := resp[name]; ok && r.Err != nil {
				return classify("create topics", name, r.Err)
			}
		}
	}
	return nil
}

// ListTopics returns the sorted names of all non-internal topics.
func (a *Admin) ListTopics(ctx context.Context) ([]string, error) {
	cctx, cancel := context.WithTimeout(ctx, a.readTimeout)
	defer cancel()

	details, err := a.api.ListTopics(cctx)
	if err != nil {
		return nil, classify("list topics", "", err)
	}
	names := make([]string, 0, len(details))
	for name, td := range details {
		if td.IsInternal {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DescribeTopics describes the named topics in one metadata request. Topics
// failing with anything but an unknown-topic code are reported through a
// domain.TopicErrors next to the topics that were described.
func (a *Admin) DescribeTopics(ctx context.Context, names ...string) (map[string]domain.Topic, error) {
	out := make(map[string]domain.Topic, len(names))
	if len(names) == 0 {
		// kadm treats an empty list as "every topic"
		return out, nil
	}
	cctx, cancel := context.WithTimeout(ctx, a.readTimeout)
	defer cancel()

	details, err := a.api.ListTopics(cctx, names...)
	if err != nil {
		return nil, classify("describe topics", "", err)
	}
	var failed domain.TopicErrors
	for _, name := range names {
		td, ok := details[name]
		if !ok {
			continue
		}
		if td.Err != nil {
			if isUnknownTopic(td.Err) {
				continue
			}
			if failed == nil {
				failed = make(domain.TopicErrors)
			}
			failed[name] = classify("describe topics", name, td.Err)
			continue
		}
		out[name] = toTopic(td)
	}
	if failed != nil {
		return out, failed
	}
	return out, nil
}

// DeleteTopics deletes the named topics in one request.
func (a *Admin) DeleteTopics(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	cctx, cancel := context.WithTimeout(ctx, a.writeTimeout)
	defer cancel()

	resp, err := a.api.DeleteTopics(cctx, names...)
	if err != nil {
		return classify("delete topics", "", err)
	}
	for _, name := range names {
		if r, ok := resp[name]; ok && r.Err != nil {
			return classify("delete topics", name, r.Err)
		}
	}
	return nil
}

func (a *Admin) metadata(ctx context.Context, op string) (kadm.Metadata, error) {
	cctx, cancel := context.WithTimeout(ctx, a.readTimeout)
	defer cancel()

	meta, err := a.api.BrokerMetadata(cctx)
	if err != nil {
		return kadm.Metadata{}, classify(op, "", err)
	}
	return meta, nil
}

// ClusterID returns the id the cluster reports in metadata.
func (a *Admin) ClusterID(ctx context.Context) (string, error) {
	meta, err := a.metadata(ctx, "cluster id")
	if err != nil {
		return "", err
	}
	return meta.Cluster, nil
}

// Controller returns the controller broker, or nil when none is known.
func (a *Admin) Controller(ctx context.Context) (*domain.ClusterNode, error) {
	meta, err := a.metadata(ctx, "controller")
	if err != nil {
		return nil, err
	}
	if meta.Controller < 0 {
		return nil, nil
	}
	for _, b := range meta.Brokers {
		if b.NodeID == meta.Controller {
			n := toNode(b)
			return &n, nil
		}
	}
	return nil, nil
}

// Nodes returns the brokers ordered by id.
func (a *Admin) Nodes(ctx context.Context) ([]domain.ClusterNode, error) {
	meta, err := a.metadata(ctx, "nodes")
	if err != nil {
		return nil, err
	}
	nodes := make([]domain.ClusterNode, 0, len(meta.Brokers))
	for _, b := range meta.Brokers {
		nodes = append(nodes, toNode(b))
	}
	return domain.SortNodes(nodes), nil
}

// ListConsumerGroups lists every group known to the cluster, ordered by id.
func (a *Admin) ListConsumerGroups(ctx context.Context) ([]domain.ConsumerGroupListing, error) {
	cctx, cancel := context.WithTimeout(ctx, a.groupTimeout)
	defer cancel()

	listed, err := a.api.ListGroups(cctx)
	if err != nil {
		return nil, classify("list consumer groups", "", err)
	}
	out := make([]domain.ConsumerGroupListing, 0, len(listed))
	for id, g := range listed {
		out = append(out, domain.ConsumerGroupListing{
			GroupID:               id,
			State:                 g.State,
			ProtocolType:          g.ProtocolType,
			IsSimpleConsumerGroup: g.ProtocolType == "",
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GroupID < out[j].GroupID })
	return out, nil
}

// DescribeConsumerGroups describes the given groups in one request.
func (a *Admin) DescribeConsumerGroups(ctx context.Context, ids ...string) (map[string]domain.ConsumerGroupDescription, error) {
	out := make(map[string]domain.ConsumerGroupDescription, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cctx, cancel := context.WithTimeout(ctx, a.groupTimeout)
	defer cancel()

	described, err := a.api.DescribeGroups(cctx, ids...)
	if err != nil {
		return nil, classify("describe consumer groups", "", err)
	}
	for _, id := range ids {
		g, ok := described[id]
		if !ok {
			continue
		}
		if g.Err != nil {
			if isUnknownGroup(g.Err) {
				continue
			}
			return nil, classify("describe consumer groups", id, g.Err)
		}
		if g.State == deadGroupState {
			continue
		}
		out[id] = toGroupDescription(g)
	}
	return out, nil
}

// ConsumerGroupLag computes committed-offset lag per topic for the given groups,
// or for every group when ids is empty.
func (a *Admin) ConsumerGroupLag(ctx context.Context, ids ...string) (map[string]domain.GroupLag, error) {
	cctx, cancel := context.WithTimeout(ctx, a.groupTimeout)
	defer cancel()

	if len(ids) == 0 {
		listed, err := a.api.ListGroups(cctx)
		if err != nil {
			return nil, classify("consumer group lag", "", err)
		}
		for id := range listed {
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			return map[string]domain.GroupLag{}, nil
		}
	}

	lags, err := a.api.Lag(cctx, ids...)
	if err != nil {
		return nil, classify("consumer group lag", "", err)
	}
	out := make(map[string]domain.GroupLag, len(ids))
	for _, id := range ids {
		l, ok := lags[id]
		if !ok {
			continue
		}
		if l.DescribeErr != nil {
			if isUnknownGroup(l.DescribeErr) {
				continue
			}
			return nil, classify("consumer group lag", id, l.DescribeErr)
		}
		if l.State == deadGroupState {
			continue
		}
		if l.FetchErr != nil {
			return nil, classify("consumer group lag", id, l.FetchErr)
		}
		out[id] = toGroupLag(l)
	}
	return out, nil
}

// Ping succeeds when a metadata request completes.
func (a *Admin) Ping(ctx context.Context) error {
	_, err := a.metadata(ctx, "ping")
	return err
}

func toNode(b kadm.BrokerDetail) domain.ClusterNode {
	n := domain.ClusterNode{ID: b.NodeID, Host: b.Host, Port: b.Port}
	if b.Rack != nil {
		n.Rack = *b.Rack
	}
	return n
}

func toTopic(td kadm.TopicDetail) domain.Topic {
	t := domain.Topic{
		Name:       td.Topic,
		Internal:   td.IsInternal,
		Partitions: make([]domain.Partition, 0, len(td.Partitions)),
	}
	if td.ID != (kadm.TopicID{}) {
		t.ID = td.ID.String()
	}
	for _, p := range td.Partitions {
		t.Partitions = append(t.Partitions, domain.Partition{
			Index:    p.Partition,
			Leader:   p.Leader,
			Replicas: append([]int32(nil), p.Replicas...),
			ISR:      append([]int32(nil), p.ISR...),
		})
	}
	domain.SortPartitions(t.Partitions)
	return t
}

func toGroupDescription(g kadm.DescribedGroup) domain.ConsumerGroupDescription {
	d := domain.ConsumerGroupDescription{
		GroupID:               g.Group,
		State:                 g.State,
		ProtocolType:          g.ProtocolType,
		Protocol:              g.Protocol,
		IsSimpleConsumerGroup: g.ProtocolType == "",
		Members:               make([]domain.GroupMember, 0, len(g.Members)),
	}
	if g.Coordinator.Host != "" {
		c := toNode(g.Coordinator)
		d.Coordinator = &c
	}
	for _, m := range g.Members {
		member := domain.GroupMember{
			MemberID:   m.MemberID,
			ClientID:   m.ClientID,
			ClientHost: m.ClientHost,
		}
		if m.InstanceID != nil {
			member.InstanceID = *m.InstanceID
		}
		if assigned, ok := m.Assigned.AsConsumer(); ok && assigned != nil {
			for _, at := range assigned.Topics {
				parts := append([]int32(nil), at.Partitions...)
				sort.Slice(parts, func(i, j int) bool { return parts[i] < parts[j] })
				member.Assignment = append(member.Assignment, domain.TopicAssignment{Topic: at.Topic, Partitions: parts})
			}
			sort.Slice(member.Assignment, func(i, j int) bool { return member.Assignment[i].Topic < member.Assignment[j].Topic })
		}
		d.Members = append(d.Members, member)
	}
	sort.Slice(d.Members, func(i, j int) bool { return d.Members[i].MemberID < d.Members[j].MemberID })
	return d
}

func toGroupLag(l kadm.DescribedGroupLag) domain.GroupLag {
	gl := domain.GroupLag{GroupID: l.Group, State: l.State}
	for topic, tl := range l.Lag.TotalByTopic() {
		gl.Topics = append(gl.Topics, domain.TopicLag{Topic: topic, Lag: tl.Lag})
		gl.Total += tl.Lag
	}
	sort.Slice(gl.Topics, func(i, j int) bool { return gl.Topics[i].Topic < gl.Topics[j].Topic })
	return gl
}
