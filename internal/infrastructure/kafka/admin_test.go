package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"

	"github.com/OliveiraNt/kafka-admin-api/internal/application"
	"github.com/OliveiraNt/kafka-admin-api/internal/domain"
	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

type createCall struct {
	partitions        int32
	replicationFactor int16
	topics            []string
}

// fakeAPI implements adminAPI for tests.
type fakeAPI struct {
	createCalls []createCall
	createResp  kadm.CreateTopicResponses
	createErr   error

	deleteCalls [][]string
	deleteResp  kadm.DeleteTopicResponses
	deleteErr   error

	listCalls [][]string
	topics    kadm.TopicDetails
	listErr   error

	meta    kadm.Metadata
	metaErr error

	listed    kadm.ListedGroups
	listedErr error

	describeCalls [][]string
	described     kadm.DescribedGroups
	describeErr   error

	lagCalls [][]string
	lags     kadm.DescribedGroupLags
	lagErr   error

	deadlines []time.Duration
}

func (f *fakeAPI) record(ctx context.Context) {
	if d, ok := ctx.Deadline(); ok {
		f.deadlines = append(f.deadlines, time.Until(d))
	}
}

func (f *fakeAPI) CreateTopics(ctx context.Context, partitions int32, rf int16, _ map[string]*string, topics ...string) (kadm.CreateTopicResponses, error) {
	f.record(ctx)
	f.createCalls = append(f.createCalls, createCall{partitions, rf, topics})
	return f.createResp, f.createErr
}

func (f *fakeAPI) DeleteTopics(ctx context.Context, topics ...string) (kadm.DeleteTopicResponses, error) {
	f.record(ctx)
	f.deleteCalls = append(f.deleteCalls, topics)
	return f.deleteResp, f.deleteErr
}

func (f *fakeAPI) ListTopics(ctx context.Context, topics ...string) (kadm.TopicDetails, error) {
	f.record(ctx)
	f.listCalls = append(f.listCalls, topics)
	return f.topics, f.listErr
}

func (f *fakeAPI) BrokerMetadata(ctx context.Context) (kadm.Metadata, error) {
	f.record(ctx)
	return f.meta, f.metaErr
}

func (f *fakeAPI) ListGroups(ctx context.Context, _ ...string) (kadm.ListedGroups, error) {
	f.record(ctx)
	return f.listed, f.listedErr
}

func (f *fakeAPI) DescribeGroups(ctx context.Context, groups ...string) (kadm.DescribedGroups, error) {
	f.record(ctx)
	f.describeCalls = append(f.describeCalls, groups)
	return f.described, f.describeErr
}

func (f *fakeAPI) Lag(ctx context.Context, groups ...string) (kadm.DescribedGroupLags, error) {
	f.record(ctx)
	f.lagCalls = append(f.lagCalls, groups)
	return f.lags, f.lagErr
}

func strPtr(s string) *string { return &s }

func TestNewAdminTimeouts(t *testing.T) {
	a := NewAdmin(&fakeAPI{}, 0)
	require.Equal(t, defaultReadTimeout, a.readTimeout)
	require.Equal(t, defaultGroupTimeout, a.groupTimeout)
	require.Equal(t, defaultWriteTimeout, a.writeTimeout)

	a = NewAdmin(&fakeAPI{}, 2*time.Second)
	require.Equal(t, 2*time.Second, a.readTimeout)
	require.Equal(t, 2*time.Second, a.groupTimeout)
	require.Equal(t, 2*time.Second, a.writeTimeout)
}

func TestAdminCreateTopics(t *testing.T) {
	t.Run("batches by settings", func(t *testing.T) {
		api := &fakeAPI{createResp: kadm.CreateTopicResponses{}}
		a := NewAdmin(api, 0)

		err := a.CreateTopics(context.Background(),
			domain.TopicSpec{Name: "a", Partitions: 3, ReplicationFactor: 2},
			domain.TopicSpec{Name: "b", Partitions: 1, ReplicationFactor: 1},
			domain.TopicSpec{Name: "c", Partitions: 3, ReplicationFactor: 2},
		)
		require.NoError(t, err)
		require.Equal(t, []createCall{
			{3, 2, []string{"a", "c"}},
			{1, 1, []string{"b"}},
		}, api.createCalls)
		require.Len(t, api.deadlines, 2)
		require.LessOrEqual(t, api.deadlines[0], defaultWriteTimeout)
		require.Greater(t, api.deadlines[0], defaultGroupTimeout)
	})

	t.Run("topic exists is classified", func(t *testing.T) {
		api := &fakeAPI{createResp: kadm.CreateTopicResponses{
			"orders": {Topic: "orders", Err: kerr.TopicAlreadyExists},
		}}
		err := NewAdmin(api, 0).CreateTopics(context.Background(), domain.TopicSpec{Name: "orders", Partitions: 1, ReplicationFactor: 1})
		require.ErrorIs(t, err, domain.ErrTopicExists)
		require.ErrorIs(t, err, kerr.TopicAlreadyExists)

		var de *domain.DriverError
		require.ErrorAs(t, err, &de)
		require.Equal(t, "orders", de.Name)
	})

	t.Run("other topic error is unknown", func(t *testing.T) {
		api := &fakeAPI{createResp: kadm.CreateTopicResponses{
			"orders": {Topic: "orders", Err: kerr.InvalidReplicationFactor},
		}}
		err := NewAdmin(api, 0).CreateTopics(context.Background(), domain.TopicSpec{Name: "orders", Partitions: 1, ReplicationFactor: 9})
		require.Error(t, err)
		require.Equal(t, domain.FailureUnknown, domain.KindOf(err))
	})

	t.Run("request error", func(t *testing.T) {
		api := &fakeAPI{createErr: context.DeadlineExceeded}
		err := NewAdmin(api, 0).CreateTopics(context.Background(), domain.TopicSpec{Name: "orders", Partitions: 1, ReplicationFactor: 1})
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Equal(t, domain.FailureUnknown, domain.KindOf(err))
	})

	t.Run("nothing to create", func(t *testing.T) {
		api := &fakeAPI{}
		require.NoError(t, NewAdmin(api, 0).CreateTopics(context.Background()))
		require.Empty(t, api.createCalls)
	})
}

func TestAdminListTopics(t *testing.T) {
	api := &fakeAPI{topics: kadm.TopicDetails{
		"zeta":               {Topic: "zeta"},
		"alpha":              {Topic: "alpha"},
		"__consumer_offsets": {Topic: "__consumer_offsets", IsInternal: true},
	}}
	names, err := NewAdmin(api, 0).ListTopics(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "zeta"}, names)
	require.LessOrEqual(t, api.deadlines[0], defaultReadTimeout)

	api = &fakeAPI{listErr: errors.New("connection refused")}
	_, err = NewAdmin(api, 0).ListTopics(context.Background())
	require.ErrorContains(t, err, "list topics: connection refused")
}

func TestAdminDescribeTopics(t *testing.T) {
	t.Run("maps and orders partitions", func(t *testing.T) {
		api := &fakeAPI{topics: kadm.TopicDetails{
			"orders": {
				Topic: "orders",
				Partitions: map[int32]kadm.PartitionDetail{
					1: {Topic: "orders", Partition: 1, Leader: 2, Replicas: []int32{2, 3}, ISR: []int32{2}},
					0: {Topic: "orders", Partition: 0, Leader: 1, Replicas: []int32{1, 2}, ISR: []int32{1, 2}},
				},
			},
		}}
		got, err := NewAdmin(api, 0).DescribeTopics(context.Background(), "orders")
		require.NoError(t, err)
		require.Equal(t, [][]string{{"orders"}}, api.listCalls)

		topic := got["orders"]
		require.Equal(t, "orders", topic.Name)
		require.Empty(t, topic.ID)
		require.Len(t, topic.Partitions, 2)
		require.Equal(t, int32(0), topic.Partitions[0].Index)
		require.Equal(t, int32(1), topic.Partitions[1].Index)
		require.Equal(t, []int32{1}, topic.UnderReplicatedPartitions())
	})

	t.Run("unknown topics are absent", func(t *testing.T) {
		api := &fakeAPI{topics: kadm.TopicDetails{
			"orders":  {Topic: "orders", Partitions: map[int32]kadm.PartitionDetail{}},
			"missing": {Topic: "missing", Err: kerr.UnknownTopicOrPartition},
		}}
		got, err := NewAdmin(api, 0).DescribeTopics(context.Background(), "orders", "missing", "never-returned")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Contains(t, got, "orders")
	})

	t.Run("other topic errors are reported per topic", func(t *testing.T) {
		api := &fakeAPI{topics: kadm.TopicDetails{
			"orders":  {Topic: "orders"},
			"secrets": {Topic: "secrets", Err: kerr.TopicAuthorizationFailed},
			"fresh":   {Topic: "fresh", Err: kerr.LeaderNotAvailable},
		}}
		got, err := NewAdmin(api, 0).DescribeTopics(context.Background(), "orders", "secrets", "fresh")
		require.ErrorIs(t, err, kerr.TopicAuthorizationFailed)
		require.ErrorIs(t, err, kerr.LeaderNotAvailable)

		var failed domain.TopicErrors
		require.ErrorAs(t, err, &failed)
		require.Equal(t, []string{"fresh", "secrets"}, failed.Names())
		require.Len(t, got, 1)
		require.Contains(t, got, "orders")
	})

	t.Run("request error returns no topics", func(t *testing.T) {
		api := &fakeAPI{listErr: errors.New("connection reset")}
		got, err := NewAdmin(api, 0).DescribeTopics(context.Background(), "orders")
		require.Error(t, err)
		require.Nil(t, got)
		var failed domain.TopicErrors
		require.False(t, errors.As(err, &failed))
	})

	t.Run("no names makes no request", func(t *testing.T) {
		api := &fakeAPI{}
		got, err := NewAdmin(api, 0).DescribeTopics(context.Background())
		require.NoError(t, err)
		require.Empty(t, got)
		require.Empty(t, api.listCalls)
	})
}

func TestAdminDeleteTopics(t *testing.T) {
	api := &fakeAPI{deleteResp: kadm.DeleteTopicResponses{"orders": {Topic: "orders"}}}
	require.NoError(t, NewAdmin(api, 0).DeleteTopics(context.Background(), "orders"))
	require.Equal(t, [][]string{{"orders"}}, api.deleteCalls)

	api = &fakeAPI{deleteResp: kadm.DeleteTopicResponses{"ghost": {Topic: "ghost", Err: kerr.UnknownTopicOrPartition}}}
	err := NewAdmin(api, 0).DeleteTopics(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)

	api = &fakeAPI{}
	require.NoError(t, NewAdmin(api, 0).DeleteTopics(context.Background()))
	require.Empty(t, api.deleteCalls)
}

func TestAdminClusterMetadata(t *testing.T) {
	api := &fakeAPI{meta: kadm.Metadata{
		Cluster:    "cluster-1",
		Controller: 2,
		Brokers: kadm.BrokerDetails{
			{NodeID: 2, Host: "broker2", Port: 9093},
			{NodeID: 1, Host: "broker1", Port: 9092, Rack: strPtr("rack-a")},
		},
	}}
	a := NewAdmin(api, 0)
	ctx := context.Background()

	id, err := a.ClusterID(ctx)
	require.NoError(t, err)
	require.Equal(t, "cluster-1", id)

	ctrl, err := a.Controller(ctx)
	require.NoError(t, err)
	require.Equal(t, &domain.ClusterNode{ID: 2, Host: "broker2", Port: 9093}, ctrl)

	nodes, err := a.Nodes(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.ClusterNode{
		{ID: 1, Host: "broker1", Port: 9092, Rack: "rack-a"},
		{ID: 2, Host: "broker2", Port: 9093},
	}, nodes)

	require.NoError(t, a.Ping(ctx))

	t.Run("no controller", func(t *testing.T) {
		api.meta.Controller = -1
		ctrl, err := a.Controller(ctx)
		require.NoError(t, err)
		require.Nil(t, ctrl)
	})

	t.Run("metadata failure", func(t *testing.T) {
		api.metaErr = errors.New("dial tcp: refused")
		require.ErrorContains(t, a.Ping(ctx), "ping: dial tcp: refused")
		_, err := a.Nodes(ctx)
		require.Error(t, err)
	})
}

func TestAdminConsumerGroups(t *testing.T) {
	api := &fakeAPI{
		listed: kadm.ListedGroups{
			"orders-svc": {Group: "orders-svc", ProtocolType: "consumer", State: "Stable"},
			"audit":      {Group: "audit", State: "Empty"},
		},
		described: kadm.DescribedGroups{
			"orders-svc": {
				Group:        "orders-svc",
				State:        "Stable",
				ProtocolType: "consumer",
				Protocol:     "range",
				Coordinator:  kadm.BrokerDetail{NodeID: 1, Host: "broker1", Port: 9092},
				Members: []kadm.DescribedGroupMember{
					{MemberID: "m-2", ClientID: "c2", ClientHost: "/10.0.0.2"},
					{MemberID: "m-1", ClientID: "c1", ClientHost: "/10.0.0.1", InstanceID: strPtr("static-1")},
				},
			},
			"gone":    {Group: "gone", Err: kerr.GroupIDNotFound},
			"removed": {Group: "removed", State: "Dead"},
		},
	}
	a := NewAdmin(api, 0)
	ctx := context.Background()

	listings, err := a.ListConsumerGroups(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.ConsumerGroupListing{
		{GroupID: "audit", State: "Empty", IsSimpleConsumerGroup: true},
		{GroupID: "orders-svc", State: "Stable", ProtocolType: "consumer"},
	}, listings)

	got, err := a.DescribeConsumerGroups(ctx, "orders-svc", "gone", "removed")
	require.NoError(t, err)
	require.Len(t, got, 1)
	g := got["orders-svc"]
	require.Equal(t, "range", g.Protocol)
	require.False(t, g.IsSimpleConsumerGroup)
	require.Equal(t, &domain.ClusterNode{ID: 1, Host: "broker1", Port: 9092}, g.Coordinator)
	require.Len(t, g.Members, 2)
	require.Equal(t, "m-1", g.Members[0].MemberID)
	require.Equal(t, "static-1", g.Members[0].InstanceID)
	require.Empty(t, g.Members[0].Assignment)
	require.LessOrEqual(t, api.deadlines[len(api.deadlines)-1], defaultGroupTimeout)

	t.Run("group error fails the batch", func(t *testing.T) {
		api.described["locked"] = kadm.DescribedGroup{Group: "locked", Err: kerr.GroupAuthorizationFailed}
		_, err := a.DescribeConsumerGroups(ctx, "orders-svc", "locked")
		require.ErrorIs(t, err, kerr.GroupAuthorizationFailed)
	})

	t.Run("no ids makes no request", func(t *testing.T) {
		calls := len(api.describeCalls)
		got, err := a.DescribeConsumerGroups(ctx)
		require.NoError(t, err)
		require.Empty(t, got)
		require.Len(t, api.describeCalls, calls)
	})
}

func TestAdminConsumerGroupLag(t *testing.T) {
	api := &fakeAPI{
		listed: kadm.ListedGroups{"orders-svc": {Group: "orders-svc"}},
		lags: kadm.DescribedGroupLags{
			"orders-svc": {
				Group: "orders-svc",
				State: "Stable",
				Lag: kadm.GroupLag{
					"orders":   {0: {Lag: 4}, 1: {Lag: 6}},
					"invoices": {0: {Lag: 1}},
				},
			},
			"gone": {Group: "gone", DescribeErr: kerr.GroupIDNotFound},
		},
	}
	a := NewAdmin(api, 0)

	got, err := a.ConsumerGroupLag(context.Background(), "orders-svc", "gone")
	require.NoError(t, err)
	require.Equal(t, map[string]domain.GroupLag{
		"orders-svc": {
			GroupID: "orders-svc",
			State:   "Stable",
			Topics:  []domain.TopicLag{{Topic: "invoices", Lag: 1}, {Topic: "orders", Lag: 10}},
			Total:   11,
		},
	}, got)

	t.Run("all groups when none are given", func(t *testing.T) {
		_, err := a.ConsumerGroupLag(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"orders-svc"}, api.lagCalls[len(api.lagCalls)-1])
	})

	t.Run("empty cluster", func(t *testing.T) {
		empty := &fakeAPI{listed: kadm.ListedGroups{}}
		got, err := NewAdmin(empty, 0).ConsumerGroupLag(context.Background())
		require.NoError(t, err)
		require.Empty(t, got)
		require.Empty(t, empty.lagCalls)
	})

	t.Run("fetch error", func(t *testing.T) {
		api.lags["broken"] = kadm.DescribedGroupLag{Group: "broken", State: "Stable", FetchErr: kerr.CoordinatorNotAvailable}
		_, err := a.ConsumerGroupLag(context.Background(), "broken")
		require.ErrorIs(t, err, kerr.CoordinatorNotAvailable)
	})
}

func TestClassify(t *testing.T) {
	require.NoError(t, classify("op", "", nil))
	require.Equal(t, domain.FailureTopicExists, domain.KindOf(classify("op", "t", kerr.TopicAlreadyExists)))
	require.Equal(t, domain.FailureNotFound, domain.KindOf(classify("op", "t", kerr.UnknownTopicOrPartition)))
	require.Equal(t, domain.FailureNotFound, domain.KindOf(classify("op", "t", kerr.UnknownTopicID)))
	require.Equal(t, domain.FailureNotFound, domain.KindOf(classify("op", "g", kerr.GroupIDNotFound)))
	require.Equal(t, domain.FailureUnknown, domain.KindOf(classify("op", "", context.Canceled)))
	require.ErrorIs(t, classify("op", "", context.Canceled), context.Canceled)
}

type scanDriver struct{ *Admin }

func (scanDriver) Close() {}

func TestUnderReplicationScanSkipsErroredTopics(t *testing.T) {
	utils.InitLogger()
	api := &fakeAPI{topics: kadm.TopicDetails{
		"orders": {
			Topic: "orders",
			Partitions: map[int32]kadm.PartitionDetail{
				0: {Topic: "orders", Partition: 0, Leader: 1, Replicas: []int32{1, 2}, ISR: []int32{1}},
			},
		},
		"fresh": {Topic: "fresh", Err: kerr.LeaderNotAvailable},
	}}
	svc := application.NewAdminService("scan-errored", scanDriver{NewAdmin(api, 0)})

	got, err := svc.FindUnderReplicatedPartitions(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string][]int32{"orders": {0}}, got)
}
