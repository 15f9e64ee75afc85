package domain

// ConsumerGroupListing is the lightweight form returned when listing groups.
type ConsumerGroupListing struct {
	GroupID               string `json:"group_id"`
	State                 string `json:"state"`
	ProtocolType          string `json:"protocol_type"`
	IsSimpleConsumerGroup bool   `json:"is_simple_consumer_group"`
}

// TopicAssignment lists the partitions of one topic assigned to a member.
type TopicAssignment struct {
	Topic      string  `json:"topic"`
	Partitions []int32 `json:"partitions"`
}

// GroupMember is one member of a described consumer group.
type GroupMember struct {
	MemberID   string            `json:"member_id"`
	InstanceID string            `json:"instance_id,omitempty"`
	ClientID   string            `json:"client_id"`
	ClientHost string            `json:"client_host"`
	Assignment []TopicAssignment `json:"assignment"`
}

// ConsumerGroupDescription is the detailed form of a consumer group.
type ConsumerGroupDescription struct {
	GroupID               string        `json:"group_id"`
	State                 string        `json:"state"`
	ProtocolType          string        `json:"protocol_type"`
	Protocol              string        `json:"protocol"`
	IsSimpleConsumerGroup bool          `json:"is_simple_consumer_group"`
	Coordinator           *ClusterNode  `json:"coordinator"`
	Members               []GroupMember `json:"members"`
}

// TopicLag is the summed lag of a group on one topic.
type TopicLag struct {
	Topic string `json:"topic"`
	Lag   int64  `json:"lag"`
}

// GroupLag is the lag of a consumer group across the topics it commits to.
type GroupLag struct {
	GroupID string     `json:"group_id"`
	State   string     `json:"state"`
	Topics  []TopicLag `json:"topics"`
	Total   int64      `json:"total"`
}
