package domain

import "sort"

// NoLeader marks a partition without a known leader.
const NoLeader int32 = -1

// TopicSpec describes a topic to create.
type TopicSpec struct {
	Name              string
	Partitions        int32
	ReplicationFactor int16
}

// Partition holds the assignment of one topic partition.
type Partition struct {
	Index    int32   `json:"partition"`
	Leader   int32   `json:"leader"`
	Replicas []int32 `json:"replicas"`
	ISR      []int32 `json:"isr"`
}

// UnderReplicated reports whether fewer replicas are in sync than assigned.
func (p Partition) UnderReplicated() bool {
	return len(p.ISR) < len(p.Replicas)
}

// Offline reports whether the partition has no leader.
func (p Partition) Offline() bool {
	return p.Leader == NoLeader
}

// Topic is a described topic with its partitions ordered by index.
type Topic struct {
	Name       string      `json:"name"`
	ID         string      `json:"id,omitempty"`
	Internal   bool        `json:"internal"`
	Partitions []Partition `json:"partitions"`
}

// PartitionCount returns the number of partitions.
func (t Topic) PartitionCount() int {
	return len(t.Partitions)
}

// ReplicationFactor returns the replica count of the first partition, or 0 for a topic without partitions.
func (t Topic) ReplicationFactor() int {
	if len(t.Partitions) == 0 {
		return 0
	}
	return len(t.Partitions[0].Replicas)
}

// UnderReplicatedPartitions returns the ascending indices of partitions whose ISR is smaller than their replica set.
func (t Topic) UnderReplicatedPartitions() []int32 {
	var out []int32
	for _, p := range t.Partitions {
		if p.UnderReplicated() {
			out = append(out, p.Index)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SortPartitions orders partitions by index in place and returns them.
func SortPartitions(parts []Partition) []Partition {
	sort.Slice(parts, func(i, j int) bool { return parts[i].Index < parts[j].Index })
	return parts
}
