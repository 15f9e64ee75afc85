// Package domain defines the entities and interfaces shared by the Kafka admin API.
// It includes value snapshots for topics, partitions, cluster nodes and consumer
// groups, the ClusterDriver capability the administration core consumes, and the
// structured failure classification drivers report.
package domain

import "sort"

// ClusterNode is a broker as reported in cluster metadata.
type ClusterNode struct {
	ID   int32  `json:"id"`
	Host string `json:"host"`
	Port int32  `json:"port"`
	Rack string `json:"rack,omitempty"`
}

// ClusterSnapshot is the point-in-time view returned by a describe-cluster call.
type ClusterSnapshot struct {
	ID         string        `json:"cluster_id"`
	Controller *ClusterNode  `json:"controller"`
	Nodes      []ClusterNode `json:"nodes"`
}

// SortNodes orders nodes by id in place and returns them.
func SortNodes(nodes []ClusterNode) []ClusterNode {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}
