package application

import (
	"errors"
	"fmt"
)

var (
	// ErrClusterNotFound is returned when a cluster is not found
	ErrClusterNotFound = errors.New("cluster not found")

	// ErrTopicAlreadyExists matches every *AlreadyExistsError.
	ErrTopicAlreadyExists = errors.New("topic already exists")

	// ErrTransportFailure matches every *TransportError.
	ErrTransportFailure = errors.New("transport failure")

	// ErrInvalidTopicName is returned when a topic name is empty
	ErrInvalidTopicName = errors.New("invalid topic name")

	// ErrInvalidPartitionCount is returned when a partition count is not positive
	ErrInvalidPartitionCount = errors.New("invalid partition count")

	// ErrInvalidReplicationFactor is returned when a replication factor is not positive
	ErrInvalidReplicationFactor = errors.New("invalid replication factor")

	// ErrNoNamesRequested is returned when a batch describe gets no names
	ErrNoNamesRequested = errors.New("no names requested")
)

// AlreadyExistsError reports a create that collided with an existing topic.
type AlreadyExistsError struct {
	Topic string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("topic %q already exists", e.Topic)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrTopicAlreadyExists
}

// TransportError wraps every failure that is not a recognised collision:
// network, protocol, authorization, broker-side rejection or cancellation.
type TransportError struct {
	Op      string
	Cluster string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s on cluster %q: %v", e.Op, e.Cluster, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool {
	return target == ErrTransportFailure
}

func isValidation(err error) bool {
	return errors.Is(err, ErrInvalidTopicName) ||
		errors.Is(err, ErrInvalidPartitionCount) ||
		errors.Is(err, ErrInvalidReplicationFactor) ||
		errors.Is(err, ErrNoNamesRequested)
}
