package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FailureKind classifies a driver failure.
type FailureKind int

const (
	// FailureUnknown covers transport errors and every cluster error without a dedicated kind.
	FailureUnknown FailureKind = iota
	// FailureTopicExists means a create collided with an existing topic.
	FailureTopicExists
	// FailureNotFound means the named topic or group does not exist.
	FailureNotFound
)

func (k FailureKind) String() string {
	switch k {
	case FailureTopicExists:
		return "topic_exists"
	case FailureNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

var (
	// ErrTopicExists matches driver errors of kind FailureTopicExists.
	ErrTopicExists = errors.New("topic exists")
	// ErrNotFound matches driver errors of kind FailureNotFound.
	ErrNotFound = errors.New("not found")
)

// DriverError is the failure a ClusterDriver returns, carrying its classification.
type DriverError struct {
	Op   string
	Name string
	Kind FailureKind
	Err  error
}

func (e *DriverError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DriverError) Unwrap() error { return e.Err }

// Is matches the kind sentinels.
func (e *DriverError) Is(target error) bool {
	switch target {
	case ErrTopicExists:
		return e.Kind == FailureTopicExists
	case ErrNotFound:
		return e.Kind == FailureNotFound
	}
	return false
}

// KindOf returns the failure kind of the first DriverError in err's chain.
func KindOf(err error) FailureKind {
	var de *DriverError
	if errors.As(err, &de) {
		return de.Kind
	}
	return FailureUnknown
}

// TopicErrors holds the per-topic failures of a describe call, keyed by
// topic name. DescribeTopics returns it together with the topics that could
// be described.
type TopicErrors map[string]error

func (e TopicErrors) Error() string {
	names := e.Names()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, e[name].Error())
	}
	return strings.Join(parts, "; ")
}

// Unwrap exposes every per-topic failure to errors.Is and errors.As.
func (e TopicErrors) Unwrap() []error {
	out := make([]error, 0, len(e))
	for _, name := range e.Names() {
		out = append(out, e[name])
	}
	return out
}

// Names returns the failed topic names in ascending order.
func (e TopicErrors) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
