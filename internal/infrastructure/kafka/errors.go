package kafka

import (
	"errors"

	"github.com/OliveiraNt/kafka-admin-api/internal/domain"
	"github.com/twmb/franz-go/pkg/kerr"
)

// classify wraps a franz-go failure into a domain.DriverError, deriving the
// kind from the Kafka error code when there is one.
func classify(op, name string, err error) error {
	if err == nil {
		return nil
	}
	return &domain.DriverError{Op: op, Name: name, Kind: kindOf(err), Err: err}
}

func kindOf(err error) domain.FailureKind {
	switch {
	case errors.Is(err, kerr.TopicAlreadyExists):
		return domain.FailureTopicExists
	case errors.Is(err, kerr.UnknownTopicOrPartition),
		errors.Is(err, kerr.UnknownTopicID),
		errors.Is(err, kerr.GroupIDNotFound):
		return domain.FailureNotFound
	}
	return domain.FailureUnknown
}

func isUnknownTopic(err error) bool {
	return errors.Is(err, kerr.UnknownTopicOrPartition) || errors.Is(err, kerr.UnknownTopicID)
}

func isUnknownGroup(err error) bool {
	return errors.Is(err, kerr.GroupIDNotFound)
}
