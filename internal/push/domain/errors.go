package domain

import "errors"

var (
	// ErrChannelDisabled is returned when no delivery channel is configured
	ErrChannelDisabled = errors.New("push channel is disabled (no FCM client configured)")

	// ErrTopicRejected is returned for malformed or non-whitelisted topic names
	ErrTopicRejected = errors.New("topic rejected")

	// ErrTemplateNotFound is returned when a template code has no row
	ErrTemplateNotFound = errors.New("template not found")
)
