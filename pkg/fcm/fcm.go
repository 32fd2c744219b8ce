package fcm

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// BatchResult summarizes one topic-management call against the provider
type BatchResult struct {
	SuccessCount int
	FailureCount int
}

// Messenger is the push-provider surface used by the dispatcher and the
// subscription manager. It is satisfied by Client and by test fakes.
type Messenger interface {
	Send(ctx context.Context, msg *messaging.Message) (string, error)
	SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*BatchResult, error)
	UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) (*BatchResult, error)
}

// Client wraps Firebase Cloud Messaging functionality
type Client struct {
	messagingClient *messaging.Client
}

// NewClient creates a new FCM client using the provided credentials file
func NewClient(credentialsFile string) (*Client, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Println("[FCM] Client initialized successfully")
	return &Client{
		messagingClient: messagingClient,
	}, nil
}

// Send delivers a single message (token or topic target) and returns the provider message ID
func (c *Client) Send(ctx context.Context, msg *messaging.Message) (string, error) {
	return c.messagingClient.Send(ctx, msg)
}

// SubscribeToTopic subscribes one batch of tokens to a topic
func (c *Client) SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*BatchResult, error) {
	resp, err := c.messagingClient.SubscribeToTopic(ctx, tokens, topic)
	if err != nil {
		return nil, err
	}
	return &BatchResult{SuccessCount: resp.SuccessCount, FailureCount: resp.FailureCount}, nil
}

// UnsubscribeFromTopic removes one batch of tokens from a topic
func (c *Client) UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) (*BatchResult, error) {
	resp, err := c.messagingClient.UnsubscribeFromTopic(ctx, tokens, topic)
	if err != nil {
		return nil, err
	}
	return &BatchResult{SuccessCount: resp.SuccessCount, FailureCount: resp.FailureCount}, nil
}
