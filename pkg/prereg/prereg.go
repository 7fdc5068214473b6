// Package prereg maps recognition results onto the hierarchical MOSIP
// identity schema and simulates the pre-registration submission flow. The
// real pre-registration service is an external collaborator; this package
// only produces its payload shape and a simulated receipt.
package prereg

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/baditaflorin/l"

	"github.com/Khushi-Roy-123/MOSIP/internal/adapters/logger"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/domain"
	"github.com/Khushi-Roy-123/MOSIP/internal/ports"
)

// IdentityValue is a localized value in the MOSIP identity schema.
type IdentityValue struct {
	Value    string `json:"value"`
	Language string `json:"language"`
}

// Identity is the MOSIP ID schema subset populated from an extraction.
type Identity struct {
	FullName        []IdentityValue `json:"fullName"`
	DateOfBirth     string          `json:"dateOfBirth,omitempty"`
	Age             string          `json:"age,omitempty"`
	Gender          []IdentityValue `json:"gender"`
	AddressLine1    []IdentityValue `json:"addressLine1"`
	ResidenceStatus []IdentityValue `json:"residenceStatus"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
}

// IdentityJSON is the envelope the pre-registration service consumes.
type IdentityJSON struct {
	Identity Identity `json:"identity"`
}

// MapIdentity flattens a recognition result into the MOSIP identity schema.
func MapIdentity(result *domain.RecognitionResult) IdentityJSON {
	language := result.DetectedLanguage
	if language == "" {
		language = "eng"
	}

	return IdentityJSON{
		Identity: Identity{
			FullName: []IdentityValue{
				{Value: result.Fields.Lookup(domain.FieldName).Value, Language: language},
			},
			Age: result.Fields.Lookup(domain.FieldAge).Value,
			Gender: []IdentityValue{
				// Gender codes are normalized, so they stay in "eng".
				{Value: result.Fields.Lookup(domain.FieldGender).Value, Language: "eng"},
			},
			AddressLine1: []IdentityValue{
				{Value: result.Fields.Lookup(domain.FieldAddress).Value, Language: language},
			},
			ResidenceStatus: []IdentityValue{
				{Value: "Resident", Language: "eng"},
			},
			Phone: result.Fields.Lookup(domain.FieldPhone).Value,
			Email: result.Fields.Lookup(domain.FieldEmail).Value,
		},
	}
}

// Receipt is the simulated pre-registration response.
type Receipt struct {
	Status    string `json:"status"`
	PRID      string `json:"prid"`
	Timestamp string `json:"timestamp"`
}

// Client simulates the pre-registration submission workflow: handshake,
// schema validation and packet creation, each with its own latency.
type Client struct {
	logger ports.Logger
	stages []stage

	mu  sync.Mutex
	rng *rand.Rand
}

type stage struct {
	name  string
	delay time.Duration
}

// ClientOption configures the simulated client.
type ClientOption func(*Client)

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger.FromExisting(lg)
	}
}

// WithStageDelays overrides the simulated latencies for the handshake,
// schema validation and packet creation stages. Useful in tests.
func WithStageDelays(handshake, validation, packet time.Duration) ClientOption {
	return func(c *Client) {
		c.stages = []stage{
			{"handshake", handshake},
			{"schema_validation", validation},
			{"packet_creation", packet},
		}
	}
}

// NewClient creates a simulated pre-registration client.
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		stages: []stage{
			{"handshake", 1000 * time.Millisecond},
			{"schema_validation", 1500 * time.Millisecond},
			{"packet_creation", 1000 * time.Millisecond},
		},
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		lg, err := logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
		c.logger = lg
	}
	return c, nil
}

// Submit walks the staged submission flow and returns a receipt with a
// 14-digit PRID. It honours context cancellation between stages.
func (c *Client) Submit(ctx context.Context, payload IdentityJSON) (*Receipt, error) {
	c.logger.Info("Submitting pre-registration packet",
		"full_name", fullName(payload),
	)

	for _, st := range c.stages {
		c.logger.Debug("Pre-registration stage", "stage", st.name, "delay", st.delay)
		if err := sleepCtx(ctx, st.delay); err != nil {
			c.logger.Warn("Submission cancelled", "stage", st.name, "error", err)
			return nil, err
		}
	}

	receipt := &Receipt{
		Status:    "Created",
		PRID:      c.newPRID(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	c.logger.Info("Pre-registration packet created", "prid", receipt.PRID)
	return receipt, nil
}

// newPRID generates a random 14-digit pre-registration ID with the fixed
// "29" prefix used by the simulated service.
func (c *Client) newPRID() string {
	c.mu.Lock()
	n := c.rng.Int63n(1_000_000_000_000)
	c.mu.Unlock()
	return fmt.Sprintf("29%012d", n)
}

// fullName extracts the primary full name from a payload, tolerating
// hand-built payloads that omit the localized value list.
func fullName(payload IdentityJSON) string {
	if len(payload.Identity.FullName) == 0 {
		return ""
	}
	return payload.Identity.FullName[0].Value
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
