package agent

import (
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/tbxark/intakeagent/profile"
	"github.com/tbxark/intakeagent/types"
)

// Session is the state of one conversation. It is owned by the caller and
// must not be shared between concurrent turns.
type Session struct {
	ID             string            `json:"id"`
	Phase          types.Phase       `json:"phase" jsonschema:"enum=collecting,enum=confirming,enum=awaiting_feedback,enum=feedback_received"`
	Profile        *profile.Profile  `json:"profile"`
	TurnCount      int               `json:"turn_count"`
	Messages       []*schema.Message `json:"messages"`
	LatestReply    string            `json:"latest_reply,omitempty"`
	Feedback       []string          `json:"feedback,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func NewSession(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now()
	return &Session{
		ID:        id,
		Phase:     types.PhaseCollecting,
		Profile:   profile.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type Response struct {
	Message   string            `json:"message"`
	Phase     types.Phase       `json:"phase"`
	Profile   *profile.Profile  `json:"profile,omitempty"`
	TurnCount int               `json:"turn_count"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
