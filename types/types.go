package types

type Phase string

const (
	PhaseCollecting       Phase = "collecting"
	PhaseConfirming       Phase = "confirming"
	PhaseAwaitingFeedback Phase = "awaiting_feedback"
	PhaseFeedbackReceived Phase = "feedback_received"
)

// Field is one of the profile slots collected by the agent.
type Field string

const (
	FieldName         Field = "Name"
	FieldPlaceOfBirth Field = "Place of Birth"
	FieldUniversity   Field = "University"
	FieldEmail        Field = "Email"
	FieldOfStudy      Field = "Field of Study"
)

// NotFound is the placeholder for a field absent from an utterance.
const NotFound = "Not found"

// Fields lists every field in canonical order. The order decides which
// question is asked first.
var Fields = []Field{
	FieldName,
	FieldPlaceOfBirth,
	FieldUniversity,
	FieldEmail,
	FieldOfStudy,
}

func (f Field) String() string {
	return string(f)
}

// Valid reports whether f is one of the known fields.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// Describe returns the FieldInfo used when fields are listed in prompts.
func (f Field) Describe() FieldInfo {
	return FieldInfo{
		Field:       f,
		DisplayName: string(f),
		Description: fieldDescriptions[f],
		Required:    true,
	}
}

var fieldDescriptions = map[Field]string{
	FieldName:         "the user's full name",
	FieldPlaceOfBirth: "city or country where the user was born",
	FieldUniversity:   "university or college the user attends or graduated from",
	FieldEmail:        "the user's email address",
	FieldOfStudy:      "the user's field of study or branch",
}

type FieldInfo struct {
	Field       Field  `json:"field"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// DescribeAll maps fields to their FieldInfo, keeping order.
func DescribeAll(fields []Field) []FieldInfo {
	out := make([]FieldInfo, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Describe())
	}
	return out
}

// Outcome tags how a call to the extraction service ended, so that a
// service failure is not mistaken for an absent field.
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeServiceError Outcome = "service_error"
)
