// Package funnel owns the lead-qualification state machine: session state,
// the closed event set, and the transition engine.
package funnel

// Role attributes a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one entry in the conversation history.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Funnel steps. Step 0 collects the email, step 1 the profile form, and
// everything from step 2 on is AI-driven interaction.
const (
	StepCollectingEmail   = 0
	StepCollectingProfile = 1
	StepAIInteraction     = 2
)

// State holds one funnel run. It lives for a single page session and is
// mutated only by the Engine. ChatHistory is append-only within a run and its
// order is load-bearing: it is sent verbatim to the backend as context.
type State struct {
	Email           string `json:"email"`
	CompanyName     string `json:"company_name"`
	UserRole        string `json:"user_role"`
	PrimaryInterest string `json:"primary_interest"`
	ChatHistory     []Turn `json:"chat_history"`
	CurrentStep     int    `json:"current_step"`
}

func NewState() *State {
	return &State{}
}

// Reset returns the run to step 0 with everything cleared. Idempotent; this
// is the only terminal transition the funnel has.
func (s *State) Reset() {
	*s = State{}
}

func (s *State) appendUserTurn(text string) {
	s.ChatHistory = append(s.ChatHistory, Turn{Role: RoleUser, Text: text})
}

func (s *State) appendModelTurn(text string) {
	s.ChatHistory = append(s.ChatHistory, Turn{Role: RoleModel, Text: text})
}

func (s *State) dropLastTurn() {
	if n := len(s.ChatHistory); n > 0 {
		s.ChatHistory = s.ChatHistory[:n-1]
	}
}

// Snapshot returns a copy safe to read outside the engine goroutine.
func (s *State) Snapshot() State {
	out := *s
	out.ChatHistory = make([]Turn, len(s.ChatHistory))
	copy(out.ChatHistory, s.ChatHistory)
	return out
}
