package render

// ActionKind tags an interactive action in a plan. The presentation layer
// dispatches on these via a single delegated listener; action IDs are stable
// across re-renders so no handlers need rebinding.
type ActionKind string

const (
	ActionSubmitEmail   ActionKind = "submit_email"
	ActionSubmitProfile ActionKind = "submit_profile"
	ActionSelectOption  ActionKind = "select_option"
	ActionSubmitText    ActionKind = "submit_text"
	ActionResolveCTA    ActionKind = "resolve_cta"
)

// InputKind tags a data-capture slot in a plan.
type InputKind string

const (
	InputEmail    InputKind = "email"
	InputText     InputKind = "text"
	InputTextarea InputKind = "textarea"
	InputSelect   InputKind = "select"
)

// Input describes one capture slot the presentation layer should render.
type Input struct {
	ID          string    `json:"id"`
	Kind        InputKind `json:"kind"`
	Label       string    `json:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Required    bool      `json:"required"`
}

// Action describes one interactive element. Label is sanitized display text;
// Value carries the literal text fed back into the state machine when the
// action fires.
type Action struct {
	ID    string     `json:"id"`
	Kind  ActionKind `json:"kind"`
	Label string     `json:"label"`
	Value string     `json:"value,omitempty"`
}

// Plan is the declarative description of one funnel surface: title, body,
// capture slots, and the actions the user may take. All display text has
// already passed the sanitizing boundary.
type Plan struct {
	Title   string   `json:"title"`
	Body    string   `json:"body,omitempty"`
	Inputs  []Input  `json:"inputs,omitempty"`
	Actions []Action `json:"actions"`
}
