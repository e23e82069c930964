package funnel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Echolyx123/advansells-frontend/internal/brain"
	"github.com/Echolyx123/advansells-frontend/internal/cta"
	"github.com/Echolyx123/advansells-frontend/internal/policy"
	"github.com/Echolyx123/advansells-frontend/internal/render"
)

// Notice is a user-facing dialog. When Reset is set, dismissing it emits a
// DismissNotice event and the run starts over from step 0.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Reset   bool   `json:"reset"`
}

// Outcome is what a handled event produces for the presentation layer. Any
// combination of fields may be set; all empty means the event was dropped.
type Outcome struct {
	Plan   *render.Plan
	Notice *Notice
	Action *cta.Action
}

// Engine advances one funnel run. It owns the State exclusively and must be
// driven from a single goroutine; the gateway's in-flight guard covers the
// window where a call is pending but the user can still interact.
type Engine struct {
	state    *State
	gateway  *brain.Gateway
	renderer *render.Renderer
	resolver *cta.Resolver
}

func NewEngine(gateway *brain.Gateway, renderer *render.Renderer, resolver *cta.Resolver) *Engine {
	return &Engine{
		state:    NewState(),
		gateway:  gateway,
		renderer: renderer,
		resolver: resolver,
	}
}

// Snapshot returns a copy of the current session state.
func (e *Engine) Snapshot() State {
	return e.state.Snapshot()
}

// Start produces the initial step-0 surface.
func (e *Engine) Start() Outcome {
	plan := e.renderer.EmailCapturePlan()
	return Outcome{Plan: &plan}
}

// Handle applies one event. A *ValidationError return means the transition
// was rejected locally with state untouched; every other failure mode is
// expressed inside the Outcome (notice, reset-on-dismiss). Events arriving
// while a backend call is in flight are dropped without effect.
func (e *Engine) Handle(ctx context.Context, ev Event) (Outcome, error) {
	switch ev := ev.(type) {
	case SubmitEmail:
		return e.handleSubmitEmail(ev)
	case SubmitProfile:
		return e.handleSubmitProfile(ctx, ev)
	case SelectOption:
		return e.handleUserResponse(ctx, ev.Text, brain.ActionUserResponse)
	case SubmitFreeText:
		return e.handleFreeText(ctx, ev)
	case Continue:
		return e.handleContinue(ctx)
	case ResolveCTA:
		return e.handleResolveCTA(ctx, ev)
	case DismissNotice:
		e.state.Reset()
		plan := e.renderer.EmailCapturePlan()
		return Outcome{Plan: &plan}, nil
	default:
		return Outcome{}, fmt.Errorf("unhandled event type %T", ev)
	}
}

func (e *Engine) handleSubmitEmail(ev SubmitEmail) (Outcome, error) {
	if e.state.CurrentStep != StepCollectingEmail {
		return Outcome{}, validationError("Unexpected Input", "The funnel has already started.")
	}

	email := strings.TrimSpace(ev.Email)
	if email == "" {
		return Outcome{}, validationError("Input Required", "Please enter your email address to begin.")
	}
	if !policy.ValidEmail(email) {
		return Outcome{}, validationError("Invalid Email", "Please enter a valid email address.")
	}

	e.state.Email = email
	e.state.CurrentStep = StepCollectingProfile
	plan := e.renderer.ProfileFormPlan(Roles(), Interests())
	return Outcome{Plan: &plan}, nil
}

func (e *Engine) handleSubmitProfile(ctx context.Context, ev SubmitProfile) (Outcome, error) {
	if e.state.CurrentStep != StepCollectingProfile {
		return Outcome{}, validationError("Unexpected Input", "Please start with your email address.")
	}

	role := strings.TrimSpace(ev.UserRole)
	interest := strings.TrimSpace(ev.PrimaryInterest)
	if role == "" || interest == "" {
		return Outcome{}, validationError("Input Required", "Please select your role and primary interest.")
	}
	if !validRole(role) || !validInterest(interest) {
		return Outcome{}, validationError("Invalid Selection", "Please choose a role and interest from the provided options.")
	}

	if e.gateway.Busy() {
		return Outcome{}, nil
	}

	prev := *e.state
	e.state.CompanyName = strings.TrimSpace(ev.CompanyName)
	e.state.UserRole = role
	e.state.PrimaryInterest = interest
	e.state.CurrentStep = StepAIInteraction

	prompt := e.introPrompt()
	e.state.appendUserTurn(prompt)

	return e.callBackend(ctx, brain.ActionSubmitInitialDetails, prompt, func() {
		*e.state = prev
	})
}

func (e *Engine) handleFreeText(ctx context.Context, ev SubmitFreeText) (Outcome, error) {
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return Outcome{}, validationError("Input Required", "Please type your response before submitting.")
	}
	return e.handleUserResponse(ctx, text, brain.ActionUserFreeInput)
}

func (e *Engine) handleUserResponse(ctx context.Context, text string, action brain.FunnelAction) (Outcome, error) {
	if e.state.CurrentStep < StepAIInteraction {
		return Outcome{}, validationError("Unexpected Input", "Please complete your details first.")
	}
	if strings.TrimSpace(text) == "" {
		return Outcome{}, validationError("Input Required", "Please choose a response.")
	}

	if e.gateway.Busy() {
		return Outcome{}, nil
	}

	// The user turn lands in history before the call goes out; the model turn
	// is appended only once that call's response is accepted.
	e.state.appendUserTurn(text)
	e.state.CurrentStep++

	return e.callBackend(ctx, action, text, func() {
		e.state.dropLastTurn()
		e.state.CurrentStep--
	})
}

func (e *Engine) handleContinue(ctx context.Context) (Outcome, error) {
	if e.state.CurrentStep < StepAIInteraction {
		return Outcome{}, validationError("Unexpected Input", "Please complete your details first.")
	}

	if e.gateway.Busy() {
		return Outcome{}, nil
	}

	e.state.appendUserTurn("Proceed to the next step.")
	e.state.CurrentStep++

	return e.callBackend(ctx, brain.ActionContinueFunnel, "", func() {
		e.state.dropLastTurn()
		e.state.CurrentStep--
	})
}

func (e *Engine) handleResolveCTA(ctx context.Context, ev ResolveCTA) (Outcome, error) {
	if e.state.CurrentStep < StepAIInteraction {
		return Outcome{}, validationError("Unexpected Input", "There is no offer to act on yet.")
	}

	action, err := e.resolver.Resolve(ctx, ev.Label)
	if err != nil {
		// Registry failure already degraded to the fallback action; the run
		// still terminates safely.
		err = nil
	}

	e.state.Reset()
	plan := e.renderer.EmailCapturePlan()
	return Outcome{Action: &action, Plan: &plan}, err
}

func (e *Engine) callBackend(ctx context.Context, action brain.FunnelAction, userResponse string, undo func()) (Outcome, error) {
	resp, err := e.gateway.Send(ctx, e.buildRequest(action, userResponse))
	if err != nil {
		if errors.Is(err, brain.ErrConcurrentRequest) {
			// Lost the race against an in-flight call: drop the event and put
			// history and step back exactly as they were.
			if undo != nil {
				undo()
			}
			return Outcome{}, nil
		}
		return Outcome{Notice: gatewayNotice(err)}, nil
	}

	parsed, err := render.Parse(resp)
	if err != nil {
		return Outcome{Notice: renderNotice(err)}, nil
	}

	e.state.appendModelTurn(parsed.Text())
	plan := e.renderer.PlanFor(parsed)
	return Outcome{Plan: &plan}, nil
}

func (e *Engine) buildRequest(action brain.FunnelAction, userResponse string) brain.FunnelRequest {
	history := make([]brain.HistoryTurn, 0, len(e.state.ChatHistory))
	for _, t := range e.state.ChatHistory {
		history = append(history, brain.HistoryTurn{
			Role:  string(t.Role),
			Parts: []brain.TurnPart{{Text: t.Text}},
		})
	}
	return brain.FunnelRequest{
		Email:           e.state.Email,
		CompanyName:     e.state.CompanyName,
		UserRole:        e.state.UserRole,
		PrimaryInterest: e.state.PrimaryInterest,
		ChatHistory:     history,
		CurrentStep:     e.state.CurrentStep,
		Action:          action,
		UserResponse:    userResponse,
	}
}

func (e *Engine) introPrompt() string {
	company := e.state.CompanyName
	if company == "" {
		company = "N/A"
	}
	return fmt.Sprintf(
		"User email: %s. Company: %s. Role: %s. Primary Interest: %s. "+
			"The user has just provided initial details. Initiate a personalized sales funnel. "+
			"Start by acknowledging their interest and asking a concise, engaging question related to their primary interest to dive deeper.",
		e.state.Email, company, e.state.UserRole, e.state.PrimaryInterest,
	)
}

func gatewayNotice(err error) *Notice {
	var backendErr *brain.BackendError
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return &Notice{Title: "Error", Message: backendErr.Message, Reset: true}
	}
	return &Notice{
		Title:   "Error",
		Message: "Could not connect to the AI. Please ensure the backend service is running and accessible.",
		Reset:   true,
	}
}

func renderNotice(err error) *Notice {
	var unrecognized *render.UnrecognizedTypeError
	if errors.As(err, &unrecognized) {
		return &Notice{
			Title:   "AI Response Error",
			Message: "The AI returned an unexpected response. Please try resetting the funnel.",
			Reset:   true,
		}
	}
	return &Notice{
		Title:   "AI Error",
		Message: "Received an empty or invalid response from the AI. Please try again.",
		Reset:   true,
	}
}
