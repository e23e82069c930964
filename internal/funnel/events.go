package funnel

// Event is the closed set of inputs the engine consumes. The presentation
// layer only ever emits events; it never calls transition logic directly.
type Event interface {
	isEvent()
}

// SubmitEmail starts the funnel from step 0.
type SubmitEmail struct {
	Email string
}

// SubmitProfile completes the step-1 form. CompanyName is optional.
type SubmitProfile struct {
	CompanyName     string
	UserRole        string
	PrimaryInterest string
}

// SelectOption answers a multiple-choice question with the option's literal
// text. No indices travel to the backend.
type SelectOption struct {
	Text string
}

// SubmitFreeText answers an input_required prompt.
type SubmitFreeText struct {
	Text string
}

// Continue is the legacy generic advance. The hardened backend always tags
// its responses, so this path is effectively unreachable from the shipped UI.
type Continue struct{}

// ResolveCTA acts on an offer or closing call-to-action.
type ResolveCTA struct {
	Label string
}

// DismissNotice acknowledges a reset-forcing notice.
type DismissNotice struct{}

func (SubmitEmail) isEvent()    {}
func (SubmitProfile) isEvent()  {}
func (SelectOption) isEvent()   {}
func (SubmitFreeText) isEvent() {}
func (Continue) isEvent()       {}
func (ResolveCTA) isEvent()     {}
func (DismissNotice) isEvent()  {}
