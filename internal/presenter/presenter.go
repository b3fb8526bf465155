package presenter

import (
	"context"
	"errors"
	"sync"

	"github.com/Kawaii2025/interview-qa-app/internal/render"
	"github.com/Kawaii2025/interview-qa-app/internal/service"
)

// State is the lifecycle of one question view's AI answer.
// Exactly one of these holds at any time; "loading and failed" is
// unrepresentable by construction.
type State int

const (
	StateUnfetched State = iota
	StateLoading
	StateResolved
	StateEmpty
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnfetched:
		return "unfetched"
	case StateLoading:
		return "loading"
	case StateResolved:
		return "resolved"
	case StateEmpty:
		return "empty"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrBusy is returned when a trigger fires while an operation for the same
// view is already in flight. The UI disables the control during Loading, but
// a second tab or a retried request is not prevented by a disabled button,
// so the presenter guards too.
var ErrBusy = errors.New("an operation is already in flight for this view")

// View is a snapshot of the presenter's state. HTML is sanitized output from
// the renderer; Reason is a human-readable failure message.
type View struct {
	State  State
	HTML   string
	Reason string
}

// AnswerPresenter drives the resolver through one question view's lifecycle
// and feeds resolved content to the sanitizing renderer.
//
// The resolver calls run outside the lock; when one completes, its result is
// applied only if the request token captured at launch still matches. A view
// that was closed or re-opened meanwhile bumps the token, so the late result
// is discarded silently — the underlying call is allowed to finish, nobody
// acts on it.
type AnswerPresenter struct {
	resolver service.AnswerResolver
	renderer *render.Renderer

	mu         sync.Mutex
	questionID uint
	state      State
	html       string
	reason     string
	token      uint64
}

func NewAnswerPresenter(resolver service.AnswerResolver, renderer *render.Renderer) *AnswerPresenter {
	return &AnswerPresenter{
		resolver: resolver,
		renderer: renderer,
		state:    StateUnfetched,
	}
}

// Open binds the presenter to a question view, discarding any in-flight
// result for the previous one.
func (p *AnswerPresenter) Open(questionID uint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.questionID = questionID
	p.state = StateUnfetched
	p.html = ""
	p.reason = ""
	p.token++
}

// Close detaches the presenter from its view. In-flight results arriving
// after Close are discarded.
func (p *AnswerPresenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.questionID = 0
	p.state = StateUnfetched
	p.html = ""
	p.reason = ""
	p.token++
}

// Fetch resolves the stored answer, if any. Terminal state is Resolved,
// Empty (confirmed absent) or Failed.
func (p *AnswerPresenter) Fetch(ctx context.Context) error {
	return p.run(ctx, p.resolver.Resolve)
}

// Generate requests generation for a question with no stored answer.
// Valid from Empty (or Failed, as a retry).
func (p *AnswerPresenter) Generate(ctx context.Context) error {
	return p.run(ctx, p.resolver.GenerateAndStore)
}

// Regenerate replaces an existing answer. Valid from Resolved (or Failed).
func (p *AnswerPresenter) Regenerate(ctx context.Context) error {
	return p.run(ctx, p.resolver.Regenerate)
}

// Snapshot returns the current view state.
func (p *AnswerPresenter) Snapshot() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return View{State: p.state, HTML: p.html, Reason: p.reason}
}

type resolveFn func(ctx context.Context, questionID uint) (*service.Resolution, error)

func (p *AnswerPresenter) run(ctx context.Context, fn resolveFn) error {
	p.mu.Lock()
	if p.state == StateLoading {
		p.mu.Unlock()
		return ErrBusy
	}
	p.state = StateLoading
	questionID := p.questionID
	tok := p.token
	p.mu.Unlock()

	resolution, err := fn(ctx, questionID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token != tok {
		// Stale: the view moved on while this call was in flight.
		return nil
	}
	if err != nil {
		p.state = StateFailed
		p.reason = failureReason(err)
		return nil
	}
	switch resolution.Status {
	case service.ResolutionFound:
		p.state = StateResolved
		p.html = p.renderer.Render(resolution.Content)
		p.reason = ""
	case service.ResolutionNotYetGenerated:
		p.state = StateEmpty
		p.html = ""
		p.reason = ""
	}
	return nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, service.ErrQuestionMissing):
		return "This question no longer exists."
	case errors.Is(err, service.ErrGenerationFailed):
		return "The AI answer could not be generated. Please try again."
	case errors.Is(err, service.ErrStoreUnavailable):
		return "The answer store is temporarily unavailable. Please retry."
	default:
		return "Something went wrong. Please retry."
	}
}
