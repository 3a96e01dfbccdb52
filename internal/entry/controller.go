package entry

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/apperror"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/suggest"
)

var (
	// ErrSubmitInProgress rejects a second submit while one is running.
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	// ErrAlreadySubmitted rejects submitting a draft that already succeeded.
	ErrAlreadySubmitted = errors.New("this entry has already been saved")
)

// RecordWriter persists records.
type RecordWriter interface {
	Create(ctx context.Context, rec models.TransactionRecord) (models.TransactionRecord, error)
	Update(ctx context.Context, rec models.TransactionRecord) (models.TransactionRecord, error)
}

// Suggester proposes a label for a description.
type Suggester interface {
	ShouldQuery(description string) bool
	Suggest(ctx context.Context, description string) suggest.Result
}

// FeedbackSink receives confirmed description/category pairs.
type FeedbackSink interface {
	UpdateDataset(ctx context.Context, description, category string) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithSuggester enables category suggestions while the description changes.
func WithSuggester(s Suggester) Option {
	return func(c *Controller) { c.suggester = s }
}

// WithFeedback reports saved expenses whose category differs from the
// suggestion that was shown.
func WithFeedback(f FeedbackSink) Option {
	return func(c *Controller) { c.feedback = f }
}

// WithKnownLabels sets the acceptable categories or sources.
func WithKnownLabels(labels []string) Option {
	return func(c *Controller) { c.known = labels }
}

// WithClock replaces time.Now for the "not in the future" check.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.logger = logging.OrNop(l) }
}

// WithOnSuccess registers a callback run after a successful submit.
func WithOnSuccess(fn func(models.TransactionRecord)) Option {
	return func(c *Controller) { c.onSuccess = fn }
}

// Controller owns one draft and its Editing → Submitting → Success/Failed
// flow. It is safe for concurrent use: suggestion lookups may run while
// the user keeps editing.
type Controller struct {
	mu sync.Mutex

	form    Form
	state   State
	history []State
	message string
	invalid *apperror.ValidationError
	saved   models.TransactionRecord

	// generation increments on every description change; a suggestion is
	// applied only for the generation it was requested for.
	generation   uint64
	labelTouched bool
	suggested    string

	writer    RecordWriter
	suggester Suggester
	feedback  FeedbackSink
	known     []string
	now       func() time.Time
	logger    logging.Logger
	onSuccess func(models.TransactionRecord)
}

// NewController starts a flow in the Editing state.
func NewController(form Form, writer RecordWriter, opts ...Option) *Controller {
	c := &Controller{
		form:    form,
		state:   Editing,
		history: []State{Editing},
		writer:  writer,
		now:     time.Now,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// History returns every state the flow has been in, in order.
func (c *Controller) History() []State {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]State, len(c.history))
	copy(out, c.history)
	return out
}

// Form returns a copy of the draft.
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Message is the last user-facing error, or "".
func (c *Controller) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// InvalidFields lists the fields that failed the last validation.
func (c *Controller) InvalidFields() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.invalid == nil {
		return nil
	}
	return c.invalid.FieldNames()
}

// Saved returns the stored record after Success.
func (c *Controller) Saved() (models.TransactionRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saved, c.state == Success
}

// Suggested returns the label last filled in by a suggestion.
func (c *Controller) Suggested() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suggested
}

// SetKnownLabels replaces the acceptable labels, e.g. after categories
// have been fetched.
func (c *Controller) SetKnownLabels(labels []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.known = labels
}

// SetAmount updates the raw amount.
func (c *Controller) SetAmount(amount string) {
	c.edit(func(f *Form) { f.Amount = amount })
}

// SetDate updates the raw date.
func (c *Controller) SetDate(date string) {
	c.edit(func(f *Form) { f.Date = date })
}

// SetLabel records an explicit category or source choice. From then on
// suggestions no longer change the label.
func (c *Controller) SetLabel(label string) {
	c.edit(func(f *Form) { f.Label = label })
	c.mu.Lock()
	c.labelTouched = true
	c.mu.Unlock()
}

func (c *Controller) edit(fn func(*Form)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.form)
}

// SetDescription updates the description and, when a suggester is set and
// the text is long enough, asks for a suggestion and applies it if it is
// still relevant. The returned Result tells whether it was applied.
func (c *Controller) SetDescription(ctx context.Context, description string) (suggest.Result, bool) {
	c.mu.Lock()
	c.form.Description = description
	c.generation++
	gen := c.generation
	suggester := c.suggester
	wantsSuggestion := suggester != nil && c.form.Kind == models.KindExpense
	c.mu.Unlock()

	if !wantsSuggestion || !suggester.ShouldQuery(description) {
		return suggest.Result{}, false
	}

	res := suggester.Suggest(ctx, description)
	if !res.OK {
		return res, false
	}
	return res, c.ApplySuggestion(gen, res.Label)
}

// Generation returns the current description generation.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// ApplySuggestion fills the label with a suggestion requested for gen. It
// is dropped when the description changed since, when the user already
// chose a label, or while submitting.
func (c *Controller) ApplySuggestion(gen uint64, label string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := c.logger.WithFields(
		logging.Field{Key: logging.FieldGeneration, Value: gen},
		logging.Field{Key: logging.FieldCategory, Value: label},
	)
	switch {
	case strings.TrimSpace(label) == "":
		return false
	case gen != c.generation:
		log.Debug("Dropping stale suggestion")
		return false
	case c.labelTouched:
		log.Debug("Keeping the label chosen by the user")
		return false
	case c.state != Editing:
		return false
	}

	c.form.Label = label
	c.suggested = label
	return true
}

// Submit validates the draft and, when valid, issues exactly one create or
// update. Validation failures keep the flow in Editing without any call.
// A gateway failure passes through Failed back to Editing with a message.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case Submitting:
		c.mu.Unlock()
		return ErrSubmitInProgress
	case Success:
		c.mu.Unlock()
		return ErrAlreadySubmitted
	}

	rec, err := c.form.Validate(c.now(), c.known)
	if err != nil {
		var ve *apperror.ValidationError
		if errors.As(err, &ve) {
			c.invalid = ve
		}
		c.message = apperror.UserMessage(err, apperror.GenericMessage)
		c.mu.Unlock()
		return err
	}

	c.invalid = nil
	c.message = ""
	c.transition(Submitting)
	isEdit := c.form.IsEdit()
	suggested := c.suggested
	c.mu.Unlock()

	log := c.logger.WithFields(
		logging.Field{Key: logging.FieldKind, Value: rec.Kind.String()},
		logging.Field{Key: logging.FieldRecordID, Value: rec.ID.String()},
	)

	var stored models.TransactionRecord
	if isEdit {
		stored, err = c.writer.Update(ctx, rec)
	} else {
		stored, err = c.writer.Create(ctx, rec)
	}

	c.mu.Lock()
	if err != nil {
		c.transition(Failed)
		c.message = apperror.UserMessage(err, apperror.GenericMessage)
		c.transition(Editing)
		c.mu.Unlock()
		log.WithError(err).Warn("Submit failed")
		return err
	}
	c.saved = stored
	c.transition(Success)
	onSuccess := c.onSuccess
	c.mu.Unlock()

	log.Debug("Submit succeeded")
	if onSuccess != nil {
		onSuccess(stored)
	}
	c.sendFeedback(ctx, rec, suggested)
	return nil
}

func (c *Controller) transition(to State) {
	c.state = to
	c.history = append(c.history, to)
}

func (c *Controller) sendFeedback(ctx context.Context, rec models.TransactionRecord, suggested string) {
	if c.feedback == nil || rec.Kind != models.KindExpense || suggested == "" || suggested == rec.Label {
		return
	}
	if err := c.feedback.UpdateDataset(ctx, rec.Description, rec.Label); err != nil {
		c.logger.WithError(err).Warn("Failed to report category correction")
	}
}
