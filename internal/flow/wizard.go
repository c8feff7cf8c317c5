package flow

import (
	"context"
	"net/http"
	"time"
)

// WizardState is the generation wizard's lifecycle state.
type WizardState int

const (
	// WizardSelectInputs means the wizard is collecting selections.
	WizardSelectInputs WizardState = iota
	// WizardGenerating means a generation request is in flight.
	WizardGenerating
	// WizardDone means the artifact was created.
	WizardDone
)

// ProgressTicker drives cosmetic progress output while a generation runs.
// It carries no protocol state; tests swap in a no-op.
type ProgressTicker interface {
	Start()
	Stop()
}

// NopTicker is a ProgressTicker that does nothing.
type NopTicker struct{}

func (NopTicker) Start() {}
func (NopTicker) Stop()  {}

// IntervalTicker invokes a callback on a fixed interval between Start and
// Stop.
type IntervalTicker struct {
	Interval time.Duration
	OnTick   func()
	done     chan struct{}
}

func (t *IntervalTicker) Start() {
	t.done = make(chan struct{})
	go func() {
		ticker := time.NewTicker(t.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.OnTick()
			case <-t.done:
				return
			}
		}
	}()
}

func (t *IntervalTicker) Stop() {
	if t.done != nil {
		close(t.done)
		t.done = nil
	}
}

// Wizard drives a generation pipeline from the client: collect selections,
// run the request, land on done or fall back to the selection step with the
// failure intact.
type Wizard struct {
	gw     *Gateway
	ticker ProgressTicker

	endpoint        string
	selectionField  string
	retainOnRestart bool

	state      WizardState
	selections []string
	lastErr    error
	result     WizardResult
}

// WizardResult is the playlist artifact a generation pipeline returns. The
// fields beyond the created playlist are per-pipeline counts; absent ones
// stay zero.
type WizardResult struct {
	PlaylistID       string `json:"playlist_id"`
	PlaylistURL      string `json:"playlist_url"`
	PlaylistName     string `json:"playlist_name"`
	TrackCount       int    `json:"total_tracks"`
	OnRepeatCount    int    `json:"on_repeat_count"`
	DiscoveryCount   int    `json:"new_discoveries_count"`
	EpisodeCount     int    `json:"episodes_count"`
	InspirationCount int    `json:"inspiration_count"`
	AutoRefresh      bool   `json:"auto_refresh"`
}

// NewDailyDriveWizard creates the wizard for daily drive generation. Its
// restart clears selections, so every run picks shows afresh.
func NewDailyDriveWizard(gw *Gateway, ticker ProgressTicker) *Wizard {
	return &Wizard{
		gw:             gw,
		ticker:         ticker,
		endpoint:       "/daily-drive/generate",
		selectionField: "show_ids",
	}
}

// NewGymWizard creates the wizard for gym mix generation.
func NewGymWizard(gw *Gateway, ticker ProgressTicker) *Wizard {
	return &Wizard{
		gw:             gw,
		ticker:         ticker,
		endpoint:       "/gym-playlist/generate",
		selectionField: "playlist_ids",
	}
}

// State returns the wizard's lifecycle state.
func (w *Wizard) State() WizardState { return w.state }

// Selections returns the current input selections.
func (w *Wizard) Selections() []string { return w.selections }

// LastError returns the failure from the most recent generation attempt,
// nil after a success.
func (w *Wizard) LastError() error { return w.lastErr }

// Result returns the created artifact after a successful run.
func (w *Wizard) Result() WizardResult { return w.result }

// SetRetainSelections controls whether a restart keeps the selections.
// The gym wizard sets this from the auto-refresh flag.
func (w *Wizard) SetRetainSelections(retain bool) { w.retainOnRestart = retain }

// Select replaces the input selections. Ignored while generating.
func (w *Wizard) Select(ids []string) {
	if w.state == WizardGenerating {
		return
	}
	w.selections = ids
	w.state = WizardSelectInputs
}

// Generate runs the pipeline with the current selections. On failure the
// wizard returns to input selection with the selections intact and the
// gateway error unmodified.
func (w *Wizard) Generate(ctx context.Context) error {
	if w.state == WizardGenerating {
		return nil
	}
	w.state = WizardGenerating
	w.lastErr = nil

	w.ticker.Start()
	defer w.ticker.Stop()

	body := map[string][]string{w.selectionField: w.selections}
	var result WizardResult
	if err := w.gw.Do(ctx, http.MethodPost, w.endpoint, nil, body, &result); err != nil {
		w.state = WizardSelectInputs
		w.lastErr = err
		return err
	}

	// A success without the created playlist is not a usable artifact.
	if result.PlaylistID == "" {
		w.state = WizardSelectInputs
		w.lastErr = &Error{Kind: KindUpstream, Status: http.StatusBadGateway, Detail: "unexpected response shape"}
		return w.lastErr
	}

	w.state = WizardDone
	w.result = result
	return nil
}

// Restart returns a finished wizard to input selection. Selections are
// cleared unless the wizard is set to retain them.
func (w *Wizard) Restart() {
	if w.state == WizardGenerating {
		return
	}
	if !w.retainOnRestart {
		w.selections = nil
	}
	w.state = WizardSelectInputs
	w.result = WizardResult{}
	w.lastErr = nil
}
