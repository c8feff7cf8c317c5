package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/kesslermatics/vibeswipe/internal/flow"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for
// each command action.
type Runner struct {
	logger  *log.Logger
	output  io.Writer
	input   io.Reader
	store   *sessionStore
	session *flow.Session
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Logger *log.Logger
	Output io.Writer
	Input  io.Reader
	Store  *sessionStore
}

// NewRunner creates a new Runner with the provided options.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Store == nil {
		opts.Store = defaultSessionStore()
	}

	session := flow.NewSession()
	if token, err := opts.Store.Load(); err == nil && token != "" {
		session.SetCredential(token, nil)
	}

	return &Runner{
		logger:  opts.Logger,
		output:  opts.Output,
		input:   opts.Input,
		store:   opts.Store,
		session: session,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		accountCommand, spotifyCommand, swipeCommand, discoverCommand, dailyDriveCommand, gymCommand, roastCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// gateway builds a request gateway against the server named by the root
// --server flag, carrying the persisted session.
func (r *Runner) gateway(cmd *cli.Command) *flow.Gateway {
	return flow.NewGateway(cmd.String("server"), r.session)
}

// saveToken persists the access token and arms the in-memory session.
func (r *Runner) saveToken(token string) error {
	r.session.SetCredential(token, nil)
	if err := r.store.Save(token); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (r *Runner) requireLogin() error {
	if !r.session.LoggedIn() {
		return fmt.Errorf("not logged in, run 'vibeswipe account login' first")
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
