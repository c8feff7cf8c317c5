package main

import (
	"context"
	"net/http"

	"github.com/urfave/cli/v3"
)

// AccountRegister creates a new account on the server.
func (r *Runner) AccountRegister(ctx context.Context, cmd *cli.Command) error {
	gw := r.gateway(cmd)

	var resp struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	err := gw.Do(ctx, http.MethodPost, "/register", nil, map[string]string{
		"email":    cmd.String("email"),
		"password": cmd.String("password"),
	}, &resp)
	if err != nil {
		return err
	}

	r.logger.Info("account created", "email", resp.Email)
	return r.writePlain("Registered %s. Run 'vibeswipe account login' to start a session.\n", resp.Email)
}

// AccountLogin starts a session and persists the access token.
func (r *Runner) AccountLogin(ctx context.Context, cmd *cli.Command) error {
	gw := r.gateway(cmd)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	err := gw.Do(ctx, http.MethodPost, "/login", nil, map[string]string{
		"email":    cmd.String("email"),
		"password": cmd.String("password"),
	}, &resp)
	if err != nil {
		return err
	}

	if err := r.saveToken(resp.AccessToken); err != nil {
		return err
	}

	r.logger.Info("logged in", "email", cmd.String("email"))
	return nil
}

// AccountLogout tears down the session in one step.
func (r *Runner) AccountLogout(ctx context.Context, cmd *cli.Command) error {
	r.session.Logout()
	if err := r.store.Clear(); err != nil {
		return err
	}
	r.logger.Info("logged out")
	return nil
}

// AccountMe shows the logged-in profile.
func (r *Runner) AccountMe(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLogin(); err != nil {
		return err
	}
	gw := r.gateway(cmd)

	var resp map[string]any
	if err := gw.Do(ctx, http.MethodGet, "/me", nil, nil, &resp); err != nil {
		return err
	}
	return r.writeJSON(resp, true)
}
