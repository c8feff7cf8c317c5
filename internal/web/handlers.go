package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	spotifyapi "github.com/zmb3/spotify/v2"

	"github.com/kesslermatics/vibeswipe/internal/auth"
	"github.com/kesslermatics/vibeswipe/internal/db"
	"github.com/kesslermatics/vibeswipe/internal/generate"
	"github.com/kesslermatics/vibeswipe/internal/spotify"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	db     *db.DB
	issuer *auth.TokenIssuer
	spauth *auth.SpotifyAuthenticator
	gen    *generate.Service
	log    *log.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(database *db.DB, issuer *auth.TokenIssuer, spauth *auth.SpotifyAuthenticator, gen *generate.Service, logger *log.Logger) *Handlers {
	return &Handlers{
		db:     database,
		issuer: issuer,
		spauth: spauth,
		gen:    gen,
		log:    logger,
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// sessionUser loads the authenticated user and builds their Spotify client.
func (h *Handlers) sessionUser(ctx context.Context, id uuid.UUID) (*db.User, *spotify.Client, error) {
	user, err := h.db.Users().Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	client, err := h.gen.ClientForUser(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, client, nil
}

// Register creates a local account.
// POST /register { email, password }
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email, err := auth.NormalizeEmail(req.Email)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		writeMappedError(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not create account")
		return
	}

	user := &db.User{
		ID:           uuid.New(),
		Email:        &email,
		PasswordHash: &hash,
	}
	if err := h.db.Users().Create(r.Context(), user); err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			writeError(w, http.StatusBadRequest, "email already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not create account")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":    user.ID.String(),
		"email": email,
	})
}

// Login authenticates a local account and issues an access token.
// POST /login { email, password }
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email, err := auth.NormalizeEmail(req.Email)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	user, err := h.db.Users().GetByEmail(r.Context(), email)
	if err != nil || user.PasswordHash == nil || !auth.CheckPassword(*user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	h.issueToken(w, user.ID)
}

// AuthLogin returns the provider consent URL for the given redirect URI.
// GET /auth/login?redirect_uri=
func (h *Handlers) AuthLogin(w http.ResponseWriter, r *http.Request) {
	redirectURI := r.URL.Query().Get("redirect_uri")

	state, err := auth.GenerateState()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not generate state")
		return
	}

	url, err := h.spauth.AuthURL(redirectURI, state)
	if err != nil {
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"url":          url,
		"redirect_uri": redirectURI,
	})
}

// AuthCallback exchanges the authorization code, upserts the user, and
// issues an API access token.
// POST /auth/callback { code, redirect_uri }
func (h *Handlers) AuthCallback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code        string `json:"code"`
		RedirectURI string `json:"redirect_uri"`
		Error       string `json:"error"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Error != "" {
		// The provider redirected back with a consent denial.
		writeError(w, http.StatusBadRequest, "consent denied: "+req.Error)
		return
	}

	token, err := h.spauth.Exchange(r.Context(), req.Code, req.RedirectURI)
	if err != nil {
		writeMappedError(w, err)
		return
	}

	httpClient := h.spauth.HTTPClient(r.Context(), token)
	client := spotify.New(spotifyapi.New(httpClient), httpClient)
	prof, err := client.CurrentProfile(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "could not load spotify profile")
		return
	}

	user := &db.User{
		ID:          uuid.New(),
		SpotifyID:   &prof.ExternalID,
		DisplayName: prof.DisplayName,
		AccessToken: &token.AccessToken,
		TokenExpiry: &token.Expiry,
	}
	if prof.Email != "" {
		user.Email = &prof.Email
	}
	if token.RefreshToken != "" {
		user.RefreshToken = &token.RefreshToken
	}
	if err := h.db.Users().UpsertSpotify(r.Context(), user); err != nil {
		h.log.Error("callback: upsert failed", "err", err)
		writeError(w, http.StatusInternalServerError, "could not store session")
		return
	}

	h.issueToken(w, user.ID)
}

func (h *Handlers) issueToken(w http.ResponseWriter, id uuid.UUID) {
	accessToken, err := h.issuer.Issue(id.String())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": accessToken,
		"token_type":   "bearer",
		"expires_in":   int(h.issuer.TTL().Seconds()),
	})
}

// Me returns the authenticated user's profile.
// GET /me
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, client, err := h.sessionUser(r.Context(), userID(r))
	if err != nil {
		writeMappedError(w, err)
		return
	}

	prof, err := client.CurrentProfile(r.Context())
	if err != nil {
		writeMappedError(w, err)
		return
	}

	resp := map[string]any{
		"id":           user.ID.String(),
		"external_id":  prof.ExternalID,
		"display_name": prof.DisplayName,
	}
	if prof.Email != "" {
		resp["email"] = prof.Email
	}
	writeJSON(w, http.StatusOK, resp)
}

// MyPlaylists lists the user's playlists.
// GET /my-playlists
func (h *Handlers) MyPlaylists(w http.ResponseWriter, r *http.Request) {
	_, client, err := h.sessionUser(r.Context(), userID(r))
	if err != nil {
		writeMappedError(w, err)
		return
	}

	playlists, err := client.UserPlaylists(r.Context())
	if err != nil {
		writeMappedError(w, err)
		return
	}
	if playlists == nil {
		playlists = []spotify.PlaylistSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"playlists": playlists})
}

// SwipeDeck returns the swipe deck: a playlist's tracks, or the user's
// saved tracks when no playlist is given. An empty deck is a 200 with an
// empty list.
// GET /discover/swipe?playlist_id=
func (h *Handlers) SwipeDeck(w http.ResponseWriter, r *http.Request) {
	_, client, err := h.sessionUser(r.Context(), userID(r))
	if err != nil {
		writeMappedError(w, err)
		return
	}

	deck, err := h.gen.Deck(r.Context(), client, r.URL.Query().Get("playlist_id"))
	if err != nil {
		writeMappedError(w, err)
		return
	}
	if deck == nil {
		deck = []spotify.Track{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tracks": deck})
}

// SaveTracks persists kept tracks: to the user's library, or to a playlist
// when playlist_id is given. Saving an already-saved track is a no-op.
// POST /save-tracks?playlist_id= { track_ids, track_uris }
func (h *Handlers) SaveTracks(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrackIDs  []string `json:"track_ids"`
		TrackURIs []string `json:"track_uris"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.TrackIDs) == 0 && len(req.TrackURIs) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "no tracks given")
		return
	}

	_, client, err := h.sessionUser(r.Context(), userID(r))
	if err != nil {
		writeMappedError(w, err)
		return
	}

	if playlistID := r.URL.Query().Get("playlist_id"); playlistID != "" {
		uris := req.TrackURIs
		for _, id := range req.TrackIDs {
			uris = append(uris, "spotify:track:"+id)
		}
		if err := client.AddItemsToPlaylist(r.Context(), playlistID, uris); err != nil {
			writeMappedError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"saved": len(uris)})
		return
	}

	ids := req.TrackIDs
	for _, uri := range req.TrackURIs {
		if id, ok := strings.CutPrefix(uri, "spotify:track:"); ok {
			ids = append(ids, id)
		}
	}
	if err := client.SaveTracks(r.Context(), ids); err != nil {
		writeMappedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": len(ids)})
}

// Discover runs the prompt discovery pipeline.
// POST /discover { prompt, context_songs }
func (h *Handlers) Discover(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt       string   `json:"prompt"`
		ContextSongs []string `json:"context_songs"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusUnprocessableEntity, "prompt must not be empty")
		return
	}

	_, client, err := h.sessionUser(r.Context(), userID(r))
	if err != nil {
		writeMappedError(w, err)
		return
	}

	result, err := h.gen.Discover(r.Context(), client, req.Prompt, req.ContextSongs)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CreatePlaylist creates a playlist from explicit track URIs.
// POST /create-playlist { name, track_uris }
func (h *Handlers) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string   `json:"name"`
		TrackURIs []string `json:"track_uris"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusUnprocessableEntity, "name must not be empty")
		return
	}
	if len(req.TrackURIs) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "no tracks given")
		return
	}

	_, client, err := h.sessionUser(r.Context(), userID(r))
	if err != nil {
		writeMappedError(w, err)
		return
	}

	playlist, err := client.CreatePlaylist(r.Context(), req.Name, "Created with VibeSwipe")
	if err != nil {
		writeMappedError(w, err)
		return
	}
	if err := client.AddItemsToPlaylist(r.Context(), playlist.ID, req.TrackURIs); err != nil {
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"playlist_id":  playlist.ID,
		"playlist_url": playlist.URL,
		"track_count":  len(req.TrackURIs),
	})
}

// SavedShows lists the user's saved podcast shows for daily drive input.
// GET /daily-drive/shows
func (h *Handlers) SavedShows(w http.ResponseWriter, r *http.Request) {
	_, client, err := h.sessionUser(r.Context(), userID(r))
	if err != nil {
		writeMappedError(w, err)
		return
	}

	shows, err := client.SavedShows(r.Context())
	if err != nil {
		writeMappedError(w, err)
		return
	}
	if shows == nil {
		shows = []spotify.Show{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"shows": shows})
}

// GenerateDailyDrive runs the daily drive pipeline.
// POST /daily-drive/generate { show_ids }
func (h *Handlers) GenerateDailyDrive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShowIDs []string `json:"show_ids"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, client, err := h.sessionUser(r.Context(), userID(r))
	if err != nil {
		writeMappedError(w, err)
		return
	}

	result, err := h.gen.DailyDrive(r.Context(), client, req.ShowIDs)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GenerateGymPlaylist runs the gym mix pipeline.
// POST /gym-playlist/generate { playlist_ids }
func (h *Handlers) GenerateGymPlaylist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlaylistIDs []string `json:"playlist_ids"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.PlaylistIDs) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "no playlists selected")
		return
	}

	user, client, err := h.sessionUser(r.Context(), userID(r))
	if err != nil {
		writeMappedError(w, err)
		return
	}

	result, err := h.gen.GymPlaylist(r.Context(), user, client, req.PlaylistIDs)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GymSettings returns the stored gym playlist settings.
// GET /gym-playlist/settings
func (h *Handlers) GymSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.db.GymSettings().Get(r.Context(), userID(r))
	if errors.Is(err, db.ErrNotFound) {
		writeJSON(w, http.StatusOK, map[string]any{
			"auto_refresh":        false,
			"source_playlist_ids": []string{},
		})
		return
	}
	if err != nil {
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"auto_refresh":        settings.AutoRefresh,
		"source_playlist_ids": settings.SourcePlaylistIDs,
	})
}

// UpdateGymSettings toggles gym playlist auto-refresh.
// POST /gym-playlist/settings { auto_refresh }
func (h *Handlers) UpdateGymSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AutoRefresh bool `json:"auto_refresh"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.db.GymSettings().SetAutoRefresh(r.Context(), userID(r), req.AutoRefresh); err != nil {
		writeMappedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"auto_refresh": req.AutoRefresh})
}

// VibeRoast runs the roast pipeline.
// GET /vibe-roast
func (h *Handlers) VibeRoast(w http.ResponseWriter, r *http.Request) {
	_, client, err := h.sessionUser(r.Context(), userID(r))
	if err != nil {
		writeMappedError(w, err)
		return
	}

	result, err := h.gen.VibeRoast(r.Context(), client)
	if err != nil {
		writeMappedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
