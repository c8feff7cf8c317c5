// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// accountCommand handles account registration and sessions.
func accountCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Manage your VibeSwipe account",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Account email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Account password (min 8 characters)",
						Required: true,
					},
				},
				Action: r.AccountRegister,
			},
			{
				Name:  "login",
				Usage: "Log in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Account email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AccountLogin,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored session",
				Action: r.AccountLogout,
			},
			{
				Name:   "me",
				Usage:  "Show the logged-in profile",
				Action: r.AccountMe,
			},
		},
	}
}

// spotifyCommand handles the Spotify link and library operations.
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify account link and library",
		Commands: []*cli.Command{
			{
				Name:  "connect",
				Usage: "Link a Spotify account via OAuth2",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "redirect-uri",
						Usage: "Redirect URI registered with the Spotify app",
						Value: "http://127.0.0.1:5173/callback",
					},
				},
				Action: r.SpotifyConnect,
			},
			{
				Name:  "playlists",
				Usage: "List your Spotify playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SpotifyPlaylists,
			},
		},
	}
}

// swipeCommand runs the interactive swipe deck.
func swipeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "swipe",
		Usage: "Swipe through tracks and save the keepers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "playlist",
				Aliases: []string{"p"},
				Usage:   "Source playlist ID (defaults to your saved tracks)",
			},
		},
		Action: r.Swipe,
	}
}

// discoverCommand handles prompt-based track discovery.
func discoverCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "discover",
		Usage: "Discover new tracks from a mood prompt",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "prompt",
				Usage:    "Mood or vibe description",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "context-song",
				Usage: "Song the recommendations should orbit (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Discover,
	}
}

// dailyDriveCommand handles the podcast-and-music mix generator.
func dailyDriveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "daily-drive",
		Usage: "Generate a Daily Drive mix from podcasts and your rotation",
		Commands: []*cli.Command{
			{
				Name:   "shows",
				Usage:  "List your saved podcast shows",
				Action: r.DailyDriveShows,
			},
			{
				Name:  "generate",
				Usage: "Generate the Daily Drive playlist",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "show",
						Usage:    "Podcast show ID to include (repeatable)",
						Required: true,
					},
				},
				Action: r.DailyDriveGenerate,
			},
		},
	}
}

// gymCommand handles the gym playlist generator and its settings.
func gymCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "gym",
		Usage: "Generate and manage your gym playlist",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate a fresh gym playlist from inspiration playlists",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "playlist",
						Usage:    "Inspiration playlist ID (repeatable)",
						Required: true,
					},
				},
				Action: r.GymGenerate,
			},
			{
				Name:   "settings",
				Usage:  "Show gym playlist settings",
				Action: r.GymSettings,
			},
			{
				Name:  "auto-refresh",
				Usage: "Enable or disable the nightly auto-refresh",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "enable",
						Usage: "Turn auto-refresh on (off when absent)",
					},
				},
				Action: r.GymAutoRefresh,
			},
		},
	}
}

// roastCommand handles the listening-profile roast.
func roastCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "roast",
		Usage: "Get roasted for your listening history",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Roast,
	}
}
