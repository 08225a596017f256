package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"

	"trek/internal/api"
	"trek/internal/config"
	"trek/internal/factory"
	"trek/internal/game"
	"trek/internal/log"
	"trek/internal/store"
)

// UsageError reports bad command line arguments
type UsageError struct {
	Command string
	Reason  string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

// RejectedError wraps a command the game refused. The game is unchanged.
type RejectedError struct {
	Err error
}

func (e *RejectedError) Error() string { return e.Err.Error() }
func (e *RejectedError) Unwrap() error { return e.Err }

// App runs one command against the saved game and saves the result
type App struct {
	Config *config.Config
	Out    io.Writer
	JSON   bool
	// Rand overrides the seeded random source
	Rand *rand.Rand
}

type output struct {
	Command string         `json:"command"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
	Status  api.StatusInfo `json:"status"`
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (a *App) options() (game.Options, error) {
	opts := game.Options{
		PlayerName: a.Config.Game.PlayerName,
		PlayerShip: a.Config.Game.PlayerShip,
		Rand:       a.Rand,
	}
	if opts.Rand == nil {
		seed := a.Config.Game.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		opts.Rand = rand.New(rand.NewSource(seed))
	}

	if path := a.Config.Game.ShipData; path != "" {
		catalog, err := factory.LoadCatalogFile(path)
		if err != nil {
			return opts, err
		}
		opts.Catalog = catalog
	}
	if path := a.Config.Game.NameData; path != "" {
		names, err := factory.LoadNamesFile(path)
		if err != nil {
			return opts, err
		}
		opts.Names = names
	}
	return opts, nil
}

// session loads the saved game, or starts one when there is none or when
// fresh is set
func (a *App) session(db store.Database, opts game.Options, fresh bool) (*game.Session, error) {
	if !fresh {
		has, err := db.HasSave()
		if err != nil {
			return nil, err
		}
		if has {
			return db.LoadSession(opts)
		}
		log.Info("no saved game, starting a new one")
	}
	return game.NewSession(opts)
}

// Run executes args[0] with the remaining arguments
func (a *App) Run(args []string) error {
	if len(args) == 0 {
		return &UsageError{Command: "trek", Reason: "no command given"}
	}
	cmd, ok := lookup(args[0])
	if !ok {
		return &UsageError{Command: args[0], Reason: "unknown command"}
	}
	if len(args)-1 < cmd.args {
		return &UsageError{Command: cmd.name, Reason: "usage: " + cmd.usage}
	}

	opts, err := a.options()
	if err != nil {
		return err
	}

	db := store.NewDatabase()
	if err := db.CreateDatabase(a.Config.Storage.SavePath); err != nil {
		return err
	}
	defer db.CloseDatabase()

	s, err := a.session(db, opts, cmd.name == "new")
	if err != nil {
		return err
	}

	message, err := cmd.run(s, args[1:])
	var usage *UsageError
	switch {
	case errors.As(err, &usage):
		return err
	case err != nil:
		log.Debug("command rejected", "command", cmd.name, "error", err)
		if printErr := a.print(cmd.name, "", err, s); printErr != nil {
			return printErr
		}
		return &RejectedError{Err: err}
	}

	if cmd.mutates {
		if err := db.SaveSession(s); err != nil {
			return err
		}
	}
	return a.print(cmd.name, message, nil, s)
}

func (a *App) print(command, message string, cmdErr error, s *game.Session) error {
	out := output{Command: command, Message: message, Status: s.Status()}
	if cmdErr != nil {
		out.Error = cmdErr.Error()
	}

	if a.JSON {
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if out.Error != "" {
		fmt.Fprintf(a.Out, "Rejected: %s\n\n", out.Error)
	}
	if out.Message != "" {
		fmt.Fprintf(a.Out, "%s\n\n", out.Message)
	}
	tag, err := language.Parse(a.Config.Game.Language)
	if err != nil {
		tag = language.English
	}
	return api.WriteStatus(a.Out, tag, out.Status)
}
