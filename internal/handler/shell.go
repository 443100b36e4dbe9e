// Package handler turns shell commands into document workflow calls and
// renders their results.
package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"mydoc/internal/service"
	"mydoc/internal/session"
)

var (
	errUsage         = errors.New("usage")
	errUnclosedQuote = errors.New("unclosed quote")
)

// Services bundles the workflows the shell drives.
type Services struct {
	Listing *service.ListingService
	Trash   *service.TrashService
	Folders *service.FolderService
	Files   *service.FileService
}

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, args []string) error
}

// Shell is an interactive document browser.
type Shell struct {
	state       *session.State
	listing     *service.ListingService
	out         *Renderer
	logger      *zap.Logger
	interactive bool
	commands    map[string]command
}

func NewShell(svc Services, state *session.State, out *Renderer, interactive bool, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Shell{
		state:       state,
		listing:     svc.Listing,
		out:         out,
		logger:      log,
		interactive: interactive,
		commands:    make(map[string]command),
	}

	folders := NewFolderHandler(svc.Listing, svc.Folders, state, out)
	files := NewFileHandler(svc.Listing, svc.Files, out, interactive)
	trash := NewTrashHandler(svc.Listing, svc.Trash, state, out)

	s.register("ls", "ls", "show the current listing", folders.List)
	s.register("refresh", "refresh", "reload the current listing", folders.Refresh)
	s.register("tree", "tree", "show the breadcrumb and listing as a tree", folders.Tree)
	s.register("cd", "cd <name|#id|..|/>", "open a folder", folders.ChangeDir)
	s.register("home", "home", "go to the root folder", folders.Home)
	s.register("path", "path", "show the breadcrumb with indices", folders.Path)
	s.register("jump", "jump <index>", "go to a breadcrumb entry", folders.Jump)
	s.register("search", "search <text>", "find documents by title", folders.Search)
	s.register("clear", "clear", "end the search", folders.ClearSearch)
	s.register("mkdir", "mkdir <name>", "create a folder here", folders.MakeDir)
	s.register("upload", "upload <file>", "upload a local file here", files.Upload)
	s.register("open", "open <name|#id> [dest|-]", "download a file", files.Open)
	s.register("bin", "bin", "show the Bin", trash.Bin)
	s.register("rm", "rm <name|#id>", "move an item to the Bin", trash.Remove)
	s.register("restore", "restore <name|#id>", "restore an item from the Bin", trash.Restore)
	return s
}

func (s *Shell) register(name, usage, help string, run func(context.Context, []string) error) {
	s.commands[name] = command{usage: usage, help: help, run: run}
}

// Start loads the root listing.
func (s *Shell) Start(ctx context.Context) error {
	return s.listing.Home(ctx)
}

// Run reads commands from in until it is exhausted, quit is entered or ctx
// is cancelled.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	if err := s.Start(ctx); err != nil {
		s.out.Error("Could Not Load Documents", err)
	}

	scanner := bufio.NewScanner(in)
	for {
		if s.interactive {
			s.out.Printf("%s", s.out.Prompt(s.state.Snapshot()))
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if quit := s.Exec(ctx, scanner.Text()); quit {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Exec runs one command line. It reports whether the shell should stop.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	args, err := splitArgs(line)
	if err != nil {
		s.out.Error("Invalid Command", err)
		return false
	}
	if len(args) == 0 {
		return false
	}

	name, args := args[0], args[1:]
	switch name {
	case "quit", "exit":
		return true
	case "help", "?":
		s.help()
		return false
	}

	cmd, ok := s.commands[name]
	if !ok {
		s.out.Error("Unknown Command", fmt.Errorf("%q is not a command, type help for a list", name))
		return false
	}

	s.logger.Debug("shell command", zap.String("command", name), zap.Strings("args", args))
	if err := cmd.run(ctx, args); err != nil {
		if errors.Is(err, errUsage) {
			s.out.Printf("usage: %s\n", cmd.usage)
			return false
		}
		s.out.Error("Command Failed", err)
	}
	return false
}

func (s *Shell) help() {
	names := make([]string, 0, len(s.commands))
	width := 0
	for name, cmd := range s.commands {
		names = append(names, name)
		width = max(width, len(cmd.usage))
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := s.commands[name]
		s.out.Printf("  %-*s  %s\n", width, cmd.usage, cmd.help)
	}
	s.out.Printf("  %-*s  %s\n", width, "quit", "leave the shell")
}

// splitArgs splits a command line on spaces, keeping single- or
// double-quoted text together.
func splitArgs(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	var quote rune
	inArg := false
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, errUnclosedQuote
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
