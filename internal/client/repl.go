package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"google.golang.org/grpc/status"

	apiv1 "movieBrowser/api/v1"
	"movieBrowser/models"
)

const (
	loginHelp  = "Available commands: login <username> <password>, help, exit"
	adminHelp  = "Available commands: users, add <username> <password> [admin|user], edit <id> [username=..] [password=..] [role=..], delete <id>, whoami, logout, help, exit"
	moviesHelp = "Available commands: popular, search <text>, show <id>, whoami, logout, help, exit"
)

// Shell is the interactive loop of the terminal client.
type Shell struct {
	c   *Client
	in  *bufio.Scanner
	out io.Writer
	cur *models.User
}

func NewShell(c *Client, in io.Reader, out io.Writer) *Shell {
	return &Shell{c: c, in: bufio.NewScanner(in), out: out}
}

// Run restores any stored session, then reads commands until exit or EOF.
func (s *Shell) Run(ctx context.Context) error {
	u, err := s.c.Restore(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "Could not restore session: %s\n", describe(err))
	}
	s.enter(u)

	for {
		fmt.Fprintf(s.out, "moviebrowser:%s> ", Route(s.cur))
		if !s.in.Scan() {
			return s.in.Err()
		}
		args := strings.Fields(s.in.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			fmt.Fprintln(s.out, "Bye")
			return nil
		}
		s.dispatch(ctx, args)
	}
}

func (s *Shell) enter(u *models.User) {
	s.cur = u
	switch Route(u) {
	case ScreenAdmin:
		fmt.Fprintf(s.out, "Signed in as %s (admin)\n%s\n", u.Username, adminHelp)
	case ScreenMovies:
		fmt.Fprintf(s.out, "Signed in as %s\n%s\n", u.Username, moviesHelp)
	default:
		fmt.Fprintln(s.out, loginHelp)
	}
}

func (s *Shell) dispatch(ctx context.Context, args []string) {
	screen := Route(s.cur)
	switch args[0] {
	case "help":
		switch screen {
		case ScreenAdmin:
			fmt.Fprintln(s.out, adminHelp)
		case ScreenMovies:
			fmt.Fprintln(s.out, moviesHelp)
		default:
			fmt.Fprintln(s.out, loginHelp)
		}
		return
	case "login":
		if screen != ScreenLogin {
			fmt.Fprintln(s.out, "Already signed in. Use 'logout' first.")
			return
		}
		if len(args) != 3 {
			fmt.Fprintln(s.out, "Usage: login <username> <password>")
			return
		}
		u, err := s.c.Login(ctx, args[1], args[2])
		if err != nil {
			fmt.Fprintf(s.out, "Login failed: %s\n", describe(err))
			return
		}
		s.enter(u)
		return
	}

	if screen == ScreenLogin {
		fmt.Fprintln(s.out, "Please log in first. Type 'help' for a list of commands.")
		return
	}
	switch args[0] {
	case "whoami":
		fmt.Fprintf(s.out, "%d %s %s\n", s.cur.ID, s.cur.Username, s.cur.Role)
		return
	case "logout":
		if err := s.c.Logout(); err != nil {
			fmt.Fprintf(s.out, "Logout failed: %v\n", err)
			return
		}
		fmt.Fprintln(s.out, "Logged out")
		s.enter(nil)
		return
	}

	if screen == ScreenAdmin {
		s.admin(ctx, args)
	} else {
		s.movies(ctx, args)
	}
}

func (s *Shell) admin(ctx context.Context, args []string) {
	switch args[0] {
	case "users":
		list, err := s.c.ListUsers(ctx)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %s\n", describe(err))
			return
		}
		tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tUSERNAME\tROLE")
		for _, u := range list {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", u.ID, u.Username, u.Role)
		}
		_ = tw.Flush()
	case "add":
		if len(args) < 3 || len(args) > 4 {
			fmt.Fprintln(s.out, "Usage: add <username> <password> [admin|user]")
			return
		}
		role := models.RoleUser
		if len(args) == 4 {
			role = models.Role(args[3])
		}
		u, err := s.c.CreateUser(ctx, args[1], args[2], role)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %s\n", describe(err))
			return
		}
		fmt.Fprintf(s.out, "Created user %d %s (%s)\n", u.ID, u.Username, u.Role)
	case "edit":
		id, upd, err := parseEdit(args[1:])
		if err != nil {
			fmt.Fprintf(s.out, "%v\nUsage: edit <id> [username=..] [password=..] [role=..]\n", err)
			return
		}
		updated, coerced, err := s.c.UpdateUser(ctx, id, upd)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %s\n", describe(err))
			return
		}
		switch {
		case !updated:
			fmt.Fprintln(s.out, "Nothing updated")
		case coerced:
			fmt.Fprintln(s.out, "User updated; role kept as admin")
		default:
			fmt.Fprintln(s.out, "User updated")
		}
		if cur, err := s.c.Current(); err == nil && cur != nil {
			s.cur = cur
		}
	case "delete":
		id, ok := parseID(args)
		if !ok {
			fmt.Fprintln(s.out, "Usage: delete <id>")
			return
		}
		deleted, err := s.c.DeleteUser(ctx, id)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %s\n", describe(err))
			return
		}
		if deleted {
			fmt.Fprintln(s.out, "User deleted")
		} else {
			fmt.Fprintln(s.out, "User not found")
		}
	default:
		fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
	}
}

func (s *Shell) movies(ctx context.Context, args []string) {
	switch args[0] {
	case "popular":
		list, err := s.c.Popular(ctx)
		s.printMovies(list, err)
	case "search":
		list, err := s.c.Search(ctx, strings.Join(args[1:], " "))
		s.printMovies(list, err)
	case "show":
		id, ok := parseID(args)
		if !ok {
			fmt.Fprintln(s.out, "Usage: show <id>")
			return
		}
		m, err := s.c.Details(ctx, id)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %s\n", describe(err))
			return
		}
		fmt.Fprintf(s.out, "%s (%s)\n", m.Title, m.ReleaseDate)
		if m.OriginalTitle != "" && m.OriginalTitle != m.Title {
			fmt.Fprintf(s.out, "Original title: %s\n", m.OriginalTitle)
		}
		if m.VoteAverage > 0 {
			fmt.Fprintf(s.out, "Rating: %.1f\n", m.VoteAverage)
		}
		if m.PosterURL != "" {
			fmt.Fprintf(s.out, "Poster: %s\n", m.PosterURL)
		}
		if m.Overview != "" {
			fmt.Fprintln(s.out, m.Overview)
		}
	default:
		fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
	}
}

func (s *Shell) printMovies(list []apiv1.Movie, err error) {
	if err != nil {
		fmt.Fprintf(s.out, "Error: %s\n", describe(err))
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "No movies found")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tRELEASED")
	for _, m := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", m.ID, m.Title, m.ReleaseDate)
	}
	_ = tw.Flush()
}

func parseID(args []string) (int64, bool) {
	if len(args) != 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parseEdit reads "<id> key=value..." into an update.
func parseEdit(args []string) (int64, models.UserUpdate, error) {
	var upd models.UserUpdate
	if len(args) < 2 {
		return 0, upd, fmt.Errorf("id and at least one field are required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, upd, fmt.Errorf("invalid id %q", args[0])
	}
	for _, kv := range args[1:] {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return 0, upd, fmt.Errorf("expected key=value, got %q", kv)
		}
		switch key {
		case "username":
			upd.Username = &value
		case "password":
			upd.Password = &value
		case "role":
			role := models.Role(value)
			upd.Role = &role
		default:
			return 0, upd, fmt.Errorf("unknown field %q", key)
		}
	}
	return id, upd, nil
}

// describe prints a gRPC error without the transport prefix.
func describe(err error) string {
	if st, ok := status.FromError(err); ok {
		return st.Message()
	}
	return err.Error()
}
