// Command rotina is a terminal client for the Rotina API.
//
// The session (access token, refresh token, user) is persisted under the
// user config directory, so authentication survives between invocations and
// expired access tokens are refreshed transparently on the next call.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/rotina-app/rotina/internal/client"
	"github.com/rotina-app/rotina/internal/client/session"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	flag.Usage = usage
	baseURL := flag.String("server", envOr("ROTINA_API", defaultBaseURL), "API base URL")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store, err := session.NewStore(sessionDir())
	if err != nil {
		fatal(err)
	}

	api := client.New(*baseURL, store,
		client.WithLogger(logger),
		client.WithLogoutHandler(func() {
			fmt.Fprintln(os.Stderr, "session expired, please log in again")
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "register":
		err = runRegister(ctx, api, args)
	case "login":
		err = runLogin(ctx, api, args)
	case "logout":
		err = runLogout(ctx, api)
	case "whoami":
		err = runWhoami(ctx, api)
	case "tasks":
		err = runTasks(ctx, api, args)
	case "habits":
		err = runHabits(ctx, api, args)
	case "goals":
		err = runGoals(ctx, api, args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fatal(err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: rotina [flags] <command>

Commands:
  register <name> <email>   create an account (prompts for password)
  login <email>             authenticate (prompts for password)
  logout                    end the session
  whoami                    show the authenticated user
  tasks                     list tasks
  tasks add <name>          add a task (see 'tasks add -h')
  tasks done <id>           record a completed repetition
  habits                    list active habits
  habits done <id>          mark a habit done for today
  goals                     list in-progress goals
  goals progress <id> <n>   set a goal's current value

Flags:
`)
	flag.PrintDefaults()
}

func runRegister(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: rotina register <name> <email>")
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := api.Register(ctx, args[0], args[1], password)
	if err != nil {
		return err
	}

	fmt.Printf("registered %s <%s>\n", user.Name, user.Email)
	fmt.Println("run 'rotina login' to sign in")
	return nil
}

func runLogin(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: rotina login <email>")
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := api.Login(ctx, args[0], password)
	if err != nil {
		if errors.Is(err, client.ErrServerUnavailable) {
			return errors.New("server unavailable, try again later")
		}
		return err
	}

	fmt.Printf("logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func runLogout(ctx context.Context, api *client.Client) error {
	if err := api.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func runWhoami(ctx context.Context, api *client.Client) error {
	user, err := api.CheckSession(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) || errors.Is(err, client.ErrSessionExpired) {
			return errors.New("not logged in")
		}
		if errors.Is(err, client.ErrServerUnavailable) {
			// The stored session survives a transient outage.
			snapshot := api.Store().Snapshot()
			if snapshot.IsAuthenticated && snapshot.User != nil {
				fmt.Printf("%s <%s> (cached, server unavailable)\n", snapshot.User.Name, snapshot.User.Email)
				return nil
			}
		}
		return err
	}

	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}

func runTasks(ctx context.Context, api *client.Client, args []string) error {
	if len(args) == 0 {
		return listTasks(ctx, api)
	}

	switch args[0] {
	case "add":
		return addTask(ctx, api, args[1:])
	case "done":
		if len(args) != 2 {
			return errors.New("usage: rotina tasks done <id>")
		}
		task, err := api.CompleteTask(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d/%d repetitions\n", task.Name, task.RepetitionsCompleted, task.RepetitionsRequired)
		return nil
	default:
		return fmt.Errorf("unknown tasks subcommand %q", args[0])
	}
}

func listTasks(ctx context.Context, api *client.Client) error {
	tasks, err := api.ListTasks(ctx)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("no tasks")
		return nil
	}

	writer := bufio.NewWriter(os.Stdout)
	defer writer.Flush()

	for _, task := range tasks {
		marker := " "
		if task.Completed() {
			marker = "x"
		}
		due := ""
		if task.DueDate != nil {
			due = "  due " + task.DueDate.Local().Format("2006-01-02")
		}
		fmt.Fprintf(writer, "[%s] %s  %s (%s)%s\n", marker, task.ID[:8], task.Name, strings.ToLower(task.Priority), due)
	}
	return nil
}

func addTask(ctx context.Context, api *client.Client, args []string) error {
	flags := flag.NewFlagSet("tasks add", flag.ContinueOnError)
	priority := flags.String("priority", "NOT_URGENT_IMPORTANT", "Eisenhower priority")
	category := flags.String("category", "PERSONAL", "life category")
	due := flags.String("due", "", "due date (YYYY-MM-DD)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("usage: rotina tasks add [flags] <name>")
	}

	input := client.CreateTaskInput{
		Name:     flags.Arg(0),
		Priority: *priority,
		Category: *category,
	}
	if *due != "" {
		date, err := time.ParseInLocation("2006-01-02", *due, time.Local)
		if err != nil {
			return fmt.Errorf("invalid due date: %w", err)
		}
		input.DueDate = &date
	}

	task, err := api.CreateTask(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("created %s  %s\n", task.ID[:8], task.Name)
	return nil
}

func runHabits(ctx context.Context, api *client.Client, args []string) error {
	if len(args) == 0 {
		habits, err := api.ActiveHabits(ctx, 0)
		if err != nil {
			return err
		}
		if len(habits) == 0 {
			fmt.Println("no habits")
			return nil
		}
		for _, habit := range habits {
			fmt.Printf("%s  %s  (streak %d)\n", habit.ID[:8], habit.Name, habit.Streak)
		}
		return nil
	}

	switch args[0] {
	case "done":
		if len(args) != 2 {
			return errors.New("usage: rotina habits done <id>")
		}
		progress, err := api.RecordHabitProgress(ctx, args[1], "DONE")
		if err != nil {
			return err
		}
		fmt.Printf("done for %s\n", progress.Date.Format("2006-01-02"))
		return nil
	default:
		return fmt.Errorf("unknown habits subcommand %q", args[0])
	}
}

func runGoals(ctx context.Context, api *client.Client, args []string) error {
	if len(args) == 0 {
		goals, err := api.InProgressGoals(ctx, 0)
		if err != nil {
			return err
		}
		if len(goals) == 0 {
			fmt.Println("no goals in progress")
			return nil
		}
		for _, goal := range goals {
			progress := ""
			if goal.CurrentValue != nil && goal.TargetValue != nil {
				progress = fmt.Sprintf("  %.0f/%.0f", *goal.CurrentValue, *goal.TargetValue)
			}
			fmt.Printf("%s  %s  (%s)%s\n", goal.ID[:8], goal.Name, strings.ToLower(goal.Category), progress)
		}
		return nil
	}

	switch args[0] {
	case "progress":
		if len(args) != 3 {
			return errors.New("usage: rotina goals progress <id> <value>")
		}
		value, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %w", err)
		}
		goal, err := api.UpdateGoalProgress(ctx, args[1], value)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", goal.Name, strings.ToLower(goal.Status))
		return nil
	default:
		return fmt.Errorf("unknown goals subcommand %q", args[0])
	}
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	return password, nil
}

func sessionDir() string {
	if dir := os.Getenv("ROTINA_CONFIG_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "rotina")
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "rotina:", err)
	os.Exit(1)
}
