// Package console is the interactive menu client of the job portal.
//
// It reads one answer per line from an io.Reader and writes prompts to an
// io.Writer, so the same code drives a terminal and the tests. All work
// goes through the service layer; the console only keeps the logged-in
// user between menus.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/jobportal/internal/logger"
	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/service"
	"github.com/deppfellow/jobportal/internal/sqlerr"
)

// NoChoice is what an unparsable menu answer reads as.
const NoChoice = -1

const dateLayout = "2006-01-02"

// errInputClosed ends an action whose input ran out halfway.
var errInputClosed = errors.New("input closed")

type Console struct {
	services      *service.Services
	in            *bufio.Scanner
	out           io.Writer
	logger        *zerolog.Logger
	loggerService *loggerPkg.LoggerService

	current *model.User
	closed  bool
}

func New(services *service.Services, in io.Reader, out io.Writer, logger *zerolog.Logger, ls *loggerPkg.LoggerService) *Console {
	return &Console{
		services:      services,
		in:            bufio.NewScanner(in),
		out:           out,
		logger:        logger,
		loggerService: ls,
	}
}

// Run shows menus until the user exits or the input ends. It returns
// only read errors; failed actions are reported on out.
func (c *Console) Run(ctx context.Context) error {
	c.println("Welcome to the Job Portal System!")

	for !c.closed {
		var exit bool
		if c.current == nil {
			exit = c.loginMenu(ctx)
		} else {
			exit = c.mainMenu(ctx)
		}
		if exit {
			break
		}
	}

	c.println("Thank you for using Job Portal System. Goodbye!")
	return c.in.Err()
}

// CurrentUser is the logged-in user, or nil.
func (c *Console) CurrentUser() *model.User {
	return c.current
}

func (c *Console) loginMenu(ctx context.Context) bool {
	c.println("\n===== Login Menu =====")
	c.println("1. Login")
	c.println("2. Register")
	c.println("3. Exit")

	switch c.readChoice("Enter your choice: ") {
	case 1:
		c.run(ctx, "login", c.login)
	case 2:
		c.run(ctx, "register", c.register)
	case 3:
		return true
	default:
		if !c.closed {
			c.println("Invalid choice. Please try again.")
		}
	}
	return false
}

func (c *Console) mainMenu(ctx context.Context) bool {
	c.println("\n===== Main Menu =====")
	c.printf("Welcome, %s!\n", c.current.Name)
	c.println("1. View Profile")
	c.println("2. Update Profile")
	c.println("3. Search Jobs")
	c.println("4. Apply for a Job")
	c.println("5. View My Applications")
	c.println("6. View My Interviews")
	c.println("7. Logout")
	c.println("8. Exit")

	switch c.readChoice("Enter your choice: ") {
	case 1:
		c.viewProfile()
	case 2:
		c.run(ctx, "update_profile", c.updateProfile)
	case 3:
		c.run(ctx, "search_jobs", c.searchJobs)
	case 4:
		c.run(ctx, "apply", c.apply)
	case 5:
		c.run(ctx, "applications", c.viewApplications)
	case 6:
		c.run(ctx, "interviews", c.viewInterviews)
	case 7:
		c.logger.Info().Int64("user_id", c.current.ID).Msg("user logged out")
		c.current = nil
		c.println("Logged out successfully.")
	case 8:
		return true
	default:
		if !c.closed {
			c.println("Invalid choice. Please try again.")
		}
	}
	return false
}

// run executes one menu action inside a background transaction and
// reports a storage failure with its kind.
func (c *Console) run(ctx context.Context, action string, fn func(context.Context) error) {
	ctx, txn := c.loggerService.StartBackground(ctx, "console/"+action)
	defer txn.End()

	err := fn(ctx)
	if err == nil || errors.Is(err, errInputClosed) {
		return
	}

	txn.NoticeError(nrpkgerrors.Wrap(err))
	c.logger.Error().Err(err).Str("action", action).Msg("console action failed")

	if kind := sqlerr.KindOf(err); kind != sqlerr.KindNone {
		c.printf("The %s failed, please try again (%s error).\n", strings.ReplaceAll(action, "_", " "), kind)
		return
	}
	c.printf("The %s failed, please try again.\n", strings.ReplaceAll(action, "_", " "))
}

func (c *Console) readLine(prompt string) (string, bool) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		c.closed = true
		c.println()
		return "", false
	}
	return strings.TrimRight(c.in.Text(), "\r"), true
}

// readChoice parses a menu answer; anything that is not an integer is
// NoChoice.
func (c *Console) readChoice(prompt string) int {
	line, ok := c.readLine(prompt)
	if !ok {
		return NoChoice
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return NoChoice
	}
	return n
}

// readFields prompts for each label in turn.
func (c *Console) readFields(prompts ...string) ([]string, error) {
	out := make([]string, 0, len(prompts))
	for _, p := range prompts {
		v, ok := c.readLine(p)
		if !ok {
			return nil, errInputClosed
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func titleOrUnknown(j *model.JobPosting) string {
	if j == nil {
		return "Unknown"
	}
	return j.Title
}
