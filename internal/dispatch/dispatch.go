// Package dispatch hands a chosen issue to the external work-execution
// system via the gh CLI and extracts a session reference from its
// output.
//
// Dispatch failure is never an error out of this package: a missing
// executable or a non-zero exit is logged and reported through the
// started flag, so the caller leaves the board untouched.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/get2knowio/deacon/internal/debug"
)

// CommandRunner executes an external command with optional stdin and
// returns its captured stdout and stderr.
type CommandRunner interface {
	Run(ctx context.Context, stdin, name string, args ...string) (stdout, stderr string, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, stdin, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != "" {
		cmd.Stdin = bytes.NewBufferString(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// IssueDetail is the issue content used to compose the task description.
type IssueDetail struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// Dispatcher creates agent tasks through the gh CLI.
type Dispatcher struct {
	runner CommandRunner
}

// New returns a Dispatcher backed by the real gh executable.
func New() *Dispatcher {
	return &Dispatcher{runner: execRunner{}}
}

// NewWithRunner returns a Dispatcher using a custom command runner.
func NewWithRunner(r CommandRunner) *Dispatcher {
	return &Dispatcher{runner: r}
}

// IssueView fetches title, body, and canonical URL for an issue in the
// current repository context.
func (d *Dispatcher) IssueView(ctx context.Context, number int) (IssueDetail, error) {
	stdout, stderr, err := d.runner.Run(ctx, "", "gh",
		"issue", "view", strconv.Itoa(number), "--json", "title,body,url")
	if err != nil {
		return IssueDetail{}, fmt.Errorf("gh issue view failed: %w (stderr: %s)", err, stderr)
	}
	var detail IssueDetail
	if err := json.Unmarshal([]byte(stdout), &detail); err != nil {
		return IssueDetail{}, fmt.Errorf("failed to parse gh issue view output: %w", err)
	}
	return detail, nil
}

// TaskDescription composes the fixed-shape task text for an issue.
func TaskDescription(detail IssueDetail, number int) string {
	return fmt.Sprintf("Issue: %s\nURL: %s\n\n%s\n\nPlease address this issue and include: Closes #%d",
		detail.Title, detail.URL, detail.Body, number)
}

// Dispatch creates an agent task for the issue in the given repository.
// The returned started flag is false on any invocation failure; the
// Session is zero-valued unless the tool's output contained a URL.
func (d *Dispatcher) Dispatch(ctx context.Context, repoSlug string, number int) (Session, bool) {
	detail, err := d.IssueView(ctx, number)
	if err != nil {
		debug.Logf("dispatch: %v\n", err)
		debug.PrintlnNormal("agent-task creation failed; leaving Status unchanged")
		return Session{}, false
	}

	desc := TaskDescription(detail, number)
	stdout, stderr, err := d.runner.Run(ctx, desc, "gh",
		"agent-task", "create", "-F", "-", "-R", repoSlug)
	if err != nil {
		debug.Logf("dispatch: gh agent-task create failed: %v (stdout: %s, stderr: %s)\n", err, stdout, stderr)
		debug.PrintlnNormal("agent-task creation failed; leaving Status unchanged")
		return Session{}, false
	}

	return ParseSession(stdout), true
}

// Comment posts a comment on the issue in the current repository
// context.
func (d *Dispatcher) Comment(ctx context.Context, number int, body string) error {
	_, stderr, err := d.runner.Run(ctx, "", "gh",
		"issue", "comment", strconv.Itoa(number), "--body", body)
	if err != nil {
		return fmt.Errorf("gh issue comment failed: %w (stderr: %s)", err, stderr)
	}
	return nil
}
