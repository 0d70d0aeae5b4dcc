// Package console implements the interactive menu loop that drives the
// EC2 operations. The loop is strictly sequential: each dispatched call
// completes before the menu is shown again.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dmelo/ec2console/types"
)

// Operations is the provider surface the console dispatches to.
type Operations interface {
	ListInstances(ctx context.Context) ([]types.InstanceSummary, error)
	CreateInstance(ctx context.Context, name string) (*types.InstanceSummary, error)
	StartInstance(ctx context.Context, id string) (*types.StateChange, error)
	StopInstance(ctx context.Context, id string) (*types.StateChange, error)
	TerminateInstance(ctx context.Context, id string) (*types.StateChange, error)
	TagInstance(ctx context.Context, id, environment, department string) error
	ListTags(ctx context.Context, id string) ([]types.Tag, error)
}

// Config holds the values the tag action writes.
type Config struct {
	Environment string
	Department  string
}

// Console reads selections from in, dispatches to ops, and writes
// results to out.
type Console struct {
	ops    Operations
	cfg    Config
	in     *bufio.Scanner
	out    io.Writer
	logger zerolog.Logger
}

// New builds a console. The reader and writer are injected so the loop
// can be driven by scripted input in tests.
func New(ops Operations, cfg Config, in io.Reader, out io.Writer, logger zerolog.Logger) *Console {
	return &Console{
		ops:    ops,
		cfg:    cfg,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Run displays the menu until the operator selects Sair or the input
// stream ends. It always returns nil on a clean exit so the process
// terminates with code 0.
func (c *Console) Run(ctx context.Context) error {
	for {
		c.printMenu()

		line, ok := c.readLine("Escolha uma opção: ")
		if !ok {
			return nil
		}

		action := parseSelection(line)
		switch action {
		case ActionUnknown:
			c.logger.Warn().Str("input", line).Msg("unrecognized selection")
			continue
		case ActionExit:
			fmt.Fprintln(c.out, "Até logo!")
			return nil
		}

		c.dispatch(ctx, action)
	}
}

// dispatch prompts for whatever the action needs and runs it. Remote
// failures are logged and swallowed so the loop always comes back.
func (c *Console) dispatch(ctx context.Context, action Action) {
	switch {
	case action == ActionList:
		c.runList(ctx)

	case action == ActionCreate:
		name, ok := c.readLine("Informe o nome da nova instância: ")
		if !ok || name == "" {
			c.logger.Warn().Msg("instance name not provided, action cancelled")
			return
		}
		c.runCreate(ctx, name)

	case action.needsInstanceID():
		id, ok := c.readLine("Informe o ID da instância: ")
		if !ok || id == "" {
			c.logger.Warn().Msg("instance id not provided, action cancelled")
			return
		}
		c.runWithID(ctx, action, id)
	}
}

func (c *Console) runWithID(ctx context.Context, action Action, id string) {
	switch action {
	case ActionStart:
		c.runStateChange(ctx, "start", c.ops.StartInstance, id)
	case ActionStop:
		c.runStateChange(ctx, "stop", c.ops.StopInstance, id)
	case ActionTerminate:
		c.runStateChange(ctx, "terminate", c.ops.TerminateInstance, id)
	case ActionTag:
		c.runTag(ctx, id)
	case ActionListTags:
		c.runListTags(ctx, id)
	}
}

func (c *Console) runList(ctx context.Context) {
	instances, err := c.ops.ListInstances(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("list instances failed")
		return
	}

	c.logger.Info().Int("count", len(instances)).Msg("instances listed")
	renderInstances(c.out, instances)
}

func (c *Console) runCreate(ctx context.Context, name string) {
	instance, err := c.ops.CreateInstance(ctx, name)
	if err != nil {
		c.logger.Error().Err(err).Str("name", name).Msg("create instance failed")
		return
	}

	c.logger.Info().Str("instance_id", instance.ID).Str("name", name).Msg("instance created")
	fmt.Fprintf(c.out, "Instância criada: %s (%s)\n", instance.ID, instance.State)
}

func (c *Console) runStateChange(ctx context.Context, verb string, op func(context.Context, string) (*types.StateChange, error), id string) {
	change, err := op(ctx, id)
	if err != nil {
		c.logger.Error().Err(err).Str("instance_id", id).Str("action", verb).Msg("instance state change failed")
		return
	}

	c.logger.Info().
		Str("instance_id", change.InstanceID).
		Str("action", verb).
		Str("previous", change.PreviousState).
		Str("current", change.CurrentState).
		Msg("instance state change requested")
	fmt.Fprintf(c.out, "Instância %s: %s -> %s\n", change.InstanceID, change.PreviousState, change.CurrentState)
}

func (c *Console) runTag(ctx context.Context, id string) {
	if err := c.ops.TagInstance(ctx, id, c.cfg.Environment, c.cfg.Department); err != nil {
		c.logger.Error().Err(err).Str("instance_id", id).Msg("tag instance failed")
		return
	}

	c.logger.Info().
		Str("instance_id", id).
		Str("environment", c.cfg.Environment).
		Str("department", c.cfg.Department).
		Msg("instance tagged")
	fmt.Fprintf(c.out, "Tags aplicadas em %s: Environment=%s, Department=%s\n", id, c.cfg.Environment, c.cfg.Department)
}

func (c *Console) runListTags(ctx context.Context, id string) {
	tags, err := c.ops.ListTags(ctx, id)
	if err != nil {
		c.logger.Error().Err(err).Str("instance_id", id).Msg("list tags failed")
		return
	}

	c.logger.Info().Str("instance_id", id).Int("count", len(tags)).Msg("tags listed")
	renderTags(c.out, id, tags)
}

func (c *Console) printMenu() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "=== Console EC2 ===")
	for i, entry := range menuEntries {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, entry.label)
	}
}

// readLine writes the prompt and reads one trimmed answer. ok is false
// when the input stream ends.
func (c *Console) readLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}
