package usecase

import (
	"context"
	"fmt"
	"io"
	"os"

	"TootBot/internal/composer"
)

// Runner resolves a composer and publishes what it produces.
type Runner struct {
	registry  *composer.Registry
	publisher *Publisher
	out       io.Writer
}

// NewRunner constructs the orchestration component.
func NewRunner(registry *composer.Registry, publisher *Publisher, out io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{registry: registry, publisher: publisher, out: out}
}

// Run executes one invocation of the named composer.
func (r *Runner) Run(ctx context.Context, name string, req composer.Request) error {
	c, err := r.registry.Resolve(name)
	if err != nil {
		return err
	}

	post, err := c.Compose(ctx, req)
	if err != nil {
		return fmt.Errorf("compose %s: %w", name, err)
	}
	if post == nil {
		_, err := fmt.Fprintf(r.out, "%s: Nothing to toot about.\n", req.Now.Format(TimestampLayout))
		return err
	}

	return r.publisher.Publish(ctx, *post, req.Now)
}
