package cmdline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/avomont/lifeline/internal/domain"
	"github.com/avomont/lifeline/internal/ports"
)

type runFunc func(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)

// Provider shells out to a platform location command, termux-location by
// default, and parses its JSON output. The command is expected to print an
// object with latitude, longitude, and accuracy fields.
type Provider struct {
	command []string
	run     runFunc
}

var _ ports.LocationProvider = (*Provider)(nil)

func NewProvider(command []string) *Provider {
	return &Provider{command: command, run: runLocationCommand}
}

func (p *Provider) Current(ctx context.Context) (domain.LocationFix, error) {
	if err := ctx.Err(); err != nil {
		return domain.LocationFix{}, err
	}
	if len(p.command) == 0 {
		return domain.LocationFix{}, domain.ErrLocationUnavailable
	}

	stdout, stderr, err := p.run(ctx, p.command[0], p.command[1:]...)
	if err != nil {
		return domain.LocationFix{}, classifyError(ctx, p.command[0], err, stderr)
	}

	var payload struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Accuracy  float64 `json:"accuracy"`
	}
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		return domain.LocationFix{}, fmt.Errorf("parse %s output: %w", p.command[0], err)
	}

	return domain.LocationFix{
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		Accuracy:  payload.Accuracy,
	}, nil
}

func classifyError(ctx context.Context, name string, err error, stderr string) error {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, domain.ErrLocationUnavailable):
		return fmt.Errorf("%s: %w", name, domain.ErrLocationUnavailable)
	case ctx.Err() != nil:
		return ctx.Err()
	case strings.Contains(strings.ToLower(stderr), "permission"):
		return fmt.Errorf("%s: %s: %w", name, stderr, domain.ErrLocationPermissionDenied)
	case stderr != "":
		return fmt.Errorf("%s: %w: %s", name, err, stderr)
	default:
		return fmt.Errorf("%s: %w", name, err)
	}
}

func runLocationCommand(ctx context.Context, name string, args ...string) (string, string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", domain.ErrLocationUnavailable
		}
		return "", "", fmt.Errorf("locate %s command: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, path, args...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}
