package apt

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/matzehuels/aptgraph/pkg/errors"
)

// Source provides the raw package-manager data a collection pass needs.
type Source interface {
	// ListInstalled returns installed package identifiers in listing order.
	ListInstalled(ctx context.Context) ([]string, error)

	// Depends returns the raw dependency dump for one package.
	Depends(ctx context.Context, pkg string) (string, error)
}

// VersionedSource is a Source that also reports installed versions.
// [CachedSource] only caches dumps of packages whose version it knows, so a
// package upgrade never serves a stale dump.
type VersionedSource interface {
	Source

	// ListPackages returns installed packages with versions in listing order.
	ListPackages(ctx context.Context) ([]Package, error)
}

// Default commands used by [CommandSource].
var (
	DefaultListCommand    = []string{"apt", "list", "--installed"}
	DefaultDependsCommand = []string{"apt-cache", "depends"}
)

// CommandSource runs package-manager commands as subprocesses.
// The package identifier is appended as the last argument of DependsCommand.
type CommandSource struct {
	ListCommand    []string
	DependsCommand []string
}

// NewCommandSource returns a CommandSource. Empty commands fall back to
// [DefaultListCommand] and [DefaultDependsCommand].
func NewCommandSource(list, depends []string) *CommandSource {
	if len(list) == 0 {
		list = DefaultListCommand
	}
	if len(depends) == 0 {
		depends = DefaultDependsCommand
	}
	return &CommandSource{ListCommand: list, DependsCommand: depends}
}

// ListInstalled returns the names from [CommandSource.ListPackages].
func (s *CommandSource) ListInstalled(ctx context.Context) ([]string, error) {
	pkgs, err := s.ListPackages(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.Name
	}
	return names, nil
}

// ListPackages runs ListCommand and parses its output with
// [ParseInstalledPackages]. Any failure carries [errors.ErrCodeCollection].
func (s *CommandSource) ListPackages(ctx context.Context) ([]Package, error) {
	out, err := run(ctx, s.ListCommand)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCollection, err, "list installed packages")
	}
	return ParseInstalledPackages(out), nil
}

// Depends runs DependsCommand for pkg. Any failure carries
// [errors.ErrCodeFetch].
func (s *CommandSource) Depends(ctx context.Context, pkg string) (string, error) {
	if err := errors.ValidatePackageName(pkg); err != nil {
		return "", errors.Wrap(errors.ErrCodeFetch, err, "dependencies of %s", pkg)
	}
	argv := append(append([]string(nil), s.DependsCommand...), pkg)
	out, err := run(ctx, argv)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFetch, err, "dependencies of %s", pkg)
	}
	return out, nil
}

// run executes argv and returns its stdout. Stderr is attached to the error
// when the command fails. A command killed because ctx ended reports
// ctx.Err() instead of the kill signal.
func run(ctx context.Context, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", strings.Join(argv, " "), err, msg)
		}
		return "", fmt.Errorf("%s: %w", strings.Join(argv, " "), err)
	}
	return string(out), nil
}

var _ VersionedSource = (*CommandSource)(nil)
