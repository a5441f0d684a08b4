package viewer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Opener shows a resolved location to the user, typically in an editor.
type Opener interface {
	Open(ctx context.Context, loc Location) error
}

// CommandOpener runs an editor command with the location appended as
// path:line:column, e.g. {"code", "--goto"}.
type CommandOpener struct {
	Command []string
}

// Open implements Opener.
func (o CommandOpener) Open(ctx context.Context, loc Location) error {
	if len(o.Command) == 0 {
		return errors.New("no editor command configured")
	}
	args := append(append([]string{}, o.Command[1:]...), loc.GotoArg())
	cmd := exec.CommandContext(ctx, o.Command[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", o.Command[0], err, out)
	}
	return nil
}
