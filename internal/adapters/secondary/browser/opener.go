package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/fallinov/prez-app/internal/domain/ports"
)

// Command is one way of handing a URL to a browser
type Command struct {
	Name string
	Bin  string
	Args func(url string) []string
}

// Opener opens rendered decks in the user's browser
type Opener struct {
	commands []Command
	lookPath func(string) (string, error)
	start    func(ctx context.Context, bin string, args ...string) error
}

// NewOpener creates an opener with the commands known for this platform
func NewOpener() *Opener {
	return &Opener{
		commands: platformCommands(runtime.GOOS),
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// Open opens the document at path as a file:// URL
func (o *Opener) Open(ctx context.Context, path string) error {
	target, err := FileURL(path)
	if err != nil {
		return err
	}

	cmd, err := o.selectCommand()
	if err != nil {
		return fmt.Errorf("browser selection: %w", err)
	}

	if err := o.start(ctx, cmd.Bin, cmd.Args(target)...); err != nil {
		return fmt.Errorf("launching %s: %w", cmd.Name, err)
	}

	return nil
}

// FileURL turns a filesystem path into an absolute file:// URL
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	if runtime.GOOS == "windows" {
		u.Path = "/" + u.Path
	}

	return u.String(), nil
}

// selectCommand returns the first command whose executable is on PATH
func (o *Opener) selectCommand() (*Command, error) {
	if len(o.commands) == 0 {
		return nil, errors.New("no browsers available")
	}

	for _, candidate := range o.commands {
		if _, err := o.lookPath(candidate.Bin); err == nil {
			return &candidate, nil
		}
	}

	return nil, errors.New("no supported browsers found on this system")
}

// startDetached launches bin without tying its lifetime to ctx; the browser
// outlives the command
func startDetached(ctx context.Context, bin string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := exec.Command(bin, args...) // #nosec G204 - bin comes from the fixed platform list
	if err := cmd.Start(); err != nil {
		return err
	}

	// Don't wait for the browser to close
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

func platformCommands(goos string) []Command {
	single := func(u string) []string { return []string{u} }

	switch goos {
	case "darwin":
		return []Command{
			{Name: "Default", Bin: "open", Args: single},
		}
	case "linux", "freebsd", "openbsd":
		return []Command{
			{Name: "xdg-open", Bin: "xdg-open", Args: single},
			{Name: "Firefox", Bin: "firefox", Args: single},
			{Name: "Chrome", Bin: "google-chrome", Args: single},
			{Name: "Chromium", Bin: "chromium", Args: single},
		}
	case "windows":
		return []Command{
			{Name: "Default", Bin: "rundll32", Args: func(u string) []string {
				return []string{"url.dll,FileProtocolHandler", u}
			}},
		}
	default:
		return nil
	}
}

var _ ports.DocumentOpener = (*Opener)(nil)
