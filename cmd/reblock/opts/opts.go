package opts

import (
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reblock/pkg/config"
	"github.com/walteh/reblock/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config *config.Config
	Logger *log.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Clipboard access, replaceable in tests
	ReadClipboard  func() (string, error)
	WriteClipboard func(string) error
}

// New returns options wired to the process streams and system clipboard
func New() *RootOpts {
	return &RootOpts{
		Config:         config.Default(),
		Stdin:          os.Stdin,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		ReadClipboard:  clipboard.ReadAll,
		WriteClipboard: clipboard.WriteAll,
	}
}

// 🏷️ Enum is a pflag.Value restricted to a fixed set of strings
type Enum struct {
	allowed []string
	value   string
}

var _ pflag.Value = (*Enum)(nil)

// NewEnum creates an Enum with a default value, which may be ""
func NewEnum(def string, allowed ...string) *Enum {
	return &Enum{allowed: allowed, value: def}
}

func (e *Enum) String() string {
	return e.value
}

func (e *Enum) Set(v string) error {
	for _, a := range e.allowed {
		if a == v {
			e.value = v
			return nil
		}
	}
	return errors.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
}

func (e *Enum) Type() string {
	return "string"
}
