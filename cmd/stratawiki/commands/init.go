package commands

import (
	"fmt"
	"os"

	"github.com/Badpoolinator/strata-wiki/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if !i.Force {
		if _, err := os.Stat(root.Config); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", root.Config)
		}
	}

	raw, err := config.Default().Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(root.Config, raw, 0o640); err != nil {
		return err
	}
	fmt.Printf("Wrote configuration to %s\n", root.Config)
	return nil
}
