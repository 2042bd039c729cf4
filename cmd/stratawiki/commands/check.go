package commands

import (
	"fmt"

	"github.com/Badpoolinator/strata-wiki/internal/linkcheck"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct{}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	broken, err := linkcheck.NewChecker(cfg.Output.Directory).Run()
	if err != nil {
		return err
	}
	for _, link := range broken {
		fmt.Println(link)
	}
	if len(broken) > 0 {
		return fmt.Errorf("%d broken internal links", len(broken))
	}
	fmt.Println("No broken internal links")
	return nil
}
