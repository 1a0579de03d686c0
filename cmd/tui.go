package cmd

import (
	"wrench/internal/tui"
)

func runTUI() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return tui.Run(tui.Config{
		KB:       a.kb,
		Orch:     a.orch,
		Sessions: a.sessions,
	})
}
