package main

import (
	"fmt"

	"github.com/cmixlab/cmix/internal/material"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newParamsCmd creates the 'params' command: it completes the parameter set
// exactly as a run would and prints the effective values, so users can see
// what the derived constants came out to before committing to a long run.
func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the effective completed parameter set",
		RunE:  runParams,
	}
	cmd.Flags().StringArray("set", nil, "Parameter override as key=value (repeatable)")
	return cmd
}

func runParams(cmd *cobra.Command, args []string) error {
	sets, _ := cmd.Flags().GetStringArray("set")

	cfg, _, err := resolveSetup(cmd)
	if err != nil {
		return err
	}
	overrides, err := mergeOverrides(cfg.Params, sets)
	if err != nil {
		return err
	}

	p, err := material.New(overrides)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	fmt.Printf("# derived: n=%d samples, dt=%g, jc0=%g, je0=%g, jg0=%g\n",
		p.N, p.Dt, p.Jc0, p.Je0, p.Jg0)
	return nil
}
