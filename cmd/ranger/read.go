package main

import (
	"fmt"
	"time"

	"github.com/merliot/sonar/adi"
	"github.com/spf13/cobra"
)

func newReadCmd(opts *options) *cobra.Command {
	var count int
	var raw int32

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Print distance readings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			brain := newBrain()
			r, err := opts.newRanger(brain, adi.NewRegistry())
			if err != nil {
				return err
			}
			if err := brain.SetDistance(opts.smartPort(), opts.ping, raw); err != nil {
				return err
			}
			period := time.Duration(r.PeriodMs) * time.Millisecond
			for i := 0; i < count; i++ {
				r.Sample()
				if r.Err != "" {
					return fmt.Errorf("reading %s: %s", r, r.Err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Distance: %.1f mm (raw %d)\n", r.Mm, r.Raw)
				if i < count-1 {
					time.Sleep(period)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "number of readings")
	cmd.Flags().Int32Var(&raw, "raw", 5000, "simulated distance in 10^-4 m")
	return cmd
}
