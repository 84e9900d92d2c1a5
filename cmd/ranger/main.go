// Command ranger runs an ultrasonic ranging node against a simulated brain.
//
// Flag defaults come from SONAR_* environment variables, and SONAR_FLAGS is
// appended to the command line, split like a shell would.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/google/shlex"
	"github.com/merliot/sonar"
	"github.com/merliot/sonar/adi"
	"github.com/merliot/sonar/adi/sim"
	"github.com/merliot/sonar/ranger"
	"github.com/spf13/cobra"
)

type options struct {
	id       string
	name     string
	ping     uint8
	echo     uint8
	expander uint8
	periodMs uint32
}

func envUint(name string, def uint64, bits int) uint64 {
	v, err := strconv.ParseUint(sonar.GetEnv(name, strconv.FormatUint(def, 10)), 10, bits)
	if err != nil {
		return def
	}
	return v
}

func (o *options) addFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.id, "id", sonar.GetEnv("SONAR_ID", "ranger01"), "node id")
	f.StringVar(&o.name, "name", sonar.GetEnv("SONAR_NAME", "ranger"), "node name")
	f.Uint8Var(&o.ping, "ping", uint8(envUint("SONAR_PING", 1, 8)), "ping port (1='A')")
	f.Uint8Var(&o.echo, "echo", uint8(envUint("SONAR_ECHO", 2, 8)), "echo port (1='A')")
	f.Uint8Var(&o.expander, "expander", uint8(envUint("SONAR_EXPANDER", 0, 8)), "expander smart port, 0 for the brain")
	f.Uint32Var(&o.periodMs, "period", uint32(envUint("SONAR_PERIOD_MS", 100, 32)), "sample period in milliseconds")
}

// validate checks the id and name are usable as node identifiers
func (o *options) validate() error {
	if !sonar.ValidId(o.id) {
		return fmt.Errorf("invalid --id %q: only letters, digits and '_' allowed", o.id)
	}
	if !sonar.ValidId(o.name) {
		return fmt.Errorf("invalid --name %q: only letters, digits and '_' allowed", o.name)
	}
	return nil
}

// newRanger builds a ranger from the options and configures it on brain
func (o *options) newRanger(brain adi.Driver, reg *adi.Registry) (*ranger.Ranger, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	r := ranger.New(o.id, "ranger", o.name).(*ranger.Ranger)
	o.apply(r)
	if err := r.Configure(brain, reg); err != nil {
		return nil, err
	}
	return r, nil
}

func (o *options) apply(r *ranger.Ranger) {
	r.Ping, r.Echo, r.Expander = o.ping, o.echo, o.expander
	r.PeriodMs = o.periodMs
}

func (o *options) smartPort() uint8 {
	if o.expander == 0 {
		return adi.InternalExpander
	}
	return o.expander
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:           "ranger",
		Short:         "Ultrasonic ranging node",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	opts.addFlags(root)

	root.AddCommand(
		newServeCmd(&opts),
		newReadCmd(&opts),
	)
	return root
}

// extraArgs splits SONAR_FLAGS into arguments
func extraArgs() ([]string, error) {
	flags := sonar.GetEnv("SONAR_FLAGS", "")
	if flags == "" {
		return nil, nil
	}
	args, err := shlex.Split(flags)
	if err != nil {
		return nil, fmt.Errorf("SONAR_FLAGS: %w", err)
	}
	return args, nil
}

func main() {
	extra, err := extraArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	root := newRootCmd()
	root.SetArgs(append(os.Args[1:], extra...))
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newBrain returns a simulated brain
func newBrain() *sim.Brain {
	return sim.New()
}
