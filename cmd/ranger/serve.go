package main

import (
	"fmt"
	"math"
	"time"

	"github.com/merliot/sonar"
	"github.com/merliot/sonar/adi"
	"github.com/merliot/sonar/adi/sim"
	"github.com/merliot/sonar/ranger"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	addr     string
	user     string
	passwd   string
	broker   string
	topic    string
	tlsHost  string
	storeDir string
	sweep    bool
}

func newServeCmd(opts *options) *cobra.Command {
	var so serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the node over HTTP, websocket and MQTT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, opts, &so)
		},
	}

	f := cmd.Flags()
	f.StringVar(&so.addr, "addr", sonar.GetEnv("SONAR_ADDR", ":8080"), "HTTP listen address")
	f.StringVar(&so.user, "user", sonar.GetEnv("SONAR_USER", ""), "basic auth user")
	f.StringVar(&so.passwd, "passwd", sonar.GetEnv("SONAR_PASSWD", ""), "basic auth password")
	f.StringVar(&so.broker, "mqtt", sonar.GetEnv("SONAR_MQTT", ""), "MQTT broker URL, e.g. tcp://broker:1883")
	f.StringVar(&so.topic, "topic", sonar.GetEnv("SONAR_TOPIC", ""), "MQTT topic (default sonar/<id>)")
	f.StringVar(&so.tlsHost, "tls-host", sonar.GetEnv("SONAR_TLS_HOST", ""), "serve TLS on :443 for this host")
	f.StringVar(&so.storeDir, "store", sonar.GetEnv("SONAR_STORE", ""), "directory to persist node settings in")
	f.BoolVar(&so.sweep, "sweep", true, "move the simulated target back and forth")

	return cmd
}

// restore loads saved settings, letting flags given on the command line win
func restore(cmd *cobra.Command, opts *options, dir string) error {
	if err := opts.validate(); err != nil {
		return err
	}
	sonar.StoreDir = dir
	saved := ranger.New(opts.id, "ranger", opts.name).(*ranger.Ranger)
	saved.SetFlag(sonar.NodeFlagMetal)
	if err := sonar.NodeRestore(saved); err != nil {
		return err
	}
	f := cmd.Flags()
	if !f.Changed("ping") {
		opts.ping = saved.Ping
	}
	if !f.Changed("echo") {
		opts.echo = saved.Echo
	}
	if !f.Changed("expander") {
		opts.expander = saved.Expander
	}
	if !f.Changed("period") {
		opts.periodMs = saved.PeriodMs
	}
	opts.apply(saved)
	return sonar.NodeStore(saved)
}

func serve(cmd *cobra.Command, opts *options, so *serveOptions) error {
	if so.storeDir != "" {
		if err := restore(cmd, opts, so.storeDir); err != nil {
			return err
		}
	}

	brain := newBrain()
	reg := adi.NewRegistry()
	r, err := opts.newRanger(brain, reg)
	if err != nil {
		return err
	}

	if so.sweep {
		go sweep(brain, opts.smartPort(), opts.ping)
	}

	server := sonar.NewServer(r)
	server.Addr = so.addr
	if so.user != "" {
		server.BasicAuth(so.user, so.passwd)
	}

	if so.broker != "" {
		topic := so.topic
		if topic == "" {
			topic = "sonar/" + opts.id
		}
		if _, err := server.DialMQTT(so.broker, so.user, so.passwd, topic); err != nil {
			return err
		}
	}

	go func() {
		var err error
		if so.tlsHost != "" {
			err = server.ServeTLS(so.tlsHost)
		} else {
			err = server.ListenAndServe()
		}
		fmt.Printf("Server stopped: %s\r\n", err)
	}()

	server.Run()
	return nil
}

// sweep moves the simulated target between 10cm and 2m and back every 20s
func sweep(brain *sim.Brain, expander, ping uint8) {
	start := time.Now()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		phase := time.Since(start).Seconds() / 20.0 * 2 * math.Pi
		mm := 1050 + 950*math.Sin(phase)
		if err := brain.SetDistance(expander, ping, int32(mm*10)); err != nil {
			fmt.Printf("Sweep stopped: %s\r\n", err)
			return
		}
	}
}
