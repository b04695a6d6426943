/*Command motionsim drives a Controller through a small scripted command
sequence and prints the status record after each cycle. It exists to exercise
the dispatcher end to end; it is not a substitute for the (external) cyclic
executor, which would normally step the planner queues and kinematics.
*/
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"

	yml "github.com/go-yaml/yaml"

	"github.com/nasa-jpl/motioncore/axis"
	"github.com/nasa-jpl/motioncore/command"
	"github.com/nasa-jpl/motioncore/controller"
	"github.com/nasa-jpl/motioncore/kinematics"
	"github.com/nasa-jpl/motioncore/util"
)

var (
	// Version is the version number, typically injected via ldflags at build time.
	Version = "dev"

	// ConfigFileName is the optional seed-configuration file motionsim reads.
	ConfigFileName = "motionsim.yml"

	k = koanf.New(".")
)

func setupConfig() {
	k.Load(structs.Provider(DefaultConfig(), "koanf"), nil)
	if err := k.Load(file.Provider(ConfigFileName), yaml.Parser()); err != nil {
		if !strings.Contains(err.Error(), "no such") {
			log.Fatalf("error loading config: %v", err)
		}
	}
}

func root() {
	str := `motionsim drives a motion command dispatcher through a scripted
sequence of commands and prints the resulting status each cycle.

Usage:
	motionsim <command>

Commands:
	run
	help
	mkconf
	conf
	version`
	fmt.Println(str)
}

func help() {
	str := `motionsim is configured via its .yaml file: per-axis travel, velocity,
and acceleration seed values applied to a fresh controller before the
demo script runs. When no file is present, built-in defaults are used.
The command mkconf writes the defaults to disk as a starting point.`
	fmt.Println(str)
}

func mkconf() {
	c := DefaultConfig()
	if err := k.Unmarshal("", &c); err != nil {
		log.Fatal(err)
	}
	f, err := os.Create(ConfigFileName)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := yml.NewEncoder(f).Encode(c); err != nil {
		log.Fatal(err)
	}
}

func printConf() {
	c := DefaultConfig()
	if err := k.Unmarshal("", &c); err != nil {
		log.Fatal(err)
	}
	if err := yml.NewEncoder(os.Stdout).Encode(c); err != nil {
		log.Fatal(err)
	}
}

func pversion() {
	fmt.Printf("motionsim version %v\n", Version)
}

func run() {
	c := DefaultConfig()
	if err := k.Unmarshal("", &c); err != nil {
		log.Fatal(err)
	}

	ctl := controller.New(kinematics.IdentityKinematics{})
	ctl.Config.NumAxes = c.NumAxes
	ctl.Config.LimitVel = c.LimitVel
	ctl.Config.Acceleration = c.Acceleration
	for i := 0; i < c.NumAxes && i < axis.MaxAxis; i++ {
		ctl.Axes[i].Active = true
		cfg := ctl.Config.Axes[i]
		cfg.Travel = util.Limiter{Min: c.Axes[i].MinLimit, Max: c.Axes[i].MaxLimit}
		cfg.MaxVelocity = c.Axes[i].MaxVelocity
		cfg.HomingVel = c.Axes[i].HomingVel
		ctl.Config.Axes[i] = cfg
	}

	var seq uint64
	next := func() uint64 { seq++; return seq }
	dispatch := func(kind command.Kind, mutate func(*command.Record)) {
		cmd := &command.Record{Kind: kind, Seq: next()}
		if mutate != nil {
			mutate(cmd)
		}
		ctl.Dispatch(cmd, float64(seq))
		ctl.Tick()
		log.Printf("cmd=%d seq=%d mode=%v enabled=%v result=%v",
			kind, cmd.Seq, ctl.Status.Mode, ctl.Status.Enabled, ctl.Status.CommandStatus)
	}

	dispatch(command.Enable, nil)
	dispatch(command.Free, nil)
	ctl.Status.InPosition = true
	dispatch(command.JogCont, func(c *command.Record) { c.Axis = 0; c.Vel = 1 })
	dispatch(command.Coord, nil)
	dispatch(command.SetLine, func(c *command.Record) { c.Target.X = 5 })
}

func main() {
	var cmd string
	args := os.Args
	if len(args) == 1 {
		root()
		return
	}
	setupConfig()
	cmd = strings.ToLower(args[1])
	switch cmd {
	case "help":
		help()
	case "mkconf":
		mkconf()
	case "conf":
		printConf()
	case "run":
		run()
	case "version":
		pversion()
	default:
		log.Fatal("unknown command")
	}
}
