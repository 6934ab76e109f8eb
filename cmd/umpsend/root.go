package main

import (
	"fmt"
	"os"
	"time"

	"github.com/leandrodaf/umpseq/internal/logger"
	"github.com/leandrodaf/umpseq/sdk/contracts"
	"github.com/leandrodaf/umpseq/sdk/midi"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "umpsend",
	Short: "umpsend sends MIDI 2.0 packets through the ALSA sequencer",
	Long: `umpsend opens an ALSA sequencer client in UMP mode, creates an output port
and sends Universal MIDI Packets to a connected port or to whoever subscribes
to its virtual port.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML configuration file")
	flags.String("client-name", midi.DefaultClientName, "sequencer client name")
	flags.String("port-name", midi.DefaultPortName, "output port name")
	flags.StringP("target", "t", "", "destination port as client:port or port name")
	flags.Bool("virtual", false, "open a virtual port instead of connecting to --target")
	flags.Duration("wait", 0, "time to wait after opening the port, so other clients can connect")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-file", "", "write logs to this file instead of stderr")
}

// settings is the merged result of the config file and the flags.
type settings struct {
	fileConfig
	Wait time.Duration
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := loadConfig(path)
	if err != nil {
		return settings{}, err
	}

	override := func(name string, dst *string) {
		if flags.Changed(name) || *dst == "" {
			*dst, _ = flags.GetString(name)
		}
	}
	override("client-name", &cfg.ClientName)
	override("port-name", &cfg.PortName)
	override("target", &cfg.Target)
	override("log-level", &cfg.LogLevel)
	override("log-file", &cfg.LogFile)
	if flags.Changed("virtual") {
		cfg.Virtual, _ = flags.GetBool("virtual")
	}

	s := settings{fileConfig: cfg}
	s.Wait, _ = flags.GetDuration("wait")
	if !s.Virtual && s.Target == "" {
		return s, fmt.Errorf("%w: --target or --virtual is required", contracts.ErrInvalidOption)
	}
	return s, nil
}

// openOutput creates the output and its port as described by s.
func openOutput(s settings) (contracts.OutputPort, contracts.Logger, error) {
	level, err := parseLogLevel(s.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	log := logger.NewDevelopmentLogger()

	opts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithLogLevel(level),
		contracts.WithClientName(s.ClientName),
		contracts.WithPortName(s.PortName),
	}
	if s.LogFile != "" {
		opts = append(opts, contracts.WithLogFile(s.LogFile))
	}

	output, err := midi.NewMIDIOutput(opts...)
	if err != nil {
		return nil, nil, err
	}

	if s.Virtual {
		err = output.OpenVirtualPort(s.PortName)
	} else {
		err = output.OpenPort(parseTarget(s.Target), s.PortName)
	}
	if err != nil {
		_ = output.Close()
		return nil, nil, err
	}

	if s.Wait > 0 {
		log.Info("Waiting before sending", log.Field().String("wait", s.Wait.String()))
		time.Sleep(s.Wait)
	}
	return output, log, nil
}
