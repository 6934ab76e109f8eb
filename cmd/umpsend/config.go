package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/leandrodaf/umpseq/sdk/contracts"
	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML configuration file. Command line flags
// override its values.
type fileConfig struct {
	ClientName string `yaml:"client_name"`
	PortName   string `yaml:"port_name"`
	Target     string `yaml:"target"`
	Virtual    bool   `yaml:"virtual"`
	LogLevel   string `yaml:"log_level"`
	LogFile    string `yaml:"log_file"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// parseTarget reads "client:port" as an address and anything else as a
// port name.
func parseTarget(s string) contracts.OutputTarget {
	target := contracts.OutputTarget{DisplayName: s}
	if addr, err := contracts.ParseAddress(s); err == nil {
		target.Addr = addr
		return target
	}
	target.PortName = s
	return target
}

func parseLogLevel(s string) (contracts.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return contracts.InfoLevel, nil
	case "debug":
		return contracts.DebugLevel, nil
	case "warn", "warning":
		return contracts.WarnLevel, nil
	case "error":
		return contracts.ErrorLevel, nil
	default:
		return contracts.InfoLevel, fmt.Errorf("%w: log level %q", contracts.ErrInvalidOption, s)
	}
}

// parseWords parses hexadecimal UMP words such as "0x40903C00" or "FFFF0000".
func parseWords(args []string) ([]uint32, error) {
	words := make([]uint32, 0, len(args))
	for _, a := range args {
		s := strings.TrimPrefix(strings.TrimPrefix(a, "0x"), "0X")
		s = strings.ReplaceAll(s, "_", "")
		w, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: word %q: %v", contracts.ErrInvalidPacket, a, err)
		}
		words = append(words, uint32(w))
	}
	if len(words) == 0 || len(words) > contracts.MaxUMPWords {
		return nil, fmt.Errorf("%w: %d words, want 1 to %d", contracts.ErrInvalidPacket, len(words), contracts.MaxUMPWords)
	}
	return words, nil
}
