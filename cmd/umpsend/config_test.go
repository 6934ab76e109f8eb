package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leandrodaf/umpseq/sdk/contracts"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "umpsend.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
client_name: Studio
port_name: Out
target: "128:0"
virtual: false
log_level: debug
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, fileConfig{
		ClientName: "Studio",
		PortName:   "Out",
		Target:     "128:0",
		LogLevel:   "debug",
	}, cfg)
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, fileConfig{}, cfg)

	cfg, err = loadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, fileConfig{}, cfg)
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	_, err := loadConfig(writeConfig(t, "client: Studio\n"))
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseTarget(t *testing.T) {
	target := parseTarget("128:0")
	assert.Equal(t, contracts.Address{Client: 128, Port: 0}, target.Addr)
	assert.Empty(t, target.PortName)
	assert.Equal(t, "128:0", target.DisplayName)

	target = parseTarget("Midi Through Port-0")
	assert.Equal(t, "Midi Through Port-0", target.PortName)
	assert.Equal(t, "Midi Through Port-0", target.DisplayName)
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]contracts.LogLevel{
		"":        contracts.InfoLevel,
		"info":    contracts.InfoLevel,
		"DEBUG":   contracts.DebugLevel,
		"warning": contracts.WarnLevel,
		" error ": contracts.ErrorLevel,
	}
	for in, want := range cases {
		got, err := parseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parseLogLevel("loud")
	assert.ErrorIs(t, err, contracts.ErrInvalidOption)
}

func TestParseWords(t *testing.T) {
	words, err := parseWords([]string{"0x40903C00", "FFFF_0000"})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x40903C00, 0xFFFF0000}, words)

	_, err = parseWords(nil)
	assert.ErrorIs(t, err, contracts.ErrInvalidPacket)

	_, err = parseWords([]string{"1", "2", "3", "4", "5"})
	assert.ErrorIs(t, err, contracts.ErrInvalidPacket)

	_, err = parseWords([]string{"0xZZ"})
	assert.ErrorIs(t, err, contracts.ErrInvalidPacket)

	_, err = parseWords([]string{"100000000"})
	assert.ErrorIs(t, err, contracts.ErrInvalidPacket)
}

// newTestCommand parses args into the root persistent flags and resets them
// when the test ends.
func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().AddFlagSet(rootCmd.PersistentFlags())
	require.NoError(t, cmd.ParseFlags(args))
	t.Cleanup(func() {
		rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})
	return cmd
}

func TestLoadSettingsFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "client_name: Studio\ntarget: \"20:0\"\nlog_level: debug\n")
	cmd := newTestCommand(t, "--config", path, "--target", "Synth", "--wait", "2s")

	s, err := loadSettings(cmd)
	require.NoError(t, err)
	assert.Equal(t, "Studio", s.ClientName)
	assert.Equal(t, "Synth", s.Target)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "GO UMP Output", s.PortName)
	assert.Equal(t, 2*time.Second, s.Wait)
}

func TestLoadSettingsNeedsTargetOrVirtual(t *testing.T) {
	_, err := loadSettings(newTestCommand(t))
	assert.ErrorIs(t, err, contracts.ErrInvalidOption)

	s, err := loadSettings(newTestCommand(t, "--virtual"))
	require.NoError(t, err)
	assert.True(t, s.Virtual)
}

func TestNoteMessages(t *testing.T) {
	cmd := &cobra.Command{Use: "note"}
	cmd.Flags().AddFlagSet(noteCmd.Flags())
	require.NoError(t, cmd.ParseFlags([]string{"--channel", "2", "--key", "64", "--velocity", "90"}))
	t.Cleanup(func() {
		noteCmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})

	on, off, length, err := noteMessages(cmd)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x92, 64, 90}, []byte(on))
	require.NotEmpty(t, off)
	assert.Equal(t, byte(0x82), off[0])
	assert.Equal(t, 500*time.Millisecond, length)

	require.NoError(t, cmd.ParseFlags([]string{"--channel", "16"}))
	_, _, _, err = noteMessages(cmd)
	assert.ErrorIs(t, err, contracts.ErrInvalidOption)
}
