package main

import (
	"fmt"
	"time"

	"github.com/leandrodaf/umpseq/sdk/contracts"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	"go.uber.org/multierr"
)

var noteCmd = &cobra.Command{
	Use:     "note",
	Short:   "Play a MIDI 1.0 note, converted to UMP on the way out",
	Example: `  umpsend note --target "Midi Through Port-0" --key 60 --velocity 100 --length 500ms`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		on, off, length, err := noteMessages(cmd)
		if err != nil {
			return err
		}
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		output, log, err := openOutput(s)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, output.Close()) }()

		if err := output.SendMessage(on); err != nil {
			return err
		}
		time.Sleep(length)
		if err := output.SendMessage(off); err != nil {
			return err
		}
		log.Info("Note played", log.Field().String("on", on.String()))
		return nil
	},
}

func noteMessages(cmd *cobra.Command) (on, off gomidi.Message, length time.Duration, err error) {
	flags := cmd.Flags()
	channel, _ := flags.GetUint8("channel")
	key, _ := flags.GetUint8("key")
	velocity, _ := flags.GetUint8("velocity")
	length, _ = flags.GetDuration("length")

	switch {
	case channel > 15:
		err = fmt.Errorf("%w: channel %d, want 0 to 15", contracts.ErrInvalidOption, channel)
	case key > 127:
		err = fmt.Errorf("%w: key %d, want 0 to 127", contracts.ErrInvalidOption, key)
	case velocity > 127:
		err = fmt.Errorf("%w: velocity %d, want 0 to 127", contracts.ErrInvalidOption, velocity)
	}
	if err != nil {
		return nil, nil, 0, err
	}
	return gomidi.NoteOn(channel, key, velocity), gomidi.NoteOff(channel, key), length, nil
}

func init() {
	noteCmd.Flags().Uint8("channel", 0, "MIDI channel, 0 to 15")
	noteCmd.Flags().Uint8("key", 60, "note number")
	noteCmd.Flags().Uint8("velocity", 100, "note on velocity")
	noteCmd.Flags().Duration("length", 500*time.Millisecond, "time between note on and note off")
	rootCmd.AddCommand(noteCmd)
}
