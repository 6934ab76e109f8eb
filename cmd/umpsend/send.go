package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var sendCmd = &cobra.Command{
	Use:   "send WORD...",
	Short: "Send one UMP packet given as 1 to 4 hexadecimal words",
	Example: `  umpsend send --target 128:0 0x40903C00 0xFFFF0000
  umpsend send --virtual --wait 5s 20903C64`,
	Args: cobra.RangeArgs(1, 4),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		words, err := parseWords(args)
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

		if err := output.SendUMP(words); err != nil {
			return err
		}
		log.Info("UMP packet sent", log.Field().Uint32s("words", words))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
