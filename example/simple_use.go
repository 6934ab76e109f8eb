package main

import (
	"fmt"
	"time"

	"github.com/leandrodaf/umpseq/internal/logger"
	"github.com/leandrodaf/umpseq/sdk/contracts"
	"github.com/leandrodaf/umpseq/sdk/midi"
)

func main() {
	log := logger.NewDevelopmentLogger()

	output, err := midi.NewMIDIOutput(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithClientName("UMP Example"),
		contracts.WithWarningCallback(func(err error) {
			fmt.Println("warning:", err)
		}),
	)
	if err != nil {
		log.Error("Failed to initialize MIDI output", log.Field().Error("error", err))
		return
	}
	defer output.Close()

	if err = output.OpenVirtualPort("UMP Example Out"); err != nil {
		log.Error("Failed to open virtual port", log.Field().Error("error", err))
		return
	}
	fmt.Println("Virtual port open. Connect it with aconnect, then watch the notes arrive.")

	// MIDI 2.0 note on / note off, group 0, channel 0, middle C.
	noteOn := []uint32{0x40903C00, 0xFFFF0000}
	noteOff := []uint32{0x40803C00, 0x00000000}
	for i := 0; i < 8; i++ {
		if err := output.SendUMP(noteOn); err != nil {
			log.Warn("Note on not sent", log.Field().Error("error", err))
		}
		time.Sleep(250 * time.Millisecond)
		if err := output.SendUMP(noteOff); err != nil {
			log.Warn("Note off not sent", log.Field().Error("error", err))
		}
		time.Sleep(250 * time.Millisecond)
	}
}
