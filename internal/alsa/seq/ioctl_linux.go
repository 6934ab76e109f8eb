//go:build linux

package seq

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Sequencer ioctl constants from the kernel UAPI header
// include/uapi/sound/asequencer.h. Request numbers use the asm-generic
// encoding: direction << 30 | size << 16 | type << 8 | nr.
const (
	seqIoctlType = 'S'

	iocWrite = 1
	iocRead  = 2

	// SNDRV_PROTOCOL_VERSION(1, 0, 3), the first version with UMP events.
	userProtocolVersion = 1<<16 | 0<<8 | 3

	// SNDRV_SEQ_CLIENT_UMP_MIDI_2_0
	clientUMPMIDI20 = 2
)

var (
	ioctlClientID        = ioc(iocRead, 0x01, unsafe.Sizeof(int32(0)))
	ioctlUserPVersion    = ioc(iocWrite, 0x04, unsafe.Sizeof(int32(0)))
	ioctlGetClientInfo   = ioc(iocRead|iocWrite, 0x10, unsafe.Sizeof(clientInfo{}))
	ioctlSetClientInfo   = ioc(iocWrite, 0x11, unsafe.Sizeof(clientInfo{}))
	ioctlCreatePort      = ioc(iocRead|iocWrite, 0x20, unsafe.Sizeof(portInfo{}))
	ioctlDeletePort      = ioc(iocWrite, 0x21, unsafe.Sizeof(portInfo{}))
	ioctlGetPortInfo     = ioc(iocRead|iocWrite, 0x22, unsafe.Sizeof(portInfo{}))
	ioctlSetPortInfo     = ioc(iocWrite, 0x23, unsafe.Sizeof(portInfo{}))
	ioctlSubscribePort   = ioc(iocWrite, 0x30, unsafe.Sizeof(portSubscribe{}))
	ioctlUnsubscribePort = ioc(iocWrite, 0x31, unsafe.Sizeof(portSubscribe{}))
	ioctlQueryNextClient = ioc(iocRead|iocWrite, 0x51, unsafe.Sizeof(clientInfo{}))
	ioctlQueryNextPort   = ioc(iocRead|iocWrite, 0x52, unsafe.Sizeof(portInfo{}))
)

func ioc(dir, nr, size uintptr) uintptr {
	return dir<<30 | size<<16 | seqIoctlType<<8 | nr
}

// seqAddr mirrors struct snd_seq_addr.
type seqAddr struct {
	client uint8
	port   uint8
}

// clientInfo mirrors struct snd_seq_client_info (188 bytes).
type clientInfo struct {
	client          int32
	typ             int32
	name            [64]byte
	filter          uint32
	multicastFilter [8]byte
	eventFilter     [32]byte
	numPorts        int32
	eventLost       int32
	card            int32
	pid             int32
	midiVersion     uint32
	groupFilter     uint32
	reserved        [48]byte
}

// portInfo mirrors struct snd_seq_port_info (168 bytes on 64-bit).
type portInfo struct {
	addr         seqAddr
	name         [64]byte
	capability   uint32
	typ          uint32
	midiChannels int32
	midiVoices   int32
	synthVoices  int32
	readUse      int32
	writeUse     int32
	kernel       uintptr
	flags        uint32
	timeQueue    uint8
	direction    uint8
	umpGroup     uint8
	reserved     [57]byte
}

// portSubscribe mirrors struct snd_seq_port_subscribe (80 bytes).
type portSubscribe struct {
	sender   seqAddr
	dest     seqAddr
	voices   uint32
	flags    uint32
	queue    uint8
	pad      [3]byte
	reserved [64]byte
}

func ptr[T any](v *T) unsafe.Pointer {
	return unsafe.Pointer(v)
}

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}
