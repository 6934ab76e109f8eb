//go:build linux

package seq

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestStructSizesMatchKernel(t *testing.T) {
	assert.Equal(t, uintptr(2), unsafe.Sizeof(seqAddr{}))
	assert.Equal(t, uintptr(188), unsafe.Sizeof(clientInfo{}))
	assert.Equal(t, uintptr(80), unsafe.Sizeof(portSubscribe{}))
	if unsafe.Sizeof(uintptr(0)) == 8 {
		assert.Equal(t, uintptr(168), unsafe.Sizeof(portInfo{}))
		assert.Equal(t, uintptr(104), unsafe.Offsetof(portInfo{}.flags))
	}
	assert.Equal(t, uintptr(68), unsafe.Offsetof(portInfo{}.capability))
}

func TestIoctlNumbers(t *testing.T) {
	// Values as computed by the C macros in asequencer.h.
	assert.Equal(t, uintptr(0x80045301), ioctlClientID)
	assert.Equal(t, uintptr(0x40045304), ioctlUserPVersion)
	assert.Equal(t, uintptr(0xc0bc5310), ioctlGetClientInfo)
	assert.Equal(t, uintptr(0x40bc5311), ioctlSetClientInfo)
	assert.Equal(t, uintptr(0x40505330), ioctlSubscribePort)
	assert.Equal(t, uintptr(0x40505331), ioctlUnsubscribePort)
	if unsafe.Sizeof(uintptr(0)) == 8 {
		assert.Equal(t, uintptr(0xc0a85320), ioctlCreatePort)
	}
}

func TestCStringRoundTrip(t *testing.T) {
	var name [64]byte
	setCString(name[:], "GO UMP Client")
	assert.Equal(t, "GO UMP Client", cString(name[:]))

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'x'
	}
	setCString(name[:], string(long))
	assert.Len(t, cString(name[:]), 63)
}
