package contracts

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUMPEventLayout(t *testing.T) {
	var ev UMPEvent
	ev.SetUMP()
	ev.SetSource(5)
	ev.SetSubscribers()
	ev.SetDirect()
	require.NoError(t, ev.SetWords([]uint32{0x40903C00, 0xC0000000}))

	raw, err := ev.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, raw, UMPEventSize)

	assert.Equal(t, byte(0), raw[0])
	assert.Equal(t, EventFlagUMP, raw[1])
	assert.Equal(t, QueueDirect, raw[3])
	assert.Equal(t, make([]byte, 8), raw[4:12])
	assert.Equal(t, []byte{0, 5, AddressSubscribers, AddressUnknown}, raw[12:16])
	assert.Equal(t, uint32(0x40903C00), binary.NativeEndian.Uint32(raw[16:]))
	assert.Equal(t, uint32(0xC0000000), binary.NativeEndian.Uint32(raw[20:]))
	assert.Equal(t, make([]byte, 8), raw[24:])

	var back UMPEvent
	require.NoError(t, back.UnmarshalBinary(raw))
	assert.Equal(t, ev, back)
	assert.Error(t, back.UnmarshalBinary(raw[:31]))
}

func TestUMPEventSetWordsBounds(t *testing.T) {
	var ev UMPEvent
	assert.ErrorIs(t, ev.SetWords(nil), ErrInvalidPacket)
	assert.ErrorIs(t, ev.SetWords(make([]uint32, MaxUMPWords+1)), ErrInvalidPacket)
	assert.NoError(t, ev.SetWords(make([]uint32, MaxUMPWords)))
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress(" 128:2 ")
	require.NoError(t, err)
	assert.Equal(t, Address{Client: 128, Port: 2}, addr)
	assert.Equal(t, "128:2", addr.String())

	for _, bad := range []string{"", "128", "x:0", "128:y", "256:0"} {
		_, err := ParseAddress(bad)
		assert.ErrorIs(t, err, ErrInvalidOption, bad)
	}
}

func TestOptionsValidate(t *testing.T) {
	opts := &OutputOptions{}
	assert.ErrorIs(t, opts.Validate(), ErrInvalidOption)

	for _, opt := range []Option{
		WithLogger(nopLogger{}),
		WithClientName("client"),
		WithPortName("port"),
		WithLogLevel(DebugLevel),
	} {
		opt(opts)
	}
	require.NoError(t, opts.Validate())
	assert.Equal(t, DebugLevel, opts.LogLevel)

	WithPortName(strings.Repeat("p", MaxNameLength+1))(opts)
	assert.ErrorIs(t, opts.Validate(), ErrInvalidOption)

	WithPortName("   ")(opts)
	assert.ErrorIs(t, opts.Validate(), ErrInvalidOption)
}

func TestWithAlsaSeqConfigReplaces(t *testing.T) {
	opts := &OutputOptions{}
	WithClientName("old")(opts)
	WithAlsaSeqConfig(AlsaSeqConfig{ClientName: "new", PortName: "p"})(opts)
	assert.Equal(t, "new", opts.AlsaSeq.ClientName)
	assert.Nil(t, opts.AlsaSeq.Context)
}

func TestPortCapabilityHas(t *testing.T) {
	caps := CapWrite | CapSubsWrite | CapUMPEndpoint
	assert.True(t, caps.Has(CapWrite|CapSubsWrite))
	assert.False(t, caps.Has(CapRead))
}

type nopLogger struct{}

func (nopLogger) Info(string, ...Field)                    {}
func (nopLogger) Error(string, ...Field)                   {}
func (nopLogger) Debug(string, ...Field)                   {}
func (nopLogger) Warn(string, ...Field)                    {}
func (nopLogger) Fatal(string, ...Field)                   {}
func (nopLogger) Field() Field                             { return nil }
func (nopLogger) SetLevel(LogLevel)                        {}
func (nopLogger) SetDestination(LogDestination, ...string) {}
