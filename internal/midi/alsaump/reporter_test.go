package alsaump

import (
	"testing"

	"github.com/leandrodaf/umpseq/internal/logger"
	"github.com/leandrodaf/umpseq/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReporterLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var errs, warns []error
	r := reporter{
		logger:    logger.NewFromCore(core),
		onError:   func(err error) { errs = append(errs, err) },
		onWarning: func(err error) { warns = append(warns, err) },
	}

	err := r.driverError("ALSA error creating port", errDriver)
	r.ReportWarning(contracts.ErrSendFailed)

	require.Len(t, errs, 1)
	require.Len(t, warns, 1)
	assert.Same(t, err, errs[0])
	assert.EqualError(t, err, "alsa seq: ALSA error creating port: driver failure")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestSendFailureLogsOneWarning(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f := newFakeSequencer()
	out := newTestOutput(t, f, nil, contracts.WithLogger(logger.NewFromCore(core)))
	require.NoError(t, out.OpenVirtualPort("virtual"))

	f.outputErr = errDriver
	_ = out.SendUMP([]uint32{0x20903C64})

	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
