package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanError(t *testing.T) {
	t.Run("formats code and target", func(t *testing.T) {
		err := ErrInvalidTarget("not-an-ip")
		assert.Equal(t, "[TARGET_INVALID] invalid target specification (target: not-an-ip)", err.Error())
	})

	t.Run("unwraps its cause", func(t *testing.T) {
		cause := stderrors.New("connection refused")
		err := ErrConnectFailed("192.168.1.5", 443, cause)

		require.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "port 443")
		assert.Equal(t, "connect", err.Operation)
	})
}

func TestGetCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"scan error", ErrProbeFailed("10.0.0.1", nil), CodeProbeFailed},
		{"resolve error", ErrResolveFailed("10.0.0.1", nil), CodeResolveFailed},
		{"config error", ErrConfigInvalid("scan_workers", -1), CodeValidation},
		{"report error", NewReportError("csv", "/tmp/x.csv", nil), CodeReportFailed},
		{"plain error", stderrors.New("boom"), CodeUnknown},
		{"nil", nil, CodeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetCode(tc.err))
			assert.True(t, IsCode(tc.err, tc.want))
		})
	}
}

func TestIsFatal(t *testing.T) {
	t.Run("invalid target aborts the run", func(t *testing.T) {
		assert.True(t, IsFatal(ErrInvalidTarget("bad")))
	})

	t.Run("broken configuration aborts the run", func(t *testing.T) {
		assert.True(t, IsFatal(WrapConfigError(CodeConfiguration, "unreadable", nil)))
	})

	t.Run("per-unit failures do not", func(t *testing.T) {
		assert.False(t, IsFatal(ErrProbeFailed("10.0.0.1", nil)))
		assert.False(t, IsFatal(ErrResolveFailed("10.0.0.1", nil)))
		assert.False(t, IsFatal(ErrConnectFailed("10.0.0.1", 80, nil)))
		assert.False(t, IsFatal(NewReportError("html", "/tmp/x.html", nil)))
	})
}
