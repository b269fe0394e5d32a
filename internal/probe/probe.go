// Package probe provides the liveness-probing boundary capability.
// The pipeline only depends on the Prober interface; the default
// implementation shells out to the platform ping binary so no raw-socket
// privileges are needed.
package probe

import (
	"context"
	"fmt"
	"net/netip"
	"os/exec"
	"runtime"
	"time"
)

// Prober tests whether a host answers a single liveness probe within the
// given timeout. Implementations never return an error: a probe that fails
// for any reason reports the host as unreachable.
type Prober interface {
	Probe(ctx context.Context, addr netip.Addr, timeout time.Duration) bool
}

// PingProber probes hosts with one ICMP echo via the platform ping command.
type PingProber struct{}

// NewPingProber returns the platform ping prober.
func NewPingProber() PingProber {
	return PingProber{}
}

// Probe sends a single echo request and reports whether a reply arrived
// before the timeout. The context bounds the subprocess as a backstop in
// case the platform flag semantics differ.
func (PingProber) Probe(ctx context.Context, addr netip.Addr, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout+500*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, "ping", pingArgs(addr, timeout)...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

// pingArgs builds the platform-specific argument list for one echo request.
func pingArgs(addr netip.Addr, timeout time.Duration) []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"-n", "1", "-w", fmt.Sprintf("%d", timeout.Milliseconds()), addr.String()}
	case "darwin":
		return []string{"-c", "1", "-W", fmt.Sprintf("%d", timeout.Milliseconds()), addr.String()}
	default:
		// Linux ping takes whole seconds for -W
		secs := int(timeout.Round(time.Second).Seconds())
		if secs < 1 {
			secs = 1
		}
		return []string{"-c", "1", "-W", fmt.Sprintf("%d", secs), addr.String()}
	}
}

// Func adapts a plain function to the Prober interface, used by tests to
// inject deterministic fakes.
type Func func(ctx context.Context, addr netip.Addr, timeout time.Duration) bool

// Probe implements Prober.
func (f Func) Probe(ctx context.Context, addr netip.Addr, timeout time.Duration) bool {
	return f(ctx, addr, timeout)
}
