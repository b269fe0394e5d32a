// Package arp provides the hardware-address-resolution boundary capability.
// The default implementation reads the platform ARP table via the arp
// command; the table is populated as a side effect of the liveness sweep
// that runs immediately before, which is why resolution only runs against
// hosts already confirmed reachable.
package arp

import (
	"context"
	"net/netip"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
)

// Unknown is the sentinel hardware address recorded when a lookup fails
// for any reason. Resolution failures are never fatal.
const Unknown = "unknown"

// Source resolves a network-layer address to a hardware address string.
// A lookup that fails returns an error; callers absorb it into Unknown.
type Source interface {
	Lookup(ctx context.Context, addr netip.Addr) (string, error)
}

// hwAddrPattern matches six hex octet pairs delimited by colons or hyphens
// anywhere in the lookup output.
var hwAddrPattern = regexp.MustCompile(`(?:[0-9a-fA-F]{1,2}[:-]){5}[0-9a-fA-F]{1,2}`)

// Normalize canonicalizes a matched hardware address: hyphens become
// colons and hex digits are lowercased.
func Normalize(mac string) string {
	return strings.ToLower(strings.ReplaceAll(mac, "-", ":"))
}

// ParseOutput extracts the first hardware address from ARP tool output.
// The second return is false when the output contains no address, which
// happens for hosts with no table entry.
func ParseOutput(output string) (string, bool) {
	match := hwAddrPattern.FindString(output)
	if match == "" {
		return "", false
	}
	return Normalize(match), true
}

// CommandSource resolves addresses by invoking the platform arp command
// and parsing its output.
type CommandSource struct{}

// NewCommandSource returns the platform ARP table source.
func NewCommandSource() CommandSource {
	return CommandSource{}
}

// Lookup runs the platform arp command for the address and parses the
// hardware address out of its output. A missing table entry is reported
// as an error so the caller records the Unknown sentinel.
func (CommandSource) Lookup(ctx context.Context, addr netip.Addr) (string, error) {
	cmd := exec.CommandContext(ctx, "arp", arpArgs(addr)...)
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	mac, ok := ParseOutput(string(output))
	if !ok {
		return "", &NoEntryError{Addr: addr}
	}
	return mac, nil
}

func arpArgs(addr netip.Addr) []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"-a", addr.String()}
	case "darwin":
		return []string{addr.String()}
	default:
		return []string{"-n", addr.String()}
	}
}

// NoEntryError reports that the ARP table has no entry for an address.
type NoEntryError struct {
	Addr netip.Addr
}

// Error implements the error interface.
func (e *NoEntryError) Error() string {
	return "no ARP table entry for " + e.Addr.String()
}

// Func adapts a plain function to the Source interface, used by tests to
// inject deterministic fakes.
type Func func(ctx context.Context, addr netip.Addr) (string, error)

// Lookup implements Source.
func (f Func) Lookup(ctx context.Context, addr netip.Addr) (string, error) {
	return f(ctx, addr)
}
