// Package network reports whether the machine currently has network
// connectivity. It inspects local interfaces through gopsutil and never
// sends traffic.
package network

import (
	"context"
	"fmt"
	"net/netip"
	"slices"
	"strings"

	psnet "github.com/shirou/gopsutil/v4/net"
)

// Checker reports reachability.
type Checker interface {
	Connected(ctx context.Context) (bool, error)
}

// InterfaceChecker considers the machine connected when any non-loopback
// interface is up and has a routable address.
type InterfaceChecker struct {
	// interfaces lists the host's interfaces; tests replace it.
	interfaces func(ctx context.Context) (psnet.InterfaceStatList, error)
}

// NewInterfaceChecker returns a checker backed by gopsutil.
func NewInterfaceChecker() *InterfaceChecker {
	return &InterfaceChecker{interfaces: psnet.InterfacesWithContext}
}

// Connected implements Checker.
func (c *InterfaceChecker) Connected(ctx context.Context) (bool, error) {
	ifaces, err := c.interfaces(ctx)
	if err != nil {
		return false, fmt.Errorf("list network interfaces: %w", err)
	}
	return hasRoutableInterface(ifaces), nil
}

func hasRoutableInterface(ifaces psnet.InterfaceStatList) bool {
	for _, iface := range ifaces {
		if !hasFlag(iface.Flags, "up") || hasFlag(iface.Flags, "loopback") {
			continue
		}
		for _, a := range iface.Addrs {
			if routable(a.Addr) {
				return true
			}
		}
	}
	return false
}

func hasFlag(flags []string, want string) bool {
	return slices.ContainsFunc(flags, func(f string) bool {
		return strings.EqualFold(f, want)
	})
}

// routable reports whether addr (CIDR or bare IP) is usable beyond the
// local link.
func routable(addr string) bool {
	var ip netip.Addr
	if p, err := netip.ParsePrefix(addr); err == nil {
		ip = p.Addr()
	} else if a, err := netip.ParseAddr(addr); err == nil {
		ip = a
	} else {
		return false
	}
	return !ip.IsLoopback() && !ip.IsLinkLocalUnicast() && !ip.IsUnspecified()
}
