package network

import (
	"context"
	"errors"
	"testing"

	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubChecker(list psnet.InterfaceStatList, err error) *InterfaceChecker {
	return &InterfaceChecker{interfaces: func(context.Context) (psnet.InterfaceStatList, error) {
		return list, err
	}}
}

func iface(name string, flags []string, addrs ...string) psnet.InterfaceStat {
	st := psnet.InterfaceStat{Name: name, Flags: flags}
	for _, a := range addrs {
		st.Addrs = append(st.Addrs, psnet.InterfaceAddr{Addr: a})
	}
	return st
}

func TestConnected(t *testing.T) {
	tests := []struct {
		name string
		list psnet.InterfaceStatList
		want bool
	}{
		{"no interfaces", nil, false},
		{"loopback only", psnet.InterfaceStatList{
			iface("lo", []string{"up", "loopback"}, "127.0.0.1/8", "::1/128"),
		}, false},
		{"ethernet up", psnet.InterfaceStatList{
			iface("lo", []string{"up", "loopback"}, "127.0.0.1/8"),
			iface("eth0", []string{"up", "broadcast", "multicast"}, "192.168.1.20/24"),
		}, true},
		{"ethernet down", psnet.InterfaceStatList{
			iface("eth0", []string{"broadcast"}, "192.168.1.20/24"),
		}, false},
		{"link local only", psnet.InterfaceStatList{
			iface("wlan0", []string{"up"}, "fe80::1/64", "169.254.10.2/16"),
		}, false},
		{"ipv6 global", psnet.InterfaceStatList{
			iface("wlan0", []string{"up"}, "fe80::1/64", "2001:db8::5/64"),
		}, true},
		{"bare address", psnet.InterfaceStatList{
			iface("utun3", []string{"UP"}, "100.64.0.1"),
		}, true},
		{"garbage address", psnet.InterfaceStatList{
			iface("eth0", []string{"up"}, "not-an-ip"),
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stubChecker(tt.list, nil).Connected(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConnectedPropagatesError(t *testing.T) {
	_, err := stubChecker(nil, errors.New("permission denied")).Connected(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}
