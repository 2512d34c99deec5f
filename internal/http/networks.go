package http

import (
	"fmt"
	"net/netip"
	"strings"

	"go4.org/netipx"
)

// ParseInternalNetworks builds the allowlist for operational endpoints from
// CIDR prefixes or bare addresses. An empty list yields a nil set.
func ParseInternalNetworks(entries []string) (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	added := 0
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("parse internal cidr %q: %w", entry, err)
			}
			b.AddPrefix(prefix.Masked())
		} else {
			addr, err := netip.ParseAddr(entry)
			if err != nil {
				return nil, fmt.Errorf("parse internal address %q: %w", entry, err)
			}
			b.Add(addr.Unmap())
		}
		added++
	}
	if added == 0 {
		return nil, nil
	}
	return b.IPSet()
}
