package middleware

import (
	"net"

	"github.com/deppfellow/vocab/internal/config"
	"github.com/labstack/echo/v4"
)

// IPExtractor decides what c.RealIP() returns. With no trusted proxies the
// socket peer is the client and forwarding headers are ignored. Otherwise
// X-Forwarded-For is walked from the right, skipping only addresses inside
// the configured ranges.
func IPExtractor(cfg config.ServerConfig) echo.IPExtractor {
	if len(cfg.TrustedProxies) == 0 {
		return echo.ExtractIPDirect()
	}

	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range cfg.TrustedProxies {
		// Entries are validated as CIDRs when the config loads.
		if _, ipNet, err := net.ParseCIDR(cidr); err == nil {
			options = append(options, echo.TrustIPRange(ipNet))
		}
	}

	return echo.ExtractIPFromXFFHeader(options...)
}
