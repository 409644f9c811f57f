package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// DomainChecker accepts an email when its domain has an MX record or, as
// a fallback, any address record.
type DomainChecker struct {
	resolver Resolver
	timeout  time.Duration
}

func NewDomainChecker(r Resolver, timeout time.Duration) *DomainChecker {
	if r == nil {
		r = net.DefaultResolver
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &DomainChecker{resolver: r, timeout: timeout}
}

func (d *DomainChecker) IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if mx, err := d.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := d.resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
