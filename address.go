package tempmail

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var errNoDomainLister = errors.New("no domain lister configured")

var addressPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Address is a mailbox address split into its local part and domain.
type Address struct {
	Local  string
	Domain string
}

// String returns the address in local@domain form.
func (a Address) String() string {
	if a.IsZero() {
		return ""
	}
	return a.Local + "@" + a.Domain
}

// IsZero reports whether the address is empty.
func (a Address) IsZero() bool {
	return a.Local == "" && a.Domain == ""
}

// ParseAddress checks s against the email syntax and splits it. It does not
// consult the banned list or the service's domains; use Validator for that.
func ParseAddress(s string) (Address, error) {
	if !addressPattern.MatchString(s) {
		return Address{}, &ValidationError{Address: s, Reason: "syntax", Kind: ErrInvalidFormat}
	}
	local, domain, _ := strings.Cut(s, "@")
	return Address{Local: local, Domain: domain}, nil
}

// DomainLister provides the set of domains the service currently accepts.
type DomainLister interface {
	Domains(ctx context.Context) ([]string, error)
}

// DomainListerFunc adapts a function to DomainLister.
type DomainListerFunc func(ctx context.Context) ([]string, error)

// Domains calls f.
func (f DomainListerFunc) Domains(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// Validator checks candidate addresses. Checks run in order syntax, banned
// local part, live domain list, and stop at the first failure, so the
// domain list is only fetched for plausible candidates.
type Validator struct {
	banned  map[string]struct{}
	domains DomainLister
}

// NewValidator returns a Validator that looks domains up through domains.
// A nil bannedNames uses DefaultBannedNames. With a nil domains every
// domain lookup fails.
func NewValidator(domains DomainLister, bannedNames []string) *Validator {
	if domains == nil {
		domains = DomainListerFunc(func(context.Context) ([]string, error) {
			return nil, errNoDomainLister
		})
	}
	if bannedNames == nil {
		bannedNames = DefaultBannedNames()
	}
	banned := make(map[string]struct{}, len(bannedNames))
	for _, name := range bannedNames {
		banned[name] = struct{}{}
	}
	return &Validator{banned: banned, domains: domains}
}

// Validate returns the parsed address if candidate passes every check.
// Syntax failures match ErrInvalidFormat; banned names and unknown domains
// match ErrInvalidAddress. A failed domain lookup is returned as is.
func (v *Validator) Validate(ctx context.Context, candidate string) (Address, error) {
	addr, err := ParseAddress(candidate)
	if err != nil {
		return Address{}, err
	}

	// Matching is case-sensitive.
	if _, banned := v.banned[addr.Local]; banned {
		return Address{}, &ValidationError{Address: candidate, Reason: "reserved local part", Kind: ErrInvalidAddress}
	}

	domains, err := v.domains.Domains(ctx)
	if err != nil {
		return Address{}, fmt.Errorf("fetch domain list: %w", err)
	}
	for _, d := range domains {
		if d == addr.Domain {
			return addr, nil
		}
	}
	return Address{}, &ValidationError{Address: candidate, Reason: "unsupported domain", Kind: ErrInvalidAddress}
}
