// Package identifier formats and parses the human readable identifiers issued
// per tenant. The string formats are stored in existing data and must not change.
package identifier

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Kind string

const (
	KindJob   Kind = "job"
	KindOrder Kind = "order"
)

// MaxSequence is the highest number a counter may hold. It sits far below the
// int64 limit so counter arithmetic can never overflow, and stays exact when a
// driver round-trips the column through float64.
const MaxSequence int64 = 999_999_999_999_999

// degradedMarker prefixes the suffix of identifiers issued without a counter.
// Sequenced suffixes are all digits, so the two namespaces never overlap.
const degradedMarker = "D"

var (
	jobPattern           = regexp.MustCompile(`^B(\d+)-WS-(\d+)$`)
	orderPattern         = regexp.MustCompile(`^ORD-(\d+)$`)
	degradedJobPattern   = regexp.MustCompile(`^B(\d+)-WS-D[0-9A-HJKMNP-TV-Z]{26}$`)
	degradedOrderPattern = regexp.MustCompile(`^ORD-D[0-9A-HJKMNP-TV-Z]{26}$`)
)

// Parsed is a decoded sequenced identifier.
type Parsed struct {
	Kind       Kind
	BusinessID uint64
	HasTenant  bool
	Sequence   int64
}

func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindJob:
		return KindJob, nil
	case KindOrder:
		return KindOrder, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
}

// Seed is the value a counter row starts at; the first issued number is Seed+1.
func Seed(kind Kind) int64 {
	if kind == KindJob {
		return 999
	}
	return 0
}

func Format(kind Kind, businessID uint64, sequence int64) string {
	switch kind {
	case KindJob:
		return fmt.Sprintf("B%d-WS-%d", businessID, sequence)
	case KindOrder:
		return fmt.Sprintf("ORD-%d", sequence)
	default:
		return ""
	}
}

// FormatDegraded builds an identifier in the namespace reserved for ids issued
// while the counter store is unavailable. token is expected to be a ULID.
func FormatDegraded(kind Kind, businessID uint64, token string) string {
	switch kind {
	case KindJob:
		return fmt.Sprintf("B%d-WS-%s%s", businessID, degradedMarker, token)
	case KindOrder:
		return "ORD-" + degradedMarker + token
	default:
		return ""
	}
}

// Parse decodes a sequenced identifier. Degraded ids are rejected with
// ErrDegradedIdentifier because they carry no sequence number. Only the
// canonical spelling is accepted ("B1-WS-01000" is malformed), so a parsed id
// always equals Format of its parts.
func Parse(kind Kind, raw string) (Parsed, error) {
	parsed, err := parse(kind, raw)
	if err != nil {
		return Parsed{}, err
	}
	if parsed.Sequence > MaxSequence {
		return Parsed{}, fmt.Errorf("%w: %d exceeds %d", ErrSequenceOutOfRange, parsed.Sequence, MaxSequence)
	}
	if canonical := Format(kind, parsed.BusinessID, parsed.Sequence); canonical != strings.TrimSpace(raw) {
		return Parsed{}, fmt.Errorf("%w: %q is not canonical, want %q", ErrMalformedIdentifier, raw, canonical)
	}
	return parsed, nil
}

func parse(kind Kind, raw string) (Parsed, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Parsed{}, ErrEmptyIdentifier
	}
	if IsDegraded(kind, value) {
		return Parsed{}, ErrDegradedIdentifier
	}

	switch kind {
	case KindJob:
		match := jobPattern.FindStringSubmatch(value)
		if match == nil {
			return Parsed{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, raw)
		}
		businessID, err := strconv.ParseUint(match[1], 10, 64)
		if err != nil {
			return Parsed{}, fmt.Errorf("%w: tenant %q", ErrMalformedIdentifier, match[1])
		}
		sequence, err := strconv.ParseInt(match[2], 10, 64)
		if err != nil {
			return Parsed{}, fmt.Errorf("%w: sequence %q", ErrSequenceOutOfRange, match[2])
		}
		return Parsed{Kind: kind, BusinessID: businessID, HasTenant: true, Sequence: sequence}, nil
	case KindOrder:
		match := orderPattern.FindStringSubmatch(value)
		if match == nil {
			return Parsed{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, raw)
		}
		sequence, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			return Parsed{}, fmt.Errorf("%w: sequence %q", ErrSequenceOutOfRange, match[1])
		}
		return Parsed{Kind: kind, Sequence: sequence}, nil
	default:
		return Parsed{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func IsDegraded(kind Kind, raw string) bool {
	switch kind {
	case KindJob:
		return degradedJobPattern.MatchString(raw)
	case KindOrder:
		return degradedOrderPattern.MatchString(raw)
	default:
		return false
	}
}

// DegradedTenant returns the tenant embedded in a degraded job identifier.
func DegradedTenant(raw string) (uint64, bool) {
	match := degradedJobPattern.FindStringSubmatch(raw)
	if match == nil {
		return 0, false
	}
	businessID, err := strconv.ParseUint(match[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return businessID, true
}
