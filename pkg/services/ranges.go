package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidEpisodeSpec is returned for episode specifications that do not
// match the "", "N", "A:B" grammar.
var ErrInvalidEpisodeSpec = errors.New("invalid episode spec")

// EpisodeSpec is a parsed episode selection: either a single episode or a
// range whose bounds may each be open.
type EpisodeSpec struct {
	Single  bool
	Episode int

	Start    int
	Stop     int
	HasStart bool
	HasStop  bool
}

// ParseEpisodeSpec parses a user episode specification:
//
//	""     everything
//	"5"    episode 5 only
//	"3:10" episodes 3 through 10 inclusive
//	":10"  from the start through 10
//	"3:"   from 3 through the latest
func ParseEpisodeSpec(s string) (EpisodeSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return EpisodeSpec{}, nil
	}
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 1:
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			return EpisodeSpec{}, fmt.Errorf("%q: %w", s, ErrInvalidEpisodeSpec)
		}
		return EpisodeSpec{Single: true, Episode: n}, nil
	case 2:
		var spec EpisodeSpec
		if parts[0] != "" {
			n, err := strconv.Atoi(parts[0])
			if err != nil {
				return EpisodeSpec{}, fmt.Errorf("%q: %w", s, ErrInvalidEpisodeSpec)
			}
			spec.Start = n
			spec.HasStart = true
		}
		if parts[1] != "" {
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				return EpisodeSpec{}, fmt.Errorf("%q: %w", s, ErrInvalidEpisodeSpec)
			}
			spec.Stop = n
			spec.HasStop = true
		}
		return spec, nil
	default:
		return EpisodeSpec{}, fmt.Errorf("%q: %w", s, ErrInvalidEpisodeSpec)
	}
}

// Resolve turns the spec into the concrete episode numbers to act on. A
// single-episode spec resolves to that episode whether or not it is already
// known (a freshly released episode is a valid target). A range spec selects
// the known episodes whose 1-based position lies within [Start, Stop]
// inclusive; out-of-range bounds clamp to the available extremes instead of
// failing.
func (s EpisodeSpec) Resolve(known []int) []int {
	if s.Single {
		return []int{s.Episode}
	}
	start, stop := 1, len(known)
	if s.HasStart {
		start = s.Start
	}
	if s.HasStop {
		stop = s.Stop
	}
	if start < 1 {
		start = 1
	}
	if stop > len(known) {
		stop = len(known)
	}
	if start > stop {
		return nil
	}
	out := make([]int, stop-start+1)
	copy(out, known[start-1:stop])
	return out
}
