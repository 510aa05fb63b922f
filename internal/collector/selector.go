package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrRoutesExhausted is returned when every route failed.
var ErrRoutesExhausted = errors.New("all data routes failed")

// Selector tries routes strictly in order and returns the first success.
type Selector struct {
	// Backend is only attempted when SameOrigin is set.
	Backend    Route
	SameOrigin bool
	Relays     []Route
	// Accept, when set, can reject a payload that arrived fine but is
	// unusable; the selector then moves on to the next route.
	Accept func(*Payload) error
	Logger logrus.FieldLogger
}

// Routes returns the routes in the order they will be attempted.
func (s *Selector) Routes() []Route {
	routes := make([]Route, 0, len(s.Relays)+1)
	if s.SameOrigin && s.Backend != nil {
		routes = append(routes, s.Backend)
	}
	return append(routes, s.Relays...)
}

// Select attempts each route once. It never retries and never runs two
// attempts at the same time.
func (s *Selector) Select(ctx context.Context) (*Payload, error) {
	var errs []error
	for _, r := range s.Routes() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		p, err := r.Attempt(ctx)
		if err != nil {
			s.logger().WithField("route", r.Name()).Warnf("route failed: %v", err)
			errs = append(errs, err)
			continue
		}
		if s.Accept != nil {
			if err := s.Accept(p); err != nil {
				err = fmt.Errorf("%s: %w", r.Name(), err)
				s.logger().WithField("route", r.Name()).Warnf("payload rejected: %v", err)
				errs = append(errs, err)
				continue
			}
		}
		s.logger().WithField("route", r.Name()).Debug("route succeeded")
		return p, nil
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: no routes configured", ErrRoutesExhausted)
	}
	return nil, fmt.Errorf("%w: %w", ErrRoutesExhausted, errors.Join(errs...))
}

func (s *Selector) logger() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}
