package part

import (
	"strings"
	"time"
)

type Part struct {
	id           uint
	ipn          string
	name         string
	description  string
	units        string
	trackable    bool
	assembly     bool
	component    bool
	active       bool
	bomValidated bool
	createdAt    time.Time
	updatedAt    time.Time
}

type Option func(*Part)

func WithID(id uint) Option {
	return func(p *Part) {
		p.id = id
	}
}

func WithIPN(ipn string) Option {
	return func(p *Part) {
		p.ipn = strings.TrimSpace(ipn)
	}
}

func WithDescription(description string) Option {
	return func(p *Part) {
		p.description = strings.TrimSpace(description)
	}
}

func WithUnits(units string) Option {
	return func(p *Part) {
		p.units = units
	}
}

// WithTrackable marks the part as serialized/lot-tracked. Trackable parts
// can only appear in a BOM with whole-number quantities.
func WithTrackable(trackable bool) Option {
	return func(p *Part) {
		p.trackable = trackable
	}
}

func WithAssembly(assembly bool) Option {
	return func(p *Part) {
		p.assembly = assembly
	}
}

func WithComponent(component bool) Option {
	return func(p *Part) {
		p.component = component
	}
}

func WithActive(active bool) Option {
	return func(p *Part) {
		p.active = active
	}
}

func WithBomValidated(validated bool) Option {
	return func(p *Part) {
		p.bomValidated = validated
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(p *Part) {
		p.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(p *Part) {
		p.updatedAt = updatedAt
	}
}

func New(name string, opts ...Option) *Part {
	p := &Part{
		name:      strings.TrimSpace(name),
		component: true,
		active:    true,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Part) ID() uint            { return p.id }
func (p *Part) IPN() string         { return p.ipn }
func (p *Part) Name() string        { return p.name }
func (p *Part) Description() string { return p.description }
func (p *Part) Units() string       { return p.units }
func (p *Part) Trackable() bool     { return p.trackable }
func (p *Part) Assembly() bool      { return p.assembly }
func (p *Part) Component() bool     { return p.component }
func (p *Part) Active() bool        { return p.active }
func (p *Part) BomValidated() bool  { return p.bomValidated }
func (p *Part) CreatedAt() time.Time { return p.createdAt }
func (p *Part) UpdatedAt() time.Time { return p.updatedAt }

// FullName is the display form used in match suggestions.
func (p *Part) FullName() string {
	if p.ipn == "" {
		return p.name
	}
	return p.ipn + " | " + p.name
}
