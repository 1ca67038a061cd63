package provider

import (
	"context"
	"time"

	"github.com/suffixlab/suffixd/common/utils"
)

// Vehicle Type
const (
	File VehicleType = iota
	HTTP
)

// VehicleType defined
type VehicleType int

func (v VehicleType) String() string {
	switch v {
	case File:
		return "File"
	case HTTP:
		return "HTTP"
	default:
		return "Unknown"
	}
}

// Vehicle is the transport a provider pulls its raw payload through
type Vehicle interface {
	Read(ctx context.Context, oldHash utils.HashType) (buf []byte, hash utils.HashType, err error)
	Write(buf []byte) error
	Path() string
	Url() string
	Type() VehicleType
}

// Provider interface
type Provider interface {
	Name() string
	VehicleType() VehicleType
	Initial() error
	Update() error
	UpdatedAt() time.Time
	RuleCount() int
}
