package room

import (
	"slices"
	"time"
)

// Device is one device-state record pushed by a participant.
type Device struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name"`
	Features  []string  `json:"features,omitempty"`
	Levels    []float64 `json:"levels,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d Device) clone() Device {
	d.Features = slices.Clone(d.Features)
	d.Levels = slices.Clone(d.Levels)
	return d
}

func cloneDevices(devices []Device) []Device {
	if len(devices) == 0 {
		return nil
	}
	res := make([]Device, 0, len(devices))
	for _, d := range devices {
		res = append(res, d.clone())
	}
	return res
}

// DeviceUpdate is a device change sent by Sender for Target.
// An empty Target means the sender's own device list.
type DeviceUpdate struct {
	Sender string `json:"sender" validate:"required"`
	Target string `json:"target,omitempty"`
	Device Device `json:"device"`
	Remove bool   `json:"remove,omitempty"`
}

func (u DeviceUpdate) TargetUID() string {
	if u.Target == "" {
		return u.Sender
	}
	return u.Target
}
