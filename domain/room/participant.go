// Package room contains the client-side replica of server-coordinated rooms.
// This file defines Participant entities and their presence rules.
// No runtime, network, or UI logic should be added here.
package room

import (
	"sync"

	"github.com/samber/lo"
)

// Participant is one room member as replicated from the coordination service.
// Identity (UID) never changes; everything else is last-writer-wins.
type Participant struct {
	mu           sync.RWMutex
	uid          string
	alias        string
	active       bool
	deviceAccess bool
	devices      []Device
}

func NewParticipant(info ParticipantInfo) *Participant {
	return &Participant{
		uid:          info.UID,
		alias:        info.Alias,
		active:       info.Active,
		deviceAccess: info.DeviceAccess,
	}
}

func (p *Participant) UID() string { return p.uid }

func (p *Participant) Alias() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.alias
}

func (p *Participant) Active() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active
}

func (p *Participant) DeviceAccessGranted() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.deviceAccess
}

// Devices returns a copy of the device records in arrival order.
func (p *Participant) Devices() []Device {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cloneDevices(p.devices)
}

// ApplyInfo overwrites the mutable fields. Devices are left alone: they only
// change through AppendDevice and RemoveDevice.
func (p *Participant) ApplyInfo(info ParticipantInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alias = info.Alias
	p.active = info.Active
	p.deviceAccess = info.DeviceAccess
}

func (p *Participant) SetDeviceAccess(granted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deviceAccess = granted
}

// AppendDevice records a device state. A previous record with the same ID is
// dropped first so the sequence holds one record per device, newest last.
func (p *Participant) AppendDevice(d Device) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.devices = lo.Reject(p.devices, func(item Device, _ int) bool {
		return item.ID == d.ID
	})
	p.devices = append(p.devices, d.clone())
}

func (p *Participant) RemoveDevice(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	before := len(p.devices)
	p.devices = lo.Reject(p.devices, func(item Device, _ int) bool {
		return item.ID == id
	})
	return len(p.devices) != before
}

// MarkOffline flags the participant as gone and forgets its devices.
// Identity is kept so a rejoin does not recreate the participant.
func (p *Participant) MarkOffline() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = false
	p.devices = nil
}

func (p *Participant) MarkOnline() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = true
}

// View returns an immutable copy for read-only consumers.
func (p *Participant) View(hostUID string) ParticipantView {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return ParticipantView{
		UID:          p.uid,
		Alias:        p.alias,
		Active:       p.active,
		DeviceAccess: p.deviceAccess,
		IsHost:       p.uid == hostUID,
		Devices:      cloneDevices(p.devices),
	}
}

// ParticipantView is a point-in-time copy of a Participant.
type ParticipantView struct {
	UID          string
	Alias        string
	Active       bool
	DeviceAccess bool
	IsHost       bool
	Devices      []Device
}
