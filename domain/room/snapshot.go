package room

import (
	"fmt"

	"sync-lab/errors"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// ParticipantInfo carries the mutable participant fields as pushed by the server.
type ParticipantInfo struct {
	UID          string `json:"uid" validate:"required"`
	Alias        string `json:"alias"`
	Active       bool   `json:"active"`
	DeviceAccess bool   `json:"device_access"`
}

// ParticipantRef addresses a participant inside a room in outgoing requests.
type ParticipantRef struct {
	RoomName string `json:"room_name" validate:"required"`
	UID      string `json:"uid" validate:"required"`
	Alias    string `json:"alias,omitempty"`
}

// Snapshot is the full room state pushed by the coordination service.
// Host is usually also listed in Members; it does not have to be.
type Snapshot struct {
	RoomName string            `json:"room_name" validate:"required"`
	Host     ParticipantInfo   `json:"host"`
	Members  []ParticipantInfo `json:"members" validate:"dive"`
	Invites  []string          `json:"invites,omitempty" validate:"dive,required"`
}

// Validate checks the snapshot shape before it reaches a replica.
func (s Snapshot) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidSnapshot, err)
	}
	return nil
}

// MemberUIDs lists host and member UIDs without duplicates, host first.
func (s Snapshot) MemberUIDs() []string {
	uids := append([]string{s.Host.UID}, lo.Map(s.Members, func(item ParticipantInfo, _ int) string {
		return item.UID
	})...)
	return lo.Uniq(uids)
}

func ValidateDeviceUpdate(u DeviceUpdate) error {
	return validate.Struct(u)
}
