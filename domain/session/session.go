package session

import (
	"fmt"
	"strings"
	"time"

	"sync-lab/domain/room"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"
)

// Descriptor is what the coordination service reports right after a
// handshake and after every transport-level reconnect.
type Descriptor struct {
	Version     string          `json:"version"`
	HostedRoom  *room.Snapshot  `json:"hosted_room,omitempty"`
	JoinedRooms []room.Snapshot `json:"joined_rooms,omitempty"`
}

// Rooms lists the hosted room first, then joined rooms.
func (d Descriptor) Rooms() []room.Snapshot {
	var res []room.Snapshot
	if d.HostedRoom != nil {
		res = append(res, *d.HostedRoom)
	}
	return append(res, d.JoinedRooms...)
}

// Session is owned by the connection and handed to collaborators by value.
type Session struct {
	ID            uuid.UUID
	UID           string
	Descriptor    Descriptor
	EstablishedAt time.Time
}

func New(uid string, descriptor Descriptor) Session {
	return Session{
		ID:            uuid.New(),
		UID:           uid,
		Descriptor:    descriptor,
		EstablishedAt: time.Now().UTC(),
	}
}

// VersionPolicy says how far client and server versions may drift apart.
type VersionPolicy string

const (
	// SameMajor accepts any server with the same major version, and the same
	// minor while the major is v0.
	SameMajor VersionPolicy = "major"
	SameMinor VersionPolicy = "minor"
	Exact     VersionPolicy = "exact"
)

func ParseVersionPolicy(s string) (VersionPolicy, error) {
	switch p := VersionPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return SameMajor, nil
	case SameMajor, SameMinor, Exact:
		return p, nil
	default:
		return "", fmt.Errorf("unknown version policy %q", s)
	}
}

// Compatible compares client and server versions as semantic versions.
// Versions that are not semver must match exactly whatever the policy.
func (p VersionPolicy) Compatible(client, server string) bool {
	c, s := canonical(client), canonical(server)
	if !semver.IsValid(c) || !semver.IsValid(s) {
		return strings.TrimSpace(client) == strings.TrimSpace(server)
	}
	switch p {
	case Exact:
		return semver.Compare(c, s) == 0
	case SameMinor:
		return semver.MajorMinor(c) == semver.MajorMinor(s)
	}
	if semver.Major(c) != semver.Major(s) {
		return false
	}
	if semver.Major(c) == "v0" {
		return semver.MajorMinor(c) == semver.MajorMinor(s)
	}
	return true
}

// Compatible applies the default SameMajor policy.
func Compatible(client, server string) bool {
	return SameMajor.Compatible(client, server)
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
