package room

import (
	"slices"
	"sort"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/samber/lo"
)

// Replica mirrors one server-authoritative room.
//
// Members always contains HostUID. Members that disappear from a later
// snapshot are kept: removal only happens through RemoveMember, which is
// driven by an explicit user-removed push.
type Replica struct {
	name    string
	members *xsync.MapOf[string, *Participant]
	chat    *ChatLog

	mu           sync.RWMutex
	hostUID      string
	invites      []string
	lastSnapshot Snapshot
}

// NewReplica builds a replica from its first snapshot.
func NewReplica(s Snapshot, chatLogSize int) *Replica {
	r := &Replica{
		name:    s.RoomName,
		members: xsync.NewMapOf[string, *Participant](),
		chat:    NewChatLog(chatLogSize),
	}
	r.Reconcile(s)
	return r
}

func (r *Replica) Name() string { return r.name }

func (r *Replica) HostUID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hostUID
}

func (r *Replica) IsHost(uid string) bool {
	return uid != "" && r.HostUID() == uid
}

// Reconcile folds a fresh server snapshot into the replica.
//  1. host fields come from the snapshot host entry
//  2. unseen members are created, known members get their mutable fields
//     overwritten (devices excluded)
//  3. local members absent from the snapshot are left untouched
func (r *Replica) Reconcile(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hostUID = s.Host.UID
	r.upsert(s.Host)
	for _, m := range s.Members {
		if m.UID == s.Host.UID {
			continue
		}
		r.upsert(m)
	}
	for _, uid := range s.Invites {
		r.addInvite(uid)
	}
	r.lastSnapshot = cloneSnapshot(s)
}

func (r *Replica) upsert(info ParticipantInfo) *Participant {
	p, loaded := r.members.LoadOrCompute(info.UID, func() *Participant {
		return NewParticipant(info)
	})
	if loaded {
		p.ApplyInfo(info)
	}
	return p
}

func (r *Replica) Member(uid string) (*Participant, bool) {
	return r.members.Load(uid)
}

func (r *Replica) HasMember(uid string) bool {
	_, ok := r.members.Load(uid)
	return ok
}

func (r *Replica) MemberCount() int {
	return r.members.Size()
}

// AddMember handles a member join: unseen UIDs are created active, known
// ones are brought back online with the pushed alias.
func (r *Replica) AddMember(info ParticipantInfo) *Participant {
	info.Active = true
	p, loaded := r.members.LoadOrCompute(info.UID, func() *Participant {
		return NewParticipant(info)
	})
	if loaded {
		if info.Alias == "" {
			info.Alias = p.Alias()
		}
		info.DeviceAccess = p.DeviceAccessGranted()
		p.ApplyInfo(info)
	}
	return p
}

// RemoveMember evicts a participant. The host cannot be evicted: the caller
// must drop the whole replica instead.
func (r *Replica) RemoveMember(uid string) bool {
	if r.IsHost(uid) {
		return false
	}
	_, ok := r.members.LoadAndDelete(uid)
	return ok
}

// SetPresence flips the presence flag of uid if it is a member.
func (r *Replica) SetPresence(uid string, online bool) bool {
	p, ok := r.members.Load(uid)
	if !ok {
		return false
	}
	if online {
		p.MarkOnline()
	} else {
		p.MarkOffline()
	}
	return true
}

// SetDeviceAccess sets the device-access flag of every non-host member.
func (r *Replica) SetDeviceAccess(granted bool) {
	host := r.HostUID()
	r.members.Range(func(uid string, p *Participant) bool {
		if uid != host {
			p.SetDeviceAccess(granted)
		}
		return true
	})
}

// AddInvite records an invitation; the invited UID becomes an inactive member
// so later pushes about it can be applied.
func (r *Replica) AddInvite(uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addInvite(uid)
}

func (r *Replica) addInvite(uid string) {
	if !lo.Contains(r.invites, uid) {
		r.invites = append(r.invites, uid)
	}
	r.members.LoadOrCompute(uid, func() *Participant {
		return NewParticipant(ParticipantInfo{UID: uid})
	})
}

func (r *Replica) Invites() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.invites)
}

func (r *Replica) Chat() *ChatLog { return r.chat }

func (r *Replica) MemberUIDs() []string {
	uids := make([]string, 0, r.members.Size())
	r.members.Range(func(uid string, _ *Participant) bool {
		uids = append(uids, uid)
		return true
	})
	sort.Strings(uids)
	return uids
}

// LastServerSnapshot returns a copy of the last snapshot received. It may be
// stale while a reconciliation is running; iterate View().Members instead.
func (r *Replica) LastServerSnapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneSnapshot(r.lastSnapshot)
}

// View is an immutable copy of a replica for read-only consumers.
type View struct {
	Name     string
	HostUID  string
	Members  []ParticipantView
	Invites  []string
	Messages []ChatMessage
}

// Member looks up a member in the view.
func (v View) Member(uid string) (ParticipantView, bool) {
	return lo.Find(v.Members, func(item ParticipantView) bool {
		return item.UID == uid
	})
}

func (r *Replica) View() View {
	r.mu.RLock()
	host := r.hostUID
	invites := slices.Clone(r.invites)
	r.mu.RUnlock()

	members := make([]ParticipantView, 0, r.members.Size())
	r.members.Range(func(_ string, p *Participant) bool {
		members = append(members, p.View(host))
		return true
	})
	sort.Slice(members, func(i, j int) bool {
		return members[i].UID < members[j].UID
	})
	return View{
		Name:     r.name,
		HostUID:  host,
		Members:  members,
		Invites:  invites,
		Messages: r.chat.Messages(),
	}
}

func cloneSnapshot(s Snapshot) Snapshot {
	s.Members = slices.Clone(s.Members)
	s.Invites = slices.Clone(s.Invites)
	return s
}
