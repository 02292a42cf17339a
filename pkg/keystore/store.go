// Package keystore emulates the key table of a SHE module. It accepts
// memory update requests (M1, M2, M3), enforces the module-side rules and
// answers with M4 and M5.
//
// Keys live in memory only.
package keystore

import (
	"fmt"
	"sort"
	"sync"

	"github.com/backkem/she/pkg/crypto"
	"github.com/backkem/she/pkg/keyslot"
	"github.com/backkem/she/pkg/memupdate"
	"github.com/backkem/she/pkg/she"
	"github.com/pion/logging"
)

// Slot is the content of one key slot.
type Slot struct {
	Key     she.Key
	Counter she.Counter
	Flags   she.SecurityFlags
}

// Config configures a Store.
type Config struct {
	// UID is the module's unique id, checked against M1 and echoed in M4.
	UID she.UID

	// Primitives provides AES and CMAC. Defaults to crypto.Standard.
	Primitives crypto.Primitives

	// LoggerFactory enables logging of accepted and rejected updates.
	LoggerFactory logging.LoggerFactory
}

func (c *Config) applyDefaults() {
	if c.Primitives == nil {
		c.Primitives = crypto.Standard
	}
}

// Store is an in-memory SHE key table.
// It is safe for concurrent use.
type Store struct {
	uid   she.UID
	prims crypto.Primitives
	log   logging.LeveledLogger

	slots [keyslot.MaxID + 1]*Slot
	mu    sync.Mutex
}

// New creates an empty store.
func New(config Config) *Store {
	config.applyDefaults()

	s := &Store{
		uid:   config.UID,
		prims: config.Primitives,
	}
	if config.LoggerFactory != nil {
		s.log = config.LoggerFactory.NewLogger("keystore")
	}
	return s
}

// UID returns the module UID.
func (s *Store) UID() she.UID {
	return s.uid
}

// Provision writes a slot directly, as done at production time.
func (s *Store) Provision(id keyslot.ID, slot Slot) error {
	if !id.IsValid() {
		return fmt.Errorf("%w: %d", keyslot.ErrInvalidID, id)
	}
	if !slot.Counter.Valid() {
		return fmt.Errorf("%w: counter %d", she.ErrOutOfRange, slot.Counter)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[id] = &slot
	return nil
}

// LoadPlainKey loads RAM_KEY without authentication (CMD_LOAD_PLAIN_KEY).
func (s *Store) LoadPlainKey(key she.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[keyslot.RAMKey] = &Slot{Key: key}
}

// Slot returns a copy of slot id and whether it holds a key.
func (s *Store) Slot(id keyslot.ID) (Slot, bool) {
	if !id.IsValid() {
		return Slot{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slots[id] == nil {
		return Slot{}, false
	}
	return *s.slots[id], true
}

// Slots returns the ids of all provisioned slots in ascending order.
func (s *Store) Slots() []keyslot.ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []keyslot.ID
	for id, slot := range s.slots {
		if slot != nil {
			ids = append(ids, keyslot.ID(id))
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// mayAuthorize reports whether auth may load a key into target.
func mayAuthorize(target, auth keyslot.ID) bool {
	switch {
	case target == keyslot.SecretKey:
		return false
	case auth == keyslot.MasterECUKey, auth == target:
		return true
	case target == keyslot.BootMAC && auth == keyslot.BootMACKey:
		return true
	}
	return false
}

// Apply processes a memory update request. On success the target slot holds
// the new key, counter and flags, and the returned M4 and M5 confirm it.
// Only M1, M2 and M3 of msgs are used.
func (s *Store) Apply(msgs memupdate.Messages) (memupdate.M4, memupdate.M5, error) {
	m4, m5, err := s.apply(msgs)
	if err != nil && s.log != nil {
		s.log.Warnf("rejected update of %s by %s: %v", msgs.M1.NewKeyID(), msgs.M1.AuthKeyID(), err)
	}
	return m4, m5, err
}

func (s *Store) apply(msgs memupdate.Messages) (memupdate.M4, memupdate.M5, error) {
	target, auth := msgs.M1.NewKeyID(), msgs.M1.AuthKeyID()
	if !mayAuthorize(target, auth) {
		return memupdate.M4{}, memupdate.M5{}, fmt.Errorf("%w: %s cannot update %s", ErrKeyInvalid, auth, target)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	authSlot := s.slots[auth]
	if authSlot == nil {
		return memupdate.M4{}, memupdate.M5{}, fmt.Errorf("%w: %s", ErrKeyEmpty, auth)
	}
	if err := memupdate.CheckM3(s.prims, authSlot.Key, msgs.M1, msgs.M2, msgs.M3); err != nil {
		return memupdate.M4{}, memupdate.M5{}, fmt.Errorf("%w: %w", ErrKeyUpdateError, err)
	}

	current := s.slots[target]
	uid := msgs.M1.UID()
	switch {
	case uid == s.uid:
	case uid.IsWildcard() && (current == nil || !current.Flags.Wildcard()):
	default:
		return memupdate.M4{}, memupdate.M5{}, fmt.Errorf("%w: %s", ErrUIDMismatch, uid)
	}

	if current != nil && current.Flags.WriteProtection() {
		return memupdate.M4{}, memupdate.M5{}, fmt.Errorf("%w: %s", ErrWriteProtected, target)
	}

	req, err := memupdate.NewWithConfig(
		memupdate.FromMessages{AuthKey: authSlot.Key, Messages: msgs},
		memupdate.Config{Primitives: s.prims},
	)
	if err != nil {
		return memupdate.M4{}, memupdate.M5{}, err
	}
	info := req.Info()

	if current != nil && info.Counter() <= current.Counter {
		return memupdate.M4{}, memupdate.M5{}, fmt.Errorf("%w: got %d, have %d", ErrCounterRollback, info.Counter(), current.Counter)
	}

	// The confirmation always carries this module's UID, also for wildcard
	// requests.
	params := info.Params()
	params.UID = s.uid
	confirmed, err := memupdate.NewUpdateInfo(params)
	if err != nil {
		return memupdate.M4{}, memupdate.M5{}, err
	}
	resp, err := memupdate.NewWithConfig(memupdate.FromInfo{Info: confirmed}, memupdate.Config{Primitives: s.prims})
	if err != nil {
		return memupdate.M4{}, memupdate.M5{}, err
	}
	m4, err := resp.M4()
	if err != nil {
		return memupdate.M4{}, memupdate.M5{}, err
	}
	m5, err := resp.M5()
	if err != nil {
		return memupdate.M4{}, memupdate.M5{}, err
	}

	s.slots[target] = &Slot{
		Key:     info.NewKey(),
		Counter: info.Counter(),
		Flags:   info.Flags(),
	}
	if s.log != nil {
		s.log.Infof("loaded %s (auth %s) counter=%d flags=%s", target, auth, info.Counter(), info.Flags())
	}
	return m4, m5, nil
}
