package memupdate

import (
	"fmt"

	"github.com/backkem/she/pkg/keyslot"
	"github.com/backkem/she/pkg/she"
)

// UpdateParams is the raw input of NewUpdateInfo.
type UpdateParams struct {
	NewKey    she.Key
	AuthKey   she.Key
	NewKeyID  keyslot.ID
	AuthKeyID keyslot.ID
	Counter   she.Counter
	UID       she.UID
	Flags     she.SecurityFlags
}

// UpdateInfo is the validated plaintext of a memory update.
// Only the flags can change after construction.
type UpdateInfo struct {
	newKey    she.Key
	authKey   she.Key
	newKeyID  keyslot.ID
	authKeyID keyslot.ID
	counter   she.Counter
	uid       she.UID
	flags     she.SecurityFlags
}

// NewUpdateInfo validates p and returns the update it describes.
// Keys and UID are fixed-size arrays, so only the slot ids and the counter
// need range checks.
func NewUpdateInfo(p UpdateParams) (UpdateInfo, error) {
	if !p.NewKeyID.IsValid() {
		return UpdateInfo{}, fmt.Errorf("%w: new key id %d", keyslot.ErrInvalidID, p.NewKeyID)
	}
	if !p.AuthKeyID.IsValid() {
		return UpdateInfo{}, fmt.Errorf("%w: auth key id %d", keyslot.ErrInvalidID, p.AuthKeyID)
	}
	if !p.Counter.Valid() {
		return UpdateInfo{}, fmt.Errorf("%w: counter %d exceeds %d", she.ErrOutOfRange, p.Counter, she.MaxCounter)
	}

	return UpdateInfo{
		newKey:    p.NewKey,
		authKey:   p.AuthKey,
		newKeyID:  p.NewKeyID,
		authKeyID: p.AuthKeyID,
		counter:   p.Counter,
		uid:       p.UID,
		flags:     p.Flags,
	}, nil
}

func (u UpdateInfo) NewKey() she.Key          { return u.newKey }
func (u UpdateInfo) AuthKey() she.Key         { return u.authKey }
func (u UpdateInfo) NewKeyID() keyslot.ID     { return u.newKeyID }
func (u UpdateInfo) AuthKeyID() keyslot.ID    { return u.authKeyID }
func (u UpdateInfo) Counter() she.Counter     { return u.counter }
func (u UpdateInfo) UID() she.UID             { return u.uid }
func (u UpdateInfo) Flags() she.SecurityFlags { return u.flags }

// SetFlags replaces the flags; fid follows.
func (u *UpdateInfo) SetFlags(f she.SecurityFlags) { u.flags = f }

// Params returns the update as raw parameters, e.g. to derive a modified copy.
func (u UpdateInfo) Params() UpdateParams {
	return UpdateParams{
		NewKey:    u.newKey,
		AuthKey:   u.authKey,
		NewKeyID:  u.newKeyID,
		AuthKeyID: u.authKeyID,
		Counter:   u.counter,
		UID:       u.uid,
		Flags:     u.flags,
	}
}

// Equal reports whether both updates carry the same values.
func (u UpdateInfo) Equal(o UpdateInfo) bool {
	return u == o
}

// String describes the update without its key material.
func (u UpdateInfo) String() string {
	return fmt.Sprintf("update %s (auth %s) counter=%d uid=%s flags=%s",
		u.newKeyID, u.authKeyID, u.counter, u.uid, u.flags)
}
