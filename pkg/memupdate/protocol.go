package memupdate

import (
	"fmt"

	"github.com/backkem/she/pkg/crypto"
	"github.com/backkem/she/pkg/she"
	"github.com/pion/logging"
)

// Source selects how a Protocol is built. It is implemented by FromInfo and
// FromMessages only.
type Source interface {
	isSource()
}

// FromInfo builds a Protocol that generates the messages for Info.
type FromInfo struct {
	Info UpdateInfo
}

// FromMessages builds a Protocol by recovering the update from received
// M1 and M2. M3..M5 are ignored.
type FromMessages struct {
	AuthKey  she.Key
	Messages Messages
}

func (FromInfo) isSource()     {}
func (FromMessages) isSource() {}

// Config holds the optional dependencies of a Protocol.
type Config struct {
	// Primitives provides AES and CMAC. Defaults to crypto.Standard.
	Primitives crypto.Primitives

	// LoggerFactory enables debug logging when set.
	LoggerFactory logging.LoggerFactory
}

func (c *Config) applyDefaults() {
	if c.Primitives == nil {
		c.Primitives = crypto.Standard
	}
}

// Protocol computes the memory update messages of one UpdateInfo.
//
// Every accessor recomputes its value from the UpdateInfo, so repeated calls
// return identical bytes. A Protocol may be read concurrently; SetFlags must
// not race with readers.
type Protocol struct {
	info  UpdateInfo
	prims crypto.Primitives
	log   logging.LeveledLogger
}

// New builds a Protocol with the standard primitives and no logging.
func New(src Source) (*Protocol, error) {
	return NewWithConfig(src, Config{})
}

// NewWithConfig builds a Protocol from src.
func NewWithConfig(src Source, config Config) (*Protocol, error) {
	config.applyDefaults()

	p := &Protocol{prims: config.Primitives}
	if config.LoggerFactory != nil {
		p.log = config.LoggerFactory.NewLogger("memupdate")
	}

	switch s := src.(type) {
	case FromInfo:
		p.info = s.Info
	case FromMessages:
		info, err := p.decode(s.AuthKey, s.Messages.M1, s.Messages.M2)
		if err != nil {
			return nil, err
		}
		p.info = info
	default:
		return nil, fmt.Errorf("%w: got %T", ErrUnsupportedSource, src)
	}
	return p, nil
}

// decode recovers the update from M1 and M2. The result is only as good as
// authKey: a wrong key yields garbage, not an error.
func (p *Protocol) decode(authKey she.Key, m1 M1, m2 M2) (UpdateInfo, error) {
	k1, err := she.DeriveKey(p.prims, authKey, she.KeyUpdateEncC)
	if err != nil {
		return UpdateInfo{}, err
	}
	plain, err := p.prims.DecryptCBC(k1[:], crypto.ZeroIV, m2[:])
	if err != nil {
		return UpdateInfo{}, err
	}

	var head block
	copy(head[:], plain[:crypto.BlockSize])
	values := m2Layout.unpack(head)
	if !m2Layout.padded(head) && p.log != nil {
		p.log.Warnf("M2 counter block has non-zero padding, auth key is probably wrong")
	}

	flags, err := she.NewSecurityFlags(int(values[1]))
	if err != nil {
		return UpdateInfo{}, err
	}
	newKey, err := she.KeyFromBytes(plain[crypto.BlockSize:])
	if err != nil {
		return UpdateInfo{}, err
	}

	info, err := NewUpdateInfo(UpdateParams{
		NewKey:    newKey,
		AuthKey:   authKey,
		NewKeyID:  m1.NewKeyID(),
		AuthKeyID: m1.AuthKeyID(),
		Counter:   she.Counter(values[0]),
		UID:       m1.UID(),
		Flags:     flags,
	})
	if err != nil {
		return UpdateInfo{}, err
	}
	if p.log != nil {
		p.log.Debugf("decoded %s", info)
	}
	return info, nil
}

// Info returns a copy of the update.
func (p *Protocol) Info() UpdateInfo {
	return p.info
}

// SetFlags changes the flags carried in M2.
func (p *Protocol) SetFlags(f she.SecurityFlags) {
	p.info.SetFlags(f)
}

// K1 is the encryption key of M2, derived from the auth key.
func (p *Protocol) K1() (she.Key, error) {
	return she.DeriveKey(p.prims, p.info.authKey, she.KeyUpdateEncC)
}

// K2 is the MAC key of M3, derived from the auth key.
func (p *Protocol) K2() (she.Key, error) {
	return she.DeriveKey(p.prims, p.info.authKey, she.KeyUpdateMacC)
}

// K3 is the encryption key of M4, derived from the new key.
func (p *Protocol) K3() (she.Key, error) {
	return she.DeriveKey(p.prims, p.info.newKey, she.KeyUpdateEncC)
}

// K4 is the MAC key of M5, derived from the new key.
func (p *Protocol) K4() (she.Key, error) {
	return she.DeriveKey(p.prims, p.info.newKey, she.KeyUpdateMacC)
}

// M1 returns UID | new key id | auth key id.
func (p *Protocol) M1() M1 {
	var m M1
	copy(m[:], p.info.uid[:])
	m[15] = byte(p.info.newKeyID)<<4 | byte(p.info.authKeyID)&0x0F
	return m
}

// M2 returns the counter block and new key, CBC-encrypted under K1.
func (p *Protocol) M2() (M2, error) {
	var m M2
	k1, err := p.K1()
	if err != nil {
		return m, err
	}

	head := m2Layout.pack(uint64(p.info.counter), uint64(p.info.flags.FID()))
	plain := make([]byte, 0, M2Size)
	plain = append(plain, head[:]...)
	plain = append(plain, p.info.newKey[:]...)

	ct, err := p.prims.EncryptCBC(k1[:], crypto.ZeroIV, plain)
	if err != nil {
		return m, err
	}
	copy(m[:], ct)
	return m, nil
}

// M3 returns CMAC(K2, M1 | M2).
func (p *Protocol) M3() (M3, error) {
	m2, err := p.M2()
	if err != nil {
		return M3{}, err
	}
	return p.mac3(p.M1(), m2)
}

func (p *Protocol) mac3(m1 M1, m2 M2) (M3, error) {
	var m M3
	k2, err := p.K2()
	if err != nil {
		return m, err
	}
	msg := make([]byte, 0, M1Size+M2Size)
	msg = append(msg, m1[:]...)
	msg = append(msg, m2[:]...)

	tag, err := p.prims.CMAC(k2[:], msg)
	if err != nil {
		return m, err
	}
	copy(m[:], tag)
	return m, nil
}

// M4 returns M1 | ECB(K3, counter block with the marker bit).
func (p *Protocol) M4() (M4, error) {
	var m M4
	k3, err := p.K3()
	if err != nil {
		return m, err
	}

	head := m4Layout.pack(uint64(p.info.counter), 1)
	enc, err := p.prims.EncryptBlock(k3[:], head[:])
	if err != nil {
		return m, err
	}
	m1 := p.M1()
	copy(m[:M1Size], m1[:])
	copy(m[M1Size:], enc)
	return m, nil
}

// M5 returns CMAC(K4, M4).
func (p *Protocol) M5() (M5, error) {
	m4, err := p.M4()
	if err != nil {
		return M5{}, err
	}
	return p.mac5(m4)
}

func (p *Protocol) mac5(m4 M4) (M5, error) {
	var m M5
	k4, err := p.K4()
	if err != nil {
		return m, err
	}
	tag, err := p.prims.CMAC(k4[:], m4[:])
	if err != nil {
		return m, err
	}
	copy(m[:], tag)
	return m, nil
}

// Messages returns M1..M5.
func (p *Protocol) Messages() (Messages, error) {
	var (
		msgs = Messages{M1: p.M1()}
		err  error
	)
	if msgs.M2, err = p.M2(); err != nil {
		return Messages{}, err
	}
	if msgs.M3, err = p.mac3(msgs.M1, msgs.M2); err != nil {
		return Messages{}, err
	}
	if msgs.M4, err = p.M4(); err != nil {
		return Messages{}, err
	}
	if msgs.M5, err = p.mac5(msgs.M4); err != nil {
		return Messages{}, err
	}
	return msgs, nil
}
