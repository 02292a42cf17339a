package memupdate

import (
	"crypto/subtle"
	"fmt"

	"github.com/backkem/she/pkg/crypto"
	"github.com/backkem/she/pkg/she"
)

// VerifyRequest checks received M1, M2 and M3 against the values this
// Protocol computes. M4 and M5 of msgs are not looked at.
func (p *Protocol) VerifyRequest(msgs Messages) error {
	m1 := p.M1()
	if subtle.ConstantTimeCompare(m1[:], msgs.M1[:]) != 1 {
		return p.fail("M1")
	}
	m2, err := p.M2()
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(m2[:], msgs.M2[:]) != 1 {
		return p.fail("M2")
	}
	m3, err := p.mac3(msgs.M1, msgs.M2)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(m3[:], msgs.M3[:]) != 1 {
		return p.fail("M3")
	}
	return nil
}

// VerifyConfirmation checks the module's M4 and M5 answer.
func (p *Protocol) VerifyConfirmation(m4 M4, m5 M5) error {
	want4, err := p.M4()
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(want4[:], m4[:]) != 1 {
		return p.fail("M4")
	}
	want5, err := p.mac5(m4)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(want5[:], m5[:]) != 1 {
		return p.fail("M5")
	}
	return nil
}

func (p *Protocol) fail(msg string) error {
	if p.log != nil {
		p.log.Debugf("%s does not match %s", msg, p.info)
	}
	return fmt.Errorf("%w: %s", ErrAuthenticationFailed, msg)
}

// CheckM3 verifies the MAC of a request without decrypting it, as a SHE
// module does before touching M2.
func CheckM3(prims crypto.Primitives, authKey she.Key, m1 M1, m2 M2, m3 M3) error {
	if prims == nil {
		prims = crypto.Standard
	}
	p := &Protocol{info: UpdateInfo{authKey: authKey}, prims: prims}
	want, err := p.mac3(m1, m2)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(want[:], m3[:]) != 1 {
		return fmt.Errorf("%w: M3", ErrAuthenticationFailed)
	}
	return nil
}

// Open is the authenticated receive path: it checks M3, recovers the update
// from M1 and M2 and confirms that re-encoding reproduces M1..M3.
func Open(authKey she.Key, msgs Messages) (*Protocol, error) {
	return OpenWithConfig(authKey, msgs, Config{})
}

// OpenWithConfig is Open with explicit primitives and logging.
func OpenWithConfig(authKey she.Key, msgs Messages, config Config) (*Protocol, error) {
	config.applyDefaults()
	if err := CheckM3(config.Primitives, authKey, msgs.M1, msgs.M2, msgs.M3); err != nil {
		return nil, err
	}
	p, err := NewWithConfig(FromMessages{AuthKey: authKey, Messages: msgs}, config)
	if err != nil {
		return nil, err
	}
	if err := p.VerifyRequest(msgs); err != nil {
		return nil, err
	}
	return p, nil
}
