// Package memupdate implements the SHE memory update protocol, the
// five-message exchange that loads a new key into a SHE key slot.
//
// The trusted party knows the current key of an authorizing slot
// (AuthKey) and sends the module:
//
//	M1 = UID | ID | AuthID
//	M2 = ENC_CBC,K1,IV=0(C_ID | F_ID | "0..."94 | K_ID)
//	M3 = CMAC_K2(M1 | M2)
//
// and the module confirms with:
//
//	M4 = UID | ID | AuthID | ENC_ECB,K3(C_ID | 1 | "0..."99)
//	M5 = CMAC_K4(M4)
//
// where K1 = KDF(AuthKey, KEY_UPDATE_ENC_C), K2 = KDF(AuthKey,
// KEY_UPDATE_MAC_C), K3 = KDF(K_ID, KEY_UPDATE_ENC_C) and K4 = KDF(K_ID,
// KEY_UPDATE_MAC_C).
//
// A Protocol is built either from plaintext UpdateInfo (to generate the
// messages) or from received messages plus the auth key (to recover the
// UpdateInfo). Recovery decrypts M2 only; it does not check M3. Use Open or
// VerifyRequest when the messages come from an untrusted channel.
//
// Counter block layout (bit 127 is the most significant bit of byte 0):
//
//	Field     M2 block    M4 block
//	counter   127..100    127..100
//	fid        99..94     -
//	marker    -           99
//	zero       93..0      98..0
//
// Some encoders place fid at fid<<95 instead of bits 99..94. Both agree
// for fid 0; peers exchanging a non-zero fid with such an encoder will
// disagree on the protection flags.
package memupdate
