// Package she holds the value types shared by the AUTOSAR Secure Hardware
// Extension (SHE) packages: keys, UIDs, counters, protection flags, the
// derivation constants and the key derivation function built on them.
//
// Every type validates at construction. Byte fields come from hex strings
// or raw bytes and must match their exact width; integer fields must fit
// their bit width:
//
//	Field    Width      Type
//	key      128 bits   Key
//	uid      120 bits   UID
//	counter   28 bits   Counter
//	fid        6 bits   SecurityFlags
//	key id     4 bits   keyslot.ID
//
// References:
//   - AUTOSAR FO R19-11 Specification of Secure Hardware Extensions
//   - Section 4.12: Constants used with SHE
package she
