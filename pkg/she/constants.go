package she

// Derivation constants from AUTOSAR SHE Section 4.12, "Constants used with SHE".
// Each is one 128-bit block fed to the Miyaguchi-Preneel compression after
// the key being derived from.
var (
	// KeyUpdateEncC derives K1 and K3 (KEY_UPDATE_ENC_C).
	KeyUpdateEncC = Key{0x01, 0x01, 0x53, 0x48, 0x45, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xB0}

	// KeyUpdateMacC derives K2 and K4 (KEY_UPDATE_MAC_C).
	KeyUpdateMacC = Key{0x01, 0x02, 0x53, 0x48, 0x45, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xB0}

	// DebugKeyC derives the debug authorization key (DEBUG_KEY_C).
	DebugKeyC = Key{0x01, 0x03, 0x53, 0x48, 0x45, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xB0}

	// PRNGKeyC derives the PRNG key (PRNG_KEY_C).
	PRNGKeyC = Key{0x01, 0x04, 0x53, 0x48, 0x45, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xB0}

	// PRNGSeedKeyC derives the PRNG seed key (PRNG_SEED_KEY_C).
	PRNGSeedKeyC = Key{0x01, 0x05, 0x53, 0x48, 0x45, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xB0}

	// PRNGExtensionC is the padding block used when extending the PRNG
	// seed (PRNG_EXTENSION_C). It is the Merkle-Damgard padding of a
	// 256-bit input.
	PRNGExtensionC = Key{0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00}
)
