package keyslot

// AUTOSAR reference key slots (Specification of Secure Hardware
// Extensions, AUTOSAR FO R19-11).
const (
	SecretKey    ID = 0x0
	MasterECUKey ID = 0x1
	BootMACKey   ID = 0x2
	BootMAC      ID = 0x3
	Key1         ID = 0x4
	Key2         ID = 0x5
	Key3         ID = 0x6
	Key4         ID = 0x7
	Key5         ID = 0x8
	Key6         ID = 0x9
	Key7         ID = 0xA
	Key8         ID = 0xB
	Key9         ID = 0xC
	Key10        ID = 0xD
	RAMKey       ID = 0xE
)

// AUTOSAR is the reference slot set. Slot 0xF has no AUTOSAR label.
var AUTOSAR = MustTable("autosar", map[ID]string{
	SecretKey:    "SECRET_KEY",
	MasterECUKey: "MASTER_ECU_KEY",
	BootMACKey:   "BOOT_MAC_KEY",
	BootMAC:      "BOOT_MAC",
	Key1:         "KEY_1",
	Key2:         "KEY_2",
	Key3:         "KEY_3",
	Key4:         "KEY_4",
	Key5:         "KEY_5",
	Key6:         "KEY_6",
	Key7:         "KEY_7",
	Key8:         "KEY_8",
	Key9:         "KEY_9",
	Key10:        "KEY_10",
	RAMKey:       "RAM_KEY",
})
