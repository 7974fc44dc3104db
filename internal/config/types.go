package config

// Identifier spaces IFUs can be addressed by
const (
	// IDTypeIFUSlot addresses IFUs by mounting slot
	IDTypeIFUSlot = "ifuslot"

	// IDTypeIFUID addresses IFUs by IFU serial number
	IDTypeIFUID = "ifuid"

	// IDTypeSpecID addresses IFUs by spectrograph serial number
	IDTypeSpecID = "specid"
)

// Constants for configuration limits and defaults
const (
	// DefaultIDType is the identifier space used when none is configured
	DefaultIDType = IDTypeIFUSlot

	// DefaultFWHM is the seeing FWHM written to dither files, in arcseconds
	DefaultFWHM = 1.6

	// DefaultExtension is appended to basenames for FITS header lookups
	DefaultExtension = "_L.fits"

	// DefaultOutfile is the output file template
	DefaultOutfile = "dither_{id}.txt"

	// DefaultModelBase is the model basename template
	DefaultModelBase = "masterflat_{id}"

	// MaxWorkerMultiplier is the maximum multiple of CPU cores for worker count
	MaxWorkerMultiplier = 4
)
