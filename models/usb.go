package models

// USBDevice is a physical device attached to the host
type USBDevice struct {
	Platform     Platform `json:"type"`
	Name         string   `json:"name"`
	Serial       string   `json:"serial"`
	Brand        string   `json:"brand"`
	VendorID     string   `json:"vendor_id,omitempty"`
	ProductID    string   `json:"product_id,omitempty"`
	USBDebugging *bool    `json:"usb_debugging,omitempty"`
	Trusted      *bool    `json:"trusted,omitempty"`
}
