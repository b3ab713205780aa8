package rating

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Countries for which carriers require a state or province code.
var stateRequiredCountries = map[string]bool{
	"US": true,
	"CA": true,
	"IE": true,
}

// Fixed validation messages. The phone-length messages mirror the carrier's
// own wording so users see the same text whether the check fails locally or
// remotely.
const (
	msgCompanyAddress   = "The address of your company is missing or wrong.\n(Missing field(s) : %s)"
	msgWarehouseAddress = "The address of your warehouse is missing or wrong.\n(Missing field(s) : %s)"
	msgRecipientAddress = "The recipient address is missing or wrong.\n(Missing field(s) : %s)"

	msgShipperPhone   = "Shipper Phone must be at least 10 alphanumeric characters."
	msgWarehousePhone = "Warehouse Phone must be at least 10 alphanumeric characters."
	msgRecipientPhone = "Recipient Phone must be at least 10 alphanumeric characters."

	msgNoItems = "Please provide at least one item to ship."
)

// StateRequired reports whether carriers require a state or province code
// for addresses in the given country.
func StateRequired(countryCode string) bool {
	return stateRequiredCountries[countryCode]
}

// CleanPhoneNumber strips every non-digit character from a phone number.
func CleanPhoneNumber(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}

// missingAddressFields returns the labels of required fields absent from the
// address, in the order users expect to fix them.
func missingAddressFields(addr *Address, includePhone bool) []string {
	var missing []string
	if addr.City == "" {
		missing = append(missing, "City")
	}
	if addr.Zip == "" {
		missing = append(missing, "ZIP code")
	}
	if addr.CountryCode == "" {
		missing = append(missing, "Country")
	}
	if includePhone && addr.Phone == "" {
		missing = append(missing, "Phone")
	}
	if stateRequiredCountries[addr.CountryCode] && addr.StateCode == "" {
		missing = append(missing, "State")
	}
	if addr.Street == "" && addr.Street2 == "" {
		missing = append(missing, "Street")
	}
	return missing
}

// ValidateShipment checks that the shipper, warehouse and recipient
// addresses carry everything the carrier requires, before any network call.
// The returned string is empty when the shipment is valid; otherwise it is
// the first failure found, checking shipper, then warehouse, then recipient,
// so users fix their own account configuration first.
//
// The recipient phone is resolved as shipTo.Mobile, then shipTo.Phone, then
// the order contact's mobile and phone. A picking without an order resolves
// the order from the picking.
func ValidateShipment(shipper, shipFrom, shipTo *Address, order *Order, picking *Picking) string {
	if missing := missingAddressFields(shipper, true); len(missing) > 0 {
		return fmt.Sprintf(msgCompanyAddress, strings.Join(missing, ","))
	}
	if len(CleanPhoneNumber(shipper.Phone)) < 10 {
		return msgShipperPhone
	}

	if missing := missingAddressFields(shipFrom, true); len(missing) > 0 {
		return fmt.Sprintf(msgWarehouseAddress, strings.Join(missing, ","))
	}
	if len(CleanPhoneNumber(shipFrom.Phone)) < 10 {
		return msgWarehousePhone
	}

	missing := missingAddressFields(shipTo, false)

	if picking != nil && order == nil {
		order = picking.Order
	}
	phone := shipTo.Mobile
	if phone == "" {
		phone = shipTo.Phone
	}
	if order != nil && phone == "" {
		phone = order.Contact.Mobile
		if phone == "" {
			phone = order.Contact.Phone
		}
	}
	if order != nil && len(shippableLines(order)) == 0 {
		return msgNoItems
	}

	if picking != nil {
		weightless := lo.Filter(picking.Packages, func(p PickingPackage, _ int) bool {
			return p.ShippingWeight <= 0
		})
		if len(weightless) > 0 {
			names := lo.Map(weightless, func(p PickingPackage, _ int) string { return p.Name })
			return fmt.Sprintf("Packages %s do not have a positive shipping weight.", strings.Join(names, ", "))
		}
	}

	if phone == "" {
		missing = append(missing, "Phone")
	}
	if len(missing) > 0 {
		return fmt.Sprintf(msgRecipientAddress, strings.Join(missing, ","))
	}
	if len(CleanPhoneNumber(phone)) < 10 {
		return msgRecipientPhone
	}
	return ""
}
