package ups

// errorMessages maps UPS rating error codes to user-facing messages. Loaded
// once at process start and read-only afterwards.
var errorMessages = map[string]string{
	"110002":  "Please provide at least one item to ship.",
	"110208":  "Please set a valid country in the recipient address.",
	"110308":  "Please set a valid country in the warehouse address.",
	"110548":  "A shipment cannot have a KGS/IN or LBS/CM as its unit of measurements. Configure it from the delivery method.",
	"111057":  "This measurement system is not valid for the selected country. Please switch from LBS/IN to KGS/CM (or vice versa). Configure it from the delivery method.",
	"111091":  "The selected service is not possible from your warehouse to the recipient address, please choose another service.",
	"111100":  "The selected service is invalid from the requested warehouse, please choose another service.",
	"111107":  "Please provide a valid zip code in the warehouse address.",
	"111210":  "The selected service is invalid to the recipient address, please choose another service.",
	"111212":  "Please provide a valid package type available for service and selected locations.",
	"111500":  "The selected service is not valid with the selected packaging.",
	"112111":  "Please provide a valid shipper number/Carrier Account.",
	"113020":  "Please provide a valid zip code in the warehouse address.",
	"113021":  "Please provide a valid zip code in the recipient address.",
	"120031":  "Exceeds Total Number of allowed pieces per World Wide Express Shipment.",
	"120100":  "Please provide a valid shipper number/Carrier Account.",
	"120102":  "Please provide a valid street in shipper's address.",
	"120105":  "Please provide a valid city in the shipper's address.",
	"120106":  "Please provide a valid state in the shipper's address.",
	"120107":  "Please provide a valid zip code in the shipper's address.",
	"120108":  "Please provide a valid country in the shipper's address.",
	"120109":  "Please provide a valid shipper phone number.",
	"120113":  "Shipper number must contain alphanumeric characters only.",
	"120114":  "Shipper phone extension cannot exceed the length of 4.",
	"120115":  "Shipper Phone must be at least 10 alphanumeric characters.",
	"120116":  "Shipper phone extension must contain only numbers.",
	"120122":  "Please provide a valid shipper Number/Carrier Account.",
	"120124":  "The requested service is unavailable between the selected locations.",
	"120202":  "Please provide a valid street in the recipient address.",
	"120205":  "Please provide a valid city in the recipient address.",
	"120206":  "Please provide a valid state in the recipient address.",
	"120207":  "Please provide a valid zipcode in the recipient address.",
	"120208":  "Please provide a valid Country in recipient's address.",
	"120209":  "Please provide a valid phone number for the recipient.",
	"120212":  "Recipient PhoneExtension cannot exceed the length of 4.",
	"120213":  "Recipient Phone must be at least 10 alphanumeric characters.",
	"120214":  "Recipient PhoneExtension must contain only numbers.",
	"120302":  "Please provide a valid street in the warehouse address.",
	"120305":  "Please provide a valid City in the warehouse address.",
	"120306":  "Please provide a valid State in the warehouse address.",
	"120307":  "Please provide a valid Zip in the warehouse address.",
	"120308":  "Please provide a valid Country in the warehouse address.",
	"120309":  "Please provide a valid warehouse Phone Number",
	"120312":  "Warehouse PhoneExtension cannot exceed the length of 4.",
	"120313":  "Warehouse Phone must be at least 10 alphanumeric characters.",
	"120314":  "Warehouse Phone must contain only numbers.",
	"120412":  "Please provide a valid shipper Number/Carrier Account.",
	"121057":  "This measurement system is not valid for the selected country. Please switch from LBS/IN to KGS/CM (or vice versa). Configure it from delivery method",
	"121210":  "The requested service is unavailable between the selected locations.",
	"128089":  "Access License number is Invalid. Provide a valid number (Length sholuld be 0-35 alphanumeric characters)",
	"190001":  "Cancel shipment not available at this time , Please try again Later.",
	"190100":  "Provided Tracking Ref. Number is invalid.",
	"190109":  "Provided Tracking Ref. Number is invalid.",
	"250001":  "Access License number is invalid for this provider.Please re-license.",
	"250002":  "Username/Password is invalid for this delivery provider.",
	"250003":  "Access License number is invalid for this delivery provider.",
	"250004":  "Username/Password is invalid for this delivery provider.",
	"250006":  "The maximum number of user access attempts was exceeded. So please try again later",
	"250007":  "The UserId is currently locked out; please try again in 24 hours.",
	"250009":  "Provided Access License Number not found in the UPS database",
	"250038":  "Please provide a valid shipper number/Carrier Account.",
	"250047":  "Access License number is revoked contact UPS to get access.",
	"250052":  "Authorization system is currently unavailable , try again later.",
	"250053":  "UPS Server Not Found",
	"9120200": "Please provide at least one item to ship",
}

// ErrorMessage translates a provider error code into a user-facing message,
// falling back to the provider's raw description for unmapped codes.
func ErrorMessage(code, description string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return description
}

// ServiceType is a UPS service level offered for rating.
type ServiceType struct {
	Code string
	Name string
}

// Worldwide Express Freight is the only consolidated-freight service; it
// requires the piece count on the shipment.
const serviceWorldwideExpressFreight = "96"

// ServiceTypes lists the supported UPS service levels.
func ServiceTypes() []ServiceType {
	return []ServiceType{
		{"03", "UPS Ground"},
		{"11", "UPS Standard"},
		{"01", "UPS Next Day"},
		{"14", "UPS Next Day AM"},
		{"13", "UPS Next Day Air Saver"},
		{"02", "UPS 2nd Day"},
		{"59", "UPS 2nd Day AM"},
		{"12", "UPS 3-day Select"},
		{"65", "UPS Saver"},
		{"07", "UPS Worldwide Express"},
		{"08", "UPS Worldwide Expedited"},
		{"54", "UPS Worldwide Express Plus"},
		{"96", "UPS Worldwide Express Freight"},
	}
}
