package transactions

import (
	"multisafepay-sdk/valueobject"
)

// PaymentOptions controls where the customer and notifications are sent.
type PaymentOptions struct {
	NotificationURL    string
	NotificationMethod string
	RedirectURL        string
	CancelURL          string
	CloseWindow        bool
}

// Data returns the payment_options object. close_window is always sent.
func (p *PaymentOptions) Data() map[string]any {
	data := map[string]any{"close_window": p.CloseWindow}
	putString(data, "notification_url", p.NotificationURL)
	putString(data, "notification_method", p.NotificationMethod)
	putString(data, "redirect_url", p.RedirectURL)
	putString(data, "cancel_url", p.CancelURL)
	return data
}

// Address is a postal address shared by customer and delivery details.
type Address struct {
	Address1    string
	Address2    string
	HouseNumber string
	ZipCode     string
	City        string
	State       string
	Country     valueobject.Country
}

func (a Address) put(data map[string]any) {
	putString(data, "address1", a.Address1)
	putString(data, "address2", a.Address2)
	putString(data, "house_number", a.HouseNumber)
	putString(data, "zip_code", a.ZipCode)
	putString(data, "city", a.City)
	putString(data, "state", a.State)
	putString(data, "country", a.Country.String())
}

// CustomerDetails is used for both the customer and the delivery address.
type CustomerDetails struct {
	FirstName   string
	LastName    string
	CompanyName string
	Address     Address
	Phone       valueobject.PhoneNumber
	Email       valueobject.Email
	Locale      string
	IPAddress   valueobject.IPAddress
	ForwardedIP valueobject.IPAddress
	Referrer    string
	UserAgent   string
}

// Data returns the customer or delivery object.
func (c *CustomerDetails) Data() map[string]any {
	data := map[string]any{}
	putString(data, "first_name", c.FirstName)
	putString(data, "last_name", c.LastName)
	putString(data, "company_name", c.CompanyName)
	c.Address.put(data)
	putString(data, "phone", c.Phone.String())
	putString(data, "email", c.Email.String())
	putString(data, "locale", c.Locale)
	putString(data, "ip_address", c.IPAddress.String())
	putString(data, "forwarded_ip", c.ForwardedIP.String())
	putString(data, "referrer", c.Referrer)
	putString(data, "user_agent", c.UserAgent)
	return data
}

// PluginDetails identifies the integration sending the order.
type PluginDetails struct {
	ApplicationName    string
	ApplicationVersion string
	PluginVersion      string
	Partner            string
	ShopRootURL        string
}

// Data returns the plugin object.
func (p *PluginDetails) Data() map[string]any {
	data := map[string]any{}
	putString(data, "shop", p.ApplicationName)
	putString(data, "shop_version", p.ApplicationVersion)
	putString(data, "plugin_version", p.PluginVersion)
	putString(data, "partner", p.Partner)
	putString(data, "shop_root_url", p.ShopRootURL)
	return data
}

// SecondChance enables the reminder mail for abandoned payments.
type SecondChance struct {
	SendEmail bool
}

// Data returns the second_chance object.
func (s *SecondChance) Data() map[string]any {
	return map[string]any{"send_email": s.SendEmail}
}

func putString(data map[string]any, key, value string) {
	if value != "" {
		data[key] = value
	}
}
