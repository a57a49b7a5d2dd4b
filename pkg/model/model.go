// Package model contains the person record and the nested address and phone number types that
// make up its external JSON and YAML representation.
package model

// Person is the data structure for a person record. All fields are optional. A field that was
// never set is nil; the getters report the zero value of the field type in that case.
type Person struct {
	FirstName    *string        `json:"firstName,omitempty"    yaml:"firstName,omitempty"`
	LastName     *string        `json:"lastName,omitempty"     yaml:"lastName,omitempty"`
	IsAlive      *bool          `json:"isAlive,omitempty"      yaml:"isAlive,omitempty"`
	Age          *int           `json:"age,omitempty"          yaml:"age,omitempty"`
	Address      *Address       `json:"address,omitempty"      yaml:"address,omitempty"`
	PhoneNumbers []PhoneNumbers `json:"phoneNumbers,omitempty" yaml:"phoneNumbers,omitempty"`
	Children     []string       `json:"children,omitempty"     yaml:"children,omitempty"`
	Spouse       *string        `json:"spouse,omitempty"       yaml:"spouse,omitempty"`
}

// Address is the postal address of a person.
type Address struct {
	StreetAddress string `json:"streetAddress" yaml:"streetAddress"`
	City          string `json:"city"          yaml:"city"`
	State         string `json:"state"         yaml:"state"`
	PostalCode    string `json:"postalCode"    yaml:"postalCode"`
}

// PhoneNumbers is a single phone number entry of a person, e.g. {"type": "home", "number": "212
// 555-1234"}.
type PhoneNumbers struct {
	Type   string `json:"type"   yaml:"type"`
	Number string `json:"number" yaml:"number"`
}

// GetFirstName returns the first name, or "" if it is unset. It is safe to call on a nil person.
func (p *Person) GetFirstName() string {
	if p == nil || p.FirstName == nil {
		return ""
	}
	return *p.FirstName
}

// SetFirstName sets the first name.
func (p *Person) SetFirstName(firstName string) {
	p.FirstName = &firstName
}

// GetLastName returns the last name, or "" if it is unset.
func (p *Person) GetLastName() string {
	if p == nil || p.LastName == nil {
		return ""
	}
	return *p.LastName
}

// SetLastName sets the last name.
func (p *Person) SetLastName(lastName string) {
	p.LastName = &lastName
}

// GetIsAlive reports whether the person is alive. An unset value reads as false.
func (p *Person) GetIsAlive() bool {
	if p == nil || p.IsAlive == nil {
		return false
	}
	return *p.IsAlive
}

// SetIsAlive sets the liveness flag. false is stored as a value, unlike an unset field.
func (p *Person) SetIsAlive(isAlive bool) {
	p.IsAlive = &isAlive
}

// GetAge returns the age, or 0 if it is unset.
func (p *Person) GetAge() int {
	if p == nil || p.Age == nil {
		return 0
	}
	return *p.Age
}

// SetAge sets the age. Negative ages are stored as given.
func (p *Person) SetAge(age int) {
	p.Age = &age
}

// GetAddress returns the address, or nil if it is unset.
func (p *Person) GetAddress() *Address {
	if p == nil {
		return nil
	}
	return p.Address
}

// SetAddress stores the given pointer; the address is not copied.
func (p *Person) SetAddress(address *Address) {
	p.Address = address
}

// GetPhoneNumbers returns the phone numbers in their original order, or nil if they are unset.
func (p *Person) GetPhoneNumbers() []PhoneNumbers {
	if p == nil {
		return nil
	}
	return p.PhoneNumbers
}

// SetPhoneNumbers stores the given slice; it is not copied.
func (p *Person) SetPhoneNumbers(phoneNumbers []PhoneNumbers) {
	p.PhoneNumbers = phoneNumbers
}

// GetChildren returns the names of the children in their original order, or nil if unset.
func (p *Person) GetChildren() []string {
	if p == nil {
		return nil
	}
	return p.Children
}

// SetChildren stores the slice as given. The caller keeps sharing its backing array.
// SetChildren stores the given slice; it is not copied.
func (p *Person) SetChildren(children []string) {
	p.Children = children
}

// GetSpouse returns the name of the spouse, or "" if it is unset.
func (p *Person) GetSpouse() string {
	if p == nil || p.Spouse == nil {
		return ""
	}
	return *p.Spouse
}

// SetSpouse sets the name of the spouse.
func (p *Person) SetSpouse(spouse string) {
	p.Spouse = &spouse
}
