package randomgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickers(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Contains(t, firstNames, PickFirstName())
		assert.Contains(t, lastNames, PickLastName())
		assert.NotEmpty(t, PickCity())
	}
}

// TestAddressConsistent verifies that state and postal code belong to the chosen city.
func TestAddressConsistent(t *testing.T) {
	for i := 0; i < 100; i++ {
		a := Address()
		found := false
		for _, c := range cities {
			if c.city == a.City {
				assert.Equal(t, c.state, a.State)
				assert.Equal(t, c.postalCode, a.PostalCode)
				found = true
			}
		}
		assert.True(t, found, a.City)
		assert.NotEmpty(t, a.StreetAddress)
	}
}

// TestPerson verifies that generated persons have every field except the spouse set.
func TestPerson(t *testing.T) {
	for i := 0; i < 100; i++ {
		p := Person()
		assert.NotNil(t, p.FirstName)
		assert.NotNil(t, p.LastName)
		assert.NotNil(t, p.IsAlive)
		assert.NotNil(t, p.Age)
		assert.GreaterOrEqual(t, p.GetAge(), 0)
		assert.Less(t, p.GetAge(), 100)
		assert.NotNil(t, p.GetAddress())
		assert.NotNil(t, p.GetPhoneNumbers())
		assert.LessOrEqual(t, len(p.GetPhoneNumbers()), 3)
		assert.NotNil(t, p.GetChildren())
		for _, n := range p.GetPhoneNumbers() {
			assert.Contains(t, phoneTypes, n.Type)
			assert.Regexp(t, `^\d{3} \d{3}-\d{4}$`, n.Number)
		}
	}
}
