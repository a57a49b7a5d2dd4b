// Package randomgen produces plausible but made up person data for benchmarks and tests.
package randomgen

import (
	"fmt"
	"math/rand"

	"gitlab.com/dirk.krummacker/persons-service/pkg/model"
)

var firstNames = []string{
	"Adam", "Alice", "Anna", "Ben", "Bob", "Carla", "David", "Dirk", "Emma", "Erika", "Felix",
	"Hannah", "Jan", "Jane", "John", "Lena", "Lukas", "Marie", "Max", "Mia", "Noah", "Pavla",
	"Paul", "Sofia", "Tom",
}

var lastNames = []string{
	"Becker", "Brown", "Dvořák", "Fischer", "Hoffmann", "Johnson", "Klein", "Krummacker",
	"Meyer", "Müller", "Mustermann", "Novák", "Richter", "Schmidt", "Schneider", "Schulz",
	"Smith", "Svoboda", "Wagner", "Weber", "Williams", "Wolf",
}

var cities = []struct {
	city, state, postalCode string
}{
	{"New York", "NY", "10021-3100"},
	{"Berlin", "BE", "10115"},
	{"Praha", "PR", "110 00"},
	{"Köln", "NW", "50667"},
	{"Brno", "JM", "602 00"},
	{"Boston", "MA", "02108"},
}

var streets = []string{"2nd Street", "Hauptstrasse", "Main Street", "Na Příkopě", "Ringstrasse"}

var phoneTypes = []string{"home", "office", "mobile"}

// PickFirstName returns a random first name.
func PickFirstName() string {
	return firstNames[rand.Intn(len(firstNames))]
}

// PickLastName returns a random last name.
func PickLastName() string {
	return lastNames[rand.Intn(len(lastNames))]
}

// PickCity returns a random city.
func PickCity() string {
	return cities[rand.Intn(len(cities))].city
}

// Address returns a random address. State and postal code fit the city.
func Address() *model.Address {
	c := cities[rand.Intn(len(cities))]
	return &model.Address{
		StreetAddress: fmt.Sprintf("%d %s", 1+rand.Intn(200), streets[rand.Intn(len(streets))]),
		City:          c.city,
		State:         c.state,
		PostalCode:    c.postalCode,
	}
}

// PhoneNumber returns a random phone number entry.
func PhoneNumber() model.PhoneNumbers {
	return model.PhoneNumbers{
		Type:   phoneTypes[rand.Intn(len(phoneTypes))],
		Number: fmt.Sprintf("%03d %03d-%04d", rand.Intn(1000), rand.Intn(1000), rand.Intn(10000)),
	}
}

// Person returns a person with every field set. Between zero and three phone numbers and children
// are generated; the spouse is left unset for about half of the persons.
func Person() model.Person {
	var p model.Person
	p.SetFirstName(PickFirstName())
	p.SetLastName(PickLastName())
	p.SetIsAlive(rand.Intn(10) > 0)
	p.SetAge(rand.Intn(100))
	p.SetAddress(Address())

	numbers := make([]model.PhoneNumbers, rand.Intn(4))
	for i := range numbers {
		numbers[i] = PhoneNumber()
	}
	p.SetPhoneNumbers(numbers)

	children := make([]string, rand.Intn(4))
	for i := range children {
		children[i] = PickFirstName()
	}
	p.SetChildren(children)

	if rand.Intn(2) == 0 {
		p.SetSpouse(PickFirstName() + " " + p.GetLastName())
	}
	return p
}
