package model

import (
	"encoding/json"

	"github.com/pkg/errors"
	pmodel "gitlab.com/dirk.krummacker/persons-service/pkg/model"
)

// Record is a person as stored by the service. In JSON, the id appears next to the person's own
// keys.
type Record struct {
	Id int64 `json:"id"`
	pmodel.Person
}

// Row is the database representation of a record. The address is flattened into four columns
// which are all NULL if the person has no address. Phone numbers and children are kept as JSON
// text.
type Row struct {
	Id            int64   `db:"id"`
	FirstName     *string `db:"firstname"`
	LastName      *string `db:"lastname"`
	IsAlive       *bool   `db:"isalive"`
	Age           *int    `db:"age"`
	StreetAddress *string `db:"street_address"`
	City          *string `db:"city"`
	State         *string `db:"state"`
	PostalCode    *string `db:"postal_code"`
	PhoneNumbers  *string `db:"phonenumbers"`
	Children      *string `db:"children"`
	Spouse        *string `db:"spouse"`
}

// NewRow converts a record into its database representation.
func NewRow(r Record) (Row, error) {
	row := Row{
		Id:        r.Id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		IsAlive:   r.IsAlive,
		Age:       r.Age,
		Spouse:    r.Spouse,
	}
	if a := r.Address; a != nil {
		row.StreetAddress = &a.StreetAddress
		row.City = &a.City
		row.State = &a.State
		row.PostalCode = &a.PostalCode
	}
	var err error
	if row.PhoneNumbers, err = marshalColumn(r.PhoneNumbers); err != nil {
		return Row{}, errors.Wrap(err, "phone numbers")
	}
	if row.Children, err = marshalColumn(r.Children); err != nil {
		return Row{}, errors.Wrap(err, "children")
	}
	return row, nil
}

// Record converts the database representation back into a record.
func (row Row) Record() (Record, error) {
	r := Record{Id: row.Id}
	r.FirstName = row.FirstName
	r.LastName = row.LastName
	r.IsAlive = row.IsAlive
	r.Age = row.Age
	r.Spouse = row.Spouse
	if row.StreetAddress != nil || row.City != nil || row.State != nil || row.PostalCode != nil {
		r.Address = &pmodel.Address{
			StreetAddress: deref(row.StreetAddress),
			City:          deref(row.City),
			State:         deref(row.State),
			PostalCode:    deref(row.PostalCode),
		}
	}
	if row.PhoneNumbers != nil {
		if err := json.Unmarshal([]byte(*row.PhoneNumbers), &r.PhoneNumbers); err != nil {
			return Record{}, errors.Wrapf(err, "phone numbers of person %d", row.Id)
		}
	}
	if row.Children != nil {
		if err := json.Unmarshal([]byte(*row.Children), &r.Children); err != nil {
			return Record{}, errors.Wrapf(err, "children of person %d", row.Id)
		}
	}
	return r, nil
}

// marshalColumn encodes a slice for a JSON column. A nil slice becomes NULL, an empty one "[]".
func marshalColumn[T any](values []T) (*string, error) {
	if values == nil {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
