package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"gitlab.com/dirk.krummacker/persons-service/internal/model"
	pmodel "gitlab.com/dirk.krummacker/persons-service/pkg/model"
)

// columns lists the persons table columns in the order of the model.Row fields.
const columns = `id, firstname, lastname, isalive, age, street_address, city, state, postal_code,
	phonenumbers, children, spouse`

// filter holds the search criteria and paging of a list request. Empty strings and nil pointers
// mean that the criterion is not applied.
type filter struct {
	firstName string
	lastName  string
	isAlive   *bool
	minAge    *int
	maxAge    *int
	limit     int64
	offset    int64
	orderBy   string
	ascending bool
}

// store wraps the database and the prepared statements used by the request handlers.
type store struct {
	db *sqlx.DB

	// insert is a prepared statement for creating a person on the database.
	insert *sqlx.NamedStmt

	// selectWhereId is a prepared statement for selecting the person with a given id.
	selectWhereId *sqlx.Stmt

	// deleteWhereId is a prepared statement for deleting the person with a given id.
	deleteWhereId *sqlx.Stmt
}

// newStore prepares all statements on the given database.
func newStore(db *sqlx.DB) (*store, error) {
	s := &store{db: db}
	var err error

	// Prepared statements offer a significant speed increase if executed many times.
	s.insert, err = db.PrepareNamed(`
		INSERT INTO persons (firstname, lastname, isalive, age, street_address, city, state,
			postal_code, phonenumbers, children, spouse)
		VALUES (:firstname, :lastname, :isalive, :age, :street_address, :city, :state,
			:postal_code, :phonenumbers, :children, :spouse)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "preparing insert")
	}
	s.selectWhereId, err = db.Preparex(`
		SELECT ` + columns + ` FROM persons WHERE id = ?
	`)
	if err != nil {
		return nil, errors.Wrap(err, "preparing select")
	}
	s.deleteWhereId, err = db.Preparex(`
		DELETE FROM persons WHERE id = ?
	`)
	if err != nil {
		return nil, errors.Wrap(err, "preparing delete")
	}
	return s, nil
}

// create inserts the person and returns it together with the newly assigned id.
func (s *store) create(p pmodel.Person) (model.Record, error) {
	record := model.Record{Person: p}
	row, err := model.NewRow(record)
	if err != nil {
		return model.Record{}, err
	}
	result, err := s.insert.Exec(&row)
	if err != nil {
		return model.Record{}, errors.Wrap(err, "inserting person")
	}
	record.Id, err = result.LastInsertId()
	if err != nil {
		return model.Record{}, errors.Wrap(err, "reading id of inserted person")
	}
	return record, nil
}

// findByID returns the person with the given id. The boolean is false if there is none.
func (s *store) findByID(id int64) (model.Record, bool, error) {
	var row model.Row
	err := s.selectWhereId.Get(&row, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Record{}, false, nil
	}
	if err != nil {
		return model.Record{}, false, errors.Wrapf(err, "selecting person %d", id)
	}
	record, err := row.Record()
	if err != nil {
		return model.Record{}, false, err
	}
	return record, true, nil
}

// find returns all persons matching the filter, sorted and paged as requested. The orderBy value
// is inserted into the statement verbatim and must have been checked against allowedOrderby.
func (s *store) find(f filter) ([]model.Record, error) {
	var conditions []string
	var args []interface{}
	if f.firstName != "" {
		conditions = append(conditions, "firstname LIKE ?")
		args = append(args, escapeLike(f.firstName)+"%")
	}
	if f.lastName != "" {
		conditions = append(conditions, "lastname LIKE ?")
		args = append(args, escapeLike(f.lastName)+"%")
	}
	if f.isAlive != nil {
		conditions = append(conditions, "isalive = ?")
		args = append(args, *f.isAlive)
	}
	if f.minAge != nil {
		conditions = append(conditions, "age >= ?")
		args = append(args, *f.minAge)
	}
	if f.maxAge != nil {
		conditions = append(conditions, "age <= ?")
		args = append(args, *f.maxAge)
	}

	query := "SELECT " + columns + " FROM persons"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	direction := "ASC"
	if !f.ascending {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT ? OFFSET ?", f.orderBy, direction)
	args = append(args, f.limit, f.offset)

	var rows []model.Row
	if err := s.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "selecting persons")
	}
	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		record, err := row.Record()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// update writes the fields that are set in p, and only those, to the person with the given id.
// It reports false if there is no such person. Calling it without any field set is an error.
func (s *store) update(id int64, p pmodel.Person) (bool, error) {
	row, err := model.NewRow(model.Record{Person: p})
	if err != nil {
		return false, err
	}

	var args []interface{}
	var assignments []string
	set := func(column string, value interface{}) {
		assignments = append(assignments, column+"=?")
		args = append(args, value)
	}
	if row.FirstName != nil {
		set("firstname", row.FirstName)
	}
	if row.LastName != nil {
		set("lastname", row.LastName)
	}
	if row.IsAlive != nil {
		set("isalive", row.IsAlive)
	}
	if row.Age != nil {
		set("age", row.Age)
	}
	if p.Address != nil {
		set("street_address", row.StreetAddress)
		set("city", row.City)
		set("state", row.State)
		set("postal_code", row.PostalCode)
	}
	if row.PhoneNumbers != nil {
		set("phonenumbers", row.PhoneNumbers)
	}
	if row.Children != nil {
		set("children", row.Children)
	}
	if row.Spouse != nil {
		set("spouse", row.Spouse)
	}
	if len(assignments) == 0 {
		return false, errNothingToUpdate
	}

	query := "UPDATE persons SET " + strings.Join(assignments, ", ") + " WHERE id=?"
	args = append(args, id)
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return false, errors.Wrapf(err, "updating person %d", id)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrapf(err, "updating person %d", id)
	}
	return rowsAffected > 0, nil
}

// delete removes the person with the given id and reports whether it existed.
func (s *store) delete(id int64) (bool, error) {
	result, err := s.deleteWhereId.Exec(id)
	if err != nil {
		return false, errors.Wrapf(err, "deleting person %d", id)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrapf(err, "deleting person %d", id)
	}
	return rowsAffected == 1, nil
}

// escapeLike escapes the wildcard characters of a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

var errNothingToUpdate = errors.New("no values to be updated")
