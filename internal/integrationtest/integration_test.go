//go:build integration

// Package integrationtest runs the persons service against a live MySQL database. The connection
// is configured through the same environment variables as the service itself.
//
// Usage example on the command line:
// > DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 go test -tags integration ./internal/integrationtest
package integrationtest

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/persons-service/internal/config"
	"gitlab.com/dirk.krummacker/persons-service/internal/model"
	"gitlab.com/dirk.krummacker/persons-service/internal/randomgen"
	"gitlab.com/dirk.krummacker/persons-service/internal/service"
)

// setupRouter connects to the database configured in the environment and returns the router.
func setupRouter(t *testing.T) *gin.Engine {
	cfg, err := config.Load()
	require.NoError(t, err)
	sqlDB, err := service.CreateDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, service.SetupDatabaseWrapper(sqlDB))
	gin.SetMode(gin.ReleaseMode)
	return service.SetupHttpRouter(false)
}

// serve executes a request against the router and returns the recorded response.
func serve(router *gin.Engine, method string, target string, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(method, target, strings.NewReader(body))
	router.ServeHTTP(recorder, request)
	return recorder
}

// createPerson posts the given JSON and returns the stored record.
func createPerson(t *testing.T, router *gin.Engine, body string) model.Record {
	recorder := serve(router, "POST", "/persons", body)
	require.Equal(t, http.StatusCreated, recorder.Code)
	var record model.Record
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &record))
	return record
}

// findPersons runs a list request and returns the records found.
func findPersons(t *testing.T, router *gin.Engine, query string) []model.Record {
	recorder := serve(router, "GET", "/persons?"+query, "")
	if recorder.Code == http.StatusNotFound {
		return nil
	}
	require.Equal(t, http.StatusOK, recorder.Code)
	var records []model.Record
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &records))
	return records
}

// deletePerson deletes the person with the specified id. It can be used for cleaning up after the
// test.
func deletePerson(t *testing.T, router *gin.Engine, id int64) {
	recorder := serve(router, "DELETE", fmt.Sprintf("/persons/%d", id), "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

// uniqueLastName returns a last name that no other test run is likely to use, so that searches
// can be narrowed to the persons created by one test.
func uniqueLastName() string {
	return fmt.Sprintf("%s-%s-%d", randomgen.PickLastName(), randomgen.PickLastName(), rand.Int63())
}

// TestPersonHappyPath tests a POST, GET, PUT, and DELETE with valid data.
func TestPersonHappyPath(t *testing.T) {
	router := setupRouter(t)

	// test the endpoint for creating a person
	created := createPerson(t, router, `
		{
			"firstName": "John",
			"lastName": "Smith",
			"isAlive": true,
			"age": 25,
			"address": {
				"streetAddress": "21 2nd Street",
				"city": "New York",
				"state": "NY",
				"postalCode": "10021-3100"
			},
			"phoneNumbers": [
				{"type": "home", "number": "212 555-1234"},
				{"type": "office", "number": "646 555-4567"}
			],
			"children": ["Alice", "Bob"]
		}
	`)
	assert.Equal(t, "John", created.GetFirstName())
	assert.Equal(t, []string{"Alice", "Bob"}, created.GetChildren())
	path := fmt.Sprintf("/persons/%d", created.Id)

	// test the endpoint for finding a person
	getRecorder := serve(router, "GET", path, "")
	assert.Equal(t, http.StatusOK, getRecorder.Code)
	var found model.Record
	require.NoError(t, json.Unmarshal(getRecorder.Body.Bytes(), &found))
	assert.Equal(t, created, found)
	assert.Nil(t, found.Spouse)

	// test the endpoint for updating a person
	putRecorder := serve(router, "PUT", path, `{"age": 26, "spouse": "Jane Smith", "children": ["Bob", "Alice"]}`)
	assert.Equal(t, http.StatusOK, putRecorder.Code)
	var updated model.Record
	require.NoError(t, json.Unmarshal(putRecorder.Body.Bytes(), &updated))
	assert.Equal(t, 26, updated.GetAge())
	assert.Equal(t, "Jane Smith", updated.GetSpouse())
	assert.Equal(t, []string{"Bob", "Alice"}, updated.GetChildren())
	assert.Equal(t, "John", updated.GetFirstName())
	assert.Equal(t, created.GetAddress(), updated.GetAddress())
	assert.Equal(t, created.GetPhoneNumbers(), updated.GetPhoneNumbers())

	// writing the same values again is still a hit
	againRecorder := serve(router, "PUT", path, `{"age": 26}`)
	assert.Equal(t, http.StatusOK, againRecorder.Code)

	// test the endpoint for deleting a person
	deletePerson(t, router, created.Id)

	// test if a final lookup of the person will correctly not find it
	getFinalRecorder := serve(router, "GET", path, "")
	assert.Equal(t, http.StatusNotFound, getFinalRecorder.Code)
}

// TestCreatePersonWithoutValues tests a POST of an empty object. Since no field is mandatory, the
// person is stored with all fields unset.
func TestCreatePersonWithoutValues(t *testing.T) {
	router := setupRouter(t)

	created := createPerson(t, router, `{}`)
	defer deletePerson(t, router, created.Id)

	getRecorder := serve(router, "GET", fmt.Sprintf("/persons/%d", created.Id), "")
	assert.Equal(t, http.StatusOK, getRecorder.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id": %d}`, created.Id), getRecorder.Body.String())
}

// TestCreatePersonInvalidBody tests a POST with different forms of invalid request body data.
func TestCreatePersonInvalidBody(t *testing.T) {
	router := setupRouter(t)
	invalidRequestBodies := []string{
		"",
		"not JSON",
		`{"firstName": "John" "lastName": "Smith"}`, // comma missing
		`{"isAlive": "yes"}`,
	}
	for _, body := range invalidRequestBodies {
		recorder := serve(router, "POST", "/persons", body)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, body)
	}
}

// TestRandomPersonsRoundTrip stores generated persons and reads them back unchanged.
func TestRandomPersonsRoundTrip(t *testing.T) {
	router := setupRouter(t)
	for i := 0; i < 20; i++ {
		person := randomgen.Person()
		body, err := person.JSON()
		require.NoError(t, err)
		created := createPerson(t, router, string(body))

		getRecorder := serve(router, "GET", fmt.Sprintf("/persons/%d", created.Id), "")
		require.Equal(t, http.StatusOK, getRecorder.Code)
		var found model.Record
		require.NoError(t, json.Unmarshal(getRecorder.Body.Bytes(), &found))
		assert.Equal(t, created, found)
		deletePerson(t, router, created.Id)
	}
}

// TestFindPersonsFiltered tests the name, liveness and age filters.
func TestFindPersonsFiltered(t *testing.T) {
	router := setupRouter(t)
	lastName := uniqueLastName()
	escaped := url.QueryEscape(lastName)

	anton := createPerson(t, router, fmt.Sprintf(`{"firstName": "Anton", "lastName": %q, "isAlive": true, "age": 21}`, lastName))
	defer deletePerson(t, router, anton.Id)
	zacharias := createPerson(t, router, fmt.Sprintf(`{"firstName": "Zacharias", "lastName": %q, "isAlive": false, "age": 90}`, lastName))
	defer deletePerson(t, router, zacharias.Id)
	michael := createPerson(t, router, fmt.Sprintf(`{"firstName": "Michael", "lastName": %q, "isAlive": true, "age": 50}`, lastName))
	defer deletePerson(t, router, michael.Id)

	assert.Len(t, findPersons(t, router, "lastname="+escaped), 3)

	byFirstName := findPersons(t, router, "lastname="+escaped+"&firstname=Zach")
	require.Len(t, byFirstName, 1)
	assert.Equal(t, zacharias.Id, byFirstName[0].Id)

	alive := findPersons(t, router, "lastname="+escaped+"&isalive=true")
	assert.Len(t, alive, 2)

	middleAged := findPersons(t, router, "lastname="+escaped+"&minage=30&maxage=60")
	require.Len(t, middleAged, 1)
	assert.Equal(t, michael.Id, middleAged[0].Id)

	assert.Empty(t, findPersons(t, router, "lastname="+escaped+"&minage=91"))
}

// TestFindPersonsOrdered tests the 'orderby' and the 'ascending' URL parameters together with
// paging.
func TestFindPersonsOrdered(t *testing.T) {
	router := setupRouter(t)
	lastName := uniqueLastName()
	escaped := url.QueryEscape(lastName)

	// create 3 different persons with the same pseudo-unique last name so that we can narrow the
	// search to them
	ids := [3]int64{
		createPerson(t, router, fmt.Sprintf(`{"firstName": "Anton", "lastName": %q, "age": 21}`, lastName)).Id,
		createPerson(t, router, fmt.Sprintf(`{"firstName": "Zacharias", "lastName": %q, "age": 50}`, lastName)).Id,
		createPerson(t, router, fmt.Sprintf(`{"firstName": "Michael", "lastName": %q, "age": 90}`, lastName)).Id,
	}
	defer func() {
		for _, id := range ids {
			deletePerson(t, router, id)
		}
	}()

	order := func(query string) []int64 {
		var result []int64
		for _, r := range findPersons(t, router, "lastname="+escaped+"&"+query) {
			result = append(result, r.Id)
		}
		return result
	}
	assert.Equal(t, []int64{ids[0], ids[1], ids[2]}, order("orderby=id&ascending=true"))
	assert.Equal(t, []int64{ids[2], ids[1], ids[0]}, order("orderby=id&ascending=false"))
	assert.Equal(t, []int64{ids[0], ids[2], ids[1]}, order("orderby=firstname"))
	assert.Equal(t, []int64{ids[1], ids[2], ids[0]}, order("orderby=firstname&ascending=false"))
	assert.Equal(t, []int64{ids[2], ids[1], ids[0]}, order("orderby=age&ascending=false"))
	assert.Equal(t, []int64{ids[1]}, order("orderby=age&limit=1&offset=1"))
}

// TestInvalidIds tests lookups, updates and deletions of persons that cannot exist.
func TestInvalidIds(t *testing.T) {
	router := setupRouter(t)
	for _, method := range []string{"GET", "PUT", "DELETE"} {
		assert.Equal(t, http.StatusNotFound, serve(router, method, "/persons/INVALID", `{"age": 1}`).Code, method)
		assert.Equal(t, http.StatusNotFound, serve(router, method, "/persons/0", `{"age": 1}`).Code, method)
	}
}

// TestUpdatePersonInvalidBody tests a PUT with an invalid body and with a body without values.
func TestUpdatePersonInvalidBody(t *testing.T) {
	router := setupRouter(t)
	created := createPerson(t, router, `{"firstName": "Erika"}`)
	defer deletePerson(t, router, created.Id)

	path := fmt.Sprintf("/persons/%d", created.Id)
	assert.Equal(t, http.StatusBadRequest, serve(router, "PUT", path, "not JSON").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, "PUT", path, "{}").Code)
}
