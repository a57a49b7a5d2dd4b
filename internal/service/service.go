package service

import (
	"database/sql"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gitlab.com/dirk.krummacker/persons-service/internal/config"
	pmodel "gitlab.com/dirk.krummacker/persons-service/pkg/model"
)

// persons is the store that all request handlers work on.
var persons *store

// allowedOrderby are the allowed values for the 'orderby' URL parameter.
var allowedOrderby = []string{"id", "firstname", "lastname", "isalive", "age", "spouse"}

// allowedBooleans are the allowed values for the 'ascending' and 'isalive' URL parameters.
var allowedBooleans = []string{"true", "false"}

// CreateDatabase opens the MySQL database described by the configuration.
func CreateDatabase(cfg config.Config) (*sql.DB, error) {
	sqlDB, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	return sqlDB, nil
}

// SetupDatabaseWrapper initializes the sqlx database wrapper with the specified sql database. It
// then prepares all statements. The database argument can be a real database for production use
// or a mock database within unit tests.
func SetupDatabaseWrapper(sqlDB *sql.DB) error {
	s, err := newStore(sqlx.NewDb(sqlDB, "mysql"))
	if err != nil {
		return err
	}
	persons = s
	return nil
}

// SetupHttpRouter initializes the REST API router and registers all endpoints. If requestLogging
// is set, every request is logged through logrus.
func SetupHttpRouter(requestLogging bool) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if requestLogging {
		router.Use(requestLogger())
	} else {
		logrus.Info("Turning off HTTP request logging.")
	}
	router.GET("/persons", findPersons)
	router.POST("/persons", createPerson)
	router.GET("/persons/:id", findPersonByID)
	router.PUT("/persons/:id", updatePersonByID)
	router.DELETE("/persons/:id", deletePersonByID)
	return router
}

// findPersons responds with a list of persons as JSON.
//
// The URL parameters 'firstname' and 'lastname' are interpreted as the beginning of the first name
// or last name of the person. The URL parameter 'isalive' selects living ('true') or deceased
// ('false') persons. The URL parameters 'minage' and 'maxage' restrict the age range, both ends
// included.
//
// The URL parameter 'limit' specifies how many persons matching the search criteria are returned.
// The URL parameter 'offset' specifies how many items from the sorted list of results are skipped
// in the beginning. Together with the 'limit' parameter, one can implement search result paging.
//
// The URL parameter 'orderby' specifies the property by which the results shall be sorted. Valid
// values are 'id', 'firstname', 'lastname', 'isalive', 'age', and 'spouse'. If this URL parameter
// is not specified, the persons will be sorted by id. If the URL parameter 'ascending' is set to
// 'false' then the sort order is reversed.
//
// REST API calls:
//
//	> curl "http://localhost:8080/persons"
//	> curl "http://localhost:8080/persons?firstname=Jo&isalive=true"
//	> curl "http://localhost:8080/persons?minage=18&maxage=65"
//	> curl "http://localhost:8080/persons?limit=20&offset=60"
//	> curl "http://localhost:8080/persons?orderby=age&ascending=false"
func findPersons(c *gin.Context) {
	var f filter
	if !parseNameAndLiveness(c, &f) || !parseAgeRange(c, &f) || !parseLimitAndOffset(c, &f) ||
		!parseOrderbyAndAscending(c, &f) {
		return
	}
	records, err := persons.find(f)
	if err != nil {
		internalError(c, err)
		return
	}
	if len(records) == 0 {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "person not found"})
	} else {
		c.IndentedJSON(http.StatusOK, records)
	}
}

// parseNameAndLiveness inspects the URL parameters and determines values for first name, last
// name and liveness of the person.
func parseNameAndLiveness(c *gin.Context, f *filter) bool {
	f.firstName = c.Query("firstname")
	f.lastName = c.Query("lastname")
	if isAlive := c.Query("isalive"); isAlive != "" {
		if !contains(allowedBooleans, isAlive) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid isalive parameter"})
			return false
		}
		v := isAlive == "true"
		f.isAlive = &v
	}
	return true
}

// parseAgeRange inspects the URL parameters and determines the lower and upper age bounds.
func parseAgeRange(c *gin.Context, f *filter) bool {
	for _, p := range []struct {
		name string
		dst  **int
	}{{"minage", &f.minAge}, {"maxage", &f.maxAge}} {
		value := c.Query(p.name)
		if value == "" {
			continue
		}
		age, err := strconv.Atoi(value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid " + p.name + " parameter"})
			return false
		}
		*p.dst = &age
	}
	return true
}

// parseLimitAndOffset inspects the URL parameters and determines values for limit and offset of
// the result set.
func parseLimitAndOffset(c *gin.Context, f *filter) bool {
	f.limit = math.MaxInt64
	if limit := c.Query("limit"); limit != "" {
		limitAsInt, errConv := strconv.ParseInt(limit, 10, 64)
		if errConv != nil || limitAsInt < 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid limit parameter"})
			return false
		}
		f.limit = limitAsInt
	}
	if offset := c.Query("offset"); offset != "" {
		offsetAsInt, errConv := strconv.ParseInt(offset, 10, 64)
		if errConv != nil || offsetAsInt < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid offset parameter"})
			return false
		}
		f.offset = offsetAsInt
	}
	return true
}

// parseOrderbyAndAscending inspects the URL parameters and determines values for the orderby and
// ascending values of the result set.
func parseOrderbyAndAscending(c *gin.Context, f *filter) bool {
	f.orderBy = c.DefaultQuery("orderby", "id")
	if !contains(allowedOrderby, f.orderBy) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid orderby parameter"})
		return false
	}
	ascending := c.DefaultQuery("ascending", "true")
	if !contains(allowedBooleans, ascending) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid ascending parameter"})
		return false
	}
	f.ascending = ascending == "true"
	return true
}

// contains returns true if a string is present in a slice.
func contains(slice []string, str string) bool {
	for _, v := range slice {
		if v == str {
			return true
		}
	}
	return false
}

// createPerson inserts the person specified in the request's JSON into the database. It responds
// with the full person data including the newly assigned id. Fields that are not specified stay
// unset. An id contained in the request is ignored.
//
// Example REST API call:
//
//	> curl http://localhost:8080/persons --request "POST" --include --header "Content-Type: application/json" --data '{"firstName": "John", "lastName": "Smith", "isAlive": true, "age": 25, "children": ["Alice", "Bob"]}'
func createPerson(c *gin.Context) {
	var submitted pmodel.Person
	if err := c.ShouldBindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	record, err := persons.create(submitted)
	if err != nil {
		internalError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, record)
}

// findPersonByID locates the person whose ID value matches the id parameter of the request URL,
// then returns that person as a response.
//
// Example REST API call:
//
//	> curl http://localhost:8080/persons/56
func findPersonByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	record, found, err := persons.findByID(id)
	if err != nil {
		internalError(c, err)
		return
	}
	if !found {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "person not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, record)
}

// updatePersonByID updates the person whose ID value matches the id parameter of the request URL,
// updates the values specified in the JSON (and only those), and finally responds with the new
// version of the person.
//
// Example REST API calls:
//
//	> curl http://localhost:8080/persons/56 --request "PUT" --include --header "Content-Type: application/json" --data '{"age": 26}'
//	> curl http://localhost:8080/persons/56 --request "PUT" --include --header "Content-Type: application/json" --data '{"address": {"streetAddress": "21 2nd Street", "city": "New York", "state": "NY", "postalCode": "10021-3100"}}'
func updatePersonByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var submitted pmodel.Person
	if err := c.ShouldBindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}

	found, err := persons.update(id, submitted)
	if errors.Is(err, errNothingToUpdate) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	if !found {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "person not found"})
		return
	}

	// In the HTTP response, return the full person after the update.
	record, found, err := persons.findByID(id)
	if err != nil {
		internalError(c, err)
		return
	}
	if !found {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "person not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, record)
}

// deletePersonByID deletes the person whose ID value matches the id parameter of the request URL
// from the database.
//
// Example REST API call:
//
//	> curl http://localhost:8080/persons/56 --request "DELETE"
func deletePersonByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := persons.delete(id)
	if err != nil {
		internalError(c, err)
		return
	}
	if deleted {
		c.IndentedJSON(http.StatusOK, gin.H{"message": "person deleted"})
	} else {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "person not found"})
	}
}

// parseID reads the id parameter of the request URL. Ids that are not numeric cannot exist, so
// they are answered with NOT FOUND.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "invalid id parameter"})
		return 0, false
	}
	return id, true
}

// internalError logs a failed database access and answers the request with a generic message.
func internalError(c *gin.Context, err error) {
	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("database access failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
}
