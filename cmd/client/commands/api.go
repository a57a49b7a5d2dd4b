package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/dirk.krummacker/persons-service/internal/model"
	pmodel "gitlab.com/dirk.krummacker/persons-service/pkg/model"
)

// apiClient sends requests to the persons service.
type apiClient struct {
	base string
	http *http.Client
}

// send executes a request and returns the status code, the response body and the time it took
// from sending the request until the body was read completely.
func (c *apiClient) send(method string, path string, body []byte) (int, []byte, time.Duration, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	requestURL := strings.TrimSuffix(c.base, "/") + path
	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		return 0, nil, 0, errors.Wrap(err, "could not create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	before := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return 0, nil, 0, errors.Wrapf(err, "error making http request %s %s", method, requestURL)
	}
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, 0, errors.Wrap(err, "could not read response body")
	}
	return res.StatusCode, resBody, time.Since(before), nil
}

// create posts the person and returns the stored record.
func (c *apiClient) create(p pmodel.Person) (model.Record, time.Duration, error) {
	body, err := p.JSON()
	if err != nil {
		return model.Record{}, 0, err
	}
	status, resBody, duration, err := c.send(http.MethodPost, "/persons", body)
	if err != nil {
		return model.Record{}, 0, err
	}
	if status != http.StatusCreated {
		return model.Record{}, 0, responseError(status, resBody)
	}
	var record model.Record
	if err := json.Unmarshal(resBody, &record); err != nil {
		return model.Record{}, 0, errors.Wrap(err, "could not unmarshal JSON")
	}
	return record, duration, nil
}

// responseError turns an unexpected response into an error, using the service's message if there
// is one.
func responseError(status int, body []byte) error {
	var msg struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &msg) == nil && msg.Message != "" {
		return errors.Errorf("%d %s: %s", status, http.StatusText(status), msg.Message)
	}
	return errors.Errorf("%d %s", status, http.StatusText(status))
}
