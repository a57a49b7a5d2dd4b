package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Usage example on the command line:
// > go run main.go -url=http://localhost:8080/persons -interval=5s -timeout=5m
func main() {
	url := flag.String("url", "http://localhost:8080/persons", "the endpoint to poll")
	interval := flag.Duration("interval", 5*time.Second, "the time between two attempts")
	timeout := flag.Duration("timeout", 5*time.Minute, "the time after which to give up")
	flag.Parse()

	if !waitUntilAvailable(http.DefaultClient, *url, *interval, *timeout) {
		logrus.WithField("url", *url).Error("service did not become available")
		os.Exit(1)
	}
}

// waitUntilAvailable polls the url until the service answers. Both OK and NOT FOUND count as an
// answer, since an empty persons table yields NOT FOUND.
func waitUntilAvailable(client *http.Client, url string, interval, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	var totalWaitTime time.Duration
	for {
		res, err := client.Get(url)
		if err == nil {
			res.Body.Close()
			if res.StatusCode == http.StatusOK || res.StatusCode == http.StatusNotFound {
				logrus.WithField("status", res.Status).Info("service is available")
				return true
			}
			logrus.WithField("status", res.Status).Warn("service not ready")
		} else {
			logrus.WithError(err).Warn("service not reachable")
		}
		if time.Now().Add(interval).After(deadline) {
			return false
		}
		totalWaitTime += interval
		logrus.Infof("Waiting %s", totalWaitTime)
		time.Sleep(interval)
	}
}
