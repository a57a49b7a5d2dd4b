package commands

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/dirk.krummacker/persons-service/internal/randomgen"
)

func benchCmd(api *apiClient) *cobra.Command {
	var sizes []int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Print the average latency in microseconds of POST, PUT, GET and DELETE requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(api, cmd.OutOrStdout(), sizes)
		},
	}
	cmd.Flags().IntSliceVar(&sizes, "sizes", []int{1000, 5000, 10000, 50000, 100000}, "number of requests per round")
	return cmd
}

// runBench creates, updates, reads and deletes as many persons as given by each size. The ids
// used for PUT, GET and DELETE are shuffled so that the database cannot profit from sequential
// access.
func runBench(api *apiClient, out io.Writer, sizes []int) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Elements      POST       PUT       GET    DELETE ")
	fmt.Fprintln(out, "---------------------------------------------------")
	for _, loops := range sizes {
		if loops < 1 {
			continue
		}
		fmt.Fprintf(out, "%10d", loops)

		// POST requests
		ids := make([]int64, 0, loops)
		var duration time.Duration
		for i := 0; i < loops; i++ {
			record, d, err := api.create(randomgen.Person())
			if err != nil {
				return err
			}
			ids = append(ids, record.Id)
			duration += d
		}
		fmt.Fprintf(out, "%10d", duration.Microseconds()/int64(loops))

		update := []byte(fmt.Sprintf(`{"firstName": %q, "age": %d}`, randomgen.PickFirstName(), rand.Intn(100)))
		for _, method := range []string{http.MethodPut, http.MethodGet, http.MethodDelete} {
			var body []byte
			if method == http.MethodPut {
				body = update
			}
			d, err := callInLoop(api, shuffled(ids), method, body)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%10d", d.Microseconds()/int64(loops))
		}
		fmt.Fprintln(out)
	}
	return nil
}

// callInLoop sends one request per id and returns the sum of the durations.
func callInLoop(api *apiClient, ids []int64, method string, body []byte) (time.Duration, error) {
	var duration time.Duration
	for _, id := range ids {
		status, resBody, d, err := api.send(method, fmt.Sprintf("/persons/%d", id), body)
		if err != nil {
			return 0, err
		}
		if status != http.StatusOK {
			return 0, responseError(status, resBody)
		}
		duration += d
	}
	return duration, nil
}

func shuffled(ids []int64) []int64 {
	result := append([]int64(nil), ids...)
	rand.Shuffle(len(result), func(i, j int) {
		result[i], result[j] = result[j], result[i]
	})
	return result
}
