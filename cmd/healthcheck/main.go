// Command healthcheck probes the server's health endpoint and exits with a
// non-zero status when the server is unreachable or unhealthy. It is meant
// to be used as a container HEALTHCHECK.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

func main() {
	address := flag.String("a", "http://localhost:8080", "base URL of the server to probe")
	timeout := flag.Duration("t", 5*time.Second, "probe timeout")
	flag.Parse()

	client := resty.New().
		SetBaseURL(*address).
		SetTimeout(*timeout)

	resp, err := client.R().Get("/api/health")
	if err != nil {
		fmt.Fprintf(os.Stderr, "healthcheck: %v\n", err)
		os.Exit(1)
	}

	if resp.StatusCode() != http.StatusOK {
		fmt.Fprintf(os.Stderr, "healthcheck: unexpected status %d\n", resp.StatusCode())
		os.Exit(1)
	}

	fmt.Println("ok")
}
