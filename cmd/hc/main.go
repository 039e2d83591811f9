package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/manqiyou/manqiyou/internal/app/api/core/envelope"
)

const defaultHealthUrl = "http://127.0.0.1:8080/api/v1/health"

type healthData struct {
	Status string `json:"status"`
}

// main checks the health endpoint of a running backend, for example from a container health check.
// Exit code 0 is returned if the service reports itself as UP, 1 otherwise.
func main() {
	url := defaultHealthUrl
	if len(os.Args) > 1 {
		url = os.Args[1]
	}

	client := &http.Client{
		Timeout: time.Second * 2,
	}
	if err := checkHealth(client, url); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func checkHealth(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected http status %d", resp.StatusCode)
	}

	var env envelope.Response[healthData]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("invalid health response: %w", err)
	}
	if !env.OK() {
		return fmt.Errorf("unexpected envelope code %d", env.Code)
	}
	if env.Data == nil || env.Data.Status != "UP" {
		return fmt.Errorf("service is not up")
	}

	return nil
}
