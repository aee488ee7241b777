// Command generate runs the scheduling engine directly against a JSON
// snapshot file, with no HTTP server or database involved. Useful for
// exercising the engine against a fixture or reproducing a reported
// generation issue locally.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/liftform/shiftcraft/internal/scheduler"
)

type generateInput struct {
	Snapshot  scheduler.Snapshot `json:"snapshot"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
}

func main() {
	filepath := "snapshot.json"
	if len(os.Args) > 1 {
		filepath = os.Args[1]
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", filepath, err)
		os.Exit(1)
	}

	var input generateInput
	if err := json.Unmarshal(data, &input); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse %s: %v\n", filepath, err)
		os.Exit(1)
	}

	startDate, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid start_date %q: %v\n", input.StartDate, err)
		os.Exit(1)
	}
	endDate, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid end_date %q: %v\n", input.EndDate, err)
		os.Exit(1)
	}

	if input.Snapshot.Settings == nil {
		fmt.Fprintln(os.Stderr, "snapshot missing settings")
		os.Exit(1)
	}

	res, warnings, err := scheduler.Load(input.Snapshot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load snapshot: %v\n", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	cfg := scheduler.DefaultConfig()
	dist := scheduler.NewDistributionManager(res, cfg, scheduler.NewStaticHolidayCalendar(nil))

	result, err := scheduler.Generate(context.Background(), res, cfg, dist, startDate, endDate, 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if result.Warnings.HasErrors() {
		os.Exit(2)
	}
}
