package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/openstride/stride-go/pkg/log"
)

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "category", "activity", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"),
			event.SessionID,
			event.Category.String(),
			event.Activity,
			eventDetail(event),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

// eventDetail summarizes the payload in one cell.
func eventDetail(event log.Event) string {
	switch {
	case event.State != nil:
		if !event.State.Accepted {
			return fmt.Sprintf("%s rejected: %s", event.State.From, event.State.Reason)
		}
		return fmt.Sprintf("%s->%s", event.State.From, event.State.To)
	case event.Anomaly != nil:
		return fmt.Sprintf("%s %s %.2f", event.Anomaly.Metric, event.Anomaly.Verdict, event.Anomaly.Candidate)
	case event.Split != nil:
		return fmt.Sprintf("split %d %.0fm %s", event.Split.Index, event.Split.Distance, event.Split.Elapsed)
	case event.Metrics != nil:
		return fmt.Sprintf("%s %.0fm", event.Metrics.Elapsed, event.Metrics.Distance)
	case event.Record != nil:
		return fmt.Sprintf("record %s %.0fm", event.Record.RecordID, event.Record.Distance)
	default:
		return ""
	}
}
