package commands

import (
	"fmt"
	"io"

	"github.com/openstride/stride-go/pkg/log"
)

// RunFilter reads events matching the filter and writes them to a new
// log file. Returns the number of events written.
func RunFilter(path, output string, filter log.Filter) (int, error) {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	writer, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			writer.Close()
			return count, fmt.Errorf("failed to read event: %w", err)
		}
		writer.Log(event)
		count++
	}

	if err := writer.Close(); err != nil {
		return count, fmt.Errorf("failed to close output file: %w", err)
	}
	return count, nil
}
