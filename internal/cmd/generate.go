package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var generateMessages = []string{
	"Application started",
	"Processing request",
	"Database query executed",
	"Cache miss",
	"Cache hit",
	"Request completed",
	"Connection established",
	"Authentication successful",
	"File processed",
	"Task completed",
}

var generateLevels = []string{"INFO", "WARN", "ERROR", "DEBUG"}

var generateCmd = &cobra.Command{
	Use:   "generate [count]",
	Short: "Emit synthetic JSON log lines for demos and fixtures",
	Long: `Generate writes random JSON log lines to stdout, including the
occasional plain-text line, so the filter can be demoed without a real
log producer:

  jsonlogprint generate 200 | jsonlogprint`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

// generatedRecord's field order is the order fields appear in the output.
type generatedRecord struct {
	Timestamp  int64  `json:"timestamp"`
	Level      string `json:"level"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	UserID     string `json:"user_id,omitempty"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	count := 1000
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 0 {
			return fmt.Errorf("invalid count %q", args[0])
		}
		count = parsed
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	enc := json.NewEncoder(out)

	for i := 0; i < count; i++ {
		message := generateMessages[rand.Intn(len(generateMessages))]

		// 5% of lines are plain text, exercising the passthrough path.
		if rand.Intn(20) == 0 {
			fmt.Fprintf(out, "Plain text log message: %s\n", message)
			continue
		}

		record := generatedRecord{
			Timestamp: time.Now().UnixMilli(),
			Level:     generateLevels[rand.Intn(len(generateLevels))],
			Message:   message,
			RequestID: fmt.Sprintf("req-%d", 1000+rand.Intn(8999)),
		}
		if rand.Intn(2) == 0 {
			record.DurationMS = int64(1 + rand.Intn(999))
		}
		if rand.Intn(3) == 0 {
			record.UserID = fmt.Sprintf("user-%d", 1+rand.Intn(99))
		}

		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	return nil
}
