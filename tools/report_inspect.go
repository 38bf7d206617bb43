package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"workflow-lab/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

// Dumps stored workflow reports as a table. Opens the database read-only so
// it can run next to a live analyzer.
func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	prefix := flag.String("prefix", "report:", "Prefix to scan")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	header := color.New(color.BgBlack, color.FgGreen).Render("Workflow reports")
	fmt.Println(header)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Time", "Report", "Workflow Type", "Score", "Approach", "Tasks", "Description"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()

			// Secondary index entries hold keys, not reports.
			if strings.HasPrefix(string(item.Key()), "idx:") {
				continue
			}

			err := item.Value(func(v []byte) error {
				var report domain.WorkflowReport
				if err := json.Unmarshal(v, &report); err != nil {
					fmt.Printf("Error unmarshaling key %s: %v\n", string(item.Key()), err)
					return nil
				}

				displayID := report.ID.String()
				if len(displayID) > 8 {
					displayID = displayID[:8]
				}

				tasks := ""
				for _, t := range report.DetectedTasks {
					tasks += fmt.Sprintf("%s:%d ", t.Name, t.Frequency)
				}

				table.Append([]string{
					report.CreatedAt.Format("15:04:05"),
					displayID,
					report.WorkflowType,
					colorScore(report.Automation.OverallScore),
					string(report.Automation.Approach),
					tasks,
					report.Description,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func colorScore(score int) string {
	text := strconv.Itoa(score)
	switch {
	case score >= 70:
		return color.Green.Render(text)
	case score >= 40:
		return color.Yellow.Render(text)
	default:
		return color.Red.Render(text)
	}
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	db, err := badger.Open(opts)
	if err != nil {
		// A crashed analyzer can leave the value log needing truncation,
		// which read-only mode refuses to do. Retry in write mode.
		if strings.Contains(err.Error(), "Log truncate required") {
			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)
			return badger.Open(repairOpts)
		}
		return nil, err
	}
	return db, nil
}
