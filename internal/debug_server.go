package internal

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

var (
	resumeChan  = make(chan struct{}, 1)
	currentPort int
)

type InspectRow struct {
	Key          string
	Timestamp    string
	ReportID     string
	WorkflowType string
	Score        string
	Detail       string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// Inspect starts the debug page, runs fn if given, then blocks until
// /resume is hit. Used by the viewer binary and by manual test pauses.
func Inspect(db *badger.DB, port int, endpoint string, mapper RowMapper, statsProvider StatsProvider, prefix string, fn func()) {
	StartDebugServer(db, port, endpoint, mapper, statsProvider)

	if fn != nil {
		fn()
	}

	Wait(prefix)
}

func StartDebugServer(db *badger.DB, port int, endpoint string, mapper RowMapper, statsProvider StatsProvider) {
	currentPort = port
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	if mapper == nil {
		mapper = ReportMapper
	}

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "report:"
		}

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}

		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		_ = db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				_ = item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(string(item.Key()), val))
					return nil
				})
			}
			return nil
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})

	mux.HandleFunc("/resume", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-resumeChan:
		default:
		}
		resumeChan <- struct{}{}
		fmt.Fprint(w, "RESUMED")
	})

	go func() {
		_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), mux)
	}()
}

func Wait(prefix string) {
	url := fmt.Sprintf("http://localhost:%d/inspect?prefix=%s", currentPort, prefix)
	fmt.Printf("\n--- INSPECT READY ---\n\n%s\n\n---------------------\n", url)
	<-resumeChan
}

// ReportMapper decodes a stored report value into one inspect row.
// Keys look like report:<unixnano>:<uuid>; index keys fall back to raw.
func ReportMapper(key string, val []byte) InspectRow {
	row := InspectRow{
		Key:          key,
		Timestamp:    "--:--:--",
		ReportID:     "--------",
		WorkflowType: "raw",
		Score:        "-",
		Detail:       "Size: " + strconv.Itoa(len(val)) + " bytes",
	}

	parts := strings.Split(key, ":")
	if len(parts) >= 3 {
		if tsNano, err := strconv.ParseInt(parts[1], 10, 64); err == nil {
			row.Timestamp = time.Unix(0, tsNano).Format("15:04:05")
		}
		row.ReportID = parts[2]
		if len(row.ReportID) > 8 {
			row.ReportID = row.ReportID[:8]
		}
	}

	var report struct {
		WorkflowType string `json:"workflow_type"`
		Description  string `json:"description"`
		Automation   struct {
			OverallScore int    `json:"overall_score"`
			Approach     string `json:"recommended_approach"`
		} `json:"automation"`
	}
	if err := json.Unmarshal(val, &report); err == nil && report.WorkflowType != "" {
		row.WorkflowType = report.WorkflowType
		row.Score = fmt.Sprintf("%d (%s)", report.Automation.OverallScore, report.Automation.Approach)
		row.Detail = report.Description
	}
	return row
}
