package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"polarity-lab/repositories"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

// Prints the runs stored by the batch, or the joined table of one run.
//
//	go run ./tools -db ./data/badger
//	go run ./tools -db ./data/badger -run 6f0c... -limit 20
func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	runID := flag.String("run", "", "Run to print; lists runs when empty")
	limit := flag.Int("limit", 50, "Maximum rows printed for a run")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).WithReadOnly(true).WithLoggingLevel(badger.ERROR))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	repo := repositories.NewFeatureRepository(db, logs.GetLoggerFromString("ERROR"))
	table := newTable()

	if *runID == "" {
		summaries, err := repo.ListRuns()
		if err != nil {
			log.Fatal(err)
		}
		table.SetHeader([]string{"Run", "At", "Rows", "Columns", "Accuracy"})
		for _, s := range summaries {
			accuracy := "-"
			if s.Accuracy != nil {
				accuracy = fmt.Sprintf("%.3f", *s.Accuracy)
			}
			table.Append([]string{
				s.ID.String(),
				s.At.Format("2006-01-02 15:04:05"),
				strconv.Itoa(s.Rows),
				strconv.Itoa(s.Columns),
				accuracy,
			})
		}
		table.Render()
		return
	}

	id, err := uuid.Parse(*runID)
	if err != nil {
		log.Fatal("Invalid run id: ", err)
	}
	run, err := repo.GetRun(id)
	if err != nil {
		log.Fatal(err)
	}
	table.SetHeader(append([]string{"txn_id", "label"}, run.Table.Columns...))
	for i, r := range run.Table.Rows {
		if i == *limit {
			break
		}
		line := []string{string(r.TxnID), string(r.Label)}
		for _, v := range r.Values {
			line = append(line, strconv.FormatFloat(v, 'f', 4, 64))
		}
		table.Append(line)
	}
	table.Render()
	if run.Table.Len() > *limit {
		fmt.Printf("... %d more rows\n", run.Table.Len()-*limit)
	}
}

func newTable() *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
