package etl

import (
	"fmt"

	"github.com/dataeng-io/webanalytics-etl/internal/dateutil"
)

// PartitionMode selects the date value used for a task's object-key
// partition segment.
type PartitionMode string

const (
	// PartitionByStartMonth partitions by the first day of the report
	// window's start month.
	PartitionByStartMonth PartitionMode = "start-month"

	// PartitionByRunDate partitions by the month of the export run itself,
	// so re-runs of historical windows land under the current month.
	PartitionByRunDate PartitionMode = "run-date"
)

func partitionValue(mode PartitionMode, startDate, runDate string) (string, error) {
	switch mode {
	case PartitionByRunDate:
		return dateutil.MonthPartition(runDate)
	case PartitionByStartMonth, "":
		return dateutil.MonthPartition(startDate)
	default:
		return "", fmt.Errorf("unknown partition mode %q", mode)
	}
}
