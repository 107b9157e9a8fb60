package records

import (
	"database/sql"
	"fmt"
)

// A DataReader reads persisted records back, mostly for analysis scripts and
// tests.
type DataReader interface {
	// CountRows returns the number of rows in a table.
	CountRows(tableName string) (int, error)

	// ReadRecords reads all rows of the record table back, in insertion
	// order.
	ReadRecords() ([]Record, error)

	// Close closes the reader.
	Close() error
}

// NewDataReader opens a reader on a SQLite file written by a DataRecorder.
// The path excludes the .sqlite3 suffix, matching NewDataRecorder.
func NewDataReader(path string) DataReader {
	db, err := sql.Open("sqlite3", path+".sqlite3")
	if err != nil {
		panic(err)
	}

	return &sqliteReader{DB: db}
}

type sqliteReader struct {
	*sql.DB
}

func (r *sqliteReader) CountRows(tableName string) (int, error) {
	var count int
	err := r.QueryRow("SELECT COUNT(*) FROM " + tableName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count rows of %s: %w", tableName, err)
	}

	return count, nil
}

func (r *sqliteReader) ReadRecords() ([]Record, error) {
	rows, err := r.Query("SELECT * FROM " + RecordTable)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		err := rows.Scan(
			&rec.IndividualID,
			&rec.Class,
			&rec.Node,
			&rec.ArrivalDate,
			&rec.WaitingTime,
			&rec.ServiceStartDate,
			&rec.ServiceTime,
			&rec.ServiceEndDate,
			&rec.ExitDate,
			&rec.Destination,
			&rec.QueueSizeAtArrival,
			&rec.QueueSizeAtDeparture,
			&rec.RecordType,
		)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		out = append(out, rec)
	}

	return out, rows.Err()
}

func (r *sqliteReader) Close() error {
	return r.DB.Close()
}
